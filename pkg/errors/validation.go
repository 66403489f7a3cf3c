package errors

import (
	"strings"
	"unicode"
)

// ValidateName validates a technology, layer, primitive or arc name.
// Names appear in cache keys, JSON output and CLI arguments, so the rules are
// conservative:
//   - No empty names
//   - No whitespace or control characters
//   - No path separators
//   - Maximum length of 128 characters
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidTemplate, "%s name cannot be empty", kind)
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidTemplate, "%s name too long (max 128 characters)", kind)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidTemplate, "%s name %q contains whitespace or control characters", kind, name)
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidTemplate, "%s name %q contains path separators", kind, name)
	}

	return nil
}

// ValidateGridOffset checks an arc layer inset. Offsets are subtracted from
// the full arc width and split evenly between both sides, so they must be
// non-negative and even.
func ValidateGridOffset(arc, layer string, offset int64) error {
	if offset < 0 {
		return New(ErrCodeInvalidTemplate, "arc %q layer %q: negative grid offset %d", arc, layer, offset)
	}
	if offset%2 != 0 {
		return New(ErrCodeInvalidTemplate, "arc %q layer %q: grid offset %d is not even", arc, layer, offset)
	}
	return nil
}

// ValidateSize checks that an instance or default size is non-negative.
func ValidateSize(what string, sx, sy int64) error {
	if sx < 0 || sy < 0 {
		return New(ErrCodeInvalidInstance, "%s size %dx%d is negative", what, sx, sy)
	}
	return nil
}

// ValidatePointCount checks the number of points a layer representation
// requires: exactly want when exact is set, otherwise at least want.
func ValidatePointCount(node, layer, repr string, got, want int, exact bool) error {
	if exact && got != want {
		return New(ErrCodeInvalidTemplate, "node %q layer %q: %s representation needs %d points, got %d",
			node, layer, repr, want, got)
	}
	if !exact && got < want {
		return New(ErrCodeInvalidTemplate, "node %q layer %q: %s representation needs at least %d points, got %d",
			node, layer, repr, want, got)
	}
	return nil
}
