package errors

import "testing"

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "metal-1", false},
		{"valid underscore", "n_transistor", false},
		{"valid dotted", "via1.cut", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"space", "metal 1", true},
		{"tab", "metal\t1", true},
		{"control char", "foo\x01bar", true},
		{"slash", "metal/1", true},
		{"backslash", "metal\\1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("layer", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTemplate) {
				t.Errorf("ValidateName(%q) code = %q", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateGridOffset(t *testing.T) {
	tests := []struct {
		offset  int64
		wantErr bool
	}{
		{0, false},
		{2, false},
		{800, false},
		{-2, true},
		{3, true},
	}
	for _, tt := range tests {
		err := ValidateGridOffset("active", "select", tt.offset)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateGridOffset(%d) error = %v, wantErr %v", tt.offset, err, tt.wantErr)
		}
	}
}

func TestValidateSize(t *testing.T) {
	if err := ValidateSize("node", 0, 10); err != nil {
		t.Errorf("zero width should be valid: %v", err)
	}
	if err := ValidateSize("node", -1, 10); !Is(err, ErrCodeInvalidInstance) {
		t.Errorf("negative width: got %v", err)
	}
}

func TestValidatePointCount(t *testing.T) {
	tests := []struct {
		name    string
		got     int
		want    int
		exact   bool
		wantErr bool
	}{
		{"box ok", 2, 2, true, false},
		{"box short", 1, 2, true, true},
		{"box long", 3, 2, true, true},
		{"points ok", 5, 1, false, false},
		{"points empty", 0, 1, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePointCount("via", "cut", "box", tt.got, tt.want, tt.exact)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
