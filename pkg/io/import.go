package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/primgeom/pkg/errors"
	"github.com/matzehuels/primgeom/pkg/shape"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// ReadShapes decodes a JSON shape list from r and binds its layers to t.
func ReadShapes(r io.Reader, t *tech.Technology) ([]shape.Polygon, error) {
	var shapes []Shape
	if err := json.NewDecoder(r).Decode(&shapes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode shapes")
	}
	return ToPolygons(shapes, t)
}

// UnmarshalShapes is ReadShapes over a byte slice.
func UnmarshalShapes(data []byte, t *tech.Technology) ([]shape.Polygon, error) {
	return ReadShapes(bytes.NewReader(data), t)
}

// ToPolygons rebinds serialized shapes to the layers of t. Shapes without a
// layer name stay unbound.
func ToPolygons(shapes []Shape, t *tech.Technology) ([]shape.Polygon, error) {
	out := make([]shape.Polygon, len(shapes))
	for i, s := range shapes {
		if !s.Style.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "shape %d: unknown style %q", i, s.Style)
		}
		p := shape.Polygon{Points: s.points(), Style: s.Style, Port: s.Port, Text: s.Text}
		if s.Layer != "" {
			l, err := t.Layer(s.Layer)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "shape %d", i)
			}
			p.Layer = l
		}
		out[i] = p
	}
	return out, nil
}

// ReadDocument decodes a shape document from r.
func ReadDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// ImportJSON reads a shape document from the file at path.
func ImportJSON(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := ReadDocument(f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
