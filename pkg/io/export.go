package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/shape"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// Shape is the serialized form of a shape.Polygon.
type Shape struct {
	Layer  string               `json:"layer"`
	Style  tech.Style           `json:"style"`
	Port   int                  `json:"port"`
	Points [][2]int64           `json:"points"`
	Text   *tech.TextAttachment `json:"text,omitempty"`
}

// Entry is the output of one request.
type Entry struct {
	ID     string  `json:"id,omitempty"`
	Kind   string  `json:"kind"`
	Name   string  `json:"name"`
	Cached bool    `json:"cached,omitempty"`
	Error  string  `json:"error,omitempty"`
	Shapes []Shape `json:"shapes"`
}

// Document is a set of entries built with one technology.
type Document struct {
	Technology  string  `json:"technology"`
	Fingerprint string  `json:"fingerprint,omitempty"`
	Entries     []Entry `json:"entries"`
}

// FromPolygons converts polygons to their serialized form.
func FromPolygons(polys []shape.Polygon) []Shape {
	out := make([]Shape, len(polys))
	for i, p := range polys {
		pts := make([][2]int64, len(p.Points))
		for j, q := range p.Points {
			pts[j] = [2]int64{q.X, q.Y}
		}
		out[i] = Shape{
			Layer:  p.LayerName(),
			Style:  p.Style,
			Port:   p.Port,
			Points: pts,
			Text:   p.Text,
		}
	}
	return out
}

func (s Shape) points() []geom.Point {
	pts := make([]geom.Point, len(s.Points))
	for i, q := range s.Points {
		pts[i] = geom.Pt(q[0], q[1])
	}
	return pts
}

// MarshalShapes encodes polygons compactly, as stored in the shape cache.
func MarshalShapes(polys []shape.Polygon) ([]byte, error) {
	return json.Marshal(FromPolygons(polys))
}

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a JSON file at path.
func ExportJSON(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
