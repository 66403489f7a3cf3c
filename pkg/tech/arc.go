package tech

import "github.com/matzehuels/primgeom/pkg/errors"

// ArcProto is the immutable template of an arc (wire) primitive.
// DefaultWidth is the full width including every layer's grid offset.
// Extended arcs run half their width past each end point.
type ArcProto struct {
	Name         string     `json:"name"`
	Layers       []ArcLayer `json:"layers"`
	DefaultWidth int64      `json:"default_width"`
	Extended     bool       `json:"extended,omitempty"`
	Directional  bool       `json:"directional,omitempty"`
	Index        int        `json:"index"`
}

// Validate checks the template for configuration errors.
func (a *ArcProto) Validate() error {
	if err := errors.ValidateName("arc", a.Name); err != nil {
		return err
	}
	if len(a.Layers) == 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "arc %q has no layers", a.Name)
	}
	if a.DefaultWidth < 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "arc %q: negative default width %d", a.Name, a.DefaultWidth)
	}
	for _, al := range a.Layers {
		if al.Layer == nil {
			return errors.New(errors.ErrCodeInvalidTemplate, "arc %q has a layer template without a layer", a.Name)
		}
		if !al.Style.Valid() {
			return errors.New(errors.ErrCodeInvalidTemplate, "arc %q layer %q: unknown style %q",
				a.Name, al.Layer.Name, al.Style)
		}
		if err := errors.ValidateGridOffset(a.Name, al.Layer.Name, al.GridOffset); err != nil {
			return err
		}
	}
	return nil
}

func (a *ArcProto) clone() *ArcProto {
	c := *a
	c.Layers = append([]ArcLayer(nil), a.Layers...)
	return &c
}
