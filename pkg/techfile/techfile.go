package techfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/primgeom/pkg/errors"
	"github.com/matzehuels/primgeom/pkg/tech"
)

type file struct {
	Name          string   `toml:"name"`
	Description   string   `toml:"description"`
	GridPerLambda int64    `toml:"grid_per_lambda"`
	Layers        []layerT `toml:"layer"`
	Arcs          []arcT   `toml:"arc"`
	Nodes         []nodeT  `toml:"node"`
}

type layerT struct {
	Name     string `toml:"name"`
	Function string `toml:"function"`
}

type arcT struct {
	Name        string      `toml:"name"`
	Width       float64     `toml:"width"`
	Extended    bool        `toml:"extended"`
	Directional bool        `toml:"directional"`
	Layers      []arcLayerT `toml:"layer"`
}

type arcLayerT struct {
	Layer  string  `toml:"layer"`
	Offset float64 `toml:"offset"`
	Style  string  `toml:"style"`
}

type nodeT struct {
	Name          string       `toml:"name"`
	Function      string       `toml:"function"`
	Width         float64      `toml:"width"`
	Height        float64      `toml:"height"`
	Special       string       `toml:"special"`
	SpecialValues []float64    `toml:"special_values"`
	Wipable       bool         `toml:"wipable"`
	Ports         []portT      `toml:"port"`
	Layers        []nodeLayerT `toml:"layer"`
	Electrical    []nodeLayerT `toml:"electrical"`
}

type portT struct {
	Name   string    `toml:"name"`
	Angle  float64   `toml:"angle"`
	Range  float64   `toml:"range"`
	Center bool      `toml:"center"`
	Inset  *float64  `toml:"inset"`
	Left   []float64 `toml:"left"`
	Bottom []float64 `toml:"bottom"`
	Right  []float64 `toml:"right"`
	Top    []float64 `toml:"top"`
	Arcs   []string  `toml:"arcs"`
}

type nodeLayerT struct {
	Layer      string       `toml:"layer"`
	Port       string       `toml:"port"`
	Style      string       `toml:"style"`
	Box        string       `toml:"box"`
	Inset      *float64     `toml:"inset"`
	InsetXY    []float64    `toml:"inset_xy"`
	Points     [][]float64  `toml:"points"`
	Cut        *cutT        `toml:"cut"`
	Serpentine *serpentineT `toml:"serpentine"`
	Text       string       `toml:"text"`
	TextSize   float64      `toml:"text_size"`
}

type cutT struct {
	Size  []float64 `toml:"size"`
	Sep1D float64   `toml:"sep1d"`
	Sep2D float64   `toml:"sep2d"`
}

type serpentineT struct {
	LWidth       float64 `toml:"lwidth"`
	RWidth       float64 `toml:"rwidth"`
	TopExtend    float64 `toml:"top_extend"`
	BottomExtend float64 `toml:"bottom_extend"`
}

// Load reads and builds the technology in the file at path.
func Load(path string) (*tech.Technology, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "technology file %s", path)
		}
		return nil, err
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Parse builds a technology from TOML data.
func Parse(data []byte) (*tech.Technology, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a technology description from r. The result is unsealed.
func Decode(r io.Reader) (*tech.Technology, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode technology")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return f.build()
}

func (f *file) build() (*tech.Technology, error) {
	if err := errors.ValidateName("technology", f.Name); err != nil {
		return nil, err
	}
	t := tech.New(f.Name)
	t.Description = f.Description
	if f.GridPerLambda != 0 {
		if f.GridPerLambda < 0 {
			return nil, errors.New(errors.ErrCodeInvalidTechnology, "grid_per_lambda must be positive, got %d", f.GridPerLambda)
		}
		t.Scale = tech.Scale{GridPerLambda: f.GridPerLambda}
	}
	c := converter{s: t.Scale}

	for _, l := range f.Layers {
		if _, err := t.AddLayer(l.Name, l.Function); err != nil {
			return nil, err
		}
	}
	for _, a := range f.Arcs {
		proto, err := c.arc(t, a)
		if err != nil {
			return nil, err
		}
		if _, err := t.AddArc(proto); err != nil {
			return nil, err
		}
	}
	for _, n := range f.Nodes {
		proto, err := c.node(t, n)
		if err != nil {
			return nil, err
		}
		if _, err := t.AddNode(proto); err != nil {
			return nil, err
		}
	}
	return t, nil
}
