package techfile

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/primgeom/pkg/errors"
	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/tech"
)

func TestLoad(t *testing.T) {
	tc, err := Load(filepath.Join("testdata", "mini.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tc.Name != "mini" || tc.Scale.GridPerLambda != 100 {
		t.Errorf("tech = %q scale %d", tc.Name, tc.Scale.GridPerLambda)
	}
	if got := len(tc.Layers()); got != 4 {
		t.Errorf("%d layers, want 4", got)
	}

	a, err := tc.Arc("active")
	if err != nil {
		t.Fatal(err)
	}
	if a.DefaultWidth != 700 || a.Layers[0].GridOffset != 400 || a.Layers[0].Style != tech.Filled {
		t.Errorf("active arc = %+v", a)
	}

	pin, err := tc.Node("metal-1-pin")
	if err != nil {
		t.Fatal(err)
	}
	if !pin.Wipable || pin.Layers[0].Style != tech.Closed || pin.Layers[0].Port != 0 {
		t.Errorf("pin = %+v", pin)
	}
	if pin.Ports[0].AngleRange != 1800 {
		t.Errorf("pin angle range = %d", pin.Ports[0].AngleRange)
	}

	contact, err := tc.Node("metal-1-poly-contact")
	if err != nil {
		t.Fatal(err)
	}
	cut := contact.Layers[2]
	if cut.Representation != tech.MultiCutBox || cut.Port != tech.NoPort {
		t.Errorf("cut layer = %+v", cut)
	}
	if want := (tech.CutExtra{SizeX: 200, SizeY: 200, Sep1D: 200, Sep2D: 300}); cut.Cut != want {
		t.Errorf("cut extra = %+v, want %+v", cut.Cut, want)
	}
	if got := contact.Ports[0].Box(500, 500); got != geom.R(-100, -100, 100, 100) {
		t.Errorf("contact port = %v", got)
	}

	tr, err := tc.Node("transistor")
	if err != nil {
		t.Fatal(err)
	}
	if tr.Special != tech.Serpentine {
		t.Errorf("special = %q", tr.Special)
	}
	if p := tr.SerpentineParams(); p.GateWidth != 200 || p.DiffusionExtend != 150 {
		t.Errorf("params = %+v", p)
	}
	poly := tr.Layers[1]
	if poly.Representation != tech.Points || poly.Serpentine.TopExtend != 200 {
		t.Errorf("poly layer = %+v", poly)
	}
	if got := poly.Box(700, 1000); got != geom.R(-350, -100, 350, 100) {
		t.Errorf("poly box = %v", got)
	}
	if tr.Ports[1].Angle != 900 {
		t.Errorf("diff-top angle = %d", tr.Ports[1].Angle)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestParseErrors(t *testing.T) {
	const layer = "[[layer]]\nname = \"m\"\n"
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"syntax", "name = ", errors.ErrCodeInvalidFormat},
		{"unknown key", "name = \"x\"\ncolour = \"red\"\n", errors.ErrCodeInvalidFormat},
		{"no name", layer, errors.ErrCodeInvalidTemplate},
		{"negative scale", "name = \"x\"\ngrid_per_lambda = -1\n", errors.ErrCodeInvalidTechnology},
		{"duplicate layer", "name = \"x\"\n" + layer + layer, errors.ErrCodeDuplicateName},
		{"odd offset", "name = \"x\"\n" + layer +
			"[[arc]]\nname = \"a\"\nlayer = [{ layer = \"m\", offset = 0.0025 }]\n", errors.ErrCodeInvalidTemplate},
		{"two geometries", "name = \"x\"\n" + layer +
			"[[node]]\nname = \"n\"\nlayer = [{ layer = \"m\", box = \"full\", inset = 1.0 }]\n", errors.ErrCodeInvalidFormat},
		{"bad edge", "name = \"x\"\n" + layer +
			"[[node]]\nname = \"n\"\nport = [{ name = \"p\", left = [0.5] }]\nlayer = [{ layer = \"m\", box = \"full\" }]\n",
			errors.ErrCodeInvalidFormat},
		{"unknown port", "name = \"x\"\n" + layer +
			"[[node]]\nname = \"n\"\nlayer = [{ layer = \"m\", port = \"q\", box = \"full\" }]\n", errors.ErrCodeInvalidTemplate},
		{"unknown layer", "name = \"x\"\n" + layer +
			"[[node]]\nname = \"n\"\nlayer = [{ layer = \"z\", box = \"full\" }]\n", errors.ErrCodeInvalidTemplate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse error = %v, want code %s", err, tt.code)
			}
		})
	}
}
