package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/tech"
)

func TestParseSize(t *testing.T) {
	sc := tech.DefaultScale()
	tests := []struct {
		in      string
		w, h    int64
		wantErr bool
	}{
		{"5x5", 2000, 2000, false},
		{"2.5X10", 1000, 4000, false},
		{"0x0", 0, 0, false},
		{"5", 0, 0, true},
		{"ax5", 0, 0, true},
		{"5xNaN", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseSize(tt.in, sc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && (w != tt.w || h != tt.h) {
				t.Errorf("parseSize(%q) = %d,%d, want %d,%d", tt.in, w, h, tt.w, tt.h)
			}
		})
	}
}

func TestParseTrace(t *testing.T) {
	sc := tech.DefaultScale()
	got, err := parseTrace("0,0; 0,5;2.5,-5", sc)
	if err != nil {
		t.Fatal(err)
	}
	want := []geom.Point{geom.Pt(0, 0), geom.Pt(0, 2000), geom.Pt(1000, -2000)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseTrace mismatch (-want +got):\n%s", diff)
	}

	if pts, err := parseTrace("  ", sc); err != nil || pts != nil {
		t.Errorf("empty trace = %v, %v", pts, err)
	}
	if _, err := parseTrace("0,0;1", sc); err == nil {
		t.Error("malformed trace should fail")
	}
}

func TestParseOrient(t *testing.T) {
	tests := []struct {
		in      string
		want    geom.Orientation
		wantErr bool
	}{
		{"", geom.Identity, false},
		{"R90", geom.Orientation{Angle: 900}, false},
		{"r270,mx", geom.Orientation{Angle: 2700, MirrorX: true}, false},
		{"MY", geom.Orientation{MirrorY: true}, false},
		{"R22.5", geom.Orientation{Angle: 225}, false},
		{"R450", geom.Orientation{Angle: 900}, false},
		{"R-90", geom.Orientation{Angle: 2700}, false},
		{"flip", geom.Orientation{}, true},
		{"Rx", geom.Orientation{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseOrient(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseOrient(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseOrient(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseNegated(t *testing.T) {
	got, err := parseNegated([]int{0, 2}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]bool{true, false, true, false}, got); diff != "" {
		t.Errorf("parseNegated mismatch (-want +got):\n%s", diff)
	}
	if flags, _ := parseNegated(nil, 4); flags != nil {
		t.Error("no indices should give nil flags")
	}
	if _, err := parseNegated([]int{4}, 4); err == nil {
		t.Error("out-of-range port should fail")
	}
}
