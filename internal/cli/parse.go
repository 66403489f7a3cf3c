package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// Command-line values are lambda. These helpers parse them and convert to
// grid units with the technology scale.

func parseLambda(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	return v, nil
}

// parsePair parses "a<sep>b" into two lambda values.
func parsePair(s, sep string) (float64, float64, error) {
	a, b, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("invalid value %q: want A%sB", s, sep)
	}
	x, err := parseLambda(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseLambda(b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// parseSize parses "WxH" in lambda.
func parseSize(s string, sc tech.Scale) (int64, int64, error) {
	w, h, err := parsePair(strings.ToLower(s), "x")
	if err != nil {
		return 0, 0, fmt.Errorf("size: %w", err)
	}
	return sc.ToGrid(w), sc.ToGrid(h), nil
}

// parsePoint parses "X,Y" in lambda.
func parsePoint(s string, sc tech.Scale) (geom.Point, error) {
	x, y, err := parsePair(s, ",")
	if err != nil {
		return geom.Point{}, fmt.Errorf("point: %w", err)
	}
	return sc.Point(x, y), nil
}

// parseTrace parses "x,y;x,y;..." in lambda. An empty string is no trace.
func parseTrace(s string, sc tech.Scale) ([]geom.Point, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var pts []geom.Point
	for _, part := range strings.Split(s, ";") {
		p, err := parsePoint(part, sc)
		if err != nil {
			return nil, fmt.Errorf("trace: %w", err)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// parseOrient parses a comma-separated list of R<degrees>, MX and MY, e.g.
// "R90,MX". Degrees may have one decimal.
func parseOrient(s string) (geom.Orientation, error) {
	var o geom.Orientation
	if strings.TrimSpace(s) == "" {
		return o, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		switch {
		case part == "MX":
			o.MirrorX = true
		case part == "MY":
			o.MirrorY = true
		case strings.HasPrefix(part, "R"):
			deg, err := strconv.ParseFloat(part[1:], 64)
			if err != nil {
				return geom.Orientation{}, fmt.Errorf("orientation: invalid rotation %q", part)
			}
			o.Angle = geom.NormAngle(int(geom.Round(deg * 10)))
		default:
			return geom.Orientation{}, fmt.Errorf("orientation: unknown element %q (want R<deg>, MX or MY)", part)
		}
	}
	return o, nil
}

// parseNegated turns a port index list into per-port negation flags.
func parseNegated(idx []int, ports int) ([]bool, error) {
	if len(idx) == 0 {
		return nil, nil
	}
	flags := make([]bool, ports)
	for _, i := range idx {
		if i < 0 || i >= ports {
			return nil, fmt.Errorf("negate: port %d out of range [0, %d)", i, ports)
		}
		flags[i] = true
	}
	return flags, nil
}
