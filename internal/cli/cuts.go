package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/shape/multicut"
	"github.com/matzehuels/primgeom/pkg/tech"
)

type cutsOptions struct {
	area       string
	cut        string
	sep1, sep2 float64
	reasonable bool
	list       bool
}

// cutsCommand shows how a multi-cut region is filled.
func (c *CLI) cutsCommand() *cobra.Command {
	opts := cutsOptions{cut: "2x2", sep1: 2, sep2: 3}

	cmd := &cobra.Command{
		Use:   "cuts",
		Short: "Show the cut array for a contact region",
		Long: `Show the cut array for a contact region.

The area bounds the cut centers and is centered on the origin. All lengths
are in lambda.`,
		Example: `  primgeom cuts --area 6x6
  primgeom cuts --area 10x2 --cut 2x2 --sep1 2 --sep2 3 --list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.technology()
			if err != nil {
				return err
			}
			layout, err := opts.layout(t.Scale)
			if err != nil {
				return err
			}

			printKeyValue("array", fmt.Sprintf("%d x %d", layout.CutsX, layout.CutsY))
			printKeyValue("total", fmt.Sprint(layout.CutsTotal))
			printKeyValue("reasonable", fmt.Sprint(layout.CutsReasonable))
			printKeyValue("spacing", formatLambda(t.Scale, layout.Sep)+"λ")

			if opts.list {
				tbl := newTable("Cut", "Low (grid)", "High (grid)")
				for i, r := range layout.Cuts(opts.reasonable) {
					tbl.Row(fmt.Sprint(i), geom.Pt(r.LX, r.LY).String(), geom.Pt(r.HX, r.HY).String())
				}
				fmt.Println(tbl.Render())
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.area, "area", "", "region available to cut centers, WxH in lambda")
	f.StringVar(&opts.cut, "cut", opts.cut, "cut size WxH in lambda")
	f.Float64Var(&opts.sep1, "sep1", opts.sep1, "spacing of a single row or column of cuts, in lambda")
	f.Float64Var(&opts.sep2, "sep2", opts.sep2, "spacing of two-dimensional arrays, in lambda")
	f.BoolVar(&opts.reasonable, "reasonable", false, "list only the perimeter cuts of large arrays")
	f.BoolVar(&opts.list, "list", false, "list every cut rectangle")
	_ = cmd.MarkFlagRequired("area")

	return cmd
}

func (o cutsOptions) layout(sc tech.Scale) (multicut.Layout, error) {
	w, h, err := parseSize(o.area, sc)
	if err != nil {
		return multicut.Layout{}, err
	}
	if w < 0 || h < 0 {
		return multicut.Layout{}, fmt.Errorf("area must not be negative")
	}
	cx, cy, err := parseSize(o.cut, sc)
	if err != nil {
		return multicut.Layout{}, err
	}
	if cx <= 0 || cy <= 0 {
		return multicut.Layout{}, fmt.Errorf("cut size must be positive")
	}
	if o.sep1 < 0 || o.sep2 < 0 {
		return multicut.Layout{}, fmt.Errorf("spacing must not be negative")
	}

	area := geom.R(-w/2, -h/2, w-w/2, h-h/2)
	cut := tech.CutExtra{SizeX: cx, SizeY: cy, Sep1D: sc.ToGrid(o.sep1), Sep2D: sc.ToGrid(o.sep2)}
	return multicut.New(area, cut), nil
}
