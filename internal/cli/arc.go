package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/primgeom/pkg/pipeline"
	"github.com/matzehuels/primgeom/pkg/shape"
	"github.com/matzehuels/primgeom/pkg/tech"
)

type arcOptions struct {
	head, tail     string
	width          string
	extend         bool
	negateHead     bool
	negateTail     bool
	directional    bool
	directionalTwo bool
	output         string
}

// arcCommand builds the polygons of one arc instance.
func (c *CLI) arcCommand() *cobra.Command {
	var opts arcOptions

	cmd := &cobra.Command{
		Use:   "arc <name>",
		Short: "Build the polygons of an arc instance",
		Example: `  primgeom arc metal-1 --tail 0,0 --head 20,0
  primgeom arc wire --tail 0,0 --head 10,10 --negate-head`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.technology()
			if err != nil {
				return err
			}
			a, err := t.Arc(args[0])
			if err != nil {
				return err
			}

			inst, err := opts.instance(cmd, a, t.Scale)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), t)
			if err != nil {
				return err
			}
			defer runner.Close()

			req := pipeline.Request{Kind: pipeline.KindArc, Name: a.Name, Arc: &inst}
			res, err := runner.Execute(cmd.Context(), req, pipeline.Options{})
			if err != nil {
				return err
			}
			return emit(t, runner.Fingerprint(), res, opts.output)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.tail, "tail", "0,0", "tail X,Y in lambda")
	f.StringVar(&opts.head, "head", "10,0", "head X,Y in lambda")
	f.StringVar(&opts.width, "width", "", "full width in lambda (default: the arc's width)")
	f.BoolVar(&opts.extend, "extend", false, "extend both ends by half the width (default: the arc's setting)")
	f.BoolVar(&opts.negateHead, "negate-head", false, "draw a negation bubble at the head")
	f.BoolVar(&opts.negateTail, "negate-tail", false, "draw a negation bubble at the tail")
	f.BoolVar(&opts.directional, "directional", false, "draw an arrow at the head (default: the arc's setting)")
	f.BoolVar(&opts.directionalTwo, "directional-tail", false, "also draw an arrow at the tail")
	f.StringVarP(&opts.output, "output", "o", "", "write shapes as JSON to this file")

	return cmd
}

// instance converts the flags into an arc instance. Flags left unset keep
// the arc's defaults.
func (o arcOptions) instance(cmd *cobra.Command, a *tech.ArcProto, sc tech.Scale) (shape.ArcInstance, error) {
	tail, err := parsePoint(o.tail, sc)
	if err != nil {
		return shape.ArcInstance{}, err
	}
	head, err := parsePoint(o.head, sc)
	if err != nil {
		return shape.ArcInstance{}, err
	}

	inst := shape.DefaultArcInstance(a, tail, head)
	if o.width != "" {
		w, err := parseLambda(o.width)
		if err != nil {
			return shape.ArcInstance{}, err
		}
		inst.Width = sc.ToGrid(w)
	}
	if cmd.Flags().Changed("extend") {
		inst.ExtendHead, inst.ExtendTail = o.extend, o.extend
	}
	if cmd.Flags().Changed("directional") {
		inst.DirectionalHead = o.directional
	}
	inst.DirectionalTail = o.directionalTwo
	inst.NegatedHead = o.negateHead
	inst.NegatedTail = o.negateTail
	return inst, nil
}
