package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	primio "github.com/matzehuels/primgeom/pkg/io"
	"github.com/matzehuels/primgeom/pkg/pipeline"
	"github.com/matzehuels/primgeom/pkg/shape"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// nodeOptions holds the node command's flags.
type nodeOptions struct {
	size       string
	at         string
	orient     string
	trace      string
	reasonable bool
	electrical bool
	wiped      bool
	negate     []int
	port       int
	output     string
}

// nodeCommand builds the polygons of one node instance.
func (c *CLI) nodeCommand() *cobra.Command {
	opts := nodeOptions{port: -1}

	cmd := &cobra.Command{
		Use:   "node [name]",
		Short: "Build the polygons of a node instance",
		Long: `Build the polygons of a node instance.

Lengths are in lambda. Without a name, an interactive picker lists the
technology's primitives when running in a terminal.`,
		Example: `  primgeom node metal-1-poly-contact --size 10x10 --reasonable
  primgeom node n-transistor --trace "0,0;0,10;10,10" -o serp.json
  primgeom node buffer --orient R90,MX --negate 1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.technology()
			if err != nil {
				return err
			}

			var n *tech.PrimitiveNode
			if len(args) == 1 {
				if n, err = t.Node(args[0]); err != nil {
					return err
				}
			} else if n, err = pickNode(t); err != nil || n == nil {
				return err
			}

			req, err := opts.request(n, t.Scale)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), t)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Execute(cmd.Context(), req, pipeline.Options{})
			if err != nil {
				return err
			}
			return emit(t, runner.Fingerprint(), res, opts.output)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.size, "size", "", "instance size WxH in lambda (default: the primitive's size)")
	f.StringVar(&opts.at, "at", "0,0", "anchor X,Y in lambda")
	f.StringVar(&opts.orient, "orient", "", "orientation, e.g. R90 or R180,MX")
	f.StringVar(&opts.trace, "trace", "", `trace points "x,y;x,y;..." in lambda, relative to the anchor`)
	f.BoolVar(&opts.reasonable, "reasonable", false, "emit only the perimeter of large cut arrays")
	f.BoolVar(&opts.electrical, "electrical", false, "use the electrical layer set")
	f.BoolVar(&opts.wiped, "wiped", false, "hide wipable pins")
	f.IntSliceVar(&opts.negate, "negate", nil, "port indices drawn with a negation bubble")
	f.IntVar(&opts.port, "port", -1, "emit only the outline of this port")
	f.StringVarP(&opts.output, "output", "o", "", "write shapes as JSON to this file")

	return cmd
}

// request converts the flags into a pipeline request for n.
func (o nodeOptions) request(n *tech.PrimitiveNode, sc tech.Scale) (pipeline.Request, error) {
	inst := shape.DefaultInstance(n)
	if o.size != "" {
		sx, sy, err := parseSize(o.size, sc)
		if err != nil {
			return pipeline.Request{}, err
		}
		inst.SizeX, inst.SizeY = sx, sy
	}

	var err error
	if inst.Anchor, err = parsePoint(o.at, sc); err != nil {
		return pipeline.Request{}, err
	}
	if inst.Orient, err = parseOrient(o.orient); err != nil {
		return pipeline.Request{}, err
	}
	if inst.Trace, err = parseTrace(o.trace, sc); err != nil {
		return pipeline.Request{}, err
	}
	if inst.Negated, err = parseNegated(o.negate, len(n.Ports)); err != nil {
		return pipeline.Request{}, err
	}
	inst.ReasonableCutsOnly = o.reasonable
	inst.Electrical = o.electrical
	inst.Wiped = o.wiped

	req := pipeline.Request{Kind: pipeline.KindNode, Name: n.Name, Node: &inst}
	if o.port >= 0 {
		req.Kind = pipeline.KindPort
		req.Port = o.port
	}
	return req, nil
}

// pickNode runs the interactive picker. It returns nil when the user quits.
func pickNode(t *tech.Technology) (*tech.PrimitiveNode, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return nil, fmt.Errorf("node name required when not running in a terminal")
	}
	final, err := tea.NewProgram(NewNodePickerModel(t)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(NodePickerModel)
	if !ok || m.Selected == nil {
		printDetail("No selection made")
		return nil, nil
	}
	return m.Selected, nil
}

// emit writes a single result to path, or prints it when path is empty.
func emit(t *tech.Technology, fingerprint string, res *pipeline.Result, path string) error {
	if path != "" {
		doc := primio.Document{
			Technology:  t.Name,
			Fingerprint: fingerprint,
			Entries:     []primio.Entry{res.Entry()},
		}
		if err := primio.ExportJSON(doc, path); err != nil {
			return err
		}
		printSuccess("Built %s %s", res.Request.Kind, res.Request.Name)
		printStats(len(res.Polygons), res.CacheHit)
		printFile(path)
		return nil
	}

	tbl := newTable("Layer", "Style", "Port", "Points (grid)")
	for _, p := range res.Polygons {
		pts := make([]string, len(p.Points))
		for i, q := range p.Points {
			pts[i] = q.String()
		}
		port := "-"
		if p.Port != tech.NoPort {
			port = fmt.Sprint(p.Port)
		}
		tbl.Row(orDash(p.LayerName()), string(p.Style), port, strings.Join(pts, " "))
	}
	printSuccess("%s %s", res.Request.Kind, res.Request.Name)
	fmt.Println(tbl.Render())
	printStats(len(res.Polygons), res.CacheHit)
	return nil
}
