package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/primgeom/pkg/tech"
)

// techCommand lists the primitives of the selected technology.
func (c *CLI) techCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tech",
		Short: "List the primitives and arcs of a technology",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, t, err := c.catalog()
			if err != nil {
				return err
			}

			fmt.Println(styleTitle.Render(t.Name))
			if t.Description != "" {
				printDetail("%s", t.Description)
			}
			printKeyValue("scale", fmt.Sprintf("%d grid/λ", t.Scale.GridPerLambda))
			printKeyValue("fingerprint", t.Fingerprint()[:12])
			printKeyValue("available", strings.Join(cat.Names(), ", "))
			printNewline()

			fmt.Println(nodeTable(t).Render())
			fmt.Println(arcTable(t).Render())
			printNewline()
			printNextStep("Build a primitive", appName+" node <name>")
			return nil
		},
	}
}

func nodeTable(t *tech.Technology) *table.Table {
	tbl := newTable("Primitive", "Function", "Special", "Size (λ)", "Layers", "Ports")
	for _, n := range t.Nodes() {
		ports := make([]string, len(n.Ports))
		for i, p := range n.Ports {
			ports[i] = p.Name
		}
		tbl.Row(
			n.Name,
			string(n.Function),
			orDash(string(n.Special)),
			formatLambda(t.Scale, n.DefaultWidth)+"x"+formatLambda(t.Scale, n.DefaultHeight),
			strconv.Itoa(len(n.Layers)),
			orDash(strings.Join(ports, ", ")),
		)
	}
	return tbl
}

func arcTable(t *tech.Technology) *table.Table {
	tbl := newTable("Arc", "Width (λ)", "Layers", "Extended", "Directional")
	for _, a := range t.Arcs() {
		layers := make([]string, len(a.Layers))
		for i, al := range a.Layers {
			layers[i] = al.Layer.Name
		}
		tbl.Row(
			a.Name,
			formatLambda(t.Scale, a.DefaultWidth),
			strings.Join(layers, ", "),
			yesNo(a.Extended),
			yesNo(a.Directional),
		)
	}
	return tbl
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
