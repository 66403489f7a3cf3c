package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/primgeom/pkg/tech"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// NodePickerModel - Interactive primitive selection
// =============================================================================

// NodePickerModel is the bubbletea model for choosing a primitive node.
type NodePickerModel struct {
	Nodes    []*tech.PrimitiveNode
	Scale    tech.Scale
	Cursor   int
	Selected *tech.PrimitiveNode
	Height   int
	Offset   int
}

// NewNodePickerModel creates a picker over the nodes of t.
func NewNodePickerModel(t *tech.Technology) NodePickerModel {
	return NodePickerModel{
		Nodes:  t.Nodes(),
		Scale:  t.Scale,
		Height: 15,
	}
}

func (m NodePickerModel) Init() tea.Cmd {
	return nil
}

func (m NodePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Nodes) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Nodes[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m NodePickerModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Primitive"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Nodes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			n.Name,
			string(n.Function),
			orDash(string(n.Special)),
			m.lambdaSize(n),
			strconv.Itoa(len(n.Ports)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Primitive", "Function", "Special", "Size (λ)", "Ports").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Nodes))))

	return b.String()
}

func (m NodePickerModel) lambdaSize(n *tech.PrimitiveNode) string {
	return formatLambda(m.Scale, n.DefaultWidth) + "x" + formatLambda(m.Scale, n.DefaultHeight)
}

// formatLambda renders a grid length in lambda without trailing zeros.
func formatLambda(sc tech.Scale, grid int64) string {
	return strconv.FormatFloat(sc.ToLambda(grid), 'f', -1, 64)
}
