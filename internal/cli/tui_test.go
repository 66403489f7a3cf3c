package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/primgeom/pkg/tech/sample"
)

func press(m NodePickerModel, keys ...tea.KeyMsg) (NodePickerModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(NodePickerModel)
	}
	return m, cmd
}

func TestNodePickerNavigation(t *testing.T) {
	m := NewNodePickerModel(sample.Technology())
	if len(m.Nodes) == 0 {
		t.Fatal("sample technology has no nodes")
	}

	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}

	m, _ = press(m, up)
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}
	m, _ = press(m, down, down, up)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected != m.Nodes[1] {
		t.Errorf("selected %v, want %s", m.Selected, m.Nodes[1].Name)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestNodePickerScrolls(t *testing.T) {
	m := NewNodePickerModel(sample.Technology())
	m.Height = 2
	for range len(m.Nodes) + 3 {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	}
	if m.Cursor != len(m.Nodes)-1 {
		t.Errorf("cursor = %d, want last row %d", m.Cursor, len(m.Nodes)-1)
	}
	if m.Offset != m.Cursor-1 {
		t.Errorf("offset = %d, want %d", m.Offset, m.Cursor-1)
	}
	if !strings.Contains(m.View(), m.Nodes[m.Cursor].Name) {
		t.Error("view should show the selected row")
	}
}

func TestNodePickerQuit(t *testing.T) {
	m := NewNodePickerModel(sample.Technology())
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if m.Selected != nil {
		t.Error("quit should not select")
	}
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestFormatLambda(t *testing.T) {
	sc := sample.Technology().Scale
	tests := map[int64]string{0: "0", 400: "1", 1000: "2.5", -200: "-0.5"}
	for grid, want := range tests {
		if got := formatLambda(sc, grid); got != want {
			t.Errorf("formatLambda(%d) = %q, want %q", grid, got, want)
		}
	}
}
