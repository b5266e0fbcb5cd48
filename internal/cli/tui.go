package cli

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// DrawingListModel - Interactive drawing selection
// =============================================================================

// DrawingItem is one entry of the drawing list.
type DrawingItem struct {
	Name string // file name, e.g. plan-ground.svg
	Kind string // plan, elevation, section, adjacency
	View string // ground, S, A-A...
	Size int    // bytes
}

// newDrawingItems lists drawing files in kind order, then by name.
func newDrawingItems(files map[string][]byte) []DrawingItem {
	items := make([]DrawingItem, 0, len(files))
	for _, name := range slices.Sorted(maps.Keys(files)) {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		kind, view, ok := strings.Cut(stem, "-")
		if !ok {
			continue
		}
		items = append(items, DrawingItem{Name: name, Kind: kind, View: view, Size: len(files[name])})
	}
	slices.SortStableFunc(items, func(a, b DrawingItem) int {
		return kindOrder(a.Kind) - kindOrder(b.Kind)
	})
	return items
}

func kindOrder(kind string) int {
	switch kind {
	case "plan":
		return 0
	case "elevation":
		return 1
	case "section":
		return 2
	}
	return 3
}

// DrawingListModel is the bubbletea model for picking drawings to save.
// Space toggles an item, enter confirms the marked items (or the item under
// the cursor when none are marked).
type DrawingListModel struct {
	Title    string
	Items    []DrawingItem
	Cursor   int
	Offset   int
	Height   int
	Marked   map[int]bool
	Selected []DrawingItem
}

// NewDrawingListModel creates a list over items.
func NewDrawingListModel(title string, items []DrawingItem) DrawingListModel {
	return DrawingListModel{Title: title, Items: items, Height: 15, Marked: map[int]bool{}}
}

func (m DrawingListModel) Init() tea.Cmd {
	return nil
}

func (m DrawingListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Items) > 0 {
				if m.Marked[m.Cursor] {
					delete(m.Marked, m.Cursor)
				} else {
					m.Marked[m.Cursor] = true
				}
			}
		case "a":
			if len(m.Marked) == len(m.Items) {
				m.Marked = map[int]bool{}
			} else {
				for i := range m.Items {
					m.Marked[i] = true
				}
			}
		case "enter":
			if len(m.Items) == 0 {
				return m, tea.Quit
			}
			m.Selected = nil
			for i, item := range m.Items {
				if m.Marked[i] {
					m.Selected = append(m.Selected, item)
				}
			}
			if len(m.Selected) == 0 {
				m.Selected = []DrawingItem{m.Items[m.Cursor]}
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m DrawingListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space mark  a all  ⏎ save  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		item := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if m.Marked[i] {
			mark = iconSuccess
		}
		rows = append(rows, []string{cursor + mark, item.Kind, item.View, item.Name, formatSize(item.Size)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("", "Kind", "View", "File", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleTableHeader
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case m.Marked[idx]:
				return lipgloss.NewStyle().Foreground(colorGreen)
			case col == 4:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d marked", m.Cursor+1, len(m.Items), len(m.Marked))))

	return b.String()
}

func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
