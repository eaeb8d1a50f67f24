package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/Zuo-Peng/cuedit/internal/cue"
	"github.com/Zuo-Peng/cuedit/internal/timestamp"
)

// timeColWidth fits times up to 99999.999 seconds.
const timeColWidth = 9

func (m *model) renderHeader(width int) string {
	h := fmt.Sprintf("  %*s  %s", timeColWidth, "Time", "Text")
	return styleHeader.Render(runewidth.Truncate(h, width, ""))
}

// renderTable renders the visible window of rows.
func (m *model) renderTable(width, height int) string {
	if len(m.rows) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No rows. Press + to add one.")
	}

	var lines []string
	for i := m.listOffset; i < len(m.rows) && len(lines) < height; i++ {
		lines = append(lines, formatRow(m.rows[i], width, i == m.selected))
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatRow renders one row as "[>] time  text", truncated to width.
func formatRow(r cue.Row, width int, selected bool) string {
	ts := fmt.Sprintf("%*s", timeColWidth, timestamp.Format(r.Time))

	textMax := max(width-2-timeColWidth-2, 0)
	text := strings.ReplaceAll(r.Text, "\n", " ")
	if runewidth.StringWidth(text) > textMax {
		text = runewidth.Truncate(text, textMax, "…")
	}

	if selected {
		return styleRowSelected.Render("> " + ts + "  " + text)
	}
	return "  " + styleTime.Render(ts) + "  " + styleRowNormal.Render(text)
}

// adjustListScroll keeps the selected row visible within the table.
func (m *model) adjustListScroll(visible int) {
	visible = max(visible, 1)
	if m.selected != cue.NoSelection {
		if m.selected < m.listOffset {
			m.listOffset = m.selected
		}
		if m.selected >= m.listOffset+visible {
			m.listOffset = m.selected - visible + 1
		}
	}
	m.listOffset = min(m.listOffset, max(len(m.rows)-visible, 0))
}
