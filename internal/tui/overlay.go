package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderDialog draws content in a bordered card centred over base.
// Rows of base outside the card's horizontal span stay visible.
func renderDialog(base, content string, width, height int) string {
	card := dialogStyle.Render(content)
	if width <= 0 || height <= 0 {
		// size unknown before the first WindowSizeMsg
		return base + "\n\n" + card
	}
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
	baseRows := canvasRows(base, width, height)
	cardRows := canvasRows(placed, width, height)
	for i := range baseRows {
		start, end, ok := inkBounds(cardRows[i], width)
		if !ok {
			continue
		}
		left := ansi.Truncate(baseRows[i], start, "")
		mid := ansi.Truncate(skipColumns(cardRows[i], start), end-start, "")
		right := skipColumns(baseRows[i], end)
		baseRows[i] = fitWidth(left+mid+right, width)
	}
	return strings.Join(baseRows, "\n")
}

// inkBounds returns the column span holding non-blank cells of line.
func inkBounds(line string, width int) (start, end int, ok bool) {
	plain := ansi.Strip(ansi.Truncate(line, width, ""))
	trimmed := strings.TrimRight(plain, " ")
	start = len(trimmed) - len(strings.TrimLeft(trimmed, " "))
	end = ansi.StringWidth(trimmed)
	return start, end, end > start
}

func canvasRows(s string, width, height int) []string {
	rows := strings.Split(s, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i := range rows {
		rows[i] = fitWidth(rows[i], width)
	}
	return rows
}

func skipColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return ansi.TruncateLeft(s, cols, "")
}

func fitWidth(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
