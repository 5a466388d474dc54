package tui

import "github.com/mattn/go-runewidth"

// PopupIndent centers a popup box under its anchor column, clamped so the box
// stays on screen. An unknown terminal width leaves the box at the left edge.
func PopupIndent(anchorX, boxWidth, totalWidth int) int {
	if totalWidth <= 0 || boxWidth >= totalWidth {
		return 0
	}
	indent := anchorX - boxWidth/2
	if indent < 0 {
		indent = 0
	}
	if indent > totalWidth-boxWidth {
		indent = totalWidth - boxWidth
	}
	return indent
}

// Truncate trims a plain string to the given display width, appending an
// ellipsis when something was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
