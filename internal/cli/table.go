package cli

import (
	"strings"
)

// Table is a simple text table with dynamic column widths and optional
// per-column wrapping.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		padding:   2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth caps a column's width; longer text wraps.
func (t *Table) SetColumnMaxWidth(colIndex, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// AddRow appends a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	normalized := make([]string, len(t.headers))
	copy(normalized, row)
	t.rows = append(t.rows, normalized)
}

// Render formats the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Wrap cells that exceed their column cap.
	wrapped := make([][][]string, len(t.rows))
	for i, row := range t.rows {
		wrapped[i] = make([][]string, len(row))
		for j, cell := range row {
			if maxWidth := t.maxWidths[j]; maxWidth > 0 {
				wrapped[i][j] = wrapText(cell, maxWidth)
			} else {
				wrapped[i][j] = []string{cell}
			}
		}
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range wrapped {
		for j, cell := range row {
			for _, line := range cell {
				if len(line) > widths[j] {
					widths[j] = len(line)
				}
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var b strings.Builder

	parts := make([]string, len(t.headers))
	for i, h := range t.headers {
		parts[i] = padRight(h, widths[i])
	}
	b.WriteString(strings.Join(parts, gap))
	b.WriteString("\n")

	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(parts, gap))
	b.WriteString("\n")

	for _, row := range wrapped {
		lines := 1
		for _, cell := range row {
			if len(cell) > lines {
				lines = len(cell)
			}
		}
		for line := 0; line < lines; line++ {
			for j := range t.headers {
				text := ""
				if j < len(row) && line < len(row[j]) {
					text = row[j][line]
				}
				parts[j] = padRight(text, widths[j])
			}
			b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// wrapText wraps text at word boundaries to fit the width. Words longer
// than the width are broken mid-word.
func wrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		for len(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}

		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if len(candidate) <= width {
			current = candidate
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return lines
}
