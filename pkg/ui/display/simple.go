package display

import (
	"fmt"
	"io"
	"strings"
)

// TextRenderer writes a View as plain text
type TextRenderer struct {
	writer io.Writer
}

// NewTextRenderer creates a new text renderer
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{writer: w}
}

// Render outputs the view. Each line is "<indent>[status] label  detail".
func (r *TextRenderer) Render(view *View) error {
	if view == nil {
		return nil
	}

	header := view.Command
	if view.DryRun {
		header += " (dry run)"
	}
	if _, err := fmt.Fprintln(r.writer, header); err != nil {
		return err
	}

	for _, section := range view.Sections {
		if section.Title != "" {
			if _, err := fmt.Fprintf(r.writer, "\n%s:\n", section.Title); err != nil {
				return err
			}
		}
		for _, line := range section.Lines {
			if _, err := fmt.Fprintln(r.writer, FormatLine(line)); err != nil {
				return err
			}
		}
	}

	if view.Raw != "" {
		if _, err := fmt.Fprintln(r.writer, view.Raw); err != nil {
			return err
		}
	}
	if view.Summary != "" {
		if _, err := fmt.Fprintf(r.writer, "\n%s\n", view.Summary); err != nil {
			return err
		}
	}
	return nil
}

// FormatLine renders a line without styling
func FormatLine(line Line) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(strings.Repeat("  ", line.Depth))
	fmt.Fprintf(&b, "%-10s %s", "["+string(line.Status)+"]", line.Label)
	if line.Detail != "" {
		b.WriteString("  ")
		b.WriteString(line.Detail)
	}
	return b.String()
}
