// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/attachlink/pkg/ui/display"
	"github.com/arthur-debert/attachlink/pkg/ui/output/styles"
)

// Renderer provides rich terminal output using the style registry
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

var statusStyles = map[display.Status]string{
	display.StatusOK:      "Success",
	display.StatusPlanned: "Info",
	display.StatusSkipped: "Warning",
	display.StatusMissing: "Warning",
	display.StatusFailed:  "Error",
	display.StatusInfo:    "Muted",
}

var statusSymbols = map[display.Status]string{
	display.StatusOK:      "✓",
	display.StatusPlanned: "→",
	display.StatusSkipped: "-",
	display.StatusMissing: "?",
	display.StatusFailed:  "✗",
	display.StatusInfo:    "•",
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	view, ok := display.FromResult(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	_, err := fmt.Fprint(r.output, r.renderView(view))
	return err
}

func (r *Renderer) renderView(view *display.View) string {
	var b strings.Builder

	b.WriteString(styles.GetStyle("Header").Render(view.Command))
	b.WriteString("\n")

	for _, section := range view.Sections {
		if section.Title != "" {
			b.WriteString(styles.GetStyle("Section").Render(section.Title))
			b.WriteString("\n")
		}
		for _, line := range section.Lines {
			b.WriteString(renderLine(line))
			b.WriteString("\n")
		}
	}

	if view.Raw != "" {
		b.WriteString(view.Raw)
		b.WriteString("\n")
	}
	if view.Summary != "" {
		b.WriteString("\n")
		b.WriteString(styles.GetStyle("Bold").Render(view.Summary))
		b.WriteString("\n")
	}
	if view.DryRun {
		b.WriteString(styles.GetStyle("DryRun").Render("DRY RUN - no changes were made"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderLine(line display.Line) string {
	status := styles.MergeStyles("Status", statusStyles[line.Status]).
		Render(statusSymbols[line.Status] + " " + string(line.Status))

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(strings.Repeat("  ", line.Depth))
	b.WriteString(status)
	b.WriteString(" ")
	b.WriteString(line.Label)
	if line.Detail != "" {
		b.WriteString("  ")
		b.WriteString(styles.GetStyle("FilePath").Render(line.Detail))
	}
	return b.String()
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, styles.GetStyle("Error").Render("Error: "+err.Error()))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.GetStyle("Info").Render(msg))
	return err
}
