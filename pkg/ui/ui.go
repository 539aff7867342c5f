// Package ui renders command results as rich terminal output, plain text
// or JSON.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/attachlink/pkg/ui/json"
	"github.com/arthur-debert/attachlink/pkg/ui/terminal"
	"github.com/arthur-debert/attachlink/pkg/ui/text"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders a command result. Unknown types are printed as-is.
	RenderResult(result interface{}) error

	RenderError(err error) error
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output
// when it is a file and falls back to terminal rendering otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
