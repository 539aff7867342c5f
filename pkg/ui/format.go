package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how command results are written
type Format int

const (
	// FormatAuto picks terminal or text output from the destination
	FormatAuto Format = iota
	// FormatTerminal renders colors and symbols
	FormatTerminal
	// FormatText renders plain lines, suitable for pipes and logs
	FormatText
	// FormatJSON renders machine-readable JSON output
	FormatJSON
)

var formatNames = map[Format]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
}

// aliases accepted by ParseFormat in addition to the canonical names
var formatAliases = map[string]Format{
	"":         FormatAuto,
	"terminal": FormatTerminal,
	"plain":    FormatText,
}

// FormatNames lists the canonical names, for flag help
func FormatNames() []string {
	return []string{"auto", "term", "text", "json"}
}

// String returns the canonical name of the format
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat parses a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	if f, ok := formatAliases[s]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("unknown format: %s (want one of %s)", s, strings.Join(FormatNames(), ", "))
}

// DetectFormat picks terminal output only for a color-capable terminal.
// NO_COLOR and TERM=dumb force plain text.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return FormatText
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
