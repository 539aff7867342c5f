// Package display turns command results into a format-neutral view that the
// terminal, text and JSON renderers all draw from.
package display

import "time"

// Status classifies a single line of output
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
	StatusPlanned Status = "planned"
	StatusInfo    Status = "info"
	StatusMissing Status = "missing"
)

// Line is one entry in a section
type Line struct {
	Status Status `json:"status"`
	Label  string `json:"label"`

	// Detail is shown after the label: a path, a reason, a size
	Detail string `json:"detail,omitempty"`

	// Depth indents the line for tree-shaped listings
	Depth int `json:"depth,omitempty"`
}

// Section groups related lines under a title
type Section struct {
	Title string `json:"title,omitempty"`
	Lines []Line `json:"lines"`
}

// View is a rendered-agnostic description of a command's output
type View struct {
	Command   string    `json:"command"`
	Summary   string    `json:"summary,omitempty"`
	Sections  []Section `json:"sections,omitempty"`
	DryRun    bool      `json:"dryRun,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	// Raw is printed verbatim after the sections, e.g. generated config
	Raw string `json:"raw,omitempty"`
}

// Empty reports whether the view has no lines to show
func (v *View) Empty() bool {
	for _, s := range v.Sections {
		if len(s.Lines) > 0 {
			return false
		}
	}
	return v.Raw == ""
}

// Counts tallies lines by status across all sections
func (v *View) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, s := range v.Sections {
		for _, l := range s.Lines {
			counts[l.Status]++
		}
	}
	return counts
}
