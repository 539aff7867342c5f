package display

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/dustin/go-humanize"
)

// FromResult builds the view for a known command result. ok is false for
// types it does not know, which renderers then print as-is.
func FromResult(result interface{}) (view *View, ok bool) {
	switch v := result.(type) {
	case *types.ConvertResult:
		return ConvertView(v), true
	case *types.RenameResult:
		return RenameView(v), true
	case *types.SyncTitlesResult:
		return SyncTitlesView(v), true
	case *types.ImportResult:
		return ImportView(v), true
	case []types.ListedItem:
		return ItemsView(v), true
	case []types.ListedCollection:
		return CollectionsView(v), true
	case *types.GenConfigResult:
		return GenConfigView(v), true
	case *types.Item:
		return createdView("create item", v.Title, v.Key), true
	case *types.Collection:
		return createdView("create collection", v.Name, v.Key), true
	case *View:
		return v, true
	}
	return nil, false
}

func newView(command string) *View {
	return &View{Command: command, Timestamp: time.Now()}
}

// ConvertView lists every attachment a conversion handled
func ConvertView(r *types.ConvertResult) *View {
	view := newView("convert")
	view.DryRun = r.DryRun

	section := Section{Title: "Destination " + filepath.Join(r.BaseDir, r.CollectionPath)}
	for _, res := range r.Results {
		line := Line{Label: relocateLabel(res)}
		switch res.Outcome {
		case types.OutcomeSuccess:
			line.Status = StatusOK
			if r.DryRun {
				line.Status = StatusPlanned
			}
			line.Detail = res.Destination
		case types.OutcomeSkipped:
			line.Status = StatusSkipped
			line.Detail = res.Reason
		default:
			line.Status = StatusFailed
			line.Detail = res.Reason
			if res.Err != nil {
				line.Detail = res.Err.Error()
			}
		}
		section.Lines = append(section.Lines, line)
	}
	view.Sections = []Section{section}

	verb := "converted"
	if r.DryRun {
		verb = "would be converted"
	}
	view.Summary = fmt.Sprintf("%d %s, %d skipped, %d failed",
		r.Count(types.OutcomeSuccess), verb, r.Count(types.OutcomeSkipped), r.Count(types.OutcomeFailed))
	return view
}

func relocateLabel(res types.RelocateResult) string {
	if res.Source != "" {
		return filepath.Base(res.Source)
	}
	if res.Title != "" {
		return res.Title
	}
	return fmt.Sprintf("item %d", res.ItemID)
}

// RenameView reports one attachment rename
func RenameView(r *types.RenameResult) *View {
	view := newView("rename")
	line := Line{Status: StatusOK, Label: filepath.Base(r.OldPath), Detail: filepath.Base(r.NewPath)}
	if !r.Renamed {
		line.Status = StatusSkipped
		line.Detail = "name is taken or the file is missing"
	}
	view.Sections = []Section{{Lines: []Line{line}}}
	view.Summary = "title: " + r.Title
	return view
}

// SyncTitlesView reports how many titles changed
func SyncTitlesView(r *types.SyncTitlesResult) *View {
	view := newView("sync-titles")
	section := Section{}
	for _, id := range r.Changed {
		section.Lines = append(section.Lines, Line{Status: StatusOK, Label: fmt.Sprintf("item %d", id), Detail: "title updated"})
	}
	view.Sections = []Section{section}
	view.Summary = fmt.Sprintf("%d of %d titles updated", len(r.Changed), r.Checked)
	return view
}

// ImportView reports an added file
func ImportView(r *types.ImportResult) *View {
	view := newView("add")
	view.Sections = []Section{{Lines: []Line{{
		Status: StatusOK,
		Label:  r.Item.Title,
		Detail: r.Path,
	}}}}
	view.Summary = "key " + r.Item.Key
	return view
}

var linkModeLabels = map[types.LinkMode]string{
	types.LinkModeImported: "managed",
	types.LinkModeLinked:   "linked",
}

func linkModeLabel(mode types.LinkMode) string {
	if label, ok := linkModeLabels[mode]; ok {
		return label
	}
	return string(mode)
}

// ItemsView lists items with file state for attachments
func ItemsView(items []types.ListedItem) *View {
	view := newView("list items")
	section := Section{}
	for _, listed := range items {
		item := listed.Item
		line := Line{Status: StatusInfo, Label: fmt.Sprintf("%s  %s", item.Key, item.Title)}
		if item.ParentID != 0 {
			line.Depth = 1
		}
		if item.IsAttachment() {
			switch {
			case listed.Path == "":
				line.Status = StatusMissing
				line.Detail = "no path"
			case listed.Exists:
				line.Detail = fmt.Sprintf("%s (%s, %s)", listed.Path, linkModeLabel(item.LinkMode), humanize.Bytes(uint64(listed.Size)))
			default:
				line.Status = StatusMissing
				line.Detail = listed.Path
			}
		} else {
			line.Detail = string(item.Kind)
		}
		section.Lines = append(section.Lines, line)
	}
	view.Sections = []Section{section}
	view.Summary = fmt.Sprintf("%d items", len(items))
	return view
}

// CollectionsView lists the collection tree with destination paths
func CollectionsView(listed []types.ListedCollection) *View {
	view := newView("list collections")
	section := Section{}
	for _, c := range listed {
		section.Lines = append(section.Lines, Line{
			Status: StatusInfo,
			Label:  fmt.Sprintf("%s  %s", c.Collection.Key, c.Collection.Name),
			Detail: c.Path,
			Depth:  c.Depth,
		})
	}
	view.Sections = []Section{section}
	view.Summary = fmt.Sprintf("%d collections", len(listed))
	return view
}

// GenConfigView shows generated config or the files written
func GenConfigView(r *types.GenConfigResult) *View {
	view := newView("genconfig")
	if len(r.FilesWritten) == 0 {
		view.Raw = strings.TrimRight(r.ConfigContent, "\n")
		return view
	}
	section := Section{}
	for _, f := range r.FilesWritten {
		section.Lines = append(section.Lines, Line{Status: StatusOK, Label: f, Detail: "written"})
	}
	view.Sections = []Section{section}
	return view
}

func createdView(command, name, key string) *View {
	view := newView(command)
	view.Sections = []Section{{Lines: []Line{{Status: StatusOK, Label: name, Detail: key}}}}
	return view
}
