package types

import "strings"

// AutoTitleFor returns the host's default attachment title for a content
// type, falling back to the filename for types without a generic label.
func AutoTitleFor(contentType, filename string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case ct == "application/pdf":
		return "PDF"
	case ct == "application/epub+zip":
		return "EPUB"
	case ct == "text/html" || ct == "application/xhtml+xml":
		return "Snapshot"
	case strings.HasPrefix(ct, "image/"):
		return "Image"
	case strings.HasPrefix(ct, "video/"):
		return "Video"
	case strings.HasPrefix(ct, "audio/"):
		return "Audio"
	}
	return filename
}
