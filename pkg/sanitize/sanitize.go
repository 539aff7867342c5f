// Package sanitize cleans collection names and filenames so they can be
// used as path segments on any platform.
package sanitize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// forbidden are the characters stripped from path segments
const forbidden = `\/:*?"<>|`

// Name removes the characters \ / : * ? " < > | and control characters
// from s and normalizes the result to NFC. Name is idempotent.
func Name(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbidden, r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return norm.NFC.String(cleaned)
}

// StripExtension removes the final ".ext" from a filename. A name whose
// only dot is the leading one (".bashrc") has no extension.
func StripExtension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i <= 0 || i == len(filename)-1 {
		return filename
	}
	return filename[:i]
}

// SplitExtension splits a filename at its final dot. A name without a dot
// has an empty extension.
func SplitExtension(filename string) (base, ext string) {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return filename, ""
	}
	return filename[:i], filename[i+1:]
}

// BaseName returns the last segment of a path split on either separator,
// independent of the host platform.
func BaseName(path string) string {
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// DirName returns everything before the last separator, including it
func DirName(path string) string {
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		return path[:i+1]
	}
	return ""
}
