// Package normalisers converts document formats to the plain text the
// retrieval pipeline chunks and indexes. The normaliser is selected by
// file extension; unknown extensions pass through untouched.
package normalisers

import (
	"path/filepath"
	"strings"
)

// Normaliser converts one document format to plain text.
type Normaliser interface {
	// Normalise returns the plain-text rendition of content.
	Normalise(content string) string
}

// byExtension maps lower-case file extensions to normalisers.
var byExtension = map[string]Normaliser{
	".md":       Markdown{},
	".markdown": Markdown{},
	".html":     HTML{},
	".htm":      HTML{},
}

// ForPath returns the normaliser for the given file path.
func ForPath(path string) Normaliser {
	ext := strings.ToLower(filepath.Ext(path))
	if n, ok := byExtension[ext]; ok {
		return n
	}
	return Plaintext{}
}

// Plaintext passes content through unchanged.
type Plaintext struct{}

// Normalise implements Normaliser.
func (Plaintext) Normalise(content string) string {
	return content
}
