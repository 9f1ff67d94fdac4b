package normalisers

import (
	"regexp"
	"strings"
)

// Markdown strips common markdown formatting, leaving heading text on
// its own line so section detection still sees it.
type Markdown struct{}

var (
	mdCodeBlock    = regexp.MustCompile("(?s)```[^`]*```")
	mdInlineCode   = regexp.MustCompile("`[^`]+`")
	mdImages       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLinks        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdHeadings     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdBlockquote   = regexp.MustCompile(`(?m)^>\s*`)
	mdRule         = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	mdListMarkers  = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	mdExtraBreaks  = regexp.MustCompile(`\n{3,}`)
	mdEmphasisRuns = strings.NewReplacer("**", "", "__", "", "*", "")
)

// Normalise implements Normaliser.
// This is a simplified conversion that handles common cases.
func (Markdown) Normalise(content string) string {
	content = mdCodeBlock.ReplaceAllString(content, "")
	content = mdInlineCode.ReplaceAllString(content, "")
	content = mdImages.ReplaceAllString(content, "")

	// Convert links [text](url) to just text
	content = mdLinks.ReplaceAllString(content, "$1")

	// Remove heading markers but keep the heading line
	content = mdHeadings.ReplaceAllString(content, "")

	content = mdEmphasisRuns.Replace(content)
	content = mdBlockquote.ReplaceAllString(content, "")
	content = mdRule.ReplaceAllString(content, "")
	content = mdListMarkers.ReplaceAllString(content, "")

	// Collapse runs of blank lines but preserve paragraph breaks
	content = mdExtraBreaks.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
