// Package sections detects structural headings in document text and
// associates chunks with their nearest enclosing section label.
package sections

import (
	"regexp"
	"strings"
)

// Section is a detected heading-delimited region of the document.
type Section struct {
	// Label is the normalised section name, e.g. "VACATION POLICY".
	Label string

	// Heading is the raw heading line as it appears in the text.
	Heading string
}

// Heading detection limits for bare uppercase lines.
const (
	minHeadingLen = 5
	maxHeadingLen = 50
)

// numberedHeadingRe matches headings of the form "3. UPPERCASE WORDS".
var numberedHeadingRe = regexp.MustCompile(`^(\d+)\.\s+([A-Z][A-Z0-9&' -]+)$`)

// Extract scans the full document text for headings.
// Two styles are recognised: numbered headings ("<digits>. <UPPERCASE
// WORDS>") and bare uppercase lines between 5 and 50 characters.
// Sections are returned in document order.
func Extract(fullText string) []Section {
	var result []Section
	seen := make(map[string]bool)

	for _, line := range strings.Split(fullText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		label := headingLabel(line)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		result = append(result, Section{Label: label, Heading: line})
	}

	return result
}

// headingLabel returns the section label for a heading-like line, or
// empty when the line is not a heading.
func headingLabel(line string) string {
	if m := numberedHeadingRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[2])
	}
	if isBareUppercase(line) {
		return line
	}
	return ""
}

// isBareUppercase reports whether line is an all-uppercase heading
// within the accepted length bounds.
func isBareUppercase(line string) bool {
	if len(line) < minHeadingLen || len(line) > maxHeadingLen {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// FindForChunk returns the label of the section a chunk belongs to, or
// empty when no section matches. A label matches when at least half of
// its significant words (length > 3) appear in the chunk, with a
// minimum of 2 word matches for labels of 4 or more words. Failing
// that, the chunk's own lines are scanned for an embedded numbered
// heading. The first matching section wins; a chunk never carries more
// than one label.
func FindForChunk(chunkText string, secs []Section) string {
	chunkLower := strings.ToLower(chunkText)

	for _, sec := range secs {
		if labelMatches(sec.Label, chunkLower) {
			return sec.Label
		}
	}

	// Fallback: the chunk may open with its own numbered heading.
	for _, line := range strings.Split(chunkText, "\n") {
		line = strings.TrimSpace(line)
		if m := numberedHeadingRe.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[2])
		}
	}

	return ""
}

// labelMatches applies the significant-word rule for one label.
func labelMatches(label, chunkLower string) bool {
	words := strings.Fields(label)

	var significant []string
	for _, w := range words {
		if len(w) > 3 {
			significant = append(significant, w)
		}
	}
	if len(significant) == 0 {
		return false
	}

	matches := 0
	for _, w := range significant {
		if strings.Contains(chunkLower, strings.ToLower(w)) {
			matches++
		}
	}

	required := (len(significant) + 1) / 2
	if len(words) >= 4 && required < 2 {
		required = 2
	}

	return matches >= required
}

// Title returns a heading-like line from the first three non-empty
// lines of the chunk, or empty when none qualifies.
func Title(chunkText string) string {
	inspected := 0
	for _, line := range strings.Split(chunkText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		inspected++
		if label := headingLabel(line); label != "" {
			return line
		}
		if inspected == 3 {
			break
		}
	}
	return ""
}

// previewLimit caps the derived preview string.
const previewLimit = 100

// Preview derives a short summary for a chunk: the first sentence
// longer than 20 characters, truncated to 100 characters with an
// ellipsis, or failing that the first 100 characters of the chunk.
func Preview(chunkText string) string {
	text := strings.TrimSpace(chunkText)
	if text == "" {
		return ""
	}

	for _, sentence := range splitSentences(text) {
		if len(sentence) > 20 {
			return truncate(sentence, previewLimit)
		}
	}

	return truncate(text, previewLimit)
}

// truncate shortens s to limit characters, appending an ellipsis when
// anything was cut.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// splitSentences cuts text after sentence terminators.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
