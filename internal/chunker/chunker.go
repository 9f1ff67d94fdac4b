// Package chunker splits raw document text into overlapping passages.
//
// Splitting prefers paragraph boundaries, falls back to sentence
// boundaries for oversized paragraphs, and seeds each chunk with an
// overlap tail from its predecessor so context survives the cut.
package chunker

import (
	"strings"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// DefaultSeparator is the paragraph separator used for the primary split.
const DefaultSeparator = "\n\n"

// Chunker splits document content into size-bounded overlapping chunks.
type Chunker struct {
	chunkSize int
	overlap   int
	separator string
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// WithSeparator sets the paragraph separator.
func WithSeparator(sep string) Option {
	return func(c *Chunker) {
		if sep != "" {
			c.separator = sep
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
		separator: DefaultSeparator,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Split splits text using the configured parameters.
func (c *Chunker) Split(text string) []string {
	return SplitText(text, c.chunkSize, c.overlap, c.separator)
}

// SplitText splits text into ordered, non-empty chunks of at most
// chunkSize characters where possible. Paragraphs (separated by
// separator) are accumulated into a buffer; when the next paragraph
// would overflow the buffer the chunk is flushed and the next buffer is
// seeded with an overlap tail from the flushed chunk. A paragraph that
// alone exceeds chunkSize is split at sentence boundaries; a single
// sentence that still exceeds chunkSize is emitted whole.
//
// The result is deterministic: identical input and parameters always
// produce the identical chunk sequence.
func SplitText(text string, chunkSize, chunkOverlap int, separator string) []string {
	if separator == "" {
		separator = DefaultSeparator
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 4
	}

	var chunks []string
	var current string

	flush := func() {
		trimmed := strings.TrimSpace(current)
		if trimmed != "" {
			chunks = append(chunks, trimmed)
			current = overlapTail(trimmed, chunkOverlap)
		} else {
			current = ""
		}
	}

	for _, para := range strings.Split(text, separator) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		// Oversized paragraphs bypass accumulation and are split
		// at sentence boundaries instead.
		if len(para) > chunkSize {
			flush()
			current = ""
			chunks = append(chunks, splitBySentences(para, chunkSize)...)
			continue
		}

		if current == "" {
			current = para
			continue
		}

		if len(current)+len(separator)+len(para) > chunkSize {
			flush()
			if current == "" {
				current = para
			} else {
				current = current + separator + para
			}
			continue
		}

		current = current + separator + para
	}

	if trimmed := strings.TrimSpace(current); trimmed != "" {
		// The remaining buffer may be pure overlap tail already
		// emitted as part of the previous chunk.
		if len(chunks) == 0 || !strings.HasSuffix(chunks[len(chunks)-1], trimmed) {
			chunks = append(chunks, trimmed)
		}
	}

	return chunks
}

// overlapTail returns the tail of chunk used to seed the next buffer.
// The tail is at most overlap characters. When a sentence boundary (a
// period) exists past the midpoint of the overlap window the tail is
// trimmed to start just after it, otherwise the cut is a hard one.
func overlapTail(chunk string, overlap int) string {
	if overlap <= 0 {
		return ""
	}
	if len(chunk) <= overlap {
		return chunk
	}

	window := chunk[len(chunk)-overlap:]
	mid := overlap / 2
	if idx := strings.Index(window[mid:], "."); idx >= 0 {
		tail := strings.TrimSpace(window[mid+idx+1:])
		if tail != "" {
			return tail
		}
	}
	return window
}

// sentenceTerminators end a sentence for the recursive split.
const sentenceTerminators = ".!?"

// splitBySentences splits an oversized paragraph at sentence boundaries,
// accumulating sentences up to chunkSize. A sentence longer than
// chunkSize is emitted whole; there is no further splitting.
func splitBySentences(para string, chunkSize int) []string {
	sentences := splitSentences(para)

	var chunks []string
	var current string

	for _, sentence := range sentences {
		if len(sentence) > chunkSize {
			if current != "" {
				chunks = append(chunks, current)
				current = ""
			}
			chunks = append(chunks, sentence)
			continue
		}

		if current == "" {
			current = sentence
			continue
		}

		if len(current)+1+len(sentence) > chunkSize {
			chunks = append(chunks, current)
			current = sentence
			continue
		}

		current = current + " " + sentence
	}

	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}

// splitSentences cuts text after each sentence terminator, trimming
// each piece. A trailing fragment without a terminator is kept.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if strings.ContainsRune(sentenceTerminators, r) {
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
