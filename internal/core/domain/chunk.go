package domain

// DocumentChunk represents a contiguous, size-bounded span of the source
// document treated as the unit of retrieval.
// Chunks are created once per document load and never mutated afterwards.
type DocumentChunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Content is the text content of this chunk.
	Content string

	// SourcePath is the path of the document the chunk was cut from.
	SourcePath string

	// ChunkIndex is the ordinal position within the document.
	ChunkIndex int

	// StartOffset is the character offset of the chunk in the original text.
	StartOffset int

	// EndOffset is the character offset just past the chunk in the original text.
	EndOffset int

	// Section is the label of the nearest enclosing section, if detected.
	// Empty when no section matched.
	Section string

	// Title is a heading-like line extracted from the chunk, if any.
	Title string

	// WordCount is the number of whitespace-separated words in Content.
	WordCount int

	// Preview is a short derived summary of the chunk content.
	Preview string
}
