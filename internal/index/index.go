// Package index builds an in-memory TF-IDF index over document chunks.
//
// The index holds a vocabulary, a document-frequency derived IDF table
// and one L2-normalised embedding per chunk. It is immutable once
// built; a document reload builds a fresh index generation.
package index

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// DefaultDimensionCap bounds the embedding dimension. The vector uses a
// stable prefix of the sorted vocabulary, never a hash.
const DefaultDimensionCap = 500

// nonWordRe strips characters that are not word characters or whitespace.
var nonWordRe = regexp.MustCompile(`[^a-z0-9_\s]+`)

// Index is one immutable index generation over a chunk set.
type Index struct {
	vocabulary  map[string]int       // term -> dimension slot, capped
	idf         map[string]float64   // term -> inverse document frequency
	slotIDF     []float64            // IDF by dimension slot
	embeddings  map[string][]float64 // chunk ID -> L2-normalised vector
	dimension   int
	totalChunks int
}

// Option configures index construction.
type Option func(*builder)

type builder struct {
	dimensionCap int
}

// WithDimensionCap sets the maximum embedding dimension.
func WithDimensionCap(n int) Option {
	return func(b *builder) {
		if n > 0 {
			b.dimensionCap = n
		}
	}
}

// Build constructs an index over the given chunks. The vocabulary,
// IDF table and chunk embeddings are always built together so they
// stay consistent with the chunk set.
func Build(chunks []domain.DocumentChunk, opts ...Option) *Index {
	b := &builder{dimensionCap: DefaultDimensionCap}
	for _, opt := range opts {
		opt(b)
	}

	// Document frequency per term.
	df := make(map[string]int)
	for i := range chunks {
		seen := make(map[string]struct{})
		for _, term := range Tokens(chunks[i].Content) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	// Stable vocabulary enumeration: sorted terms, capped prefix.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	dimension := len(terms)
	if dimension > b.dimensionCap {
		dimension = b.dimensionCap
	}

	idx := &Index{
		vocabulary:  make(map[string]int, dimension),
		idf:         make(map[string]float64, len(terms)),
		slotIDF:     make([]float64, dimension),
		embeddings:  make(map[string][]float64, len(chunks)),
		dimension:   dimension,
		totalChunks: len(chunks),
	}

	total := float64(len(chunks))
	for i, term := range terms {
		// +1 smoothing keeps the score finite even in degenerate cases.
		idx.idf[term] = math.Log(total / float64(df[term]+1))
		if i < dimension {
			idx.vocabulary[term] = i
			idx.slotIDF[i] = idx.idf[term]
		}
	}

	for i := range chunks {
		idx.embeddings[chunks[i].ID] = idx.Embed(chunks[i].Content)
	}

	return idx
}

// Embed computes the TF-IDF embedding for arbitrary text using the
// index vocabulary. Terms outside the vocabulary contribute zero
// weight. A text with no recognised terms yields a zero vector.
func (idx *Index) Embed(text string) []float64 {
	vec := make([]float64, idx.dimension)
	if idx.dimension == 0 {
		return vec
	}

	tf := make(map[int]int)
	for _, term := range Tokens(text) {
		if slot, ok := idx.vocabulary[term]; ok {
			tf[slot]++
		}
	}
	if len(tf) == 0 {
		return vec
	}

	for slot, count := range tf {
		vec[slot] = float64(count) * idx.slotIDF[slot]
	}

	return normalize(vec)
}

// Embedding returns the stored embedding for a chunk, or nil when the
// chunk is unknown to this generation.
func (idx *Index) Embedding(chunkID string) []float64 {
	return idx.embeddings[chunkID]
}

// Dimension returns the embedding dimensionality.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// VocabularySize returns the number of terms carrying IDF weights.
func (idx *Index) VocabularySize() int {
	return len(idx.idf)
}

// IDF returns the inverse document frequency for a term, and whether
// the term is part of the vocabulary.
func (idx *Index) IDF(term string) (float64, bool) {
	v, ok := idx.idf[term]
	return v, ok
}

// TotalChunks returns the number of chunks this generation was built over.
func (idx *Index) TotalChunks() int {
	return idx.totalChunks
}

// normalize scales vec to unit L2 norm. A zero vector stays zero.
func normalize(vec []float64) []float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Tokens normalises text into index terms: lowercased, non-word
// characters stripped, split on whitespace, with tokens of length 2 or
// less and stop-words removed.
func Tokens(text string) []string {
	cleaned := nonWordRe.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// stopwords is a fixed closed list of common English function words.
var stopwords = func() map[string]struct{} {
	words := []string{
		"the", "and", "for", "are", "but", "not", "you", "all", "can",
		"had", "her", "was", "one", "our", "out", "day", "get", "has",
		"him", "his", "how", "man", "new", "now", "old", "see", "two",
		"way", "who", "did", "its", "let", "she", "too", "use", "that",
		"with", "have", "this", "will", "your", "from", "they", "know",
		"want", "been", "good", "much", "some", "time", "very", "when",
		"come", "here", "just", "like", "long", "make", "many", "more",
		"only", "over", "such", "take", "than", "them", "well", "were",
		"what", "does", "about", "which", "their", "there", "would",
		"could", "should", "these", "those", "where", "after", "before",
		"between", "into", "through", "during", "under", "above", "below",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
