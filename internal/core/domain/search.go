package domain

// SimilarityResult represents a single retrieval hit.
// Results are produced fresh per query and never persisted.
type SimilarityResult struct {
	// Chunk is the matched document chunk.
	Chunk DocumentChunk

	// Score is the composite relevance score in [0,1].
	Score float64
}

// ScoringWeights blends the four retrieval sub-scores into a composite.
// The weights must sum to 1.0 so the composite stays a convex combination.
type ScoringWeights struct {
	// Cosine weights TF-IDF vector similarity.
	Cosine float64

	// Keyword weights verbatim query-term overlap.
	Keyword float64

	// Semantic weights expansion-table matches.
	Semantic float64

	// Section weights section-label and section-keyword matches.
	Section float64
}

// DefaultScoringWeights are the tuned blend constants.
// They are empirical values, kept configurable for calibration.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Cosine:   0.25,
		Keyword:  0.35,
		Semantic: 0.20,
		Section:  0.20,
	}
}

// Valid reports whether the weights form a convex combination.
func (w ScoringWeights) Valid() bool {
	const tolerance = 1e-9
	if w.Cosine < 0 || w.Keyword < 0 || w.Semantic < 0 || w.Section < 0 {
		return false
	}
	sum := w.Cosine + w.Keyword + w.Semantic + w.Section
	return sum > 1.0-tolerance && sum < 1.0+tolerance
}
