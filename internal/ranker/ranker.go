// Package ranker scores document chunks against a query.
//
// The composite relevance score blends four independent signals:
// TF-IDF cosine similarity, verbatim keyword overlap, semantic-group
// expansion and section-name matching. Each sub-score is normalised to
// [0,1] and the blend weights form a convex combination, so the
// composite stays in [0,1] as well.
package ranker

import (
	"sort"
	"strings"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/index"
)

// substringBoost is added to the keyword score when the raw query
// appears verbatim in the chunk.
const substringBoost = 0.4

// expansionCredit is the partial score for a query term matched only
// through the semantic-expansion table.
const expansionCredit = 0.6

// sectionKeywordFactor discounts matches against a section's keyword
// list relative to matches against the label itself.
const sectionKeywordFactor = 0.8

// Ranker ranks chunks of one index generation against queries.
// It is read-only after construction and safe for concurrent use.
type Ranker struct {
	idx             *index.Index
	chunks          []domain.DocumentChunk
	lowered         []string // lowercased chunk contents, same order
	weights         domain.ScoringWeights
	expansions      map[string][]string
	sectionKeywords map[string][]string
}

// Option configures the ranker.
type Option func(*Ranker)

// WithWeights overrides the scoring blend. Invalid weights (not a
// convex combination) are ignored.
func WithWeights(w domain.ScoringWeights) Option {
	return func(r *Ranker) {
		if w.Valid() {
			r.weights = w
		}
	}
}

// WithExpansions overrides the semantic-expansion table.
func WithExpansions(table map[string][]string) Option {
	return func(r *Ranker) {
		if table != nil {
			r.expansions = table
		}
	}
}

// WithSectionKeywords overrides the section keyword table.
func WithSectionKeywords(table map[string][]string) Option {
	return func(r *Ranker) {
		if table != nil {
			r.sectionKeywords = table
		}
	}
}

// New creates a ranker over chunks indexed by idx. The chunk order
// must be the original document order; it is the tie-break order.
func New(idx *index.Index, chunks []domain.DocumentChunk, opts ...Option) *Ranker {
	r := &Ranker{
		idx:             idx,
		chunks:          chunks,
		lowered:         make([]string, len(chunks)),
		weights:         domain.DefaultScoringWeights(),
		expansions:      DefaultSemanticExpansions,
		sectionKeywords: DefaultSectionKeywords,
	}
	for i := range chunks {
		r.lowered[i] = strings.ToLower(chunks[i].Content)
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Search scores every chunk against the query and returns at most topK
// results ordered by descending composite score. Equal scores keep the
// original chunk order. Zero-score chunks are still eligible; callers
// apply their own cutoff.
func (r *Ranker) Search(query string, topK int) []domain.SimilarityResult {
	if topK <= 0 || len(r.chunks) == 0 {
		return []domain.SimilarityResult{}
	}

	queryVec := r.idx.Embed(query)
	queryTerms := index.Tokens(query)
	rawQuery := strings.ToLower(strings.TrimSpace(query))

	results := make([]domain.SimilarityResult, len(r.chunks))
	for i := range r.chunks {
		cosine := cosineScore(queryVec, r.idx.Embedding(r.chunks[i].ID))
		keyword := r.keywordScore(queryTerms, rawQuery, r.lowered[i])
		semantic := r.semanticScore(queryTerms, r.lowered[i])
		section := r.sectionScore(queryTerms, r.chunks[i].Section)

		score := r.weights.Cosine*cosine +
			r.weights.Keyword*keyword +
			r.weights.Semantic*semantic +
			r.weights.Section*section

		results[i] = domain.SimilarityResult{Chunk: r.chunks[i], Score: score}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}

// cosineScore computes dot product of two unit vectors, clamped to
// [0,1]. Zero-magnitude vectors short-circuit to 0.
func cosineScore(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	if dot < 0 {
		return 0
	}
	if dot > 1 {
		return 1
	}
	return dot
}

// keywordScore is the fraction of query terms present verbatim in the
// chunk, boosted when the raw query appears as a substring.
func (r *Ranker) keywordScore(queryTerms []string, rawQuery, chunkLower string) float64 {
	var score float64
	if len(queryTerms) > 0 {
		matched := 0
		for _, term := range queryTerms {
			if strings.Contains(chunkLower, term) {
				matched++
			}
		}
		score = float64(matched) / float64(len(queryTerms))
	}

	if rawQuery != "" && strings.Contains(chunkLower, rawQuery) {
		score += substringBoost
	}
	if score > 1 {
		score = 1
	}
	return score
}

// semanticScore awards full credit for verbatim term presence and
// partial credit for expansion-table matches, averaged over query terms.
func (r *Ranker) semanticScore(queryTerms []string, chunkLower string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}

	var total float64
	for _, term := range queryTerms {
		if strings.Contains(chunkLower, term) {
			total += 1.0
			continue
		}
		for _, related := range r.expansions[term] {
			if strings.Contains(chunkLower, related) {
				total += expansionCredit
				break
			}
		}
	}

	score := total / float64(len(queryTerms))
	if score > 1 {
		score = 1
	}
	return score
}

// sectionScore is the better of a direct label match and a discounted
// section-keyword match. A chunk without a section scores 0.
func (r *Ranker) sectionScore(queryTerms []string, section string) float64 {
	if section == "" || len(queryTerms) == 0 {
		return 0
	}

	sectionLower := strings.ToLower(section)
	labelMatches := 0
	for _, term := range queryTerms {
		if strings.Contains(sectionLower, term) {
			labelMatches++
		}
	}
	labelScore := float64(labelMatches) / float64(len(queryTerms))

	var keywordScore float64
	if keywords := r.sectionKeywords[section]; len(keywords) > 0 {
		matched := 0
		for _, term := range queryTerms {
			for _, kw := range keywords {
				if strings.Contains(kw, term) || strings.Contains(term, kw) {
					matched++
					break
				}
			}
		}
		keywordScore = sectionKeywordFactor * float64(matched) / float64(len(queryTerms))
	}

	if keywordScore > labelScore {
		return keywordScore
	}
	return labelScore
}
