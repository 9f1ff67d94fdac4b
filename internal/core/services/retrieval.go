package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/custodia-labs/docchat/internal/chunker"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/index"
	"github.com/custodia-labs/docchat/internal/logger"
	"github.com/custodia-labs/docchat/internal/normalisers"
	"github.com/custodia-labs/docchat/internal/ranker"
	"github.com/custodia-labs/docchat/internal/sections"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultTopK is the result count used when a caller passes topK <= 0.
const DefaultTopK = 5

// generation is one immutable snapshot of loaded document state.
// All fields are read-only once the generation is published, so
// concurrent searches need no locking.
type generation struct {
	path      string
	chunks    []domain.DocumentChunk
	sections  []sections.Section
	index     *index.Index
	ranker    *ranker.Ranker
	byID      map[string]int
	bySection map[string][]int
}

// RetrievalService owns the document retrieval pipeline: chunking,
// section tagging, indexing and similarity search. A document reload
// builds a complete new generation and swaps it in atomically, so
// queries never observe a half-built index.
type RetrievalService struct {
	gen atomic.Pointer[generation]

	splitter   *chunker.Chunker
	indexOpts  []index.Option
	rankerOpts []ranker.Option
}

// RetrievalOption configures the retrieval service.
type RetrievalOption func(*RetrievalService)

// WithChunker sets the text splitter.
func WithChunker(c *chunker.Chunker) RetrievalOption {
	return func(s *RetrievalService) {
		if c != nil {
			s.splitter = c
		}
	}
}

// WithIndexOptions forwards options to the index builder.
func WithIndexOptions(opts ...index.Option) RetrievalOption {
	return func(s *RetrievalService) {
		s.indexOpts = opts
	}
}

// WithRankerOptions forwards options to the ranker.
func WithRankerOptions(opts ...ranker.Option) RetrievalOption {
	return func(s *RetrievalService) {
		s.rankerOpts = opts
	}
}

// NewRetrievalService creates a retrieval service. No document is
// loaded yet; Search fails with domain.ErrNotLoaded until
// LoadDocument succeeds.
func NewRetrievalService(opts ...RetrievalOption) *RetrievalService {
	s := &RetrievalService{
		splitter: chunker.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadDocument runs the full pipeline: read, chunk, tag sections,
// index. The new state replaces any previous load atomically.
func (s *RetrievalService) LoadDocument(_ context.Context, path string) error {
	logger.Section("Document Load")
	logger.Debug("Reading %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return &domain.DocumentLoadError{Path: path, Err: err}
	}

	text := normalisers.ForPath(path).Normalise(string(data))
	pieces := s.splitter.Split(text)
	secs := sections.Extract(text)
	logger.Debug("Split into %d chunks, %d sections detected", len(pieces), len(secs))

	chunks := make([]domain.DocumentChunk, len(pieces))
	searchFrom := 0
	for i, content := range pieces {
		start, end := locateChunk(text, content, searchFrom)
		if start >= 0 {
			searchFrom = start + 1
		}

		chunks[i] = domain.DocumentChunk{
			ID:          uuid.New().String(),
			Content:     content,
			SourcePath:  path,
			ChunkIndex:  i,
			StartOffset: start,
			EndOffset:   end,
			Section:     sections.FindForChunk(content, secs),
			Title:       sections.Title(content),
			WordCount:   len(strings.Fields(content)),
			Preview:     sections.Preview(content),
		}
	}

	gen := &generation{
		path:      path,
		chunks:    chunks,
		sections:  secs,
		index:     index.Build(chunks, s.indexOpts...),
		ranker:    nil,
		byID:      make(map[string]int, len(chunks)),
		bySection: make(map[string][]int),
	}
	gen.ranker = ranker.New(gen.index, chunks, s.rankerOpts...)

	for i := range chunks {
		gen.byID[chunks[i].ID] = i
		if sec := chunks[i].Section; sec != "" {
			gen.bySection[sec] = append(gen.bySection[sec], i)
		}
	}

	s.gen.Store(gen)
	logger.Info("Indexed %d chunks (%d terms, %d dims)",
		len(chunks), gen.index.VocabularySize(), gen.index.Dimension())

	return nil
}

// locateChunk finds the character range of a chunk in the original
// text. Chunk prefixes are verbatim substrings of the source, so a
// short prefix search starting at the previous chunk's position is
// enough. Returns (-1, -1) when the chunk cannot be located.
func locateChunk(text, content string, searchFrom int) (int, int) {
	key := content
	if nl := strings.IndexByte(key, '\n'); nl >= 0 {
		key = key[:nl]
	}
	if len(key) > 40 {
		key = key[:40]
	}
	if key == "" || searchFrom >= len(text) {
		return -1, -1
	}

	rel := strings.Index(text[searchFrom:], key)
	if rel < 0 {
		return -1, -1
	}
	start := searchFrom + rel
	return start, start + len(content)
}

// Search ranks the loaded chunks against the query.
func (s *RetrievalService) Search(_ context.Context, query string, topK int) ([]domain.SimilarityResult, error) {
	gen := s.gen.Load()
	if gen == nil {
		return nil, domain.ErrNotLoaded
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	logger.Section("Similarity Search")
	logger.Debug("Query: %q, topK: %d", query, topK)

	results := gen.ranker.Search(query, topK)
	if len(results) > 0 {
		logger.Debug("Top score: %.4f (chunk %d)", results[0].Score, results[0].Chunk.ChunkIndex)
	}
	return results, nil
}

// Chunks returns all chunks of the current document load.
func (s *RetrievalService) Chunks() []domain.DocumentChunk {
	gen := s.gen.Load()
	if gen == nil {
		return nil
	}
	return gen.chunks
}

// ChunkByID retrieves one chunk by its identifier.
func (s *RetrievalService) ChunkByID(id string) (*domain.DocumentChunk, error) {
	gen := s.gen.Load()
	if gen == nil {
		return nil, domain.ErrNotLoaded
	}
	i, ok := gen.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	chunk := gen.chunks[i]
	return &chunk, nil
}

// ChunksBySection returns the chunks tagged with a section label.
func (s *RetrievalService) ChunksBySection(label string) []domain.DocumentChunk {
	gen := s.gen.Load()
	if gen == nil {
		return nil
	}
	indices, ok := gen.bySection[label]
	if !ok {
		return nil
	}
	result := make([]domain.DocumentChunk, len(indices))
	for i, idx := range indices {
		result[i] = gen.chunks[idx]
	}
	return result
}

// Sections returns the detected section labels in document order.
func (s *RetrievalService) Sections() []string {
	gen := s.gen.Load()
	if gen == nil {
		return nil
	}
	labels := make([]string, len(gen.sections))
	for i, sec := range gen.sections {
		labels[i] = sec.Label
	}
	return labels
}

// Watch blocks watching the loaded document for changes, rebuilding
// the index on every write. In-flight searches keep reading the old
// generation until the swap. Returns when ctx is cancelled.
func (s *RetrievalService) Watch(ctx context.Context) error {
	gen := s.gen.Load()
	if gen == nil {
		return domain.ErrNotLoaded
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(gen.path); err != nil {
		return fmt.Errorf("watch %s: %w", gen.path, err)
	}
	logger.Info("Watching %s for changes", gen.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("Document changed (%s), reloading", event.Op)
			if err := s.LoadDocument(ctx, gen.path); err != nil {
				// Keep serving the previous generation.
				logger.Warn("Reload failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
