package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zacharyjolliff15/ScholarAI/internal/config"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/apperrors"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/docmodel"
	"github.com/zacharyjolliff15/ScholarAI/internal/metrics"
)

// retrieve embeds the query and the scoped chunks, ranks by cosine
// similarity and returns at most k items, each with enough provenance to
// render a citation.
func (s *service) retrieve(ctx context.Context, query string, docIds []string, k int) ([]docmodel.RetrievalItem, error) {
	st := s.docs.Load()
	scope := resolveScope(st, docIds)
	if len(scope) == 0 {
		return nil, apperrors.ErrNoDocumentsInScope
	}

	candidates := fairnessLimit(scope, config.Pipeline.RetrievalChunkLimit)
	if len(candidates) == 0 {
		return nil, nil
	}

	start := time.Now()
	queryVector, err := s.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, wrapServiceFailure("embedding", err)
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}
	vectors, err := s.batchEmbed(ctx, texts)
	metrics.CaptureExecutionMetrics("embedding", time.Since(start))
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		candidates[i].Score = cosineSimilarity(queryVector, vectors[i])
	}

	// stable sort keeps the original scan order on ties
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// resolveScope selects the documents named by docIds, or every stored
// document when none are named.
func resolveScope(st *docmodel.Store, docIds []string) []docmodel.Document {
	if len(docIds) == 0 {
		return st.Docs
	}
	wanted := make(map[string]bool, len(docIds))
	for _, id := range docIds {
		wanted[id] = true
	}
	var scope []docmodel.Document
	for _, doc := range st.Docs {
		if wanted[doc.Id] {
			scope = append(scope, doc)
		}
	}
	return scope
}

// fairnessLimit bounds what gets embedded. When the scope holds more chunks
// than the global ceiling, each document's contribution is capped at
// floor(ceiling/documentCount) with a minimum of one, so a single large
// document cannot crowd the others out. Tail chunks of oversized documents
// are silently excluded; that recall/latency tradeoff is intentional.
func fairnessLimit(scope []docmodel.Document, ceiling int) []docmodel.RetrievalItem {
	total := 0
	for _, doc := range scope {
		total += len(doc.Chunks)
	}

	perDoc := total
	if total > ceiling {
		perDoc = ceiling / len(scope)
		if perDoc < 1 {
			perDoc = 1
		}
	}

	var items []docmodel.RetrievalItem
	for _, doc := range scope {
		take := len(doc.Chunks)
		if take > perDoc {
			take = perDoc
		}
		for _, chunk := range doc.Chunks[:take] {
			items = append(items, docmodel.RetrievalItem{
				DocId:   doc.Id,
				DocName: doc.Name,
				ChunkId: chunk.Id,
				Text:    chunk.Text,
			})
		}
	}
	return items
}

// batchEmbed embeds texts in fixed-size batches issued concurrently up to a
// small fan-out limit. Results land by batch offset, so output order always
// matches input order regardless of which call finishes first.
func (s *service) batchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	batchSize := config.Pipeline.EmbeddingBatchSize
	vectors := make([][]float32, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Pipeline.EmbeddingFanOut)

	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		g.Go(func() error {
			batch, err := s.embedder.BatchEmbedding(gctx, texts[start:end])
			if err != nil {
				return wrapServiceFailure("embedding", err)
			}
			if len(batch) != end-start {
				return wrapServiceFailure("embedding", fmt.Errorf("got %d vectors for %d inputs", len(batch), end-start))
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// cosineSimilarity computes dot(a,b) / (||a||*||b|| + eps). The epsilon
// keeps degenerate zero vectors from dividing by zero.
func cosineSimilarity(a, b []float32) float64 {
	n := min(len(a), len(b))
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + 1e-8)
}

func wrapServiceFailure(which string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrServiceFailure, which, err)
}
