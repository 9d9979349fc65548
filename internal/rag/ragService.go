package rag

import (
	"context"
	"time"

	"github.com/zacharyjolliff15/ScholarAI/internal/config"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/apperrors"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/docmodel"
	"github.com/zacharyjolliff15/ScholarAI/internal/metrics"
	"github.com/zacharyjolliff15/ScholarAI/internal/rag/embedding"
	"github.com/zacharyjolliff15/ScholarAI/internal/rag/llm"
	"github.com/zacharyjolliff15/ScholarAI/internal/store"
	"github.com/zacharyjolliff15/ScholarAI/pkg/logger_i"
)

// Service is the public contract handlers depend on; the private struct
// below holds the store and model clients so external packages cannot reach
// them directly. NewService links the two, which lets tests swap real
// providers for mocks without touching handler code.
type Service interface {
	Ask(ctx context.Context, question string, docIds []string, k int) (string, []docmodel.RetrievalItem, error)
	Summarize(ctx context.Context, docId string, maxChars int) (string, error)
	Flashcards(ctx context.Context, docId string, count int) ([]docmodel.Flashcard, error)
	Quiz(ctx context.Context, docId string) ([]docmodel.QuizQuestion, error)
	Ready() error
}

type service struct {
	docs        *store.DocumentStore
	llmProvider llm.Provider
	embedder    embedding.Embedder
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(docs *store.DocumentStore, llmProvider llm.Provider, em embedding.Embedder) Service {
	return &service{
		docs:        docs,
		llmProvider: llmProvider,
		embedder:    em,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

// Ready reports whether model providers are wired. Checked before any
// ask-family or upload request so a missing credential fails fast with a
// descriptive error instead of a dead call.
func (s *service) Ready() error {
	if s.embedder == nil || s.llmProvider == nil {
		return apperrors.ErrMissingCredential
	}
	return nil
}

// Ask retrieves the top-k chunks for the question and asks the completion
// model to answer only from them. The returned items are the citation list,
// label-aligned with the numbered source blocks in the prompt.
func (s *service) Ask(ctx context.Context, question string, docIds []string, k int) (string, []docmodel.RetrievalItem, error) {
	if err := s.Ready(); err != nil {
		return "", nil, err
	}
	if k <= 0 {
		k = config.Pipeline.DefaultTopK
	}

	items, err := s.retrieve(ctx, question, docIds, k)
	if err != nil {
		return "", nil, err
	}

	systemInstruction, prompt := buildAskPrompt(question, items)
	answer, err := s.generate(ctx, systemInstruction, prompt)
	if err != nil {
		return "", nil, err
	}
	return answer, items, nil
}

func (s *service) generate(ctx context.Context, systemInstruction string, prompt string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("completion", time.Since(start)) }()

	answer, err := s.llmProvider.Generate(ctx, systemInstruction, prompt)
	if err != nil {
		s.logger.Error("Completion call failed", "error", err)
		return "", wrapServiceFailure("completion", err)
	}
	return answer, nil
}
