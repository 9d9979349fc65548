package rag_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zacharyjolliff15/ScholarAI/internal/domain/apperrors"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/docmodel"
	"github.com/zacharyjolliff15/ScholarAI/internal/rag"
	"github.com/zacharyjolliff15/ScholarAI/internal/store"
	"github.com/zacharyjolliff15/ScholarAI/pkg/logger_i"
)

func TestMain(m *testing.M) {
	logger_i.Init()
	os.Exit(m.Run())
}

func testStore(t *testing.T, docs ...docmodel.Document) *store.DocumentStore {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "store.json"))
	for _, doc := range docs {
		if err := s.Append(doc); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func docWithChunks(id string, texts ...string) docmodel.Document {
	chunks := make([]docmodel.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = docmodel.Chunk{Id: i, Text: text}
	}
	return docmodel.Document{
		Id:         id,
		Name:       id + ".txt",
		CreatedAt:  time.Now().UTC(),
		ChunkCount: len(chunks),
		Chunks:     chunks,
	}
}

func docWithNChunks(id string, n int) docmodel.Document {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf("%s chunk %d", id, i)
	}
	return docWithChunks(id, texts...)
}

func TestAsk_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		docs        []docmodel.Document
		docIds      []string
		setupMocks  func(e *MockEmbedder, l *MockLLM)
		expectedErr error
		wantAnswer  string
	}{
		{
			name:       "Success_Full_Flow",
			docs:       []docmodel.Document{docWithChunks("a", "alpha text", "beta text")},
			setupMocks: func(e *MockEmbedder, l *MockLLM) {},
			wantAnswer: "mocked llm response",
		},
		{
			name:        "Failure_Empty_Scope",
			docs:        []docmodel.Document{docWithChunks("a", "alpha text")},
			docIds:      []string{"unknown-id"},
			setupMocks:  func(e *MockEmbedder, l *MockLLM) {},
			expectedErr: apperrors.ErrNoDocumentsInScope,
		},
		{
			name:        "Failure_Empty_Store",
			docs:        nil,
			setupMocks:  func(e *MockEmbedder, l *MockLLM) {},
			expectedErr: apperrors.ErrNoDocumentsInScope,
		},
		{
			name: "Failure_Query_Embedding",
			docs: []docmodel.Document{docWithChunks("a", "alpha text")},
			setupMocks: func(e *MockEmbedder, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, q string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedErr: apperrors.ErrServiceFailure,
		},
		{
			name: "Failure_Batch_Embedding",
			docs: []docmodel.Document{docWithChunks("a", "alpha text")},
			setupMocks: func(e *MockEmbedder, l *MockLLM) {
				e.OnBatchEmbedding = func(ctx context.Context, texts []string) ([][]float32, error) {
					return nil, errors.New("api down")
				}
			},
			expectedErr: apperrors.ErrServiceFailure,
		},
		{
			name: "Failure_Completion",
			docs: []docmodel.Document{docWithChunks("a", "alpha text")},
			setupMocks: func(e *MockEmbedder, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, sys string, p string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedErr: apperrors.ErrServiceFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mLLM := &MockLLM{}
			tt.setupMocks(mEmbed, mLLM)

			s := rag.NewService(testStore(t, tt.docs...), mLLM, mEmbed)
			answer, items, err := s.Ask(context.Background(), "test question", tt.docIds, 6)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("error got %v, want %v", err, tt.expectedErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Ask failed: %v", err)
			}
			if answer != tt.wantAnswer {
				t.Errorf("answer got %q, want %q", answer, tt.wantAnswer)
			}
			if len(items) == 0 {
				t.Error("expected retrieval items for citations")
			}
		})
	}
}

func TestAsk_EmptyScopeMakesNoServiceCalls(t *testing.T) {
	mEmbed := &MockEmbedder{}
	mLLM := &MockLLM{}
	s := rag.NewService(testStore(t, docWithChunks("a", "alpha")), mLLM, mEmbed)

	_, _, err := s.Ask(context.Background(), "q", []string{"not-in-store"}, 6)
	if !errors.Is(err, apperrors.ErrNoDocumentsInScope) {
		t.Fatalf("expected ErrNoDocumentsInScope, got %v", err)
	}
	if mEmbed.QueryCalls != 0 || mEmbed.BatchCalls != 0 {
		t.Error("embedding service was called despite empty scope")
	}
	if mLLM.LastPrompt != "" {
		t.Error("completion service was called despite empty scope")
	}
}

func TestAsk_MissingCredential(t *testing.T) {
	s := rag.NewService(testStore(t, docWithChunks("a", "alpha")), nil, nil)

	_, _, err := s.Ask(context.Background(), "q", nil, 6)
	if !errors.Is(err, apperrors.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

// vectorsByAngle gives every chunk a deterministic score: chunk i gets the
// unit vector at angle i degrees while the query is at angle 0, so scores
// strictly decrease in input order. Any misalignment between batches and
// vectors shows up as a broken ranking.
func vectorsByAngle(texts []string, offsets map[string]int) [][]float32 {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		angle := float64(offsets[text]) * math.Pi / 180
		vectors[i] = []float32{float32(math.Cos(angle)), float32(math.Sin(angle))}
	}
	return vectors
}

func TestRetrievalRankingAndK(t *testing.T) {
	const total = 150 // spans three embedding batches
	doc := docWithNChunks("big", total)

	offsets := make(map[string]int, total)
	for i, ch := range doc.Chunks {
		offsets[ch.Text] = i
	}

	mEmbed := &MockEmbedder{
		OnGetEmbedding: func(ctx context.Context, q string) ([]float32, error) {
			return []float32{1, 0}, nil
		},
		OnBatchEmbedding: func(ctx context.Context, texts []string) ([][]float32, error) {
			return vectorsByAngle(texts, offsets), nil
		},
	}
	s := rag.NewService(testStore(t, doc), &MockLLM{}, mEmbed)

	_, items, err := s.Ask(context.Background(), "q", nil, 10)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	if len(items) != 10 {
		t.Fatalf("got %d items, want 10", len(items))
	}
	for i, item := range items {
		if item.ChunkId != i {
			t.Errorf("rank %d holds chunk %d; concurrent batches broke ordering", i, item.ChunkId)
		}
		if i > 0 && items[i].Score > items[i-1].Score {
			t.Errorf("scores not descending at rank %d", i)
		}
	}
}

func TestRetrievalFairnessCap(t *testing.T) {
	// 1000 + 3*1 chunks is over the 800 ceiling: the large document is
	// capped at floor(800/4) = 200 and the small ones still contribute.
	docs := []docmodel.Document{
		docWithNChunks("large", 1000),
		docWithChunks("s1", "s1 only chunk"),
		docWithChunks("s2", "s2 only chunk"),
		docWithChunks("s3", "s3 only chunk"),
	}

	var mu sync.Mutex
	perDoc := map[string]int{}
	mEmbed := &MockEmbedder{
		OnBatchEmbedding: func(ctx context.Context, texts []string) ([][]float32, error) {
			vectors := make([][]float32, len(texts))
			mu.Lock()
			defer mu.Unlock()
			for i, text := range texts {
				perDoc[strings.Fields(text)[0]]++
				vectors[i] = []float32{1, 0}
			}
			return vectors, nil
		},
	}
	s := rag.NewService(testStore(t, docs...), &MockLLM{}, mEmbed)

	_, _, err := s.Ask(context.Background(), "q", nil, 6)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	if perDoc["large"] != 200 {
		t.Errorf("large document contributed %d chunks, want 200", perDoc["large"])
	}
	for _, id := range []string{"s1", "s2", "s3"} {
		if perDoc[id] != 1 {
			t.Errorf("document %s contributed %d chunks, want 1", id, perDoc[id])
		}
	}
}

func TestAsk_CitationLabelsMatchPromptOrder(t *testing.T) {
	doc := docWithChunks("a", "first chunk text", "second chunk text")
	mLLM := &MockLLM{}
	s := rag.NewService(testStore(t, doc), mLLM, &MockEmbedder{})

	_, items, err := s.Ask(context.Background(), "q", nil, 2)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	for i, item := range items {
		block := fmt.Sprintf("Source %d (%s):\n%s", i+1, item.DocName, item.Text)
		if !strings.Contains(mLLM.LastPrompt, block) {
			t.Errorf("prompt is missing labeled block for item %d", i)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := rag.NewService(
		testStore(t, docWithChunks("a", "alpha text"), docWithChunks("empty")),
		&MockLLM{OnGenerate: func(ctx context.Context, sys, p string) (string, error) {
			return "- a bullet", nil
		}},
		&MockEmbedder{},
	)

	summary, err := s.Summarize(context.Background(), "a", 0)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary != "- a bullet" {
		t.Errorf("unexpected summary %q", summary)
	}

	if _, err := s.Summarize(context.Background(), "empty", 0); !errors.Is(err, apperrors.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := s.Summarize(context.Background(), "missing", 0); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFlashcards(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		expectedErr error
		wantCount   int
	}{
		{
			name:      "Success_Plain_JSON",
			response:  `{"flashcards":[{"question":"q1","answer":"a1"},{"question":"q2","answer":"a2"}]}`,
			wantCount: 2,
		},
		{
			name:      "Success_Fenced_JSON",
			response:  "```json\n{\"flashcards\":[{\"question\":\"q1\",\"answer\":\"a1\"}]}\n```",
			wantCount: 1,
		},
		{
			name:        "Failure_Not_JSON",
			response:    "Here are your flashcards! 1. What is...",
			expectedErr: apperrors.ErrMalformedModelOutput,
		},
		{
			name:        "Failure_Empty_List",
			response:    `{"flashcards":[]}`,
			expectedErr: apperrors.ErrMalformedModelOutput,
		},
		{
			name:        "Failure_Missing_Fields",
			response:    `{"flashcards":[{"question":"q1"}]}`,
			expectedErr: apperrors.ErrMalformedModelOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mLLM := &MockLLM{OnGenerate: func(ctx context.Context, sys, p string) (string, error) {
				return tt.response, nil
			}}
			s := rag.NewService(testStore(t, docWithChunks("a", "alpha text")), mLLM, &MockEmbedder{})

			cards, err := s.Flashcards(context.Background(), "a", 0)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("error got %v, want %v", err, tt.expectedErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Flashcards failed: %v", err)
			}
			if len(cards) != tt.wantCount {
				t.Errorf("got %d cards, want %d", len(cards), tt.wantCount)
			}
		})
	}
}

func TestFlashcards_CountIsClamped(t *testing.T) {
	mLLM := &MockLLM{OnGenerate: func(ctx context.Context, sys, p string) (string, error) {
		return `{"flashcards":[{"question":"q","answer":"a"}]}`, nil
	}}
	s := rag.NewService(testStore(t, docWithChunks("a", "alpha text")), mLLM, &MockEmbedder{})

	if _, err := s.Flashcards(context.Background(), "a", 50); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(mLLM.LastPrompt, "exactly 10 flashcards") {
		t.Error("count above the maximum was not clamped to 10")
	}

	if _, err := s.Flashcards(context.Background(), "a", 1); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(mLLM.LastPrompt, "exactly 3 flashcards") {
		t.Error("count below the minimum was not clamped to 3")
	}
}

func TestQuiz(t *testing.T) {
	valid := `{"questions":[{"question":"q1","options":["a","b","c","d"],"correctIndex":2}]}`
	badIndex := `{"questions":[{"question":"q1","options":["a","b"],"correctIndex":5}]}`

	mLLM := &MockLLM{OnGenerate: func(ctx context.Context, sys, p string) (string, error) {
		return valid, nil
	}}
	s := rag.NewService(testStore(t, docWithChunks("a", "alpha text")), mLLM, &MockEmbedder{})

	questions, err := s.Quiz(context.Background(), "a")
	if err != nil {
		t.Fatalf("Quiz failed: %v", err)
	}
	if len(questions) != 1 || questions[0].CorrectIndex != 2 {
		t.Errorf("unexpected questions %+v", questions)
	}

	mLLM.OnGenerate = func(ctx context.Context, sys, p string) (string, error) {
		return badIndex, nil
	}
	if _, err := s.Quiz(context.Background(), "a"); !errors.Is(err, apperrors.ErrMalformedModelOutput) {
		t.Errorf("expected ErrMalformedModelOutput, got %v", err)
	}
}

func TestCosineProperties(t *testing.T) {
	doc := docWithChunks("a", "x chunk", "y chunk")
	var selfScore float64

	mEmbed := &MockEmbedder{
		OnGetEmbedding: func(ctx context.Context, q string) ([]float32, error) {
			return []float32{0.3, 0.4, 0.5}, nil
		},
		OnBatchEmbedding: func(ctx context.Context, texts []string) ([][]float32, error) {
			// first chunk identical to the query, second orthogonal
			return [][]float32{{0.3, 0.4, 0.5}, {0.4, -0.3, 0}}, nil
		},
	}
	s := rag.NewService(testStore(t, doc), &MockLLM{}, mEmbed)

	_, items, err := s.Ask(context.Background(), "q", nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	selfScore = items[0].Score
	if math.Abs(selfScore-1) > 1e-4 {
		t.Errorf("cosine(v, v) = %f, want ~1", selfScore)
	}
	if math.Abs(items[1].Score) > 1e-4 {
		t.Errorf("cosine of orthogonal vectors = %f, want ~0", items[1].Score)
	}
}
