package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zacharyjolliff15/ScholarAI/internal/config"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/apperrors"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/docmodel"
)

// Summarize reads a bounded prefix of one document's chunks, in order, and
// asks for a bulleted synthesis. maxChars <= 0 uses the configured limit.
func (s *service) Summarize(ctx context.Context, docId string, maxChars int) (string, error) {
	if err := s.Ready(); err != nil {
		return "", err
	}
	if maxChars <= 0 {
		maxChars = config.Pipeline.SummaryCharLimit
	}

	doc, err := s.documentById(docId)
	if err != nil {
		return "", err
	}
	text := documentText(doc, maxChars)
	if text == "" {
		return "", apperrors.ErrEmptyDocument
	}

	systemInstruction, prompt := buildSummarizePrompt(doc.Name, text)
	return s.generate(ctx, systemInstruction, prompt)
}

// Flashcards derives question/answer pairs from a document prefix. The model
// must return one parseable JSON object; anything else is a generation
// failure, never an empty result.
func (s *service) Flashcards(ctx context.Context, docId string, count int) ([]docmodel.Flashcard, error) {
	if err := s.Ready(); err != nil {
		return nil, err
	}
	count = clampCardCount(count)

	doc, err := s.documentById(docId)
	if err != nil {
		return nil, err
	}
	text := documentText(doc, config.Pipeline.CardSourceCharLimit)
	if text == "" {
		return nil, apperrors.ErrEmptyDocument
	}

	systemInstruction, prompt := buildFlashcardsPrompt(doc.Name, text, count)
	raw, err := s.generate(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}
	return parseFlashcards(raw)
}

func (s *service) Quiz(ctx context.Context, docId string) ([]docmodel.QuizQuestion, error) {
	if err := s.Ready(); err != nil {
		return nil, err
	}

	doc, err := s.documentById(docId)
	if err != nil {
		return nil, err
	}
	text := documentText(doc, config.Pipeline.CardSourceCharLimit)
	if text == "" {
		return nil, apperrors.ErrEmptyDocument
	}

	systemInstruction, prompt := buildQuizPrompt(doc.Name, text, config.Pipeline.QuizQuestionCount)
	raw, err := s.generate(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}
	return parseQuiz(raw)
}

func (s *service) documentById(docId string) (docmodel.Document, error) {
	st := s.docs.Load()
	for _, doc := range st.Docs {
		if doc.Id == docId {
			return doc, nil
		}
	}
	return docmodel.Document{}, apperrors.ErrNotFound
}

// documentText joins a document's chunks in order up to maxChars runes.
func documentText(doc docmodel.Document, maxChars int) string {
	var b strings.Builder
	for _, chunk := range doc.Chunks {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(chunk.Text)
		if b.Len() >= maxChars {
			break
		}
	}
	runes := []rune(b.String())
	if len(runes) > maxChars {
		runes = runes[:maxChars]
	}
	return strings.TrimSpace(string(runes))
}

func clampCardCount(count int) int {
	if count <= 0 {
		return config.Pipeline.DefaultCardCount
	}
	if count < 3 {
		return 3
	}
	if count > 10 {
		return 10
	}
	return count
}

func parseFlashcards(raw string) ([]docmodel.Flashcard, error) {
	var parsed struct {
		Flashcards []docmodel.Flashcard `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return nil, malformedOutput(err)
	}
	if len(parsed.Flashcards) == 0 {
		return nil, malformedOutput(fmt.Errorf("no flashcards in response"))
	}
	for _, card := range parsed.Flashcards {
		if card.Question == "" || card.Answer == "" {
			return nil, malformedOutput(fmt.Errorf("flashcard with empty field"))
		}
	}
	return parsed.Flashcards, nil
}

func parseQuiz(raw string) ([]docmodel.QuizQuestion, error) {
	var parsed struct {
		Questions []docmodel.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return nil, malformedOutput(err)
	}
	if len(parsed.Questions) == 0 {
		return nil, malformedOutput(fmt.Errorf("no questions in response"))
	}
	for _, q := range parsed.Questions {
		if q.Question == "" || len(q.Options) < 2 {
			return nil, malformedOutput(fmt.Errorf("question with missing options"))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, malformedOutput(fmt.Errorf("correctIndex %d out of range", q.CorrectIndex))
		}
	}
	return parsed.Questions, nil
}

func malformedOutput(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrMalformedModelOutput, err)
}

// stripCodeFence removes a surrounding markdown fence if the model wrapped
// its JSON in one. The content itself is still parsed strictly.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	if j := strings.LastIndex(s, "```"); j >= 0 {
		s = s[:j]
	}
	return strings.TrimSpace(s)
}
