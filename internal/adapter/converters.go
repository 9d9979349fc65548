package adapter

import (
	"github.com/zacharyjolliff15/ScholarAI/internal/api"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/docmodel"
)

func ToDocumentInfo(doc docmodel.Document) api.DocumentInfo {
	return api.DocumentInfo{
		Id:         doc.Id,
		Name:       doc.Name,
		ChunkCount: doc.ChunkCount,
		CreatedAt:  doc.CreatedAt,
	}
}

func ToDocumentList(docs []docmodel.Document) api.ListDocumentsResponse {
	infos := make([]api.DocumentInfo, 0, len(docs))
	for _, doc := range docs {
		infos = append(infos, ToDocumentInfo(doc))
	}
	return api.ListDocumentsResponse{Documents: infos}
}

// ToCitations labels items 1-based so answers citing "Source N" line up
// with the returned citation labels.
func ToCitations(items []docmodel.RetrievalItem) []api.Citation {
	citations := make([]api.Citation, 0, len(items))
	for i, item := range items {
		citations = append(citations, api.Citation{
			Label:   i + 1,
			DocId:   item.DocId,
			Name:    item.DocName,
			ChunkId: item.ChunkId,
			Score:   item.Score,
		})
	}
	return citations
}

func ToFlashcardsResponse(cards []docmodel.Flashcard) api.FlashcardsResponse {
	out := make([]api.Flashcard, 0, len(cards))
	for _, card := range cards {
		out = append(out, api.Flashcard{Question: card.Question, Answer: card.Answer})
	}
	return api.FlashcardsResponse{Flashcards: out}
}

func ToQuizResponse(questions []docmodel.QuizQuestion) api.QuizResponse {
	out := make([]api.QuizQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, api.QuizQuestion{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		})
	}
	return api.QuizResponse{Questions: out}
}
