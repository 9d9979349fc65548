package api

import "time"

type DocumentInfo struct {
	Id         string    `json:"id" example:"6a1f2d3c-9a21-4a3e-8c3f-0f1f2a3b4c5d"`
	Name       string    `json:"name" example:"lecture-notes.pdf"`
	ChunkCount int       `json:"chunk_count" example:"18"`
	CreatedAt  time.Time `json:"created_at"`
}

type UploadResponse struct {
	Documents []DocumentInfo `json:"documents"`
}

type ListDocumentsResponse struct {
	Documents []DocumentInfo `json:"documents"`
}

// Citation points back at the chunk an answer drew on. Label matches the
// source numbering used inside the prompt, so "Source 2" in an answer maps
// to the citation with label 2.
type Citation struct {
	Label   int     `json:"label" example:"1"`
	DocId   string  `json:"doc_id"`
	Name    string  `json:"name" example:"lecture-notes.pdf"`
	ChunkId int     `json:"chunk_id" example:"4"`
	Score   float64 `json:"score" example:"0.83"`
}

type AskResponse struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type FlashcardsResponse struct {
	Flashcards []Flashcard `json:"flashcards"`
}

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QuizResponse struct {
	Questions []QuizQuestion `json:"questions"`
}

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"document not found"`
	Code  string `json:"code,omitempty" example:"PDFTOTEXT_MISSING"`
}

// requests---------------------

type AskRequest struct {
	Question string   `json:"question" validate:"required"`
	DocIds   []string `json:"docIds,omitempty"`
	K        int      `json:"k,omitempty"`
}

type SummarizeRequest struct {
	DocId    string `json:"docId" validate:"required"`
	MaxChars int    `json:"maxChars,omitempty"`
}

type FlashcardsRequest struct {
	DocId string `json:"docId" validate:"required"`
	Count int    `json:"count,omitempty"`
}

type QuizRequest struct {
	DocId string `json:"docId" validate:"required"`
}
