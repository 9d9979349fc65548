package docmodel

import "time"

// Chunk is one overlapping window of a document's extracted text. Ids are
// 0-based emission order and contiguous within a document.
type Chunk struct {
	Id   int    `json:"id"`
	Text string `json:"text"`
}

// Document owns its chunks; it is immutable after ingestion apart from
// wholesale deletion. No binary content is ever retained.
type Document struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	ChunkCount int       `json:"chunk_count"`
	Chunks     []Chunk   `json:"chunks"`
}

// Store is the single persisted structure.
type Store struct {
	Docs []Document `json:"docs"`
}

// RetrievalItem is a ranked chunk with enough provenance to render a
// citation. Never persisted.
type RetrievalItem struct {
	DocId   string
	DocName string
	ChunkId int
	Text    string
	Score   float64
}

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}
