package rag_test

import (
	"context"
	"sync/atomic"
)

// MockEmbedder implements embedding.Embedder
type MockEmbedder struct {
	// Control fields to simulate different behaviors
	OnGetEmbedding   func(ctx context.Context, query string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, texts []string) ([][]float32, error)

	QueryCalls int32
	BatchCalls int32
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	atomic.AddInt32(&m.QueryCalls, 1)
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{1, 0}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	atomic.AddInt32(&m.BatchCalls, 1)
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, texts)
	}
	// Return identical unit vectors matching input size
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{1, 0}
	}
	return vectors, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, systemInstruction string, prompt string) (string, error)

	LastSystemInstruction string
	LastPrompt            string
}

func (m *MockLLM) Generate(ctx context.Context, systemInstruction string, prompt string) (string, error) {
	m.LastSystemInstruction = systemInstruction
	m.LastPrompt = prompt
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, systemInstruction, prompt)
	}
	return "mocked llm response", nil
}
