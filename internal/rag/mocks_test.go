package rag_test

import (
	"context"
	"strings"

	"bookrag/internal/domain/commonModels"
	"bookrag/internal/rag/embedding"
)

// MockIndex implements vectorDB.Index
type MockIndex struct {
	// Control fields to simulate different behaviors
	OnUpsert           func(ctx context.Context, entries []commonModels.ChunkEntry) error
	OnQuery            func(ctx context.Context, vector []float32, topK int, documentID string) ([]commonModels.ChunkMatch, error)
	OnDeleteByDocument func(ctx context.Context, documentID string) error
	OnCount            func(ctx context.Context, documentID string) (uint64, error)
	OnHasAny           func(ctx context.Context, documentID string) (bool, error)
}

func (m *MockIndex) Upsert(ctx context.Context, entries []commonModels.ChunkEntry) error {
	if m.OnUpsert != nil {
		return m.OnUpsert(ctx, entries)
	}
	return nil
}

func (m *MockIndex) Query(ctx context.Context, vector []float32, topK int, documentID string) ([]commonModels.ChunkMatch, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, vector, topK, documentID)
	}
	return []commonModels.ChunkMatch{
		{
			Metadata: commonModels.ChunkMetadata{DocumentID: documentID, ChunkIndex: 0},
			Text:     "default context",
			Score:    0.9,
		},
	}, nil
}

func (m *MockIndex) DeleteByDocument(ctx context.Context, documentID string) error {
	if m.OnDeleteByDocument != nil {
		return m.OnDeleteByDocument(ctx, documentID)
	}
	return nil
}

func (m *MockIndex) Count(ctx context.Context, documentID string) (uint64, error) {
	if m.OnCount != nil {
		return m.OnCount(ctx, documentID)
	}
	return 0, nil
}

func (m *MockIndex) HasAny(ctx context.Context, documentID string) (bool, error) {
	if m.OnHasAny != nil {
		return m.OnHasAny(ctx, documentID)
	}
	return false, nil
}

// MockCache implements vectorDB.AnswerCache
type MockCache struct {
	OnGetCachedAnswer func(ctx context.Context, queryVector []float32, documentID string, mode string) (string, bool, error)
	OnSaveToCache     func(ctx context.Context, queryVector []float32, documentID string, mode string, answer string) error
}

func (m *MockCache) GetCachedAnswer(ctx context.Context, v []float32, documentID string, mode string) (string, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, v, documentID, mode)
	}
	return "", false, nil
}

func (m *MockCache) SaveToCache(ctx context.Context, v []float32, documentID string, mode string, answer string) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, v, documentID, mode, answer)
	}
	return nil
}

// MockEmbedder implements embedding.Embedder. The default mirrors the real
// providers: blank text embeds to an empty vector.
type MockEmbedder struct {
	OnEmbed      func(ctx context.Context, text string, role embedding.Role) ([]float32, error)
	OnEmbedBatch func(ctx context.Context, texts []string, role embedding.Role) ([][]float32, error)
}

func (m *MockEmbedder) Embed(ctx context.Context, text string, role embedding.Role) ([]float32, error) {
	if m.OnEmbed != nil {
		return m.OnEmbed(ctx, text, role)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return []float32{0.1}, nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string, role embedding.Role) ([][]float32, error) {
	if m.OnEmbedBatch != nil {
		return m.OnEmbedBatch(ctx, texts, role)
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) != "" {
			vectors[i] = []float32{0.1}
		}
	}
	return vectors, nil
}

// MockLLM implements llm.Provider and records the last prompt it saw.
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
	LastPrompt string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "mocked llm response", nil
}
