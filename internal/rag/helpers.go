package rag

import (
	"context"
	"time"

	"bookrag/internal/domain/commonModels"
	"bookrag/internal/metrics"
	"bookrag/internal/rag/embedding"
)

func (s *service) executeEmbeddingStep(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.Embed(ctx, text, embedding.RoleQuery)
}

func (s *service) executeCacheCheckStep(ctx context.Context, emb []float32, documentID string, mode commonModels.QueryMode) (string, bool) {
	if s.cache == nil {
		return "", false
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	ans, found, _ := s.cache.GetCachedAnswer(ctx, emb, documentID, string(mode))
	return ans, found
}

func (s *service) executeVectorSearchStep(ctx context.Context, emb []float32, topK int, documentID string) ([]commonModels.ChunkMatch, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.index.Query(ctx, emb, topK, documentID)
}

func (s *service) executeLLMStep(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, prompt)
}

// truncateRunes cuts at a rune boundary so multibyte text is never split
// mid-character.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
