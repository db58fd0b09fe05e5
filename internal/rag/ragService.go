package rag

import (
	"context"
	"strings"
	"time"

	"bookrag/internal/config"
	"bookrag/internal/domain/commonModels"
	"bookrag/internal/metrics"
	"bookrag/internal/rag/embedding"
	"bookrag/internal/rag/indexer"
	"bookrag/internal/rag/llm"
	"bookrag/internal/rag/vectorDB"
	"bookrag/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - This is the PUBLIC contract the handlers and the worker call.
  - It defines the "behavior" (what callers can do with the engine).

2. service (Private Struct):
  - This is the PRIVATE implementation.
  - It holds the "state" (vector index, LLM and embedding clients).
  - It is lowercase so external packages cannot reach the internal
    dependencies (vectorDB, llmProvider) directly.

3. Pointer Receiver (*service):
  - By defining methods on (*service), the struct IMPLICITLY satisfies
    the Service interface.

4. Dependency Injection (NewService):
  - The constructor links the private struct to the public interface,
    which lets tests swap real backends for mocks without touching the
    callers.
*/

// EmptyQueryAnswer is returned verbatim when the query text embeds to
// nothing. No generation call is made in that case.
const EmptyQueryAnswer = "I cannot process an empty query."

const disabledAnswerPrefix = "[IA deshabilitada] Resumen no disponible. Contexto recuperado:\n"
const disabledContextChars = 500

// QueryParams carries one question against one document. Metadata and
// Library are optional prompt enrichment, nil means "not available".
type QueryParams struct {
	Question   string
	DocumentID string
	Mode       commonModels.QueryMode
	Metadata   *commonModels.BookMetadata
	Library    *commonModels.LibraryContext
}

type Service interface {
	Query(ctx context.Context, params QueryParams) (string, error)
	SemanticSearch(ctx context.Context, query string) ([]string, error)
	IndexDocument(ctx context.Context, documentID string, path string, forceReindex bool) (indexer.Result, error)
	DeleteDocument(ctx context.Context, documentID string) error

	// AnalyzeDocument extracts title/author/category from a bounded preview
	// of the file. Fails with ErrAnalysisUnavailable when generation is off.
	AnalyzeDocument(ctx context.Context, path string) (*commonModels.BookMetadata, error)

	// IndexCount and HasIndex are advisory reads, they degrade to zero
	// values when the vector backend is unreachable.
	IndexCount(ctx context.Context, documentID string) uint64
	HasIndex(ctx context.Context, documentID string) bool
}

type service struct {
	index              vectorDB.Index
	cache              vectorDB.AnswerCache
	llmProvider        llm.Provider
	embedder           embedding.Embedder
	indexer            *indexer.Indexer
	generationDisabled bool
	logger             *logger_i.Logger
}

// NewService constructor. cache may be nil to run without the semantic
// answer cache. generationDisabled switches Query to the deterministic
// placeholder answer instead of calling the LLM.
func NewService(index vectorDB.Index, cache vectorDB.AnswerCache, llm llm.Provider, em embedding.Embedder, generationDisabled bool) Service {
	return &service{
		index:              index,
		cache:              cache,
		llmProvider:        llm,
		embedder:           em,
		indexer:            indexer.New(index, em, config.MaxChunkTokens()),
		generationDisabled: generationDisabled,
		logger:             logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) Query(ctx context.Context, params QueryParams) (string, error) {
	inMethodLogger := s.logger.With("documentId", params.DocumentID, "mode", string(params.Mode))

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	mode := normalizeMode(params.Mode)

	queryEmbedding, err := s.executeEmbeddingStep(processContext, params.Question)
	if err != nil {
		inMethodLogger.Error("query embedding failed", "error", err)
		return "", err
	}
	if len(queryEmbedding) == 0 {
		inMethodLogger.Debug("empty query embedding, short-circuiting")
		return EmptyQueryAnswer, nil
	}

	if cached, found := s.executeCacheCheckStep(processContext, queryEmbedding, params.DocumentID, mode); found {
		return cached, nil
	}

	matches, err := s.executeVectorSearchStep(processContext, queryEmbedding, config.QueryTopK, params.DocumentID)
	if err != nil {
		inMethodLogger.Error("vector search failed", "error", err)
		return "", err
	}

	contextBlock := joinContext(matches)

	if s.generationDisabled {
		return disabledAnswerPrefix + truncateRunes(contextBlock, disabledContextChars), nil
	}

	prompt := buildPrompt(params.Question, mode, contextBlock, params.Metadata, params.Library)
	answer, err := s.executeLLMStep(processContext, prompt)
	if err != nil {
		inMethodLogger.Error("generation failed", "error", err)
		return "", err
	}

	// Background cache save, a miss here only costs a future cache miss.
	if s.cache != nil {
		go func() {
			saveCtx, saveCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer saveCancel()
			if err := s.cache.SaveToCache(saveCtx, queryEmbedding, params.DocumentID, string(mode), answer); err != nil {
				s.logger.Error("Failed to save answer to cache", "error", err)
			}
		}()
	}

	return answer, nil
}

// SemanticSearch ranks library documents by their best-matching chunk.
// Document ids are deduplicated in ranked order, so the highest-similarity
// chunk of a document determines its position.
func (s *service) SemanticSearch(ctx context.Context, query string) ([]string, error) {
	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	queryEmbedding, err := s.executeEmbeddingStep(processContext, query)
	if err != nil {
		return nil, err
	}
	if len(queryEmbedding) == 0 {
		return nil, nil
	}

	matches, err := s.executeVectorSearchStep(processContext, queryEmbedding, config.SearchTopK, "")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(matches))
	ranked := make([]string, 0, len(matches))
	for _, match := range matches {
		id := match.Metadata.DocumentID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ranked = append(ranked, id)
	}
	return ranked, nil
}

func (s *service) IndexDocument(ctx context.Context, documentID string, path string, forceReindex bool) (indexer.Result, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_indexing", time.Since(start)) }()
	return s.indexer.Index(ctx, documentID, path, forceReindex)
}

func (s *service) DeleteDocument(ctx context.Context, documentID string) error {
	return s.indexer.Delete(ctx, documentID)
}

func (s *service) IndexCount(ctx context.Context, documentID string) uint64 {
	count, err := s.index.Count(ctx, documentID)
	if err != nil {
		s.logger.Error("index count failed, reporting zero", "documentId", documentID, "error", err)
		return 0
	}
	return count
}

func (s *service) HasIndex(ctx context.Context, documentID string) bool {
	indexed, err := s.index.HasAny(ctx, documentID)
	if err != nil {
		s.logger.Error("has-index check failed, reporting false", "documentId", documentID, "error", err)
		return false
	}
	return indexed
}

func joinContext(matches []commonModels.ChunkMatch) string {
	parts := make([]string, 0, len(matches))
	for _, match := range matches {
		parts = append(parts, match.Text)
	}
	return strings.Join(parts, "\n\n")
}
