package vectorDB

import (
	"context"
	"fmt"

	"bookrag/internal/domain/commonModels"
)

// Index is the persistent chunk collection, partitioned by document id via
// metadata filters. An empty documentID means "whole library" wherever a
// filter parameter appears. The backend handles its own concurrency, the
// core treats it as externally thread-safe.
type Index interface {
	// Upsert writes entries keyed by their deterministic entry id, replacing
	// any previous entry at the same (document_id, chunk_index).
	Upsert(ctx context.Context, entries []commonModels.ChunkEntry) error

	// Query returns the topK most similar chunks, best first.
	Query(ctx context.Context, vector []float32, topK int, documentID string) ([]commonModels.ChunkMatch, error)

	// DeleteByDocument removes every chunk of a document. Deleting a document
	// that was never indexed is a no-op.
	DeleteByDocument(ctx context.Context, documentID string) error

	Count(ctx context.Context, documentID string) (uint64, error)
	HasAny(ctx context.Context, documentID string) (bool, error)
}

// AnswerCache is the semantic answer cache: previously generated answers
// keyed by query embedding, scoped to a document and query mode.
type AnswerCache interface {
	GetCachedAnswer(ctx context.Context, queryVector []float32, documentID string, mode string) (string, bool, error)
	SaveToCache(ctx context.Context, queryVector []float32, documentID string, mode string, answer string) error
}

// BackendError wraps vector-store failures. Advisory readers (status, count)
// degrade to safe defaults on it, load-bearing writers propagate it.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("vector index %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }
