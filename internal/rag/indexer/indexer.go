package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookrag/internal/config"
	"bookrag/internal/domain/commonModels"
	"bookrag/internal/metrics"
	"bookrag/internal/rag/chunker"
	"bookrag/internal/rag/embedding"
	"bookrag/internal/rag/extract"
	"bookrag/internal/rag/vectorDB"
	"bookrag/pkg/logger_i"
)

// ErrEmptyContent means extraction or chunking produced nothing usable.
// Nothing has been written when this is returned.
var ErrEmptyContent = errors.New("could not extract any text from the document")

// Result reports what one indexing pass did. ChunksSkipped counts chunks
// whose embedding came back empty and were therefore dropped, surfaced so
// silent data loss at least shows up in the numbers.
type Result struct {
	AlreadyIndexed bool
	ChunksIndexed  int
	ChunksSkipped  int
}

type Indexer struct {
	index     vectorDB.Index
	embedder  embedding.Embedder
	maxTokens int
	logger    *logger_i.Logger
}

func New(index vectorDB.Index, embedder embedding.Embedder, maxTokens int) *Indexer {
	return &Indexer{
		index:     index,
		embedder:  embedder,
		maxTokens: maxTokens,
		logger:    logger_i.NewLogger("Indexer"),
	}
}

// Index runs one extract -> chunk -> embed -> store pass for a document.
//
// Without forceReindex an already-indexed document is skipped entirely, so
// the call is safe to repeat. With forceReindex the document's chunks are
// deleted first and rebuilt from the current file content.
//
// Callers must not run two passes for the same documentID concurrently, the
// delete/add ordering is only correct under a single writer per document.
func (ix *Indexer) Index(ctx context.Context, documentID string, path string, forceReindex bool) (Result, error) {
	log := ix.logger.With("documentId", documentID)

	if forceReindex {
		if err := ix.index.DeleteByDocument(ctx, documentID); err != nil {
			return Result{}, fmt.Errorf("clearing previous index: %w", err)
		}
	} else {
		// Advisory read: a flaky backend answers "not indexed", which only
		// costs a redundant re-embed, never a lost document.
		indexed, err := ix.index.HasAny(ctx, documentID)
		if err != nil {
			log.Error("has-any check failed, proceeding with indexing", "error", err)
		}
		if err == nil && indexed {
			log.Debug("document already indexed, skipping")
			return Result{AlreadyIndexed: true}, nil
		}
	}

	text, err := extract.Text(path, extract.Options{})
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyContent
	}

	chunks, err := chunker.Split(text, ix.maxTokens)
	if err != nil {
		return Result{}, err
	}
	if len(chunks) == 0 {
		return Result{}, ErrEmptyContent
	}
	log.Debug("document chunked", "chunks", len(chunks))

	var result Result
	for start := 0; start < len(chunks); start += config.EmbeddingBatchSize {
		end := start + config.EmbeddingBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		vectors, err := ix.embedder.EmbedBatch(ctx, batch, embedding.RoleDocument)
		if err != nil {
			// Earlier batches stay in the index. Callers wanting
			// all-or-nothing retry with forceReindex.
			return result, fmt.Errorf("embedding batch at chunk %d: %w", start, err)
		}

		entries := make([]commonModels.ChunkEntry, 0, len(batch))
		for i, vector := range vectors {
			if len(vector) == 0 {
				// Deliberate best-effort: one bad chunk should not abort the
				// whole document.
				result.ChunksSkipped++
				metrics.IncrementSkippedChunks()
				continue
			}
			entries = append(entries, commonModels.ChunkEntry{
				Metadata: commonModels.ChunkMetadata{
					DocumentID: documentID,
					ChunkIndex: start + i,
				},
				Text:      batch[i],
				Embedding: vector,
			})
		}

		if err := ix.index.Upsert(ctx, entries); err != nil {
			return result, fmt.Errorf("upserting batch at chunk %d: %w", start, err)
		}
		result.ChunksIndexed += len(entries)
	}

	if result.ChunksSkipped > 0 {
		log.Warn("chunks dropped due to empty embeddings", "skipped", result.ChunksSkipped)
	}
	log.Info("document indexed", "chunks", result.ChunksIndexed, "skipped", result.ChunksSkipped)
	return result, nil
}

// Delete removes every chunk of a document. Deleting a document that was
// never indexed succeeds.
func (ix *Indexer) Delete(ctx context.Context, documentID string) error {
	return ix.index.DeleteByDocument(ctx, documentID)
}
