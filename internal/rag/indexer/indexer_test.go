package indexer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookrag/internal/domain/commonModels"
	"bookrag/internal/rag/chunker"
	"bookrag/internal/rag/embedding"
	"bookrag/internal/rag/extract"
	"bookrag/internal/rag/indexer"
)

type mockIndex struct {
	OnUpsert           func(ctx context.Context, entries []commonModels.ChunkEntry) error
	OnDeleteByDocument func(ctx context.Context, documentID string) error
	OnHasAny           func(ctx context.Context, documentID string) (bool, error)

	upserted []commonModels.ChunkEntry
	deletes  int
}

func (m *mockIndex) Upsert(ctx context.Context, entries []commonModels.ChunkEntry) error {
	if m.OnUpsert != nil {
		return m.OnUpsert(ctx, entries)
	}
	m.upserted = append(m.upserted, entries...)
	return nil
}

func (m *mockIndex) Query(ctx context.Context, vector []float32, topK int, documentID string) ([]commonModels.ChunkMatch, error) {
	return nil, nil
}

func (m *mockIndex) DeleteByDocument(ctx context.Context, documentID string) error {
	m.deletes++
	if m.OnDeleteByDocument != nil {
		return m.OnDeleteByDocument(ctx, documentID)
	}
	return nil
}

func (m *mockIndex) Count(ctx context.Context, documentID string) (uint64, error) {
	return uint64(len(m.upserted)), nil
}

func (m *mockIndex) HasAny(ctx context.Context, documentID string) (bool, error) {
	if m.OnHasAny != nil {
		return m.OnHasAny(ctx, documentID)
	}
	return len(m.upserted) > 0, nil
}

type mockEmbedder struct {
	OnEmbedBatch func(ctx context.Context, texts []string, role embedding.Role) ([][]float32, error)
	batchCalls   int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string, role embedding.Role) ([]float32, error) {
	return []float32{0.1}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string, role embedding.Role) ([][]float32, error) {
	m.batchCalls++
	if m.OnEmbedBatch != nil {
		return m.OnEmbedBatch(ctx, texts, role)
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{0.1}
	}
	return vectors, nil
}

// requireTokenizer skips tests that need the token encoding when it cannot
// be loaded (offline environments fetch it on first use).
func requireTokenizer(t *testing.T) {
	t.Helper()
	if _, err := chunker.CountTokens("hola"); err != nil {
		t.Skipf("tokenizer unavailable: %v", err)
	}
}

func writeTextFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestIndex_SkipsAlreadyIndexedDocument(t *testing.T) {
	index := &mockIndex{
		OnHasAny: func(ctx context.Context, documentID string) (bool, error) {
			return true, nil
		},
	}
	embedder := &mockEmbedder{}
	ix := indexer.New(index, embedder, 1000)

	result, err := ix.Index(context.Background(), "book-1", "/does/not/matter.txt", false)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if !result.AlreadyIndexed {
		t.Error("expected the pass to be skipped")
	}
	if embedder.batchCalls != 0 {
		t.Errorf("no embedding calls expected on skip, got %d", embedder.batchCalls)
	}
	if index.deletes != 0 {
		t.Errorf("no deletes expected on skip, got %d", index.deletes)
	}
}

func TestIndex_ForceDeletesBeforeReindex(t *testing.T) {
	requireTokenizer(t)

	path := writeTextFile(t, strings.Repeat("la biblioteca guarda muchos libros antiguos ", 40))
	index := &mockIndex{
		OnHasAny: func(ctx context.Context, documentID string) (bool, error) {
			t.Error("force reindex must not consult has-any")
			return true, nil
		},
	}
	ix := indexer.New(index, &mockEmbedder{}, 1000)

	result, err := ix.Index(context.Background(), "book-1", path, true)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if index.deletes != 1 {
		t.Errorf("expected one delete before reindex, got %d", index.deletes)
	}
	if result.ChunksIndexed == 0 {
		t.Error("expected chunks to be indexed")
	}
	if result.ChunksIndexed != len(index.upserted) {
		t.Errorf("result reports %d chunks, index holds %d", result.ChunksIndexed, len(index.upserted))
	}
}

func TestIndex_ChunkCountMatchesTokenBudget(t *testing.T) {
	requireTokenizer(t)

	text := strings.Repeat("una frase corta sobre el mar y sus barcos ", 400)
	tokens, err := chunker.CountTokens(text)
	if err != nil {
		t.Fatalf("CountTokens failed: %v", err)
	}
	maxTokens := 1000
	wantChunks := (tokens + maxTokens - 1) / maxTokens

	path := writeTextFile(t, text)
	index := &mockIndex{}
	ix := indexer.New(index, &mockEmbedder{}, maxTokens)

	result, err := ix.Index(context.Background(), "book-1", path, false)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if result.ChunksIndexed != wantChunks {
		t.Errorf("got %d chunks, want %d for %d tokens", result.ChunksIndexed, wantChunks, tokens)
	}

	// Re-running without force must be a no-op, not a duplication.
	again, err := ix.Index(context.Background(), "book-1", path, false)
	if err != nil {
		t.Fatalf("second Index failed: %v", err)
	}
	if !again.AlreadyIndexed {
		t.Error("second pass should have been skipped")
	}
	if len(index.upserted) != wantChunks {
		t.Errorf("index holds %d chunks after second pass, want %d", len(index.upserted), wantChunks)
	}

	// Entry ids stay deterministic per chunk position.
	firstID := index.upserted[0].Metadata.EntryID()
	if firstID != "book-1_chunk_0" {
		t.Errorf("unexpected entry id %q", firstID)
	}
}

func TestIndex_EmptyContent(t *testing.T) {
	path := writeTextFile(t, "   \n\t  ")
	ix := indexer.New(&mockIndex{}, &mockEmbedder{}, 1000)

	_, err := ix.Index(context.Background(), "book-1", path, false)
	if !errors.Is(err, indexer.ErrEmptyContent) {
		t.Errorf("got %v, want ErrEmptyContent", err)
	}
}

func TestIndex_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xyz")
	if err := os.WriteFile(path, []byte("contenido"), 0644); err != nil {
		t.Fatal(err)
	}
	ix := indexer.New(&mockIndex{}, &mockEmbedder{}, 1000)

	_, err := ix.Index(context.Background(), "book-1", path, false)
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestIndex_SkipsChunksWithEmptyEmbeddings(t *testing.T) {
	requireTokenizer(t)

	path := writeTextFile(t, strings.Repeat("palabras suficientes para superar un chunk entero ", 300))
	index := &mockIndex{}
	embedder := &mockEmbedder{
		OnEmbedBatch: func(ctx context.Context, texts []string, role embedding.Role) ([][]float32, error) {
			vectors := make([][]float32, len(texts))
			for i := range texts {
				if i == 0 {
					continue // simulate one chunk the provider refused to embed
				}
				vectors[i] = []float32{0.1}
			}
			return vectors, nil
		},
	}
	ix := indexer.New(index, embedder, 1000)

	result, err := ix.Index(context.Background(), "book-1", path, false)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if result.ChunksSkipped != 1 {
		t.Errorf("got %d skipped chunks, want 1", result.ChunksSkipped)
	}
	if result.ChunksIndexed != len(index.upserted) {
		t.Errorf("result reports %d indexed, index holds %d", result.ChunksIndexed, len(index.upserted))
	}
	for _, entry := range index.upserted {
		if entry.Metadata.ChunkIndex == 0 {
			t.Error("the skipped chunk must not reach the index")
		}
	}
}

func TestIndex_EmbeddingFailureLeavesPartialState(t *testing.T) {
	requireTokenizer(t)

	// A tiny token budget forces enough chunks for more than one batch.
	path := writeTextFile(t, strings.Repeat("un texto que se parte en varios trozos ", 200))
	index := &mockIndex{}
	call := 0
	embedder := &mockEmbedder{
		OnEmbedBatch: func(ctx context.Context, texts []string, role embedding.Role) ([][]float32, error) {
			call++
			if call > 1 {
				return nil, errors.New("quota exhausted")
			}
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = []float32{0.1}
			}
			return vectors, nil
		},
	}
	ix := indexer.New(index, embedder, 10)

	_, err := ix.Index(context.Background(), "book-1", path, false)
	if err == nil {
		t.Skip("text fit in a single batch, nothing to assert")
	}
	if len(index.upserted) == 0 {
		t.Error("chunks embedded before the failure should remain in the index")
	}
}
