package estimate

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookrag/internal/config"
	"bookrag/internal/rag/chunker"
)

func requireEncoder(t *testing.T) {
	t.Helper()
	if _, err := chunker.CountTokens("hola"); err != nil {
		t.Skipf("token encoding unavailable: %v", err)
	}
}

func writeTextFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestForFile_MatchesChunker(t *testing.T) {
	requireEncoder(t)

	text := strings.Repeat("un libro sobre el mar y los barcos que lo cruzan ", 200)
	path := writeTextFile(t, "book.txt", text)

	est, err := ForFile(path, 100)
	if err != nil {
		t.Fatalf("ForFile failed: %v", err)
	}

	tokens, err := chunker.CountTokens(text)
	if err != nil {
		t.Fatal(err)
	}
	if est.Tokens != tokens {
		t.Errorf("tokens: got %d, want %d", est.Tokens, tokens)
	}
	if want := (tokens + 99) / 100; est.Chunks != want {
		t.Errorf("chunks: got %d, want %d", est.Chunks, want)
	}
}

func TestForFile_EmptyFile(t *testing.T) {
	path := writeTextFile(t, "empty.txt", "   \n")

	est, err := ForFile(path, 1000)
	if err != nil {
		t.Fatalf("ForFile failed: %v", err)
	}
	if est.Tokens != 0 || est.Chunks != 0 {
		t.Errorf("empty file should estimate to zero, got %+v", est)
	}
}

func TestForFile_NonPositiveMaxTokensDefaults(t *testing.T) {
	requireEncoder(t)

	path := writeTextFile(t, "book.txt", strings.Repeat("una frase más del capítulo ", 100))

	want, err := ForFile(path, config.MaxChunkTokens())
	if err != nil {
		t.Fatalf("ForFile failed: %v", err)
	}

	for _, maxTokens := range []int{0, -5} {
		got, err := ForFile(path, maxTokens)
		if err != nil {
			t.Fatalf("ForFile(%d) failed: %v", maxTokens, err)
		}
		if got != want {
			t.Errorf("ForFile(%d) = %+v, want the configured default %+v", maxTokens, got, want)
		}
	}
}

func TestForFiles_SkipsUnreadable(t *testing.T) {
	requireEncoder(t)

	good := writeTextFile(t, "good.txt", strings.Repeat("texto util ", 50))
	bad := filepath.Join(t.TempDir(), "bad.png")

	batch := ForFiles([]string{good, bad}, 1000)
	if batch.FilesProcessed != 1 {
		t.Errorf("FilesProcessed: got %d, want 1", batch.FilesProcessed)
	}
	if batch.Tokens == 0 {
		t.Error("the readable file should still be counted")
	}
}

func TestCost(t *testing.T) {
	if got := Cost(3500, 0.02); math.Abs(got-0.07) > 1e-9 {
		t.Errorf("Cost(3500, 0.02) = %v, want 0.07", got)
	}
	if got := Cost(0, 0.02); got != 0 {
		t.Errorf("Cost(0, 0.02) = %v, want 0", got)
	}
}
