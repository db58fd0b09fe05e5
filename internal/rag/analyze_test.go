package rag_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookrag/internal/config"
	"bookrag/internal/rag"
)

func writePreviewFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeDocument_ParsesMetadata(t *testing.T) {
	mockLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, prompt string) (string, error) {
			return "Título: La ciudad y los perros\nAutor: Mario Vargas Llosa\nCategoría: Desconocido\n", nil
		},
	}
	svc := rag.NewService(&MockIndex{}, nil, mockLLM, &MockEmbedder{}, false)

	path := writePreviewFile(t, "LA CIUDAD Y LOS PERROS\npor Mario Vargas Llosa\n")
	meta, err := svc.AnalyzeDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeDocument failed: %v", err)
	}

	if meta.Title != "La ciudad y los perros" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Author != "Mario Vargas Llosa" {
		t.Errorf("Author = %q", meta.Author)
	}
	if meta.Category != "" {
		t.Errorf("Desconocido should map to an empty field, got %q", meta.Category)
	}
	if !strings.Contains(mockLLM.LastPrompt, "LA CIUDAD Y LOS PERROS") {
		t.Error("prompt should carry the document preview")
	}
}

func TestAnalyzeDocument_PreviewIsBounded(t *testing.T) {
	mockLLM := &MockLLM{}
	svc := rag.NewService(&MockIndex{}, nil, mockLLM, &MockEmbedder{}, false)

	content := strings.Repeat("texto de relleno ", config.PreviewCharBudget/10) + "CENTINELA-FINAL"
	path := writePreviewFile(t, content)

	if _, err := svc.AnalyzeDocument(context.Background(), path); err != nil {
		t.Fatalf("AnalyzeDocument failed: %v", err)
	}
	if strings.Contains(mockLLM.LastPrompt, "CENTINELA-FINAL") {
		t.Error("the tail of the file leaked past the preview character budget into the prompt")
	}
}

func TestAnalyzeDocument_DisabledGeneration(t *testing.T) {
	mockLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, prompt string) (string, error) {
			t.Error("generation must not be called while disabled")
			return "", nil
		},
	}
	svc := rag.NewService(&MockIndex{}, nil, mockLLM, &MockEmbedder{}, true)

	_, err := svc.AnalyzeDocument(context.Background(), writePreviewFile(t, "algo de texto"))
	if !errors.Is(err, rag.ErrAnalysisUnavailable) {
		t.Fatalf("got %v, want ErrAnalysisUnavailable", err)
	}
}
