package rag_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bookrag/internal/domain/commonModels"
	"bookrag/internal/rag"
	"bookrag/internal/rag/embedding"
)

func newTestService(index *MockIndex, cache *MockCache, llm *MockLLM, embedder *MockEmbedder, disabled bool) rag.Service {
	return rag.NewService(index, cache, llm, embedder, disabled)
}

func TestQuery_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		question       string
		mode           commonModels.QueryMode
		disabled       bool
		setupMocks     func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM)
		expectedAnswer string
		expectErr      bool
	}{
		{
			name:           "Success_Full_Flow",
			question:       "de qué trata el libro",
			mode:           commonModels.ModeBalanced,
			setupMocks:     func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM) {},
			expectedAnswer: "mocked llm response",
		},
		{
			name:     "Success_Cache_Hit",
			question: "pregunta repetida",
			mode:     commonModels.ModeBalanced,
			setupMocks: func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM) {
				c.OnGetCachedAnswer = func(ctx context.Context, v []float32, documentID string, mode string) (string, bool, error) {
					return "cached answer", true, nil
				}
				l.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
					t.Error("generation must not run on a cache hit")
					return "", nil
				}
			},
			expectedAnswer: "cached answer",
		},
		{
			name:     "Empty_Query_Short_Circuit",
			question: "",
			mode:     commonModels.ModeBalanced,
			setupMocks: func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
					t.Error("generation must not run for an empty query")
					return "", nil
				}
				i.OnQuery = func(ctx context.Context, v []float32, topK int, documentID string) ([]commonModels.ChunkMatch, error) {
					t.Error("vector search must not run for an empty query")
					return nil, nil
				}
			},
			expectedAnswer: rag.EmptyQueryAnswer,
		},
		{
			name:     "Failure_Embedding",
			question: "algo",
			mode:     commonModels.ModeBalanced,
			setupMocks: func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM) {
				e.OnEmbed = func(ctx context.Context, text string, role embedding.Role) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectErr: true,
		},
		{
			name:     "Failure_Vector_Search",
			question: "algo",
			mode:     commonModels.ModeBalanced,
			setupMocks: func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM) {
				i.OnQuery = func(ctx context.Context, v []float32, topK int, documentID string) ([]commonModels.ChunkMatch, error) {
					return nil, errors.New("db timeout")
				}
			},
			expectErr: true,
		},
		{
			name:     "Failure_LLM_Generation",
			question: "algo",
			mode:     commonModels.ModeBalanced,
			setupMocks: func(e *MockEmbedder, i *MockIndex, c *MockCache, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mIndex := &MockIndex{}
			mCache := &MockCache{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mIndex, mCache, mLLM)

			s := newTestService(mIndex, mCache, mLLM, mEmbed, tt.disabled)

			answer, err := s.Query(context.Background(), rag.QueryParams{
				Question:   tt.question,
				DocumentID: "book-1",
				Mode:       tt.mode,
			})

			if tt.expectErr {
				if err == nil {
					t.Fatal("expected an error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if tt.expectedAnswer != "" && answer != tt.expectedAnswer {
				t.Errorf("Answer got %q, want %q", answer, tt.expectedAnswer)
			}
		})
	}
}

func TestQuery_DisabledGeneration(t *testing.T) {
	mIndex := &MockIndex{
		OnQuery: func(ctx context.Context, v []float32, topK int, documentID string) ([]commonModels.ChunkMatch, error) {
			return []commonModels.ChunkMatch{
				{Text: "primer fragmento del libro", Score: 0.9},
				{Text: "segundo fragmento del libro", Score: 0.8},
			}, nil
		},
	}
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, prompt string) (string, error) {
			t.Error("generation must not run in disabled mode")
			return "", nil
		},
	}

	s := newTestService(mIndex, &MockCache{}, mLLM, &MockEmbedder{}, true)

	answer, err := s.Query(context.Background(), rag.QueryParams{
		Question:   "de qué trata",
		DocumentID: "book-1",
		Mode:       commonModels.ModeStrict,
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if !strings.HasPrefix(answer, "[IA deshabilitada]") {
		t.Errorf("disabled answer missing marker, got %q", answer)
	}
	if !strings.Contains(answer, "primer fragmento del libro") {
		t.Errorf("disabled answer should carry a prefix of the retrieved context, got %q", answer)
	}
}

func TestQuery_ModeControlsPrompt(t *testing.T) {
	mIndex := &MockIndex{}
	library := &commonModels.LibraryContext{AuthorOtherBooks: []string{"Otra novela"}}
	metadata := &commonModels.BookMetadata{Title: "La novela", Author: "Autora", Category: "Ficción"}

	t.Run("strict mode excludes library context", func(t *testing.T) {
		mLLM := &MockLLM{}
		s := newTestService(mIndex, &MockCache{}, mLLM, &MockEmbedder{}, false)

		_, err := s.Query(context.Background(), rag.QueryParams{
			Question:   "quién es la protagonista",
			DocumentID: "book-1",
			Mode:       commonModels.ModeStrict,
			Metadata:   metadata,
			Library:    library,
		})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if strings.Contains(mLLM.LastPrompt, "Otra novela") {
			t.Error("strict prompt must not mention other works by the author")
		}
		if !strings.Contains(mLLM.LastPrompt, "únicamente") {
			t.Error("strict prompt missing context-only guidance")
		}
		if !strings.Contains(mLLM.LastPrompt, "La novela") {
			t.Error("prompt missing book metadata")
		}
	})

	t.Run("balanced mode includes library context", func(t *testing.T) {
		mLLM := &MockLLM{}
		s := newTestService(mIndex, &MockCache{}, mLLM, &MockEmbedder{}, false)

		_, err := s.Query(context.Background(), rag.QueryParams{
			Question:   "quién es la protagonista",
			DocumentID: "book-1",
			Mode:       commonModels.ModeBalanced,
			Metadata:   metadata,
			Library:    library,
		})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if !strings.Contains(mLLM.LastPrompt, "Otra novela") {
			t.Error("balanced prompt should mention other works by the author")
		}
	})

	t.Run("unknown mode falls back to balanced", func(t *testing.T) {
		mLLM := &MockLLM{}
		s := newTestService(mIndex, &MockCache{}, mLLM, &MockEmbedder{}, false)

		_, err := s.Query(context.Background(), rag.QueryParams{
			Question:   "quién es la protagonista",
			DocumentID: "book-1",
			Mode:       commonModels.QueryMode("not-a-mode"),
		})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if !strings.Contains(mLLM.LastPrompt, "Prioriza la información del Contexto") {
			t.Error("invalid mode should behave like balanced")
		}
	})
}

func TestSemanticSearch_DedupesRankedOrder(t *testing.T) {
	mIndex := &MockIndex{
		OnQuery: func(ctx context.Context, v []float32, topK int, documentID string) ([]commonModels.ChunkMatch, error) {
			if documentID != "" {
				t.Errorf("semantic search must query the whole library, got filter %q", documentID)
			}
			return []commonModels.ChunkMatch{
				{Metadata: commonModels.ChunkMetadata{DocumentID: "book-b"}, Score: 0.95},
				{Metadata: commonModels.ChunkMetadata{DocumentID: "book-a"}, Score: 0.90},
				{Metadata: commonModels.ChunkMetadata{DocumentID: "book-b"}, Score: 0.85},
				{Metadata: commonModels.ChunkMetadata{DocumentID: "book-c"}, Score: 0.80},
			}, nil
		},
	}

	s := newTestService(mIndex, &MockCache{}, &MockLLM{}, &MockEmbedder{}, false)

	results, err := s.SemanticSearch(context.Background(), "una historia de mar")
	if err != nil {
		t.Fatalf("SemanticSearch failed: %v", err)
	}

	want := []string{"book-b", "book-a", "book-c"}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d: %v", len(results), len(want), results)
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("rank %d: got %s, want %s", i, results[i], want[i])
		}
	}
}

func TestIndexCount_DegradesToZero(t *testing.T) {
	mIndex := &MockIndex{
		OnCount: func(ctx context.Context, documentID string) (uint64, error) {
			return 0, errors.New("backend unreachable")
		},
	}
	s := newTestService(mIndex, &MockCache{}, &MockLLM{}, &MockEmbedder{}, false)

	if got := s.IndexCount(context.Background(), "book-1"); got != 0 {
		t.Errorf("IndexCount on failure got %d, want 0", got)
	}
	if s.HasIndex(context.Background(), "book-1") {
		t.Error("HasIndex on failure should report false")
	}
}
