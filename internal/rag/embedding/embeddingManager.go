package embedding

import (
	"context"
	"fmt"
	"strings"

	"bookrag/internal/config"
)

// Role tells asymmetric embedding models which side of the retrieval they are
// encoding. Values follow the Gemini task type names.
type Role string

const (
	RoleDocument Role = "RETRIEVAL_DOCUMENT"
	RoleQuery    Role = "RETRIEVAL_QUERY"
)

type Embedder interface {
	// Embed returns the vector for text. Empty or whitespace-only text maps
	// to an empty vector, the "do not index" sentinel, never an error.
	Embed(ctx context.Context, text string, role Role) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string, role Role) ([][]float32, error)
}

// Error marks a real provider failure. Callers decide whether to abort or
// skip, it is never swallowed here.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("embedding provider %s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// disabledDimension must equal the vector collection's configured size or the
// backend rejects every offline upsert and query.
var disabledDimension = int(config.EmbeddingOutputDimensionality)

type disabledEmbedder struct{}

// Disabled returns the offline embedder: a fixed-length zero vector for any
// non-empty text. Used for tests and DISABLE_AI runs, it cannot fail and must
// never be mistaken for a provider outage.
func Disabled() Embedder { return disabledEmbedder{} }

func (disabledEmbedder) Embed(ctx context.Context, text string, role Role) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return make([]float32, disabledDimension), nil
}

func (d disabledEmbedder) EmbedBatch(ctx context.Context, texts []string, role Role) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = d.Embed(ctx, t, role)
	}
	return out, nil
}
