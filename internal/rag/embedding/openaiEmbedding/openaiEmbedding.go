package openaiEmbedding

import (
	"context"
	"strings"
	"sync"

	"bookrag/internal/config"
	"bookrag/internal/customHttpClient"
	"bookrag/internal/rag/embedding"
	"bookrag/pkg/logger_i"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI has no retrieval task types, both roles share one embedding space.

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client
var dimension = int64(config.EmbeddingOutputDimensionality)

type client struct {
	api   openai.Client
	model string
}

func GetOpenAIEmbeddingClient(modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("openai_embedding")
		if apikey == "" {
			logger.Error("OpenAI API key is missing")
			return
		}
		embeddingClient = &client{
			api: openai.NewClient(
				option.WithAPIKey(apikey),
				option.WithHTTPClient(customHttpClient.PooledClient()),
			),
			model: modelName,
		}
		logger.Info("OpenAI embedding client created", "model", modelName)
	})

	if embeddingClient == nil {
		return nil
	}
	return embeddingClient
}

func (c *client) Embed(ctx context.Context, text string, role embedding.Role) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	vectors, err := c.EmbedBatch(ctx, []string{text}, role)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) EmbedBatch(ctx context.Context, texts []string, role embedding.Role) ([][]float32, error) {
	results := make([][]float32, len(texts))

	var inputs []string
	var index []int
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		inputs = append(inputs, t)
		index = append(index, i)
	}
	if len(inputs) == 0 {
		return results, nil
	}

	resp, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:      openai.EmbeddingModel(c.model),
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: inputs},
		Dimensions: openai.Int(dimension),
	})
	if err != nil {
		logger.Error("Error getting embeddings from OpenAI", "error", err.Error())
		return nil, &embedding.Error{Provider: "openai", Err: err}
	}

	for _, data := range resp.Data {
		vector := make([]float32, len(data.Embedding))
		for i, v := range data.Embedding {
			vector[i] = float32(v)
		}
		results[index[data.Index]] = vector
	}
	return results, nil
}
