package googleEmbedding

import (
	"context"
	"strings"
	"sync"
	"time"

	"bookrag/internal/config"
	"bookrag/internal/rag/embedding"
	"bookrag/pkg/logger_i"

	"google.golang.org/genai"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client
var dimension int32 = config.EmbeddingOutputDimensionality

type client struct {
	genAi *genai.Client
	model string
}

func newGoogleEmbedder(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Google Embedding client:", "error", err)
	}
	if c != nil {
		embeddingClient = &client{
			genAi: c,
			model: modelName,
		}
		logger.Info("Google Embedding client created", "model", modelName)
		go closeClient(ctx, embeddingClient)
	}
}

func closeClient(ctx context.Context, embeddingClient *client) {
	<-ctx.Done()
	logger.Info("Closing Google Embedding client")
	embeddingClient.genAi = nil
	embeddingClient.model = ""
}

func GetGoogleEmbeddingClient(ctx context.Context, modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("google_embedding")
		newGoogleEmbedder(ctx, modelName, apikey)
	})

	//if init still fails
	if embeddingClient == nil {
		return nil
	}
	return &client{genAi: embeddingClient.genAi, model: embeddingClient.model}
}

func (c *client) Embed(ctx context.Context, text string, role embedding.Role) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	result, err := c.doCall(ctx, genai.Text(text), role)
	if err != nil {
		logger.Error("Error getting embedding from Google", "error", err.Error())
		return nil, &embedding.Error{Provider: "google", Err: err}
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) EmbedBatch(ctx context.Context, texts []string, role embedding.Role) ([][]float32, error) {
	// Blank texts keep their slot so results line up with the input, they
	// just never reach the model.
	contents, index := getContent(texts)
	results := make([][]float32, len(texts))
	if len(contents) == 0 {
		return results, nil
	}

	res, err := c.doCall(ctx, contents, role)
	if err != nil {
		if doRetry(err, logger) {
			time.Sleep(5 * time.Second)
			logger.Debug("Retrying embedding batch after rate limit")
			res, err = c.doCall(ctx, contents, role)
		}
		if err != nil {
			logger.Error("Error getting embeddings from Google", "error", err.Error())
			return nil, &embedding.Error{Provider: "google", Err: err}
		}
	}

	for i, r := range res.Embeddings {
		results[index[i]] = r.Values
	}
	return results, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content, role embedding.Role) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
		TaskType:             string(role),
	})
}
