package qdrantDB

import (
	"context"
	"time"

	"bookrag/internal/config"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

var answerCacheCollection = config.AnswerCacheCollection

func initCacheCollection(ctx context.Context, client *qdrant.Client) {
	err := createCollection(ctx, client, answerCacheCollection)
	if err != nil {
		logger.Error("Answer cache collection creation failed", "error", err)
	}
}

func cacheFilter(documentID string, mode string) *qdrant.Filter {
	// An answer is only reusable for the same book under the same mode.
	return &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("document_id", documentID),
			qdrant.NewMatch("mode", mode),
		},
	}
}

func (db *ClientHolder) GetCachedAnswer(ctx context.Context, queryVector []float32, documentID string, mode string) (string, bool, error) {
	searchResult, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: answerCacheCollection,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(1)),
		Filter:         cacheFilter(documentID, mode),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil || len(searchResult) == 0 {
		return "", false, err
	}

	logger.Debug("Found cached answer", "semantic similarity score", searchResult[0].Score)
	if searchResult[0].Score < config.CacheSimilarityCutoff {
		return "", false, nil
	}

	answer := searchResult[0].Payload["answer"].GetStringValue()
	return answer, true, nil
}

func (db *ClientHolder) SaveToCache(ctx context.Context, queryVector []float32, documentID string, mode string, answer string) error {
	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: answerCacheCollection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(uuid.New().String()),
				Vectors: qdrant.NewVectors(queryVector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"answer":      answer,
					"document_id": documentID,
					"mode":        mode,
					"timestamp":   time.Now().Unix(),
				}),
			},
		},
	})
	if err != nil {
		logger.Error("Saving answer to cache failed", "error", err)
	}
	return err
}
