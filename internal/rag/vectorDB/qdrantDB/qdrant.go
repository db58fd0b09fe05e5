package qdrantDB

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"

	"bookrag/internal/config"
	"bookrag/internal/domain/commonModels"
	"bookrag/internal/rag/vectorDB"
	"bookrag/pkg/logger_i"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

var logger *logger_i.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)
var collectionName = config.RagCollectionName

// Qdrant point ids must be UUIDs or integers, so the deterministic entry id
// "{document_id}_chunk_{i}" is mapped through UUIDv5. Same entry id, same
// point id, which is what keeps upsert and delete idempotent. The raw entry
// id is kept in the payload for inspection.
var entryNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte(collectionName))

func pointID(entryID string) string {
	return uuid.NewSHA1(entryNamespace, []byte(entryID)).String()
}

type ClientHolder struct {
	QObj *qdrant.Client
}

func GetQdrantClient(ctx context.Context) *ClientHolder {
	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient()
		if res != nil {
			qdrantInstance = res
			initCacheCollection(ctx, qdrantInstance)
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj: qdrantInstance,
	}
}

func newClient() *qdrant.Client {
	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	err = createCollection(context.Background(), client, collectionName)
	if err != nil {
		logger.Error("could not create collection: ", "collectionName", collectionName, "error:", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

func documentFilter(documentID string) *qdrant.Filter {
	if documentID == "" {
		return nil
	}
	return &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("document_id", documentID),
		},
	}
}

func (db *ClientHolder) Upsert(ctx context.Context, entries []commonModels.ChunkEntry) error {
	if len(entries) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, len(entries))
	for i, entry := range entries {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(pointID(entry.Metadata.EntryID())),
			Vectors: qdrant.NewVectors(entry.Embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				"entry_id":    entry.Metadata.EntryID(),
				"document_id": entry.Metadata.DocumentID,
				"chunk_index": entry.Metadata.ChunkIndex,
				"content":     entry.Text,
			}),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return &vectorDB.BackendError{Op: "upsert", Err: err}
	}
	return nil
}

func (db *ClientHolder) Query(ctx context.Context, vector []float32, topK int, documentID string) ([]commonModels.ChunkMatch, error) {
	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		Filter:         documentFilter(documentID),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		logger.Error("Error querying Qdrant: ", "error:", err)
		return nil, &vectorDB.BackendError{Op: "query", Err: err}
	}

	matches := make([]commonModels.ChunkMatch, 0, len(result))
	for _, hit := range result {
		matches = append(matches, commonModels.ChunkMatch{
			Metadata: commonModels.ChunkMetadata{
				DocumentID: hit.Payload["document_id"].GetStringValue(),
				ChunkIndex: int(hit.Payload["chunk_index"].GetIntegerValue()),
			},
			Text:  hit.Payload["content"].GetStringValue(),
			Score: hit.Score,
		})
	}
	return matches, nil
}

func (db *ClientHolder) DeleteByDocument(ctx context.Context, documentID string) error {
	// An empty id would build a match-all selector and wipe the collection.
	if documentID == "" {
		return errors.New("delete requires a non-empty document id")
	}

	_, err := db.QObj.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collectionName,
		Points:         qdrant.NewPointsSelectorFilter(documentFilter(documentID)),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return &vectorDB.BackendError{Op: "delete", Err: err}
	}
	return nil
}

func (db *ClientHolder) Count(ctx context.Context, documentID string) (uint64, error) {
	count, err := db.QObj.Count(ctx, &qdrant.CountPoints{
		CollectionName: collectionName,
		Filter:         documentFilter(documentID),
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, &vectorDB.BackendError{Op: "count", Err: err}
	}
	return count, nil
}

func (db *ClientHolder) HasAny(ctx context.Context, documentID string) (bool, error) {
	count, err := db.Count(ctx, documentID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	return err
}
