package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//embeddings
	//text-embedding-004 emits 768-dimensional vectors
	EmbeddingOutputDimensionality int32 = 768
	GoogleEmbeddingModel                = "text-embedding-004"
	OpenAIEmbeddingModel                = "text-embedding-3-small"

	//generation
	GeminiModelName = "gemini-1.5-flash"
	OpenAIModelName = "gpt-4o-mini"

	//vector index
	RagCollectionName       = "book_rag_collection"
	AnswerCacheCollection   = "answer-cache"
	CacheSimilarityCutoff   = 0.97
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = ""
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false
	QdrantPoolSize          = 1

	//retrieval
	QueryTopK             = 5
	SearchTopK            = 10
	DefaultMaxChunkTokens = 1000

	//extraction
	MetadataPageCap    = 5    //first pages used for title/author analysis
	PreviewCharBudget  = 4500 //preview budget for analysis, indexing is uncapped
	EmbeddingBatchSize = 100

	//worker pool
	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	IndexJobTimeout                 = 10 * time.Minute //a large book embeds in many batches

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	ServerListenAddr = ":3000"
	BufferLimit      = 100

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""
	RedisJobStore = 0

	RedisJobStoreTTL = 24 * time.Hour
)

// LoadDotEnv pulls a .env file into the process environment if one exists.
// Missing files are fine, explicit env vars always win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// AIDisabled reports whether all embedding/generation backends are bypassed.
// DISABLE_AI=1 forces the deterministic offline mode, and a missing API key
// for the selected provider implies it.
func AIDisabled() bool {
	if os.Getenv("DISABLE_AI") == "1" {
		return true
	}
	switch EmbeddingProvider() {
	case "openai":
		return os.Getenv("OPENAI_API_KEY") == ""
	default:
		return GoogleAPIKey() == ""
	}
}

func GoogleAPIKey() string {
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GEMINI_API_KEY")
}

// EmbeddingProvider selects the embedding/generation backend: "google" or "openai".
func EmbeddingProvider() string {
	if p := os.Getenv("EMBEDDING_PROVIDER"); p != "" {
		return p
	}
	return "google"
}

func AuthToken() string {
	return os.Getenv("AUTH_TOKEN")
}

// NoAuthBypass disables bearer auth when no token is configured (local dev).
func NoAuthBypass() bool {
	return AuthToken() == ""
}

func MaxChunkTokens() int {
	if v, err := strconv.Atoi(os.Getenv("RAG_MAX_TOKENS")); err == nil && v > 0 {
		return v
	}
	return DefaultMaxChunkTokens
}
