// @title           Book RAG API
// @version         1.0
// @description     This API indexes ebook content into a vector store and answers questions about it
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"bookrag/internal/config"
	"bookrag/internal/data/store"
	jobmodel "bookrag/internal/domain/jobModel"
	"bookrag/internal/handlers"
	"bookrag/internal/job"
	"bookrag/internal/mcpserver"
	"bookrag/internal/rag"
	"bookrag/internal/rag/embedding"
	"bookrag/internal/rag/embedding/googleEmbedding"
	"bookrag/internal/rag/embedding/openaiEmbedding"
	"bookrag/internal/rag/llm"
	"bookrag/internal/rag/llm/gemini"
	"bookrag/internal/rag/llm/openaiLLM"
	"bookrag/internal/rag/vectorDB"
	"bookrag/internal/rag/vectorDB/qdrantDB"
	"bookrag/internal/server"
	"bookrag/internal/worker"
	"bookrag/pkg/logger_i"
)

var (
	listenAddr        string
	mcpMode           bool
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	config.LoadDotEnv()
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.BoolVar(&mcpMode, "mcp", false, "serve the query engine over MCP stdio instead of HTTP")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          store.GetRedisJobStore(serviceContext),
	}
	logger.Info("Starting job service")

	if serviceConfig.JobStore == nil {
		logger.Error("Redis job store is offline, falling back to in-memory")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
	}
	service := job.InitJobService(serviceConfig)

	vectorClient := qdrantDB.GetQdrantClient(serviceContext)
	if vectorClient == nil {
		logger.Error("Vector store failed to initialize. Shutting down.")
		return
	}

	aiDisabled := config.AIDisabled()
	embedder, llmProvider := buildAIClients(serviceContext, aiDisabled)
	if embedder == nil || (!aiDisabled && llmProvider == nil) {
		logger.Error("One or more AI services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "EmbeddingService", embedder != nil, "LLMProvider", llmProvider != nil)
		return
	}

	var answerCache vectorDB.AnswerCache = vectorClient
	ragService := rag.NewService(vectorClient, answerCache, llmProvider, embedder, aiDisabled)

	handlers.InitJobHandler(service, ragService)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	if mcpMode {
		runMCP(serviceContext, ragService, logger)
		return
	}

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

// buildAIClients wires the embedding and generation backends for the selected
// provider. Disabled mode runs fully offline on deterministic zero vectors,
// no generation client is needed there.
func buildAIClients(ctx context.Context, aiDisabled bool) (embedding.Embedder, llm.Provider) {
	if aiDisabled {
		return embedding.Disabled(), nil
	}

	switch config.EmbeddingProvider() {
	case "openai":
		apikey := os.Getenv("OPENAI_API_KEY")
		return openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, apikey),
			openaiLLM.GetOpenAIClient(config.OpenAIModelName, apikey)
	default:
		apikey := config.GoogleAPIKey()
		return googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, apikey),
			gemini.GetGeminiClient(ctx, config.GeminiModelName, apikey)
	}
}

func runMCP(ctx context.Context, ragService rag.Service, logger *logger_i.Logger) {
	mcpServer, err := mcpserver.NewServer(ragService)
	if err != nil {
		logger.Error("Could not create MCP server", "error", err)
		return
	}
	if err := mcpServer.Run(ctx); err != nil {
		logger.Error("MCP server stopped", "error", err)
	}
	close(stopWorkerChannel)
	workerWaitGroup.Wait()
}
