package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"bookrag/internal/adapter"
	"bookrag/internal/api"
	"bookrag/internal/config"
	"bookrag/internal/domain/jobModel"
	"bookrag/internal/rag/estimate"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(ctx context.Context) bool {
	logRH.With("traceId:", ctx.Value(config.TRACE_ID_KEY).(string))
	if ctx.Err() != nil {
		logRH.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func buildEstimate(requestData api.EstimateRequest) api.EstimateResponse {
	maxTokens := requestData.MaxTokens
	if maxTokens <= 0 {
		maxTokens = config.MaxChunkTokens()
	}

	batch := estimate.ForFiles(requestData.FilePaths, maxTokens)
	response := api.EstimateResponse{
		Tokens:         batch.Tokens,
		Chunks:         batch.Chunks,
		FilesProcessed: batch.FilesProcessed,
	}
	if requestData.Per1K > 0 {
		cost := estimate.Cost(batch.Tokens, requestData.Per1K)
		response.Per1K = &requestData.Per1K
		response.EstimatedCost = &cost
	}
	return response
}
