package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"

	"bookrag/internal/adapter"
	"bookrag/internal/adapter/utils"
	"bookrag/internal/api"
	"bookrag/internal/config"
	"bookrag/internal/domain/commonModels"
	"bookrag/internal/rag"
	"bookrag/internal/rag/extract"
	"bookrag/internal/rag/indexer"
	"bookrag/pkg/logger_i"
)

var logRH *logger_i.Logger

// newJobData decouples the request parsing from the job handler so the job
// handler can eventually move to its own package.
type newJobData struct {
	id           string
	traceId      string
	documentID   string
	filePath     string
	forceReindex bool
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// PostIndexHandler godoc
// @Summary      Index a document
// @Description  Queues an asynchronous indexing pass for a document file. Already-indexed documents are skipped unless force=true, which deletes and rebuilds the document's chunks.
// @Tags         Indexing
// @Accept       json
// @Produce      json
// @Param        id       path      string            true   "Document ID"
// @Param        force    query     bool              false  "Delete existing chunks and reindex"
// @Param        request  body      api.IndexRequest  true   "Path of the file to index"
// @Success      202      {object}  api.InitJobResponse  "Job queued"
// @Failure      400      {object}  api.JobResponse      "Invalid request"
// @Failure      404      {object}  api.JobResponse      "File not found"
// @Router       /rag/index/{id} [post]
func PostIndexHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request ", request.RemoteAddr)
		return
	}

	documentID := utils.GetChiURLParam(request, "id")
	if documentID == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "document id is required")
		return
	}

	var requestData api.IndexRequest
	defer closeBody(request.Body)
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || requestData.FilePath == "" {
		logRH.Warn("Bad Index Request: ", "error:", err, "request data:", requestData)
		WriteErrorResponse(w, http.StatusBadRequest, documentID, "file_path is required")
		return
	}

	if _, err := os.Stat(requestData.FilePath); err != nil {
		WriteErrorResponse(w, http.StatusNotFound, documentID, "file not found on disk")
		return
	}

	force, _ := strconv.ParseBool(request.URL.Query().Get("force"))

	newJob := newJobData{
		id:           utils.GetNewUUID(),
		traceId:      request.Context().Value(config.TRACE_ID_KEY).(string),
		documentID:   documentID,
		filePath:     requestData.FilePath,
		forceReindex: force,
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// DeleteIndexHandler godoc
// @Summary      Delete a document's index
// @Description  Removes every stored chunk of a document. Deleting a document that was never indexed succeeds.
// @Tags         Indexing
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DeleteResponse
// @Failure      500  {object}  api.JobResponse  "Vector store failure"
// @Router       /rag/index/{id} [delete]
func DeleteIndexHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	documentID := utils.GetChiURLParam(r, "id")
	if documentID == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "document id is required")
		return
	}

	if err := _ragService.DeleteDocument(r.Context(), documentID); err != nil {
		logRH.Error("Delete failed", "documentId", documentID, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, documentID, "could not delete document index")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.DeleteResponse{DocumentID: documentID, Deleted: true})
}

// QueryHandler godoc
// @Summary      Ask a question about a document
// @Description  Embeds the question, retrieves the most similar chunks of the document and generates an answer. Mode controls how strictly the answer sticks to the retrieved context.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest  true  "Question, document id and optional mode/metadata"
// @Success      200      {object}  api.QueryResponse
// @Failure      400      {object}  api.JobResponse  "Invalid request"
// @Failure      500      {object}  api.JobResponse  "Backend failure"
// @Router       /rag/query/ [post]
func QueryHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request ", request.RemoteAddr)
		return
	}

	var requestData api.QueryRequest
	defer closeBody(request.Body)
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || requestData.DocumentID == "" {
		logRH.Warn("Bad Query Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "document_id is required")
		return
	}

	mode := commonModels.ParseQueryMode(requestData.Mode)
	answer, err := _ragService.Query(request.Context(), rag.QueryParams{
		Question:   requestData.Query,
		DocumentID: requestData.DocumentID,
		Mode:       mode,
		Metadata:   adapter.ToQueryMetadata(requestData.Metadata),
		Library:    adapter.ToLibraryContext(requestData.Library),
	})
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, requestData.DocumentID, "query failed")
		return
	}

	writeJsonResponse(w, http.StatusOK, api.QueryResponse{
		DocumentID: requestData.DocumentID,
		Mode:       string(mode),
		Answer:     answer,
	})
}

// SearchHandler godoc
// @Summary      Semantic search across the library
// @Description  Returns document ids ranked by their best-matching chunk, deduplicated in ranked order.
// @Tags         Query
// @Produce      json
// @Param        q    query     string  true  "Search text"
// @Success      200  {object}  api.SearchResponse
// @Failure      400  {object}  api.JobResponse  "Missing query"
// @Failure      500  {object}  api.JobResponse  "Backend failure"
// @Router       /rag/search [get]
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "q is required")
		return
	}

	results, err := _ragService.SemanticSearch(r.Context(), query)
	if err != nil {
		logRH.Error("Semantic search failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "search failed")
		return
	}
	if results == nil {
		results = []string{}
	}
	writeJsonResponse(w, http.StatusOK, api.SearchResponse{Query: query, Results: results})
}

// GetRagStatusHandler godoc
// @Summary      Index status of a document
// @Description  Reports whether a document has stored chunks and how many. Degrades to indexed=false when the vector store is unreachable.
// @Tags         Indexing
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.StatusResponse
// @Router       /rag/status/{id} [get]
func GetRagStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	documentID := utils.GetChiURLParam(r, "id")
	count := _ragService.IndexCount(r.Context(), documentID)
	writeJsonResponse(w, http.StatusOK, api.StatusResponse{
		DocumentID:  documentID,
		Indexed:     count > 0,
		VectorCount: count,
	})
}

// EstimateHandler godoc
// @Summary      Estimate embedding cost for files
// @Description  Tokenizes files without embedding or storing anything and reports token/chunk totals plus an optional cost at a per-1000-token rate. Unreadable files are skipped, not fatal.
// @Tags         Estimation
// @Accept       json
// @Produce      json
// @Param        request  body      api.EstimateRequest  true  "File paths and optional per1k rate"
// @Success      200      {object}  api.EstimateResponse
// @Failure      400      {object}  api.JobResponse  "Invalid request"
// @Router       /rag/estimate [post]
func EstimateHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		return
	}

	var requestData api.EstimateRequest
	defer closeBody(request.Body)
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || len(requestData.FilePaths) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "", "file_paths is required")
		return
	}

	writeJsonResponse(w, http.StatusOK, buildEstimate(requestData))
}

// AnalyzeHandler godoc
// @Summary      Extract book metadata from a file
// @Description  Reads a bounded preview of the file, the first pages capped at a character budget, and asks the generation model for title, author and category. Unavailable while generation is disabled.
// @Tags         Estimation
// @Accept       json
// @Produce      json
// @Param        request  body      api.AnalyzeRequest  true  "Path of the file to analyze"
// @Success      200      {object}  api.AnalyzeResponse
// @Failure      400      {object}  api.JobResponse  "Invalid request"
// @Failure      404      {object}  api.JobResponse  "File not found"
// @Failure      422      {object}  api.JobResponse  "No text preview could be extracted"
// @Failure      503      {object}  api.JobResponse  "Generation disabled"
// @Router       /rag/analyze [post]
func AnalyzeHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		return
	}

	var requestData api.AnalyzeRequest
	defer closeBody(request.Body)
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || requestData.FilePath == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "file_path is required")
		return
	}

	if _, err := os.Stat(requestData.FilePath); err != nil {
		WriteErrorResponse(w, http.StatusNotFound, "", "file not found on disk")
		return
	}

	meta, err := _ragService.AnalyzeDocument(request.Context(), requestData.FilePath)
	if err != nil {
		switch {
		case errors.Is(err, rag.ErrAnalysisUnavailable):
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "metadata analysis requires generation")
		case errors.Is(err, indexer.ErrEmptyContent), errors.Is(err, extract.ErrUnsupportedFormat):
			WriteErrorResponse(w, http.StatusUnprocessableEntity, "", "could not extract a text preview")
		default:
			logRH.Error("Analysis failed", "path", requestData.FilePath, "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, "", "analysis failed")
		}
		return
	}

	writeJsonResponse(w, http.StatusOK, api.AnalyzeResponse{
		Title:    meta.Title,
		Author:   meta.Author,
		Category: meta.Category,
	})
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of an indexing job using its ID.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		//use chi get the url id
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logRH.Error("Couldn't close the request body reader :", err)
	}
}
