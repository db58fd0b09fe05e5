package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

// IndexReport is filled in once an indexing job completes.
type IndexReport struct {
	DocumentID    string `json:"document_id"`
	ChunksIndexed int    `json:"chunks_indexed"`
	ChunksSkipped int    `json:"chunks_skipped"`
}

type Result struct {
	Status      string       `json:"status"`
	IndexReport *IndexReport `json:"index_report,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type QueryResponse struct {
	DocumentID string `json:"document_id"`
	Mode       string `json:"mode"`
	Answer     string `json:"answer"`
}

// SearchResponse ranks document ids by their best-matching chunk.
type SearchResponse struct {
	Query   string   `json:"query"`
	Results []string `json:"results"`
}

type StatusResponse struct {
	DocumentID  string `json:"document_id"`
	Indexed     bool   `json:"indexed"`
	VectorCount uint64 `json:"vector_count"`
}

type EstimateResponse struct {
	Tokens         int      `json:"tokens"`
	Chunks         int      `json:"chunks"`
	FilesProcessed int      `json:"files_processed"`
	Per1K          *float64 `json:"per1k,omitempty"`
	EstimatedCost  *float64 `json:"estimated_cost,omitempty"`
}

type DeleteResponse struct {
	DocumentID string `json:"document_id"`
	Deleted    bool   `json:"deleted"`
}

// AnalyzeResponse carries the metadata the model read out of a document
// preview. Fields the model could not find come back empty.
type AnalyzeResponse struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

// requests---------------------

type IndexRequest struct {
	FilePath string `json:"file_path" validate:"required"`
}

type QueryRequest struct {
	Query      string          `json:"query" validate:"required"`
	DocumentID string          `json:"document_id" validate:"required"`
	Mode       string          `json:"mode,omitempty"`
	Metadata   *BookMetadata   `json:"metadata,omitempty"`
	Library    *LibraryContext `json:"library,omitempty"`
}

type BookMetadata struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

type LibraryContext struct {
	AuthorOtherBooks []string `json:"author_other_books"`
}

type AnalyzeRequest struct {
	FilePath string `json:"file_path" validate:"required"`
}

type EstimateRequest struct {
	FilePaths []string `json:"file_paths" validate:"required"`
	MaxTokens int      `json:"max_tokens,omitempty"`
	Per1K     float64  `json:"per1k,omitempty"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
