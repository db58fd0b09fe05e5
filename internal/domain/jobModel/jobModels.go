package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	// An indexing pass is one opaque call into the rag service, so the only
	// observable steps are init, terminal success and terminal failure.
	IndexInit InternalStatus = "IndexInit"
	Error     InternalStatus = "Error"
	Complete  InternalStatus = "Complete"
)

// Job is one asynchronous indexing pass over a single document. Queries are
// served synchronously and never become jobs.
type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	DocumentID   string `json:"document_id"`
	FilePath     string `json:"file_path"`
	ForceReindex bool   `json:"force_reindex"`

	//filled in when the pass completes
	ChunksIndexed int `json:"chunks_indexed,omitempty"`
	ChunksSkipped int `json:"chunks_skipped,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
