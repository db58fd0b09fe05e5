package worker

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"bookrag/internal/config"
	jobmodel "bookrag/internal/domain/jobModel"
	"bookrag/internal/metrics"
	"bookrag/internal/rag/extract"
	"bookrag/internal/rag/indexer"
)

// One mutex per document id. Indexing must never run concurrently for the
// same document, the force-reindex delete/add ordering assumes a single
// writer. Cross-document jobs stay fully parallel.
var documentLocks sync.Map

func lockDocument(documentID string) func() {
	m, _ := documentLocks.LoadOrStore(documentID, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.IndexJobTimeout)
	defer cancel()
	logger.Debug("Processing job:", "job Id:", job.Id)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	job = indexDocument(ctx, job)

	job.EndTime = time.Now()
	finalStatus := jobmodel.JobStatusComplete
	if job.Status == jobmodel.JobStatusError {
		finalStatus = jobmodel.JobStatusError
	}
	saveJobState(ctx, job, finalStatus)
}

func indexDocument(ctx context.Context, job jobmodel.Job) jobmodel.Job {
	unlock := lockDocument(job.JobPayload.DocumentID)
	defer unlock()

	job.CurrentStep = jobmodel.IndexInit
	result, err := _ragService.IndexDocument(ctx, job.JobPayload.DocumentID, job.JobPayload.FilePath, job.JobPayload.ForceReindex)
	if err != nil {
		logger.Error("Indexing failed", "job Id:", job.Id, "error", err)
		job.Error = jobmodel.JobError{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
			// Bad input stays bad on retry, only backend failures are worth it.
			Retry: !errors.Is(err, indexer.ErrEmptyContent) && !errors.Is(err, extract.ErrUnsupportedFormat),
		}
		job.Status = jobmodel.JobStatusError
		job.CurrentStep = jobmodel.Error
		return job
	}

	job.JobPayload.ChunksIndexed = result.ChunksIndexed
	job.JobPayload.ChunksSkipped = result.ChunksSkipped
	job.CurrentStep = jobmodel.Complete
	return job
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update status in Redis", "err", err)
	}
}
