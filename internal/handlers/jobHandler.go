package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"bookrag/internal/config"
	"bookrag/internal/domain/jobModel"
	"bookrag/internal/job"
	"bookrag/internal/metrics"
	"bookrag/internal/rag"
	"bookrag/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
	_ragService     rag.Service
)

type JobHandler struct {
	service *job.Service
}

func InitJobHandler(jobService *job.Service, ragService rag.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}
		_ragService = ragService

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new indexing job", "documentId", newJob.documentID)
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.CurrentStep = jobModel.IndexInit
	_job.JobPayload.DocumentID = newJob.documentID
	_job.JobPayload.FilePath = newJob.filePath
	_job.JobPayload.ForceReindex = newJob.forceReindex

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//indexing involves extraction and batch embedding which might take a while,
	//so every index job also signals the dispatcher for an extra worker.
	//idle workers retire on their own, so the pool shrinks back to one afterwards
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1) //after sending a request increment counter
	metrics.StartDispatcherSignalCount()                         //metrics
	logJH.Debug("Request count ", accurateCount)
	h.service.DispatcherChannel <- true
}
