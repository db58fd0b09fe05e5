package adapter

import (
	"fmt"
	"time"

	"bookrag/internal/api"
	"bookrag/internal/domain/commonModels"
	"bookrag/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id), //pass "status/job.Id"
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:      string(job.Status),
		IndexReport: ToIndexReport(job),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

// ToIndexReport is nil until the pass finishes, the payload counters only
// mean something once the job is complete.
func ToIndexReport(job jobModel.Job) *api.IndexReport {
	if job.Status != jobModel.JobStatusComplete {
		return nil
	}

	return &api.IndexReport{
		DocumentID:    job.JobPayload.DocumentID,
		ChunksIndexed: job.JobPayload.ChunksIndexed,
		ChunksSkipped: job.JobPayload.ChunksSkipped,
	}
}

func ToQueryMetadata(m *api.BookMetadata) *commonModels.BookMetadata {
	if m == nil {
		return nil
	}
	return &commonModels.BookMetadata{
		Title:    m.Title,
		Author:   m.Author,
		Category: m.Category,
	}
}

func ToLibraryContext(l *api.LibraryContext) *commonModels.LibraryContext {
	if l == nil {
		return nil
	}
	return &commonModels.LibraryContext{
		AuthorOtherBooks: l.AuthorOtherBooks,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
