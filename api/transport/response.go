package transport

import (
	"encoding/json"
	"errors"

	"github.com/fastygo/todo/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error         string          `json:"error"`
	ID            *int64          `json:"id,omitempty"`
	ValidStatuses []domain.Status `json:"valid_statuses,omitempty"`
	Details       string          `json:"details,omitempty"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Status     string `json:"status"`
	TasksCount int    `json:"tasks_count"`
	Service    string `json:"service"`
}

// NewError returns an error body with no context fields.
func NewError(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// FromError renders err as an error body, attaching the task id for not-found errors
// and the accepted statuses for status validation failures.
func FromError(err error, id *int64) ErrorResponse {
	resp := ErrorResponse{Error: domain.PublicMessage(err)}

	var dErr *domain.Error
	if errors.As(err, &dErr) {
		if dErr.Err != nil {
			resp.Details = dErr.Err.Error()
		}
		if dErr.Code == domain.ErrCodeNotFound {
			resp.ID = id
		}
	}
	if errors.Is(err, domain.ErrInvalidStatus) {
		resp.ValidStatuses = domain.ValidStatuses()
	}
	return resp
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e ErrorResponse) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
