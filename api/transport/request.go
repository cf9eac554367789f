package transport

import (
	"encoding/json"

	"github.com/fastygo/todo/domain"
	taskUC "github.com/fastygo/todo/usecase/task"
)

// TaskRequest is the body of POST /tasks and PUT /tasks/{id}.
type TaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      *string `json:"status"`
}

func (r TaskRequest) Input() taskUC.Input {
	return taskUC.Input{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
}

// TaskPatchRequest is the body of PATCH /tasks/{id}.
type TaskPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (r TaskPatchRequest) Input() taskUC.PatchInput {
	return taskUC.PatchInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
}

// Decode unmarshals a JSON object body into dst. Any decode failure is reported as
// domain.ErrInvalidPayload wrapping the parser error.
func Decode(body []byte, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidPayload.Message, err)
	}
	return nil
}
