package repository

import (
	"github.com/fastygo/todo/domain"
)

// TaskPatch carries the fields of a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.Status
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// ApplyTo copies the set fields onto task.
func (p TaskPatch) ApplyTo(task *domain.Task) {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Status != nil {
		task.Status = *p.Status
	}
}

// TaskRepository owns every task and the id sequence. Implementations never fail;
// absence is reported through the boolean results.
type TaskRepository interface {
	Create(fields domain.TaskFields) domain.Task
	List() []domain.Task
	Get(id int64) (domain.Task, bool)
	Update(id int64, fields domain.TaskFields) (domain.Task, bool)
	Patch(id int64, patch TaskPatch) (domain.Task, bool)
	Delete(id int64) bool
	Count() int
}
