package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/pkg/logger"
	"github.com/fastygo/todo/repository"
)

// Input is a create or full-replace request. A nil Status means "use the default".
type Input struct {
	Title       string
	Description string
	Status      *string
}

// PatchInput is a partial update request; nil fields are not touched.
type PatchInput struct {
	Title       *string
	Description *string
	Status      *string
}

func (p PatchInput) isEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context) []domain.Task {
	return uc.tasks.List()
}

func (uc *UseCase) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	task, ok := uc.tasks.Get(id)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (uc *UseCase) CreateTask(ctx context.Context, in Input) (domain.Task, error) {
	fields, err := validateInput(in)
	if err != nil {
		return domain.Task{}, err
	}

	created := uc.tasks.Create(fields)
	uc.log(ctx).Info("task created", zap.Int64("task_id", created.ID), zap.String("status", string(created.Status)))
	return created, nil
}

// UpdateTask replaces title, description and status. Omitted optional fields fall back
// to their defaults, as on create.
func (uc *UseCase) UpdateTask(ctx context.Context, id int64, in Input) (domain.Task, error) {
	fields, err := validateInput(in)
	if err != nil {
		return domain.Task{}, err
	}

	updated, ok := uc.tasks.Update(id, fields)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	uc.log(ctx).Info("task updated", zap.Int64("task_id", id))
	return updated, nil
}

func (uc *UseCase) PatchTask(ctx context.Context, id int64, in PatchInput) (domain.Task, error) {
	if in.isEmpty() {
		return domain.Task{}, domain.ErrNoFieldsToUpdate
	}

	patch := repository.TaskPatch{
		Title:       in.Title,
		Description: in.Description,
	}
	if in.Status != nil {
		status, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return domain.Task{}, err
		}
		patch.Status = &status
	}

	patched, ok := uc.tasks.Patch(id, patch)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	uc.log(ctx).Info("task patched", zap.Int64("task_id", id))
	return patched, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id int64) error {
	if !uc.tasks.Delete(id) {
		return domain.ErrTaskNotFound
	}
	uc.log(ctx).Info("task deleted", zap.Int64("task_id", id))
	return nil
}

func (uc *UseCase) Count(ctx context.Context) int {
	return uc.tasks.Count()
}

func (uc *UseCase) log(ctx context.Context) *zap.Logger {
	return logger.WithRequestID(ctx, uc.logger)
}

func validateInput(in Input) (domain.TaskFields, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.TaskFields{}, domain.ErrTitleRequired
	}

	status := domain.StatusTodo
	if in.Status != nil {
		parsed, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return domain.TaskFields{}, err
		}
		status = parsed
	}

	return domain.TaskFields{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
	}, nil
}
