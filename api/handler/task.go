package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/pkg/httpcontext"
	taskUC "github.com/fastygo/todo/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks := h.uc.ListTasks(stdCtx)
	h.log(stdCtx).Debug("tasks listed", zap.Int("count", len(tasks)))
	h.respondJSON(ctx, http.StatusOK, tasks)
}

// @Summary Get task
// @Tags tasks
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err, nil)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err, &id)
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}

// @Summary Create task
// @Tags tasks
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskRequest
	if err := transport.Decode(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, err, nil)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, req.Input())
	if err != nil {
		h.respondError(ctx, err, nil)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, created)
}

// @Summary Replace task
// @Tags tasks
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err, nil)
		return
	}

	var req transport.TaskRequest
	if err := transport.Decode(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, err, nil)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, id, req.Input())
	if err != nil {
		h.respondError(ctx, err, &id)
		return
	}
	h.respondJSON(ctx, http.StatusOK, updated)
}

// @Summary Partially update task
// @Tags tasks
// @Router /tasks/{id} [patch]
func (h *TaskHandler) PatchTask(ctx *fasthttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err, nil)
		return
	}

	var req transport.TaskPatchRequest
	if err := transport.Decode(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, err, nil)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	patched, err := h.uc.PatchTask(stdCtx, id, req.Input())
	if err != nil {
		h.respondError(ctx, err, &id)
		return
	}
	h.respondJSON(ctx, http.StatusOK, patched)
}

// @Summary Delete task
// @Tags tasks
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		h.respondError(ctx, err, nil)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(ctx, err, &id)
		return
	}
	h.respondNoContent(ctx)
}
