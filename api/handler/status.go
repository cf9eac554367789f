package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/pkg/httpcontext"
	taskUC "github.com/fastygo/todo/usecase/task"
)

type StatusHandler struct {
	baseHandler
	uc      *taskUC.UseCase
	service string
}

func NewStatusHandler(uc *taskUC.UseCase, service string, adapter *httpcontext.Adapter, logger *zap.Logger) *StatusHandler {
	if service == "" {
		service = "Todo API"
	}
	return &StatusHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		service:     service,
	}
}

// @Summary Service status
// @Tags status
// @Router /status [get]
func (h *StatusHandler) Check(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondJSON(ctx, http.StatusOK, transport.StatusResponse{
		Status:     "ok",
		TasksCount: h.uc.Count(stdCtx),
		Service:    h.service,
	})
}

// NotFound renders unknown routes.
func (h *StatusHandler) NotFound(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusNotFound, transport.NewError("Not found"))
}

// MethodNotAllowed renders known routes hit with an unsupported method.
func (h *StatusHandler) MethodNotAllowed(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusMethodNotAllowed, transport.NewError("Method not allowed"))
}

// Panic renders a recovered handler panic.
func (h *StatusHandler) Panic(ctx *fasthttp.RequestCtx, recovered interface{}) {
	h.logger.Error("handler panic",
		zap.String("request_id", httpcontext.RequestID(ctx)),
		zap.String("path", string(ctx.Path())),
		zap.Any("panic", recovered))
	h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError("Internal Server Error"))
}
