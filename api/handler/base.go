package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/pkg/httpcontext"
	"github.com/fastygo/todo/pkg/logger"
)

const contentTypeJSON = "application/json"

var serializationFailure = []byte(`{"error":"Failed to serialize response"}`)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) log(stdCtx context.Context) *zap.Logger {
	return logger.WithRequestID(stdCtx, h.logger)
}

// respondJSON encodes payload; an encoding failure degrades to a 500 error body.
func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType(contentTypeJSON)

	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to serialize response",
			zap.String("request_id", httpcontext.RequestID(ctx)),
			zap.Error(err))
		ctx.SetStatusCode(http.StatusInternalServerError)
		ctx.SetBody(serializationFailure)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error, id *int64) {
	status := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("request_id", httpcontext.RequestID(ctx)),
			zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.FromError(err, id))
}

func (h baseHandler) respondNoContent(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType(contentTypeJSON)
	ctx.SetStatusCode(http.StatusNoContent)
	ctx.ResetBody()
}

func mapError(err error) int {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// pathID parses the {id} route parameter.
func pathID(ctx *fasthttp.RequestCtx) (int64, error) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidTaskID.Message, err)
	}
	return id, nil
}
