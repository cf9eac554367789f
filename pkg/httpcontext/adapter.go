package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/todo/pkg/logger"
)

// HeaderRequestID is read from requests and echoed on responses.
const HeaderRequestID = "X-Request-ID"

const requestIDUserValue = "httpcontext.request_id"

// Key represents a context value key exported for reuse.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyMethod     Key = "method"
	KeyPath       Key = "path"
)

// Adapter converts fasthttp.RequestCtx into a stdlib context with deadlines and metadata.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		timeout: timeout,
	}
}

// Attach creates a context with timeout derived from the adapter and enriches it with request metadata.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	stdCtx = appLogger.ContextWithRequestID(stdCtx, RequestID(ctx))
	stdCtx = context.WithValue(stdCtx, KeyMethod, string(ctx.Method()))
	stdCtx = context.WithValue(stdCtx, KeyPath, string(ctx.Path()))
	if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, remoteAddr.String())
	}

	return stdCtx, cancel
}

// RequestID returns the id of the current request, assigning one on first use.
// The id comes from the X-Request-ID header when present, otherwise a new UUID.
// It is remembered on ctx and echoed in the response header.
func RequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if id, ok := ctx.UserValue(requestIDUserValue).(string); ok && id != "" {
		return id
	}

	id := strings.TrimSpace(string(ctx.Request.Header.Peek(HeaderRequestID)))
	if id == "" {
		id = uuid.NewString()
	}
	ctx.SetUserValue(requestIDUserValue, id)
	ctx.Response.Header.Set(HeaderRequestID, id)
	return id
}
