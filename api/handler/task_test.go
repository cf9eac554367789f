package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/todo/api/handler"
	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/router"
	"github.com/fastygo/todo/pkg/httpcontext"
	"github.com/fastygo/todo/repository/memory"
	taskUC "github.com/fastygo/todo/usecase/task"
)

type taskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func newApp(t *testing.T) fasthttp.RequestHandler {
	t.Helper()

	uc := taskUC.New(memory.NewTaskRepository(), nil)
	adapter := httpcontext.NewAdapter(0)

	return router.Handler(router.Handlers{
		Task:   apiHandler.NewTaskHandler(uc, adapter, nil),
		Status: apiHandler.NewStatusHandler(uc, "Todo API", adapter, nil),
	}, nil)
}

func doRaw(t *testing.T, h fasthttp.RequestHandler, method, path, raw string) *fasthttp.RequestCtx {
	t.Helper()

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if raw != "" {
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBodyString(raw)
	}

	h(&ctx)
	return &ctx
}

func doJSON(t *testing.T, h fasthttp.RequestHandler, method, path string, body any) *fasthttp.RequestCtx {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encode body err=%v", err)
	}
	return doRaw(t, h, method, path, string(raw))
}

func decode[T any](t *testing.T, ctx *fasthttp.RequestCtx) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(ctx.Response.Body(), &out); err != nil {
		t.Fatalf("decode err=%v body=%s", err, ctx.Response.Body())
	}
	return out
}

func expectStatus(t *testing.T, ctx *fasthttp.RequestCtx, want int) {
	t.Helper()

	if got := ctx.Response.StatusCode(); got != want {
		t.Fatalf("%s %s status=%d, want %d body=%s",
			ctx.Method(), ctx.Path(), got, want, ctx.Response.Body())
	}
}

func createTask(t *testing.T, h fasthttp.RequestHandler, body map[string]any) taskResponse {
	t.Helper()

	rr := doJSON(t, h, http.MethodPost, "/tasks", body)
	expectStatus(t, rr, http.StatusCreated)
	return decode[taskResponse](t, rr)
}

func TestEndToEnd(t *testing.T) {
	app := newApp(t)

	created := createTask(t, app, map[string]any{"title": "X"})
	if created.ID < 1 {
		t.Fatalf("id=%d, want >= 1", created.ID)
	}
	if created.Status != "todo" {
		t.Fatalf("status=%q, want todo", created.Status)
	}
	if created.CreatedAt == "" || created.UpdatedAt == "" {
		t.Fatalf("timestamps not set: %+v", created)
	}
	if created.CreatedAt != created.UpdatedAt {
		t.Fatalf("created_at=%q updated_at=%q, want equal", created.CreatedAt, created.UpdatedAt)
	}

	path := fmt.Sprintf("/tasks/%d", created.ID)

	get := doRaw(t, app, http.MethodGet, path, "")
	expectStatus(t, get, http.StatusOK)
	if got := decode[taskResponse](t, get); got != created {
		t.Fatalf("GET=%+v, want %+v", got, created)
	}

	bogus := doJSON(t, app, http.MethodPatch, path, map[string]any{"status": "bogus"})
	expectStatus(t, bogus, http.StatusBadRequest)
	errBody := decode[transport.ErrorResponse](t, bogus)
	want := []domain.Status{domain.StatusTodo, domain.StatusInProgress, domain.StatusDone}
	if fmt.Sprint(errBody.ValidStatuses) != fmt.Sprint(want) {
		t.Fatalf("valid_statuses=%v, want %v", errBody.ValidStatuses, want)
	}

	del := doRaw(t, app, http.MethodDelete, path, "")
	expectStatus(t, del, http.StatusNoContent)
	if len(del.Response.Body()) != 0 {
		t.Fatalf("DELETE body=%q, want empty", del.Response.Body())
	}

	gone := doRaw(t, app, http.MethodGet, path, "")
	expectStatus(t, gone, http.StatusNotFound)
	notFound := decode[transport.ErrorResponse](t, gone)
	if notFound.Error != "Task not found" || notFound.ID == nil || *notFound.ID != created.ID {
		t.Fatalf("body=%s, want Task not found with id %d", gone.Response.Body(), created.ID)
	}
}

func TestStatus(t *testing.T) {
	app := newApp(t)
	createTask(t, app, map[string]any{"title": "a"})
	createTask(t, app, map[string]any{"title": "b"})

	rr := doRaw(t, app, http.MethodGet, "/status", "")
	expectStatus(t, rr, http.StatusOK)

	out := decode[map[string]any](t, rr)
	if out["status"] != "ok" || out["service"] != "Todo API" || out["tasks_count"] != float64(2) {
		t.Fatalf("status body=%v", out)
	}
}

func TestListTasks(t *testing.T) {
	app := newApp(t)

	empty := doRaw(t, app, http.MethodGet, "/tasks", "")
	expectStatus(t, empty, http.StatusOK)
	if got := string(empty.Response.Body()); got != "[]" {
		t.Fatalf("body=%s, want []", got)
	}

	for _, title := range []string{"a", "b", "c"} {
		createTask(t, app, map[string]any{"title": title})
	}
	rr := doRaw(t, app, http.MethodGet, "/tasks", "")
	expectStatus(t, rr, http.StatusOK)

	list := decode[[]taskResponse](t, rr)
	if len(list) != 3 {
		t.Fatalf("len=%d, want 3", len(list))
	}
	for i, title := range []string{"a", "b", "c"} {
		if list[i].Title != title {
			t.Fatalf("list[%d].Title=%q, want %q", i, list[i].Title, title)
		}
	}
}

func TestCreateTask_Validation(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		name      string
		raw       string
		wantError string
	}{
		{name: "malformed", raw: "{bad json}", wantError: "Invalid JSON format"},
		{name: "empty body", raw: "", wantError: "Invalid JSON format"},
		{name: "array body", raw: "[]", wantError: "Invalid JSON format"},
		{name: "missing title", raw: `{"description":"d"}`, wantError: "Title is required"},
		{name: "blank title", raw: `{"title":"  "}`, wantError: "Title is required"},
		{name: "bad status", raw: `{"title":"t","status":"later"}`, wantError: "Invalid status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRaw(t, app, http.MethodPost, "/tasks", tt.raw)
			expectStatus(t, rr, http.StatusBadRequest)
			if got := decode[transport.ErrorResponse](t, rr).Error; got != tt.wantError {
				t.Fatalf("error=%q, want %q", got, tt.wantError)
			}
		})
	}

	status := decode[map[string]any](t, doRaw(t, app, http.MethodGet, "/status", ""))
	if status["tasks_count"] != float64(0) {
		t.Fatalf("tasks_count=%v, want 0", status["tasks_count"])
	}
}

func TestCreateTask_WithAllFields(t *testing.T) {
	app := newApp(t)

	created := createTask(t, app, map[string]any{
		"title":       "Run API",
		"description": "Configure and start server",
		"status":      "in_progress",
	})
	if created.Description != "Configure and start server" || created.Status != "in_progress" {
		t.Fatalf("created=%+v", created)
	}
}

func TestUpdateTask(t *testing.T) {
	app := newApp(t)
	created := createTask(t, app, map[string]any{"title": "old", "description": "d", "status": "done"})
	path := fmt.Sprintf("/tasks/%d", created.ID)

	rr := doJSON(t, app, http.MethodPut, path, map[string]any{"title": "new", "status": "in_progress"})
	expectStatus(t, rr, http.StatusOK)
	updated := decode[taskResponse](t, rr)
	if updated.ID != created.ID || updated.Title != "new" || updated.Status != "in_progress" || updated.Description != "" {
		t.Fatalf("updated=%+v", updated)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Fatalf("created_at=%q, want %q", updated.CreatedAt, created.CreatedAt)
	}

	missing := doJSON(t, app, http.MethodPut, "/tasks/999", map[string]any{"title": "x"})
	expectStatus(t, missing, http.StatusNotFound)

	malformed := doRaw(t, app, http.MethodPut, path, "{")
	expectStatus(t, malformed, http.StatusBadRequest)

	noTitle := doJSON(t, app, http.MethodPut, path, map[string]any{"status": "done"})
	expectStatus(t, noTitle, http.StatusBadRequest)
}

func TestPatchTask(t *testing.T) {
	app := newApp(t)
	created := createTask(t, app, map[string]any{"title": "Buy milk", "description": "Fat 3.2%"})
	path := fmt.Sprintf("/tasks/%d", created.ID)

	rr := doJSON(t, app, http.MethodPatch, path, map[string]any{"status": "done"})
	expectStatus(t, rr, http.StatusOK)
	patched := decode[taskResponse](t, rr)
	if patched.Title != "Buy milk" || patched.Description != "Fat 3.2%" || patched.Status != "done" {
		t.Fatalf("patched=%+v", patched)
	}

	empty := doRaw(t, app, http.MethodPatch, path, "{}")
	expectStatus(t, empty, http.StatusBadRequest)
	if got := decode[transport.ErrorResponse](t, empty).Error; got != "No fields to update" {
		t.Fatalf("error=%q, want No fields to update", got)
	}

	missing := doJSON(t, app, http.MethodPatch, "/tasks/999", map[string]any{"title": "x"})
	expectStatus(t, missing, http.StatusNotFound)

	malformed := doRaw(t, app, http.MethodPatch, path, "nope")
	expectStatus(t, malformed, http.StatusBadRequest)
}

func TestDeleteTask_Missing(t *testing.T) {
	app := newApp(t)

	rr := doRaw(t, app, http.MethodDelete, "/tasks/41", "")
	expectStatus(t, rr, http.StatusNotFound)
	body := decode[transport.ErrorResponse](t, rr)
	if body.Error != "Task not found" || body.ID == nil || *body.ID != 41 {
		t.Fatalf("body=%s", rr.Response.Body())
	}
}

func TestInvalidID(t *testing.T) {
	app := newApp(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rr := doRaw(t, app, method, "/tasks/abc", `{"title":"x"}`)
		expectStatus(t, rr, http.StatusBadRequest)
		if got := decode[transport.ErrorResponse](t, rr).Error; got != "Invalid task id" {
			t.Fatalf("%s error=%q, want Invalid task id", method, got)
		}
	}

	zero := doRaw(t, app, http.MethodGet, "/tasks/0", "")
	expectStatus(t, zero, http.StatusNotFound)
}

func TestRoutingFallbacks(t *testing.T) {
	app := newApp(t)

	unknown := doRaw(t, app, http.MethodGet, "/nope", "")
	expectStatus(t, unknown, http.StatusNotFound)
	if got := decode[transport.ErrorResponse](t, unknown).Error; got != "Not found" {
		t.Fatalf("error=%q, want Not found", got)
	}

	wrongMethod := doRaw(t, app, http.MethodDelete, "/tasks", "")
	expectStatus(t, wrongMethod, http.StatusMethodNotAllowed)

	options := doRaw(t, app, http.MethodOptions, "/tasks/1", "")
	expectStatus(t, options, http.StatusOK)
}

func TestResponsesAreJSONWithCORS(t *testing.T) {
	app := newApp(t)

	rr := doJSON(t, app, http.MethodPost, "/tasks", map[string]any{"title": "x"})
	expectStatus(t, rr, http.StatusCreated)

	if got := string(rr.Response.Header.ContentType()); got != "application/json" {
		t.Fatalf("content-type=%q, want application/json", got)
	}
	if got := string(rr.Response.Header.Peek("Access-Control-Allow-Origin")); got != "*" {
		t.Fatalf("allow-origin=%q, want *", got)
	}
	if got := string(rr.Response.Header.Peek(httpcontext.HeaderRequestID)); got == "" {
		t.Fatalf("X-Request-ID missing")
	}
}
