package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/todo/api/handler"
	"github.com/fastygo/todo/internal/middleware"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Status *apiHandler.StatusHandler
}

// Route describes one registered endpoint; used for the startup banner.
type Route struct {
	Method      string
	Path        string
	Description string
}

// Routes lists the public endpoints in registration order.
var Routes = []Route{
	{Method: fasthttp.MethodGet, Path: "/status", Description: "API status"},
	{Method: fasthttp.MethodGet, Path: "/tasks", Description: "Get all tasks"},
	{Method: fasthttp.MethodGet, Path: "/tasks/{id}", Description: "Get task by ID"},
	{Method: fasthttp.MethodPost, Path: "/tasks", Description: "Create new task"},
	{Method: fasthttp.MethodPut, Path: "/tasks/{id}", Description: "Update task"},
	{Method: fasthttp.MethodPatch, Path: "/tasks/{id}", Description: "Partially update task"},
	{Method: fasthttp.MethodDelete, Path: "/tasks/{id}", Description: "Delete task"},
}

func New(handlers Handlers) *router.Router {
	r := router.New()
	r.RedirectTrailingSlash = false
	r.NotFound = handlers.Status.NotFound
	r.MethodNotAllowed = handlers.Status.MethodNotAllowed
	r.PanicHandler = handlers.Status.Panic

	r.GET("/status", handlers.Status.Check)

	r.GET("/tasks", handlers.Task.GetTasks)
	r.POST("/tasks", handlers.Task.CreateTask)
	r.GET("/tasks/{id}", handlers.Task.GetTask)
	r.PUT("/tasks/{id}", handlers.Task.UpdateTask)
	r.PATCH("/tasks/{id}", handlers.Task.PatchTask)
	r.DELETE("/tasks/{id}", handlers.Task.DeleteTask)

	return r
}

// Handler wraps the router with the middleware every request passes through.
func Handler(handlers Handlers, logger *zap.Logger) fasthttp.RequestHandler {
	r := New(handlers)
	return middleware.AccessLog(logger)(middleware.CORS(r.Handler))
}
