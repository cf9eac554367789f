package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/todo/internal/router"
	taskUC "github.com/fastygo/todo/usecase/task"
)

func strPtr(s string) *string { return &s }

// ExampleTasks are loaded at startup for manual testing.
var ExampleTasks = []taskUC.Input{
	{Title: "Buy milk", Description: "Fat 3.2%", Status: strPtr("todo")},
	{Title: "Run API", Description: "Configure and start server", Status: strPtr("in_progress")},
	{Title: "Explore Postman", Description: "Check REST API", Status: strPtr("done")},
}

// Seed creates ExampleTasks through the use case.
func Seed(ctx context.Context, uc *taskUC.UseCase, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, in := range ExampleTasks {
		if _, err := uc.CreateTask(ctx, in); err != nil {
			return fmt.Errorf("seed %q: %w", in.Title, err)
		}
	}
	logger.Info("example tasks seeded", zap.Int("count", len(ExampleTasks)))
	return nil
}

const rule = "________________________________________"

// PrintBanner writes the service name, port and endpoint table to w.
func PrintBanner(w io.Writer, service, port string, routes []router.Route) error {
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, service+" Server")
	fmt.Fprintln(&b, "Port: "+port)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Endpoints:")
	for _, r := range routes {
		fmt.Fprintf(&b, "  %-7s%-16s- %s\n", r.Method, r.Path, r.Description)
	}
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}
