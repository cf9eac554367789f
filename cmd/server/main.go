package main

import (
	"context"
	"log"
	"os"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apiHandler "github.com/fastygo/todo/api/handler"
	"github.com/fastygo/todo/internal/bootstrap"
	"github.com/fastygo/todo/internal/config"
	"github.com/fastygo/todo/internal/router"
	"github.com/fastygo/todo/internal/services"
	"github.com/fastygo/todo/internal/services/lifecycle"
	"github.com/fastygo/todo/pkg/httpcontext"
	"github.com/fastygo/todo/pkg/logger"
	"github.com/fastygo/todo/repository/memory"
	taskUC "github.com/fastygo/todo/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	stopListening := manager.Listen(cancel)
	defer stopListening()

	taskRepo := memory.NewTaskRepository()
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	if cfg.Store.SeedExamples {
		if err := bootstrap.Seed(appCtx, taskUseCase, zapLogger); err != nil {
			zapLogger.Fatal("seeding failed", zap.Error(err))
		}
	}

	if cfg.Store.StatsInterval > 0 {
		reporter, err := services.NewStatsReporter(taskRepo, cfg.Store.StatsInterval, zapLogger)
		if err != nil {
			zapLogger.Fatal("stats reporter setup failed", zap.Error(err))
		}
		reporter.Start()
		manager.Register("stats_reporter", reporter.Stop)
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Status: apiHandler.NewStatusHandler(taskUseCase, cfg.AppName, ctxAdapter, zapLogger),
	}

	server := &fasthttp.Server{
		Handler:      router.Handler(handlers, zapLogger),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}
	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	if err := bootstrap.PrintBanner(os.Stdout, cfg.AppName, cfg.HTTP.Port, router.Routes); err != nil {
		zapLogger.Warn("banner write failed", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(appCtx)
	g.Go(func() error {
		zapLogger.Info("server started", zap.String("address", cfg.Address()), zap.String("env", cfg.Environment))
		return server.ListenAndServe(cfg.Address())
	})
	g.Go(func() error {
		<-gctx.Done()
		return manager.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		zapLogger.Error("server stopped with error", zap.Error(err))
		return
	}
	zapLogger.Info("server stopped")
}
