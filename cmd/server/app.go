package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/recitelabs/recite-api/internal/config"
	"github.com/recitelabs/recite-api/internal/generation"
	"github.com/recitelabs/recite-api/internal/platform/filestore"
	"github.com/recitelabs/recite-api/internal/platform/gemini"
	"github.com/recitelabs/recite-api/internal/platform/logger"
	"github.com/recitelabs/recite-api/internal/platform/postgres"
	"github.com/recitelabs/recite-api/internal/platform/redisstore"
	"github.com/recitelabs/recite-api/internal/service"
	"github.com/recitelabs/recite-api/internal/service/auth"
	"github.com/recitelabs/recite-api/internal/store"
	"github.com/recitelabs/recite-api/internal/task"
)

// taskQueueSize bounds the generation backlog.
const taskQueueSize = 32

// application holds the wired dependencies for the server process.
type application struct {
	config *config.Config
	logger *slog.Logger

	dataStore store.DataStore
	closeFn   func() error

	engine         *service.Engine
	contentService *service.ContentService
	quizService    *service.QuizService
	reviewService  *service.ReviewService
	prefsService   *service.PrefsService
	studyService   *service.StudyService

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	generator    generation.Generator
	structureGen generation.StructureGenerator
	runner       *task.Runner
}

// newApplication loads configuration and wires every component.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	log := logger.Setup(cfg.Server)
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_driver", cfg.Store.Driver)

	app := &application{config: cfg, logger: log}
	if err := app.setupStore(ctx); err != nil {
		return nil, err
	}

	app.engine, err = service.NewEngine(ctx, app.dataStore, log)
	if err != nil {
		return nil, fmt.Errorf("initialize engine: %w", err)
	}
	app.contentService = service.NewContentService(app.engine, log)
	app.quizService = service.NewQuizService(app.engine, log)
	app.reviewService = service.NewReviewService(app.engine, log)
	app.prefsService = service.NewPrefsService(app.engine, log)
	app.studyService = service.NewStudyService(app.engine)

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("initialize JWT service: %w", err)
	}
	app.passwordVerifier = auth.NewBcryptVerifier()

	if cfg.LLM.GeminiAPIKey != "" {
		gen, err := gemini.NewGenerator(ctx, log, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("initialize generator: %w", err)
		}
		app.generator = gen
		app.structureGen = gen
	} else {
		log.Info("no Gemini API key configured, generation endpoints disabled")
	}
	app.runner = task.NewRunner(taskQueueSize, log)

	return app, nil
}

// setupStore opens the persistence backend named by the store driver.
func (app *application) setupStore(ctx context.Context) error {
	switch app.config.Store.Driver {
	case "file":
		fs, err := filestore.New(app.config.Store.FilePath)
		if err != nil {
			return fmt.Errorf("open file store: %w", err)
		}
		app.dataStore = fs

	case "redis":
		rs, err := redisstore.New(app.config.Store.RedisURL)
		if err != nil {
			return fmt.Errorf("open redis store: %w", err)
		}
		if err := rs.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		app.dataStore = rs
		app.closeFn = rs.Close

	case "postgres":
		ps, err := postgres.Open(ctx, app.config.Store.DatabaseURL, app.logger)
		if err != nil {
			return fmt.Errorf("open postgres store: %w", err)
		}
		app.dataStore = ps
		app.closeFn = ps.Close

	default:
		return fmt.Errorf("unknown store driver %q", app.config.Store.Driver)
	}
	return nil
}

// run starts the task runner and HTTP server and blocks until the
// context is cancelled, then shuts both down.
func (app *application) run(ctx context.Context) error {
	app.runner.Start()
	defer app.runner.Stop()
	if app.closeFn != nil {
		defer func() {
			if err := app.closeFn(); err != nil {
				app.logger.Error("failed to close data store", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	}
}
