// Package app assembles the application and owns its lifecycle.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"formforge/internal/core"
	"formforge/internal/google"
	"formforge/internal/handler"
	"formforge/internal/llm"
	"formforge/internal/middleware"
	"formforge/internal/router"
	"formforge/internal/service"
)

type App struct {
	cfg        *core.Config
	log        core.Logger
	httpServer *http.Server
}

func New(cfg *core.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &App{
		cfg: cfg,
		log: core.NewLogger(cfg.LogLevel),
	}
	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}
	return app, nil
}

func (a *App) initServices() error {
	llmClient, err := llm.NewClient(&llm.Config{
		APIKey:        a.cfg.LLM.APIKey,
		BaseURL:       a.cfg.LLM.BaseURL,
		SchemaModel:   a.cfg.LLM.SchemaModel,
		ReminderModel: a.cfg.LLM.ReminderModel,
		Timeout:       a.cfg.LLMTimeout(),
	})
	if err != nil {
		return fmt.Errorf("init generation client: %w", err)
	}

	clients := google.NewClients(google.Config{Timeout: a.cfg.GoogleTimeout()})

	sync := service.NewSynchronizer(clients.Drive, clients.Calendar, a.cfg.DefaultTimezone, a.log)
	schemaService := service.NewSchemaService(llmClient, llmClient.SchemaModel(), a.log)
	formsService := service.NewFormsService(clients.Forms, a.log)
	reminderService := service.NewReminderService(llmClient, llmClient.ReminderModel(), sync, a.log)

	production := a.cfg.Env == "production"
	mode := gin.DebugMode
	if production {
		mode = gin.ReleaseMode
	}

	h := handler.NewHandler(schemaService, formsService, reminderService, a.log, !production)
	r := router.InitRouter(
		mode,
		h,
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  time.Minute,
	}
	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("HTTP server starting", "addr", a.httpServer.Addr, "env", a.cfg.Env)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.Info("HTTP server stopped")
	return nil
}
