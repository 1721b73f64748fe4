// Package server wires the pipeline components together and exposes them
// over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mediagent/config"
	"mediagent/internal/agent"
	"mediagent/internal/catalog"
	"mediagent/internal/history"
	"mediagent/internal/llm"
	"mediagent/internal/mcp"
	"mediagent/internal/telemetry"
)

// Run builds every dependency from the config and serves until interrupted.
func Run(cfg *config.Config) error {
	logger := log.New(log.Writer(), "[SERVER] ", log.LstdFlags)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat := catalog.Default()

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return fmt.Errorf("llm provider: %w", err)
	}

	registry, err := mcp.NewRegistry(ctx, cat, cfg.Platforms)
	if err != nil {
		return fmt.Errorf("collaborator registry: %w", err)
	}
	defer registry.Close()

	store, err := newHistoryStore(ctx, cfg.History, logger)
	if err != nil {
		return fmt.Errorf("history store: %w", err)
	}
	if store != nil {
		defer store.Close()
	}

	tel := telemetry.New(cfg.Telemetry, prometheus.DefaultRegisterer)

	planningModel := routeModel(cfg.LLM.Routing.Planning, cfg.LLM.Routing.Fallback)
	synthesisModel := routeModel(cfg.LLM.Routing.Synthesis, cfg.LLM.Routing.Fallback)

	planner := agent.NewPlanner(provider, planningModel, cat, tel)
	executor := agent.NewExecutor(registry, cat, tel)
	chain := agent.NewChainResolver(registry, tel)
	synth := agent.NewSynthesizer(provider, synthesisModel, tel)
	orch := agent.NewOrchestrator(planner, executor, chain, synth, store, tel)

	e := newEcho()
	NewAgentHandler(orch, store).Register(e)

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s (platforms: %v)", cfg.General.Listen, registry.Platforms())
		if err := e.Start(cfg.General.Listen); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	httpLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		httpLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	return e
}

func newHistoryStore(ctx context.Context, cfg config.HistoryConfig, logger *log.Logger) (history.Store, error) {
	switch cfg.Backend {
	case "memory":
		return history.NewInMemoryStore(cfg.TTL), nil
	case "redis":
		store, err := history.NewRedisStore(ctx, cfg.Redis, cfg.TTL)
		if err != nil {
			// Unavailable persistence degrades runs to "history skipped"
			// notes instead of refusing to start.
			logger.Printf("redis unavailable, running without history: %v", err)
			return nil, nil
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported history backend %q", cfg.Backend)
	}
}

func routeModel(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}
