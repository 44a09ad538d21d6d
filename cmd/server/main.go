package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "resume-builder/internal/adapter/http"
	"resume-builder/internal/config"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	"resume-builder/pkg/infrastructure"
	"resume-builder/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	html, err := render.NewHTMLRenderer(cfg.Server.TemplateDir)
	if err != nil {
		return err
	}
	exporter := usecase.NewExporter(html, infrastructure.NewChromedpRenderer(cfg.Chrome.Path))
	processor := usecase.NewProcessor(newExtractor(cfg.AI), cfg.AI.AgentTimeout)

	app := httpadapter.NewApp(httpadapter.NewHandler(processor, exporter, cfg.Server.MaxUploadBytes))

	errc := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Addr(), "provider", cfg.AI.Provider)
		errc <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func newExtractor(c config.AIConfig) ai.Extractor {
	if c.Provider == config.ProviderOpenAI {
		return ai.NewOpenAIClient(c.OpenAIKey, c.OpenAIModel)
	}
	return ai.NewClient(c.ServiceURL)
}
