package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vendas/internal/api"
	"vendas/internal/config"
	"vendas/internal/extract"
	"vendas/internal/ledger"
	"vendas/internal/logging"
	"vendas/internal/metrics"
	"vendas/internal/server"
	"vendas/internal/storage"
	"vendas/internal/stt"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	// Load .env file if it exists
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	if envErr != nil {
		logger.Debug("no .env file found, using environment variables")
	}

	// Default to release mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.NewStore(cfg.AudioTempDir, cfg.MaxUploadBytes(), nil, logger)
	if err != nil {
		return err
	}

	extractor, err := extract.New(cfg.ExtractLocale)
	if err != nil {
		return err
	}

	appender, err := ledger.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize ledger: %w", err)
	}

	provider, err := stt.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize transcription: %w", err)
	}

	handler := api.NewHandler(api.Options{
		Store:     store,
		STT:       provider,
		Extractor: extractor,
		Ledger:    appender,
		Metrics:   metrics.New(),
		Logger:    logger,
	})

	logger.Info("vendas webhook starting",
		zap.String("port", cfg.Port),
		zap.String("stt", provider.Name()),
		zap.String("ledger", appender.Name()),
		zap.String("locale", extractor.Locale()),
		zap.String("audio_dir", store.Dir()),
	)

	return server.New(cfg.Port, api.NewRouter(handler, logger), cfg.ShutdownTimeout, logger).Run(ctx)
}
