package stt

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/speech/v1"

	"vendas/internal/config"
	"vendas/internal/gcloud"
)

// New creates the provider selected by cfg.STTProvider.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Provider, error) {
	switch cfg.STTProvider {
	case "", "openai":
		logger.Info("creating openai stt provider", zap.String("base_url", cfg.OpenAIBaseURL), zap.String("model", cfg.STTModel))
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.STTModel, cfg.STTLanguage, logger), nil
	case "google":
		creds, err := gcloud.LoadCredentials(ctx, cfg.GoogleCredentials, cfg.GoogleCredentialsFile, logger, speech.CloudPlatformScope)
		if err != nil {
			return nil, err
		}
		logger.Info("creating google stt provider", zap.String("language", cfg.GoogleSTTLanguage))
		return NewGoogleProvider(ctx, cfg.GoogleSTTLanguage, logger, option.WithCredentials(creds))
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: openai, google", cfg.STTProvider)
	}
}
