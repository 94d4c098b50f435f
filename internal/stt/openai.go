package stt

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIProvider implements STT using the OpenAI audio transcription endpoint
// (POST <base>/audio/transcriptions, multipart "file" and "model", bearer auth).
type OpenAIProvider struct {
	client   *openai.Client
	model    string
	language string
	logger   *zap.Logger
}

// NewOpenAIProvider creates a new OpenAI STT provider. An empty baseURL keeps
// the library default.
func NewOpenAIProvider(apiKey, baseURL, model, language string, logger *zap.Logger) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = openai.Whisper1
	}

	return &OpenAIProvider{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		language: language,
		logger:   logger.Named("stt"),
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Transcribe makes exactly one upstream call; failures are returned unretried.
func (p *OpenAIProvider) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	startTime := time.Now()

	p.logger.Debug("sending audio for transcription",
		zap.String("path", audioPath),
		zap.String("extension", filepath.Ext(audioPath)),
		zap.String("model", p.model),
	)

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.model,
		FilePath: audioPath,
		Language: p.language,
	})
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}

	transcript := strings.TrimSpace(resp.Text)
	duration := time.Since(startTime)

	p.logger.Info("transcription successful",
		zap.Int("length", len(transcript)),
		zap.Duration("duration", duration),
	)

	return &Result{
		Transcript: transcript,
		Provider:   p.Name(),
		Model:      p.model,
		Duration:   duration,
	}, nil
}
