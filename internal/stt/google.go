package stt

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/speech/v1"
)

// Google rejects synchronous recognition above this size.
const googleMaxInlineBytes = 10 << 20

type audioEncoding struct {
	name       string
	sampleRate int64
}

// Containers Google can decode inline. WAV and FLAC carry their own header,
// so the rate is left for the service to read.
var googleEncodings = map[string]audioEncoding{
	".wav":  {name: "LINEAR16"},
	".flac": {name: "FLAC"},
	".mp3":  {name: "MP3", sampleRate: 44100},
	".ogg":  {name: "OGG_OPUS", sampleRate: 48000},
	".oga":  {name: "OGG_OPUS", sampleRate: 48000},
	".webm": {name: "WEBM_OPUS", sampleRate: 48000},
}

// GoogleProvider implements STT using Google Cloud Speech-to-Text synchronous
// recognition.
type GoogleProvider struct {
	svc          *speech.Service
	languageCode string
	logger       *zap.Logger
}

// NewGoogleProvider creates the Speech client once; opts normally carry
// option.WithCredentials.
func NewGoogleProvider(ctx context.Context, languageCode string, logger *zap.Logger, opts ...option.ClientOption) (*GoogleProvider, error) {
	svc, err := speech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return &GoogleProvider{
		svc:          svc,
		languageCode: languageCode,
		logger:       logger.Named("stt"),
	}, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// Transcribe sends the file inline in one recognize call. Results are joined
// in order; no speech yields an empty transcript.
func (p *GoogleProvider) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	startTime := time.Now()

	ext := strings.ToLower(filepath.Ext(audioPath))
	enc, ok := googleEncodings[ext]
	if !ok {
		return nil, fmt.Errorf("audio format %q is not supported by google speech", ext)
	}

	audioBytes, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	if len(audioBytes) > googleMaxInlineBytes {
		return nil, fmt.Errorf("audio file too large for inline recognition (%d bytes)", len(audioBytes))
	}

	p.logger.Debug("sending audio for transcription",
		zap.String("path", audioPath),
		zap.Int("size", len(audioBytes)),
		zap.String("encoding", enc.name),
	)

	req := &speech.RecognizeRequest{
		Config: &speech.RecognitionConfig{
			Encoding:                   enc.name,
			SampleRateHertz:            enc.sampleRate,
			LanguageCode:               p.languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audioBytes),
		},
	}

	resp, err := p.svc.Speech.Recognize(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}

	var parts []string
	var confidence float64
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		best := r.Alternatives[0]
		parts = append(parts, strings.TrimSpace(best.Transcript))
		if confidence == 0 {
			confidence = best.Confidence
		}
	}

	transcript := strings.TrimSpace(strings.Join(parts, " "))
	duration := time.Since(startTime)

	p.logger.Info("transcription successful",
		zap.Int("length", len(transcript)),
		zap.Float64("confidence", confidence),
		zap.Duration("duration", duration),
	)

	return &Result{
		Transcript: transcript,
		Confidence: confidence,
		Provider:   p.Name(),
		Model:      "default",
		Duration:   duration,
	}, nil
}
