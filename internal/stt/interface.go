package stt

import "context"

// Provider defines the interface for speech-to-text providers
type Provider interface {
	// Transcribe sends the audio file at audioPath to the provider and returns the transcript
	Transcribe(ctx context.Context, audioPath string) (*Result, error)

	// Name returns the name of the provider (e.g., "openai")
	Name() string
}
