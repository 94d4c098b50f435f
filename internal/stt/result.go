package stt

import "time"

// Result represents the result of a speech-to-text transcription
type Result struct {
	Transcript string        // The transcribed text, whitespace-trimmed
	Confidence float64       // Confidence of the first result, when the provider reports one
	Provider   string        // The provider used (e.g., "openai")
	Model      string        // Model identifier sent with the request
	Duration   time.Duration // Wall time of the upstream call
}
