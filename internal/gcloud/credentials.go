// Package gcloud loads the service-account credentials shared by the Google
// backends.
package gcloud

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
)

// LoadCredentials builds service-account credentials for scopes. inline may
// hold the key JSON itself or a path to it; when empty, keyFile is read.
func LoadCredentials(ctx context.Context, inline, keyFile string, logger *zap.Logger, scopes ...string) (*google.Credentials, error) {
	var jsonData []byte

	inline = strings.TrimSpace(inline)
	switch {
	case strings.HasPrefix(inline, "{"):
		logger.Info("using inline google credentials")
		jsonData = []byte(inline)
	case inline != "":
		keyFile = inline
		fallthrough
	default:
		if keyFile == "" {
			return nil, fmt.Errorf("no google credentials configured: set GOOGLE_CREDENTIALS or GOOGLE_CREDENTIALS_FILE")
		}
		logger.Info("reading google key file", zap.String("path", keyFile))
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read key file '%s': %w", keyFile, err)
		}
		jsonData = data
	}

	creds, err := google.CredentialsFromJSON(ctx, jsonData, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to create credentials from JSON: %w", err)
	}
	return creds, nil
}
