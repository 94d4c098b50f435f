package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"CONFIG_FILE", "PORT", "STT_PROVIDER", "GOOGLE_STT_LANGUAGE", "OPENAI_API_KEY", "OPENAI_BASE_URL", "STT_MODEL", "STT_LANGUAGE",
	"LEDGER_BACKEND", "SHEET_ID", "SHEET_RANGE", "GOOGLE_CREDENTIALS", "GOOGLE_CREDENTIALS_FILE",
	"XLSX_PATH", "EXTRACT_LOCALE", "AUDIO_TEMP_DIR", "MAX_UPLOAD_MB", "LOG_LEVEL", "LOG_FORMAT",
	"SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SHEET_ID", "sheet-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "openai", cfg.STTProvider)
	assert.Equal(t, "pt-BR", cfg.GoogleSTTLanguage)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "whisper-1", cfg.STTModel)
	assert.Equal(t, "sheets", cfg.LedgerBackend)
	assert.Equal(t, "A1", cfg.SheetRange)
	assert.Equal(t, "credentials.json", cfg.GoogleCredentialsFile)
	assert.Equal(t, "pt", cfg.ExtractLocale)
	assert.Equal(t, int64(25<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "8081")
	t.Setenv("LEDGER_BACKEND", "xlsx")
	t.Setenv("XLSX_PATH", "/tmp/vendas.xlsx")
	t.Setenv("EXTRACT_LOCALE", "en")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("SHUTDOWN_TIMEOUT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "xlsx", cfg.LedgerBackend)
	assert.Equal(t, "/tmp/vendas.xlsx", cfg.XLSXPath)
	assert.Equal(t, "en", cfg.ExtractLocale)
	assert.Equal(t, 5, cfg.MaxUploadMB)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadValidation(t *testing.T) {
	testCases := []struct {
		name          string
		env           map[string]string
		errorContains string
	}{
		{
			name:          "missing transcription key",
			env:           map[string]string{"SHEET_ID": "sheet-123"},
			errorContains: "OPENAI_API_KEY is required",
		},
		{
			name:          "sheets backend without spreadsheet id",
			env:           map[string]string{"OPENAI_API_KEY": "sk-test"},
			errorContains: "SheetID",
		},
		{
			name: "unknown transcription provider",
			env: map[string]string{
				"OPENAI_API_KEY": "sk-test",
				"SHEET_ID":       "sheet-123",
				"STT_PROVIDER":   "fpt",
			},
			errorContains: "STTProvider",
		},
		{
			name: "unknown ledger backend",
			env: map[string]string{
				"OPENAI_API_KEY": "sk-test",
				"LEDGER_BACKEND": "csv",
			},
			errorContains: "LedgerBackend",
		},
		{
			name: "unsupported locale",
			env: map[string]string{
				"OPENAI_API_KEY": "sk-test",
				"SHEET_ID":       "sheet-123",
				"EXTRACT_LOCALE": "fr",
			},
			errorContains: "ExtractLocale",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestLoadGoogleProviderWithoutOpenAIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("STT_PROVIDER", "google")
	t.Setenv("SHEET_ID", "sheet-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "google", cfg.STTProvider)
	assert.Empty(t, cfg.OpenAIKey)
}

func TestLoadFileWithEnvPrecedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "vendas.yaml")
	content := `
port: "4000"
openai_api_key: ${TEST_VENDAS_KEY}
sheet_id: from-file
sheet_range: Vendas!A1
shutdown_timeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("TEST_VENDAS_KEY", "sk-from-file")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SHEET_ID", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "sk-from-file", cfg.OpenAIKey)
	assert.Equal(t, "from-env", cfg.SheetID)
	assert.Equal(t, "Vendas!A1", cfg.SheetRange)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
