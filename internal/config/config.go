package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port" validate:"required,numeric"`

	STTProvider       string `yaml:"stt_provider" validate:"oneof=openai google"`
	OpenAIKey         string `yaml:"openai_api_key" validate:"required_if=STTProvider openai"`
	OpenAIBaseURL     string `yaml:"openai_base_url" validate:"required,url"`
	STTModel          string `yaml:"stt_model" validate:"required"`
	STTLanguage       string `yaml:"stt_language"`
	GoogleSTTLanguage string `yaml:"google_stt_language" validate:"required_if=STTProvider google"`

	LedgerBackend         string `yaml:"ledger_backend" validate:"oneof=sheets xlsx"`
	SheetID               string `yaml:"sheet_id" validate:"required_if=LedgerBackend sheets"`
	SheetRange            string `yaml:"sheet_range" validate:"required"`
	GoogleCredentials     string `yaml:"google_credentials"`
	GoogleCredentialsFile string `yaml:"google_credentials_file"`
	XLSXPath              string `yaml:"xlsx_path" validate:"required_if=LedgerBackend xlsx"`

	ExtractLocale string `yaml:"extract_locale" validate:"oneof=pt en"`
	AudioTempDir  string `yaml:"audio_temp_dir" validate:"required"`
	MaxUploadMB   int    `yaml:"max_upload_mb" validate:"gt=0"`

	LogLevel        string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat       string        `yaml:"log_format" validate:"oneof=json console"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

var validate = validator.New()

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if cfg.STTProvider == "openai" && cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required. Set it in the environment or in a .env file")
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MaxUploadBytes is the largest accepted multipart audio upload.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func defaults() *Config {
	return &Config{
		Port:                  "3000",
		STTProvider:           "openai",
		GoogleSTTLanguage:     "pt-BR",
		OpenAIBaseURL:         "https://api.openai.com/v1",
		STTModel:              "whisper-1",
		LedgerBackend:         "sheets",
		SheetRange:            "A1",
		GoogleCredentialsFile: "credentials.json",
		XLSXPath:              "vendas.xlsx",
		ExtractLocale:         "pt",
		AudioTempDir:          filepath.Join(os.TempDir(), "vendas-audio"),
		MaxUploadMB:           25,
		LogLevel:              "info",
		LogFormat:             "json",
		ShutdownTimeout:       10 * time.Second,
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.STTProvider = getEnv("STT_PROVIDER", c.STTProvider)
	c.OpenAIKey = getEnv("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.STTModel = getEnv("STT_MODEL", c.STTModel)
	c.STTLanguage = getEnv("STT_LANGUAGE", c.STTLanguage)
	c.GoogleSTTLanguage = getEnv("GOOGLE_STT_LANGUAGE", c.GoogleSTTLanguage)
	c.LedgerBackend = getEnv("LEDGER_BACKEND", c.LedgerBackend)
	c.SheetID = getEnv("SHEET_ID", c.SheetID)
	c.SheetRange = getEnv("SHEET_RANGE", c.SheetRange)
	c.GoogleCredentials = getEnv("GOOGLE_CREDENTIALS", c.GoogleCredentials)
	c.GoogleCredentialsFile = getEnv("GOOGLE_CREDENTIALS_FILE", c.GoogleCredentialsFile)
	c.XLSXPath = getEnv("XLSX_PATH", c.XLSXPath)
	c.ExtractLocale = getEnv("EXTRACT_LOCALE", c.ExtractLocale)
	c.AudioTempDir = getEnv("AUDIO_TEMP_DIR", c.AudioTempDir)
	c.MaxUploadMB = getInt("MAX_UPLOAD_MB", c.MaxUploadMB)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.ShutdownTimeout = getDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// getDuration reads a whole number of seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
