package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"vendas/internal/config"
	"vendas/internal/gcloud"
)

// New creates the appender selected by cfg.LedgerBackend. Credentials are
// loaded here, once per process.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Appender, error) {
	switch cfg.LedgerBackend {
	case "sheets":
		creds, err := gcloud.LoadCredentials(ctx, cfg.GoogleCredentials, cfg.GoogleCredentialsFile, logger, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, err
		}
		logger.Info("creating sheets ledger", zap.String("spreadsheet_id", cfg.SheetID), zap.String("range", cfg.SheetRange))
		return NewSheetsAppender(ctx, cfg.SheetID, cfg.SheetRange, logger, option.WithCredentials(creds))
	case "xlsx":
		logger.Info("creating xlsx ledger", zap.String("path", cfg.XLSXPath))
		return NewXLSXAppender(cfg.XLSXPath, logger), nil
	default:
		return nil, fmt.Errorf("unsupported ledger backend: %s. Supported: sheets, xlsx", cfg.LedgerBackend)
	}
}
