package ledger

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"vendas/internal/model"
)

// valueInputRaw stores cells verbatim; nothing is parsed as a formula.
const valueInputRaw = "RAW"

// SheetsAppender appends rows through the Google Sheets values API.
type SheetsAppender struct {
	svc           *sheets.Service
	spreadsheetID string
	targetRange   string
	logger        *zap.Logger
}

// NewSheetsAppender creates the Sheets client once; opts normally carry
// option.WithCredentials.
func NewSheetsAppender(ctx context.Context, spreadsheetID, targetRange string, logger *zap.Logger, opts ...option.ClientOption) (*SheetsAppender, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &SheetsAppender{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		targetRange:   targetRange,
		logger:        logger.Named("sheets"),
	}, nil
}

func (a *SheetsAppender) Name() string {
	return "sheets"
}

func (a *SheetsAppender) Append(ctx context.Context, rec model.SaleRecord) error {
	row := lo.Map(rec.Row(), func(cell string, _ int) interface{} { return cell })
	body := &sheets.ValueRange{Values: [][]interface{}{row}}

	resp, err := a.svc.Spreadsheets.Values.
		Append(a.spreadsheetID, a.targetRange, body).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row to spreadsheet %s: %w", a.spreadsheetID, err)
	}

	fields := []zap.Field{zap.String("spreadsheet_id", a.spreadsheetID)}
	if resp.Updates != nil {
		fields = append(fields, zap.String("updated_range", resp.Updates.UpdatedRange))
	}
	a.logger.Info("row appended", fields...)
	return nil
}
