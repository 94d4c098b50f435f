package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/tealeg/xlsx"
	"go.uber.org/zap"

	"vendas/internal/model"
)

const xlsxSheetName = "Vendas"

// XLSXAppender appends rows to a workbook on local disk. The open-append-save
// cycle is serialized because concurrent requests share the file.
type XLSXAppender struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

func NewXLSXAppender(path string, logger *zap.Logger) *XLSXAppender {
	return &XLSXAppender{path: path, logger: logger.Named("xlsx")}
}

func (a *XLSXAppender) Name() string {
	return "xlsx"
}

func (a *XLSXAppender) Append(ctx context.Context, rec model.SaleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	file, err := a.open()
	if err != nil {
		return err
	}

	sheet, ok := file.Sheet[xlsxSheetName]
	if !ok {
		if sheet, err = file.AddSheet(xlsxSheetName); err != nil {
			return fmt.Errorf("adding sheet: %w", err)
		}
	}

	row := sheet.AddRow()
	for _, value := range rec.Row() {
		row.AddCell().SetString(value)
	}

	if err := file.Save(a.path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", a.path, err)
	}

	a.logger.Info("row appended", zap.String("path", a.path), zap.Int("rows", len(sheet.Rows)))
	return nil
}

func (a *XLSXAppender) open() (*xlsx.File, error) {
	if _, err := os.Stat(a.path); errors.Is(err, os.ErrNotExist) {
		return xlsx.NewFile(), nil
	}
	file, err := xlsx.OpenFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", a.path, err)
	}
	return file, nil
}
