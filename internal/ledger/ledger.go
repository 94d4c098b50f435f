// Package ledger appends sale records to a spreadsheet. Appends are
// unconditional: the same record sent twice produces two rows.
package ledger

import (
	"context"

	"vendas/internal/model"
)

// Appender writes one row per call.
type Appender interface {
	Append(ctx context.Context, rec model.SaleRecord) error
	Name() string
}
