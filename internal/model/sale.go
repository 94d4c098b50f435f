package model

import "time"

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// SaleRecord is one sale extracted from a voice message.
type SaleRecord struct {
	Buyer     string    `json:"buyer"`
	Product   string    `json:"product"`
	Price     string    `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Row returns the ledger cells in column order.
func (s SaleRecord) Row() []string {
	return []string{
		s.Buyer,
		s.Product,
		s.Price,
		s.Timestamp.UTC().Format(TimestampLayout),
	}
}
