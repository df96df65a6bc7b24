package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry representa una entrada de suministros (recepción de compra).
// Cada línea de detalle origina un Batch con su vencimiento y precio.
type Entry struct {
	ID            string
	Supplier      string
	InvoiceNumber string
	Observation   string
	SystemUser    string
	Date          time.Time
	CreatedAt     time.Time
	Details       []EntryDetail
}

// EntryDetail línea de una entrada: producto, cantidad, precio y vencimiento del lote.
type EntryDetail struct {
	ID        string
	EntryID   string
	ProductID string
	Quantity  int64
	Price     decimal.Decimal
	Due       time.Time
}
