package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch es un lote de stock de un producto: cantidad restante con fecha de
// vencimiento y precio unitario propios. Se crea al registrar una entrada y
// solo el motor de despacho decrementa su cantidad. Nunca se elimina: un lote
// en cero queda como registro histórico de precio.
// Invariante: Quantity >= 0 en todo momento.
type Batch struct {
	ID        string
	ProductID string
	EntryID   string          // entrada de suministro que originó el lote
	Due       time.Time       // fecha de vencimiento
	Quantity  int64           // cantidad restante
	Price     decimal.Decimal // precio unitario del lote
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired indica si el lote ya venció respecto a now.
func (b *Batch) IsExpired(now time.Time) bool {
	return b.Due.Before(now)
}
