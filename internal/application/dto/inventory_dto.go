package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryLineRequest línea de una entrada: producto, cantidad, precio y vencimiento del lote.
type EntryLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Due       time.Time       `json:"due"`
}

// RegisterEntryRequest body para POST /api/inventory/entries.
type RegisterEntryRequest struct {
	Supplier      string             `json:"supplier"`
	InvoiceNumber string             `json:"invoice_number,omitempty"`
	Observation   string             `json:"observation,omitempty"`
	Details       []EntryLineRequest `json:"details"`
}

// ManualOutputRequest body para POST /api/inventory/outputs (baja sin requisición).
type ManualOutputRequest struct {
	ProductID   string `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	Observation string `json:"observation,omitempty"`
}

// StockResponse stock total actual de un producto.
type StockResponse struct {
	ProductID string `json:"product_id"`
	Stock     int64  `json:"stock"`
}

// MinStockAlertDTO producto por debajo de su umbral mínimo.
type MinStockAlertDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitMeasure string `json:"unit_measure"`
	MinStock    int64  `json:"min_stock"`
	Stock       int64  `json:"stock"`
}
