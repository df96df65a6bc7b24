package dto

import "time"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string `json:"name"`
	UnitMeasure string `json:"unit_measure"`
	MinStock    int64  `json:"min_stock"`
	GroupID     string `json:"group_id,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name        string `json:"name"`
	UnitMeasure string `json:"unit_measure"`
	MinStock    int64  `json:"min_stock"`
	GroupID     string `json:"group_id,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	UnitMeasure string    `json:"unit_measure"`
	MinStock    int64     `json:"min_stock"`
	GroupID     string    `json:"group_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
