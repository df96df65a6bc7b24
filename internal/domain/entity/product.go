package entity

import "time"

// Product representa un producto del almacén de suministros.
// El stock no vive aquí: se deriva de la suma de sus lotes (Batch).
type Product struct {
	ID          string
	Name        string
	UnitMeasure string // unidad, caja, resma, galón...
	MinStock    int64  // umbral de alerta de stock mínimo
	GroupID     string // grupo/categoría de suministro
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
