package repository

import (
	"context"

	"github.com/dgtransporte/suministros-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes de stock.
// Usado dentro de transacciones para garantizar consistencia del motor de despacho.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	// ListByProduct devuelve los lotes del producto ordenados por vencimiento
	// ascendente, ID ascendente (snapshot puntual, incluye lotes en cero).
	ListByProduct(ctx context.Context, productID string) ([]*entity.Batch, error)
	// ListByProductForUpdate igual que ListByProduct pero bloquea las filas
	// (SELECT FOR UPDATE). Serializa despachos concurrentes sobre el mismo producto.
	ListByProductForUpdate(ctx context.Context, productID string) ([]*entity.Batch, error)
	// Decrement resta amount al lote y devuelve la cantidad restante.
	// Devuelve ErrInsufficientBatch si amount excede la cantidad actual:
	// la guarda SQL es la última línea de defensa del invariante quantity >= 0.
	Decrement(ctx context.Context, batchID string, amount int64) (int64, error)
	// TotalStock suma la cantidad de todos los lotes del producto (0 sin lotes).
	TotalStock(ctx context.Context, productID string) (int64, error)
}
