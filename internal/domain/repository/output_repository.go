package repository

import (
	"context"
	"time"

	"github.com/dgtransporte/suministros-api/internal/domain/entity"
)

// OutputRepository define el puerto de persistencia para el libro de salidas.
// Solo inserta y lee: los asientos nunca se actualizan.
type OutputRepository interface {
	Create(ctx context.Context, output *entity.Output) error
	GetByID(ctx context.Context, id string) (*entity.Output, error)
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Output, error)
	ListByRequisition(ctx context.Context, requisitionID string) ([]*entity.Output, error)
}
