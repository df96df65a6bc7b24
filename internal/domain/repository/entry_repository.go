package repository

import (
	"context"
	"time"

	"github.com/dgtransporte/suministros-api/internal/domain/entity"
)

// EntryRepository define el puerto de persistencia para entradas de suministro.
type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) error
	GetByID(ctx context.Context, id string) (*entity.Entry, error)
	List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Entry, error)
}
