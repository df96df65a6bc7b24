package repository

import (
	"context"

	"github.com/dgtransporte/suministros-api/internal/domain/entity"
)

// ProductStock producto junto a su stock total derivado de lotes.
type ProductStock struct {
	Product entity.Product
	Stock   int64
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// SearchByName busca por nombre normalizado (sin tildes, case-insensitive).
	// El término llega ya normalizado desde el caso de uso.
	SearchByName(ctx context.Context, normalizedTerm string, limit int) ([]*entity.Product, error)
	// ListBelowMinStock productos cuyo stock total (suma de lotes) está por
	// debajo de su umbral mínimo. Alimenta la alerta de reposición.
	ListBelowMinStock(ctx context.Context) ([]ProductStock, error)
}
