package repository

import (
	"context"

	"github.com/dgtransporte/suministros-api/internal/domain/entity"
)

// RequisitionRepository define el puerto de persistencia para requisiciones y sus líneas.
type RequisitionRepository interface {
	Create(ctx context.Context, req *entity.Requisition) error
	// GetByID devuelve la requisición con sus líneas hidratadas (nombre y unidad
	// del producto incluidos), o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Requisition, error)
	// GetByIDForUpdate bloquea la fila de la requisición (SELECT FOR UPDATE)
	// para que dos despachos concurrentes del mismo ID se serialicen.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Requisition, error)
	// UpdateState cambia el estado solo si el actual coincide con from
	// (compare-and-swap). Devuelve ErrInvalidRequisitionState si la fila ya no
	// está en from: otra transacción ganó la carrera y los estados terminales
	// quedan protegidos incluso ante una lectura desactualizada.
	UpdateState(ctx context.Context, id, from, to string) error
	// ReplaceProducts reemplaza las líneas (solo legal en PENDING/ACTIVE; lo valida el caso de uso).
	ReplaceProducts(ctx context.Context, id string, lines []entity.ProductRequisition) error
	ListByState(ctx context.Context, state string, limit, offset int) ([]*entity.Requisition, error)
	ListByDepartment(ctx context.Context, department string, limit, offset int) ([]*entity.Requisition, error)
}
