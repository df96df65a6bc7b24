package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dgtransporte/suministros-api/internal/domain"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
	"github.com/dgtransporte/suministros-api/internal/domain/repository"
)

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo implementación de RequisitionRepository sobre PostgreSQL (usable con pool o tx).
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

// Create persiste la requisición y sus líneas.
func (r *RequisitionRepo) Create(ctx context.Context, req *entity.Requisition) error {
	query := `
		INSERT INTO requisitions (id, employee_id, department, state, system_user, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.EmployeeID, req.Department, req.State,
		req.SystemUser, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create requisition: %w", err)
	}
	return r.insertLines(ctx, req.ID, req.Products)
}

// GetByID devuelve la requisición con líneas hidratadas, o nil si no existe.
func (r *RequisitionRepo) GetByID(ctx context.Context, id string) (*entity.Requisition, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate bloquea la fila de la requisición (SELECT FOR UPDATE):
// dos despachos concurrentes del mismo ID se serializan y el segundo ve FINISHED.
func (r *RequisitionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Requisition, error) {
	return r.get(ctx, id, true)
}

func (r *RequisitionRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Requisition, error) {
	query := `
		SELECT id, employee_id, department, state, system_user, created_at, updated_at
		FROM requisitions WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var req entity.Requisition
	err := r.q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.Department, &req.State,
		&req.SystemUser, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	lines, err := r.lines(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	req.Products = lines
	return &req, nil
}

// UpdateState cambia el estado con compare-and-swap: la condición state = from
// en el WHERE hace que una escritura con lectura desactualizada no afecte
// filas en lugar de pisar un estado terminal.
func (r *RequisitionRepo) UpdateState(ctx context.Context, id, from, to string) error {
	query := `UPDATE requisitions SET state = $3, updated_at = now() WHERE id = $1 AND state = $2`
	tag, err := r.q.Exec(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("update requisition state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidRequisitionState
	}
	return nil
}

// ReplaceProducts reemplaza las líneas de la requisición.
func (r *RequisitionRepo) ReplaceProducts(ctx context.Context, id string, lines []entity.ProductRequisition) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM requisition_products WHERE requisition_id = $1`, id); err != nil {
		return fmt.Errorf("replace requisition products: %w", err)
	}
	return r.insertLines(ctx, id, lines)
}

// ListByState lista requisiciones por estado (sin líneas, para listados).
func (r *RequisitionRepo) ListByState(ctx context.Context, state string, limit, offset int) ([]*entity.Requisition, error) {
	query := `
		SELECT id, employee_id, department, state, system_user, created_at, updated_at
		FROM requisitions WHERE state = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listHeaders(ctx, query, state, limit, offset)
}

// ListByDepartment lista requisiciones de un departamento (sin líneas).
func (r *RequisitionRepo) ListByDepartment(ctx context.Context, department string, limit, offset int) ([]*entity.Requisition, error) {
	query := `
		SELECT id, employee_id, department, state, system_user, created_at, updated_at
		FROM requisitions WHERE department = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listHeaders(ctx, query, department, limit, offset)
}

func (r *RequisitionRepo) listHeaders(ctx context.Context, query string, key string, limit, offset int) ([]*entity.Requisition, error) {
	rows, err := r.q.Query(ctx, query, key, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Requisition
	for rows.Next() {
		var req entity.Requisition
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.Department, &req.State,
			&req.SystemUser, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

// lines carga las líneas con nombre y unidad del producto (join con products).
func (r *RequisitionRepo) lines(ctx context.Context, requisitionID string) ([]entity.ProductRequisition, error) {
	query := `
		SELECT rp.id, rp.requisition_id, rp.product_id, rp.quantity, p.name, p.unit_measure
		FROM requisition_products rp
		JOIN products p ON p.id = rp.product_id
		WHERE rp.requisition_id = $1
		ORDER BY rp.id ASC`
	rows, err := r.q.Query(ctx, query, requisitionID)
	if err != nil {
		return nil, fmt.Errorf("list requisition products: %w", err)
	}
	defer rows.Close()
	var lines []entity.ProductRequisition
	for rows.Next() {
		var l entity.ProductRequisition
		if err := rows.Scan(&l.ID, &l.RequisitionID, &l.ProductID, &l.Quantity,
			&l.ProductName, &l.UnitMeasure); err != nil {
			return nil, fmt.Errorf("scan requisition product: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *RequisitionRepo) insertLines(ctx context.Context, requisitionID string, lines []entity.ProductRequisition) error {
	query := `
		INSERT INTO requisition_products (id, requisition_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for _, l := range lines {
		if _, err := r.q.Exec(ctx, query, l.ID, requisitionID, l.ProductID, l.Quantity); err != nil {
			return fmt.Errorf("create requisition product: %w", err)
		}
	}
	return nil
}
