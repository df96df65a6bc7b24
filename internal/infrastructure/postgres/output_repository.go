package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dgtransporte/suministros-api/internal/domain/entity"
	"github.com/dgtransporte/suministros-api/internal/domain/repository"
)

var _ repository.OutputRepository = (*OutputRepo)(nil)

// OutputRepo implementación de OutputRepository sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: el libro de salidas es append-only.
type OutputRepo struct {
	q Querier
}

// NewOutputRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOutputRepository(q Querier) *OutputRepo {
	return &OutputRepo{q: q}
}

const outputColumns = "id, product_id, requisition_id, quantity, price, current_quantity, observation, motive, system_user, date"

// Create persiste un asiento de salida.
func (r *OutputRepo) Create(ctx context.Context, output *entity.Output) error {
	query := `
		INSERT INTO outputs (` + outputColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		output.ID, output.ProductID, output.RequisitionID, output.Quantity,
		output.Price, output.CurrentQuantity, output.Observation,
		output.Motive, output.SystemUser, output.Date,
	)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID, o nil si no existe.
func (r *OutputRepo) GetByID(ctx context.Context, id string) (*entity.Output, error) {
	query := `SELECT ` + outputColumns + ` FROM outputs WHERE id = $1`
	var o entity.Output
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.ProductID, &o.RequisitionID, &o.Quantity, &o.Price,
		&o.CurrentQuantity, &o.Observation, &o.Motive, &o.SystemUser, &o.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get output: %w", err)
	}
	return &o, nil
}

// ListByProduct lista salidas de un producto en un rango de fechas.
func (r *OutputRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Output, error) {
	query := `SELECT ` + outputColumns + ` FROM outputs WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(ctx, query, args...)
}

// ListByRequisition lista los asientos generados por el despacho de una requisición.
func (r *OutputRepo) ListByRequisition(ctx context.Context, requisitionID string) ([]*entity.Output, error) {
	query := `SELECT ` + outputColumns + ` FROM outputs WHERE requisition_id = $1 ORDER BY date ASC, id ASC`
	return r.list(ctx, query, requisitionID)
}

func (r *OutputRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Output, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list outputs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Output
	for rows.Next() {
		var o entity.Output
		if err := rows.Scan(&o.ID, &o.ProductID, &o.RequisitionID, &o.Quantity, &o.Price,
			&o.CurrentQuantity, &o.Observation, &o.Motive, &o.SystemUser, &o.Date); err != nil {
			return nil, fmt.Errorf("scan output: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
