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

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = "id, product_id, entry_id, due, quantity, price, created_at, updated_at"

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(ctx context.Context, batch *entity.Batch) error {
	query := `
		INSERT INTO batches (id, product_id, entry_id, due, quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.ProductID, batch.EntryID, batch.Due,
		batch.Quantity, batch.Price, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// ListByProduct devuelve los lotes del producto en orden de consumo:
// vencimiento ascendente, ID ascendente como desempate determinista.
func (r *BatchRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches WHERE product_id = $1
		ORDER BY due ASC, id ASC`
	return r.list(ctx, query, productID)
}

// ListByProductForUpdate igual que ListByProduct pero con bloqueo de filas
// (SELECT FOR UPDATE): despachos concurrentes sobre el mismo producto esperan.
func (r *BatchRepo) ListByProductForUpdate(ctx context.Context, productID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches WHERE product_id = $1
		ORDER BY due ASC, id ASC
		FOR UPDATE`
	return r.list(ctx, query, productID)
}

func (r *BatchRepo) list(ctx context.Context, query, productID string) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.EntryID, &b.Due,
			&b.Quantity, &b.Price, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Decrement resta amount al lote con guarda en SQL: la condición
// quantity >= amount hace imposible dejar el lote en negativo aunque la
// lógica previa tuviera un fallo. Sin fila afectada -> ErrInsufficientBatch.
func (r *BatchRepo) Decrement(ctx context.Context, batchID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidInput
	}
	query := `
		UPDATE batches
		SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2
		RETURNING quantity`
	var remaining int64
	err := r.q.QueryRow(ctx, query, batchID, amount).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientBatch
		}
		return 0, fmt.Errorf("decrement batch: %w", err)
	}
	return remaining, nil
}

// TotalStock suma la cantidad de todos los lotes del producto (0 sin lotes).
func (r *BatchRepo) TotalStock(ctx context.Context, productID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM batches WHERE product_id = $1`
	var total int64
	if err := r.q.QueryRow(ctx, query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total stock: %w", err)
	}
	return total, nil
}
