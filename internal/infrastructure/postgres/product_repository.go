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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = "id, name, unit_measure, min_stock, group_id, created_at, updated_at"

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.UnitMeasure, product.MinStock,
		nullable(product.GroupID), product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, o nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	var groupID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.UnitMeasure, &p.MinStock, &groupID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if groupID != nil {
		p.GroupID = *groupID
	}
	return &p, nil
}

// Update actualiza los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, unit_measure = $3, min_stock = $4, group_id = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.UnitMeasure, product.MinStock,
		nullable(product.GroupID), product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos por nombre ascendente.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// SearchByName busca por nombre sin tildes ni mayúsculas. El término llega ya
// normalizado desde el caso de uso; del lado SQL se usa la extensión unaccent
// (CREATE EXTENSION unaccent) para normalizar la columna con el mismo criterio.
func (r *ProductRepo) SearchByName(ctx context.Context, normalizedTerm string, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE lower(unaccent(name)) LIKE '%' || $1 || '%'
		ORDER BY name ASC LIMIT $2`
	return r.list(ctx, query, normalizedTerm, limit)
}

// ListBelowMinStock productos cuyo stock total (suma de lotes) está por debajo del mínimo.
func (r *ProductRepo) ListBelowMinStock(ctx context.Context) ([]repository.ProductStock, error) {
	query := `
		SELECT p.id, p.name, p.unit_measure, p.min_stock, p.group_id, p.created_at, p.updated_at,
		       COALESCE(SUM(b.quantity), 0) AS stock
		FROM products p
		LEFT JOIN batches b ON b.product_id = p.id
		GROUP BY p.id
		HAVING COALESCE(SUM(b.quantity), 0) < p.min_stock
		ORDER BY p.name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list below min stock: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductStock
	for rows.Next() {
		var ps repository.ProductStock
		var groupID *string
		if err := rows.Scan(&ps.Product.ID, &ps.Product.Name, &ps.Product.UnitMeasure,
			&ps.Product.MinStock, &groupID, &ps.Product.CreatedAt, &ps.Product.UpdatedAt,
			&ps.Stock); err != nil {
			return nil, fmt.Errorf("scan product stock: %w", err)
		}
		if groupID != nil {
			ps.Product.GroupID = *groupID
		}
		list = append(list, ps)
	}
	return list, rows.Err()
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var groupID *string
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitMeasure, &p.MinStock,
			&groupID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if groupID != nil {
			p.GroupID = *groupID
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
