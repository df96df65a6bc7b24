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

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación de EntryRepository sobre PostgreSQL (usable con pool o tx).
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

// Create persiste la entrada y sus líneas de detalle.
func (r *EntryRepo) Create(ctx context.Context, entry *entity.Entry) error {
	query := `
		INSERT INTO entries (id, supplier, invoice_number, observation, system_user, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.Supplier, nullable(entry.InvoiceNumber),
		nullable(entry.Observation), entry.SystemUser, entry.Date, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	detailQuery := `
		INSERT INTO entry_details (id, entry_id, product_id, quantity, price, due)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, d := range entry.Details {
		if _, err := r.q.Exec(ctx, detailQuery,
			d.ID, entry.ID, d.ProductID, d.Quantity, d.Price, d.Due); err != nil {
			return fmt.Errorf("create entry detail: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una entrada con sus detalles, o nil si no existe.
func (r *EntryRepo) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	query := `
		SELECT id, supplier, invoice_number, observation, system_user, date, created_at
		FROM entries WHERE id = $1`
	var e entity.Entry
	var invoiceNumber, observation *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Supplier, &invoiceNumber, &observation, &e.SystemUser, &e.Date, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if invoiceNumber != nil {
		e.InvoiceNumber = *invoiceNumber
	}
	if observation != nil {
		e.Observation = *observation
	}
	details, err := r.details(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.Details = details
	return &e, nil
}

// List lista entradas en un rango de fechas.
func (r *EntryRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Entry, error) {
	query := `
		SELECT id, supplier, invoice_number, observation, system_user, date, created_at
		FROM entries WHERE 1=1`
	args := []any{}
	pos := 1
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

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Entry
	for rows.Next() {
		var e entity.Entry
		var invoiceNumber, observation *string
		if err := rows.Scan(&e.ID, &e.Supplier, &invoiceNumber, &observation,
			&e.SystemUser, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if invoiceNumber != nil {
			e.InvoiceNumber = *invoiceNumber
		}
		if observation != nil {
			e.Observation = *observation
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (r *EntryRepo) details(ctx context.Context, entryID string) ([]entity.EntryDetail, error) {
	query := `
		SELECT id, entry_id, product_id, quantity, price, due
		FROM entry_details WHERE entry_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("list entry details: %w", err)
	}
	defer rows.Close()
	var details []entity.EntryDetail
	for rows.Next() {
		var d entity.EntryDetail
		if err := rows.Scan(&d.ID, &d.EntryID, &d.ProductID, &d.Quantity, &d.Price, &d.Due); err != nil {
			return nil, fmt.Errorf("scan entry detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
