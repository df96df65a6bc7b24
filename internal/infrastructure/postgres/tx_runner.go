package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dgtransporte/suministros-api/internal/application/inventory"
	"github.com/dgtransporte/suministros-api/internal/application/requisition"
	"github.com/dgtransporte/suministros-api/internal/domain/repository"
)

// Ensure TxRunner implements requisition.TxRunner and inventory.TxRunner.
var _ requisition.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del despacho de requisiciones
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	reqRepo repository.RequisitionRepository,
	batchRepo repository.BatchRepository,
	outputRepo repository.OutputRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	reqRepo := NewRequisitionRepository(tx)
	batchRepo := NewBatchRepository(tx)
	outputRepo := NewOutputRepository(tx)

	if err := fn(reqRepo, batchRepo, outputRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInventory inicia una transacción con los repos de entradas y salidas
// manuales (para RegisterEntry y RegisterManualOutput).
func (r *TxRunner) RunInventory(ctx context.Context, fn func(
	entryRepo repository.EntryRepository,
	batchRepo repository.BatchRepository,
	outputRepo repository.OutputRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entryRepo := NewEntryRepository(tx)
	batchRepo := NewBatchRepository(tx)
	outputRepo := NewOutputRepository(tx)

	if err := fn(entryRepo, batchRepo, outputRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
