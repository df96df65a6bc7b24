package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dgtransporte/suministros-api/internal/application/dto"
	"github.com/dgtransporte/suministros-api/internal/domain"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
	dominv "github.com/dgtransporte/suministros-api/internal/domain/inventory"
	"github.com/dgtransporte/suministros-api/internal/domain/repository"
)

// InventoryUseCase registra entradas (que crean lotes) y salidas manuales
// (que consumen lotes sin requisición), y expone las lecturas de stock.
type InventoryUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(txRunner TxRunner, productRepo repository.ProductRepository, batchRepo repository.BatchRepository) *InventoryUseCase {
	return &InventoryUseCase{txRunner: txRunner, productRepo: productRepo, batchRepo: batchRepo}
}

// RegisterEntry persiste la entrada y crea un lote por línea de detalle,
// con el vencimiento y precio de esa línea, en una sola transacción.
func (uc *InventoryUseCase) RegisterEntry(ctx context.Context, userID string, in dto.RegisterEntryRequest) (*entity.Entry, error) {
	if in.Supplier == "" || len(in.Details) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, d := range in.Details {
		if d.ProductID == "" || d.Quantity <= 0 || d.Price.LessThan(decimal.Zero) || d.Due.IsZero() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, d.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	entry := &entity.Entry{
		ID:            uuid.New().String(),
		Supplier:      in.Supplier,
		InvoiceNumber: in.InvoiceNumber,
		Observation:   in.Observation,
		SystemUser:    userID,
		Date:          now,
		CreatedAt:     now,
	}
	for _, d := range in.Details {
		entry.Details = append(entry.Details, entity.EntryDetail{
			ID:        uuid.New().String(),
			EntryID:   entry.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			Price:     d.Price,
			Due:       d.Due,
		})
	}

	err := uc.txRunner.RunInventory(ctx, func(
		entryRepo repository.EntryRepository,
		batchRepo repository.BatchRepository,
		_ repository.OutputRepository,
	) error {
		if err := entryRepo.Create(ctx, entry); err != nil {
			return err
		}
		for _, d := range entry.Details {
			batch := &entity.Batch{
				ID:        uuid.New().String(),
				ProductID: d.ProductID,
				EntryID:   entry.ID,
				Due:       d.Due,
				Quantity:  d.Quantity,
				Price:     d.Price,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := batchRepo.Create(ctx, batch); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RegisterManualOutput da de baja stock sin requisición (merma, ajuste,
// préstamo). Usa el mismo motor de consumo por vencimiento y la misma
// disciplina de bloqueo que el despacho: es el otro escritor de los lotes.
func (uc *InventoryUseCase) RegisterManualOutput(ctx context.Context, userID string, in dto.ManualOutputRequest) (*entity.Output, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var created *entity.Output
	err = uc.txRunner.RunInventory(ctx, func(
		_ repository.EntryRepository,
		batchRepo repository.BatchRepository,
		outputRepo repository.OutputRepository,
	) error {
		batches, err := batchRepo.ListByProductForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		total := dominv.TotalStock(batches)
		if total < in.Quantity {
			return &domain.InsufficientStockError{
				ProductName: product.Name,
				Requested:   in.Quantity,
				Available:   total,
			}
		}
		plan, err := dominv.PlanConsumption(batches, in.Quantity)
		if err != nil {
			return err
		}
		for _, take := range plan.Takes {
			if _, err := batchRepo.Decrement(ctx, take.BatchID, take.Quantity); err != nil {
				return err
			}
		}
		out := &entity.Output{
			ID:              uuid.New().String(),
			ProductID:       in.ProductID,
			Quantity:        in.Quantity,
			Price:           plan.TotalCost,
			CurrentQuantity: total - in.Quantity,
			Observation:     in.Observation,
			Motive:          entity.OutputMotiveManual,
			SystemUser:      userID,
			Date:            time.Now(),
		}
		if err := outputRepo.Create(ctx, out); err != nil {
			return err
		}
		created = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// TotalStock devuelve el stock total actual de un producto (suma de lotes).
func (uc *InventoryUseCase) TotalStock(ctx context.Context, productID string) (int64, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	return uc.batchRepo.TotalStock(ctx, productID)
}

// MinStockAlerts devuelve los productos por debajo de su umbral mínimo.
func (uc *InventoryUseCase) MinStockAlerts(ctx context.Context) ([]dto.MinStockAlertDTO, error) {
	rows, err := uc.productRepo.ListBelowMinStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.MinStockAlertDTO, 0, len(rows))
	for _, r := range rows {
		alerts = append(alerts, dto.MinStockAlertDTO{
			ProductID:   r.Product.ID,
			ProductName: r.Product.Name,
			UnitMeasure: r.Product.UnitMeasure,
			MinStock:    r.Product.MinStock,
			Stock:       r.Stock,
		})
	}
	return alerts, nil
}
