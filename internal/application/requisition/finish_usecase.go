package requisition

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dgtransporte/suministros-api/internal/domain"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
	"github.com/dgtransporte/suministros-api/internal/domain/inventory"
	domreq "github.com/dgtransporte/suministros-api/internal/domain/requisition"
	"github.com/dgtransporte/suministros-api/internal/domain/repository"
	"github.com/dgtransporte/suministros-api/pkg/logger"
)

// FinishRequisitionUseCase despacha una requisición ACTIVE: consume los lotes
// de cada línea (vencimiento más próximo primero), crea un asiento de salida
// por línea y deja la requisición en FINISHED. Todo ocurre en una sola
// transacción con bloqueo de filas (SELECT FOR UPDATE) sobre la requisición y
// los lotes afectados, de modo que despachos concurrentes que comparten
// producto se serializan y quantity >= 0 se mantiene siempre.
type FinishRequisitionUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewFinishRequisitionUseCase construye el caso de uso.
func NewFinishRequisitionUseCase(txRunner TxRunner, log *logger.Logger) *FinishRequisitionUseCase {
	return &FinishRequisitionUseCase{txRunner: txRunner, log: log}
}

// Finish despacha la requisición. Valida el stock de TODAS las líneas antes de
// mutar cualquier lote (todo-o-nada); cualquier error revierte la transacción
// completa. userID queda como usuario de sistema en los asientos de salida.
func (uc *FinishRequisitionUseCase) Finish(ctx context.Context, requisitionID, userID string) error {
	err := uc.txRunner.Run(ctx, func(
		reqRepo repository.RequisitionRepository,
		batchRepo repository.BatchRepository,
		outputRepo repository.OutputRepository,
	) error {
		req, err := reqRepo.GetByIDForUpdate(ctx, requisitionID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.State != entity.RequisitionStateActive {
			return domain.ErrInvalidRequisitionState
		}
		if len(req.Products) == 0 {
			return domain.ErrInvalidInput
		}

		// Bloquear los lotes de cada producto en orden de ID de producto:
		// orden de bloqueo determinista para que dos despachos que comparten
		// productos no se interbloqueen.
		requested := make(map[string]int64)
		nameByProduct := make(map[string]string)
		for _, line := range req.Products {
			requested[line.ProductID] += line.Quantity
			nameByProduct[line.ProductID] = line.ProductName
		}
		productIDs := make([]string, 0, len(requested))
		for pid := range requested {
			productIDs = append(productIDs, pid)
		}
		sort.Strings(productIDs)

		batchesByProduct := make(map[string][]*entity.Batch, len(productIDs))
		stockByProduct := make(map[string]int64, len(productIDs))
		for _, pid := range productIDs {
			batches, err := batchRepo.ListByProductForUpdate(ctx, pid)
			if err != nil {
				return err
			}
			batchesByProduct[pid] = batches
			stockByProduct[pid] = inventory.TotalStock(batches)
		}

		// Validación de suficiencia de TODAS las líneas antes de mutar nada.
		// Líneas repetidas del mismo producto se validan por su suma.
		for _, pid := range productIDs {
			if stockByProduct[pid] < requested[pid] {
				return &domain.InsufficientStockError{
					ProductName: nameByProduct[pid],
					Requested:   requested[pid],
					Available:   stockByProduct[pid],
				}
			}
		}

		now := time.Now()
		for _, line := range req.Products {
			plan, err := inventory.PlanConsumption(batchesByProduct[line.ProductID], line.Quantity)
			if err != nil {
				return err
			}
			for _, take := range plan.Takes {
				if _, err := batchRepo.Decrement(ctx, take.BatchID, take.Quantity); err != nil {
					return err
				}
			}
			applyPlan(batchesByProduct[line.ProductID], plan)

			stockByProduct[line.ProductID] -= line.Quantity
			reqID := req.ID
			out := &entity.Output{
				ID:              uuid.New().String(),
				ProductID:       line.ProductID,
				RequisitionID:   &reqID,
				Quantity:        line.Quantity,
				Price:           plan.TotalCost,
				CurrentQuantity: stockByProduct[line.ProductID],
				Motive:          entity.OutputMotiveRequisition,
				SystemUser:      userID,
				Date:            now,
			}
			if err := outputRepo.Create(ctx, out); err != nil {
				return err
			}
		}

		from := req.State
		if err := domreq.Transition(req, entity.RequisitionStateFinished); err != nil {
			return err
		}
		return reqRepo.UpdateState(ctx, req.ID, from, req.State)
	})

	if err != nil {
		uc.log.Warn().Err(err).Str("requisition_id", requisitionID).Msg("despacho de requisición fallido")
		return err
	}
	uc.log.Info().Str("requisition_id", requisitionID).Str("user_id", userID).Msg("requisición despachada")
	return nil
}

// applyPlan refleja los decrementos en el snapshot en memoria para que una
// segunda línea del mismo producto planifique contra cantidades ya consumidas.
func applyPlan(batches []*entity.Batch, plan *inventory.ConsumptionPlan) {
	remaining := make(map[string]int64, len(plan.Takes))
	for _, take := range plan.Takes {
		remaining[take.BatchID] = take.Remaining
	}
	for _, b := range batches {
		if qty, ok := remaining[b.ID]; ok {
			b.Quantity = qty
		}
	}
}
