package requisition

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dgtransporte/suministros-api/internal/application/dto"
	"github.com/dgtransporte/suministros-api/internal/domain"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
	domreq "github.com/dgtransporte/suministros-api/internal/domain/requisition"
	"github.com/dgtransporte/suministros-api/internal/domain/repository"
)

// ManageRequisitionUseCase cubre el ciclo de vida fuera del despacho:
// crear (PENDING_SUPERVISOR), activar con cantidades definitivas
// (PENDING_SUPERVISOR -> ACTIVE), cancelar y consultar. Activate y Cancel
// corren en transacción con la fila bloqueada, igual que el despacho: un
// Cancel que pierde la carrera contra un Finish no pisa el estado terminal.
type ManageRequisitionUseCase struct {
	reqRepo     repository.RequisitionRepository
	productRepo repository.ProductRepository
	txRunner    TxRunner
}

// NewManageRequisitionUseCase construye el caso de uso.
func NewManageRequisitionUseCase(reqRepo repository.RequisitionRepository, productRepo repository.ProductRepository, txRunner TxRunner) *ManageRequisitionUseCase {
	return &ManageRequisitionUseCase{reqRepo: reqRepo, productRepo: productRepo, txRunner: txRunner}
}

// Create registra una requisición en estado PENDING_SUPERVISOR con sus líneas.
func (uc *ManageRequisitionUseCase) Create(ctx context.Context, userID string, in dto.CreateRequisitionRequest) (*entity.Requisition, error) {
	if in.EmployeeID == "" || in.Department == "" || len(in.Products) == 0 {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.buildLines(ctx, in.Products)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	req := &entity.Requisition{
		ID:         uuid.New().String(),
		EmployeeID: in.EmployeeID,
		Department: in.Department,
		State:      entity.RequisitionStatePending,
		SystemUser: userID,
		CreatedAt:  now,
		UpdatedAt:  now,
		Products:   lines,
	}
	for i := range req.Products {
		req.Products[i].RequisitionID = req.ID
	}
	if err := uc.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Activate fija las cantidades definitivas (el supervisor puede ajustar las
// líneas) y pasa la requisición de PENDING_SUPERVISOR a ACTIVE. El reemplazo
// de líneas y el cambio de estado se confirman como una sola transacción, con
// la fila bloqueada: un fallo a mitad no deja la requisición sin líneas.
func (uc *ManageRequisitionUseCase) Activate(ctx context.Context, id string, in dto.ActivateRequisitionRequest) error {
	var lines []entity.ProductRequisition
	if len(in.Products) > 0 {
		var err error
		lines, err = uc.buildLines(ctx, in.Products)
		if err != nil {
			return err
		}
	}
	return uc.txRunner.Run(ctx, func(
		reqRepo repository.RequisitionRepository,
		_ repository.BatchRepository,
		_ repository.OutputRepository,
	) error {
		req, err := reqRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		from := req.State
		if err := domreq.Transition(req, entity.RequisitionStateActive); err != nil {
			return err
		}
		if len(lines) > 0 {
			for i := range lines {
				lines[i].RequisitionID = req.ID
			}
			if err := reqRepo.ReplaceProducts(ctx, req.ID, lines); err != nil {
				return err
			}
		}
		return reqRepo.UpdateState(ctx, req.ID, from, req.State)
	})
}

// Cancel cancela una requisición no terminal (PENDING_SUPERVISOR o ACTIVE).
// Corre con la fila bloqueada y el cambio de estado condicionado al estado
// leído: si un despacho concurrente confirma FINISHED primero, el Cancel
// falla en lugar de cancelar una requisición ya despachada.
func (uc *ManageRequisitionUseCase) Cancel(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		reqRepo repository.RequisitionRepository,
		_ repository.BatchRepository,
		_ repository.OutputRepository,
	) error {
		req, err := reqRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		from := req.State
		if err := domreq.Transition(req, entity.RequisitionStateCancelled); err != nil {
			return err
		}
		return reqRepo.UpdateState(ctx, req.ID, from, req.State)
	})
}

// GetByID devuelve la requisición con líneas hidratadas.
func (uc *ManageRequisitionUseCase) GetByID(ctx context.Context, id string) (*entity.Requisition, error) {
	req, err := uc.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// ListByState lista requisiciones por estado con paginación.
func (uc *ManageRequisitionUseCase) ListByState(ctx context.Context, state string, page dto.PageRequest) ([]*entity.Requisition, error) {
	page.DefaultPage()
	return uc.reqRepo.ListByState(ctx, state, page.Limit, page.Offset)
}

// buildLines valida productos y cantidades y arma las líneas hidratadas.
func (uc *ManageRequisitionUseCase) buildLines(ctx context.Context, in []dto.RequisitionLineRequest) ([]entity.ProductRequisition, error) {
	lines := make([]entity.ProductRequisition, 0, len(in))
	for _, l := range in {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		lines = append(lines, entity.ProductRequisition{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			Quantity:    l.Quantity,
			ProductName: product.Name,
			UnitMeasure: product.UnitMeasure,
		})
	}
	return lines, nil
}
