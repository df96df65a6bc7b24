package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dgtransporte/suministros-api/internal/application/dto"
	apprequisition "github.com/dgtransporte/suministros-api/internal/application/requisition"
	"github.com/dgtransporte/suministros-api/internal/domain"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
)

// RequisitionHandler maneja las peticiones HTTP del ciclo de vida de requisiciones (protegido).
type RequisitionHandler struct {
	manageUC *apprequisition.ManageRequisitionUseCase
	finishUC *apprequisition.FinishRequisitionUseCase
}

// NewRequisitionHandler construye el handler.
func NewRequisitionHandler(manageUC *apprequisition.ManageRequisitionUseCase, finishUC *apprequisition.FinishRequisitionUseCase) *RequisitionHandler {
	return &RequisitionHandler{manageUC: manageUC, finishUC: finishUC}
}

// Create godoc
// @Summary      Crear requisición de suministros
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequisitionRequest  true  "employee_id, department, products"
// @Success      201   {object}  dto.RequisitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requisitions [post]
func (h *RequisitionHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.manageUC.Create(c.Context(), userID, in)
	if err != nil {
		return mapRequisitionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRequisitionResponse(req))
}

// Activate godoc
// @Summary      Activar requisición (supervisor fija cantidades definitivas)
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la requisición"
// @Param        body  body  dto.ActivateRequisitionRequest  false  "líneas definitivas (opcional)"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/activate [put]
func (h *RequisitionHandler) Activate(c *fiber.Ctx) error {
	var in dto.ActivateRequisitionRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.manageUC.Activate(c.Context(), c.Params("id"), in); err != nil {
		return mapRequisitionError(c, err)
	}
	return c.JSON(fiber.Map{"message": "requisición activada"})
}

// Finish godoc
// @Summary      Despachar requisición (consume lotes y genera salidas)
// @Description  Valida el stock de todas las líneas antes de mutar nada; consume
//               los lotes por vencimiento más próximo y deja la requisición en FINISHED.
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/finish [post]
func (h *RequisitionHandler) Finish(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.finishUC.Finish(c.Context(), c.Params("id"), userID); err != nil {
		return mapRequisitionError(c, err)
	}
	return c.JSON(fiber.Map{"message": "requisición despachada"})
}

// Cancel godoc
// @Summary      Cancelar requisición
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/cancel [post]
func (h *RequisitionHandler) Cancel(c *fiber.Ctx) error {
	if err := h.manageUC.Cancel(c.Context(), c.Params("id")); err != nil {
		return mapRequisitionError(c, err)
	}
	return c.JSON(fiber.Map{"message": "requisición cancelada"})
}

// GetByID godoc
// @Summary      Consultar requisición con sus líneas
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id} [get]
func (h *RequisitionHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.manageUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapRequisitionError(c, err)
	}
	return c.JSON(toRequisitionResponse(req))
}

// List godoc
// @Summary      Listar requisiciones por estado
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        state   query  string  false  "PENDING_SUPERVISOR | ACTIVE | CANCELLED | FINISHED"
// @Param        limit   query  int     false  "límite de página"
// @Param        offset  query  int     false  "offset de página"
// @Success      200  {array}  dto.RequisitionResponse
// @Router       /api/requisitions [get]
func (h *RequisitionHandler) List(c *fiber.Ctx) error {
	state := c.Query("state", entity.RequisitionStatePending)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.manageUC.ListByState(c.Context(), state, page)
	if err != nil {
		return mapRequisitionError(c, err)
	}
	out := make([]dto.RequisitionResponse, 0, len(list))
	for _, req := range list {
		out = append(out, toRequisitionResponse(req))
	}
	return c.JSON(out)
}

// mapRequisitionError traduce errores de dominio a respuestas HTTP. El nombre
// del producto sin stock viaja en el mensaje (requisito de la capa de UI).
func mapRequisitionError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insufficient.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidRequisitionState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "el estado de la requisición no permite la operación"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toRequisitionResponse(req *entity.Requisition) dto.RequisitionResponse {
	lines := make([]dto.RequisitionLineResponse, 0, len(req.Products))
	for _, l := range req.Products {
		lines = append(lines, dto.RequisitionLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitMeasure: l.UnitMeasure,
			Quantity:    l.Quantity,
		})
	}
	return dto.RequisitionResponse{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		Department: req.Department,
		State:      req.State,
		SystemUser: req.SystemUser,
		CreatedAt:  req.CreatedAt,
		Products:   lines,
	}
}
