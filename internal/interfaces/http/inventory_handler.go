package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dgtransporte/suministros-api/internal/application/dto"
	appinventory "github.com/dgtransporte/suministros-api/internal/application/inventory"
	"github.com/dgtransporte/suministros-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de entradas, salidas manuales y stock (protegido).
type InventoryHandler struct {
	uc *appinventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *appinventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de suministros (crea un lote por línea)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEntryRequest  true  "supplier, details (product_id, quantity, price, due)"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.RegisterEntry(c.Context(), userID, in)
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "entrada registrada", "entry_id": entry.ID})
}

// RegisterManualOutput godoc
// @Summary      Registrar salida manual (baja de stock sin requisición)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManualOutputRequest  true  "product_id, quantity, observation"
// @Success      201   {object}  dto.OutputResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/outputs [post]
func (h *InventoryHandler) RegisterManualOutput(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ManualOutputRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterManualOutput(c.Context(), userID, in)
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OutputResponse{
		ID:              out.ID,
		ProductID:       out.ProductID,
		RequisitionID:   out.RequisitionID,
		Quantity:        out.Quantity,
		Price:           out.Price,
		CurrentQuantity: out.CurrentQuantity,
		Observation:     out.Observation,
		Motive:          out.Motive,
		SystemUser:      out.SystemUser,
		Date:            out.Date,
	})
}

// GetStock godoc
// @Summary      Stock total actual de un producto (suma de lotes)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{productId} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	productID := c.Params("productId")
	stock, err := h.uc.TotalStock(c.Context(), productID)
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, Stock: stock})
}

// MinStockAlerts godoc
// @Summary      Productos por debajo de su stock mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MinStockAlertDTO
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) MinStockAlerts(c *fiber.Ctx) error {
	alerts, err := h.uc.MinStockAlerts(c.Context())
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(alerts), "alerts": alerts})
}

func mapInventoryError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insufficient.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
