package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dgtransporte/suministros-api/internal/application/auth"
	appinventory "github.com/dgtransporte/suministros-api/internal/application/inventory"
	apprequisition "github.com/dgtransporte/suministros-api/internal/application/requisition"
	"github.com/dgtransporte/suministros-api/internal/application/usecase"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	InventoryUC *appinventory.InventoryUseCase
	ManageUC    *apprequisition.ManageRequisitionUseCase
	FinishUC    *apprequisition.FinishRequisitionUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; escritura solo admin/almacenero)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleAlmacenero), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleAlmacenero), productHandler.Update)

	// Inventory: entradas, salidas manuales, stock y alertas (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/entries", RequireRole(entity.RoleAdmin, entity.RoleAlmacenero), inventoryHandler.RegisterEntry)
	invGroup.Post("/outputs", RequireRole(entity.RoleAdmin, entity.RoleAlmacenero), inventoryHandler.RegisterManualOutput)
	invGroup.Get("/stock/:productId", inventoryHandler.GetStock)
	invGroup.Get("/alerts", inventoryHandler.MinStockAlerts)

	// Requisitions: ciclo de vida completo (protegido)
	requisitions := protected.Group("/requisitions")
	requisitionHandler := NewRequisitionHandler(deps.ManageUC, deps.FinishUC)
	requisitions.Post("/", requisitionHandler.Create)
	requisitions.Get("/", requisitionHandler.List)
	requisitions.Get("/:id", requisitionHandler.GetByID)
	requisitions.Put("/:id/activate", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), requisitionHandler.Activate)
	requisitions.Post("/:id/finish", RequireRole(entity.RoleAdmin, entity.RoleAlmacenero), requisitionHandler.Finish)
	requisitions.Post("/:id/cancel", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), requisitionHandler.Cancel)
}
