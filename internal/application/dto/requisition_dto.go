package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequisitionLineRequest línea de una requisición (crear/activar).
type RequisitionLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateRequisitionRequest body para POST /api/requisitions.
type CreateRequisitionRequest struct {
	EmployeeID string                   `json:"employee_id"`
	Department string                   `json:"department"`
	Products   []RequisitionLineRequest `json:"products"`
}

// ActivateRequisitionRequest body para PUT /api/requisitions/:id/activate.
// El supervisor fija las cantidades definitivas antes del despacho.
type ActivateRequisitionRequest struct {
	Products []RequisitionLineRequest `json:"products"`
}

// RequisitionLineResponse línea en respuestas.
type RequisitionLineResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitMeasure string `json:"unit_measure"`
	Quantity    int64  `json:"quantity"`
}

// RequisitionResponse requisición con sus líneas.
type RequisitionResponse struct {
	ID         string                    `json:"id"`
	EmployeeID string                    `json:"employee_id"`
	Department string                    `json:"department"`
	State      string                    `json:"state"`
	SystemUser string                    `json:"system_user"`
	CreatedAt  time.Time                 `json:"created_at"`
	Products   []RequisitionLineResponse `json:"products"`
}

// OutputResponse asiento del libro de salidas.
type OutputResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	RequisitionID   *string         `json:"requisition_id,omitempty"`
	Quantity        int64           `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	CurrentQuantity int64           `json:"current_quantity"`
	Observation     string          `json:"observation,omitempty"`
	Motive          string          `json:"motive"`
	SystemUser      string          `json:"system_user"`
	Date            time.Time       `json:"date"`
}
