package entity

import "time"

// Estados de una requisición de suministros.
const (
	RequisitionStatePending   = "PENDING_SUPERVISOR" // creada, pendiente de revisión del supervisor
	RequisitionStateActive    = "ACTIVE"             // cantidades finalizadas, lista para despachar
	RequisitionStateCancelled = "CANCELLED"          // terminal
	RequisitionStateFinished  = "FINISHED"           // terminal, despachada
)

// Requisition es una solicitud interna de suministros de un empleado/departamento.
// Sus líneas (ProductRequisition) son inmutables una vez FINISHED.
type Requisition struct {
	ID         string
	EmployeeID string
	Department string
	State      string
	SystemUser string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Products   []ProductRequisition
}

// ProductRequisition línea de una requisición: producto y cantidad solicitada.
// ProductName y UnitMeasure se hidratan en lecturas para evitar joins en la capa de aplicación.
type ProductRequisition struct {
	ID            string
	RequisitionID string
	ProductID     string
	Quantity      int64
	ProductName   string
	UnitMeasure   string
}
