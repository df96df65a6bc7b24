package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de salida de inventario.
const (
	OutputMotiveRequisition = "requisicion" // despacho de una requisición
	OutputMotiveManual      = "manual"      // baja manual (merma, ajuste, préstamo)
)

// Output es el asiento inmutable del libro de salidas: qué stock salió, cuándo,
// por qué y a qué costo. Se crea exactamente una vez por despacho de línea y
// nunca se actualiza. Junto con las entradas permite reconstruir el stock
// histórico de un producto sin releer el estado de los lotes.
type Output struct {
	ID              string
	ProductID       string
	RequisitionID   *string         // nil para salidas manuales
	Quantity        int64
	Price           decimal.Decimal // costo total de la línea, ponderado por los lotes consumidos
	CurrentQuantity int64           // stock restante del producto justo después de esta salida
	Observation     string
	Motive          string
	SystemUser      string
	Date            time.Time
}
