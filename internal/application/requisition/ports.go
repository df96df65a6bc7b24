package requisition

import (
	"context"

	"github.com/dgtransporte/suministros-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la validación de suficiencia,
// los decrementos de lotes, los asientos de salida y el cambio de estado de
// la requisición se confirmen o reviertan como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		reqRepo repository.RequisitionRepository,
		batchRepo repository.BatchRepository,
		outputRepo repository.OutputRepository,
	) error) error
}
