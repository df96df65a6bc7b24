package inventory

import (
	"context"

	"github.com/dgtransporte/suministros-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de inventario atados a esa tx. Las entradas (cabecera + lotes)
// y las salidas manuales (decrementos + asiento) deben confirmarse como una
// sola unidad, con la misma disciplina de bloqueo que el despacho de
// requisiciones: los lotes solo se mutan con sus filas bloqueadas.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		entryRepo repository.EntryRepository,
		batchRepo repository.BatchRepository,
		outputRepo repository.OutputRepository,
	) error) error
}
