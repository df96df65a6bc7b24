package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgtransporte/suministros-api/internal/domain"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
	"github.com/dgtransporte/suministros-api/internal/domain/inventory"
)

func batch(id string, due string, qty int64, price float64) *entity.Batch {
	d, _ := time.Parse("2006-01-02", due)
	return &entity.Batch{
		ID:        id,
		ProductID: "prod-1",
		Due:       d,
		Quantity:  qty,
		Price:     decimal.NewFromFloat(price),
	}
}

func TestPlanConsumption_LoteMasProximoPrimero(t *testing.T) {
	// Tres lotes con vencimientos d1 < d2 < d3: consumir q1+1 debe dejar el
	// lote 1 en cero, el lote 2 con una unidad menos y el lote 3 intacto.
	batches := []*entity.Batch{
		batch("b3", "2025-03-01", 4, 15),
		batch("b1", "2025-01-01", 5, 10),
		batch("b2", "2025-02-01", 6, 12),
	}

	plan, err := inventory.PlanConsumption(batches, 6)
	require.NoError(t, err)

	require.Len(t, plan.Takes, 2)
	assert.Equal(t, "b1", plan.Takes[0].BatchID)
	assert.Equal(t, int64(5), plan.Takes[0].Quantity)
	assert.Equal(t, int64(0), plan.Takes[0].Remaining)
	assert.Equal(t, "b2", plan.Takes[1].BatchID)
	assert.Equal(t, int64(1), plan.Takes[1].Quantity)
	assert.Equal(t, int64(5), plan.Takes[1].Remaining)
}

func TestPlanConsumption_CostoPonderadoPorLote(t *testing.T) {
	// Escenario de referencia: 5 @ 10 + 2 @ 12 = 74 para 7 unidades.
	batches := []*entity.Batch{
		batch("b1", "2025-01-01", 5, 10),
		batch("b2", "2025-02-01", 5, 12),
	}

	plan, err := inventory.PlanConsumption(batches, 7)
	require.NoError(t, err)

	assert.True(t, plan.TotalCost.Equal(decimal.NewFromInt(74)),
		"costo esperado 74, obtenido %s", plan.TotalCost)
	require.Len(t, plan.Takes, 2)
	assert.Equal(t, int64(0), plan.Takes[0].Remaining)
	assert.Equal(t, int64(3), plan.Takes[1].Remaining)
}

func TestPlanConsumption_DesempatePorID(t *testing.T) {
	// Mismo vencimiento: el orden lo decide el ID ascendente, siempre igual.
	batches := []*entity.Batch{
		batch("b2", "2025-01-01", 3, 20),
		batch("b1", "2025-01-01", 3, 10),
	}

	plan, err := inventory.PlanConsumption(batches, 4)
	require.NoError(t, err)

	require.Len(t, plan.Takes, 2)
	assert.Equal(t, "b1", plan.Takes[0].BatchID)
	assert.Equal(t, "b2", plan.Takes[1].BatchID)
	assert.True(t, plan.TotalCost.Equal(decimal.NewFromInt(50)))
}

func TestPlanConsumption_IgnoraLotesEnCero(t *testing.T) {
	batches := []*entity.Batch{
		batch("b1", "2025-01-01", 0, 10), // agotado, solo histórico
		batch("b2", "2025-02-01", 5, 12),
	}

	plan, err := inventory.PlanConsumption(batches, 3)
	require.NoError(t, err)

	require.Len(t, plan.Takes, 1)
	assert.Equal(t, "b2", plan.Takes[0].BatchID)
}

func TestPlanConsumption_StockAgotado(t *testing.T) {
	batches := []*entity.Batch{
		batch("b1", "2025-01-01", 4, 10),
	}

	_, err := inventory.PlanConsumption(batches, 7)
	assert.ErrorIs(t, err, domain.ErrStockExhausted)
}

func TestPlanConsumption_SinLotes(t *testing.T) {
	_, err := inventory.PlanConsumption(nil, 1)
	assert.ErrorIs(t, err, domain.ErrStockExhausted)
}

func TestPlanConsumption_CantidadInvalida(t *testing.T) {
	_, err := inventory.PlanConsumption(nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.PlanConsumption(nil, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlanConsumption_NoMutaLosLotes(t *testing.T) {
	// El plan es solo lectura: los decrementos los aplica el llamador en su tx.
	batches := []*entity.Batch{
		batch("b1", "2025-01-01", 5, 10),
	}

	_, err := inventory.PlanConsumption(batches, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), batches[0].Quantity)
}

func TestTotalStock(t *testing.T) {
	assert.Equal(t, int64(0), inventory.TotalStock(nil))
	assert.Equal(t, int64(9), inventory.TotalStock([]*entity.Batch{
		batch("b1", "2025-01-01", 5, 10),
		batch("b2", "2025-02-01", 4, 12),
	}))
}

func TestSortBatches_NoMutaElOriginal(t *testing.T) {
	original := []*entity.Batch{
		batch("b2", "2025-02-01", 1, 1),
		batch("b1", "2025-01-01", 1, 1),
	}

	sorted := inventory.SortBatches(original)

	assert.Equal(t, "b1", sorted[0].ID)
	assert.Equal(t, "b2", original[0].ID, "el slice original conserva su orden")
}
