package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dgtransporte/suministros-api/internal/domain"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
)

// BatchTake es el consumo planificado sobre un lote concreto.
type BatchTake struct {
	BatchID   string
	Quantity  int64           // unidades tomadas de este lote
	Price     decimal.Decimal // precio unitario del lote
	Remaining int64           // cantidad que queda en el lote tras el consumo
}

// ConsumptionPlan resultado de planificar el consumo de una cantidad
// contra los lotes de un producto: de qué lotes sale y a qué costo total.
type ConsumptionPlan struct {
	Takes     []BatchTake
	TotalCost decimal.Decimal // suma de cantidad*precio de cada toma
}

// CompareBatches define el orden de consumo: vencimiento ascendente (el que
// vence primero sale primero, para minimizar mermas) y, a igual vencimiento,
// ID ascendente para que el plan sea determinista.
func CompareBatches(a, b *entity.Batch) bool {
	if !a.Due.Equal(b.Due) {
		return a.Due.Before(b.Due)
	}
	return a.ID < b.ID
}

// SortBatches ordena una copia de los lotes según CompareBatches.
func SortBatches(batches []*entity.Batch) []*entity.Batch {
	sorted := make([]*entity.Batch, len(batches))
	copy(sorted, batches)
	sort.Slice(sorted, func(i, j int) bool {
		return CompareBatches(sorted[i], sorted[j])
	})
	return sorted
}

// TotalStock suma la cantidad restante de todos los lotes (0 si no hay lotes).
func TotalStock(batches []*entity.Batch) int64 {
	var total int64
	for _, b := range batches {
		total += b.Quantity
	}
	return total
}

// PlanConsumption recorre los lotes en orden de vencimiento y asigna la
// cantidad solicitada de forma voraz: toma min(lote, restante) de cada uno y
// acumula el costo al precio del lote consumido. No muta los lotes; devuelve
// el plan para que el llamador aplique los decrementos dentro de su transacción.
//
// Precondición del llamador: la suma de los lotes cubre requested (validado
// con las filas bloqueadas). Si aun así el recorrido no llega a cero,
// devuelve ErrStockExhausted y el despacho completo debe abortar.
func PlanConsumption(batches []*entity.Batch, requested int64) (*ConsumptionPlan, error) {
	if requested <= 0 {
		return nil, domain.ErrInvalidInput
	}

	plan := &ConsumptionPlan{TotalCost: decimal.Zero}
	remaining := requested

	for _, b := range SortBatches(batches) {
		if remaining == 0 {
			break
		}
		if b.Quantity <= 0 {
			continue // lote agotado, se conserva solo como histórico
		}
		take := b.Quantity
		if remaining < take {
			take = remaining
		}
		plan.Takes = append(plan.Takes, BatchTake{
			BatchID:   b.ID,
			Quantity:  take,
			Price:     b.Price,
			Remaining: b.Quantity - take,
		})
		plan.TotalCost = plan.TotalCost.Add(b.Price.Mul(decimal.NewFromInt(take)))
		remaining -= take
	}

	if remaining > 0 {
		return nil, domain.ErrStockExhausted
	}
	return plan, nil
}
