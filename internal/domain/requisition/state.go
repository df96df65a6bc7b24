package requisition

import (
	"github.com/dgtransporte/suministros-api/internal/domain"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
)

// transitions define las transiciones legales del ciclo de vida:
// PENDING_SUPERVISOR -> ACTIVE | CANCELLED; ACTIVE -> FINISHED | CANCELLED.
// FINISHED y CANCELLED son terminales: no hay salida de ellos.
var transitions = map[string][]string{
	entity.RequisitionStatePending: {entity.RequisitionStateActive, entity.RequisitionStateCancelled},
	entity.RequisitionStateActive:  {entity.RequisitionStateFinished, entity.RequisitionStateCancelled},
}

// CanTransition indica si el cambio de estado from -> to es legal.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func IsTerminal(state string) bool {
	return len(transitions[state]) == 0
}

// Transition valida y aplica el cambio de estado sobre la requisición.
// Devuelve ErrInvalidRequisitionState si la transición no es legal.
func Transition(r *entity.Requisition, to string) error {
	if !CanTransition(r.State, to) {
		return domain.ErrInvalidRequisitionState
	}
	r.State = to
	return nil
}
