package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInvalidRequisitionState = errors.New("estado de requisición no permite la operación")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	// ErrStockExhausted indica que el consumo de lotes no alcanzó la cantidad
	// solicitada pese a haber pasado la validación previa. Si ocurre, la
	// validación o el bloqueo de filas están rotos: se aborta toda la operación.
	ErrStockExhausted = errors.New("stock agotado durante el consumo de lotes")
	// ErrInsufficientBatch indica un decremento mayor a la cantidad del lote.
	// El orquestador nunca debe llegar aquí; es un fallo de lógica, no de negocio.
	ErrInsufficientBatch = errors.New("cantidad insuficiente en el lote")
)

// InsufficientStockError detalla qué producto no alcanza el stock solicitado.
// La capa HTTP necesita el nombre del producto para informar al usuario.
type InsufficientStockError struct {
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: solicitado %d, disponible %d",
		e.ProductName, e.Requested, e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
