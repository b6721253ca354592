package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los sentinels permiten
// errors.Is en los handlers; los tipos estructurados llevan el contexto que
// el caller necesita para armar un mensaje preciso sin inspeccionar internals.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidState      = errors.New("estado inválido para la operación")
	ErrMissingBOM        = errors.New("la orden no tiene snapshot de BOM")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// Shortage describe el requerimiento y la disponibilidad de un material en el
// pre-chequeo de consumo de una orden.
type Shortage struct {
	ProductID   string
	ProductName string
	SKU         string
	Required    int64
	Available   int64
}

// Short indica si el material efectivamente está en déficit.
func (s Shortage) Short() bool { return s.Available < s.Required }

// InsufficientStockError indica que el balance resultante sería negativo.
// Para consumo de órdenes, Detail trae requerimiento/disponibilidad de TODOS
// los componentes del snapshot (diagnóstico exhaustivo); ProductID, Available
// y Required siempre nombran el primer faltante.
type InsufficientStockError struct {
	ProductID string
	Available int64
	Required  int64
	Detail    []Shortage
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: requerido %d, disponible %d",
		e.ProductID, e.Required, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidStateError indica una transición de orden fuera del estado permitido.
type InvalidStateError struct {
	OrderID  string
	Current  string
	Expected string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("orden %s en estado %s, se esperaba %s", e.OrderID, e.Current, e.Expected)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// MissingBOMError indica que la orden no tiene snapshot de materiales.
type MissingBOMError struct {
	OrderID string
}

func (e *MissingBOMError) Error() string {
	return fmt.Sprintf("orden %s sin snapshot de BOM", e.OrderID)
}

func (e *MissingBOMError) Unwrap() error { return ErrMissingBOM }

// NotFoundError indica que un producto u orden referenciado no existe.
type NotFoundError struct {
	Kind string // "producto" | "orden"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError indica una entrada malformada (campo y motivo).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campo %s inválido: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
