package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrProcessing   = errors.New("error al procesar el archivo")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores de stock: ambos son NotFound para el cliente (404).
var (
	ErrSocksNotFound     = &NotFoundError{Message: "no hay calcetines en el almacén"}
	ErrInsufficientStock = &NotFoundError{Message: "stock insuficiente en el almacén"}
)

// ArgumentError entrada inválida del cliente. Field indica el primer parámetro que falló.
type ArgumentError struct {
	Field   string
	Message string
}

// NewArgumentError construye un ArgumentError.
func NewArgumentError(field, message string) *ArgumentError {
	return &ArgumentError{Field: field, Message: message}
}

func (e *ArgumentError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidInput }

// NotFoundError no existe el registro buscado o no alcanza el stock.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ProcessingError envuelve el primer fallo de una carga masiva (CSV).
// Row es 1-based; 0 cuando el fallo no pertenece a una fila (lectura del archivo).
type ProcessingError struct {
	Row  int
	Line string
	Err  error
}

func (e *ProcessingError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("error al procesar el archivo (fila %d): %v", e.Row, e.Err)
	}
	return fmt.Sprintf("error al procesar el archivo: %v", e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrProcessing) sin perder la causa original.
func (e *ProcessingError) Is(target error) bool { return target == ErrProcessing }
