package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInvalidReference  = errors.New("referencia inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError detalla los campos inválidos o faltantes de una entrada.
// Envuelve ErrInvalidInput para que errors.Is siga funcionando en los handlers.
type ValidationError struct {
	Reason string
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un error de validación sobre los campos dados.
func NewValidationError(reason string, fields ...string) *ValidationError {
	return &ValidationError{Reason: reason, Fields: fields}
}
