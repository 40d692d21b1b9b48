package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInfrastructure    = errors.New("error de infraestructura")
)

// ValidationError error de validación con detalle legible. Siempre corregible por el caller.
// errors.Is(err, ErrInvalidInput) es verdadero; Kind permite distinguir duplicados o stock insuficiente.
type ValidationError struct {
	Kind error
	Msg  string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Is hace que el error coincida con ErrInvalidInput y con su Kind.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput || (e.Kind != nil && target == e.Kind)
}

// Invalid construye un error de validación.
func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Insufficient construye un error de stock insuficiente (también es de validación).
func Insufficient(format string, args ...any) error {
	return &ValidationError{Kind: ErrInsufficientStock, Msg: fmt.Sprintf(format, args...)}
}

// Duplicate construye un error de recurso duplicado (también es de validación).
func Duplicate(format string, args ...any) error {
	return &ValidationError{Kind: ErrDuplicate, Msg: fmt.Sprintf(format, args...)}
}

// NotFound indica que la referencia (producto, empleado, inventario) no existe.
func NotFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, what, id)
}

// InfrastructureError envuelve una falla del almacenamiento sin reintentar.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *InfrastructureError) Unwrap() error { return e.Err }

func (e *InfrastructureError) Is(target error) bool { return target == ErrInfrastructure }

// Infrastructure envuelve cause como error de infraestructura. Los errores de dominio pasan sin cambios.
func Infrastructure(op string, cause error) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, ErrInvalidInput) || errors.Is(cause, ErrNotFound) ||
		errors.Is(cause, ErrConflict) || errors.Is(cause, ErrInfrastructure) {
		return cause
	}
	return &InfrastructureError{Op: op, Err: cause}
}
