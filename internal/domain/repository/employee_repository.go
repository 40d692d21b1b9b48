package repository

import (
	"context"

	"github.com/jhoicas/pos-stock/internal/domain/entity"
)

// EmployeeRepository puerto de consulta de empleados (quien procesa un movimiento).
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
}
