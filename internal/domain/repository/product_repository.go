package repository

import (
	"context"

	"github.com/jhoicas/pos-stock/internal/domain/entity"
)

// ProductRepository puerto de consulta de productos usado para validar referencias.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
