package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Is(t *testing.T) {
	err := Insufficient("faltan %d", 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "faltan 3", err.Error())

	dup := Duplicate("ya existe")
	assert.ErrorIs(t, dup, ErrDuplicate)
	assert.ErrorIs(t, dup, ErrInvalidInput)
}

func TestInfrastructure(t *testing.T) {
	assert.Nil(t, Infrastructure("op", nil))

	domainErr := NotFound("producto", "p1")
	assert.Same(t, domainErr, Infrastructure("op", domainErr))

	conflict := fmt.Errorf("%w: inventario", ErrConflict)
	assert.Equal(t, conflict, Infrastructure("op", conflict))

	cause := errors.New("connection reset")
	err := Infrastructure("get product", cause)
	assert.ErrorIs(t, err, ErrInfrastructure)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "get product: connection reset", err.Error())
}
