package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/supplychain-inventory/internal/domain"
)

func TestWrapErr_TraduceCodigosPostgres(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, wrapErr("create inventory", dup), domain.ErrDuplicate)

	ser := &pgconn.PgError{Code: "40001"}
	assert.ErrorIs(t, wrapErr("update inventory", ser), domain.ErrConflict)

	dead := &pgconn.PgError{Code: "40P01"}
	assert.ErrorIs(t, wrapErr("update inventory", dead), domain.ErrConflict)

	other := errors.New("conn reset")
	err := wrapErr("list inventory", other)
	assert.ErrorIs(t, err, other)
	assert.Contains(t, err.Error(), "list inventory")
}
