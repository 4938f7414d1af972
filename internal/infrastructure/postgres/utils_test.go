package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// invalidUUID lo que devuelve Postgres al comparar una columna uuid con "abc".
var invalidUUID = &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}

// failingQuerier responde a toda consulta con el mismo error.
type failingQuerier struct{ err error }

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func (q failingQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q failingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, q.err
}

func (q failingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{q.err}
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestIsInvalidTextYNoRow(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		invalidText bool
		noRow       bool
	}{
		{"uuid mal formado", invalidUUID, true, true},
		{"envuelto", fmt.Errorf("get product: %w", invalidUUID), true, true},
		{"sin filas", pgx.ErrNoRows, false, true},
		{"fk", &pgconn.PgError{Code: "23503"}, false, false},
		{"otro", errors.New("conexión cerrada"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.invalidText, isInvalidText(tt.err))
			assert.Equal(t, tt.noRow, noRow(tt.err))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ids mal formados en los repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_IDMalFormadoEsNoEncontrado(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(failingQuerier{invalidUUID})

	p, err := repo.GetByID(ctx, "tenant-1", "abc")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = repo.GetForUpdate(ctx, "tenant-1", "abc")
	require.NoError(t, err)
	assert.Nil(t, p)

	assert.ErrorIs(t, repo.Delete(ctx, "tenant-1", "abc"), domain.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateStock(ctx, "tenant-1", "abc", 1, decimal.Zero), domain.ErrNotFound)

	list, err := repo.List(ctx, "tenant-1", repository.ProductFilter{CategoryID: "abc"})
	require.NoError(t, err)
	assert.Empty(t, list)

	n, err := repo.Count(ctx, "tenant-1", repository.ProductFilter{CategoryID: "abc"})
	require.NoError(t, err)
	assert.Zero(t, n)

	cat := "abc"
	err = repo.Create(ctx, &entity.Product{ID: "p-1", TenantID: "tenant-1", CategoryID: &cat})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogYMovimientos_IDMalFormadoEsNoEncontrado(t *testing.T) {
	ctx := context.Background()
	q := failingQuerier{invalidUUID}

	cat, err := NewCategoryRepository(q).GetByID(ctx, "tenant-1", "abc")
	require.NoError(t, err)
	assert.Nil(t, cat)
	assert.ErrorIs(t, NewCategoryRepository(q).Delete(ctx, "tenant-1", "abc"), domain.ErrNotFound)

	sup, err := NewSupplierRepository(q).GetByID(ctx, "tenant-1", "abc")
	require.NoError(t, err)
	assert.Nil(t, sup)
	assert.ErrorIs(t, NewSupplierRepository(q).Delete(ctx, "tenant-1", "abc"), domain.ErrNotFound)

	m, err := NewStockMovementRepository(q).GetByID(ctx, "tenant-1", "abc")
	require.NoError(t, err)
	assert.Nil(t, m)

	hist, err := NewStockMovementRepository(q).List(ctx, "tenant-1", repository.MovementFilter{ProductID: "abc"})
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestUsuarios_IDMalFormadoEsNoEncontrado(t *testing.T) {
	ctx := context.Background()
	q := failingQuerier{invalidUUID}

	u, err := NewUserRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.ErrorIs(t, NewUserRepository(q).SetActive(ctx, "abc", false), domain.ErrNotFound)

	s, err := NewClientSettingsRepository(q).GetByUserID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, s)

	assert.ErrorIs(t, NewInvitationRepository(q).Delete(ctx, "abc"), domain.ErrNotFound)
}

func TestProductRepo_OtrosErroresSiguenSiendoFallos(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(failingQuerier{errors.New("conexión cerrada")})

	_, err := repo.GetByID(ctx, "tenant-1", "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	err = repo.Delete(ctx, "tenant-1", "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
