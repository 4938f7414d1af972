// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory y en los tests de casos de uso.
//
// Una transacción toma el candado global durante toda su duración y trabaja sobre
// una copia de respaldo: si fn falla se restaura la copia (Rollback).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner   = (*Store)(nil)
	_ auth.AccountTxRunner = (*Store)(nil)
)

// Store datos de todos los tenants protegidos por un único mutex.
type Store struct {
	mu sync.Mutex
	d  *data
}

type data struct {
	products    map[string]entity.Product
	movements   []entity.StockMovement
	categories  map[string]entity.Category
	suppliers   map[string]entity.Supplier
	users       map[string]entity.User
	settings    map[string]entity.ClientSettings
	invitations map[string]entity.Invitation
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{d: &data{
		products:    make(map[string]entity.Product),
		categories:  make(map[string]entity.Category),
		suppliers:   make(map[string]entity.Supplier),
		users:       make(map[string]entity.User),
		settings:    make(map[string]entity.ClientSettings),
		invitations: make(map[string]entity.Invitation),
	}}
}

func (d *data) clone() *data {
	c := &data{
		products:    make(map[string]entity.Product, len(d.products)),
		movements:   make([]entity.StockMovement, len(d.movements)),
		categories:  make(map[string]entity.Category, len(d.categories)),
		suppliers:   make(map[string]entity.Supplier, len(d.suppliers)),
		users:       make(map[string]entity.User, len(d.users)),
		settings:    make(map[string]entity.ClientSettings, len(d.settings)),
		invitations: make(map[string]entity.Invitation, len(d.invitations)),
	}
	copy(c.movements, d.movements)
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.categories {
		c.categories[k] = v
	}
	for k, v := range d.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.settings {
		c.settings[k] = v
	}
	for k, v := range d.invitations {
		c.invitations[k] = v
	}
	return c
}

// conn distingue repos sueltos (toman el candado por operación) de repos atados a una tx
// (el candado ya lo tiene Run).
type conn struct {
	s  *Store
	tx bool
}

func (c conn) with(fn func(d *data) error) error {
	if !c.tx {
		c.s.mu.Lock()
		defer c.s.mu.Unlock()
	}
	return fn(c.s.d)
}

// inTx ejecuta fn con el candado tomado y restaura el respaldo si falla.
func (s *Store) inTx(ctx context.Context, fn func(c conn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.d.clone()
	if err := fn(conn{s: s, tx: true}); err != nil {
		s.d = backup
		return err
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.inTx(ctx, func(c conn) error {
		return fn(&StockMovementRepo{c: c}, &ProductRepo{c: c})
	})
}

// RunAccount implementa auth.AccountTxRunner.
func (s *Store) RunAccount(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	settingsRepo repository.ClientSettingsRepository,
	invitationRepo repository.InvitationRepository,
) error) error {
	return s.inTx(ctx, func(c conn) error {
		return fn(&UserRepo{c: c}, &ClientSettingsRepo{c: c}, &InvitationRepo{c: c})
	})
}

func (s *Store) auto() conn { return conn{s: s} }

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
