package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain"
)

var _ ProductLocker = (*KeyedLocker)(nil)

// KeyedLocker candado por producto dentro del proceso.
// Sirve cuando hay una sola instancia de la API; con varias usar el locker de Redis.
type KeyedLocker struct {
	mu      sync.Mutex
	locks   map[string]*keyedLock
	timeout time.Duration
}

type keyedLock struct {
	ch   chan struct{}
	refs int
}

// NewKeyedLocker construye el locker. timeout <= 0 espera lo que permita el ctx.
func NewKeyedLocker(timeout time.Duration) *KeyedLocker {
	return &KeyedLocker{locks: make(map[string]*keyedLock), timeout: timeout}
}

// Lock bloquea tenantID/productID. Devuelve ErrLockTimeout si el ctx vence esperando.
func (l *KeyedLocker) Lock(ctx context.Context, tenantID, productID string) (func(), error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	key := tenantID + "/" + productID

	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &keyedLock{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, fmt.Errorf("%w: %v", domain.ErrLockTimeout, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}

func (l *KeyedLocker) release(key string, e *keyedLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}
