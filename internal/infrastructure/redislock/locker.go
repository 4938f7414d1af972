// Package redislock implementa inventory.ProductLocker sobre Redis (SET NX PX),
// para cuando varias instancias de la API comparten la misma base de datos.
package redislock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain"
)

var _ inventory.ProductLocker = (*Locker)(nil)

const retryInterval = 25 * time.Millisecond

// release borra la clave solo si el token sigue siendo el nuestro.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker candado distribuido por producto.
type Locker struct {
	client  redis.UniversalClient
	ttl     time.Duration
	timeout time.Duration
	prefix  string
	log     zerolog.Logger
}

// New construye el locker. ttl es la vida máxima de la clave si el proceso muere sin liberar;
// timeout la espera máxima por el candado (<= 0 espera lo que permita el ctx).
func New(client redis.UniversalClient, ttl, timeout time.Duration, log zerolog.Logger) *Locker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Locker{
		client:  client,
		ttl:     ttl,
		timeout: timeout,
		prefix:  "estoque:lock:",
		log:     log.With().Str("component", "redislock").Logger(),
	}
}

// Connect abre el cliente y verifica la conexión con PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return client, nil
}

// Lock reintenta SET NX hasta obtener la clave o hasta que venza el ctx/timeout.
func (l *Locker) Lock(ctx context.Context, tenantID, productID string) (func(), error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	key := l.prefix + tenantID + ":" + productID
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return nil, domain.WrapPersistence(fmt.Errorf("redis: SETNX %s: %w", key, err))
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrLockTimeout, ctx.Err())
		case <-ticker.C:
		}
	}

	unlocked := false
	return func() {
		if unlocked {
			return
		}
		unlocked = true
		// ctx propio: el de la petición puede estar cancelado al liberar
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		n, err := release.Run(rctx, l.client, []string{key}, token).Int()
		switch {
		case err != nil:
			// la clave queda hasta que venza su TTL
			l.log.Error().Err(err).Str("key", key).Dur("ttl", l.ttl).Msg("redis: liberar candado")
		case n == 0:
			l.log.Warn().Str("key", key).Dur("ttl", l.ttl).Msg("redis: el candado venció antes de liberarse")
		}
	}, nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("redis: token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
