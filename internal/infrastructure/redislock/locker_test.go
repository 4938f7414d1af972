package redislock_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/redislock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const lockKey = "estoque:lock:tenant-1:p1"

type lockFixture struct {
	mr     *miniredis.Miniredis
	client *redis.Client
	logs   *bytes.Buffer
	locker *redislock.Locker
}

func newLockFixture(t *testing.T, ttl, timeout time.Duration) *lockFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	logs := &bytes.Buffer{}
	return &lockFixture{
		mr:     mr,
		client: client,
		logs:   logs,
		locker: redislock.New(client, ttl, timeout, zerolog.New(logs)),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Lock / unlock
// ──────────────────────────────────────────────────────────────────────────────

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redislock.Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	mr.Close()
	_, err = redislock.Connect(context.Background(), mr.Addr(), "", 0)
	assert.Error(t, err)
}

func TestLock_ExclusivoHastaLiberar(t *testing.T) {
	f := newLockFixture(t, 2*time.Second, 150*time.Millisecond)
	ctx := context.Background()

	unlock, err := f.locker.Lock(ctx, "tenant-1", "p1")
	require.NoError(t, err)
	assert.True(t, f.mr.Exists(lockKey))
	assert.Equal(t, 2*time.Second, f.mr.TTL(lockKey))

	_, err = f.locker.Lock(ctx, "tenant-1", "p1")
	assert.ErrorIs(t, err, domain.ErrLockTimeout)

	// otro tenant, otra clave
	unlockOther, err := f.locker.Lock(ctx, "tenant-2", "p1")
	require.NoError(t, err)
	unlockOther()

	unlock()
	unlock() // idempotente
	assert.False(t, f.mr.Exists(lockKey))

	unlock2, err := f.locker.Lock(ctx, "tenant-1", "p1")
	require.NoError(t, err)
	unlock2()
	assert.Empty(t, f.logs.String())
}

func TestLock_EsperaHastaQueSeLibere(t *testing.T) {
	f := newLockFixture(t, 2*time.Second, time.Second)
	ctx := context.Background()

	unlock, err := f.locker.Lock(ctx, "tenant-1", "p1")
	require.NoError(t, err)
	go func() {
		time.Sleep(100 * time.Millisecond)
		unlock()
	}()

	unlock2, err := f.locker.Lock(ctx, "tenant-1", "p1")
	require.NoError(t, err)
	unlock2()
}

func TestLock_RespetaCancelacionDelContexto(t *testing.T) {
	f := newLockFixture(t, 2*time.Second, 0)

	unlock, err := f.locker.Lock(context.Background(), "tenant-1", "p1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = f.locker.Lock(ctx, "tenant-1", "p1")
	assert.ErrorIs(t, err, domain.ErrLockTimeout)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vencimiento y liberación por token
// ──────────────────────────────────────────────────────────────────────────────

func TestLock_ClaveVencidaNoBorraLaDelSiguiente(t *testing.T) {
	f := newLockFixture(t, time.Second, 150*time.Millisecond)
	ctx := context.Background()

	unlockViejo, err := f.locker.Lock(ctx, "tenant-1", "p1")
	require.NoError(t, err)

	f.mr.FastForward(2 * time.Second)
	require.False(t, f.mr.Exists(lockKey), "la clave vence con su TTL")

	unlockNuevo, err := f.locker.Lock(ctx, "tenant-1", "p1")
	require.NoError(t, err)
	nuevoToken, err := f.mr.Get(lockKey)
	require.NoError(t, err)

	unlockViejo()
	got, err := f.mr.Get(lockKey)
	require.NoError(t, err, "el dueño anterior no debe borrar la clave ajena")
	assert.Equal(t, nuevoToken, got)
	assert.Contains(t, f.logs.String(), "el candado venció antes de liberarse")

	unlockNuevo()
	assert.False(t, f.mr.Exists(lockKey))
}

func TestUnlock_FalloDeRedisQuedaRegistrado(t *testing.T) {
	f := newLockFixture(t, 2*time.Second, 150*time.Millisecond)

	unlock, err := f.locker.Lock(context.Background(), "tenant-1", "p1")
	require.NoError(t, err)

	f.mr.Close()
	unlock()

	out := f.logs.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, "redis: liberar candado")
	assert.Contains(t, out, lockKey)
}

func TestLock_ErrorDeRedisEsPersistencia(t *testing.T) {
	f := newLockFixture(t, 2*time.Second, 150*time.Millisecond)
	f.mr.SetError("LOADING Redis is loading the dataset in memory")

	_, err := f.locker.Lock(context.Background(), "tenant-1", "p1")
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
