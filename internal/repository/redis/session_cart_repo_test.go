package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	r "github.com/redis/go-redis/v9"
	"github.com/sleek-tech/storefront-backend/internal/cfg"
	"github.com/sleek-tech/storefront-backend/internal/domain"
	"github.com/sleek-tech/storefront-backend/pkg/clients"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

func setupSessionRepo(t *testing.T) (*SessionCartRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := &clients.RedisClient{Client: r.NewClient(&r.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { client.Client.Close() })

	repo := NewSessionCartRepo(client, &cfg.RedisCfg{SessionTTL: time.Hour}, nopLogger{})
	return repo, mr
}

func TestSessionCartRepo_RoundTrip(t *testing.T) {
	repo, _ := setupSessionRepo(t)
	ctx := context.Background()

	lines := []domain.CartLine{
		{ProductID: 1, Quantity: 2, Snapshot: domain.ProductSnapshot{Name: "shirt", Price: 800, DiscountPrice: 800}},
	}

	require.NoError(t, repo.Set(ctx, "sess-1", lines))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestSessionCartRepo_MissingKeyIsEmptyCart(t *testing.T) {
	repo, _ := setupSessionRepo(t)

	got, err := repo.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSessionCartRepo_CorruptedValueIsEmptyCart(t *testing.T) {
	repo, mr := setupSessionRepo(t)

	require.NoError(t, mr.Set("cart:session:sess-1", "not json"))

	got, err := repo.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSessionCartRepo_SetRefreshesTTL(t *testing.T) {
	repo, mr := setupSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "sess-1", []domain.CartLine{{ProductID: 1, Quantity: 1}}))

	mr.FastForward(30 * time.Minute)
	require.NoError(t, repo.Set(ctx, "sess-1", []domain.CartLine{{ProductID: 1, Quantity: 2}}))
	mr.FastForward(45 * time.Minute)

	// Без продления сессия истекла бы через час после первой записи.
	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Quantity)
}

func TestSessionCartRepo_Delete(t *testing.T) {
	repo, _ := setupSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "sess-1", []domain.CartLine{{ProductID: 1, Quantity: 1}}))
	require.NoError(t, repo.Delete(ctx, "sess-1"))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
