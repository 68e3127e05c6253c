//go:build unit

package cartstore

import (
	"context"
	"testing"
	"time"

	"store-pickup/internal/domain/cart"
	"store-pickup/internal/infra"
	"store-pickup/internal/pkg/config"
	"store-pickup/tests/common/builder"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCartStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCartStore(client, config.RedisConfig{CartTTL: time.Hour}), mr
}

func TestLoad_EmptyWhenMissing(t *testing.T) {
	store, _ := setupTestRedis(t)
	userID := uuid.New()

	c, err := store.Load(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, c.UserID())
	assert.True(t, c.IsEmpty())
	assert.Equal(t, uint64(0), c.Seq())
}

func TestSave_RoundTripWithTTL(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()
	userID := uuid.New()

	c := cart.NewCart(userID)
	require.NoError(t, c.AddItem(builder.NewProduct("Coffee", "2.00")))
	require.NoError(t, store.Save(ctx, c))

	assert.True(t, mr.Exists(cartKey(userID)))
	assert.Equal(t, time.Hour, mr.TTL(cartKey(userID)))

	loaded, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, c.Seq(), loaded.Seq())
	require.Len(t, loaded.Lines(), 1)
	assert.Equal(t, "Coffee", loaded.Lines()[0].Name)
	assert.Equal(t, "2", loaded.Lines()[0].UnitPrice.String())
}

func TestSave_RejectsStaleSequence(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()
	userID := uuid.New()

	first := cart.NewCart(userID)
	require.NoError(t, first.AddItem(builder.NewProduct("Coffee", "2.00")))
	require.NoError(t, store.Save(ctx, first))

	// two writers load the same version
	a, err := store.Load(ctx, userID)
	require.NoError(t, err)
	b, err := store.Load(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, a.AddItem(builder.NewProduct("Tea", "1.50")))
	require.NoError(t, store.Save(ctx, a))

	require.NoError(t, b.AddItem(builder.NewProduct("Donut", "1.00")))
	err = store.Save(ctx, b)
	assert.True(t, infra.IsKind(err, infra.KindConflict))

	loaded, err := store.Load(ctx, userID)
	require.NoError(t, err)
	_, hasTea := loaded.Line(a.Lines()[1].ProductID)
	assert.True(t, hasTea)
	assert.Len(t, loaded.Lines(), 2)
}

func TestGet_InvalidJSON(t *testing.T) {
	store, mr := setupTestRedis(t)
	userID := uuid.New()
	require.NoError(t, mr.Set(cartKey(userID), "{not json"))

	_, err := store.Load(context.Background(), userID)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}

func TestDelete(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()
	c := cart.NewCart(uuid.New())
	require.NoError(t, c.AddItem(builder.NewProduct("Coffee", "2.00")))
	require.NoError(t, store.Save(ctx, c))

	require.NoError(t, store.Delete(ctx, c.UserID()))
	assert.False(t, mr.Exists(cartKey(c.UserID())))
}
