package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"store-pickup/internal/domain/cart"
	"store-pickup/internal/infra"
	"store-pickup/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const maxSaveAttempts = 3

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type RedisCartStore struct {
	client *redis.Client
	cfg    config.RedisConfig
}

func NewRedisCartStore(client *redis.Client, cfg config.RedisConfig) *RedisCartStore {
	return &RedisCartStore{client: client, cfg: cfg}
}

// Load returns an empty cart when none is stored.
func (s *RedisCartStore) Load(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	snap, err := s.get(ctx, s.client, cartKey(userID))
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return cart.NewCart(userID), nil
	}
	return cart.Restore(*snap), nil
}

// Save writes the cart only if the stored copy carries an older sequence.
// A newer or equal stored sequence means another writer got there first.
func (s *RedisCartStore) Save(ctx context.Context, c *cart.Cart) error {
	key := cartKey(c.UserID())
	snap := c.Snapshot()

	data, err := json.Marshal(snap)
	if err != nil {
		return infra.WrapRepoErr("failed to encode cart", err)
	}

	txf := func(tx *redis.Tx) error {
		stored, err := s.get(ctx, tx, key)
		if err != nil {
			return err
		}
		if stored != nil && stored.Seq >= snap.Seq {
			return infra.WrapRepoErr(
				fmt.Sprintf("stale cart write: stored seq %d, new seq %d", stored.Seq, snap.Seq),
				nil, infra.KindConflict)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.cfg.CartTTL)
			return nil
		})
		return err
	}

	for range maxSaveAttempts {
		err = s.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if errors.Is(err, redis.TxFailedErr) {
		return infra.WrapRepoErr("cart changed during save", err, infra.KindConflict)
	}
	if err != nil {
		var repoErr infra.RepositoryError
		if errors.As(err, &repoErr) {
			return err
		}
		return infra.WrapRepoErr("redis cart save failed", err)
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return infra.WrapRepoErr("redis cart delete failed", err)
	}
	return nil
}

func (s *RedisCartStore) get(ctx context.Context, c getter, key string) (*cart.Snapshot, error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, infra.WrapRepoErr("redis cart get failed", err)
	}

	var snap cart.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, infra.WrapRepoErr("failed to decode cart", err)
	}
	return &snap, nil
}

func cartKey(userID uuid.UUID) string {
	return "cart:" + userID.String()
}
