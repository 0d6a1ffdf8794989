package catalog

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/thinkcraftlab/studio/internal/logging"
)

const productsKey = "products"

// RedisCache stores products in a sorted set scored by product id.
type RedisCache struct {
	RDB *redis.Client
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (r *RedisCache) Count(ctx context.Context) (int64, error) {
	return r.RDB.ZCard(ctx, productsKey).Result()
}

func (r *RedisCache) Range(ctx context.Context, offset, limit int) ([]Product, error) {
	members, err := r.RDB.ZRange(ctx, productsKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(members))
	for _, m := range members {
		var p Product
		if err := json.Unmarshal([]byte(m), &p); err != nil {
			logging.FromContext(ctx).Warn("catalog_cache_decode_failed", "error", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *RedisCache) Fill(ctx context.Context, items []Product) error {
	members := make([]redis.Z, 0, len(items))
	for _, p := range items {
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}
		members = append(members, redis.Z{Score: float64(p.ID), Member: b})
	}

	_, err := r.RDB.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, productsKey)
		if len(members) > 0 {
			pipe.ZAdd(ctx, productsKey, members...)
		}
		return nil
	})
	return err
}
