package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned by Get for a missing key
var ErrNotFound = errors.New("key not found")

// common wrapper above a redis, values are stored as marshalled strings
type Client[V any] struct {
	rdb       *redis.Client
	marshal   func(V) (string, error)
	unmarshal func(string) (V, error)
}

func NewClient[V any](addr string,
	password string,
	db int,
	marshal func(V) (string, error),
	unmarshal func(string) (V, error)) *Client[V] {

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Client[V]{
		rdb:       rdb,
		marshal:   marshal,
		unmarshal: unmarshal,
	}
}

func (c *Client[V]) Set(ctx context.Context, key string, value V, expiration time.Duration) error {
	strValue, err := c.marshal(value)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key, strValue, expiration).Err(); err != nil {
		return err
	}
	log.Debug().Str("key", key).Int("bytes", len(strValue)).Msg("redis value stored")
	return nil
}

func (c *Client[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	strValue, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	return c.unmarshal(strValue)
}

func (c *Client[V]) Close() error {
	return c.rdb.Close()
}
