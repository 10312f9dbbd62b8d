// Package redisstore keeps the unlock marker set in Redis so several
// clients of the same user share it.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/pathwise/internal/store"
)

// maxAddAttempts bounds optimistic-lock retries in Add.
const maxAddAttempts = 5

// Markers is a marker set stored as a JSON array under store.MarkersKey.
type Markers struct {
	client *redis.Client
	key    string
}

// New connects to the Redis server at url and checks it is reachable.
// URL format: redis://[:password@]host:port/db
func New(url string) (*Markers, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client) *Markers {
	return &Markers{client: client, key: store.MarkersKey}
}

// Close closes the Redis connection.
func (m *Markers) Close() error {
	return m.client.Close()
}

// List returns every stored marker in insertion order.
func (m *Markers) List(ctx context.Context) ([]string, error) {
	return m.list(ctx, m.client)
}

func (m *Markers) list(ctx context.Context, c redis.Cmdable) ([]string, error) {
	raw, err := c.Get(ctx, m.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", m.key, err)
	}
	return store.DecodeMarkers(raw)
}

// Contains reports whether marker is stored.
func (m *Markers) Contains(ctx context.Context, marker string) (bool, error) {
	markers, err := m.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(markers, marker), nil
}

// Add stores marker unless it is already present. The read-modify-write
// runs under WATCH so a concurrent writer forces a retry.
func (m *Markers) Add(ctx context.Context, marker string) error {
	txf := func(tx *redis.Tx) error {
		markers, err := m.list(ctx, tx)
		if err != nil {
			return err
		}
		if slices.Contains(markers, marker) {
			return nil
		}
		raw, err := store.EncodeMarkers(append(markers, marker))
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, m.key, raw, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxAddAttempts; i++ {
		err := m.client.Watch(ctx, txf, m.key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("add %s: %w", marker, err)
		}
		return nil
	}
	return fmt.Errorf("add %s: %w", marker, redis.TxFailedErr)
}
