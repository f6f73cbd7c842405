package memcached

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bradfitz/gomemcache/memcache"
)

// client is the subset of *memcache.Client the store needs.
type client interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
}

// Store keeps preferences in memcached. Items never expire, but memcached may
// still evict them under memory pressure, so this backend suits shared caches
// and demos more than durable storage. Values are limited to the server's item
// size (1MB by default).
type Store struct {
	client client
}

// New connects to the given memcached hosts and checks they answer.
func New(hosts ...string) (*Store, error) {
	if len(hosts) == 0 {
		return nil, errors.New("no memcached hosts configured")
	}
	slog.Info("Connecting to memcached", "hosts", hosts)
	mc := memcache.New(hosts...)
	if err := mc.Ping(); err != nil {
		return nil, fmt.Errorf("ping memcached: %w", err)
	}
	return &Store{client: mc}, nil
}

func formatKey(namespace, key string) string {
	return namespace + ":" + key
}

func (s *Store) GetString(ctx context.Context, namespace, key string) (string, bool, error) {
	item, err := s.client.Get(formatKey(namespace, key))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("memcached get %s: %w", formatKey(namespace, key), err)
	}
	return string(item.Value), true, nil
}

func (s *Store) PutString(ctx context.Context, namespace, key, value string) error {
	err := s.client.Set(&memcache.Item{
		Key:   formatKey(namespace, key),
		Value: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("memcached set %s: %w", formatKey(namespace, key), err)
	}
	return nil
}
