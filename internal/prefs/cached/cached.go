// Package cached wraps a prefs.Store with a read-through LRU cache. Writes go
// to the underlying store first and refresh the cache only on success.
// Concurrent misses for the same key share a single backend read.
package cached

import (
	"context"

	"golang.org/x/sync/singleflight"

	"gastos/internal/cache"
	"gastos/internal/prefs"
)

type Store struct {
	next  prefs.Store
	cache cache.Cache[string]
	group singleflight.Group
}

var _ prefs.Store = (*Store)(nil)

func New(next prefs.Store, c cache.Cache[string]) *Store {
	return &Store{next: next, cache: c}
}

func cacheKey(namespace, key string) string {
	return namespace + "\x00" + key
}

func (s *Store) GetString(ctx context.Context, namespace, key string) (string, bool, error) {
	ck := cacheKey(namespace, key)
	if v, ok := s.cache.Get(ck); ok {
		return v, true, nil
	}

	type result struct {
		value string
		ok    bool
	}
	res, err, _ := s.group.Do(ck, func() (any, error) {
		v, ok, err := s.next.GetString(ctx, namespace, key)
		if err != nil {
			return nil, err
		}
		if ok {
			s.cache.Set(ck, v)
		}
		return result{value: v, ok: ok}, nil
	})
	if err != nil {
		return "", false, err
	}
	r := res.(result)
	return r.value, r.ok, nil
}

func (s *Store) PutString(ctx context.Context, namespace, key, value string) error {
	ck := cacheKey(namespace, key)
	if err := s.next.PutString(ctx, namespace, key, value); err != nil {
		s.cache.Delete(ck)
		return err
	}
	s.cache.Set(ck, value)
	return nil
}
