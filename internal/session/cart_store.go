package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CartStore persists the ephemeral cart of one session. Replace semantics:
// Save overwrites the whole sequence, Get returns an empty slice when
// nothing was saved, Delete drops it (logout).
type CartStore interface {
	Save(ctx context.Context, sid string, items []CartItem) error
	Get(ctx context.Context, sid string) ([]CartItem, error)
	Delete(ctx context.Context, sid string) error
}

// RedisCartStore keeps carts in Redis under cart:<sid> with a TTL so
// abandoned carts expire with their sessions.
type RedisCartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartStore(rdb *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{rdb: rdb, ttl: ttl}
}

func cartKey(sid string) string { return "cart:" + sid }

func (s *RedisCartStore) Save(ctx context.Context, sid string, items []CartItem) error {
	if items == nil {
		items = []CartItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(sid), payload, s.ttl).Err()
}

func (s *RedisCartStore) Get(ctx context.Context, sid string) ([]CartItem, error) {
	raw, err := s.rdb.Get(ctx, cartKey(sid)).Bytes()
	if err == redis.Nil {
		return []CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []CartItem{}
	}
	return items, nil
}

func (s *RedisCartStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, cartKey(sid)).Err()
}

// MemoryCartStore is the fallback when no Redis connection is available at
// startup. Carts then live for the life of the process only. Last write
// wins when two requests of the same session race, which matches the
// documented session semantics.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string][]CartItem
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string][]CartItem)}
}

func (s *MemoryCartStore) Save(_ context.Context, sid string, items []CartItem) error {
	cp := make([]CartItem, len(items))
	copy(cp, items)
	s.mu.Lock()
	s.carts[sid] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryCartStore) Get(_ context.Context, sid string) ([]CartItem, error) {
	s.mu.RLock()
	items, ok := s.carts[sid]
	s.mu.RUnlock()
	if !ok {
		return []CartItem{}, nil
	}
	cp := make([]CartItem, len(items))
	copy(cp, items)
	return cp, nil
}

func (s *MemoryCartStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	delete(s.carts, sid)
	s.mu.Unlock()
	return nil
}
