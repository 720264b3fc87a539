package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionPrefix = "auth:session"

// Store tracks live session ids so logout (and future admin actions
// like "sign everyone out") can revoke a token before its exp fires.
// The token itself stays stateless; only the jti is registered.
type Store interface {
	Save(ctx context.Context, userID uint, sessionID string, expiresAt time.Time) error
	Exists(ctx context.Context, userID uint, sessionID string) (bool, error)
	Delete(ctx context.Context, userID uint, sessionID string) error
}

// RedisStore keeps the session registry in Redis so it is shared across
// instances and survives restarts.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore constructs a Redis-backed session registry.
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultSessionPrefix
	}
	return &RedisStore{client: rdb, prefix: prefix}
}

func (s *RedisStore) key(userID uint, sessionID string) string {
	return fmt.Sprintf("%s:%d:%s", s.prefix, userID, sessionID)
}

// Save registers a session id with a TTL matching the token expiry, so
// the registry entry dies with the token.
func (s *RedisStore) Save(ctx context.Context, userID uint, sessionID string, expiresAt time.Time) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("redis client not configured")
	}
	if sessionID == "" {
		return fmt.Errorf("session id required")
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}

	return s.client.Set(ctx, s.key(userID, sessionID), "1", ttl).Err()
}

// Exists reports whether the session is still registered. A missing key
// means logged out or expired; the middleware treats both the same.
func (s *RedisStore) Exists(ctx context.Context, userID uint, sessionID string) (bool, error) {
	if s == nil || s.client == nil {
		return false, fmt.Errorf("redis client not configured")
	}
	if sessionID == "" {
		return false, nil
	}
	count, err := s.client.Exists(ctx, s.key(userID, sessionID)).Result()
	if err != nil {
		return false, err
	}
	return count == 1, nil
}

// Delete revokes a session. Used by logout.
func (s *RedisStore) Delete(ctx context.Context, userID uint, sessionID string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("redis client not configured")
	}
	if sessionID == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(userID, sessionID)).Err()
}

// MemoryStore is the in-process fallback used in tests and in
// deployments without Redis. Sessions vanish on restart, which for a
// single-instance dashboard is an acceptable degradation.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uint]map[string]time.Time
}

// NewMemoryStore constructs an empty in-process session registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[uint]map[string]time.Time)}
}

// Save registers a session id in memory.
func (s *MemoryStore) Save(_ context.Context, userID uint, sessionID string, expiresAt time.Time) error {
	if sessionID == "" {
		return fmt.Errorf("session id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[userID]; !ok {
		s.sessions[userID] = make(map[string]time.Time)
	}
	s.sessions[userID][sessionID] = expiresAt
	return nil
}

// Exists reports liveness and opportunistically clears expired entries
// so the map does not accumulate stale sessions.
func (s *MemoryStore) Exists(_ context.Context, userID uint, sessionID string) (bool, error) {
	s.mu.RLock()
	expiresAt, ok := s.sessions[userID][sessionID]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		_ = s.Delete(context.Background(), userID, sessionID)
		return false, nil
	}
	return true, nil
}

// Delete revokes a session, dropping the per-user bucket when it
// becomes empty.
func (s *MemoryStore) Delete(_ context.Context, userID uint, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bucket, ok := s.sessions[userID]; ok {
		delete(bucket, sessionID)
		if len(bucket) == 0 {
			delete(s.sessions, userID)
		}
	}
	return nil
}
