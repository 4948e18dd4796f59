// Copyright 2026 Ameya-bit
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys in Redis.
const DefaultRedisPrefix = "sess:"

// RedisConfig carries RedisStore settings. The zero value is usable.
type RedisConfig struct {
	// Prefix overrides DefaultRedisPrefix.
	Prefix string
	// TTL expires a session that long after its last write. Zero means
	// sessions never expire on their own.
	TTL time.Duration
}

// RedisStore keeps each session as one Redis hash, so state survives
// restarts and is shared between replicas. The atomic bind of SetIfAbsent
// maps onto HSETNX, which keeps the single-winner guarantee across
// processes.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a RedisStore over client. The caller owns the
// client and its lifecycle.
func NewRedisStore(client *redis.Client, cfg RedisConfig) *RedisStore {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: cfg.TTL}
}

func (s *RedisStore) key(sid string) string {
	return s.prefix + sid
}

// touch refreshes the session TTL after a write.
func (s *RedisStore) touch(ctx context.Context, key string) error {
	if s.ttl <= 0 {
		return nil
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: redis expire: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, sid, field string) (string, error) {
	v, err := s.client.HGet(ctx, s.key(sid), field).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoValue
	}
	if err != nil {
		return "", fmt.Errorf("session: redis get: %w", err)
	}
	return v, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, sid, field, value string) error {
	key := s.key(sid)
	if err := s.client.HSet(ctx, key, field, value).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return s.touch(ctx, key)
}

// SetIfAbsent implements Store. HSETNX arbitrates the race; when another
// writer got there first the winning value is read back.
func (s *RedisStore) SetIfAbsent(ctx context.Context, sid, field, value string) (string, error) {
	key := s.key(sid)
	// The field can vanish between a lost HSETNX and the HGET if the
	// session is destroyed concurrently, so the read-back retries the
	// bind rather than failing.
	for attempt := 0; attempt < 3; attempt++ {
		set, err := s.client.HSetNX(ctx, key, field, value).Result()
		if err != nil {
			return "", fmt.Errorf("session: redis hsetnx: %w", err)
		}
		if set {
			if err := s.touch(ctx, key); err != nil {
				return "", err
			}
			return value, nil
		}
		v, err := s.client.HGet(ctx, key, field).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("session: redis get: %w", err)
		}
		return v, nil
	}
	return "", fmt.Errorf("session: redis bind for %s did not settle", field)
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, sid, field string) error {
	if err := s.client.HDel(ctx, s.key(sid), field).Err(); err != nil {
		return fmt.Errorf("session: redis del field: %w", err)
	}
	return nil
}

// Destroy implements Store.
func (s *RedisStore) Destroy(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}
