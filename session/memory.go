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
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. It is meant for
// single-process deployments and tests; state is lost on restart and not
// shared between replicas.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memSession
	ttl      time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

type memSession struct {
	fields    map[string]string
	expiresAt time.Time // zero when the store has no TTL
}

// NewMemoryStore returns an empty MemoryStore. With ttl > 0 sessions
// expire that long after their last write and a background sweep reclaims
// them; call Close to stop the sweep. With ttl == 0 sessions live until
// Destroy.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*memSession),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.sweep()
	}
	return s
}

// Close stops the expiry sweep. It is safe to call more than once.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) sweep() {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-t.C:
			s.mu.Lock()
			for sid, sess := range s.sessions {
				if sess.expired(now) {
					delete(s.sessions, sid)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (ms *memSession) expired(now time.Time) bool {
	return !ms.expiresAt.IsZero() && now.After(ms.expiresAt)
}

// live returns the session for sid if it exists and has not expired.
// Callers must hold s.mu.
func (s *MemoryStore) live(sid string) *memSession {
	sess, ok := s.sessions[sid]
	if !ok {
		return nil
	}
	if sess.expired(time.Now()) {
		delete(s.sessions, sid)
		return nil
	}
	return sess
}

// writable returns the session for sid, creating it if needed, and
// refreshes its expiry. Callers must hold s.mu.
func (s *MemoryStore) writable(sid string) *memSession {
	sess := s.live(sid)
	if sess == nil {
		sess = &memSession{fields: make(map[string]string)}
		s.sessions[sid] = sess
	}
	if s.ttl > 0 {
		sess.expiresAt = time.Now().Add(s.ttl)
	}
	return sess
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, sid, field string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.live(sid)
	if sess == nil {
		return "", ErrNoValue
	}
	v, ok := sess.fields[field]
	if !ok {
		return "", ErrNoValue
	}
	return v, nil
}

// Set implements Store.
func (s *MemoryStore) Set(ctx context.Context, sid, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writable(sid).fields[field] = value
	return nil
}

// SetIfAbsent implements Store. First write wins under the store lock;
// every caller gets the winning value back.
func (s *MemoryStore) SetIfAbsent(ctx context.Context, sid, field, value string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.writable(sid)
	if v, ok := sess.fields[field]; ok {
		return v, nil
	}
	sess.fields[field] = value
	return value, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, sid, field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.live(sid); sess != nil {
		delete(sess.fields, field)
	}
	return nil
}

// Destroy implements Store.
func (s *MemoryStore) Destroy(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
