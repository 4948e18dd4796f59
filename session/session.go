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

// Package session provides server-side sessions keyed by an opaque cookie.
//
// Session state lives entirely on the server, in a Store; the client only
// ever holds a random session ID. Two stores are provided: MemoryStore for
// single-process deployments and tests, and RedisStore for anything shared.
// The Manager handles the cookie plumbing and the session lifecycle
// (creation, renewal on privilege change, destruction on logout).
//
// Store.SetIfAbsent is the anchor of the package: it binds a field
// atomically so that concurrent writers settle on exactly one value. The
// csrf package relies on this to guarantee a single token per session.
package session

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoSession is returned by Manager.Lookup when the request carries no
// usable session cookie.
var ErrNoSession = errors.New("session: no session")

// ErrNoValue is returned by Store.Get when the field is not set, whether
// because it was never written, was deleted, or the whole session expired.
var ErrNoValue = errors.New("session: no value")

// Store persists per-session fields. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value bound under field in session sid, or
	// ErrNoValue if the field is unset.
	Get(ctx context.Context, sid, field string) (string, error)

	// Set binds value under field, replacing any previous value.
	Set(ctx context.Context, sid, field, value string) error

	// SetIfAbsent binds value under field only if the field is unset, and
	// returns the value bound after the call. When several callers race
	// on the same unset field, exactly one value wins and every caller
	// observes it.
	SetIfAbsent(ctx context.Context, sid, field, value string) (string, error)

	// Delete removes field from the session. Deleting an unset field is
	// not an error.
	Delete(ctx context.Context, sid, field string) error

	// Destroy removes the session and all its fields.
	Destroy(ctx context.Context, sid string) error
}

// Session is a handle on one session in a Store. Its Get reports an unset
// field as the empty string rather than an error, which is the shape the
// csrf and oauth packages consume.
type Session struct {
	id    string
	store Store
}

// ID returns the session ID, as carried by the cookie.
func (s *Session) ID() string {
	return s.id
}

// Get returns the value bound under field, or the empty string when the
// field is unset. A non-nil error means the store itself failed.
func (s *Session) Get(ctx context.Context, field string) (string, error) {
	v, err := s.store.Get(ctx, s.id, field)
	if errors.Is(err, ErrNoValue) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session %s: %w", s.id, err)
	}
	return v, nil
}

// Set binds value under field, replacing any previous value.
func (s *Session) Set(ctx context.Context, field, value string) error {
	return s.store.Set(ctx, s.id, field, value)
}

// SetIfAbsent binds value under field unless the field is already set,
// and returns the value bound after the call.
func (s *Session) SetIfAbsent(ctx context.Context, field, value string) (string, error) {
	return s.store.SetIfAbsent(ctx, s.id, field, value)
}

// Delete removes field from the session.
func (s *Session) Delete(ctx context.Context, field string) error {
	return s.store.Delete(ctx, s.id, field)
}
