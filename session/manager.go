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
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultCookieName is the session cookie name used when Config leaves it
// empty.
const DefaultCookieName = "session_id"

// Config carries Manager settings. The zero value is usable.
type Config struct {
	// CookieName overrides DefaultCookieName.
	CookieName string
	// TTL bounds the session lifetime. Zero means a browser-session
	// cookie and no store-side expiry hint.
	TTL time.Duration
	// Insecure drops the cookie's Secure flag so the session works over
	// plain HTTP. Development only.
	Insecure bool
}

// Manager issues and resolves session cookies backed by a Store.
//
// Session IDs are random UUIDs; the cookie is HttpOnly, Secure and
// SameSite=Strict so it is unreadable from scripts and not attached to
// cross-site requests.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	insecure   bool
}

// NewManager returns a Manager over store.
func NewManager(store Store, cfg Config) *Manager {
	name := cfg.CookieName
	if name == "" {
		name = DefaultCookieName
	}
	return &Manager{
		store:      store,
		cookieName: name,
		ttl:        cfg.TTL,
		insecure:   cfg.Insecure,
	}
}

// Lookup resolves the request's session from its cookie. It returns
// ErrNoSession when the cookie is missing or its value is not a session
// ID this Manager could have minted. Lookup does not touch the store; a
// session with no stored fields resolves like any other.
func (m *Manager) Lookup(r *http.Request) (*Session, error) {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, ErrNoSession
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return nil, ErrNoSession
	}
	return &Session{id: c.Value, store: m.store}, nil
}

// Start returns the request's session, minting a fresh one (and setting
// its cookie on w) if the request has none.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if s, err := m.Lookup(r); err == nil {
		return s, nil
	}
	return m.mint(w)
}

// Renew destroys the request's current session, if any, and mints a fresh
// one. Call it whenever the privilege level changes, login above all:
// together with the fresh session ID this discards every field bound
// before authentication, anti-forgery tokens included, so nothing minted
// pre-login is honored after it.
func (m *Manager) Renew(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if old, err := m.Lookup(r); err == nil {
		if err := m.store.Destroy(r.Context(), old.id); err != nil {
			return nil, fmt.Errorf("session: destroying old session: %w", err)
		}
	}
	return m.mint(w)
}

// Destroy removes the request's session from the store and expires its
// cookie. Destroying a request without a session is a no-op.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	s, err := m.Lookup(r)
	if err != nil {
		return nil
	}
	if err := m.store.Destroy(r.Context(), s.id); err != nil {
		return fmt.Errorf("session: destroying session: %w", err)
	}
	m.setCookie(w, "", -1)
	return nil
}

func (m *Manager) mint(w http.ResponseWriter) (*Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("session: generating session ID: %v", err)
	}
	sid := id.String()
	maxAge := 0
	if m.ttl > 0 {
		maxAge = int(m.ttl / time.Second)
	}
	m.setCookie(w, sid, maxAge)
	return &Session{id: sid, store: m.store}, nil
}

func (m *Manager) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   !m.insecure,
		SameSite: http.SameSiteStrictMode,
	})
}
