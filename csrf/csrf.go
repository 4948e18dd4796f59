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

// Package csrf implements anti-forgery tokens bound to server-side
// sessions, and a Protection middleware that requires them on
// state-changing requests.
//
// The model is the classic synchronizer token: each session gets one
// unguessable token, stored only on the server and embedded into the
// forms the server renders (see the forminject package). A cross-site
// attacker can make a victim's browser send a request, but cannot read
// the victim's pages, so it cannot learn the token; any forged request
// arrives without it and is refused before the handler runs.
//
// The token lives for the whole session. Renewing the session at login
// (session.Manager.Renew) discards it along with everything else bound
// before authentication, so tokens minted pre-login are never honored
// after it.
//
// Issue is safe to call from concurrent request handlers: when several
// first issues race on one session, the session's atomic bind picks a
// single winner and every caller gets that token back. Forms rendered in
// parallel therefore always agree.
package csrf

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// SessionKey is the session field the token is bound under. The
	// token service reads and writes this field and no other.
	SessionKey = "csrf_token"

	// FormField is the form field a submitted token travels in.
	FormField = "csrf_token"

	// HeaderName is the request header consulted when the form field is
	// absent, for clients that send bodies the server does not parse as
	// forms.
	HeaderName = "X-CSRF-Token"

	// TokenSize is the entropy of a token in bytes.
	TokenSize = 32
)

// ErrNoToken is returned by Current when the session has no token bound.
var ErrNoToken = errors.New("csrf: no token bound to session")

// Session is the slice of a server-side session the token service needs.
// *session.Session implements it; any store with an atomic first-write
// can as well.
type Session interface {
	// Get returns the value bound under field, or the empty string when
	// the field is unset. A non-nil error means the lookup itself
	// failed.
	Get(ctx context.Context, field string) (string, error)

	// SetIfAbsent binds value under field unless the field is already
	// set, and returns the value bound after the call. Concurrent
	// callers on the same session must observe a single winner.
	SetIfAbsent(ctx context.Context, field, value string) (string, error)

	// Delete removes field from the session.
	Delete(ctx context.Context, field string) error
}

// Issue returns the session's anti-forgery token, minting and binding one
// if the session has none yet. Repeated calls return the same token, and
// concurrent calls settle on one: the returned value is always the bound
// one, not necessarily the one minted locally.
//
// An error means the session store failed or the system's entropy source
// is broken; neither can be fixed by the client, so callers should fail
// the request.
func Issue(ctx context.Context, s Session) (string, error) {
	if tok, err := s.Get(ctx, SessionKey); err != nil {
		return "", fmt.Errorf("csrf: loading token: %w", err)
	} else if tok != "" {
		return tok, nil
	}

	candidate, err := newToken()
	if err != nil {
		return "", err
	}
	tok, err := s.SetIfAbsent(ctx, SessionKey, candidate)
	if err != nil {
		return "", fmt.Errorf("csrf: binding token: %w", err)
	}
	return tok, nil
}

// Current returns the token bound to the session, or ErrNoToken if there
// is none. It never mints.
func Current(ctx context.Context, s Session) (string, error) {
	tok, err := s.Get(ctx, SessionKey)
	if err != nil {
		return "", fmt.Errorf("csrf: loading token: %w", err)
	}
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// Clear removes the token bound to the session, if any. The next Issue
// mints a fresh one.
func Clear(ctx context.Context, s Session) error {
	if err := s.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("csrf: clearing token: %w", err)
	}
	return nil
}

func newToken() (string, error) {
	buf := make([]byte, TokenSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("csrf: crypto/rand.Read: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
