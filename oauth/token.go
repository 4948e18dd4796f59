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

package oauth

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// expirySkew is subtracted from a token's lifetime when judging
// validity, so a token about to lapse is refreshed before an in-flight
// request can race the deadline.
const expirySkew = 10 * time.Second

// Token is a token endpoint response plus the absolute expiry computed
// when it was received.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`
	IDToken      string `json:"id_token,omitempty"`

	Expiry time.Time `json:"-"`
}

// Valid reports whether t carries an access token that is not within
// expirySkew of its expiry. A zero Expiry means the lifetime is
// unknown and the token is taken at its word.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	if t.Expiry.IsZero() {
		return true
	}
	return time.Now().Add(expirySkew).Before(t.Expiry)
}

// SetAuthHeader writes t as the request's Authorization header. An
// empty TokenType means Bearer.
func (t *Token) SetAuthHeader(r *http.Request) {
	typ := t.TokenType
	if typ == "" {
		typ = "Bearer"
	}
	r.Header.Set("Authorization", typ+" "+t.AccessToken)
}

// Source hands out a valid token, redeeming the refresh token through
// the config when the cached one goes stale. It is safe for concurrent
// use; concurrent callers over a stale token trigger one refresh.
type Source struct {
	cfg *Config

	mu  sync.Mutex
	tok *Token
}

// NewSource returns a Source seeded with tok, which may be nil if only
// a refresh-capable token arrives later via a first failed Token call.
func NewSource(cfg *Config, tok *Token) *Source {
	return &Source{cfg: cfg, tok: tok}
}

// Token returns the cached token while it is valid, otherwise refreshes
// it. Servers that rotate refresh tokens replace the stored one; servers
// that omit the field keep the old one alive.
func (s *Source) Token(ctx context.Context) (*Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tok.Valid() {
		return s.tok, nil
	}
	if s.tok == nil || s.tok.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}
	fresh, err := s.cfg.Refresh(ctx, s.tok.RefreshToken)
	if err != nil {
		return nil, err
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = s.tok.RefreshToken
	}
	s.tok = fresh
	return fresh, nil
}
