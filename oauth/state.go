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
	"errors"
	"fmt"

	"github.com/Ameya-bit/vulnerabilties-study/secret"
)

// StateKey is the session field the pending state parameter lives
// under.
const StateKey = "oauth_state"

// stateSize is the state entropy in bytes before encoding.
const stateSize = 32

// ErrStateMismatch is returned by ConsumeState when the callback's
// state is absent, unknown, already used, or simply wrong. Callers get
// one error for all of those; the distinction would only help an
// attacker probing the callback.
var ErrStateMismatch = errors.New("oauth: state mismatch")

// Session is the handle state binding needs. *session.Session satisfies
// it. Get must report an unset field as ("", nil) and SetIfAbsent must
// return the value bound after the call, with a single winner across
// concurrent callers.
type Session interface {
	Get(ctx context.Context, field string) (string, error)
	SetIfAbsent(ctx context.Context, field, value string) (string, error)
	Delete(ctx context.Context, field string) error
}

// NewState binds a fresh state parameter to the session and returns it.
// While an authorization attempt is pending, further calls return the
// same value, so parallel login tabs in one session agree on the state
// they expect back.
func NewState(ctx context.Context, s Session) (string, error) {
	candidate, err := randomURLString(stateSize)
	if err != nil {
		return "", fmt.Errorf("oauth: generating state: %w", err)
	}
	state, err := s.SetIfAbsent(ctx, StateKey, candidate)
	if err != nil {
		return "", fmt.Errorf("oauth: binding state: %w", err)
	}
	return state, nil
}

// ConsumeState checks the state echoed back on the callback against the
// one bound to the session, burning it either way. A state survives
// exactly one callback; retrying with the right value after a wrong
// guess fails too.
func ConsumeState(ctx context.Context, s Session, received string) error {
	stored, err := s.Get(ctx, StateKey)
	if err != nil {
		return fmt.Errorf("oauth: reading state: %w", err)
	}
	if stored == "" {
		return ErrStateMismatch
	}
	// Burn before comparing so a mismatch consumes the attempt too.
	if err := s.Delete(ctx, StateKey); err != nil {
		return fmt.Errorf("oauth: clearing state: %w", err)
	}
	if received == "" || !secret.Equal(stored, received) {
		return ErrStateMismatch
	}
	return nil
}
