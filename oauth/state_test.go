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
	"encoding/base64"
	"errors"
	"sync"
	"testing"
)

// fakeSession is an in-memory Session with injectable failures.
type fakeSession struct {
	mu     sync.Mutex
	fields map[string]string

	getErr    error
	setErr    error
	deleteErr error
}

func newFakeSession() *fakeSession {
	return &fakeSession{fields: map[string]string{}}
}

func (s *fakeSession) Get(_ context.Context, field string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.fields[field], nil
}

func (s *fakeSession) SetIfAbsent(_ context.Context, field, value string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return "", s.setErr
	}
	if v, ok := s.fields[field]; ok {
		return v, nil
	}
	s.fields[field] = value
	return value, nil
}

func (s *fakeSession) Delete(_ context.Context, field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.fields, field)
	return nil
}

func TestNewStateShape(t *testing.T) {
	state, err := NewState(context.Background(), newFakeSession())
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(state)
	if err != nil {
		t.Fatalf("state %q is not base64url: %v", state, err)
	}
	if len(raw) != stateSize {
		t.Errorf("state entropy = %d bytes, want %d", len(raw), stateSize)
	}
}

func TestNewStateReusedWhilePending(t *testing.T) {
	sess := newFakeSession()
	ctx := context.Background()

	first, err := NewState(ctx, sess)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	second, err := NewState(ctx, sess)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if first != second {
		t.Errorf("pending state changed between calls: %q then %q", first, second)
	}
}

func TestConsumeStateAcceptsOnce(t *testing.T) {
	sess := newFakeSession()
	ctx := context.Background()

	state, err := NewState(ctx, sess)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if err := ConsumeState(ctx, sess, state); err != nil {
		t.Fatalf("ConsumeState with the right state: %v", err)
	}
	if err := ConsumeState(ctx, sess, state); !errors.Is(err, ErrStateMismatch) {
		t.Errorf("replayed state err = %v, want ErrStateMismatch", err)
	}
}

func TestConsumeStateBurnsOnMismatch(t *testing.T) {
	sess := newFakeSession()
	ctx := context.Background()

	state, err := NewState(ctx, sess)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if err := ConsumeState(ctx, sess, "forged"); !errors.Is(err, ErrStateMismatch) {
		t.Fatalf("forged state err = %v, want ErrStateMismatch", err)
	}
	// The wrong guess consumed the attempt; the right value is dead too.
	if err := ConsumeState(ctx, sess, state); !errors.Is(err, ErrStateMismatch) {
		t.Errorf("state after a wrong guess err = %v, want ErrStateMismatch", err)
	}
}

func TestConsumeStateRejections(t *testing.T) {
	ctx := context.Background()
	var tests = []struct {
		name     string
		received string
	}{
		{name: "no pending state", received: "anything"},
		{name: "empty received", received: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newFakeSession()
			if tt.received == "" {
				if _, err := NewState(ctx, sess); err != nil {
					t.Fatalf("NewState: %v", err)
				}
			}
			if err := ConsumeState(ctx, sess, tt.received); !errors.Is(err, ErrStateMismatch) {
				t.Errorf("ConsumeState err = %v, want ErrStateMismatch", err)
			}
		})
	}
}

func TestStateFreshAfterConsume(t *testing.T) {
	sess := newFakeSession()
	ctx := context.Background()

	first, err := NewState(ctx, sess)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if err := ConsumeState(ctx, sess, first); err != nil {
		t.Fatalf("ConsumeState: %v", err)
	}
	second, err := NewState(ctx, sess)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if second == first {
		t.Error("state reused across authorization attempts")
	}
}

func TestStateStoreFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("store down")

	sess := newFakeSession()
	sess.setErr = boom
	if _, err := NewState(ctx, sess); !errors.Is(err, boom) {
		t.Errorf("NewState with failing store err = %v, want wrapped %v", err, boom)
	}

	sess = newFakeSession()
	if _, err := NewState(ctx, sess); err != nil {
		t.Fatalf("NewState: %v", err)
	}
	sess.getErr = boom
	err := ConsumeState(ctx, sess, "x")
	if !errors.Is(err, boom) {
		t.Errorf("ConsumeState with failing read err = %v, want wrapped %v", err, boom)
	}
	if errors.Is(err, ErrStateMismatch) {
		t.Error("store failure reported as a state mismatch")
	}

	sess = newFakeSession()
	state, err := NewState(ctx, sess)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	sess.deleteErr = boom
	if err := ConsumeState(ctx, sess, state); !errors.Is(err, boom) {
		t.Errorf("ConsumeState with failing delete err = %v, want wrapped %v", err, boom)
	}
}

func TestNewStateConcurrent(t *testing.T) {
	sess := newFakeSession()
	ctx := context.Background()

	const workers = 16
	var (
		start = make(chan struct{})
		wg    sync.WaitGroup
		mu    sync.Mutex
		seen  = map[string]int{}
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			state, err := NewState(ctx, sess)
			if err != nil {
				t.Errorf("NewState: %v", err)
				return
			}
			mu.Lock()
			seen[state]++
			mu.Unlock()
		}()
	}
	close(start)
	wg.Wait()

	if len(seen) != 1 {
		t.Fatalf("concurrent NewState produced %d distinct states, want 1", len(seen))
	}
	for state := range seen {
		if stored := sess.fields[StateKey]; stored != state {
			t.Errorf("stored state %q differs from the one handed out %q", stored, state)
		}
	}
}
