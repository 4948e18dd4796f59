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
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	if _, err := s.Get(ctx, "sid-1", "color"); !errors.Is(err, ErrNoValue) {
		t.Errorf("Get(unset session) got err %v, want ErrNoValue", err)
	}
	if err := s.Set(ctx, "sid-1", "color", "green"); err != nil {
		t.Fatalf("Set() got err: %v", err)
	}
	if got, err := s.Get(ctx, "sid-1", "color"); err != nil || got != "green" {
		t.Errorf("Get() got %q, %v, want %q, nil", got, err, "green")
	}
	if _, err := s.Get(ctx, "sid-1", "shape"); !errors.Is(err, ErrNoValue) {
		t.Errorf("Get(unset field) got err %v, want ErrNoValue", err)
	}

	if err := s.Set(ctx, "sid-1", "color", "blue"); err != nil {
		t.Fatalf("Set() got err: %v", err)
	}
	if got, _ := s.Get(ctx, "sid-1", "color"); got != "blue" {
		t.Errorf("Get() after overwrite got %q, want %q", got, "blue")
	}

	if err := s.Delete(ctx, "sid-1", "color"); err != nil {
		t.Fatalf("Delete() got err: %v", err)
	}
	if _, err := s.Get(ctx, "sid-1", "color"); !errors.Is(err, ErrNoValue) {
		t.Errorf("Get(deleted field) got err %v, want ErrNoValue", err)
	}
	if err := s.Delete(ctx, "sid-1", "color"); err != nil {
		t.Errorf("Delete(unset field) got err %v, want nil", err)
	}
}

func TestMemoryStoreSetIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	got, err := s.SetIfAbsent(ctx, "sid-1", "token", "first")
	if err != nil {
		t.Fatalf("SetIfAbsent() got err: %v", err)
	}
	if got != "first" {
		t.Errorf("SetIfAbsent(unset field) got %q, want %q", got, "first")
	}

	got, err = s.SetIfAbsent(ctx, "sid-1", "token", "second")
	if err != nil {
		t.Fatalf("SetIfAbsent() got err: %v", err)
	}
	if got != "first" {
		t.Errorf("SetIfAbsent(set field) got %q, want the bound value %q", got, "first")
	}

	// Other fields and other sessions are unaffected.
	if got, _ := s.SetIfAbsent(ctx, "sid-1", "other", "x"); got != "x" {
		t.Errorf("SetIfAbsent(other field) got %q, want %q", got, "x")
	}
	if got, _ := s.SetIfAbsent(ctx, "sid-2", "token", "second"); got != "second" {
		t.Errorf("SetIfAbsent(other session) got %q, want %q", got, "second")
	}
}

func TestMemoryStoreDestroy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	if err := s.Set(ctx, "sid-1", "color", "green"); err != nil {
		t.Fatalf("Set() got err: %v", err)
	}
	if err := s.Destroy(ctx, "sid-1"); err != nil {
		t.Fatalf("Destroy() got err: %v", err)
	}
	if _, err := s.Get(ctx, "sid-1", "color"); !errors.Is(err, ErrNoValue) {
		t.Errorf("Get() after Destroy got err %v, want ErrNoValue", err)
	}
	if err := s.Destroy(ctx, "sid-1"); err != nil {
		t.Errorf("Destroy(unknown session) got err %v, want nil", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(50 * time.Millisecond)
	defer s.Close()

	if err := s.Set(ctx, "sid-1", "color", "green"); err != nil {
		t.Fatalf("Set() got err: %v", err)
	}
	if got, err := s.Get(ctx, "sid-1", "color"); err != nil || got != "green" {
		t.Fatalf("Get() before expiry got %q, %v, want %q, nil", got, err, "green")
	}

	time.Sleep(80 * time.Millisecond)
	if _, err := s.Get(ctx, "sid-1", "color"); !errors.Is(err, ErrNoValue) {
		t.Errorf("Get() after expiry got err %v, want ErrNoValue", err)
	}
}

func TestMemoryStoreSetIfAbsentRace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	winners := make(chan string, workers)
	for i := 0; i < workers; i++ {
		candidate := fmt.Sprintf("token-%02d", i)
		go func(candidate string) {
			defer wg.Done()
			<-start
			got, err := s.SetIfAbsent(ctx, "sid-race", "token", candidate)
			if err != nil {
				t.Errorf("SetIfAbsent(%q) got err: %v", candidate, err)
				return
			}
			winners <- got
		}(candidate)
	}

	close(start)
	wg.Wait()
	close(winners)

	seen := make(map[string]bool)
	for w := range winners {
		seen[w] = true
	}
	if len(seen) != 1 {
		t.Fatalf("concurrent SetIfAbsent settled on %d values %v, want exactly one", len(seen), seen)
	}
	bound, err := s.Get(ctx, "sid-race", "token")
	if err != nil {
		t.Fatalf("Get() got err: %v", err)
	}
	if !seen[bound] {
		t.Errorf("stored value %q is not the winner every caller observed", bound)
	}
}
