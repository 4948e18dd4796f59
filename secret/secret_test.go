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

package secret

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestSecretRedaction(t *testing.T) {
	s := New("hunter2")
	var tests = []struct {
		name string
		got  string
	}{
		{name: "verb s", got: fmt.Sprintf("%s", s)},
		{name: "verb v", got: fmt.Sprintf("%v", s)},
		{name: "verb plus v", got: fmt.Sprintf("%+v", s)},
		{name: "verb sharp v", got: fmt.Sprintf("%#v", s)},
		{name: "verb q", got: fmt.Sprintf("%q", s)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if strings.Contains(test.got, "hunter2") {
				t.Errorf("formatted secret %q, want value redacted", test.got)
			}
			if !strings.Contains(test.got, "[REDACTED]") {
				t.Errorf("formatted secret %q, want redaction marker", test.got)
			}
		})
	}
}

func TestSecretJSON(t *testing.T) {
	payload := struct {
		User string `json:"user"`
		Key  Secret `json:"key"`
	}{User: "alice", Key: New("hunter2")}

	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("json.Marshal() got err: %v", err)
	}
	if strings.Contains(string(b), "hunter2") {
		t.Errorf("json.Marshal() = %s, want value redacted", b)
	}
	if want := `"key":"[REDACTED]"`; !strings.Contains(string(b), want) {
		t.Errorf("json.Marshal() = %s, want it to contain %s", b, want)
	}
}

func TestSecretExpose(t *testing.T) {
	if got, want := New("hunter2").Expose(), "hunter2"; got != want {
		t.Errorf("Expose() got %q, want %q", got, want)
	}
}

func TestEqual(t *testing.T) {
	var tests = []struct {
		name string
		a, b string
		want bool
	}{
		{name: "equal", a: "correct horse", b: "correct horse", want: true},
		{name: "different", a: "correct horse", b: "battery staple", want: false},
		{name: "prefix", a: "correct", b: "correct horse", want: false},
		{name: "different length", a: "a", b: "aaaaaaaaaaaaaaaa", want: false},
		{name: "both empty", a: "", b: "", want: true},
		{name: "one empty", a: "", b: "x", want: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Equal(test.a, test.b); got != test.want {
				t.Errorf("Equal(%q, %q) got %v, want %v", test.a, test.b, got, test.want)
			}
			if got := New(test.a).Equal(New(test.b)); got != test.want {
				t.Errorf("Secret.Equal(%q, %q) got %v, want %v", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	// Vector: SHA-256("hello world").
	const want = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got := Fingerprint([]byte("hello world")); got != want {
		t.Errorf("Fingerprint() got %q, want %q", got, want)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("HashPassword() got err: %v", err)
	}
	if hash == "s3cret!" || hash == "" {
		t.Fatalf("HashPassword() got %q, want a bcrypt hash", hash)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("HashPassword() got %q, want bcrypt format", hash)
	}
	if !VerifyPassword("s3cret!", hash) {
		t.Error("VerifyPassword(correct password) got false, want true")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("VerifyPassword(wrong password) got true, want false")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword(""); err != ErrEmptyPassword {
		t.Errorf("HashPassword(\"\") got err %v, want ErrEmptyPassword", err)
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword() got err: %v", err)
	}
	h2, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword() got err: %v", err)
	}
	if h1 == h2 {
		t.Error("HashPassword() produced identical hashes, want per-hash salt")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Error("VerifyPassword(malformed hash) got true, want false")
	}
}

func TestSealOpen(t *testing.T) {
	key, err := NewKey()
	if err != nil {
		t.Fatalf("NewKey() got err: %v", err)
	}
	plaintext := []byte("the eagle lands at midnight")

	box, err := Seal(key, plaintext)
	if err != nil {
		t.Fatalf("Seal() got err: %v", err)
	}
	if strings.Contains(string(box), string(plaintext)) {
		t.Fatal("Seal() left plaintext visible in ciphertext")
	}

	got, err := Open(key, box)
	if err != nil {
		t.Fatalf("Open() got err: %v", err)
	}
	if string(got) != string(plaintext) {
		t.Errorf("Open() got %q, want %q", got, plaintext)
	}
}

func TestSealRandomNonce(t *testing.T) {
	key, err := NewKey()
	if err != nil {
		t.Fatalf("NewKey() got err: %v", err)
	}
	b1, err := Seal(key, []byte("msg"))
	if err != nil {
		t.Fatalf("Seal() got err: %v", err)
	}
	b2, err := Seal(key, []byte("msg"))
	if err != nil {
		t.Fatalf("Seal() got err: %v", err)
	}
	if string(b1) == string(b2) {
		t.Error("Seal() produced identical ciphertexts for the same message, want fresh nonces")
	}
}

func TestOpenRejects(t *testing.T) {
	key, err := NewKey()
	if err != nil {
		t.Fatalf("NewKey() got err: %v", err)
	}
	box, err := Seal(key, []byte("payload"))
	if err != nil {
		t.Fatalf("Seal() got err: %v", err)
	}

	t.Run("tampered ciphertext", func(t *testing.T) {
		tampered := append([]byte(nil), box...)
		tampered[len(tampered)-1] ^= 0xff
		if _, err := Open(key, tampered); err != ErrDecrypt {
			t.Errorf("Open(tampered) got err %v, want ErrDecrypt", err)
		}
	})
	t.Run("wrong key", func(t *testing.T) {
		other, err := NewKey()
		if err != nil {
			t.Fatalf("NewKey() got err: %v", err)
		}
		if _, err := Open(other, box); err != ErrDecrypt {
			t.Errorf("Open(wrong key) got err %v, want ErrDecrypt", err)
		}
	})
	t.Run("truncated", func(t *testing.T) {
		if _, err := Open(key, box[:8]); err != ErrDecrypt {
			t.Errorf("Open(truncated) got err %v, want ErrDecrypt", err)
		}
	})
	t.Run("bad key size", func(t *testing.T) {
		if _, err := Open([]byte("short"), box); err == nil {
			t.Error("Open(short key) got nil err, want error")
		}
	})
}
