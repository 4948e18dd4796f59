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

// Package secret provides primitives for handling sensitive values: a
// wrapper type that cannot leak through formatting or JSON encoding, a
// timing-safe equality check, hashing helpers and authenticated encryption.
//
// Values derived from secrets must never be compared with == or
// reflect.DeepEqual; use Equal instead. The cmd/seccheck analyzer can be
// used to enforce this.
package secret

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// redacted is what every accidental rendering of a Secret produces.
const redacted = "[REDACTED]"

// Secret holds a sensitive string (API key, client secret, token) and
// renders as "[REDACTED]" under the fmt verbs and JSON encoding. The
// wrapped value is only reachable through Expose.
type Secret struct {
	v string
}

// New wraps a sensitive value.
func New(v string) Secret {
	return Secret{v: v}
}

// Expose returns the wrapped value. Call sites of Expose are the audit
// surface for secret usage; keep them few.
func (s Secret) Expose() string {
	return s.v
}

// Equal reports whether the wrapped values are equal, in constant time.
func (s Secret) Equal(other Secret) bool {
	return Equal(s.v, other.v)
}

// String implements fmt.Stringer so that %s, %v and %q never print the
// wrapped value.
func (s Secret) String() string {
	return redacted
}

// GoString keeps %#v from dumping the struct contents.
func (s Secret) GoString() string {
	return "secret.Secret{" + redacted + "}"
}

// MarshalJSON encodes the redaction marker, never the value. Secrets do
// not round-trip through JSON on purpose.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// Equal compares two strings in constant time with respect to both
// content and length. Both inputs are hashed to fixed size first, so the
// comparison cannot be used as a length oracle either. It is the required
// comparison for any value derived from a secret.
func Equal(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}

// EqualBytes is Equal for byte slices.
func EqualBytes(a, b []byte) bool {
	ha := sha256.Sum256(a)
	hb := sha256.Sum256(b)
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}

// Fingerprint returns the hex-encoded SHA-256 digest of data. Use it to
// refer to a secret in logs or to check data integrity; the digest is not
// reversible and must not replace password hashing (see HashPassword).
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
