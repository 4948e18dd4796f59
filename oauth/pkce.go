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
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// ChallengeMethod is the only code_challenge_method these helpers emit.
// The "plain" method defeats the point of PKCE and is not supported.
const ChallengeMethod = "S256"

// verifierSize is the verifier entropy in bytes. 64 bytes encode to 86
// characters, inside the 43..128 range RFC 7636 allows.
const verifierSize = 64

// PKCE holds one authorization attempt's proof-key pair. The Challenge
// goes into the authorization URL; the Verifier stays server-side until
// Exchange.
type PKCE struct {
	Verifier  string
	Challenge string
}

// NewPKCE mints a fresh verifier and its S256 challenge.
func NewPKCE() (PKCE, error) {
	v, err := randomURLString(verifierSize)
	if err != nil {
		return PKCE{}, fmt.Errorf("oauth: generating pkce verifier: %w", err)
	}
	sum := sha256.Sum256([]byte(v))
	return PKCE{
		Verifier:  v,
		Challenge: base64.RawURLEncoding.EncodeToString(sum[:]),
	}, nil
}

func randomURLString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
