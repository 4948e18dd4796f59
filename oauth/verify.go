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
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// idTokenAlgs is the closed set of signature algorithms accepted for ID
// tokens. All asymmetric: a token signed with an HMAC of the public key
// must not verify, so HS* stays out regardless of what the token header
// claims.
var idTokenAlgs = []string{"RS256", "PS256", "ES256", "EdDSA"}

// verifyLeeway absorbs clock drift between this process and the
// authorization server when checking exp and nbf.
const verifyLeeway = 30 * time.Second

// VerifyIDToken parses and verifies an ID token. keyfunc resolves the
// verification key, typically from a cached JWKS by the token's kid
// header. issuer and audience are required to match exactly, and the
// token must carry an expiry.
//
// The algorithm set is pinned to idTokenAlgs before keyfunc runs, so
// keyfunc never sees a token whose header names an HMAC or "none"
// algorithm.
func VerifyIDToken(raw string, keyfunc jwt.Keyfunc, issuer, audience string) (*jwt.RegisteredClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods(idTokenAlgs),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(verifyLeeway),
	)
	claims := &jwt.RegisteredClaims{}
	token, err := parser.ParseWithClaims(raw, claims, keyfunc)
	if err != nil {
		return nil, fmt.Errorf("oauth: verifying id token: %w", err)
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
