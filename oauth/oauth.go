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

// Package oauth hardens the client side of the OAuth 2.0 authorization
// code flow.
//
// The helpers cover the places where code-flow clients usually go wrong:
//
//   - PKCE (RFC 7636) with the S256 challenge method, so a stolen
//     authorization code is useless without the verifier;
//   - a state parameter bound to the caller's session and consumed on
//     first use, so the callback cannot be replayed or cross-wired;
//   - token endpoint calls that always travel with a context and never
//     log or format the client secret;
//   - ID token verification against a pinned set of asymmetric
//     algorithms, never the algorithm the token itself announces.
//
// Config describes one registered client. Its methods build the
// authorization URL and talk to the token and introspection endpoints.
// Session-bound state lives in state.go and expects the same session
// handle the csrf package consumes.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ameya-bit/vulnerabilties-study/secret"
)

// ErrNoRefreshToken is returned by Refresh and Source.Token when there is
// no refresh token to redeem.
var ErrNoRefreshToken = errors.New("oauth: no refresh token")

// maxResponseBytes caps how much of an authorization server response is
// read. Token and introspection responses are small JSON documents.
const maxResponseBytes = 1 << 20

// Config describes a registered OAuth 2.0 client and the endpoints of
// its authorization server.
//
// A zero ClientSecret marks a public client; none of the endpoint calls
// will send a client_secret field for it.
type Config struct {
	ClientID     string
	ClientSecret secret.Secret

	// Absolute endpoint URLs, e.g. https://auth.example.com/authorize.
	AuthURL       string
	TokenURL      string
	IntrospectURL string

	// RedirectURL must exactly match one registered with the server.
	RedirectURL string

	Scopes []string

	// HTTPClient is used for all endpoint calls. nil means
	// http.DefaultClient.
	HTTPClient *http.Client
}

// AuthCodeURL returns the URL to send the user agent to. state comes
// from NewState and pkce from NewPKCE; both belong to exactly one
// authorization attempt.
func (c *Config) AuthCodeURL(state string, pkce PKCE) string {
	v := url.Values{
		"response_type":         {"code"},
		"client_id":             {c.ClientID},
		"redirect_uri":          {c.RedirectURL},
		"state":                 {state},
		"code_challenge":        {pkce.Challenge},
		"code_challenge_method": {ChallengeMethod},
	}
	if len(c.Scopes) > 0 {
		v.Set("scope", strings.Join(c.Scopes, " "))
	}
	return c.AuthURL + "?" + v.Encode()
}

// Exchange redeems an authorization code at the token endpoint. verifier
// is the PKCE verifier minted alongside the challenge that the code was
// issued under. Call it only after ConsumeState accepted the callback.
func (c *Config) Exchange(ctx context.Context, code, verifier string) (*Token, error) {
	v := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.RedirectURL},
		"client_id":     {c.ClientID},
		"code_verifier": {verifier},
	}
	return c.token(ctx, v)
}

// Refresh redeems a refresh token for a fresh access token.
func (c *Config) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, ErrNoRefreshToken
	}
	v := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.ClientID},
	}
	return c.token(ctx, v)
}

// Introspection is the subset of an RFC 7662 introspection response the
// helpers care about. Callers must treat Active as the only authority on
// whether the token is live.
type Introspection struct {
	Active    bool   `json:"active"`
	Scope     string `json:"scope,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
	Subject   string `json:"sub,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
}

// Introspect asks the authorization server whether token is still
// active. Local signature checks cannot see revocation; this call can.
func (c *Config) Introspect(ctx context.Context, token string) (*Introspection, error) {
	v := url.Values{
		"token":     {token},
		"client_id": {c.ClientID},
	}
	body, err := c.postForm(ctx, c.IntrospectURL, v)
	if err != nil {
		return nil, err
	}
	var in Introspection
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, fmt.Errorf("oauth: decoding introspection response: %w", err)
	}
	return &in, nil
}

// token posts form to the token endpoint and decodes the response,
// stamping the expiry from expires_in at receipt time.
func (c *Config) token(ctx context.Context, form url.Values) (*Token, error) {
	body, err := c.postForm(ctx, c.TokenURL, form)
	if err != nil {
		return nil, err
	}
	var tok Token
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("oauth: decoding token response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, errors.New("oauth: token response missing access_token")
	}
	ttl := time.Duration(tok.ExpiresIn) * time.Second
	if tok.ExpiresIn <= 0 {
		// Servers that omit expires_in get the customary hour.
		ttl = time.Hour
	}
	tok.Expiry = time.Now().Add(ttl)
	return &tok, nil
}

// postForm sends an x-www-form-urlencoded POST, attaching the client
// secret for confidential clients. Responses other than 200 surface as
// errors carrying the status line only, never the body.
func (c *Config) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	if cs := c.ClientSecret.Expose(); cs != "" {
		form.Set("client_secret", cs)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("oauth: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("oauth: calling %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("oauth: reading response from %s: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth: %s returned %s", endpoint, resp.Status)
	}
	return body, nil
}

func (c *Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
