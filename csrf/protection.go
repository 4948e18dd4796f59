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

package csrf

import (
	"log"
	"net/http"

	"github.com/Ameya-bit/vulnerabilties-study/secret"
)

// Reason classifies why the gate refused a request. Reasons are logged
// server-side only; the client response never varies by reason, so a
// probing attacker learns nothing from it.
type Reason int

const (
	// MissingSession: the request has no session to hold a token.
	MissingSession Reason = iota + 1
	// MissingToken: the session has no bound token, the request carries
	// none, or the token could not be loaded. Store failures land here
	// so that an outage never admits requests.
	MissingToken
	// TokenMismatch: a token was submitted and does not match the bound
	// one.
	TokenMismatch
)

func (r Reason) String() string {
	switch r {
	case MissingSession:
		return "missing session"
	case MissingToken:
		return "missing token"
	case TokenMismatch:
		return "token mismatch"
	}
	return "unknown"
}

// SessionFunc resolves the session a request belongs to, nil if it has
// none. Wrap session.Manager.Lookup, or any equivalent.
type SessionFunc func(*http.Request) Session

// Protection refuses state-changing requests that do not present the
// session's anti-forgery token. It wraps a handler in the manner of
// net/http's CrossOriginProtection; every route that can mutate state
// belongs behind it.
//
// For each request, in order:
//
//  1. GET, HEAD, OPTIONS and TRACE pass unconditionally. By contract
//     they must not change state, so they need no token (and handlers
//     reached through them are where tokens get issued).
//  2. Exempted paths pass. Exemptions exist for the few endpoints that
//     establish credentials and thus cannot present a token yet, such as
//     a login submission.
//  3. Everything else must belong to a session whose bound token equals
//     the submitted one, compared in constant time. Otherwise the
//     request is refused with 403 and the wrapped handler never runs.
//
// The submitted token is read from the FormField form field (urlencoded
// or multipart body), then from the HeaderName header.
//
// Configure a Protection before serving; its methods must not be called
// concurrently with the handler.
type Protection struct {
	lookup SessionFunc
	exempt map[string]bool
	deny   http.Handler
	log    *log.Logger
}

// NewProtection returns a Protection resolving sessions through lookup.
func NewProtection(lookup SessionFunc) *Protection {
	return &Protection{
		lookup: lookup,
		exempt: make(map[string]bool),
		deny:   http.HandlerFunc(denyDefault),
	}
}

// ExemptPath excludes one path from the check. The match is exact, no
// prefixes and no patterns: an exemption covers the endpoint it names
// and nothing else.
func (p *Protection) ExemptPath(path string) {
	p.exempt[path] = true
}

// SetDenyHandler replaces the response sent for refused requests. The
// default writes 403 with a generic body. A replacement must stay
// uniform across refusal reasons; anything it reveals, it reveals to the
// attacker driving the victim's browser.
func (p *Protection) SetDenyHandler(h http.Handler) {
	p.deny = h
}

// SetLogger directs refusal logging, with reasons, to l. Without a
// logger refusals are silent.
func (p *Protection) SetLogger(l *log.Logger) {
	p.log = l
}

// Handler gates next behind the check.
func (p *Protection) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reason, err := p.check(r)
		if reason != 0 {
			if p.log != nil {
				if err != nil {
					p.log.Printf("csrf: refused %s %s: %s (%v)", r.Method, r.URL.Path, reason, err)
				} else {
					p.log.Printf("csrf: refused %s %s: %s", r.Method, r.URL.Path, reason)
				}
			}
			p.deny.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// check returns 0 to admit the request, or the refusal reason and, for
// store failures, the underlying error for the log.
func (p *Protection) check(r *http.Request) (Reason, error) {
	if safeMethod(r.Method) || p.exempt[r.URL.Path] {
		return 0, nil
	}

	s := p.lookup(r)
	if s == nil {
		return MissingSession, nil
	}

	bound, err := Current(r.Context(), s)
	if err != nil {
		// ErrNoToken and store failures both refuse; only the log
		// tells them apart.
		return MissingToken, err
	}

	submitted := requestToken(r)
	if submitted == "" {
		return MissingToken, nil
	}
	if !secret.Equal(bound, submitted) {
		return TokenMismatch, nil
	}
	return 0, nil
}

// safeMethod reports whether the method is defined as safe by HTTP
// semantics. Handlers must uphold that contract for the exemption to be
// sound.
func safeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// requestToken extracts the submitted token. PostFormValue covers
// urlencoded and multipart bodies; the header covers clients that do not
// submit forms.
func requestToken(r *http.Request) string {
	if tok := r.PostFormValue(FormField); tok != "" {
		return tok
	}
	return r.Header.Get(HeaderName)
}

func denyDefault(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "request validation failed", http.StatusForbidden)
}
