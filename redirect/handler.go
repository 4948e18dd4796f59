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

package redirect

import (
	"log"
	"net/http"
	"path"
)

// Guard refuses requests whose redirect parameter fails a Policy before
// any handler can act on it.
type Guard struct {
	policy Policy
	log    *log.Logger
}

// NewGuard returns a Guard enforcing policy.
func NewGuard(policy Policy) *Guard {
	return &Guard{policy: policy}
}

// SetLogger directs refusal logging, with reasons, to l. Without a
// logger refusals are silent.
func (g *Guard) SetLogger(l *log.Logger) {
	g.log = l
}

// Handler wraps next. Requests without the redirect parameter pass
// untouched; requests with one only pass if the target validates. The
// refusal is a uniform 403, the reason goes to the log.
func (g *Guard) Handler(next http.Handler) http.Handler {
	param := g.policy.param()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get(param)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		if _, err := g.policy.Validate(raw); err != nil {
			if g.log != nil {
				g.log.Printf("redirect: refused %s %s: %v", r.Method, r.URL.Path, err)
			}
			http.Error(w, "request validation failed", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Redirector redirects by opaque token instead of by URL. The targets
// are fixed at construction, so nothing a client sends can steer the
// destination; an unknown token is a plain 404.
//
// It serves the last path segment as the token, so it can be mounted on
// any mux: /go/dashboard redirects to the URL registered under
// "dashboard".
type Redirector struct {
	targets map[string]string
}

// NewRedirector returns a Redirector over a copy of targets.
func NewRedirector(targets map[string]string) *Redirector {
	copied := make(map[string]string, len(targets))
	for tok, target := range targets {
		copied[tok] = target
	}
	return &Redirector{targets: copied}
}

// ServeHTTP implements http.Handler.
func (rd *Redirector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := path.Base(r.URL.Path)
	target, ok := rd.targets[token]
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}
