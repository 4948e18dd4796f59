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

// Package headers sets security response headers on every response.
package headers

import "net/http"

// Headers configures the security headers the middleware sets.
//
// X-Content-Type-Options: nosniff and X-XSS-Protection: 0 are always
// set. The XSS auditor value is 0, not the legacy "1; mode=block":
// auditors are gone from modern browsers and where they linger they
// enable universal XSS attacks, so they are switched off.
type Headers struct {
	// ContentSecurityPolicy is the Content-Security-Policy value. Empty
	// leaves the header unset.
	ContentSecurityPolicy string
	// FrameOptions is the X-Frame-Options value. Empty leaves the header
	// unset.
	FrameOptions string
}

// Default returns the policy for pages that embed nothing and must not be
// framed: scripts, styles and the rest load from the page's own origin
// only, plugin content is blocked entirely, and framing is denied.
func Default() Headers {
	return Headers{
		ContentSecurityPolicy: "default-src 'self'; object-src 'none'",
		FrameOptions:          "DENY",
	}
}

// Handler sets the headers and passes the request on. Handlers further
// down can still override a value before writing; place this middleware
// outermost so they get the chance.
func (h Headers) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := w.Header()
		hdr.Set("X-Content-Type-Options", "nosniff")
		hdr.Set("X-XSS-Protection", "0")
		if h.ContentSecurityPolicy != "" {
			hdr.Set("Content-Security-Policy", h.ContentSecurityPolicy)
		}
		if h.FrameOptions != "" {
			hdr.Set("X-Frame-Options", h.FrameOptions)
		}
		next.ServeHTTP(w, r)
	})
}
