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

// Package forminject rewrites HTML templates so that every state-changing
// form carries the session's anti-forgery token.
//
// Rewrite appends a hidden input to each form whose method is POST, PUT,
// PATCH or DELETE. The input's value is the {{CSRFToken}} template
// function, supplied at render time from csrf.Issue via FuncMap. Forms
// that submit with GET are left alone so tokens never end up in query
// strings, server logs or referrers.
//
// Templates are built with github.com/google/safehtml/template, whose
// contextual autoescaping handles output encoding; this package only adds
// the token plumbing on top.
package forminject

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/Ameya-bit/vulnerabilties-study/csrf"
)

// FuncName is the template function the injected input calls for the
// token value.
const FuncName = "CSRFToken"

// injectedInput is appended as the first child of every state-changing
// form.
var injectedInput = fmt.Sprintf(`<input type="hidden" name=%q value="{{%s}}">`, csrf.FormField, FuncName)

// Rewrite copies the template source from src, appending the hidden token
// input right after the opening tag of every form with a state-changing
// method. Everything else, template actions included, passes through
// byte for byte.
//
// The form's method attribute must be literal for the rewrite to see it;
// a method computed by a template action is skipped.
func Rewrite(src io.Reader) (string, error) {
	z := html.NewTokenizer(src)
	var out strings.Builder
	for {
		switch tok := z.Next(); tok {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("forminject: rewriting template: %v", err)
			}
			out.Write(z.Raw())
			return out.String(), nil
		case html.StartTagToken:
			raw := string(z.Raw())
			out.WriteString(raw)
			name, hasAttr := z.TagName()
			if string(name) == "form" && stateChangingForm(z, hasAttr) {
				out.WriteString(injectedInput)
			}
		default:
			out.Write(z.Raw())
		}
	}
}

// stateChangingForm reports whether the form tag under the tokenizer's
// cursor declares a method that changes state. A form without a method
// submits with GET and needs no token.
func stateChangingForm(z *html.Tokenizer, hasAttr bool) bool {
	if !hasAttr {
		return false
	}
	for {
		key, val, more := z.TagAttr()
		if string(key) == "method" {
			// The first method attribute wins, as in browsers.
			switch {
			case strings.EqualFold(string(val), "post"),
				strings.EqualFold(string(val), "put"),
				strings.EqualFold(string(val), "patch"),
				strings.EqualFold(string(val), "delete"):
				return true
			default:
				return false
			}
		}
		if !more {
			return false
		}
	}
}
