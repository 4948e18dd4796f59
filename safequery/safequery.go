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

// Package safequery runs SQL that is safe by construction: queries are
// TrustedQuery values, and a TrustedQuery can only be built from a
// compile-time constant. Code that would concatenate request data into a
// query does not compile, which removes SQL injection instead of
// reviewing for it. Runtime data travels through placeholder arguments
// only.
//
// The constructor takes an unexported named string type, so from outside
// this package only an untyped constant can be passed to New. Vetted
// runtime sources (a query file under the program's control, say) can be
// promoted through the uncheckedconversions subpackage; every call of it
// is an audit point.
//
// The DB and Tx wrappers mirror database/sql and add nothing else; see
// the database/sql documentation for their behavior. Pair the package
// with the cmd/seccheck analyzer to keep database/sql itself out of
// application code.
package safequery

import (
	"strings"

	"github.com/Ameya-bit/vulnerabilties-study/safequery/internal/raw"
)

func init() {
	// Hands the unexported constructor to the uncheckedconversions
	// subpackage, keeping the type contract in one place.
	raw.TrustedQuery = func(unsafe string) TrustedQuery { return TrustedQuery{unsafe} }
}

type stringConstant string

// TrustedQuery is a query string known to be under programmer control
// and free of runtime data.
type TrustedQuery struct {
	s string
}

// New builds a TrustedQuery from a compile-time constant. Outside this
// package only a string literal or untyped string constant can be passed
// here.
func New(text stringConstant) TrustedQuery { return TrustedQuery{string(text)} }

// Concat concatenates trusted queries into one. It composes constants at
// runtime; it must not become a way to assemble queries from input.
func Concat(qs ...TrustedQuery) TrustedQuery {
	return Join(qs, TrustedQuery{})
}

// Join joins trusted queries with the separator, as strings.Join would.
func Join(qs []TrustedQuery, sep TrustedQuery) TrustedQuery {
	parts := make([]string, 0, len(qs))
	for _, q := range qs {
		parts = append(parts, q.s)
	}
	return TrustedQuery{strings.Join(parts, sep.s)}
}

func (q TrustedQuery) String() string {
	return q.s
}
