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

// Package uncheckedconversions promotes plain strings to safequery
// types. A wrong use here is a SQL injection, so keep calls of this
// package rare and reviewed.
package uncheckedconversions

import (
	"github.com/Ameya-bit/vulnerabilties-study/safequery"
	"github.com/Ameya-bit/vulnerabilties-study/safequery/internal/raw"
)

var trustedQueryCtor = raw.TrustedQuery.(func(string) safequery.TrustedQuery)

// TrustedQueryFromStringKnownToSatisfyTypeContract promotes trusted to a
// TrustedQuery. Only pass strings under programmer control, such as
// queries read from a storage no user input can reach.
func TrustedQueryFromStringKnownToSatisfyTypeContract(trusted string) safequery.TrustedQuery {
	return trustedQueryCtor(trusted)
}
