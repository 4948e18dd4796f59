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

// Package raw carries the TrustedQuery constructor from safequery to its
// uncheckedconversions subpackage. Living under internal/, it cannot be
// imported from outside the safequery tree, so the constructor cannot
// leak into application code.
package raw

// TrustedQuery is assigned by safequery at init time. It is an empty
// interface to avoid a dependency cycle with safequery.
var TrustedQuery interface{}
