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

package safequery

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrSuspiciousInput is returned by CheckInput for input that carries
// SQL injection fingerprints.
var ErrSuspiciousInput = errors.New("safequery: suspicious input")

var unionSelect = regexp.MustCompile(`(?i)\bunion\b[\s(]*(\ball\b[\s(]*)?\bselect\b`)

// CheckInput screens free-form input for SQL injection fingerprints:
// statement separators, comment markers and the UNION SELECT shape. It
// is defense in depth for fields fed into queries as placeholder
// arguments, and a way to spot probing early; it is NOT a substitute for
// parameterization, which TrustedQuery already enforces. Do not apply it
// to fields where these characters are legitimate, passwords above all.
func CheckInput(input string) error {
	for marker, what := range map[string]string{
		";":  "statement separator",
		"--": "line comment",
		"/*": "block comment",
	} {
		if strings.Contains(input, marker) {
			return fmt.Errorf("%w: %s", ErrSuspiciousInput, what)
		}
	}
	if unionSelect.MatchString(input) {
		return fmt.Errorf("%w: union select", ErrSuspiciousInput)
	}
	return nil
}
