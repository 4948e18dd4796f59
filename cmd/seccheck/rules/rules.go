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

// Package rules loads and merges the rule sets the seccheck analyzer
// enforces.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
)

// Rule bans one import path or one fully qualified function name.
type Rule struct {
	// Name is an import path for import rules, or pkgpath.Func for
	// function rules.
	Name string `json:"name"`
	// Msg tells the author what to use instead.
	Msg        string      `json:"msg"`
	Exemptions []Exemption `json:"exemptions,omitempty"`
}

// Exemption waives a rule inside packages whose import path matches
// Pattern, in filepath.Match syntax. It waives only the rule it is
// attached to; another rule banning the same name still reports.
type Exemption struct {
	Justification string `json:"justification"`
	Pattern       string `json:"pkg"`
}

// Set holds banned imports and banned functions keyed by name. A name
// may carry several rules, one report each.
type Set struct {
	Imports   map[string][]Rule
	Functions map[string][]Rule
}

// NewSet returns an empty rule set.
func NewSet() *Set {
	return &Set{
		Imports:   make(map[string][]Rule),
		Functions: make(map[string][]Rule),
	}
}

// ruleFile is the JSON shape of one rule file.
type ruleFile struct {
	Imports   []Rule `json:"imports"`
	Functions []Rule `json:"functions"`
}

func (s *Set) add(f *ruleFile) {
	for _, r := range f.Imports {
		s.Imports[r.Name] = append(s.Imports[r.Name], r)
	}
	for _, r := range f.Functions {
		s.Functions[r.Name] = append(s.Functions[r.Name], r)
	}
}

// LoadFiles merges the named JSON rule files into s. Loading never
// replaces rules already present; a name banned by two sources reports
// once per source.
func (s *Set) LoadFiles(paths []string) error {
	for _, p := range paths {
		f, err := readRuleFile(p)
		if err != nil {
			return err
		}
		s.add(f)
	}
	return nil
}

func readRuleFile(path string) (*ruleFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("rule file %s is a directory", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	defer f.Close()

	var rf ruleFile
	if err := json.NewDecoder(f).Decode(&rf); err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return &rf, nil
}

// Defaults returns the rules that keep code on this repository's safe
// wrappers. Rule files loaded afterwards add to these.
func Defaults() *Set {
	s := NewSet()
	s.add(&ruleFile{
		Imports: []Rule{
			{
				Name: "database/sql",
				Msg:  "query through safequery so only vetted query strings reach the database",
				Exemptions: []Exemption{{
					Justification: "safequery wraps database/sql",
					Pattern:       "github.com/Ameya-bit/vulnerabilties-study/safequery",
				}},
			},
			{
				Name: "html/template",
				Msg:  "render HTML with github.com/google/safehtml/template",
			},
			{
				Name: "text/template",
				Msg:  "text/template does not escape; render HTML with github.com/google/safehtml/template",
			},
			{
				Name: "math/rand",
				Msg:  "tokens, state and keys need crypto/rand",
			},
			{
				Name: "math/rand/v2",
				Msg:  "tokens, state and keys need crypto/rand",
			},
			{
				Name: "crypto/md5",
				Msg:  "weak hash; use crypto/sha256",
			},
			{
				Name: "crypto/sha1",
				Msg:  "weak hash; use crypto/sha256",
			},
		},
		Functions: []Rule{
			{
				Name: "reflect.DeepEqual",
				Msg:  "not constant time; compare secrets with secret.Equal",
			},
		},
	})
	return s
}
