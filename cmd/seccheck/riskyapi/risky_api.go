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

// Package riskyapi implements the analyzer behind the seccheck command.
package riskyapi

import (
	"flag"
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"github.com/Ameya-bit/vulnerabilties-study/cmd/seccheck/rules"
	"golang.org/x/tools/go/analysis"
)

// NewAnalyzer returns an analyzer that reports imports and calls that
// bypass this repository's safe wrappers.
func NewAnalyzer() *analysis.Analyzer {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.String("rules", "", "comma-separated JSON rule files merged over the built-in rules")
	fs.Bool("nodefaults", false, "drop the built-in rules and use only the -rules files")

	return &analysis.Analyzer{
		Name:  "seccheck",
		Doc:   "reports risky APIs that have a safe wrapper in this repository",
		Run:   run,
		Flags: *fs,
	}
}

func run(pass *analysis.Pass) (interface{}, error) {
	set := rules.NewSet()
	if pass.Analyzer.Flags.Lookup("nodefaults").Value.String() != "true" {
		set = rules.Defaults()
	}
	if paths := pass.Analyzer.Flags.Lookup("rules").Value.String(); paths != "" {
		if err := set.LoadFiles(strings.Split(paths, ",")); err != nil {
			return nil, err
		}
	}

	if err := checkImports(pass, set); err != nil {
		return nil, err
	}
	if err := checkFunctions(pass, set); err != nil {
		return nil, err
	}
	return nil, nil
}

func checkImports(pass *analysis.Pass, set *rules.Set) error {
	for _, f := range pass.Files {
		for _, imp := range f.Imports {
			name := strings.Trim(imp.Path.Value, `"`)
			if err := report(pass, set.Imports[name], name, imp.Pos()); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkFunctions(pass *analysis.Pass, set *rules.Set) error {
	for id, obj := range pass.TypesInfo.Uses {
		fn, ok := obj.(*types.Func)
		if !ok {
			continue
		}
		pkg := fn.Pkg()
		if pkg == nil {
			// Builtins such as error.Error have no package.
			continue
		}
		name := pkg.Path() + "." + fn.Name()
		if err := report(pass, set.Functions[name], name, id.Pos()); err != nil {
			return err
		}
	}
	return nil
}

// report emits one diagnostic per matching rule. An exemption silences
// only the rule carrying it.
func report(pass *analysis.Pass, matched []rules.Rule, name string, pos token.Pos) error {
	for _, r := range matched {
		skip, err := exempted(pass.Pkg, r)
		if err != nil {
			return err
		}
		if skip {
			continue
		}
		pass.Report(analysis.Diagnostic{
			Pos:     pos,
			Message: fmt.Sprintf("risky API %q: %s", name, r.Msg),
		})
	}
	return nil
}

func exempted(pkg *types.Package, r rules.Rule) (bool, error) {
	for _, e := range r.Exemptions {
		ok, err := filepath.Match(e.Pattern, pkg.Path())
		if err != nil {
			return false, fmt.Errorf("exemption pattern %q: %w", e.Pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
