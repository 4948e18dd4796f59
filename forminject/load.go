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

package forminject

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/google/safehtml/template"
	"github.com/google/safehtml/template/uncheckedconversions"
)

// placeholderFuncs makes templates referencing FuncName parse. Executing
// without overriding the placeholder fails, so a page with a token slot
// can never render without a token.
var placeholderFuncs = map[string]interface{}{
	FuncName: func() (string, error) {
		return "", errors.New("forminject: no token supplied, render through Render or FuncMap")
	},
}

// FuncMap returns the function map binding FuncName to token, for
// rendering a loaded template.
func FuncMap(token string) map[string]interface{} {
	return map[string]interface{}{
		FuncName: func() string { return token },
	}
}

// LoadFiles rewrites and parses the named template files from fsys into
// tpl, starting a new set when tpl is nil. File names are trusted
// sources: they must come from program constants, not from request data.
func LoadFiles(tpl *template.Template, fsys fs.FS, files ...template.TrustedSource) (*template.Template, error) {
	if len(files) == 0 {
		return nil, errors.New("forminject: no files named in call to LoadFiles")
	}
	for _, src := range files {
		fn := src.String()
		b, err := fs.ReadFile(fsys, fn)
		if err != nil {
			return nil, fmt.Errorf("forminject: reading %s: %v", fn, err)
		}
		rewritten, err := Rewrite(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("forminject: %s: %v", fn, err)
		}

		name := path.Base(fn)
		if tpl == nil {
			tpl = template.New(name).Funcs(placeholderFuncs)
		}
		t := tpl
		if name != tpl.Name() {
			t = tpl.New(name)
		}
		// The source came off a trusted filename and was only touched by
		// Rewrite, so it is still trusted.
		tt := uncheckedconversions.TrustedTemplateFromStringKnownToSatisfyTypeContract(rewritten)
		if _, err := t.ParseFromTrustedTemplate(tt); err != nil {
			return nil, fmt.Errorf("forminject: parsing %s: %v", fn, err)
		}
	}
	return tpl, nil
}

// LoadGlob is LoadFiles over every file in fsys matching pattern.
func LoadGlob(tpl *template.Template, fsys fs.FS, pattern template.TrustedSource) (*template.Template, error) {
	filenames, err := fs.Glob(fsys, pattern.String())
	if err != nil {
		return nil, fmt.Errorf("forminject: %v", err)
	}
	if len(filenames) == 0 {
		return nil, fmt.Errorf("forminject: pattern matches no files: %#q", pattern.String())
	}
	var files []template.TrustedSource
	for _, fn := range filenames {
		// The pattern expanded from a trusted source, so the expansion
		// is still trusted.
		files = append(files, uncheckedconversions.TrustedSourceFromStringKnownToSatisfyTypeContract(fn))
	}
	return LoadFiles(tpl, fsys, files...)
}

// Render executes the named template with the given token filling the
// injected inputs. The template set itself is not mutated, so concurrent
// renders with different tokens do not interfere.
func Render(w io.Writer, tpl *template.Template, name, token string, data interface{}) error {
	cloned, err := tpl.Clone()
	if err != nil {
		return fmt.Errorf("forminject: cloning template: %v", err)
	}
	if err := cloned.Funcs(FuncMap(token)).ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("forminject: rendering %s: %w", name, err)
	}
	return nil
}
