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

// Seccheck reports uses of APIs that have a safe wrapper in this
// repository, so raw database/sql, html/template or math/rand cannot
// slip past review. It is built on golang.org/x/tools/go/analysis and
// takes the standard analyzer flags.
//
// # Usage
//
//	seccheck ./...
//	seccheck -rules team.json,ci.json ./...
//	seccheck -nodefaults -rules team.json ./...
//
// Without flags the built-in rules apply; -rules merges extra JSON rule
// files over them and -nodefaults drops the built-ins entirely.
//
// # Rules
//
// A rule file bans import paths, fully qualified functions, or both.
// An exemption waives one rule inside packages matching a
// filepath.Match pattern:
//
//	{
//		"imports": [
//			{
//				"name": "net/http/cgi",
//				"msg": "no CGI in this codebase",
//				"exemptions": [
//					{
//						"justification": "legacy bridge, tracked for removal",
//						"pkg": "example.com/app/legacy"
//					}
//				]
//			}
//		],
//		"functions": [
//			{"name": "fmt.Sprintf", "msg": "never assemble queries by hand"}
//		]
//	}
//
// Each diagnostic names the offending API and the rule's message:
//
//	app/login.go:14:2: risky API "math/rand": tokens, state and keys need crypto/rand
package main
