/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package version exposes build metadata. Values are overridden at link time:
//
//	go build -ldflags "-X slidedeck/internal/version.Version=1.2.0 -X slidedeck/internal/version.Commit=abc123"
package version

import "strings"

var (
	Version = "0.1.0-dev"
	Commit  = ""
	Date    = ""
)

// String returns a single-line description of the build.
func String() string {
	var b strings.Builder
	b.WriteString("slidedeck ")
	b.WriteString(Version)
	if Commit != "" {
		b.WriteString(" (")
		b.WriteString(Commit)
		if Date != "" {
			b.WriteString(", ")
			b.WriteString(Date)
		}
		b.WriteString(")")
	}
	return b.String()
}
