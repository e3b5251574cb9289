/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit colour.
type RGB struct{ R, G, B uint8 }

// Hex formats c as #rrggbb.
func (c RGB) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// ParseHexColor reads #rgb or #rrggbb (the # is optional).
func ParseHexColor(s string) (RGB, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if (len(s) != 3 && len(s) != 6) || strings.Trim(s, "0123456789abcdefABCDEF") != "" {
		return RGB{}, false
	}
	c, err := colorful.Hex("#" + strings.ToLower(s))
	if err != nil {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, true
}

// Accent returns the slide accent colour, or fallback when AccentColor is not
// a hex colour.
func (s Slide) Accent(fallback RGB) RGB {
	if c, ok := ParseHexColor(s.AccentColor); ok {
		return c
	}
	return fallback
}
