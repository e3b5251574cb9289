/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package present

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"slidedeck/internal/deck"
	"slidedeck/internal/domain"
)

// Side is a screen edge a slide enters from or exits to.
type Side int

const (
	Right Side = iota
	Left
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Sign is +1 for Right and -1 for Left, for offset arithmetic.
func (s Side) Sign() int {
	if s == Left {
		return -1
	}
	return 1
}

// Transition tells a renderer where the incoming slide comes from and where
// the outgoing one goes.
type Transition struct {
	Enter Side
	Exit  Side
}

// TransitionFor maps a navigation direction to its slide transition.
// Moving forward the new slide enters from the right and the old one leaves
// to the left; moving backward mirrors that.
func TransitionFor(d deck.Direction) Transition {
	if d == deck.Backward {
		return Transition{Enter: Left, Exit: Right}
	}
	return Transition{Enter: Right, Exit: Left}
}

// Spring parameters of the slide-in motion.
const (
	SpringStiffness = 120.0
	SpringDamping   = 20.0
)

// Layout is cosmetic variation derived from a slide id. It never depends on
// anything but the id, so a slide always looks the same.
type Layout struct {
	// ImageRight puts the image column of a split slide on the right.
	ImageRight bool
	// Tilt is a small rotation hint in degrees.
	Tilt int
	// Accent picks which alternating element uses the accent colour.
	Accent int
}

// LayoutFor derives the layout of the slide with the given id.
func LayoutFor(id int) Layout {
	tilt := [...]int{-2, 1, 3}
	return Layout{
		ImageRight: Variant(id, 4) == 0,
		Tilt:       tilt[Variant(id, 3)],
		Accent:     Variant(id, 2),
	}
}

// Variant maps id onto [0, n). It returns 0 for n <= 0.
func Variant(id, n int) int {
	if n <= 0 {
		return 0
	}
	return ((id % n) + n) % n
}

// SplitTitle separates the first word of a title from the rest; renderers
// colour the two parts differently.
func SplitTitle(title string) (first, rest string) {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// Heading is the title as displayed. Hero and footer slides show it in
// capitals.
func Heading(s domain.Slide) string {
	switch s.Type {
	case domain.KindHero, domain.KindFooter:
		return cases.Upper(language.Indonesian).String(s.Title)
	}
	return s.Title
}
