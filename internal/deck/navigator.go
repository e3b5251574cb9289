/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package deck

// Direction of the last successful move.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Navigator tracks the active slide index within [0, Len()).
// A move that would leave the bounds returns false and changes nothing,
// the direction flag included.
type Navigator struct {
	n     int
	index int
	dir   Direction
}

// NewNavigator starts at index 0 moving Forward.
func NewNavigator(n int) *Navigator {
	if n < 0 {
		n = 0
	}
	return &Navigator{n: n, dir: Forward}
}

func (v *Navigator) Index() int           { return v.index }
func (v *Navigator) Direction() Direction { return v.dir }
func (v *Navigator) Len() int             { return v.n }
func (v *Navigator) AtStart() bool        { return v.index == 0 }
func (v *Navigator) AtEnd() bool          { return v.n == 0 || v.index == v.n-1 }

// Advance moves to the next slide.
func (v *Navigator) Advance() bool {
	if v.index+1 >= v.n {
		return false
	}
	v.dir = Forward
	v.index++
	return true
}

// Retreat moves to the previous slide.
func (v *Navigator) Retreat() bool {
	if v.index <= 0 {
		return false
	}
	v.dir = Backward
	v.index--
	return true
}

// GoTo jumps to i, setting the direction from the jump. Jumping to the
// current index or out of bounds returns false.
func (v *Navigator) GoTo(i int) bool {
	if i < 0 || i >= v.n || i == v.index {
		return false
	}
	if i > v.index {
		v.dir = Forward
	} else {
		v.dir = Backward
	}
	v.index = i
	return true
}

// Resize changes the deck length and clamps the index into the new bounds.
func (v *Navigator) Resize(n int) {
	if n < 0 {
		n = 0
	}
	v.n = n
	if v.index >= n {
		v.index = max(n-1, 0)
	}
}

// Reset returns to index 0 moving Forward.
func (v *Navigator) Reset() {
	v.index = 0
	v.dir = Forward
}
