/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package present

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Motion is the slide-in movement: a damped spring (SpringStiffness,
// SpringDamping, unit mass) pulling the slide from the edge it enters on to
// rest. Offset is -1 at the left edge, +1 at the right edge and 0 at rest.
// Renderers call Step once per frame at the rate given to NewMotion.
type Motion struct {
	spring harmonica.Spring
	offset float64
	vel    float64
	active bool
}

// NewMotion returns a Motion at rest stepping at fps frames per second.
func NewMotion(fps int) Motion {
	omega := math.Sqrt(SpringStiffness)
	zeta := SpringDamping / (2 * omega)
	return Motion{spring: harmonica.NewSpring(harmonica.FPS(fps), omega, zeta)}
}

// Start places the slide on the given edge and sets it moving.
func (m *Motion) Start(from Side) {
	m.offset, m.vel, m.active = float64(from.Sign()), 0, true
}

// Step advances one frame and reports whether the slide is still moving.
func (m *Motion) Step() bool {
	if !m.active {
		return false
	}
	m.offset, m.vel = m.spring.Update(m.offset, m.vel, 0)
	if math.Abs(m.offset) < 0.001 && math.Abs(m.vel) < 0.01 {
		m.offset, m.vel, m.active = 0, 0, false
	}
	return m.active
}

// Offset is the current displacement as a fraction of the slide width.
func (m Motion) Offset() float64 { return m.offset }

// Active reports whether the slide is still moving.
func (m Motion) Active() bool { return m.active }
