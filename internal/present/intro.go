/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package present

import "time"

// IntroPhase is the step of the intro sequence currently on screen.
type IntroPhase int

const (
	IntroLoading IntroPhase = iota
	IntroCredit
	IntroTitle
)

// IntroText is the copy shown during the intro.
type IntroText struct {
	Loading    string
	LoadingSub string
	Credit     string
	CreditSub  string
	Title      string
}

// DefaultIntroText is the intro copy of the bundled deck.
var DefaultIntroText = IntroText{
	Loading:    "MEMUAT...",
	LoadingSub: "MEMUAT PRESET",
	Credit:     "HEZELL",
	CreditSub:  "KARYA",
	Title:      "PEDIH",
}

// Marquee is the ticker line renderers scroll behind the slides.
const Marquee = "SOPAN SANTUN • SIKAP • HORMAT • ETIKA • "

// Phase boundaries and progress-bar length as fractions of the intro duration.
const (
	creditFrom   = 2.1 / 6.5
	titleFrom    = 4.8 / 6.5
	progressSpan = 6.0 / 6.5
)

// IntroFrame reports the phase and the progress bar fill (0..1) of the intro.
// It returns IntroTitle and 1 once the intro is over.
func (s *Session) IntroFrame() (IntroPhase, float64) {
	if !s.IntroActive() || s.opts.Intro <= 0 {
		return IntroTitle, 1
	}
	elapsed := s.opts.Intro - s.introUntil.Sub(s.opts.Now())
	frac := float64(elapsed) / float64(s.opts.Intro)
	progress := min(frac/progressSpan, 1)
	switch {
	case frac < creditFrom:
		return IntroLoading, progress
	case frac < titleFrom:
		return IntroCredit, progress
	}
	return IntroTitle, progress
}

// IntroDuration is the configured intro length.
func (s *Session) IntroDuration() time.Duration { return s.opts.Intro }
