/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"testing"
	"time"

	"slidedeck/internal/domain"
)

func TestUndoRedoBasic(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024 * 1024, MaxPerSlide: 10, MinInterval: 10 * time.Millisecond})
	t0 := time.Now()
	m.Push(Edit{Slide: 1, Field: domain.FieldTitle, Prev: "a", Next: "b", TS: t0})
	m.Push(Edit{Slide: 1, Field: domain.FieldTitle, Prev: "b", Next: "c", TS: t0.Add(20 * time.Millisecond)})
	if _, slides, total := m.Stats(); slides != 1 || total != 2 {
		t.Fatalf("expected 1 slide and 2 edits, got slides=%d total=%d", slides, total)
	}
	e, ok := m.Undo()
	if !ok || e.Prev != "b" {
		t.Fatalf("undo expected prev 'b', got ok=%v prev=%v", ok, e.Prev)
	}
	e, ok = m.Redo()
	if !ok || e.Next != "c" {
		t.Fatalf("redo expected next 'c', got ok=%v next=%v", ok, e.Next)
	}
}

func TestUndoSpansSlidesNewestFirst(t *testing.T) {
	m := NewManager(Config{MinInterval: time.Millisecond})
	t0 := time.Now()
	m.Push(Edit{Slide: 0, Field: domain.FieldTitle, Prev: "x", Next: "y", TS: t0})
	m.Push(Edit{Slide: 3, Field: domain.FieldContent, Prev: "p", Next: "q", TS: t0.Add(time.Second)})
	e, _ := m.Undo()
	if e.Slide != 3 {
		t.Fatalf("expected newest edit (slide 3) first, got slide %d", e.Slide)
	}
	e, _ = m.Undo()
	if e.Slide != 0 {
		t.Fatalf("expected slide 0 next, got %d", e.Slide)
	}
	if _, ok := m.Undo(); ok {
		t.Fatalf("history should be empty")
	}
}

func TestCoalesceKeepsEarliestPrev(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024 * 1024, MaxPerSlide: 10, MinInterval: 50 * time.Millisecond})
	t0 := time.Now()
	m.Push(Edit{Slide: 2, Field: domain.FieldTitle, Prev: "1", Next: "2", TS: t0})
	m.Push(Edit{Slide: 2, Field: domain.FieldTitle, Prev: "2", Next: "3", TS: t0.Add(10 * time.Millisecond)}) // coalesce
	_, _, total := m.Stats()
	if total != 1 {
		t.Fatalf("expected coalesced to 1 edit, got %d", total)
	}
	e, ok := m.Undo()
	if !ok || e.Prev != "1" || e.Next != "3" {
		t.Fatalf("expected coalesced edit 1->3, got ok=%v %v->%v", ok, e.Prev, e.Next)
	}
}

func TestDifferentFieldsDoNotCoalesce(t *testing.T) {
	m := NewManager(Config{MinInterval: time.Hour})
	t0 := time.Now()
	m.Push(Edit{Slide: 2, Field: domain.FieldTitle, Prev: "a", Next: "b", TS: t0})
	m.Push(Edit{Slide: 2, Field: domain.FieldContent, Prev: "c", Next: "d", TS: t0})
	if _, _, total := m.Stats(); total != 2 {
		t.Fatalf("expected 2 edits, got %d", total)
	}
}

func TestPushClearsRedo(t *testing.T) {
	m := NewManager(Config{MinInterval: time.Millisecond})
	t0 := time.Now()
	m.Push(Edit{Slide: 0, Field: domain.FieldTitle, Prev: "a", Next: "b", TS: t0})
	m.Undo()
	if !m.CanRedo() {
		t.Fatalf("expected redo to be available")
	}
	m.Push(Edit{Slide: 0, Field: domain.FieldTitle, Prev: "a", Next: "z", TS: t0.Add(time.Second)})
	if m.CanRedo() {
		t.Fatalf("a new edit must clear redo")
	}
}

func TestCaps(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1 << 20, MaxPerSlide: 2, MinInterval: time.Millisecond})
	t0 := time.Now()
	for i := 0; i < 10; i++ {
		m.Push(Edit{Slide: 3, Field: domain.FieldTitle, Prev: "xxxxx", Next: "yyyyy", TS: t0.Add(time.Duration(i) * time.Second)})
	}
	_, _, total := m.Stats()
	if total != 2 {
		t.Fatalf("expected MaxPerSlide cap to limit to 2, got %d", total)
	}
}
