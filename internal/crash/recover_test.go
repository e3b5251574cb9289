/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slidedeck/internal/domain"
	"slidedeck/internal/storage"
)

// TestRecover_PanickingGoroutine ensures Recover handles a panic, writes a report,
// saves the deck, and does not terminate the test process due to injected exitFn.
func TestRecover_PanickingGoroutine(t *testing.T) {
	// Capture stderr temporarily to avoid noisy test logs
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	root := t.TempDir()
	slides := domain.DefaultSlides()
	slides[0].Title = "Unsaved edit"

	func() {
		defer Recover(Target{DataDir: root, Snapshot: func() domain.SlideList { return slides }})
		panic("boom")
	}()

	cdir := filepath.Join(root, storage.CrashDirName)
	files, err := os.ReadDir(cdir)
	if err != nil {
		t.Fatalf("read crash dir: %v", err)
	}
	var report, snapshot string
	for _, f := range files {
		switch {
		case strings.HasSuffix(f.Name(), ".log"):
			report = filepath.Join(cdir, f.Name())
		case strings.HasPrefix(f.Name(), "deck-") && strings.HasSuffix(f.Name(), ".json"):
			snapshot = filepath.Join(cdir, f.Name())
		}
	}
	if report == "" || snapshot == "" {
		t.Fatalf("expected report and snapshot, found %v", files)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) {
		t.Fatalf("report does not contain panic: %s", string(b))
	}
	sb, err := os.ReadFile(snapshot)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	got, err := storage.Decode(sb)
	if err != nil || got[0].Title != "Unsaved edit" {
		t.Fatalf("snapshot does not hold the in-memory deck: %v", err)
	}

	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}

func TestRecoverSurvivesPanickingSnapshot(t *testing.T) {
	oldStderr := os.Stderr
	devnull, _ := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	os.Stderr = devnull
	defer func() { os.Stderr = oldStderr; _ = devnull.Close() }()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	func() {
		defer Recover(Target{DataDir: t.TempDir(), Snapshot: func() domain.SlideList { panic("again") }})
		panic("first")
	}()
	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}

func TestRecoverWithoutPanicDoesNothing(t *testing.T) {
	called := false
	oldExit := exitFn
	exitFn = func(int) { called = true }
	defer func() { exitFn = oldExit }()

	func() {
		defer Recover(Target{})
	}()
	if called {
		t.Fatalf("exit must not be called without a panic")
	}
}
