/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a crash report and an emergency copy of
// the deck before the process exits.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"slidedeck/internal/domain"
	applog "slidedeck/internal/log"
	"slidedeck/internal/storage"
	"slidedeck/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Target tells Recover where to write and what to save.
// Both fields are optional.
type Target struct {
	// DataDir receives crash/<report> and crash/<deck snapshot>.
	DataDir string
	// Snapshot returns the deck as it is in memory right now.
	Snapshot func() domain.SlideList
}

// Crashed is returned by a presenter that caught a panic itself and already
// wrote the crash report.
type Crashed struct {
	Report string
	Err    error
}

func (c *Crashed) Error() string {
	return fmt.Sprintf("crashed, report saved to %s: %v", c.Report, c.Err)
}

func (c *Crashed) Unwrap() error { return c.Err }

// Recover captures a panic, logs an error with stacktrace,
// writes an error report file, and attempts a crash-safe copy
// of the in-memory deck.
//
// Usage: defer crash.Recover(t)
func Recover(t Target) {
	if r := recover(); r != nil {
		reportPath := Capture(t, r, debug.Stack())
		l := applog.WithComponent("crash")
		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		// Exit with a non-zero code to indicate failure in CLI context.
		exitFn(2)
	}
}

// Capture writes the report and the deck snapshot for a panic that was
// recovered elsewhere and returns the report path. It neither prints nor exits.
func Capture(t Target, panicVal any, stack []byte) string {
	l := applog.WithComponent("crash")
	l.Error("panic recovered", slog.Any("panic", panicVal), slog.String("stack", string(stack)))

	reportPath, err := writeReport(t.DataDir, panicVal, stack)
	if err != nil {
		l.Error("crash report failed", slog.Any("err", err), slog.String("path", reportPath))
	}
	if t.Snapshot != nil && t.DataDir != "" {
		if path, err := saveSnapshot(t); err != nil {
			l.Error("crash snapshot failed", slog.Any("err", err))
		} else {
			l.Info("crash snapshot written", slog.String("path", path))
		}
	}
	return reportPath
}

// saveSnapshot must not panic again while the process is already failing.
func saveSnapshot(t Target) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("snapshot panicked: %v", r)
		}
	}()
	return storage.WriteCrashSnapshot(t.DataDir, t.Snapshot())
}

func writeReport(dataDir string, panicVal any, stack []byte) (string, error) {
	dir := os.TempDir()
	if dataDir != "" {
		dir = filepath.Join(dataDir, storage.CrashDirName)
		_ = os.MkdirAll(dir, 0o755)
	}
	stamp := time.Now().Format("20060102-150405")
	fname := fmt.Sprintf("slidedeck-crash-%s.log", stamp)
	path := filepath.Join(dir, fname)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "slidedeck Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if dataDir != "" {
		_, _ = fmt.Fprintf(&buf, "DataDir: %s\n", dataDir)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()
	return path, nil
}
