package crash

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slidedeck/internal/domain"
	"slidedeck/internal/storage"
)

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, err := writeReport("", "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	defer func() { _ = os.Remove(path) }()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "slidedeck Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
}

func TestWriteReportCreatesFileInDataDir(t *testing.T) {
	root := t.TempDir()
	path, err := writeReport(root, "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(root, storage.CrashDirName) {
		t.Fatalf("expected crash report under crash dir, got %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
}

func TestCaptureWritesReportAndSnapshotWithoutExit(t *testing.T) {
	called := false
	oldExit := exitFn
	exitFn = func(int) { called = true }
	defer func() { exitFn = oldExit }()

	root := t.TempDir()
	report := Capture(Target{DataDir: root, Snapshot: domain.DefaultSlides}, "render failed", []byte("stack"))

	if filepath.Dir(report) != filepath.Join(root, storage.CrashDirName) {
		t.Fatalf("report written to %s", report)
	}
	files, err := os.ReadDir(filepath.Join(root, storage.CrashDirName))
	if err != nil {
		t.Fatalf("read crash dir: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected report and snapshot, found %v", files)
	}
	if called {
		t.Fatalf("Capture must not exit")
	}
}

func TestCrashedUnwraps(t *testing.T) {
	base := errors.New("program experienced a panic")
	err := error(&Crashed{Report: "/tmp/r.log", Err: base})
	if !errors.Is(err, base) {
		t.Fatalf("Crashed should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "/tmp/r.log") {
		t.Fatalf("message should name the report: %v", err)
	}
}
