/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	applog "slidedeck/internal/log"
)

const (
	BackupsDirName = "backups"
	slotExt        = ".json"
	backupExt      = ".bak"
	backupStamp    = "20060102-150405.000000"
)

// FileKV stores each key as <Dir>/<key>.json.
// Every Put and Delete first copies the previous value to a timestamped backup
// under <Dir>/backups and keeps at most MaxBackups of them per key.
type FileKV struct {
	Dir        string
	MaxBackups int
}

// NewFileKV creates dir (and its backups folder) if needed.
func NewFileKV(dir string, maxBackups int) (*FileKV, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage: data dir is required")
	}
	if err := os.MkdirAll(filepath.Join(dir, BackupsDirName), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if maxBackups < 0 {
		maxBackups = 0
	}
	return &FileKV{Dir: dir, MaxBackups: maxBackups}, nil
}

// SlotPath returns the file holding key.
func (f *FileKV) SlotPath(key string) string { return filepath.Join(f.Dir, key+slotExt) }

func (f *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.SlotPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return b, nil
}

// Put writes value with transactional semantics: temp file in the same
// directory, fsync, then rename over the target.
func (f *FileKV) Put(_ context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	target := f.SlotPath(key)
	if err := f.backup(key); err != nil {
		return err
	}
	temp := filepath.Join(f.Dir, fmt.Sprintf(".%s.tmp-%d-%d", key, os.Getpid(), rand.Int()))
	if err := writeFileSync(temp, value); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("write temp slot: %w", err)
	}
	if err := os.Rename(temp, target); err != nil {
		// Windows refuses to rename over an existing file.
		if _, statErr := os.Stat(target); statErr == nil {
			_ = os.Remove(target)
			err = os.Rename(temp, target)
		}
		if err != nil {
			_ = os.Remove(temp)
			return fmt.Errorf("replace slot: %w", err)
		}
	}
	f.prune(key)
	return nil
}

func (f *FileKV) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := f.backup(key); err != nil {
		return err
	}
	if err := os.Remove(f.SlotPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove slot: %w", err)
	}
	f.prune(key)
	return nil
}

func (f *FileKV) Close() error { return nil }

// Backups lists backup files for key, oldest first.
func (f *FileKV) Backups(key string) ([]string, error) {
	bdir := filepath.Join(f.Dir, BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	prefix := key + slotExt + "."
	var out []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, backupExt) {
			out = append(out, filepath.Join(bdir, name))
		}
	}
	sort.Strings(out) // timestamp in name yields lexicographic order
	return out, nil
}

// History returns the backups of key, newest first.
func (f *FileKV) History(_ context.Context, key string) ([]Version, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	list, err := f.Backups(key)
	if err != nil {
		return nil, err
	}
	prefix := key + slotExt + "."
	out := make([]Version, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		b, err := os.ReadFile(list[i])
		if err != nil {
			return nil, fmt.Errorf("read backup: %w", err)
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(list[i]), prefix), backupExt)
		at, _ := time.ParseInLocation(backupStamp, stamp, time.Local)
		out = append(out, Version{SavedAt: at, Value: b})
	}
	return out, nil
}

func (f *FileKV) backup(key string) error {
	if f.MaxBackups == 0 {
		return nil
	}
	src := f.SlotPath(key)
	if _, err := os.Stat(src); err != nil {
		return nil
	}
	name := fmt.Sprintf("%s%s.%s%s", key, slotExt, time.Now().Format(backupStamp), backupExt)
	if err := copyFile(src, filepath.Join(f.Dir, BackupsDirName, name)); err != nil {
		return fmt.Errorf("backup current slot: %w", err)
	}
	return nil
}

// prune is best-effort; a leftover backup is harmless.
func (f *FileKV) prune(key string) {
	list, err := f.Backups(key)
	if err != nil || len(list) <= f.MaxBackups {
		return
	}
	l := applog.WithOperation(applog.WithComponent("storage"), "prune_backups")
	for _, p := range list[:len(list)-f.MaxBackups] {
		if err := os.Remove(p); err != nil {
			l.Warn("remove old backup failed", slog.String("path", p), slog.Any("err", err))
		}
	}
}

// writeFileSync writes data to a file, ensures it is flushed to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

// copyFile copies a file from src to dst (overwrites dst if exists).
func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	return df.Sync()
}
