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
	"regexp"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned by KV.Get when the key holds no value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrInvalidKey rejects keys that cannot be used as a file name.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// KV is the durable key-value store behind a Gateway.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Version is an earlier value of a slot.
type Version struct {
	SavedAt time.Time
	Value   []byte
}

// Historian is implemented by backends that keep earlier slot values.
// History returns them newest first.
type Historian interface {
	History(ctx context.Context, key string) ([]Version, error)
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

func checkKey(key string) error {
	if !keyPattern.MatchString(key) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Backend names understood by OpenKV.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend    string
	Dir        string
	MaxBackups int // backups (file) or history rows (sqlite) kept per key
}

// OpenKV opens the backend named by opts.Backend.
func OpenKV(opts Options) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case BackendFile, "":
		return NewFileKV(opts.Dir, opts.MaxBackups)
	case BackendSQLite:
		return OpenSQLiteKV(opts.Dir, opts.MaxBackups)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}
