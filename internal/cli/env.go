/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"slidedeck/internal/config"
	"slidedeck/internal/deck"
	"slidedeck/internal/domain"
	applog "slidedeck/internal/log"
	"slidedeck/internal/storage"
)

// deckEnv is an opened deck: backend, gateway and a store whose changes are
// written through.
type deckEnv struct {
	cfg     config.AppConfig
	dataDir string
	kv      storage.KV
	gw      *storage.Gateway
	store   *deck.Store
	saver   *deck.Persister
	detach  func()

	// writeErr is the last failed write-through.
	writeErr error
}

func openDeck(ctx context.Context, cfg config.AppConfig) (*deckEnv, error) {
	l := applog.WithOperation(applog.WithComponent("cli"), "open_deck")
	var dir string
	if cfg.Storage.Backend != config.BackendMemory {
		d, err := cfg.DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		dir = d
	}
	kv, err := storage.OpenKV(storage.Options{Backend: cfg.Storage.Backend, Dir: dir, MaxBackups: cfg.Storage.MaxBackups})
	if err != nil {
		return nil, err
	}
	gw := storage.NewGateway(kv, cfg.Storage.Slot)
	store := deck.Open(ctx, gw, domain.DefaultSlides, deck.WithLogger(applog.WithComponent("deck")))
	e := &deckEnv{cfg: cfg, dataDir: dir, kv: kv, gw: gw, store: store, saver: deck.NewPersister(gw)}
	e.saver.OnError = func(err error) { e.writeErr = err }
	e.detach = e.saver.Attach(store)
	l.Debug("deck opened",
		slog.String("backend", cfg.Storage.Backend),
		slog.String("dir", dir),
		slog.String("slot", gw.Slot()),
		slog.String("source", store.Source().String()))
	return e, nil
}

func (e *deckEnv) Close() error {
	e.detach()
	return e.kv.Close()
}

// slideIndex turns a 1-based slide number argument into an index.
func slideIndex(arg string, total int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("slide number %q is not a number", arg)
	}
	if n < 1 || n > total {
		return 0, fmt.Errorf("slide number must be between 1 and %d, got %d", total, n)
	}
	return n - 1, nil
}

var errWriteFailed = errors.New("change could not be saved")

// saved reports a write-through failure of the last change.
func (e *deckEnv) saved() error {
	if e.writeErr != nil {
		return fmt.Errorf("%w: %w", errWriteFailed, e.writeErr)
	}
	return nil
}
