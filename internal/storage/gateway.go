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
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"slidedeck/internal/domain"
	applog "slidedeck/internal/log"
)

// DefaultSlot is the key the deck is stored under unless configured otherwise.
const DefaultSlot = "presentation_slides_v1"

// Gateway reads and writes the deck in a single named slot of a KV.
type Gateway struct {
	kv   KV
	slot string
}

// NewGateway binds kv to slot. An empty slot selects DefaultSlot.
func NewGateway(kv KV, slot string) *Gateway {
	if strings.TrimSpace(slot) == "" {
		slot = DefaultSlot
	}
	return &Gateway{kv: kv, slot: slot}
}

// Slot returns the key this gateway writes.
func (g *Gateway) Slot() string { return g.slot }

// Save serializes slides and overwrites the slot.
func (g *Gateway) Save(ctx context.Context, slides domain.SlideList) error {
	data, err := json.Marshal(slides)
	if err != nil {
		return fmt.Errorf("encode slides: %w", err)
	}
	if err := g.kv.Put(ctx, g.slot, data); err != nil {
		return fmt.Errorf("save slot %s: %w", g.slot, err)
	}
	applog.WithOperation(applog.WithComponent("storage"), "save").Debug("slot written",
		slog.String("slot", g.slot), slog.Int("bytes", len(data)), slog.Int("slides", len(slides)))
	return nil
}

// LoadRaw returns the stored text. ok is false when the slot holds nothing.
func (g *Gateway) LoadRaw(ctx context.Context) (raw []byte, ok bool, err error) {
	b, err := g.kv.Get(ctx, g.slot)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load slot %s: %w", g.slot, err)
	}
	return b, true, nil
}

// Clear removes the slot. Clearing an empty slot succeeds.
func (g *Gateway) Clear(ctx context.Context) error {
	if err := g.kv.Delete(ctx, g.slot); err != nil {
		return fmt.Errorf("clear slot %s: %w", g.slot, err)
	}
	return nil
}
