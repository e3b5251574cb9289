/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package deck

import (
	"context"
	"log/slog"
	"time"

	"slidedeck/internal/domain"
	applog "slidedeck/internal/log"
)

// Writer is the persistence side of a storage gateway.
type Writer interface {
	Save(ctx context.Context, slides domain.SlideList) error
	Clear(ctx context.Context) error
}

// DefaultWriteTimeout bounds a single write-through.
const DefaultWriteTimeout = 5 * time.Second

// Persister writes every store change through to a Writer: updates save the
// whole list, resets clear the slot. Failures are logged and handed to
// OnError; the in-memory change stands and nothing is retried.
type Persister struct {
	w   Writer
	log *slog.Logger

	Timeout time.Duration
	// OnError receives every failed write.
	OnError func(error)
	// OnSaved runs after every successful write.
	OnSaved func(ChangeKind)
}

func NewPersister(w Writer) *Persister {
	return &Persister{w: w, Timeout: DefaultWriteTimeout, log: applog.WithComponent("deck")}
}

// Attach subscribes p to s and returns the unsubscribe function.
func (p *Persister) Attach(s *Store) func() { return s.Subscribe(p.Observe) }

// Observe handles one change. It is an Observer.
func (p *Persister) Observe(c Change) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var err error
	switch c.Kind {
	case ChangeUpdate:
		err = p.w.Save(ctx, c.Slides)
	case ChangeReset:
		err = p.w.Clear(ctx)
	default:
		return
	}
	l := applog.WithOperation(p.log, "persist").With(slog.String("change", c.Kind.String()))
	if err != nil {
		l.Warn("write-through failed; change kept in memory only", slog.Any("err", err))
		if p.OnError != nil {
			p.OnError(err)
		}
		return
	}
	l.Debug("change persisted", slog.Int("index", c.Index), slog.String("field", string(c.Field)))
	if p.OnSaved != nil {
		p.OnSaved(c.Kind)
	}
}
