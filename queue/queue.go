// Copyright 2026 The JazzPetri Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package queue implements the token queue: a FIFO of tokens with
// lockable entries, age-ordered selection, and ID-based lookup.
//
// A locked entry stays visible to ID-based lookup and removal but is
// skipped by age-ordered selection (Pop, FindAvailable,
// IDsByWaitingTime). This lets a place behaviour reserve a token while an
// action runs against it without removing it from its logical home, so
// the token is never duplicated even on a cancellation path.
package queue

import (
	"sync"
	"time"

	"github.com/behaviornet/runtime/obs"
	"github.com/behaviornet/runtime/token"
)

type entry struct {
	id       token.ID
	tok      *token.Token
	arrival  time.Time
	locked   bool
}

// Queue is a thread-safe, lockable, age-ordered token queue. The zero value
// is not usable; construct with New.
type Queue struct {
	mu      sync.Mutex
	entries []*entry
	byID    map[token.ID]*entry
	nextID  token.ID
	now     func() time.Time

	logger  obs.Logger
	metrics obs.MetricsCollector
	name    string
}

// Option configures a Queue at construction.
type Option func(*Queue)

// WithClock overrides the time source used to stamp arrival instants.
// Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// WithObservability attaches a logger and metrics collector, used for
// per-operation structured logs and counters. Either may be nil.
func WithObservability(logger obs.Logger, metrics obs.MetricsCollector) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
		if metrics != nil {
			q.metrics = metrics
		}
	}
}

// WithName attaches a name used only in log fields, for disambiguating
// multiple queues (e.g. a place's five sub-queues) in shared log output.
func WithName(name string) Option {
	return func(q *Queue) { q.name = name }
}

// New creates an empty Queue. IDs allocated by this queue start at 1 and
// are unique for the lifetime of this instance.
func New(opts ...Option) *Queue {
	q := &Queue{
		byID:    make(map[token.ID]*entry),
		now:     time.Now,
		logger:  obs.NoOpLogger{},
		metrics: obs.NoOpMetrics{},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push appends a token to the back of the queue and allocates its ID.
func (q *Queue) Push(tok *token.Token) token.ID {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	e := &entry{id: q.nextID, tok: tok, arrival: q.now()}
	q.entries = append(q.entries, e)
	q.byID[e.id] = e

	q.metrics.Inc("queue_push_total")
	q.logger.Debug("queue push", map[string]interface{}{"queue": q.name, "id": uint64(e.id)})
	return e.id
}

// Pop removes and returns the oldest unlocked entry. Returns ok=false if
// every entry is locked or the queue is empty.
func (q *Queue) Pop() (id token.ID, tok *token.Token, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if e.locked {
			continue
		}
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
		delete(q.byID, e.id)
		q.metrics.Inc("queue_pop_total")
		q.logger.Debug("queue pop", map[string]interface{}{"queue": q.name, "id": uint64(e.id)})
		return e.id, e.tok, true
	}
	return 0, nil, false
}

// Peek returns the oldest unlocked token without removing it.
func (q *Queue) Peek() (id token.ID, tok *token.Token, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, e := range q.entries {
		if e.locked {
			continue
		}
		return e.id, e.tok, true
	}
	return 0, nil, false
}

// Remove removes and returns the entry with the given ID, locked or not.
func (q *Queue) Remove(id token.ID) (*token.Token, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.byID[id]
	if !ok {
		return nil, false
	}
	for i, cand := range q.entries {
		if cand.id == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			break
		}
	}
	delete(q.byID, id)
	q.metrics.Inc("queue_remove_total")
	q.logger.Debug("queue remove", map[string]interface{}{"queue": q.name, "id": uint64(id)})
	return e.tok, true
}

// Lock marks the entry with the given ID locked, excluding it from
// age-ordered selection. Unknown IDs are silently ignored.
func (q *Queue) Lock(id token.ID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if e, ok := q.byID[id]; ok {
		e.locked = true
		q.metrics.Inc("queue_lock_total")
		q.logger.Debug("queue lock", map[string]interface{}{"queue": q.name, "id": uint64(id)})
	}
}

// Unlock clears the locked flag on the entry with the given ID. Unknown
// IDs are silently ignored.
func (q *Queue) Unlock(id token.ID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if e, ok := q.byID[id]; ok {
		e.locked = false
		q.metrics.Inc("queue_unlock_total")
		q.logger.Debug("queue unlock", map[string]interface{}{"queue": q.name, "id": uint64(id)})
	}
}

// Get returns the token with the given ID without removing or locking it.
func (q *Queue) Get(id token.ID) (*token.Token, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.byID[id]
	if !ok {
		return nil, false
	}
	return e.tok, true
}

// AvailableCount returns the number of unlocked entries.
func (q *Queue) AvailableCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, e := range q.entries {
		if !e.locked {
			n++
		}
	}
	return n
}

// Size returns the total number of entries, locked or not.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// FindAvailable returns the ID of the oldest unlocked entry whose token
// satisfies predicate, or ok=false if none does.
func (q *Queue) FindAvailable(predicate func(*token.Token) bool) (id token.ID, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.entries {
		if e.locked {
			continue
		}
		if predicate(e.tok) {
			return e.id, true
		}
	}
	return 0, false
}

// IDsByWaitingTime returns the IDs of unlocked entries, oldest first.
func (q *Queue) IDsByWaitingTime() []token.ID {
	q.mu.Lock()
	defer q.mu.Unlock()
	ids := make([]token.ID, 0, len(q.entries))
	for _, e := range q.entries {
		if !e.locked {
			ids = append(ids, e.id)
		}
	}
	return ids
}

// Snapshot returns (id, token) pairs for every entry, locked or not, in
// FIFO order. Used by introspection calls like get_place_tokens.
func (q *Queue) Snapshot() []struct {
	ID  token.ID
	Tok *token.Token
} {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]struct {
		ID  token.ID
		Tok *token.Token
	}, 0, len(q.entries))
	for _, e := range q.entries {
		out = append(out, struct {
			ID  token.ID
			Tok *token.Token
		}{ID: e.id, Tok: e.tok})
	}
	return out
}
