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

// Package net implements the net data model: places, arcs, transitions,
// and the net itself, including the enabling check and atomic fire-with-
// rollback rule.
package net

import (
	"fmt"
	"strings"

	"github.com/behaviornet/runtime/bnerr"
	"github.com/behaviornet/runtime/obs"
	"github.com/behaviornet/runtime/queue"
	"github.com/behaviornet/runtime/token"
)

// Suffix names one of a place's five sub-queues.
type Suffix string

const (
	// SuffixMain names the main queue explicitly.
	SuffixMain Suffix = "main"
	// SuffixInExecution holds tokens an action is currently executing.
	SuffixInExecution Suffix = "in_execution"
	// SuffixSuccess holds tokens whose action completed successfully.
	SuffixSuccess Suffix = "success"
	// SuffixFailure holds tokens whose action reported failure.
	SuffixFailure Suffix = "failure"
	// SuffixError holds tokens whose action errored, timed out, or was cancelled.
	SuffixError Suffix = "error"
)

var validSuffixes = map[Suffix]bool{
	SuffixMain:        true,
	SuffixInExecution: true,
	SuffixSuccess:     true,
	SuffixFailure:     true,
	SuffixError:       true,
}

// Place is a named container holding a queue of tokens. If sub-queues are
// enabled, four additional independent queues exist alongside the main
// queue: in_execution, success, failure, error.
type Place struct {
	ID            string
	Capacity      int // 0 means unbounded
	RequiredActor []string

	main      *queue.Queue
	sub       map[Suffix]*queue.Queue
	subQueues bool

	logger  obs.Logger
	metrics obs.MetricsCollector
}

// NewPlace creates a place with the given ID and optional capacity (0 for
// unbounded). logger and metrics may be nil.
func NewPlace(id string, capacity int, logger obs.Logger, metrics obs.MetricsCollector) *Place {
	if logger == nil {
		logger = obs.NoOpLogger{}
	}
	if metrics == nil {
		metrics = obs.NoOpMetrics{}
	}
	return &Place{
		ID:       id,
		Capacity: capacity,
		main:     queue.New(queue.WithName(id+"::main"), queue.WithObservability(logger, metrics)),
		logger:   logger,
		metrics:  metrics,
	}
}

// EnableSubplaces creates the four non-main sub-queues if not already
// created. Idempotent.
func (p *Place) EnableSubplaces() {
	if p.subQueues {
		return
	}
	p.sub = map[Suffix]*queue.Queue{
		SuffixInExecution: queue.New(queue.WithName(p.ID+"::in_execution"), queue.WithObservability(p.logger, p.metrics)),
		SuffixSuccess:     queue.New(queue.WithName(p.ID+"::success"), queue.WithObservability(p.logger, p.metrics)),
		SuffixFailure:     queue.New(queue.WithName(p.ID+"::failure"), queue.WithObservability(p.logger, p.metrics)),
		SuffixError:       queue.New(queue.WithName(p.ID+"::error"), queue.WithObservability(p.logger, p.metrics)),
	}
	p.subQueues = true
}

// HasSubplaces reports whether sub-queues are enabled.
func (p *Place) HasSubplaces() bool {
	return p.subQueues
}

// Subplace returns the queue for the given suffix. SuffixMain (or the
// empty suffix) always returns the main queue.
func (p *Place) Subplace(suffix Suffix) (*queue.Queue, error) {
	if suffix == "" || suffix == SuffixMain {
		return p.main, nil
	}
	if !p.subQueues {
		return nil, bnerr.Newf(bnerr.Validation, "place %s: sub-queues not enabled, cannot resolve suffix %q", p.ID, suffix)
	}
	q, ok := p.sub[suffix]
	if !ok {
		return nil, bnerr.Newf(bnerr.Validation, "place %s: unknown sub-queue suffix %q", p.ID, suffix)
	}
	return q, nil
}

// Main returns the place's main queue directly.
func (p *Place) Main() *queue.Queue {
	return p.main
}

// AddToken adds a token to the main queue, failing with a ResourceExhausted
// error if the main queue is already at capacity. A capacity of 0 means
// unbounded.
func (p *Place) AddToken(tok *token.Token) (token.ID, error) {
	if p.Capacity > 0 && p.main.Size() >= p.Capacity {
		return 0, bnerr.New(bnerr.ResourceExhausted, fmt.Sprintf("place %s is at capacity %d", p.ID, p.Capacity)).
			WithPayload("place_id", p.ID).WithPayload("capacity", p.Capacity)
	}
	return p.main.Push(tok), nil
}

// RemoveToken removes and returns the oldest unlocked token from the main
// queue.
func (p *Place) RemoveToken() (token.ID, *token.Token, bool) {
	return p.main.Pop()
}

// RemoveTokenByID removes the token with the given ID from the main queue.
func (p *Place) RemoveTokenByID(id token.ID) (*token.Token, bool) {
	return p.main.Remove(id)
}

// AvailableTokenCount returns the number of unlocked tokens in the main
// queue.
func (p *Place) AvailableTokenCount() int {
	return p.main.AvailableCount()
}

// MoveToken removes the token with id from the "from" sub-queue and pushes
// it onto the "to" sub-queue, returning the new ID it was allocated there.
// Used by behaviours to route tokens between their own sub-queues (e.g.
// WaitWithTimeoutPlace moving a token from main to success).
func (p *Place) MoveToken(id token.ID, from, to Suffix) (token.ID, error) {
	fromQ, err := p.Subplace(from)
	if err != nil {
		return 0, err
	}
	toQ, err := p.Subplace(to)
	if err != nil {
		return 0, err
	}
	tok, ok := fromQ.Remove(id)
	if !ok {
		return 0, bnerr.Newf(bnerr.Validation, "place %s: token %d not found in %q", p.ID, id, from)
	}
	return toQ.Push(tok), nil
}

// ParseRef splits a "place_id" or "place_id::suffix" reference into its
// place ID and suffix. An absent suffix returns SuffixMain.
func ParseRef(ref string) (placeID string, suffix Suffix, err error) {
	parts := strings.SplitN(ref, "::", 2)
	if len(parts) == 1 {
		return parts[0], SuffixMain, nil
	}
	s := Suffix(parts[1])
	if !validSuffixes[s] {
		return "", "", bnerr.Newf(bnerr.Validation, "invalid sub-queue suffix %q in reference %q", parts[1], ref)
	}
	return parts[0], s, nil
}
