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

package behavior

import (
	"sync"
	"time"

	"github.com/behaviornet/runtime/clock"
	"github.com/behaviornet/runtime/net"
	"github.com/behaviornet/runtime/obs"
	"github.com/behaviornet/runtime/token"
)

// Condition reports whether a waiting token should move to success ahead
// of its deadline. A nil Condition means no token moves to success on its
// own; every token either waits or times out to failure.
type Condition func(*token.Token) bool

// TimeoutFunc is invoked once per token that reaches its deadline, before
// the token is moved to the failure sub-queue.
type TimeoutFunc func(tok *token.Token)

// WaitWithTimeoutPlace holds tokens in its main sub-queue until either a
// condition becomes true (moved to success) or a deadline elapses (moved to
// failure). Requires sub-queues; EnableSubplaces is called automatically at
// construction.
type WaitWithTimeoutPlace struct {
	place     *net.Place
	timeout   time.Duration
	condition Condition
	onTimeout TimeoutFunc
	clock     clock.Clock

	mu        sync.Mutex
	deadlines map[token.ID]time.Time

	logger  obs.Logger
	metrics obs.MetricsCollector
}

// NewWaitWithTimeoutPlace binds a WaitWithTimeoutPlace to place. condition
// and onTimeout may be nil. clk defaults to a RealTimeClock if nil.
func NewWaitWithTimeoutPlace(place *net.Place, timeout time.Duration, condition Condition, onTimeout TimeoutFunc, clk clock.Clock, logger obs.Logger, metrics obs.MetricsCollector) *WaitWithTimeoutPlace {
	if clk == nil {
		clk = clock.NewRealTimeClock()
	}
	if logger == nil {
		logger = obs.NoOpLogger{}
	}
	if metrics == nil {
		metrics = obs.NoOpMetrics{}
	}
	place.EnableSubplaces()
	return &WaitWithTimeoutPlace{
		place:     place,
		timeout:   timeout,
		condition: condition,
		onTimeout: onTimeout,
		clock:     clk,
		deadlines: make(map[token.ID]time.Time),
		logger:    logger,
		metrics:   metrics,
	}
}

// OnTokenEnter records a deadline for the token that just landed in the
// main sub-queue; per the design notes this is the "main" sub-queue by
// name, the same queue every plain place calls its main queue.
func (w *WaitWithTimeoutPlace) OnTokenEnter(id token.ID, tok *token.Token) {
	w.mu.Lock()
	w.deadlines[id] = w.clock.Now().Add(w.timeout)
	w.mu.Unlock()
	w.metrics.Inc("behavior_on_token_enter_total")
}

// Tick evaluates every waiting token's condition and deadline.
func (w *WaitWithTimeoutPlace) Tick(uint64) {
	w.metrics.Inc("behavior_tick_total")
	now := w.clock.Now()
	main := w.place.Main()

	present := main.IDsByWaitingTime()
	presentSet := make(map[token.ID]bool, len(present))
	for _, id := range present {
		presentSet[id] = true
	}
	w.pruneDeadlines(presentSet)

	for _, id := range present {
		tok, ok := main.Get(id)
		if !ok {
			w.dropDeadline(id)
			continue
		}

		deadline, tracked := w.deadlineFor(id)
		if !tracked {
			continue
		}

		switch {
		case w.condition != nil && w.condition(tok):
			w.place.MoveToken(id, net.SuffixMain, net.SuffixSuccess)
			w.dropDeadline(id)

		case !now.Before(deadline):
			if w.onTimeout != nil {
				w.onTimeout(tok)
			}
			w.place.MoveToken(id, net.SuffixMain, net.SuffixFailure)
			w.dropDeadline(id)
			w.metrics.Inc("wait_timeout_total")
		}
	}
}

func (w *WaitWithTimeoutPlace) deadlineFor(id token.ID) (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.deadlines[id]
	return d, ok
}

func (w *WaitWithTimeoutPlace) dropDeadline(id token.ID) {
	w.mu.Lock()
	delete(w.deadlines, id)
	w.mu.Unlock()
}

// pruneDeadlines drops every tracked deadline whose token is no longer in
// the main sub-queue -- it was consumed by a transition between ticks.
func (w *WaitWithTimeoutPlace) pruneDeadlines(present map[token.ID]bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id := range w.deadlines {
		if !present[id] {
			delete(w.deadlines, id)
		}
	}
}
