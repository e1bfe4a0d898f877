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

package action

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/behaviornet/runtime/clock"
	"github.com/behaviornet/runtime/obs"
	"github.com/behaviornet/runtime/token"
)

// Executor owns every in-flight ActionContext and steps them all on each
// Poll call. It runs cooperatively on the caller's goroutine: Poll is the
// only progress point, and invokers are called inline. An optional bounded
// worker pool may dispatch invoker calls concurrently, but folding the
// result and invoking the callback always happens on the goroutine that
// called Poll, preserving the single-progress-point contract.
type Executor struct {
	mu       sync.Mutex
	inFlight map[string]*Context

	clock clock.Clock

	logger  obs.Logger
	metrics obs.MetricsCollector

	workerPoolSize int
}

// Option configures an Executor at construction.
type Option func(*Executor)

// WithClock overrides the time source. Defaults to a RealTimeClock.
func WithClock(c clock.Clock) Option {
	return func(e *Executor) { e.clock = c }
}

// WithObservability attaches a logger and metrics collector.
func WithObservability(logger obs.Logger, metrics obs.MetricsCollector) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
		if metrics != nil {
			e.metrics = metrics
		}
	}
}

// WithWorkerPool enables dispatching invoker calls to a bounded pool of
// goroutines during Poll, bounded by size. size <= 0 disables the pool
// (the default): invokers run one at a time, inline, in no fixed order.
func WithWorkerPool(size int) Option {
	return func(e *Executor) { e.workerPoolSize = size }
}

// NewExecutor creates an empty Executor.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		inFlight: make(map[string]*Context),
		clock:    clock.NewRealTimeClock(),
		logger:   obs.NoOpLogger{},
		metrics:  obs.NoOpMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartAction inserts a new Pending context and returns its ID.
func (e *Executor) StartAction(tok *token.Token, actor Actor, invoker Invoker, policy RetryPolicy, callback Callback) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := uuid.NewString()
	e.inFlight[id] = &Context{
		ID:       id,
		Token:    tok,
		Actor:    actor,
		invoker:  invoker,
		policy:   policy,
		callback: callback,
		State:    StatePending,
	}
	e.metrics.Inc("action_started_total")
	e.logger.Debug("action started", map[string]interface{}{"action_id": id})
	return id
}

// Cancel sets the intent to cancel the context with the given ID. Observed
// at the next Poll.
func (e *Executor) Cancel(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ctx, ok := e.inFlight[id]; ok && !ctx.State.IsTerminal() {
		ctx.State = StateCancelled
	}
}

// CancelAll cancels every in-flight context.
func (e *Executor) CancelAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ctx := range e.inFlight {
		if !ctx.State.IsTerminal() {
			ctx.State = StateCancelled
		}
	}
}

// InFlightCount returns the number of contexts not yet removed by Poll.
func (e *Executor) InFlightCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.inFlight)
}

// Poll steps every in-flight context once, folds invoker results into
// state, and removes every context that reached a final state after
// invoking its callback exactly once.
func (e *Executor) Poll() {
	e.mu.Lock()
	ctxs := make([]*Context, 0, len(e.inFlight))
	for _, ctx := range e.inFlight {
		ctxs = append(ctxs, ctx)
	}
	e.mu.Unlock()

	now := e.clock.Now()

	if e.workerPoolSize > 0 {
		e.pollConcurrent(ctxs, now)
	} else {
		for _, ctx := range ctxs {
			e.step(ctx, now)
		}
	}

	e.mu.Lock()
	for id, ctx := range e.inFlight {
		if isFinal(ctx) {
			if !ctx.CallbackInvoked {
				ctx.CallbackInvoked = true
				if ctx.callback != nil {
					ctx.callback(ctx)
				}
				e.metrics.Inc("action_completed_total")
			}
			delete(e.inFlight, id)
		}
	}
	e.mu.Unlock()
}

// isFinal reports whether ctx has reached a state Poll should remove:
// Completed, Cancelled, TimedOut, or Failed/Error with no retry scheduled.
func isFinal(ctx *Context) bool {
	switch ctx.State {
	case StateCompleted, StateCancelled, StateTimedOut:
		return true
	case StateFailed, StateError:
		return ctx.NextRetryInstant.IsZero()
	default:
		return false
	}
}

func (e *Executor) pollConcurrent(ctxs []*Context, now time.Time) {
	sem := make(chan struct{}, e.workerPoolSize)
	var wg sync.WaitGroup
	for _, ctx := range ctxs {
		wg.Add(1)
		sem <- struct{}{}
		go func(c *Context) {
			defer wg.Done()
			defer func() { <-sem }()
			e.step(c, now)
		}(ctx)
	}
	wg.Wait()
}

// step runs one state-machine transition for ctx, per §4.5: a Pending
// context due for (re)try becomes Running and is invoked once inline; a
// Running context is checked for timeout, then invoked again; terminal
// states are left as-is.
func (e *Executor) step(ctx *Context, now time.Time) {
	if ctx.State.IsTerminal() {
		return
	}
	if ctx.State == StateCancelled {
		return
	}

	switch ctx.State {
	case StatePending:
		if ctx.AttemptCount == 0 || !now.Before(ctx.NextRetryInstant) {
			ctx.State = StateRunning
			ctx.StartInstant = now
			ctx.AttemptCount++
			ctx.NextRetryInstant = time.Time{}
			e.invokeAndFold(ctx, now)
		}

	case StateRunning:
		if ctx.policy.Timeout > 0 && now.Sub(ctx.StartInstant) >= ctx.policy.Timeout {
			ctx.LastResult = ErrorFrom(fmt.Errorf("action timed out after %s", ctx.policy.Timeout))
			if e.scheduleRetryIfAllowed(ctx, ctx.LastResult) {
				return
			}
			ctx.State = StateTimedOut
			return
		}
		e.invokeAndFold(ctx, now)
	}
}

// invokeAndFold calls the invoker once and folds its result into state,
// recovering a panic as a generic Error result -- the Go analogue of an
// invoker throwing an exception.
func (e *Executor) invokeAndFold(ctx *Context, now time.Time) {
	result := e.callInvoker(ctx)
	ctx.LastResult = result

	switch result.Status {
	case StatusSuccess:
		ctx.State = StateCompleted
	case StatusInProgress:
		ctx.State = StateRunning
	case StatusFailure:
		if e.scheduleRetryIfAllowed(ctx, result) {
			return
		}
		ctx.State = StateFailed
	case StatusError:
		if e.scheduleRetryIfAllowed(ctx, result) {
			return
		}
		ctx.State = StateError
	}
}

// scheduleRetryIfAllowed schedules a retry and returns true if policy
// permits one for this result's status and attempts remain; otherwise
// returns false and leaves ctx.State untouched for the caller to finalize.
func (e *Executor) scheduleRetryIfAllowed(ctx *Context, result Result) bool {
	allowed := (result.Status == StatusFailure && ctx.policy.RetryOnFailure) ||
		(result.Status == StatusError && ctx.policy.RetryOnError)
	if !allowed {
		return false
	}
	if ctx.AttemptCount > ctx.policy.MaxRetries {
		return false
	}
	ctx.State = StatePending
	ctx.NextRetryInstant = e.clock.Now().Add(ctx.policy.RetryDelay)
	e.metrics.Inc("action_retry_scheduled_total")
	return true
}

// callInvoker calls the invoker once, recovering a panic as a generic
// Error result -- the Go analogue of an invoker throwing an exception
// that the executor catches and converts.
func (e *Executor) callInvoker(ctx *Context) (result Result) {
	if ctx.invoker == nil {
		return ErrorFrom(fmt.Errorf("no invoker configured"))
	}
	defer func() {
		if r := recover(); r != nil {
			result = ErrorFrom(fmt.Errorf("invoker panicked: %v", r))
		}
	}()
	return ctx.invoker(ctx.Actor, ctx.Token)
}
