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

// Package runtime implements the RuntimeController: the single owner of a
// loaded net, its action executor, every place behaviour, and the
// discrete-time tick loop that drives them all under one coarse mutex.
package runtime

import (
	"sync"
	"time"

	"github.com/behaviornet/runtime/action"
	"github.com/behaviornet/runtime/behavior"
	"github.com/behaviornet/runtime/clock"
	"github.com/behaviornet/runtime/net"
	"github.com/behaviornet/runtime/obs"
	"github.com/behaviornet/runtime/token"
)

// State is the controller's coarse lifecycle state.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateError
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Stats is a point-in-time snapshot of controller bookkeeping, returned by
// Stats(). ActiveTokens is computed at call time from every place's main
// queue and sub-queues, not maintained incrementally; a token on an
// in-flight action is counted once, in its place's in_execution sub-queue.
type Stats struct {
	Epoch            uint64
	TransitionsFired uint64
	TokensProcessed  uint64
	ActiveTokens     int
	StartInstant     time.Time
	LastTickInstant  time.Time
}

// EventHooks are the three synchronous callback slots the controller fires
// during a tick or InjectToken. Each receives a borrowed (non-owning)
// token reference; implementations must not retain it past the call.
type EventHooks struct {
	OnTokenEnter      func(placeID string, tok *token.Token)
	OnTokenExit       func(placeID string, tok *token.Token)
	OnTransitionFired func(transitionID string, epoch uint64)
}

// Controller owns the net, the action executor, every place's behaviour,
// and the action registry, and runs the tick loop that advances them. All
// public methods take the same coarse mutex a background tick loop holds
// during a tick, so external API calls are mutually exclusive with ticking.
type Controller struct {
	mu sync.Mutex

	n        *net.Net
	executor *action.Executor
	registry *action.Registry

	behaviors   map[string]behavior.PlaceBehavior
	entrypoints map[string]*behavior.EntrypointPlace
	order       []string // place IDs, insertion order, for deterministic behaviour ticking

	state            State
	epoch            uint64
	transitionsFired uint64
	tokensProcessed  uint64
	startInstant     time.Time
	lastTickInstant  time.Time
	errs             []error

	tickInterval time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}

	clk     clock.Clock
	logger  obs.Logger
	metrics obs.MetricsCollector

	workerPoolSize int

	hooks EventHooks
}

// Option configures a Controller at construction.
type Option func(*Controller)

// WithClock overrides the time source. Defaults to a RealTimeClock.
func WithClock(c clock.Clock) Option {
	return func(ctl *Controller) { ctl.clk = c }
}

// WithObservability attaches a logger and metrics collector.
func WithObservability(logger obs.Logger, metrics obs.MetricsCollector) Option {
	return func(ctl *Controller) {
		if logger != nil {
			ctl.logger = logger
		}
		if metrics != nil {
			ctl.metrics = metrics
		}
	}
}

// WithTickInterval overrides the background loop's tick cadence. Defaults
// to 10ms.
func WithTickInterval(d time.Duration) Option {
	return func(ctl *Controller) { ctl.tickInterval = d }
}

// WithEventHooks installs the three event callback slots at construction.
// Equivalent to assigning OnTokenEnter/OnTokenExit/OnTransitionFired
// individually.
func WithEventHooks(hooks EventHooks) Option {
	return func(ctl *Controller) { ctl.hooks = hooks }
}

// WithWorkerPool enables the action executor's bounded concurrent dispatch.
// See action.WithWorkerPool.
func WithWorkerPool(size int) Option {
	return func(ctl *Controller) { ctl.workerPoolSize = size }
}

// New creates a Controller with no net loaded. Call LoadConfig before
// Start or Tick.
func New(opts ...Option) *Controller {
	ctl := &Controller{
		n:            net.New(),
		registry:     action.NewRegistry(),
		behaviors:    make(map[string]behavior.PlaceBehavior),
		entrypoints:  make(map[string]*behavior.EntrypointPlace),
		state:        StateStopped,
		tickInterval: 10 * time.Millisecond,
		clk:          clock.NewRealTimeClock(),
		logger:       obs.NoOpLogger{},
		metrics:      obs.NoOpMetrics{},
	}
	for _, opt := range opts {
		opt(ctl)
	}
	execOpts := []action.Option{action.WithClock(ctl.clk), action.WithObservability(ctl.logger, ctl.metrics)}
	if ctl.workerPoolSize > 0 {
		execOpts = append(execOpts, action.WithWorkerPool(ctl.workerPoolSize))
	}
	ctl.executor = action.NewExecutor(execOpts...)
	return ctl
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Errors returns every configuration or runtime error the controller has
// logged since the last successful LoadConfig, which clears the log.
func (c *Controller) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]error, len(c.errs))
	copy(out, c.errs)
	return out
}

// Stats returns a snapshot of cumulative execution statistics.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Epoch:            c.epoch,
		TransitionsFired: c.transitionsFired,
		TokensProcessed:  c.tokensProcessed,
		ActiveTokens:     c.activeTokenCountLocked(),
		StartInstant:     c.startInstant,
		LastTickInstant:  c.lastTickInstant,
	}
}

// activeTokenCountLocked sums every token held by any place's main or
// sub-queue. A token currently in flight on an action is, by construction,
// sitting in that action place's in_execution sub-queue -- it is not
// counted separately against the executor.
func (c *Controller) activeTokenCountLocked() int {
	total := 0
	for _, p := range c.n.Places() {
		total += p.Main().Size()
		if p.HasSubplaces() {
			for _, suffix := range []net.Suffix{net.SuffixInExecution, net.SuffixSuccess, net.SuffixFailure, net.SuffixError} {
				q, err := p.Subplace(suffix)
				if err == nil {
					total += q.Size()
				}
			}
		}
	}
	return total
}

// RegisterAction binds invoker under name on the shared registry. Every
// ActionPlace referring to name resolves its invoker from the registry on
// each token, so a rebind here takes effect on the next token routed to
// that place -- the "rebinding the same name replaces the previous
// invoker" rule falls out of that live lookup rather than requiring the
// controller to walk loaded places.
func (c *Controller) RegisterAction(name string, invoker action.Invoker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registry.Register(name, invoker)
}

// OnTokenEnter sets the token-enter event callback.
func (c *Controller) OnTokenEnter(fn func(placeID string, tok *token.Token)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks.OnTokenEnter = fn
}

// OnTokenExit sets the token-exit event callback.
func (c *Controller) OnTokenExit(fn func(placeID string, tok *token.Token)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks.OnTokenExit = fn
}

// OnTransitionFired sets the transition-fired event callback.
func (c *Controller) OnTransitionFired(fn func(transitionID string, epoch uint64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks.OnTransitionFired = fn
}

// GetPlaceTokens returns (id, data) pairs for every token currently held
// by the place with the given ID, across its main queue and every
// sub-queue it has enabled. Returns ok=false for an unknown place.
func (c *Controller) GetPlaceTokens(placeID string) (tokens []TokenView, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, exists := c.n.GetPlace(placeID)
	if !exists {
		return nil, false
	}

	suffixes := []net.Suffix{net.SuffixMain}
	if p.HasSubplaces() {
		suffixes = append(suffixes, net.SuffixInExecution, net.SuffixSuccess, net.SuffixFailure, net.SuffixError)
	}
	for _, suffix := range suffixes {
		q, err := p.Subplace(suffix)
		if err != nil {
			continue
		}
		for _, entry := range q.Snapshot() {
			tokens = append(tokens, TokenView{ID: entry.ID, Suffix: suffix, Data: entry.Tok.Data()})
		}
	}
	return tokens, true
}

// TokenView is a read-only projection of a queued token for external
// inspection via GetPlaceTokens.
type TokenView struct {
	ID     token.ID
	Suffix net.Suffix
	Data   map[string]interface{}
}
