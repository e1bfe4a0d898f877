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
	"sync/atomic"

	"github.com/behaviornet/runtime/net"
	"github.com/behaviornet/runtime/obs"
	"github.com/behaviornet/runtime/token"
)

// Validator decides whether an injected token is admitted. A nil Validator
// admits every token.
type Validator func(*token.Token) bool

// EntrypointPlace is the only behaviour through which tokens may enter a
// net from outside. on_token_enter is a no-op -- tokens never arrive here
// via a fired transition, because nothing in a correctly wired net has an
// outgoing arc into an entrypoint; that contract is enforced at the graph
// level, not by this behaviour.
type EntrypointPlace struct {
	place     *net.Place
	validator Validator

	injectedCount int64

	logger  obs.Logger
	metrics obs.MetricsCollector
}

// NewEntrypointPlace binds an EntrypointPlace to place. validator may be
// nil to admit every token.
func NewEntrypointPlace(place *net.Place, validator Validator, logger obs.Logger, metrics obs.MetricsCollector) *EntrypointPlace {
	if logger == nil {
		logger = obs.NoOpLogger{}
	}
	if metrics == nil {
		metrics = obs.NoOpMetrics{}
	}
	return &EntrypointPlace{place: place, validator: validator, logger: logger, metrics: metrics}
}

// Inject runs the validator, if any, and on acceptance pushes tok onto the
// bound place's main queue, returning the allocated ID. ok is false if the
// validator rejected the token or the place was at capacity; in neither
// case is the token retained.
func (e *EntrypointPlace) Inject(tok *token.Token) (id token.ID, ok bool) {
	if e.validator != nil && !e.validator(tok) {
		e.metrics.Inc("entrypoint_rejected_total")
		e.logger.Debug("entrypoint rejected token", map[string]interface{}{"place": e.place.ID})
		return 0, false
	}

	allocated, err := e.place.AddToken(tok)
	if err != nil {
		e.metrics.Inc("entrypoint_rejected_total")
		e.logger.Debug("entrypoint dropped token at capacity", map[string]interface{}{"place": e.place.ID, "error": err.Error()})
		return 0, false
	}

	atomic.AddInt64(&e.injectedCount, 1)
	e.metrics.Inc("entrypoint_injected_total")
	return allocated, true
}

// InjectedCount returns the cumulative number of tokens admitted by Inject.
func (e *EntrypointPlace) InjectedCount() int64 {
	return atomic.LoadInt64(&e.injectedCount)
}

func (e *EntrypointPlace) OnTokenEnter(token.ID, *token.Token) {}

func (e *EntrypointPlace) Tick(uint64) {}
