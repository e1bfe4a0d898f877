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

// LogFunc is invoked once per token destroyed by an ExitLoggerPlace, with
// the owning place's ID and the token about to be destroyed.
type LogFunc func(placeID string, tok *token.Token)

// ExitLoggerPlace destroys every token that reaches it, optionally running
// a caller-supplied LogFunc first. It is the terminal behaviour for
// workflow outcomes the net does not need to keep.
type ExitLoggerPlace struct {
	place *net.Place
	logFn LogFunc

	destroyedCount int64

	logger  obs.Logger
	metrics obs.MetricsCollector
}

// NewExitLoggerPlace binds an ExitLoggerPlace to place. logFn may be nil.
func NewExitLoggerPlace(place *net.Place, logFn LogFunc, logger obs.Logger, metrics obs.MetricsCollector) *ExitLoggerPlace {
	if logger == nil {
		logger = obs.NoOpLogger{}
	}
	if metrics == nil {
		metrics = obs.NoOpMetrics{}
	}
	return &ExitLoggerPlace{place: place, logFn: logFn, logger: logger, metrics: metrics}
}

// DestroyedCount returns the cumulative number of tokens destroyed.
func (x *ExitLoggerPlace) DestroyedCount() int64 {
	return atomic.LoadInt64(&x.destroyedCount)
}

// OnTokenEnter logs and destroys tok. The token is removed from the main
// queue by id rather than added to any queue: an exit place never holds
// tokens between ticks under normal operation.
func (x *ExitLoggerPlace) OnTokenEnter(id token.ID, tok *token.Token) {
	x.place.RemoveTokenByID(id)
	x.destroy(tok)
}

// Tick drains whatever remains in the main queue and destroys it the same
// way, covering the case where a token reached the main queue without
// on_token_enter having been invoked for it.
func (x *ExitLoggerPlace) Tick(uint64) {
	for {
		_, tok, ok := x.place.RemoveToken()
		if !ok {
			return
		}
		x.destroy(tok)
	}
}

func (x *ExitLoggerPlace) destroy(tok *token.Token) {
	if x.logFn != nil {
		x.logFn(x.place.ID, tok)
	}
	atomic.AddInt64(&x.destroyedCount, 1)
	x.metrics.Inc("exit_destroyed_total")
	x.logger.Debug("exit logger destroyed token", map[string]interface{}{"place": x.place.ID})
}
