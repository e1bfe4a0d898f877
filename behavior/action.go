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
	"github.com/behaviornet/runtime/action"
	"github.com/behaviornet/runtime/net"
	"github.com/behaviornet/runtime/obs"
	"github.com/behaviornet/runtime/token"
)

// ActionPlace routes each arriving token through an ActionContext on a
// shared Executor, then delivers the token to the success, failure, or
// error sub-queue according to the context's terminal state. Requires
// sub-queues; EnableSubplaces is called automatically at construction.
type ActionPlace struct {
	place      *net.Place
	actionName string
	registry   *action.Registry
	executor   *action.Executor
	policy     action.RetryPolicy
	actor      action.Actor

	logger  obs.Logger
	metrics obs.MetricsCollector
}

// NewActionPlace binds an ActionPlace to place. actor may be nil; it is
// passed through to every invocation unchanged for the lifetime of this
// behaviour.
func NewActionPlace(place *net.Place, actionName string, registry *action.Registry, executor *action.Executor, policy action.RetryPolicy, actor action.Actor, logger obs.Logger, metrics obs.MetricsCollector) *ActionPlace {
	if logger == nil {
		logger = obs.NoOpLogger{}
	}
	if metrics == nil {
		metrics = obs.NoOpMetrics{}
	}
	place.EnableSubplaces()
	return &ActionPlace{
		place:      place,
		actionName: actionName,
		registry:   registry,
		executor:   executor,
		policy:     policy,
		actor:      actor,
		logger:     logger,
		metrics:    metrics,
	}
}

// OnTokenEnter looks up the bound action's invoker and either starts an
// ActionContext for tok (moving it to the in_execution sub-queue for the
// duration) or, if no invoker is registered for this action name, routes
// tok straight to the error sub-queue.
func (a *ActionPlace) OnTokenEnter(id token.ID, tok *token.Token) {
	a.metrics.Inc("behavior_on_token_enter_total")

	invoker, ok := a.registry.Get(a.actionName)
	if !ok {
		a.logger.Warn("action place has no registered invoker", map[string]interface{}{"place": a.place.ID, "action": a.actionName})
		a.place.MoveToken(id, net.SuffixMain, net.SuffixError)
		return
	}

	execID, err := a.place.MoveToken(id, net.SuffixMain, net.SuffixInExecution)
	if err != nil {
		a.logger.Warn("action place failed to move token into execution", map[string]interface{}{"place": a.place.ID, "error": err.Error()})
		return
	}

	a.executor.StartAction(tok, a.actor, invoker, a.policy, func(ctx *action.Context) {
		a.route(execID, ctx)
	})
}

// route delivers tok, currently held in the in_execution sub-queue under
// execID, to the sub-queue matching ctx's terminal state.
func (a *ActionPlace) route(execID token.ID, ctx *action.Context) {
	dest := destinationFor(ctx.State)
	if _, err := a.place.MoveToken(execID, net.SuffixInExecution, dest); err != nil {
		a.logger.Warn("action place failed to route completed token", map[string]interface{}{"place": a.place.ID, "error": err.Error()})
		return
	}
	a.metrics.Inc("action_place_routed_total")
}

func destinationFor(state action.State) net.Suffix {
	switch state {
	case action.StateCompleted:
		return net.SuffixSuccess
	case action.StateFailed:
		return net.SuffixFailure
	default: // Error, TimedOut, Cancelled
		return net.SuffixError
	}
}

func (a *ActionPlace) Tick(uint64) {}
