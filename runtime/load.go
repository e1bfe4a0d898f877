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

package runtime

import (
	"fmt"

	"github.com/behaviornet/runtime/action"
	"github.com/behaviornet/runtime/behavior"
	"github.com/behaviornet/runtime/bnerr"
	"github.com/behaviornet/runtime/config"
	"github.com/behaviornet/runtime/net"
	"github.com/behaviornet/runtime/token"
)

// LoadConfig validates cfg, then builds a fresh net, behaviour set, and
// entrypoint index from it, replacing whatever was previously loaded.
// Must be called before Start or Tick; calling it again while the
// controller is running returns an error rather than swapping the net out
// from under an in-progress tick. Every error it returns is also recorded
// in the controller's error log (see Errors).
func (c *Controller) LoadConfig(cfg *config.NetConfig) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() {
		if err != nil {
			c.errs = append(c.errs, err)
		}
	}()

	if c.state == StateRunning || c.state == StateStarting {
		return bnerr.New(bnerr.Validation, "cannot load config while the controller is running")
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	n := net.New()
	behaviors := make(map[string]behavior.PlaceBehavior, len(cfg.Places))
	entrypoints := make(map[string]*behavior.EntrypointPlace)
	order := make([]string, 0, len(cfg.Places))
	resourcePools := make(map[string]bool, len(cfg.Places))

	for _, spec := range cfg.Places {
		p := net.NewPlace(spec.ID, spec.Capacity, c.logger, c.metrics)
		if err := n.AddPlace(p); err != nil {
			return err
		}
		if spec.Type == config.PlaceTypeResourcePool {
			resourcePools[spec.ID] = true
		}

		b, entrypoint, err := c.buildBehavior(spec, p)
		if err != nil {
			return err
		}
		behaviors[spec.ID] = b
		if entrypoint != nil {
			entrypoints[spec.ID] = entrypoint
		}
		order = append(order, spec.ID)
	}

	for i, tr := range cfg.Transitions {
		id := fmt.Sprintf("t%d", i+1)
		t := net.NewTransition(id, tr.Priority)
		for _, ref := range tr.From {
			placeID, suffix, err := net.ParseRef(ref)
			if err != nil {
				return err
			}
			t.AddInput(&net.Arc{PlaceID: placeID, Suffix: suffix, Weight: 1, Pool: resourcePools[placeID]})
		}
		for _, out := range tr.To {
			placeID, suffix, err := net.ParseRef(out.To)
			if err != nil {
				return err
			}
			t.AddOutput(&net.Arc{PlaceID: placeID, Suffix: suffix, Weight: 1, Filter: out.TokenFilter, Pool: resourcePools[placeID]})
		}
		if err := n.AddTransition(t); err != nil {
			return err
		}
	}

	for _, actionSpec := range cfg.Actions {
		if _, ok := c.registry.Get(actionSpec.ID); !ok {
			c.logger.Warn("action referenced by configuration has no registered invoker yet", map[string]interface{}{"action_id": actionSpec.ID})
		}
	}

	c.n = n
	c.behaviors = behaviors
	c.entrypoints = entrypoints
	c.order = order
	c.epoch = 0
	c.transitionsFired = 0
	c.tokensProcessed = 0
	c.errs = nil
	return nil
}

// buildBehavior constructs the PlaceBehavior named by spec.Type, bound to
// p. Returns the EntrypointPlace too, non-nil only for entrypoint places,
// so LoadConfig can index it for InjectToken.
func (c *Controller) buildBehavior(spec config.PlaceSpec, p *net.Place) (behavior.PlaceBehavior, *behavior.EntrypointPlace, error) {
	switch spec.Type {
	case config.PlaceTypePlain:
		return behavior.NewPlainPlace(), nil, nil

	case config.PlaceTypeEntrypoint:
		ep := behavior.NewEntrypointPlace(p, nil, c.logger, c.metrics)
		return ep, ep, nil

	case config.PlaceTypeExitLogger:
		logFn := func(placeID string, tok *token.Token) {
			if c.hooks.OnTokenExit != nil {
				c.hooks.OnTokenExit(placeID, tok)
			}
		}
		return behavior.NewExitLoggerPlace(p, logFn, c.logger, c.metrics), nil, nil

	case config.PlaceTypeResourcePool:
		return behavior.NewResourcePoolPlace(p, spec.ResourcePool.ResourceID, spec.ResourcePool.InitialAvailability, c.logger, c.metrics), nil, nil

	case config.PlaceTypeWaitWithTimeout:
		if spec.WaitWithTimeout.OnTimeout != "" {
			c.logger.Warn("wait_with_timeout place sets on_timeout; route from its failure sub-queue instead, the field is parsed but not enforced", map[string]interface{}{"place": spec.ID})
		}
		return behavior.NewWaitWithTimeoutPlace(p, spec.WaitWithTimeout.Timeout, nil, nil, c.clk, c.logger, c.metrics), nil, nil

	case config.PlaceTypeAction:
		if spec.Action.FailureAsError || spec.Action.ErrorToGlobalHandler {
			c.logger.Warn("action place sets failure_as_error or error_to_global_handler; these are parsed but not enforced", map[string]interface{}{"place": spec.ID})
		}
		policy := action.RetryPolicy{
			MaxRetries:     spec.Action.Retries,
			RetryOnError:   true,
			RetryOnFailure: true,
			Timeout:        spec.Action.TimeoutPerTry,
		}
		return behavior.NewActionPlace(p, spec.Action.ActionID, c.registry, c.executor, policy, nil, c.logger, c.metrics), nil, nil

	default:
		return nil, nil, bnerr.Newf(bnerr.Validation, "place %q: unknown type %q", spec.ID, spec.Type)
	}
}

// InjectToken hands tok to the entrypoint place with the given ID, firing
// the token-enter hook on success. Returns ok=false for an unknown
// entrypoint, a validator rejection, or a full place.
func (c *Controller) InjectToken(entrypointID string, tok *token.Token) (id token.ID, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ep, exists := c.entrypoints[entrypointID]
	if !exists {
		return 0, false
	}
	id, ok = ep.Inject(tok)
	if ok && c.hooks.OnTokenEnter != nil {
		c.hooks.OnTokenEnter(entrypointID, tok)
	}
	return id, ok
}
