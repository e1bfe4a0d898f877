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
	"github.com/behaviornet/runtime/net"
)

// Tick advances the controller by one discrete step, under the coarse
// lock: poll the action executor, let every place behaviour react to the
// passage of time, then make one pass over the transitions enabled at
// that point, in priority/staleness order, firing each one that is still
// enabled when its turn comes, since an earlier fire in this same tick may
// have exhausted a shared input.
//
// This differs deliberately from a one-transition-per-tick scheduler:
// every transition enabled at the start of the firing phase gets a chance
// to fire in the same tick, not just the highest-priority one. Each fires
// at most once per tick; a transition enabled only by an earlier fire in
// this tick waits for the next tick.
func (c *Controller) Tick() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickLocked()
}

func (c *Controller) tickLocked() error {
	c.epoch++
	c.lastTickInstant = c.clk.Now()

	c.executor.Poll()

	for _, placeID := range c.order {
		c.behaviors[placeID].Tick(c.epoch)
	}

	enabled, err := c.n.EnabledOrdered()
	if err != nil {
		c.errs = append(c.errs, err)
		return err
	}

	for _, t := range enabled {
		placements, err := c.n.Fire(t.ID, c.epoch)
		if err != nil {
			// Another fire earlier in this pass may have consumed the
			// tokens this transition needed; Fire has rolled back, and the
			// transition is considered again next tick rather than
			// treating this as fatal.
			continue
		}
		c.transitionsFired++
		if c.hooks.OnTransitionFired != nil {
			c.hooks.OnTransitionFired(t.ID, c.epoch)
		}
		c.deliverPlacements(placements)
	}

	return nil
}

// deliverPlacements invokes on_token_enter for every placement that landed
// on a place's main queue. Sub-queue destinations bypass on_token_enter:
// a token a transition routes into in_execution/success/failure/error
// stays in that sub-queue without its place's behaviour being invoked.
func (c *Controller) deliverPlacements(placements []net.Placement) {
	for _, pl := range placements {
		c.tokensProcessed++
		if pl.Suffix != net.SuffixMain && pl.Suffix != "" {
			continue
		}
		b, ok := c.behaviors[pl.PlaceID]
		if !ok {
			continue
		}
		b.OnTokenEnter(pl.ID, pl.Token)
		if c.hooks.OnTokenEnter != nil {
			c.hooks.OnTokenEnter(pl.PlaceID, pl.Token)
		}
	}
}
