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
	"time"
)

// Start spawns the background tick loop if the controller is stopped.
// Idempotent: calling Start while already running or starting is a no-op.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.state != StateStopped && c.state != StateError {
		c.mu.Unlock()
		return nil
	}
	c.state = StateStarting
	c.startInstant = c.clk.Now()
	c.stopCh = make(chan struct{})
	c.doneCh = make(chan struct{})
	c.state = StateRunning
	stopCh := c.stopCh
	doneCh := c.doneCh
	c.mu.Unlock()

	c.logger.Info("runtime controller started", map[string]interface{}{})
	go c.run(stopCh, doneCh)
	return nil
}

// Stop signals the background loop to exit and blocks until it has. Safe
// to call on an already-stopped controller.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return nil
	}
	c.state = StateStopping
	stopCh := c.stopCh
	doneCh := c.doneCh
	c.mu.Unlock()

	close(stopCh)
	<-doneCh

	c.mu.Lock()
	c.state = StateStopped
	c.mu.Unlock()

	c.logger.Info("runtime controller stopped", map[string]interface{}{})
	return nil
}

// run is the background loop body: tick on a fixed cadence until stopCh
// closes. Errors from a tick are recorded, not fatal -- the loop keeps
// ticking, the same way an enabled-but-failing transition is skipped
// rather than halting the whole net.
func (c *Controller) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.state != StateRunning {
				c.mu.Unlock()
				continue
			}
			err := c.tickLocked()
			c.mu.Unlock()
			if err != nil {
				c.logger.Error("tick failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}
