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
	"github.com/behaviornet/runtime/net"
	"github.com/behaviornet/runtime/obs"
	"github.com/behaviornet/runtime/token"
)

// ResourcePoolPlace represents a bounded pool of interchangeable resource
// slots as empty tokens. Transitions that "take" a resource use the pool
// place as an input arc; transitions that "return" one use it as an output
// arc. Acquire/Release exist for integrators that need to reserve a slot
// outside of the net's transition machinery (e.g. from an ActionPlace
// invoker).
type ResourcePoolPlace struct {
	place      *net.Place
	resourceID string

	logger  obs.Logger
	metrics obs.MetricsCollector
}

// NewResourcePoolPlace binds a ResourcePoolPlace to place and pushes
// initialAvailability empty tokens onto its main queue.
func NewResourcePoolPlace(place *net.Place, resourceID string, initialAvailability int, logger obs.Logger, metrics obs.MetricsCollector) *ResourcePoolPlace {
	if logger == nil {
		logger = obs.NoOpLogger{}
	}
	if metrics == nil {
		metrics = obs.NoOpMetrics{}
	}
	rp := &ResourcePoolPlace{place: place, resourceID: resourceID, logger: logger, metrics: metrics}
	for i := 0; i < initialAvailability; i++ {
		place.AddToken(token.New())
	}
	return rp
}

// Acquire pops the oldest slot from the pool, if any is available.
func (r *ResourcePoolPlace) Acquire() (id token.ID, tok *token.Token, ok bool) {
	id, tok, ok = r.place.RemoveToken()
	if ok {
		r.metrics.Inc("resource_pool_acquire_total")
		r.logger.Debug("resource pool acquired slot", map[string]interface{}{"place": r.place.ID, "resource_id": r.resourceID})
	}
	return id, tok, ok
}

// Release returns tok to the pool.
func (r *ResourcePoolPlace) Release(tok *token.Token) (token.ID, error) {
	id, err := r.place.AddToken(tok)
	if err != nil {
		return 0, err
	}
	r.metrics.Inc("resource_pool_release_total")
	r.logger.Debug("resource pool released slot", map[string]interface{}{"place": r.place.ID, "resource_id": r.resourceID})
	return id, nil
}

func (r *ResourcePoolPlace) OnTokenEnter(token.ID, *token.Token) {}

func (r *ResourcePoolPlace) Tick(uint64) {}
