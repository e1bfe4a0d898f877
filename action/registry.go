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

import "sync"

// Registry maps action names to invokers, shared by every ActionPlace
// binding that refers to the same action_id. There is no package-level
// singleton: per the design notes, a registry is constructed by and owned
// by a single controller, and must outlive every place behaviour that
// references it.
type Registry struct {
	mu       sync.RWMutex
	invokers map[string]Invoker
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{invokers: make(map[string]Invoker)}
}

// Register binds name to invoker. Rebinding an already-registered name
// replaces the previous invoker; every ActionPlace bound to name resolves
// its invoker from the registry on each token, so rebinding takes effect
// on the next token routed there without any separate notification step.
func (r *Registry) Register(name string, invoker Invoker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invokers[name] = invoker
}

// Get returns the invoker bound to name, if any.
func (r *Registry) Get(name string) (Invoker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.invokers[name]
	return inv, ok
}
