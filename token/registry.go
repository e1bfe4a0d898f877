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

package token

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
)

// ActorRegistry allows an Actor implementation to be registered under its
// type name and later reconstructed from JSON. This is not required on the
// hot path -- a controller can bind actors to tokens directly -- but it
// gives tests and example programs a factory-less way to round-trip actor
// data, the same role the teacher's token type registry played for
// TokenData.
type ActorRegistry interface {
	Register(typeName string, typ reflect.Type) error
	Get(typeName string) (reflect.Type, bool)
	Serialize(a Actor) ([]byte, error)
	Deserialize(typeName string, data []byte) (Actor, error)
}

// MapActorRegistry is a thread-safe, per-controller ActorRegistry. There is
// deliberately no package-level singleton: the design notes call for
// registries constructed per controller rather than process-wide, so
// lifetime is tied to whoever constructs one.
type MapActorRegistry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewMapActorRegistry creates an empty registry.
func NewMapActorRegistry() *MapActorRegistry {
	return &MapActorRegistry{types: make(map[string]reflect.Type)}
}

// Register associates a type name with a reflect.Type implementing Actor.
func (r *MapActorRegistry) Register(typeName string, typ reflect.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if typeName == "" {
		return fmt.Errorf("cannot register actor type with empty name")
	}
	if typ == nil {
		return fmt.Errorf("cannot register actor type %q: type cannot be nil", typeName)
	}
	if _, exists := r.types[typeName]; exists {
		return fmt.Errorf("cannot register actor type %q: already registered", typeName)
	}

	r.types[typeName] = typ
	return nil
}

// Get retrieves the reflect.Type registered under typeName.
func (r *MapActorRegistry) Get(typeName string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	typ, ok := r.types[typeName]
	return typ, ok
}

// Serialize converts an Actor to JSON bytes.
func (r *MapActorRegistry) Serialize(a Actor) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("cannot serialize nil actor")
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize actor %s: %w", a.Type(), err)
	}
	return b, nil
}

// Deserialize reconstructs an Actor of the registered type from JSON bytes.
func (r *MapActorRegistry) Deserialize(typeName string, data []byte) (Actor, error) {
	typ, ok := r.Get(typeName)
	if !ok {
		return nil, fmt.Errorf("actor type %s is not registered", typeName)
	}

	instance := reflect.New(typ).Interface()
	if err := json.Unmarshal(data, instance); err != nil {
		return nil, fmt.Errorf("failed to deserialize actor %s: %w", typeName, err)
	}

	actor, ok := instance.(Actor)
	if !ok {
		return nil, fmt.Errorf("type %s does not implement Actor", typeName)
	}
	return actor, nil
}
