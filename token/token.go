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

// Package token defines the runtime's unit of flow: a Token carrying typed
// actor slots and a JSON-shaped data map. Tokens are moved, never copied,
// between the queue or action context that owns them.
package token

// Actor is a typed collaborator a token can carry at most one of, per
// actor type. Actors are bound to tokens by the caller that injects them
// or by an action invoker; the runtime itself never constructs one.
type Actor interface {
	// Type returns the actor-type identity used as the map key inside a
	// Token. Implementations should return a stable, interned name (the
	// same string the configuration's actors[].id names).
	Type() string
}

// ID identifies a Token uniquely within the TokenQueue that currently owns
// it. IDs are allocated by the queue on insertion, not by the token itself
// -- a token has no identity of its own until it enters a queue.
type ID uint64

// Token is an ownership-bearing record that flows through the net. It owns
// a map from actor-type identity to actor (at most one of each type) and a
// mutable JSON-shaped data map.
//
// A Token has exactly one owner at any instant: a TokenQueue entry or an
// ActionContext. Callers that receive a *Token through an event callback
// must treat it as borrowed and must not retain the pointer past the
// callback's return.
type Token struct {
	actors map[string]Actor
	data   map[string]interface{}
}

// New creates an empty Token with no actors and an empty data map.
func New() *Token {
	return &Token{
		actors: make(map[string]Actor),
		data:   make(map[string]interface{}),
	}
}

// NewWithData creates a Token pre-populated with the given data map. The
// map is adopted directly, not copied; callers should not retain a
// reference to it afterward.
func NewWithData(data map[string]interface{}) *Token {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Token{actors: make(map[string]Actor), data: data}
}

// SetActor binds an actor to this token under its own Type(). A second call
// with an actor of the same type replaces the first, preserving the
// "at most one actor per type" invariant.
func (t *Token) SetActor(a Actor) {
	t.actors[a.Type()] = a
}

// Actor returns the actor bound under the given type name, if any.
func (t *Token) Actor(typeName string) (Actor, bool) {
	a, ok := t.actors[typeName]
	return a, ok
}

// HasActor reports whether an actor of the given type is bound.
func (t *Token) HasActor(typeName string) bool {
	_, ok := t.actors[typeName]
	return ok
}

// RemoveActor unbinds the actor of the given type, if any.
func (t *Token) RemoveActor(typeName string) {
	delete(t.actors, typeName)
}

// Get returns a value from the data map.
func (t *Token) Get(key string) (interface{}, bool) {
	v, ok := t.data[key]
	return v, ok
}

// Set stores a value in the data map. Values should be JSON-compatible
// (string, float64/int, bool, nil, map, slice) so the token round-trips
// through encoding/json without a custom codec.
func (t *Token) Set(key string, value interface{}) {
	t.data[key] = value
}

// Delete removes a key from the data map.
func (t *Token) Delete(key string) {
	delete(t.data, key)
}

// Data returns the underlying data map. The returned map is the token's
// live map, not a copy; callers that need isolation should clone it.
func (t *Token) Data() map[string]interface{} {
	return t.data
}
