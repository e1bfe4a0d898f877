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

// Package config defines the Go shape of a parsed net configuration, as
// consumed by runtime.Controller.LoadConfig. The wire format (JSON, YAML,
// or otherwise) that produces a NetConfig is outside this package's
// concern; the struct tags exist so a future parser has somewhere to land.
package config

import "time"

// ActorSpec describes an actor type available to invokers. Used only by
// external actor factories; the core never constructs one.
type ActorSpec struct {
	ID                 string            `json:"id"`
	RequiredInitParams map[string]string `json:"required_init_params,omitempty"`
	OptionalInitParams map[string]string `json:"optional_init_params,omitempty"`
}

// ActionSpec is metadata about an action naming the actor types it needs.
// Not consumed by LoadConfig directly -- a reference for external tooling
// and actor-factory wiring.
type ActionSpec struct {
	ID             string   `json:"id"`
	RequiredActors []string `json:"required_actors,omitempty"`
}

// PlaceType names one of the six place behaviours a PlaceSpec may bind.
type PlaceType string

const (
	PlaceTypePlain           PlaceType = "plain"
	PlaceTypeEntrypoint      PlaceType = "entrypoint"
	PlaceTypeResourcePool    PlaceType = "resource_pool"
	PlaceTypeWaitWithTimeout PlaceType = "wait_with_timeout"
	PlaceTypeAction          PlaceType = "action"
	PlaceTypeExitLogger      PlaceType = "exit_logger"
)

// EntrypointParams configures an entrypoint place. NewActors names actor
// types the injector is expected to attach to each token on the way in;
// metadata only, like ActionSpec.RequiredActors -- the core does not
// enforce it.
type EntrypointParams struct {
	NewActors []string `json:"new_actors,omitempty"`
}

// ResourcePoolParams configures a resource_pool place.
type ResourcePoolParams struct {
	ResourceID          string `json:"resource_id"`
	InitialAvailability int    `json:"initial_availability"`
}

// WaitWithTimeoutParams configures a wait_with_timeout place.
type WaitWithTimeoutParams struct {
	Timeout   time.Duration `json:"timeout"`
	OnTimeout string        `json:"on_timeout,omitempty"`
}

// ActionParams configures an action place.
//
// FailureAsError and ErrorToGlobalHandler are parsed but, per the design
// notes, their intended semantics were never resolved by the system this
// was distilled from. LoadConfig surfaces a warning when either is set
// rather than guessing at behaviour -- see runtime.Controller.LoadConfig.
type ActionParams struct {
	ActionID             string        `json:"action_id"`
	Retries              int           `json:"retries"`
	TimeoutPerTry        time.Duration `json:"timeout_per_try"`
	FailureAsError       bool          `json:"failure_as_error,omitempty"`
	ErrorToGlobalHandler bool          `json:"error_to_global_handler,omitempty"`
}

// PlaceSpec describes one place in the net.
type PlaceSpec struct {
	ID       string    `json:"id"`
	Type     PlaceType `json:"type"`
	Capacity int       `json:"capacity,omitempty"`

	Entrypoint      *EntrypointParams      `json:"entrypoint,omitempty"`
	ResourcePool    *ResourcePoolParams    `json:"resource_pool,omitempty"`
	WaitWithTimeout *WaitWithTimeoutParams `json:"wait_with_timeout,omitempty"`
	Action          *ActionParams          `json:"action,omitempty"`
}

// OutputRef is one entry of a transition's `to` list: a place reference and
// an optional actor-type filter. LoadConfig copies TokenFilter onto the
// output arc it builds for this entry; neither the enabling check nor Fire
// reads an arc's filter -- see net's documented approximation.
type OutputRef struct {
	To          string `json:"to"`
	TokenFilter string `json:"token_filter,omitempty"`
}

// TransitionSpec describes one transition. Its ID is not part of the wire
// format -- IDs are assigned positionally (t1, t2, ...) by LoadConfig.
type TransitionSpec struct {
	From     []string    `json:"from"`
	To       []OutputRef `json:"to"`
	Priority int         `json:"priority,omitempty"`
}

// NetConfig is the top-level parsed configuration LoadConfig accepts.
type NetConfig struct {
	Actors      []ActorSpec      `json:"actors,omitempty"`
	Actions     []ActionSpec     `json:"actions,omitempty"`
	Places      []PlaceSpec      `json:"places"`
	Transitions []TransitionSpec `json:"transitions"`
}
