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

// Package bnerr provides the runtime's structured error taxonomy.
//
// Go has no exception hierarchy to catch a Timeout as a Network error as a
// Runtime error. Instead this package maintains an explicit parent-relation
// table between error Kinds and exposes Is so callers can ask "is this err
// (or a kind it descends from) a Network error" the way exception-based
// subtype matching would answer the same question.
package bnerr

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Kind tags an Error with its place in the taxonomy.
type Kind string

const (
	// Runtime is the root kind; every other kind is-a Runtime error.
	Runtime Kind = "runtime"

	// Validation covers malformed net configuration at load time.
	Validation Kind = "validation"

	// Resource covers actor/resource lookup and capacity failures.
	Resource Kind = "resource"

	// Network covers I/O performed by invokers. Not raised by the core
	// itself; invokers report it through action.Errorf.
	Network Kind = "network"

	// ActionControl covers cancellation, retry exhaustion, and timeouts
	// inside the action executor.
	ActionControl Kind = "action_control"

	// ConfigError marks a specific malformed-configuration failure.
	ConfigError Kind = "config_error"
	// ActorNotFound marks a missing actor binding.
	ActorNotFound Kind = "actor_not_found"
	// ResourceUnavailable marks a resource pool with nothing to acquire.
	ResourceUnavailable Kind = "resource_unavailable"
	// ResourceExhausted marks a place at capacity.
	ResourceExhausted Kind = "resource_exhausted"
	// ActionCancelled marks an action cancelled before reaching a terminal state.
	ActionCancelled Kind = "action_cancelled"
	// RetriesExhausted marks an action that ran out of retry attempts.
	RetriesExhausted Kind = "retries_exhausted"
	// Timeout marks an action or wait that exceeded its deadline.
	Timeout Kind = "timeout"
)

// isA records, for each leaf kind, the kind it descends from. A kind not
// present here has no parent other than the implicit Runtime root.
var isA = map[Kind]Kind{
	ConfigError:         Validation,
	ActorNotFound:       Resource,
	ResourceUnavailable: Resource,
	ResourceExhausted:   Resource,
	ActionCancelled:     ActionControl,
	RetriesExhausted:    ActionControl,
	Timeout:             Network,
	Validation:          Runtime,
	Resource:            Runtime,
	Network:             Runtime,
	ActionControl:       Runtime,
}

// Error is the runtime's structured error type. It carries a Kind, a
// human-readable message, an optional structured payload, and an optional
// wrapped cause for errors.Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Payload map[string]interface{}
	Cause   error
}

// New creates an Error of the given kind with a static message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind wrapping an existing error.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WithPayload attaches structured payload fields and returns the receiver
// for chaining.
func (e *Error) WithPayload(key string, value interface{}) *Error {
	if e.Payload == nil {
		e.Payload = make(map[string]interface{})
	}
	e.Payload[key] = value
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of err if err is or wraps a *Error, and the
// empty Kind otherwise.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// Is reports whether err is a *Error whose kind equals target, or whose
// kind descends from target through the is-a table. This is the
// subtype-matching replacement called for in the design notes: a Timeout
// error answers true to Is(err, Network) and Is(err, Runtime).
func Is(err error, target Kind) bool {
	k := KindOf(err)
	if k == "" {
		return false
	}
	for {
		if k == target {
			return true
		}
		parent, ok := isA[k]
		if !ok {
			return target == Runtime
		}
		k = parent
	}
}

// Aggregate combines multiple non-fatal errors into one, using
// hashicorp/go-multierror so the combined error still satisfies errors.Is/
// errors.As against any constituent. Returns nil if errs is empty after
// dropping nils.
func Aggregate(errs ...error) error {
	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if merr == nil {
		return nil
	}
	return merr.ErrorOrNil()
}
