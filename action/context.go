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

import (
	"time"

	"github.com/behaviornet/runtime/token"
)

// State is the lifecycle state of an ActionContext.
type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
	StateError     State = "error"
	StateTimedOut  State = "timed_out"
	StateCancelled State = "cancelled"
)

// IsTerminal reports whether the state is one the executor will not step
// out of: Completed, Cancelled, TimedOut, or Failed/Error once no retry
// remains.
func (s State) IsTerminal() bool {
	switch s {
	case StateCompleted, StateCancelled, StateTimedOut, StateFailed, StateError:
		// The executor only leaves a context in Failed or Error once no
		// retry was scheduled; a scheduled retry puts it back to Pending.
		return true
	default:
		return false
	}
}

// RetryPolicy authorises retries on an action. MaxRetries is a cap on total
// attempts minus one: max_retries=k means at most k+1 invocations before a
// terminal non-retry state.
type RetryPolicy struct {
	MaxRetries     int
	RetryOnError   bool
	RetryOnFailure bool
	RetryDelay     time.Duration
	Timeout        time.Duration // 0 means no timeout
}

// Actor is re-exported from token so callers working only with the action
// package do not need a separate import for this single type.
type Actor = token.Actor

// Invoker is the action invoker contract: called with an optional actor
// and the token by mutable reference, returning a Result. Invokers must be
// re-entrant across calls when a prior call returned InProgress, and must
// not retain the token pointer across calls.
type Invoker func(actor Actor, tok *token.Token) Result

// Callback is invoked exactly once, when an ActionContext reaches a
// terminal state.
type Callback func(ctx *Context)

// Context is the per-invocation state of an action execution: retry
// counters, timestamps, and the callback-invoked guard that guarantees
// at-most-one callback delivery.
type Context struct {
	ID    string
	Token *token.Token
	Actor Actor

	invoker  Invoker
	policy   RetryPolicy
	callback Callback

	State            State
	AttemptCount     int
	LastResult       Result
	StartInstant     time.Time
	NextRetryInstant time.Time
	CallbackInvoked  bool
}
