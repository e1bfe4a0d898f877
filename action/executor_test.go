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
	"sync/atomic"
	"testing"
	"time"

	"github.com/behaviornet/runtime/clock"
	"github.com/behaviornet/runtime/token"
)

func TestSuccessCompletesOnFirstPoll(t *testing.T) {
	exec := NewExecutor()
	var callbackCount int32

	exec.StartAction(token.New(), nil, func(Actor, *token.Token) Result {
		return Success()
	}, RetryPolicy{}, func(ctx *Context) {
		atomic.AddInt32(&callbackCount, 1)
	})

	exec.Poll()

	if callbackCount != 1 {
		t.Fatalf("expected callback invoked exactly once, got %d", callbackCount)
	}
	if exec.InFlightCount() != 0 {
		t.Fatal("expected completed context to be removed")
	}
}

func TestRetryBoundInvokesAtMostKPlusOneTimes(t *testing.T) {
	virt := clock.NewVirtualClock(time.Unix(0, 0))
	exec := NewExecutor(WithClock(virt))

	var calls int32
	var finalState State

	exec.StartAction(token.New(), nil, func(Actor, *token.Token) Result {
		atomic.AddInt32(&calls, 1)
		return Errorf("error", "boom")
	}, RetryPolicy{MaxRetries: 2, RetryOnError: true}, func(ctx *Context) {
		finalState = ctx.State
	})

	for i := 0; i < 10; i++ {
		exec.Poll()
		virt.AdvanceBy(time.Hour)
	}

	if calls != 3 {
		t.Fatalf("expected exactly 3 invocations (k+1 with k=2), got %d", calls)
	}
	if finalState != StateError {
		t.Fatalf("expected final state Error, got %s", finalState)
	}
}

func TestCallbackInvokedExactlyOnceAcrossMultiplePolls(t *testing.T) {
	exec := NewExecutor()
	var callbackCount int32

	exec.StartAction(token.New(), nil, func(Actor, *token.Token) Result {
		return Success()
	}, RetryPolicy{}, func(ctx *Context) {
		atomic.AddInt32(&callbackCount, 1)
	})

	exec.Poll()
	exec.Poll()
	exec.Poll()

	if callbackCount != 1 {
		t.Fatalf("expected exactly one callback across repeated polls, got %d", callbackCount)
	}
}

func TestCancelObservedAtNextPoll(t *testing.T) {
	exec := NewExecutor()
	var finalState State

	id := exec.StartAction(token.New(), nil, func(Actor, *token.Token) Result {
		return InProgress()
	}, RetryPolicy{}, func(ctx *Context) {
		finalState = ctx.State
	})

	exec.Poll() // moves to Running, InProgress
	exec.Cancel(id)
	exec.Poll() // should observe cancellation

	if finalState != StateCancelled {
		t.Fatalf("expected cancelled final state, got %s", finalState)
	}
}

func TestTimeoutWithoutRetryReachesTimedOut(t *testing.T) {
	virt := clock.NewVirtualClock(time.Unix(0, 0))
	exec := NewExecutor(WithClock(virt))
	var finalState State

	exec.StartAction(token.New(), nil, func(Actor, *token.Token) Result {
		return InProgress()
	}, RetryPolicy{Timeout: 50 * time.Millisecond}, func(ctx *Context) {
		finalState = ctx.State
	})

	exec.Poll()
	virt.AdvanceBy(100 * time.Millisecond)
	exec.Poll()

	if finalState != StateTimedOut {
		t.Fatalf("expected TimedOut, got %s", finalState)
	}
}

func TestInProgressStaysRunningAcrossPolls(t *testing.T) {
	exec := NewExecutor()
	var calls int32

	exec.StartAction(token.New(), nil, func(Actor, *token.Token) Result {
		atomic.AddInt32(&calls, 1)
		return InProgress()
	}, RetryPolicy{}, nil)

	exec.Poll()
	exec.Poll()
	exec.Poll()

	if calls != 3 {
		t.Fatalf("expected invoker called on every poll while InProgress, got %d", calls)
	}
	if exec.InFlightCount() != 1 {
		t.Fatal("expected context to remain in-flight")
	}
}
