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

package clock

import (
	"sync"
	"time"
)

// VirtualClock is a Clock whose time never moves on its own; it advances
// only when a test calls AdvanceTo or AdvanceBy. Wiring one into
// runtime.New(runtime.WithClock(...)) lets a test push a
// WaitWithTimeoutPlace past its deadline, or an action past its
// RetryPolicy.Timeout, without actually waiting.
//
// Safe for concurrent use; every operation takes the same mutex.
type VirtualClock struct {
	mu      sync.RWMutex
	current time.Time
	timers  []*virtualTimer
	sleeps  []*virtualSleep
}

// virtualTimer is a pending call to After that hasn't reached its deadline.
type virtualTimer struct {
	deadline time.Time
	ch       chan time.Time
	fired    bool
}

// virtualSleep is a goroutine parked in Sleep, waiting for its deadline.
type virtualSleep struct {
	deadline time.Time
	ch       chan struct{}
	fired    bool
}

// NewVirtualClock returns a VirtualClock whose Now() starts at start and
// only moves when AdvanceTo or AdvanceBy is called.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{
		current: start,
		timers:  make([]*virtualTimer, 0),
		sleeps:  make([]*virtualSleep, 0),
	}
}

// Now returns the clock's current virtual time.
func (v *VirtualClock) Now() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// After returns a channel that fires once the virtual clock reaches
// current+d. If d is already in the past relative to the current time,
// the channel fires immediately.
func (v *VirtualClock) After(d time.Duration) <-chan time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()

	deadline := v.current.Add(d)
	ch := make(chan time.Time, 1)

	timer := &virtualTimer{
		deadline: deadline,
		ch:       ch,
		fired:    false,
	}

	if !deadline.After(v.current) {
		timer.ch <- v.current
		close(timer.ch)
		timer.fired = true
	} else {
		v.timers = append(v.timers, timer)
	}

	return ch
}

// Sleep blocks the calling goroutine until the virtual clock is advanced
// past current+d. A non-positive duration returns immediately.
func (v *VirtualClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}

	v.mu.Lock()
	deadline := v.current.Add(d)
	ch := make(chan struct{})

	sleep := &virtualSleep{
		deadline: deadline,
		ch:       ch,
		fired:    false,
	}

	if !deadline.After(v.current) {
		v.mu.Unlock()
		return
	}

	v.sleeps = append(v.sleeps, sleep)
	v.mu.Unlock()

	<-ch
}

// AdvanceTo moves the clock forward to targetTime and fires every pending
// timer and sleep whose deadline has been reached, in the order they were
// registered. A
// targetTime at or before the current time is a no-op -- the clock never
// moves backward.
func (v *VirtualClock) AdvanceTo(targetTime time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !targetTime.After(v.current) {
		return
	}

	v.current = targetTime
	v.fireTimersAndSleeps()
}

// AdvanceBy moves the clock forward by d; equivalent to
// AdvanceTo(Now().Add(d)). A non-positive d is a no-op.
func (v *VirtualClock) AdvanceBy(d time.Duration) {
	if d <= 0 {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = v.current.Add(d)
	v.fireTimersAndSleeps()
}

// fireTimersAndSleeps fires every timer and sleep whose deadline the
// current time has reached or passed. Caller must hold the mutex.
func (v *VirtualClock) fireTimersAndSleeps() {
	remainingTimers := make([]*virtualTimer, 0, len(v.timers))
	for _, timer := range v.timers {
		if !timer.fired && !timer.deadline.After(v.current) {
			timer.ch <- v.current
			close(timer.ch)
			timer.fired = true
		} else if !timer.fired {
			remainingTimers = append(remainingTimers, timer)
		}
	}
	v.timers = remainingTimers

	remainingSleeps := make([]*virtualSleep, 0, len(v.sleeps))
	for _, sleep := range v.sleeps {
		if !sleep.fired && !sleep.deadline.After(v.current) {
			close(sleep.ch)
			sleep.fired = true
		} else if !sleep.fired {
			remainingSleeps = append(remainingSleeps, sleep)
		}
	}
	v.sleeps = remainingSleeps
}

// PendingTimers reports how many After calls are still waiting on a
// deadline. Exercised by this package's own tests to confirm a fired
// timer is actually removed from the pending set, not just signalled.
func (v *VirtualClock) PendingTimers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.timers)
}

// PendingSleeps reports how many goroutines are parked in Sleep. Exercised
// by this package's own tests the same way as PendingTimers.
func (v *VirtualClock) PendingSleeps() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.sleeps)
}
