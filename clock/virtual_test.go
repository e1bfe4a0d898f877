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
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestVirtualClockSatisfiesClock(t *testing.T) {
	var _ Clock = NewVirtualClock(epoch)
}

func TestVirtualClockStartsAtGivenTimeAndDoesNotDrift(t *testing.T) {
	c := NewVirtualClock(epoch)
	if !c.Now().Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", c.Now(), epoch)
	}

	time.Sleep(10 * time.Millisecond)
	if !c.Now().Equal(epoch) {
		t.Fatalf("virtual time moved on its own: Now() = %v, want %v", c.Now(), epoch)
	}
}

// Mirrors how a WaitWithTimeoutPlace with a 30s deadline behaves: the
// After channel must stay silent right up to the deadline and only fire
// once the clock is pushed past it.
func TestVirtualClockAfterFiresOnlyOnceDeadlineIsReached(t *testing.T) {
	c := NewVirtualClock(epoch)
	ch := c.After(30 * time.Second)

	c.AdvanceBy(29 * time.Second)
	select {
	case <-ch:
		t.Fatal("After() fired before its deadline")
	default:
	}

	c.AdvanceBy(2 * time.Second)
	select {
	case <-ch:
	default:
		t.Fatal("After() did not fire once its deadline had passed")
	}
}

func TestVirtualClockAfterFiresImmediatelyForPastDeadline(t *testing.T) {
	c := NewVirtualClock(epoch)
	c.AdvanceBy(time.Minute)

	ch := c.After(-5 * time.Second)
	select {
	case <-ch:
	default:
		t.Fatal("After() with an already-past deadline should fire without an AdvanceBy call")
	}
}

func TestVirtualClockAdvanceToIgnoresTimeGoingBackward(t *testing.T) {
	c := NewVirtualClock(epoch)
	c.AdvanceTo(epoch.Add(time.Hour))

	c.AdvanceTo(epoch)
	if got := c.Now(); !got.Equal(epoch.Add(time.Hour)) {
		t.Fatalf("AdvanceTo moved time backward: Now() = %v", got)
	}
}

// A goroutine parked in Sleep rather than waiting on After must be
// released by AdvanceBy the same way.
func TestVirtualClockSleepReleasesOnceAdvanced(t *testing.T) {
	c := NewVirtualClock(epoch)
	woke := make(chan struct{})

	go func() {
		c.Sleep(5 * time.Second)
		close(woke)
	}()

	// Give the goroutine a chance to register its sleep before advancing.
	for c.PendingSleeps() == 0 {
		time.Sleep(time.Millisecond)
	}

	select {
	case <-woke:
		t.Fatal("Sleep returned before the clock advanced")
	default:
	}

	c.AdvanceBy(5 * time.Second)
	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("Sleep did not release after the clock advanced past its deadline")
	}
}

// Several tokens parked in the same wait_with_timeout place register
// distinct deadlines; one AdvanceBy past all of them must fire every one
// and leave none pending.
func TestVirtualClockAdvanceByFiresAllDueTimersTogether(t *testing.T) {
	c := NewVirtualClock(epoch)
	chans := make([]<-chan time.Time, 4)
	for i := range chans {
		chans[i] = c.After(time.Duration(i+1) * time.Second)
	}

	c.AdvanceBy(10 * time.Second)

	for i, ch := range chans {
		select {
		case <-ch:
		default:
			t.Fatalf("timer %d never fired", i)
		}
	}
	if n := c.PendingTimers(); n != 0 {
		t.Fatalf("PendingTimers() = %d, want 0 after all deadlines passed", n)
	}
}

func TestVirtualClockConcurrentAdvanceAndRead(t *testing.T) {
	c := NewVirtualClock(epoch)
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			c.AdvanceBy(time.Millisecond)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = c.Now()
		}
	}()
	wg.Wait()

	if got := c.Now(); got.Before(epoch) {
		t.Fatalf("Now() = %v, should never fall before the starting epoch", got)
	}
}
