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

// Package clock is the single time source threaded through the runtime:
// the RuntimeController's tick loop, the ActionExecutor's retry/timeout
// bookkeeping, and WaitWithTimeoutPlace's deadlines all read the same
// Clock rather than calling time.Now() directly. That is what lets a test
// fire a 30-second timeout without a 30-second sleep -- swap in a
// VirtualClock and advance it by hand.
//
// RealTimeClock is the production default; VirtualClock is for tests that
// need to control when a deadline is reached.
package clock

import "time"

// Clock abstracts the operations the runtime needs from wall-clock time.
// Implementations must be safe for concurrent use: the controller, the
// executor, and any number of place behaviours may all read the same
// Clock from different goroutines.
type Clock interface {
	// Now returns the current time according to this clock.
	Now() time.Time

	// After returns a channel that receives the current time once
	// duration d has elapsed on this clock. Mirrors time.After, but on a
	// VirtualClock the channel only fires once the clock is advanced
	// past the deadline -- it never fires on its own.
	After(d time.Duration) <-chan time.Time

	// Sleep blocks the calling goroutine until duration d has elapsed on
	// this clock.
	Sleep(d time.Duration)
}
