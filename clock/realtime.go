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

import "time"

// RealTimeClock is the production Clock: every method delegates straight
// to the time package, so there is no overhead beyond the interface call.
// It holds no state, so the zero value is usable, but NewRealTimeClock is
// the idiomatic constructor wherever a Clock value is expected.
type RealTimeClock struct{}

// NewRealTimeClock returns a Clock backed by the system's wall-clock time.
func NewRealTimeClock() *RealTimeClock {
	return &RealTimeClock{}
}

// Now delegates to time.Now.
func (r *RealTimeClock) Now() time.Time {
	return time.Now()
}

// After delegates to time.After.
func (r *RealTimeClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Sleep delegates to time.Sleep.
func (r *RealTimeClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
