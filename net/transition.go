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

package net

import "sync"

// Transition is a rule that atomically consumes tokens from input places
// and produces tokens in output places, conditional on availability.
type Transition struct {
	ID       string
	Priority int // default 1, higher fires first

	InputArcs  []*Arc
	OutputArcs []*Arc

	lastFiredEpoch uint64
	fireMu         sync.Mutex
}

// NewTransition creates a transition with the given ID and priority. A
// priority of 0 is normalized to the default of 1.
func NewTransition(id string, priority int) *Transition {
	if priority == 0 {
		priority = 1
	}
	return &Transition{ID: id, Priority: priority}
}

// AddInput appends an input arc.
func (t *Transition) AddInput(a *Arc) {
	a.Direction = DirIn
	t.InputArcs = append(t.InputArcs, a)
}

// AddOutput appends an output arc.
func (t *Transition) AddOutput(a *Arc) {
	a.Direction = DirOut
	t.OutputArcs = append(t.OutputArcs, a)
}

// LastFiredEpoch returns the epoch at which this transition last fired
// successfully, 0 if it has never fired.
func (t *Transition) LastFiredEpoch() uint64 {
	return t.lastFiredEpoch
}
