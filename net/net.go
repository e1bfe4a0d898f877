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

import (
	"fmt"
	"sort"

	"github.com/behaviornet/runtime/bnerr"
	"github.com/behaviornet/runtime/token"
)

// Net exclusively owns its places and transitions; arcs are owned by their
// transition. Tokens are owned by whichever queue they currently reside in
// -- firing moves ownership, it never copies.
type Net struct {
	places      map[string]*Place
	transitions map[string]*Transition
	order       []string // transition IDs, insertion order, for deterministic iteration
}

// New creates an empty net.
func New() *Net {
	return &Net{
		places:      make(map[string]*Place),
		transitions: make(map[string]*Transition),
	}
}

// AddPlace registers a place. Returns an error if the ID is already used.
func (n *Net) AddPlace(p *Place) error {
	if _, exists := n.places[p.ID]; exists {
		return bnerr.Newf(bnerr.Validation, "duplicate place id %q", p.ID)
	}
	n.places[p.ID] = p
	return nil
}

// AddTransition registers a transition. Returns an error if the ID is
// already used.
func (n *Net) AddTransition(t *Transition) error {
	if _, exists := n.transitions[t.ID]; exists {
		return bnerr.Newf(bnerr.Validation, "duplicate transition id %q", t.ID)
	}
	n.transitions[t.ID] = t
	n.order = append(n.order, t.ID)
	return nil
}

// GetPlace looks up a place by ID.
func (n *Net) GetPlace(id string) (*Place, bool) {
	p, ok := n.places[id]
	return p, ok
}

// GetTransition looks up a transition by ID.
func (n *Net) GetTransition(id string) (*Transition, bool) {
	t, ok := n.transitions[id]
	return t, ok
}

// Places returns every place, unordered.
func (n *Net) Places() map[string]*Place {
	return n.places
}

// Transitions returns every transition in insertion order.
func (n *Net) Transitions() []*Transition {
	out := make([]*Transition, 0, len(n.order))
	for _, id := range n.order {
		out = append(out, n.transitions[id])
	}
	return out
}

// resolveQueue resolves an arc's place reference to its underlying queue.
func (n *Net) resolveQueue(a *Arc) (*Place, interface {
	AvailableCount() int
}, error) {
	p, ok := n.places[a.PlaceID]
	if !ok {
		return nil, nil, bnerr.Newf(bnerr.Validation, "arc references unknown place %q", a.PlaceID)
	}
	q, err := p.Subplace(a.Suffix)
	if err != nil {
		return nil, nil, err
	}
	return p, q, nil
}

// IsEnabled reports whether every input arc of t has enough unlocked
// tokens available. Per the design notes, a configured Filter is not
// currently verified for actor-type membership before counting -- this is
// a documented, deliberate approximation, not an oversight.
func (t *Transition) isEnabled(n *Net) (bool, error) {
	for _, arc := range t.InputArcs {
		_, q, err := n.resolveQueue(arc)
		if err != nil {
			return false, err
		}
		if q.AvailableCount() < arc.Weight {
			return false, nil
		}
	}
	return true, nil
}

// IsEnabled reports whether every input arc of the transition with the
// given ID has enough unlocked tokens available.
func (n *Net) IsEnabled(transitionID string) (bool, error) {
	t, ok := n.transitions[transitionID]
	if !ok {
		return false, bnerr.Newf(bnerr.Validation, "unknown transition %q", transitionID)
	}
	return t.isEnabled(n)
}

// EnabledOrdered returns every currently-enabled transition, sorted
// descending by priority and, within a priority band, ascending by
// last_fired_epoch (the starvation-avoiding tie-break).
func (n *Net) EnabledOrdered() ([]*Transition, error) {
	var enabled []*Transition
	for _, id := range n.order {
		t := n.transitions[id]
		ok, err := t.isEnabled(n)
		if err != nil {
			return nil, err
		}
		if ok {
			enabled = append(enabled, t)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		if enabled[i].Priority != enabled[j].Priority {
			return enabled[i].Priority > enabled[j].Priority
		}
		return enabled[i].lastFiredEpoch < enabled[j].lastFiredEpoch
	})
	return enabled, nil
}

// Placement describes a token that landed on an output arc's destination
// during a Fire call.
type Placement struct {
	PlaceID string
	Suffix  Suffix
	ID      token.ID
	Token   *token.Token
}

type consumed struct {
	tok *token.Token
	q   interface {
		Push(*token.Token) token.ID
	}
}

type placed struct {
	q interface {
		Remove(token.ID) (*token.Token, bool)
	}
	id token.ID
}

// Fire atomically fires the transition with the given ID at the given
// epoch.
//
// It first pops weight(arc) unlocked tokens from every input arc in
// declaration order. A non-pool input arc's tokens are routed onward:
// the first one consumed goes to the first non-pool output arc, and so
// on, preserving whatever data the token carries. A pool input arc's
// tokens are taken out of circulation outright -- they are never routed
// to an output arc, since a resource slot's identity doesn't matter, only
// its count.
//
// Every pool output arc mints a fresh token instead of claiming one from
// the consumed set, which is what lets a transition that acquires or
// releases a resource have input and output arc weights that don't sum
// to the same total: an acquiring transition adds the pool as an extra
// input with no matching output, a releasing one adds it as an extra
// output with no matching input.
//
// If any step fails -- an input pop runs out, or a non-pool output arc
// needs more routed tokens than non-pool input arcs supplied -- every
// already-consumed input token is pushed back to its source queue and
// every already-pushed output token is removed from its destination
// queue, both in reverse order, and an error is returned. After a failed
// Fire every queue holds the same tokens as before; a token pushed back
// to its source queue is allocated a fresh ID and arrival time and rejoins
// at the back of that queue.
func (n *Net) Fire(transitionID string, epoch uint64) ([]Placement, error) {
	t, ok := n.transitions[transitionID]
	if !ok {
		return nil, bnerr.Newf(bnerr.Validation, "unknown transition %q", transitionID)
	}

	t.fireMu.Lock()
	defer t.fireMu.Unlock()

	var allConsumed []consumed
	var passthrough []*token.Token
	var placements []placed

	rollback := func() {
		for i := len(placements) - 1; i >= 0; i-- {
			placements[i].q.Remove(placements[i].id)
		}
		for i := len(allConsumed) - 1; i >= 0; i-- {
			allConsumed[i].q.Push(allConsumed[i].tok)
		}
	}

	for _, arc := range t.InputArcs {
		p, ok := n.places[arc.PlaceID]
		if !ok {
			rollback()
			return nil, bnerr.Newf(bnerr.Validation, "arc references unknown place %q", arc.PlaceID)
		}
		q, err := p.Subplace(arc.Suffix)
		if err != nil {
			rollback()
			return nil, err
		}
		for i := 0; i < arc.Weight; i++ {
			_, tok, ok := q.Pop()
			if !ok {
				rollback()
				return nil, bnerr.Newf(bnerr.Resource, "transition %q: input %q exhausted mid-fire", transitionID, arc.Ref())
			}
			allConsumed = append(allConsumed, consumed{tok: tok, q: q})
			if !arc.Pool {
				passthrough = append(passthrough, tok)
			}
		}
	}

	var out []Placement
	cursor := 0
	for _, arc := range t.OutputArcs {
		p, ok := n.places[arc.PlaceID]
		if !ok {
			rollback()
			return nil, bnerr.Newf(bnerr.Validation, "arc references unknown place %q", arc.PlaceID)
		}
		q, err := p.Subplace(arc.Suffix)
		if err != nil {
			rollback()
			return nil, err
		}
		for i := 0; i < arc.Weight; i++ {
			var tok *token.Token
			if arc.Pool {
				tok = token.New()
			} else {
				if cursor >= len(passthrough) {
					rollback()
					return nil, bnerr.Newf(bnerr.Validation,
						"transition %q: output %q needs more tokens than its non-pool inputs consumed (net miswired)", transitionID, arc.Ref())
				}
				tok = passthrough[cursor]
				cursor++
			}
			id := q.Push(tok)
			placements = append(placements, placed{q: q, id: id})
			out = append(out, Placement{PlaceID: arc.PlaceID, Suffix: arc.Suffix, ID: id, Token: tok})
		}
	}

	if cursor < len(passthrough) {
		rollback()
		return nil, bnerr.Newf(bnerr.Validation,
			"transition %q: non-pool inputs produced %d tokens but non-pool outputs only claim %d (net miswired)",
			transitionID, len(passthrough), cursor)
	}

	t.lastFiredEpoch = epoch
	return out, nil
}

// String returns a short human-readable summary, mirroring the teacher's
// debugging-oriented String methods.
func (n *Net) String() string {
	return fmt.Sprintf("Net[places=%d transitions=%d]", len(n.places), len(n.transitions))
}
