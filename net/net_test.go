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
	"testing"

	"github.com/behaviornet/runtime/bnerr"
	"github.com/behaviornet/runtime/token"
)

func mustAddPlace(t *testing.T, n *Net, id string, capacity int) *Place {
	p := NewPlace(id, capacity, nil, nil)
	if err := n.AddPlace(p); err != nil {
		t.Fatalf("unexpected error adding place %s: %v", id, err)
	}
	return p
}

func TestFireMovesTokenAcrossPlaces(t *testing.T) {
	n := New()
	entry := mustAddPlace(t, n, "entry", 0)
	mid := mustAddPlace(t, n, "mid", 0)

	tr := NewTransition("t1", 1)
	tr.AddInput(&Arc{PlaceID: "entry", Weight: 1})
	tr.AddOutput(&Arc{PlaceID: "mid", Weight: 1})
	if err := n.AddTransition(tr); err != nil {
		t.Fatalf("unexpected error adding transition: %v", err)
	}

	entry.AddToken(token.New())

	placements, err := n.Fire("t1", 1)
	if err != nil {
		t.Fatalf("unexpected fire error: %v", err)
	}
	if len(placements) != 1 || placements[0].PlaceID != "mid" {
		t.Fatalf("expected one placement at mid, got %+v", placements)
	}
	if entry.AvailableTokenCount() != 0 {
		t.Fatal("expected entry to be drained")
	}
	if mid.AvailableTokenCount() != 1 {
		t.Fatal("expected mid to hold the moved token")
	}
}

func TestFireRollsBackOnPartialConsumption(t *testing.T) {
	n := New()
	a := mustAddPlace(t, n, "a", 0)
	b := mustAddPlace(t, n, "b", 0)
	out := mustAddPlace(t, n, "out", 0)

	tr := NewTransition("t1", 1)
	tr.AddInput(&Arc{PlaceID: "a", Weight: 1})
	tr.AddInput(&Arc{PlaceID: "b", Weight: 1})
	tr.AddOutput(&Arc{PlaceID: "out", Weight: 2})
	if err := n.AddTransition(tr); err != nil {
		t.Fatal(err)
	}

	a.AddToken(token.New())
	// b has no tokens: the second input pop will fail after a's succeeded.

	_, err := n.Fire("t1", 1)
	if err == nil {
		t.Fatal("expected fire to fail")
	}
	if a.AvailableTokenCount() != 1 {
		t.Fatalf("expected rollback to restore a's token, got count %d", a.AvailableTokenCount())
	}
	if b.AvailableTokenCount() != 0 {
		t.Fatal("expected b to remain empty")
	}
	if out.AvailableTokenCount() != 0 {
		t.Fatal("expected out to remain empty after a failed fire")
	}
}

func TestFirePoolInputArcTakesSlotWithoutRoutingIt(t *testing.T) {
	n := New()
	jobs := mustAddPlace(t, n, "jobs_received", 0)
	pool := mustAddPlace(t, n, "worker_pool", 0)
	mustAddPlace(t, n, "rendering", 0)

	tr := NewTransition("t1", 1)
	tr.AddInput(&Arc{PlaceID: "jobs_received", Weight: 1})
	tr.AddInput(&Arc{PlaceID: "worker_pool", Weight: 1, Pool: true})
	tr.AddOutput(&Arc{PlaceID: "rendering", Weight: 1})
	if err := n.AddTransition(tr); err != nil {
		t.Fatal(err)
	}

	jobs.AddToken(token.New())
	pool.AddToken(token.New())
	pool.AddToken(token.New())

	placements, err := n.Fire("t1", 1)
	if err != nil {
		t.Fatalf("unexpected fire error: %v", err)
	}
	if len(placements) != 1 || placements[0].PlaceID != "rendering" {
		t.Fatalf("expected exactly one placement at rendering, got %+v", placements)
	}
	if pool.AvailableTokenCount() != 1 {
		t.Fatalf("expected worker_pool to drop from 2 to 1 slot, got %d", pool.AvailableTokenCount())
	}
	if jobs.AvailableTokenCount() != 0 {
		t.Fatal("expected jobs_received to be drained")
	}
}

func TestFirePoolOutputArcMintsFreshTokenWithoutStealingPassthrough(t *testing.T) {
	n := New()
	rendering := mustAddPlace(t, n, "rendering", 0)
	done := mustAddPlace(t, n, "done", 0)
	pool := mustAddPlace(t, n, "worker_pool", 0)

	tr := NewTransition("t2", 1)
	tr.AddInput(&Arc{PlaceID: "rendering", Weight: 1})
	tr.AddOutput(&Arc{PlaceID: "done", Weight: 1})
	tr.AddOutput(&Arc{PlaceID: "worker_pool", Weight: 1, Pool: true})
	if err := n.AddTransition(tr); err != nil {
		t.Fatal(err)
	}

	carried := token.New()
	carried.Set("job_id", "job-1")
	rendering.AddToken(carried)

	placements, err := n.Fire("t2", 1)
	if err != nil {
		t.Fatalf("unexpected fire error: %v", err)
	}
	if len(placements) != 2 {
		t.Fatalf("expected two placements, got %+v", placements)
	}
	if done.AvailableTokenCount() != 1 || pool.AvailableTokenCount() != 1 {
		t.Fatalf("expected one token each at done and worker_pool, got done=%d pool=%d",
			done.AvailableTokenCount(), pool.AvailableTokenCount())
	}

	var doneTok, poolTok *token.Token
	for _, pl := range placements {
		switch pl.PlaceID {
		case "done":
			doneTok = pl.Token
		case "worker_pool":
			poolTok = pl.Token
		}
	}
	if v, _ := doneTok.Get("job_id"); v != "job-1" {
		t.Fatalf("expected the carried job data to route to done, got %v", v)
	}
	if v, _ := poolTok.Get("job_id"); v != nil {
		t.Fatalf("expected the returned pool slot to be a fresh token, not job-1's, got %v", v)
	}
}

func TestFireRollsBackAlreadyPushedOutputsOnLateShortfall(t *testing.T) {
	n := New()
	a := mustAddPlace(t, n, "a", 0)
	first := mustAddPlace(t, n, "first", 0)
	second := mustAddPlace(t, n, "second", 0)

	tr := NewTransition("t1", 1)
	tr.AddInput(&Arc{PlaceID: "a", Weight: 1})
	tr.AddOutput(&Arc{PlaceID: "first", Weight: 1})
	tr.AddOutput(&Arc{PlaceID: "second", Weight: 1})
	if err := n.AddTransition(tr); err != nil {
		t.Fatal(err)
	}

	a.AddToken(token.New())

	_, err := n.Fire("t1", 1)
	if err == nil {
		t.Fatal("expected fire to fail: two non-pool outputs need two consumed tokens but only one input arc fed the pool")
	}
	if a.AvailableTokenCount() != 1 {
		t.Fatalf("expected rollback to restore a's token, got %d", a.AvailableTokenCount())
	}
	if first.AvailableTokenCount() != 0 {
		t.Fatalf("expected the already-pushed token at first to be rolled back, got %d", first.AvailableTokenCount())
	}
	if second.AvailableTokenCount() != 0 {
		t.Fatal("expected second to remain empty")
	}
}

func TestEnabledOrderedSortsByPriority(t *testing.T) {
	n := New()
	mustAddPlace(t, n, "p", 0)
	mustAddPlace(t, n, "q1", 0)
	mustAddPlace(t, n, "q2", 0)

	p, _ := n.GetPlace("p")
	p.AddToken(token.New())
	p.AddToken(token.New())

	low := NewTransition("low", 1)
	low.AddInput(&Arc{PlaceID: "p", Weight: 1})
	low.AddOutput(&Arc{PlaceID: "q1", Weight: 1})

	high := NewTransition("high", 5)
	high.AddInput(&Arc{PlaceID: "p", Weight: 1})
	high.AddOutput(&Arc{PlaceID: "q2", Weight: 1})

	if err := n.AddTransition(low); err != nil {
		t.Fatal(err)
	}
	if err := n.AddTransition(high); err != nil {
		t.Fatal(err)
	}

	enabled, err := n.EnabledOrdered()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enabled) != 2 || enabled[0].ID != "high" {
		t.Fatalf("expected high-priority transition first, got %+v", enabled)
	}
}

func TestAddTokenRespectsCapacity(t *testing.T) {
	p := NewPlace("p", 1, nil, nil)
	if _, err := p.AddToken(token.New()); err != nil {
		t.Fatalf("unexpected error on first add: %v", err)
	}
	_, err := p.AddToken(token.New())
	if err == nil {
		t.Fatal("expected capacity rejection on second add")
	}
	if !bnerr.Is(err, bnerr.ResourceExhausted) {
		t.Fatalf("expected ResourceExhausted kind, got %v", bnerr.KindOf(err))
	}
}

func TestParseRefSplitsSuffix(t *testing.T) {
	id, suffix, err := ParseRef("act::success")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "act" || suffix != SuffixSuccess {
		t.Fatalf("expected act/success, got %s/%s", id, suffix)
	}

	id, suffix, err = ParseRef("entry")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "entry" || suffix != SuffixMain {
		t.Fatalf("expected entry/main, got %s/%s", id, suffix)
	}
}

func TestParseRefRejectsUnknownSuffix(t *testing.T) {
	if _, _, err := ParseRef("p::bogus"); err == nil {
		t.Fatal("expected error for unknown suffix")
	}
}
