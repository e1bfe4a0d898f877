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

package event

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubscribeAssignsID(t *testing.T) {
	sys := NewSystem()
	defer sys.Close()

	id, err := sys.Subscribe("token.enter", func(Event) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty subscription id")
	}
	if sys.SubscriptionCount() != 1 {
		t.Fatalf("expected 1 subscription, got %d", sys.SubscriptionCount())
	}
}

func TestSubscribeRejectsNilHandler(t *testing.T) {
	sys := NewSystem()
	defer sys.Close()

	if _, err := sys.Subscribe("token.enter", nil); err == nil {
		t.Fatal("expected error for nil handler")
	}
}

func TestUnsubscribeRemovesSubscription(t *testing.T) {
	sys := NewSystem()
	defer sys.Close()

	id, _ := sys.Subscribe("token.enter", func(Event) error { return nil })
	if err := sys.Unsubscribe(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sys.SubscriptionCount() != 0 {
		t.Fatalf("expected 0 subscriptions, got %d", sys.SubscriptionCount())
	}
}

func TestPublishSyncDeliversToMatchingSubscriber(t *testing.T) {
	sys := NewSystem()
	defer sys.Close()

	var got Event
	sys.Subscribe("transition.fired", func(e Event) error {
		got = e
		return nil
	})
	sys.Subscribe("token.enter", func(Event) error {
		t.Fatal("non-matching handler should not fire")
		return nil
	})

	err := sys.PublishSync(context.Background(), Event{Type: "transition.fired", Transition: "t1", Epoch: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Transition != "t1" || got.Epoch != 7 {
		t.Fatalf("handler did not receive expected event: %+v", got)
	}
}

func TestPublishSyncWildcardMatchesEveryType(t *testing.T) {
	sys := NewSystem()
	defer sys.Close()

	var count int32
	sys.Subscribe("*", func(Event) error {
		atomic.AddInt32(&count, 1)
		return nil
	})

	sys.PublishSync(context.Background(), Event{Type: "token.enter"})
	sys.PublishSync(context.Background(), Event{Type: "transition.fired"})

	if atomic.LoadInt32(&count) != 2 {
		t.Fatalf("expected wildcard subscriber to see both events, got %d", count)
	}
}

func TestPublishDeliversAsynchronously(t *testing.T) {
	sys := NewSystem()
	defer sys.Close()

	done := make(chan struct{})
	sys.Subscribe("token.exit", func(Event) error {
		close(done)
		return nil
	})

	if err := sys.Publish(Event{Type: "token.exit"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked within timeout")
	}
}

func TestCloseRejectsFurtherPublish(t *testing.T) {
	sys := NewSystem()
	sys.Close()

	if err := sys.Publish(Event{Type: "token.enter"}); err == nil {
		t.Fatal("expected error publishing to a closed system")
	}
}
