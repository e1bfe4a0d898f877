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
	"github.com/behaviornet/runtime/runtime"
	"github.com/behaviornet/runtime/token"
)

// ControllerBridge adapts sys into a runtime.EventHooks that a controller
// can install wholesale via its three OnXxx setters, or by passing the
// result fields individually. Each hook publishes asynchronously and
// never blocks the tick: a full event buffer drops the event rather than
// stalling the caller holding the controller's lock.
func ControllerBridge(sys *System) runtime.EventHooks {
	return runtime.EventHooks{
		OnTokenEnter: func(placeID string, tok *token.Token) {
			sys.Publish(Event{Type: "token.enter", PlaceID: placeID, Data: snapshotData(tok)})
		},
		OnTokenExit: func(placeID string, tok *token.Token) {
			sys.Publish(Event{Type: "token.exit", PlaceID: placeID, Data: snapshotData(tok)})
		},
		OnTransitionFired: func(transitionID string, epoch uint64) {
			sys.Publish(Event{Type: "transition.fired", Transition: transitionID, Epoch: epoch})
		},
	}
}

// snapshotData copies a token's data map so a published event does not
// alias the live token -- the token is borrowed for the duration of the
// callback only, per the controller's event-callback contract.
func snapshotData(tok *token.Token) map[string]interface{} {
	if tok == nil {
		return nil
	}
	src := tok.Data()
	out := make(map[string]interface{}, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
