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

// Package behavior implements the per-place behaviours bound by a
// controller to each place in a net: PlainPlace, EntrypointPlace,
// ExitLoggerPlace, ResourcePoolPlace, WaitWithTimeoutPlace, and
// ActionPlace.
package behavior

import (
	"github.com/behaviornet/runtime/token"
)

// PlaceBehavior is the hook surface the controller drives on every place
// during a tick: on_token_enter for tokens delivered to the place's main
// queue by a fired transition or by injection, and tick for once-per-epoch
// housekeeping. Both hooks run inside the controller's single critical
// section; neither may block.
type PlaceBehavior interface {
	// OnTokenEnter is called for each token delivered to the bound place's
	// main queue. id is the ID the token was allocated in that queue.
	OnTokenEnter(id token.ID, tok *token.Token)
	// Tick is called once per epoch, after the executor has been polled
	// and before enabled transitions are computed.
	Tick(epoch uint64)
}
