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

package behavior

import "github.com/behaviornet/runtime/token"

// PlainPlace is a no-op behaviour: tokens accumulate in the main queue
// until an outgoing transition consumes them. Most places in a net use
// this behaviour.
type PlainPlace struct{}

// NewPlainPlace creates a PlainPlace.
func NewPlainPlace() *PlainPlace { return &PlainPlace{} }

func (p *PlainPlace) OnTokenEnter(token.ID, *token.Token) {}

func (p *PlainPlace) Tick(uint64) {}
