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

package config

import "testing"

func TestValidateAcceptsLinearPipeline(t *testing.T) {
	cfg := &NetConfig{
		Places: []PlaceSpec{
			{ID: "entry", Type: PlaceTypeEntrypoint},
			{ID: "mid", Type: PlaceTypePlain},
			{ID: "exit", Type: PlaceTypeExitLogger},
		},
		Transitions: []TransitionSpec{
			{From: []string{"entry"}, To: []OutputRef{{To: "mid"}}},
			{From: []string{"mid"}, To: []OutputRef{{To: "exit"}}},
		},
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejectsDuplicatePlaceID(t *testing.T) {
	cfg := &NetConfig{
		Places: []PlaceSpec{
			{ID: "p", Type: PlaceTypePlain},
			{ID: "p", Type: PlaceTypePlain},
		},
	}

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for duplicate place id")
	}
}

func TestValidateRejectsUnknownPlaceReference(t *testing.T) {
	cfg := &NetConfig{
		Places: []PlaceSpec{
			{ID: "p", Type: PlaceTypePlain},
		},
		Transitions: []TransitionSpec{
			{From: []string{"p"}, To: []OutputRef{{To: "nowhere"}}},
		},
	}

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for unknown transition destination")
	}
}

func TestValidateRejectsActionPlaceMissingParams(t *testing.T) {
	cfg := &NetConfig{
		Places: []PlaceSpec{
			{ID: "act", Type: PlaceTypeAction},
		},
	}

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for action place missing action_id")
	}
}

func TestValidateRejectsInvalidSubQueueSuffix(t *testing.T) {
	cfg := &NetConfig{
		Places: []PlaceSpec{
			{ID: "p", Type: PlaceTypePlain},
			{ID: "q", Type: PlaceTypePlain},
		},
		Transitions: []TransitionSpec{
			{From: []string{"p"}, To: []OutputRef{{To: "q::bogus"}}},
		},
	}

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for invalid sub-queue suffix")
	}
}
