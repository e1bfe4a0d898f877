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

import (
	"fmt"

	"github.com/behaviornet/runtime/bnerr"
	"github.com/behaviornet/runtime/net"
)

// Validate checks cfg for structural problems LoadConfig would otherwise
// discover one place or transition at a time: duplicate IDs, transitions
// referencing unknown places or sub-queue suffixes, and action places
// missing their required parameters. It aggregates every problem found
// into a single bnerr.Aggregate rather than stopping at the first, so a
// caller sees every misconfiguration in one pass.
func Validate(cfg *NetConfig) error {
	var errs []error

	placeIDs := make(map[string]bool, len(cfg.Places))
	for _, p := range cfg.Places {
		if placeIDs[p.ID] {
			errs = append(errs, bnerr.Newf(bnerr.Validation, "duplicate place id %q", p.ID))
			continue
		}
		placeIDs[p.ID] = true

		if err := validatePlaceParams(p); err != nil {
			errs = append(errs, err)
		}
	}

	actionIDs := make(map[string]bool, len(cfg.Actions))
	for _, a := range cfg.Actions {
		if actionIDs[a.ID] {
			errs = append(errs, bnerr.Newf(bnerr.Validation, "duplicate action id %q", a.ID))
			continue
		}
		actionIDs[a.ID] = true
	}

	for i, tr := range cfg.Transitions {
		label := fmt.Sprintf("t%d", i+1)
		if len(tr.From) == 0 {
			errs = append(errs, bnerr.Newf(bnerr.Validation, "transition %s: from list is empty", label))
		}
		for _, ref := range tr.From {
			if err := validateRef(label, ref, placeIDs); err != nil {
				errs = append(errs, err)
			}
		}
		for _, out := range tr.To {
			if err := validateRef(label, out.To, placeIDs); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return bnerr.Aggregate(errs...)
}

func validateRef(transitionLabel, ref string, placeIDs map[string]bool) error {
	placeID, _, err := net.ParseRef(ref)
	if err != nil {
		return bnerr.Wrap(bnerr.Validation, err, fmt.Sprintf("transition %s: %s", transitionLabel, err.Error()))
	}
	if !placeIDs[placeID] {
		return bnerr.Newf(bnerr.Validation, "transition %s: references unknown place %q", transitionLabel, placeID)
	}
	return nil
}

func validatePlaceParams(p PlaceSpec) error {
	switch p.Type {
	case PlaceTypeResourcePool:
		if p.ResourcePool == nil {
			return bnerr.Newf(bnerr.Validation, "place %q: type resource_pool requires resource_pool params", p.ID)
		}
	case PlaceTypeWaitWithTimeout:
		if p.WaitWithTimeout == nil {
			return bnerr.Newf(bnerr.Validation, "place %q: type wait_with_timeout requires wait_with_timeout params", p.ID)
		}
	case PlaceTypeAction:
		if p.Action == nil || p.Action.ActionID == "" {
			return bnerr.Newf(bnerr.Validation, "place %q: type action requires action.action_id", p.ID)
		}
	case PlaceTypePlain, PlaceTypeEntrypoint, PlaceTypeExitLogger:
		// no required params
	default:
		return bnerr.Newf(bnerr.Validation, "place %q: unknown type %q", p.ID, p.Type)
	}
	return nil
}
