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

package token

import (
	"reflect"
	"testing"
)

func TestMapActorRegistrySerializeRoundTrip(t *testing.T) {
	reg := NewMapActorRegistry()
	if err := reg.Register("robot", reflect.TypeOf(robotActor{})); err != nil {
		t.Fatalf("unexpected error registering type: %v", err)
	}

	original := &robotActor{ID: "r7"}
	data, err := reg.Serialize(original)
	if err != nil {
		t.Fatalf("unexpected error serializing: %v", err)
	}

	restored, err := reg.Deserialize("robot", data)
	if err != nil {
		t.Fatalf("unexpected error deserializing: %v", err)
	}
	if restored.(*robotActor).ID != "r7" {
		t.Fatalf("expected restored ID r7, got %q", restored.(*robotActor).ID)
	}
}

func TestMapActorRegistryRejectsDuplicateRegistration(t *testing.T) {
	reg := NewMapActorRegistry()
	if err := reg.Register("robot", reflect.TypeOf(robotActor{})); err != nil {
		t.Fatalf("unexpected error on first registration: %v", err)
	}
	if err := reg.Register("robot", reflect.TypeOf(robotActor{})); err == nil {
		t.Fatal("expected error on duplicate registration")
	}
}

func TestMapActorRegistryUnknownType(t *testing.T) {
	reg := NewMapActorRegistry()
	if _, err := reg.Deserialize("ghost", []byte(`{}`)); err == nil {
		t.Fatal("expected error for unregistered type")
	}
}
