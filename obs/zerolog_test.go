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

package obs

import (
	"bytes"
	"strings"
	"testing"
)

func TestZerologLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf)

	logger.Info("transition fired", map[string]interface{}{
		"transition_id": "t1",
		"epoch":         uint64(3),
	})

	out := buf.String()
	if !strings.Contains(out, "transition fired") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "t1") {
		t.Fatalf("expected field value in output, got %q", out)
	}
}

func TestNoOpLoggerDoesNotPanic(t *testing.T) {
	var l Logger = NoOpLogger{}
	l.Debug("x", nil)
	l.Info("x", nil)
	l.Warn("x", nil)
	l.Error("x", nil)
}
