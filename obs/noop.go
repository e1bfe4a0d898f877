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

// NoOpLogger discards every log call. Used as the default when no logger
// is configured.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string, map[string]interface{}) {}
func (NoOpLogger) Info(string, map[string]interface{})  {}
func (NoOpLogger) Warn(string, map[string]interface{})  {}
func (NoOpLogger) Error(string, map[string]interface{}) {}

// NoOpTracer produces spans that record nothing.
type NoOpTracer struct{}

func (NoOpTracer) StartSpan(string) Span { return noOpSpan{} }

type noOpSpan struct{}

func (noOpSpan) End()                             {}
func (noOpSpan) SetAttribute(string, interface{}) {}
func (noOpSpan) RecordError(error)                {}

// NoOpMetrics discards every metric call.
type NoOpMetrics struct{}

func (NoOpMetrics) Inc(string)             {}
func (NoOpMetrics) Add(string, float64)    {}
func (NoOpMetrics) Observe(string, float64) {}
func (NoOpMetrics) Set(string, float64)    {}
