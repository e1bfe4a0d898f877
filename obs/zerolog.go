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
	"io"
	"os"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a Logger backed by zerolog, writing JSON lines
// to w. Pass os.Stdout for production use or any io.Writer in tests.
func NewZerologLogger(w io.Writer) *ZerologLogger {
	return &ZerologLogger{log: zerolog.New(w).With().Timestamp().Logger()}
}

// NewConsoleLogger creates a Logger backed by zerolog's human-readable
// console writer, convenient for interactive programs.
func NewConsoleLogger() *ZerologLogger {
	return &ZerologLogger{log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()}
}

func withFields(e *zerolog.Event, fields map[string]interface{}) *zerolog.Event {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	return e
}

func (z *ZerologLogger) Debug(msg string, fields map[string]interface{}) {
	withFields(z.log.Debug(), fields).Msg(msg)
}

func (z *ZerologLogger) Info(msg string, fields map[string]interface{}) {
	withFields(z.log.Info(), fields).Msg(msg)
}

func (z *ZerologLogger) Warn(msg string, fields map[string]interface{}) {
	withFields(z.log.Warn(), fields).Msg(msg)
}

func (z *ZerologLogger) Error(msg string, fields map[string]interface{}) {
	withFields(z.log.Error(), fields).Msg(msg)
}
