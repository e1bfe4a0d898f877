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

// Package action implements the per-invocation retry/timeout state
// machine (RetryPolicy, ActionContext) and the cooperative,
// poll-driven ActionExecutor that steps every in-flight action.
package action

import (
	"fmt"

	"github.com/behaviornet/runtime/bnerr"
)

// Status is the four-valued outcome an invoker reports.
type Status int

const (
	// StatusSuccess means the invoker finished and the action succeeded.
	StatusSuccess Status = iota
	// StatusFailure means the invoker finished but the action failed
	// (a business-level failure, not a crash).
	StatusFailure
	// StatusInProgress means the invoker has not finished; poll will call
	// it again.
	StatusInProgress
	// StatusError means the invoker failed with a structured error.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusInProgress:
		return "in_progress"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is what an invoker returns on each call. Mirrors the C++ source's
// ActionResult factory shape (success/failure/inProgress/error<E>), rendered
// in Go without a template parameter.
type Result struct {
	Status  Status
	Message string
	Err     *bnerr.Error
}

// Success reports that the action completed successfully.
func Success() Result { return Result{Status: StatusSuccess} }

// Failure reports a business-level failure with an optional message.
func Failure(message string) Result { return Result{Status: StatusFailure, Message: message} }

// InProgress reports that the invoker has not finished; it will be called
// again on a subsequent poll.
func InProgress() Result { return Result{Status: StatusInProgress} }

// Errorf reports a structured error, built the same way bnerr constructs
// any other taxonomy error.
func Errorf(kind bnerr.Kind, format string, args ...interface{}) Result {
	err := bnerr.Newf(kind, format, args...)
	return Result{Status: StatusError, Message: err.Message, Err: err}
}

// ErrorFrom wraps an existing error as a StatusError result, recovering the
// Go-idiomatic analogue of "an exception thrown by an invoker is caught and
// converted to a generic Error result".
func ErrorFrom(err error) Result {
	if err == nil {
		return Result{Status: StatusError, Message: "nil error"}
	}
	var be *bnerr.Error
	if e, ok := err.(*bnerr.Error); ok {
		be = e
	} else {
		be = bnerr.Wrap(bnerr.Runtime, err, err.Error())
	}
	return Result{Status: StatusError, Message: be.Error(), Err: be}
}

func (r Result) String() string {
	if r.Message != "" {
		return fmt.Sprintf("%s(%s)", r.Status, r.Message)
	}
	return r.Status.String()
}
