// Copyright 2025 The gVisor Authors.
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

// Package errors holds the standardized error definition for Lilium results.
package errors

import (
	"lilium.dev/lilium/pkg/abi/lilium"
)

// Error represents a negative system call result with a descriptive message.
type Error struct {
	code    lilium.Result
	message string
}

// New creates a new *Error. code must be negative.
func New(code lilium.Result, message string) *Error {
	if code >= 0 {
		panic("errors.New: non-error result " + code.String())
	}
	return &Error{
		code:    code,
		message: message,
	}
}

// Error implements error.Error.
func (e *Error) Error() string { return e.message }

// Result returns the underlying lilium.Result value.
func (e *Error) Result() lilium.Result { return e.code }
