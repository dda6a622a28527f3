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

// Package liliumerr contains kernel result codes exported as error interface
// pointers. This allows for fast comparison and return operations comparable
// to raw lilium.Result values.
package liliumerr

import (
	"context"
	"fmt"

	"lilium.dev/lilium/pkg/abi/lilium"
	"lilium.dev/lilium/pkg/errors"
)

// The following errors are semantically identical to the lilium.Result
// constants of the same name. Since the types are distinct they are not
// directly comparable; the Result method returns the code such that
// lilium.Result(ETIMEOUT.Result()) == lilium.TIMEOUT. Converting a result to
// an error should be done via FromResult.
var (
	noError *errors.Error = nil

	PERMISSION               = errors.New(lilium.PERMISSION, "permission denied")
	INVALID_HANDLE           = errors.New(lilium.INVALID_HANDLE, "invalid handle")
	INVALID_MEMORY           = errors.New(lilium.INVALID_MEMORY, "invalid memory access")
	BUSY                     = errors.New(lilium.BUSY, "resource busy")
	INVALID_OPERATION        = errors.New(lilium.INVALID_OPERATION, "invalid operation")
	INVALID_STRING           = errors.New(lilium.INVALID_STRING, "invalid string")
	INSUFFICIENT_LENGTH      = errors.New(lilium.INSUFFICIENT_LENGTH, "insufficient buffer length")
	RESOURCE_LIMIT_EXHAUSTED = errors.New(lilium.RESOURCE_LIMIT_EXHAUSTED, "resource limit exhausted")
	INVALID_STATE            = errors.New(lilium.INVALID_STATE, "invalid state")
	INVALID_OPTION           = errors.New(lilium.INVALID_OPTION, "invalid option")
	INSUFFICIENT_MEMORY      = errors.New(lilium.INSUFFICIENT_MEMORY, "insufficient memory")
	FINISHED_ENUMERATE       = errors.New(lilium.FINISHED_ENUMERATE, "enumeration finished")

	// Thread results.
	TIMEOUT     = errors.New(lilium.TIMEOUT, "timed out")
	INTERRUPTED = errors.New(lilium.INTERRUPTED, "interrupted")
	KILLED      = errors.New(lilium.KILLED, "killed")
	DEADLOCKED  = errors.New(lilium.DEADLOCKED, "deadlocked")

	// IO results.
	UNSUPPORTED_OPERATION  = errors.New(lilium.UNSUPPORTED_OPERATION, "unsupported operation")
	PENDING                = errors.New(lilium.PENDING, "operation pending")
	DOES_NOT_EXIST         = errors.New(lilium.DOES_NOT_EXIST, "does not exist")
	ALREADY_EXISTS         = errors.New(lilium.ALREADY_EXISTS, "already exists")
	UNKNOWN_DEVICE         = errors.New(lilium.UNKNOWN_DEVICE, "unknown device")
	WOULD_BLOCK            = errors.New(lilium.WOULD_BLOCK, "operation would block")
	DEVICE_FULL            = errors.New(lilium.DEVICE_FULL, "device full")
	DEVICE_UNAVAILABLE     = errors.New(lilium.DEVICE_UNAVAILABLE, "device unavailable")
	LINK_RESOLUTION_LOOP   = errors.New(lilium.LINK_RESOLUTION_LOOP, "link resolution loop")
	CLOSED_REMOTELY        = errors.New(lilium.CLOSED_REMOTELY, "closed remotely")
	CONNECTION_INTERRUPTED = errors.New(lilium.CONNECTION_INTERRUPTED, "connection interrupted")

	// Process results.
	SIGNALED               = errors.New(lilium.SIGNALED, "signaled")
	MAPPING_INACCESSIBLE   = errors.New(lilium.MAPPING_INACCESSIBLE, "mapping inaccessible")
	PRIVILEGE_CHECK_FAILED = errors.New(lilium.PRIVILEGE_CHECK_FAILED, "privilege check failed")
)

var resultMap = map[lilium.Result]*errors.Error{
	lilium.PERMISSION:               PERMISSION,
	lilium.INVALID_HANDLE:           INVALID_HANDLE,
	lilium.INVALID_MEMORY:           INVALID_MEMORY,
	lilium.BUSY:                     BUSY,
	lilium.INVALID_OPERATION:        INVALID_OPERATION,
	lilium.INVALID_STRING:           INVALID_STRING,
	lilium.INSUFFICIENT_LENGTH:      INSUFFICIENT_LENGTH,
	lilium.RESOURCE_LIMIT_EXHAUSTED: RESOURCE_LIMIT_EXHAUSTED,
	lilium.INVALID_STATE:            INVALID_STATE,
	lilium.INVALID_OPTION:           INVALID_OPTION,
	lilium.INSUFFICIENT_MEMORY:      INSUFFICIENT_MEMORY,
	lilium.FINISHED_ENUMERATE:       FINISHED_ENUMERATE,
	lilium.TIMEOUT:                  TIMEOUT,
	lilium.INTERRUPTED:              INTERRUPTED,
	lilium.KILLED:                   KILLED,
	lilium.DEADLOCKED:               DEADLOCKED,
	lilium.UNSUPPORTED_OPERATION:    UNSUPPORTED_OPERATION,
	lilium.PENDING:                  PENDING,
	lilium.DOES_NOT_EXIST:           DOES_NOT_EXIST,
	lilium.ALREADY_EXISTS:           ALREADY_EXISTS,
	lilium.UNKNOWN_DEVICE:           UNKNOWN_DEVICE,
	lilium.WOULD_BLOCK:              WOULD_BLOCK,
	lilium.DEVICE_FULL:              DEVICE_FULL,
	lilium.DEVICE_UNAVAILABLE:       DEVICE_UNAVAILABLE,
	lilium.LINK_RESOLUTION_LOOP:     LINK_RESOLUTION_LOOP,
	lilium.CLOSED_REMOTELY:          CLOSED_REMOTELY,
	lilium.CONNECTION_INTERRUPTED:   CONNECTION_INTERRUPTED,
	lilium.SIGNALED:                 SIGNALED,
	lilium.MAPPING_INACCESSIBLE:     MAPPING_INACCESSIBLE,
	lilium.PRIVILEGE_CHECK_FAILED:   PRIVILEGE_CHECK_FAILED,
}

// FromResult returns the error for r, or nil if r is not an error. Codes
// without a named error get a fresh *errors.Error.
func FromResult(r lilium.Result) error {
	if r >= 0 {
		return nil
	}
	if e, ok := resultMap[r]; ok {
		return e
	}
	return errors.New(r, fmt.Sprintf("unknown error %d", int64(r)))
}

// ToError converts a liliumerr to an error type.
func ToError(err *errors.Error) error {
	if err == noError {
		return nil
	}
	return err
}

// ToResult converts a liliumerr to a lilium.Result. A nil error is zero.
func ToResult(e *errors.Error) lilium.Result {
	if e == noError {
		return 0
	}
	return e.Result()
}

// Equals compares a liliumerr to a given error. Errors carrying the same
// result code compare equal even if they are distinct values.
func Equals(e *errors.Error, err error) bool {
	if err == nil {
		return e == noError
	}
	if e == err {
		return true
	}
	other, ok := err.(*errors.Error)
	return ok && e != noError && other != noError && e.Result() == other.Result()
}

var errorMap = map[error]*errors.Error{
	context.Canceled:         INTERRUPTED,
	context.DeadlineExceeded: TIMEOUT,
}

// errorUnwrappers is an array of unwrap functions to extract typed errors.
var errorUnwrappers = []func(error) (*errors.Error, bool){}

// AddErrorUnwrapper registers an unwrap method that can extract a concrete
// error from a typed, but not initialized, error.
func AddErrorUnwrapper(unwrap func(e error) (*errors.Error, bool)) {
	errorUnwrappers = append(errorUnwrappers, unwrap)
}

// TranslateError translates errors to results, it will return false if the
// error was not registered. Context cancellation is reported as INTERRUPTED
// and an expired context deadline as TIMEOUT.
func TranslateError(from error) (*errors.Error, bool) {
	if e, ok := from.(*errors.Error); ok {
		return e, true
	}
	if err, ok := errorMap[from]; ok {
		return err, true
	}
	// Try to unwrap the error if we couldn't match an error exactly. This
	// might mean that a package has its own error type.
	for _, unwrap := range errorUnwrappers {
		if err, ok := unwrap(from); ok {
			return err, true
		}
	}
	return nil, false
}
