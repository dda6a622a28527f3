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

// Package lilium contains the constants and types of the Lilium kernel
// interface that are shared between user space and the kernel.
package lilium

import (
	"fmt"
	"slices"
)

// Result is the raw return value of a system call. Negative values are error
// codes, zero and positive values are call-specific payloads (a count, an
// index, or simply "ok").
type Result int64

// Ok returns true if r does not denote an error.
func (r Result) Ok() bool {
	return r >= 0
}

// String implements fmt.Stringer.
func (r Result) String() string {
	if r >= 0 {
		return fmt.Sprintf("%d", int64(r))
	}
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int64(r))
}

// General error codes, from include/errors.h.
const (
	PERMISSION               Result = -1
	INVALID_HANDLE           Result = -2
	INVALID_MEMORY           Result = -3
	BUSY                     Result = -4
	INVALID_OPERATION        Result = -5
	INVALID_STRING           Result = -6
	INSUFFICIENT_LENGTH      Result = -7
	RESOURCE_LIMIT_EXHAUSTED Result = -8
	INVALID_STATE            Result = -9
	INVALID_OPTION           Result = -10
	INSUFFICIENT_MEMORY      Result = -11
	FINISHED_ENUMERATE       Result = -32
)

// Subsystem 1 (threads) error codes.
const (
	TIMEOUT     Result = -0x100
	INTERRUPTED Result = -0x101
	KILLED      Result = -0x102

	// DEADLOCKED is returned by BlockOnEventsAny when every event was
	// optional and ignored, so nothing could ever wake the thread.
	DEADLOCKED Result = -0x103
)

// Subsystem 2 (io) error codes.
const (
	UNSUPPORTED_OPERATION  Result = -0x200
	PENDING                Result = -0x203
	DOES_NOT_EXIST         Result = -0x204
	ALREADY_EXISTS         Result = -0x205
	UNKNOWN_DEVICE         Result = -0x206
	WOULD_BLOCK            Result = -0x207
	DEVICE_FULL            Result = -0x208
	DEVICE_UNAVAILABLE     Result = -0x209
	LINK_RESOLUTION_LOOP   Result = -0x20A
	CLOSED_REMOTELY        Result = -0x20B
	CONNECTION_INTERRUPTED Result = -0x20C
)

// Subsystem 3 (process) error codes.
const (
	SIGNALED               Result = -0x300
	MAPPING_INACCESSIBLE   Result = -0x301
	PRIVILEGE_CHECK_FAILED Result = -0x302
)

var resultNames = map[Result]string{
	PERMISSION:               "PERMISSION",
	INVALID_HANDLE:           "INVALID_HANDLE",
	INVALID_MEMORY:           "INVALID_MEMORY",
	BUSY:                     "BUSY",
	INVALID_OPERATION:        "INVALID_OPERATION",
	INVALID_STRING:           "INVALID_STRING",
	INSUFFICIENT_LENGTH:      "INSUFFICIENT_LENGTH",
	RESOURCE_LIMIT_EXHAUSTED: "RESOURCE_LIMIT_EXHAUSTED",
	INVALID_STATE:            "INVALID_STATE",
	INVALID_OPTION:           "INVALID_OPTION",
	INSUFFICIENT_MEMORY:      "INSUFFICIENT_MEMORY",
	FINISHED_ENUMERATE:       "FINISHED_ENUMERATE",
	TIMEOUT:                  "TIMEOUT",
	INTERRUPTED:              "INTERRUPTED",
	KILLED:                   "KILLED",
	DEADLOCKED:               "DEADLOCKED",
	UNSUPPORTED_OPERATION:    "UNSUPPORTED_OPERATION",
	PENDING:                  "PENDING",
	DOES_NOT_EXIST:           "DOES_NOT_EXIST",
	ALREADY_EXISTS:           "ALREADY_EXISTS",
	UNKNOWN_DEVICE:           "UNKNOWN_DEVICE",
	WOULD_BLOCK:              "WOULD_BLOCK",
	DEVICE_FULL:              "DEVICE_FULL",
	DEVICE_UNAVAILABLE:       "DEVICE_UNAVAILABLE",
	LINK_RESOLUTION_LOOP:     "LINK_RESOLUTION_LOOP",
	CLOSED_REMOTELY:          "CLOSED_REMOTELY",
	CONNECTION_INTERRUPTED:   "CONNECTION_INTERRUPTED",
	SIGNALED:                 "SIGNALED",
	MAPPING_INACCESSIBLE:     "MAPPING_INACCESSIBLE",
	PRIVILEGE_CHECK_FAILED:   "PRIVILEGE_CHECK_FAILED",
}

// ErrorCodes returns every error code known to this package, in ascending
// order of magnitude.
func ErrorCodes() []Result {
	codes := make([]Result, 0, len(resultNames))
	for r := range resultNames {
		codes = append(codes, r)
	}
	slices.Sort(codes)
	slices.Reverse(codes)
	return codes
}
