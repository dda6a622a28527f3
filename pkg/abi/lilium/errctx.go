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

package lilium

import (
	"fmt"

	"github.com/google/uuid"
)

// ERROR_CONTEXT_TYPE_INVALID_OPTION identifies ErrorContextInvalidOption.
var ERROR_CONTEXT_TYPE_INVALID_OPTION = uuid.MustParse("ef80b847-30d9-56f7-8349-5a358bc46e7a")

// Reasons an option was rejected with INVALID_OPTION.
const (
	// INVALID_OPTION_REASON_BAD_HEAD means reserved header bits were set.
	INVALID_OPTION_REASON_BAD_HEAD uint32 = 1

	// INVALID_OPTION_REASON_UNKNOWN means the type is unknown and the
	// option is not optional.
	INVALID_OPTION_REASON_UNKNOWN uint32 = 2

	// INVALID_OPTION_REASON_TYPE_DEPENDANT means the body was rejected.
	INVALID_OPTION_REASON_TYPE_DEPENDANT uint32 = 3
)

// SizeOfErrorContextInvalidOption is the size of the wire form.
const SizeOfErrorContextInvalidOption = 64

// ErrorContextInvalidOption describes why the kernel last returned
// INVALID_OPTION on a thread.
//
// +marshal
type ErrorContextInvalidOption struct {
	Reason     uint32
	Index      int
	OptionType uuid.UUID
}

func reasonString(r uint32) string {
	switch r {
	case INVALID_OPTION_REASON_BAD_HEAD:
		return "bad head"
	case INVALID_OPTION_REASON_UNKNOWN:
		return "unknown type"
	case INVALID_OPTION_REASON_TYPE_DEPENDANT:
		return "rejected body"
	default:
		return fmt.Sprintf("reason %d", r)
	}
}

// String implements fmt.Stringer.
func (c ErrorContextInvalidOption) String() string {
	return fmt.Sprintf("invalid option %d (%s): %s", c.Index, c.OptionType, reasonString(c.Reason))
}

// SizeBytes implements marshal.Marshallable.SizeBytes.
func (c *ErrorContextInvalidOption) SizeBytes() int {
	return SizeOfErrorContextInvalidOption
}

// MarshalBytes implements marshal.Marshallable.MarshalBytes.
func (c *ErrorContextInvalidOption) MarshalBytes(dst []byte) []byte {
	head := ExtendedOptionHead{Type: ERROR_CONTEXT_TYPE_INVALID_OPTION}
	rest := head.MarshalBytes(dst)
	ByteOrder.PutUint32(rest[0:4], c.Reason)
	ByteOrder.PutUint32(rest[4:8], 0)
	ByteOrder.PutUint64(rest[8:16], uint64(c.Index))
	MarshalUUID(rest[16:32], c.OptionType)
	return rest[32:]
}

// UnmarshalBytes implements marshal.Marshallable.UnmarshalBytes.
func (c *ErrorContextInvalidOption) UnmarshalBytes(src []byte) []byte {
	var head ExtendedOptionHead
	rest := head.UnmarshalBytes(src)
	c.Reason = ByteOrder.Uint32(rest[0:4])
	c.Index = int(ByteOrder.Uint64(rest[8:16]))
	c.OptionType, _ = UnmarshalUUID(rest[16:32])
	return rest[32:]
}
