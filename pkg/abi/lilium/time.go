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
	"time"

	"github.com/google/uuid"
)

// Clock ids.
var (
	// CLOCK_EPOCH measures wall time since the Unix epoch.
	CLOCK_EPOCH = uuid.MustParse("c8baabaf-b534-3fa1-929e-6177713e93f4")

	// CLOCK_MONOTONIC never goes backwards; its epoch is unspecified.
	CLOCK_MONOTONIC = uuid.MustParse("df95f5b1-bbb7-3562-8c7a-6c3ce0a5dd95")
)

// SizeOfDuration is the size of a Duration on the wire, including the four
// bytes of tail padding.
const SizeOfDuration = 16

// Duration is a span of time as the kernel represents it.
//
// +marshal
type Duration struct {
	Seconds       int64
	NanosOfSecond uint32
}

// DurationFromTime converts d, which must not be negative.
func DurationFromTime(d time.Duration) Duration {
	return Duration{
		Seconds:       int64(d / time.Second),
		NanosOfSecond: uint32(d % time.Second),
	}
}

// DurationFromUnixNano converts a point n nanoseconds after a clock's epoch.
func DurationFromUnixNano(n int64) Duration {
	sec, nsec := n/int64(time.Second), n%int64(time.Second)
	if nsec < 0 {
		sec--
		nsec += int64(time.Second)
	}
	return Duration{Seconds: sec, NanosOfSecond: uint32(nsec)}
}

// ToTime returns d as a time.Duration, saturating on overflow.
func (d Duration) ToTime() time.Duration {
	const maxSec = int64(1<<63-1) / int64(time.Second)
	if d.Seconds > maxSec {
		return time.Duration(1<<63 - 1)
	}
	if d.Seconds < -maxSec {
		return time.Duration(-1 << 63)
	}
	return time.Duration(d.Seconds)*time.Second + time.Duration(d.NanosOfSecond)
}

// Valid returns true if the nanosecond field is below one second.
func (d Duration) Valid() bool {
	return d.NanosOfSecond < uint32(time.Second)
}

// SizeBytes implements marshal.Marshallable.SizeBytes.
func (d *Duration) SizeBytes() int {
	return SizeOfDuration
}

// MarshalBytes implements marshal.Marshallable.MarshalBytes.
func (d *Duration) MarshalBytes(dst []byte) []byte {
	ByteOrder.PutUint64(dst[0:8], uint64(d.Seconds))
	ByteOrder.PutUint32(dst[8:12], d.NanosOfSecond)
	ByteOrder.PutUint32(dst[12:16], 0)
	return dst[SizeOfDuration:]
}

// UnmarshalBytes implements marshal.Marshallable.UnmarshalBytes.
func (d *Duration) UnmarshalBytes(src []byte) []byte {
	d.Seconds = int64(ByteOrder.Uint64(src[0:8]))
	d.NanosOfSecond = ByteOrder.Uint32(src[8:12])
	return src[SizeOfDuration:]
}
