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
	"unsafe"

	"github.com/google/uuid"
)

// Event type ids.
var (
	EVENT_AWAIT_ADDRESS      = uuid.MustParse("58039808-7b8f-5895-9961-e1f9804b1f8c")
	EVENT_SLEEP_THREAD       = uuid.MustParse("6c222e98-9d03-5f9f-babb-563695db3f4c")
	EVENT_SLEEP_THREAD_UNTIL = uuid.MustParse("1d9c4f6e-22b7-5a0e-9c33-0e8a6f1b4d27")
	EVENT_JOIN_THREAD        = uuid.MustParse("9e3b6a10-4c5d-5f82-b1e7-6d2a8c0f3e95")
	EVENT_JOIN_PROCESS       = uuid.MustParse("c47f2d85-0b19-5e6a-8d4c-f1a3b7e92c06")
)

const (
	// SizeOfBlockingEvent is the size of every BlockingEvent on the wire.
	SizeOfBlockingEvent = 64

	// SizeOfEventPayload is the size of the type-specific part of a
	// BlockingEvent.
	SizeOfEventPayload = SizeOfBlockingEvent - SizeOfExtendedOptionHead
)

// Handle refers to a kernel object owned by the calling process.
type Handle uint64

// EventBody is the type-specific payload of a BlockingEvent.
type EventBody interface {
	// EventType returns the option type id of the body.
	EventType() uuid.UUID

	marshalPayload(dst []byte)
}

// EventAwaitAddress blocks until a notification for Address arrives.
type EventAwaitAddress struct {
	Address    *uintptr
	IgnoreMask uintptr
}

// EventType implements EventBody.EventType.
func (EventAwaitAddress) EventType() uuid.UUID { return EVENT_AWAIT_ADDRESS }

func (e EventAwaitAddress) marshalPayload(dst []byte) {
	ByteOrder.PutUint64(dst[0:8], uint64(uintptr(unsafe.Pointer(e.Address))))
	ByteOrder.PutUint64(dst[8:16], uint64(e.IgnoreMask))
	// Empty await option list.
	ByteOrder.PutUint64(dst[16:24], 0)
	ByteOrder.PutUint64(dst[24:32], 0)
}

// EventSleepThread blocks for a relative duration.
type EventSleepThread struct {
	Duration Duration
}

// EventType implements EventBody.EventType.
func (EventSleepThread) EventType() uuid.UUID { return EVENT_SLEEP_THREAD }

func (e EventSleepThread) marshalPayload(dst []byte) {
	e.Duration.MarshalBytes(dst)
}

// EventSleepThreadUntil blocks until Clock reads at least Deadline.
type EventSleepThreadUntil struct {
	Deadline Duration
	Clock    uuid.UUID
}

// EventType implements EventBody.EventType.
func (EventSleepThreadUntil) EventType() uuid.UUID { return EVENT_SLEEP_THREAD_UNTIL }

func (e EventSleepThreadUntil) marshalPayload(dst []byte) {
	rest := e.Deadline.MarshalBytes(dst)
	MarshalUUID(rest, e.Clock)
}

// EventJoinThread blocks until Thread exits. The kernel stores the exit code
// in ExitCode.
type EventJoinThread struct {
	Thread   Handle
	ExitCode int64
}

// EventType implements EventBody.EventType.
func (EventJoinThread) EventType() uuid.UUID { return EVENT_JOIN_THREAD }

func (e EventJoinThread) marshalPayload(dst []byte) {
	ByteOrder.PutUint64(dst[0:8], uint64(e.Thread))
	ByteOrder.PutUint64(dst[8:16], uint64(e.ExitCode))
}

// EventJoinProcess blocks until Process exits. The kernel stores the exit
// status in Status.
type EventJoinProcess struct {
	Process Handle
	Status  int64
}

// EventType implements EventBody.EventType.
func (EventJoinProcess) EventType() uuid.UUID { return EVENT_JOIN_PROCESS }

func (e EventJoinProcess) marshalPayload(dst []byte) {
	ByteOrder.PutUint64(dst[0:8], uint64(e.Process))
	ByteOrder.PutUint64(dst[8:16], uint64(e.Status))
}

// EventUnknown carries the raw payload of an event type this package does
// not model.
type EventUnknown struct {
	Type    uuid.UUID
	Payload [SizeOfEventPayload]byte
}

// EventType implements EventBody.EventType.
func (e EventUnknown) EventType() uuid.UUID { return e.Type }

func (e EventUnknown) marshalPayload(dst []byte) {
	copy(dst, e.Payload[:])
}

// BlockingEvent is one element of the event list passed to
// BlockOnEventsAll and BlockOnEventsAny.
//
// +marshal
type BlockingEvent struct {
	Head ExtendedOptionHead
	Body EventBody
}

// NewBlockingEvent returns a required event wrapping body.
func NewBlockingEvent(body EventBody) BlockingEvent {
	return BlockingEvent{
		Head: ExtendedOptionHead{Type: body.EventType()},
		Body: body,
	}
}

// Optional returns true if the event carries OPTION_FLAG_IGNORE.
func (e *BlockingEvent) Optional() bool {
	return e.Head.Optional()
}

// SetOptional sets or clears OPTION_FLAG_IGNORE.
func (e *BlockingEvent) SetOptional(optional bool) {
	if optional {
		e.Head.Flags |= OPTION_FLAG_IGNORE
	} else {
		e.Head.Flags &^= OPTION_FLAG_IGNORE
	}
}

// String implements fmt.Stringer.
func (e BlockingEvent) String() string {
	return fmt.Sprintf("BlockingEvent{type: %s, flags: %#x, body: %+v}", e.Head.Type, e.Head.Flags, e.Body)
}

// SizeBytes implements marshal.Marshallable.SizeBytes.
func (e *BlockingEvent) SizeBytes() int {
	return SizeOfBlockingEvent
}

// MarshalBytes implements marshal.Marshallable.MarshalBytes. The payload is
// zero-filled past the end of the body.
func (e *BlockingEvent) MarshalBytes(dst []byte) []byte {
	rest := e.Head.MarshalBytes(dst)
	payload := rest[:SizeOfEventPayload]
	clear(payload)
	if e.Body != nil {
		e.Body.marshalPayload(payload)
	}
	return rest[SizeOfEventPayload:]
}

// UnmarshalBytes implements marshal.Marshallable.UnmarshalBytes.
//
// EventAwaitAddress cannot be reconstructed from its wire form, since the
// address it carries is not a Go pointer; it is decoded as EventUnknown.
func (e *BlockingEvent) UnmarshalBytes(src []byte) []byte {
	rest := e.Head.UnmarshalBytes(src)
	payload := rest[:SizeOfEventPayload]
	switch e.Head.Type {
	case EVENT_SLEEP_THREAD:
		var b EventSleepThread
		b.Duration.UnmarshalBytes(payload)
		e.Body = b
	case EVENT_SLEEP_THREAD_UNTIL:
		var b EventSleepThreadUntil
		b.Clock, _ = UnmarshalUUID(b.Deadline.UnmarshalBytes(payload))
		e.Body = b
	case EVENT_JOIN_THREAD:
		e.Body = EventJoinThread{
			Thread:   Handle(ByteOrder.Uint64(payload[0:8])),
			ExitCode: int64(ByteOrder.Uint64(payload[8:16])),
		}
	case EVENT_JOIN_PROCESS:
		e.Body = EventJoinProcess{
			Process: Handle(ByteOrder.Uint64(payload[0:8])),
			Status:  int64(ByteOrder.Uint64(payload[8:16])),
		}
	default:
		b := EventUnknown{Type: e.Head.Type}
		copy(b.Payload[:], payload)
		e.Body = b
	}
	return rest[SizeOfEventPayload:]
}
