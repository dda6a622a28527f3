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

package event

import (
	"time"

	"github.com/google/uuid"
	"lilium.dev/lilium/pkg/abi/lilium"
	"lilium.dev/lilium/pkg/atomicwait"
)

// sleepFor fires after a duration.
type sleepFor time.Duration

// SleepFor returns an event that fires once d has elapsed.
func SleepFor(d time.Duration) Event[struct{}] {
	return sleepFor(d)
}

// Descriptor implements Event.Descriptor.
func (s sleepFor) Descriptor() lilium.BlockingEvent {
	return lilium.NewBlockingEvent(lilium.EventSleepThread{Duration: lilium.DurationFromTime(time.Duration(s))})
}

// Result implements Event.Result.
func (sleepFor) Result(*lilium.BlockingEvent) struct{} { return struct{}{} }

type sleepUntil struct {
	clock    uuid.UUID
	deadline lilium.Duration
}

// SleepUntil returns an event that fires once clock reads deadline, measured
// from the clock's epoch.
func SleepUntil(clock uuid.UUID, deadline lilium.Duration) Event[struct{}] {
	return sleepUntil{clock: clock, deadline: deadline}
}

// Descriptor implements Event.Descriptor.
func (s sleepUntil) Descriptor() lilium.BlockingEvent {
	return lilium.NewBlockingEvent(lilium.EventSleepThreadUntil{Deadline: s.deadline, Clock: s.clock})
}

// Result implements Event.Result.
func (sleepUntil) Result(*lilium.BlockingEvent) struct{} { return struct{}{} }

type awaitAddress struct {
	addr   *uintptr
	ignore uintptr
}

// AwaitAddress returns an event that fires when cell is notified.
//
// Unlike atomicwait.Uintptr.Wait, the cell's value is not checked when the
// event is registered, so a notification sent before the call is missed.
func AwaitAddress(cell *atomicwait.Uintptr) Event[struct{}] {
	return awaitAddress{addr: cell.Addr()}
}

// AwaitAddressMask is AwaitAddress for notifications whose mask shares a bit
// with mask. It panics if mask is zero.
func AwaitAddressMask(cell *atomicwait.Uintptr, mask uintptr) Event[struct{}] {
	if mask == 0 {
		panic("event: AwaitAddressMask with an empty mask")
	}
	return awaitAddress{addr: cell.Addr(), ignore: ^mask}
}

// Descriptor implements Event.Descriptor.
func (a awaitAddress) Descriptor() lilium.BlockingEvent {
	return lilium.NewBlockingEvent(lilium.EventAwaitAddress{Address: a.addr, IgnoreMask: a.ignore})
}

// Result implements Event.Result.
func (awaitAddress) Result(*lilium.BlockingEvent) struct{} { return struct{}{} }

// joinThread fires when a thread exits.
type joinThread lilium.Handle

// JoinThread returns an event that fires when thread h exits, resolving to its
// exit code. The handle is released when the event fires.
func JoinThread(h lilium.Handle) Event[int64] {
	return joinThread(h)
}

// Descriptor implements Event.Descriptor.
func (j joinThread) Descriptor() lilium.BlockingEvent {
	return lilium.NewBlockingEvent(lilium.EventJoinThread{Thread: lilium.Handle(j)})
}

// Result implements Event.Result.
func (joinThread) Result(ev *lilium.BlockingEvent) int64 {
	body, _ := ev.Body.(lilium.EventJoinThread)
	return body.ExitCode
}

type joinProcess lilium.Handle

// JoinProcess returns an event that fires when process h exits, resolving to
// its status. Kernels without processes do not support it; wrap it in
// Optional.
func JoinProcess(h lilium.Handle) Event[int64] {
	return joinProcess(h)
}

// Descriptor implements Event.Descriptor.
func (j joinProcess) Descriptor() lilium.BlockingEvent {
	return lilium.NewBlockingEvent(lilium.EventJoinProcess{Process: lilium.Handle(j)})
}

// Result implements Event.Result.
func (joinProcess) Result(ev *lilium.BlockingEvent) int64 {
	body, _ := ev.Body.(lilium.EventJoinProcess)
	return body.Status
}
