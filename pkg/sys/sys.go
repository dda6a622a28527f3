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

// Package sys is the system call boundary of the Lilium kernel.
//
// Calls are made through the Kernel installed with SetKernel. The state that
// the kernel keeps per thread (the one-shot blocking timeout, pending
// interrupts and the last error context) lives in a Thread carried by the
// context.Context passed to every blocking call.
package sys

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"lilium.dev/lilium/pkg/abi/lilium"
)

// Kernel is the set of system calls used by the synchronization layer.
//
// Blocking calls honour, in order: a pending interrupt of the calling Thread
// (INTERRUPTED), the Thread's blocking timeout (TIMEOUT), and cancellation of
// ctx (INTERRUPTED for context.Canceled, TIMEOUT for an expired deadline).
type Kernel interface {
	// AwaitAddress atomically checks that the bits of *addr not set in
	// ignoreMask equal those of *current and blocks until a notification
	// arrives. If the check fails, *current is set to the loaded word and
	// INVALID_STATE is returned.
	AwaitAddress(ctx context.Context, addr *uintptr, current *uintptr, ignoreMask uintptr) lilium.Result

	// NotifyAddress wakes up to count threads blocked on addr and returns
	// the number of threads that were blocked on addr at the time of the
	// call, woken or not. A thread that ignores every bit set in wakeMask is
	// not woken; a zero wakeMask wakes any thread.
	NotifyAddress(ctx context.Context, addr *uintptr, count uint, wakeMask uintptr) lilium.Result

	// BlockOnEventsAll blocks until every event is satisfied. Optional
	// events the kernel honoured have OPTION_FLAG_IGNORE cleared. It returns
	// the number of events honoured.
	BlockOnEventsAll(ctx context.Context, events []lilium.BlockingEvent) lilium.Result

	// BlockOnEventsAny blocks until one event is satisfied and returns its
	// index.
	BlockOnEventsAny(ctx context.Context, events []lilium.BlockingEvent) lilium.Result

	// SleepThread blocks for d.
	SleepThread(ctx context.Context, d lilium.Duration) lilium.Result

	// PauseThread blocks until interrupted or timed out.
	PauseThread(ctx context.Context) lilium.Result

	// StartThread runs fn on a new thread. The value returned by fn is the
	// thread's exit code.
	StartThread(ctx context.Context, fn func(ctx context.Context) int64) (*Thread, lilium.Result)

	// JoinThread waits for the thread h to exit and returns its exit code.
	// The handle is released on success.
	JoinThread(ctx context.Context, h lilium.Handle) (int64, lilium.Result)

	// InterruptThread interrupts the current or next blocking call of h.
	InterruptThread(h lilium.Handle) lilium.Result

	// GetClockOffset reads clock as a duration since its epoch.
	GetClockOffset(clock uuid.UUID) (lilium.Duration, lilium.Result)
}

type kernelHolder struct {
	k Kernel
}

var (
	installed  atomic.Pointer[kernelHolder]
	defaultNew atomic.Pointer[func() Kernel]
)

// SetKernel installs k as the kernel for all subsequent system calls and
// returns the previous one, which may be nil.
func SetKernel(k Kernel) Kernel {
	old := installed.Swap(&kernelHolder{k})
	if old == nil {
		return nil
	}
	return old.k
}

// RegisterDefault registers the constructor used to create a kernel the first
// time one is needed and none was installed.
func RegisterDefault(newKernel func() Kernel) {
	defaultNew.Store(&newKernel)
}

// Current returns the installed kernel, creating the default one if needed.
// It panics if no kernel is available.
func Current() Kernel {
	h := installed.Load()
	if h != nil && h.k != nil {
		return h.k
	}
	fn := defaultNew.Load()
	if fn == nil {
		panic("sys: no kernel installed")
	}
	if installed.CompareAndSwap(h, &kernelHolder{(*fn)()}) {
		return installed.Load().k
	}
	// Lost a race with SetKernel or another Current.
	return Current()
}

// AwaitAddress calls Kernel.AwaitAddress on the current kernel.
func AwaitAddress(ctx context.Context, addr *uintptr, current *uintptr, ignoreMask uintptr) lilium.Result {
	return Current().AwaitAddress(ctx, addr, current, ignoreMask)
}

// NotifyAddress calls Kernel.NotifyAddress on the current kernel.
func NotifyAddress(ctx context.Context, addr *uintptr, count uint, wakeMask uintptr) lilium.Result {
	return Current().NotifyAddress(ctx, addr, count, wakeMask)
}

// BlockOnEventsAll calls Kernel.BlockOnEventsAll on the current kernel.
func BlockOnEventsAll(ctx context.Context, events []lilium.BlockingEvent) lilium.Result {
	return Current().BlockOnEventsAll(ctx, events)
}

// BlockOnEventsAny calls Kernel.BlockOnEventsAny on the current kernel.
func BlockOnEventsAny(ctx context.Context, events []lilium.BlockingEvent) lilium.Result {
	return Current().BlockOnEventsAny(ctx, events)
}

// SleepThread calls Kernel.SleepThread on the current kernel.
func SleepThread(ctx context.Context, d time.Duration) lilium.Result {
	return Current().SleepThread(ctx, lilium.DurationFromTime(d))
}

// PauseThread calls Kernel.PauseThread on the current kernel.
func PauseThread(ctx context.Context) lilium.Result {
	return Current().PauseThread(ctx)
}

// StartThread calls Kernel.StartThread on the current kernel.
func StartThread(ctx context.Context, fn func(ctx context.Context) int64) (*Thread, lilium.Result) {
	return Current().StartThread(ctx, fn)
}

// JoinThread calls Kernel.JoinThread on the current kernel.
func JoinThread(ctx context.Context, h lilium.Handle) (int64, lilium.Result) {
	return Current().JoinThread(ctx, h)
}

// InterruptThread calls Kernel.InterruptThread on the current kernel.
func InterruptThread(h lilium.Handle) lilium.Result {
	return Current().InterruptThread(h)
}

// GetClockOffset calls Kernel.GetClockOffset on the current kernel.
func GetClockOffset(clock uuid.UUID) (lilium.Duration, lilium.Result) {
	return Current().GetClockOffset(clock)
}

// SetBlockingTimeout arms the blocking timeout of the thread in ctx. It
// returns INVALID_OPERATION if ctx carries no thread and INVALID_OPTION if d
// is negative.
func SetBlockingTimeout(ctx context.Context, d time.Duration) lilium.Result {
	t := ThreadFromContext(ctx)
	if t == nil {
		return lilium.INVALID_OPERATION
	}
	if d < 0 {
		return lilium.INVALID_OPTION
	}
	t.SetBlockingTimeout(d)
	return 0
}

// ClearBlockingTimeout disarms the blocking timeout of the thread in ctx.
func ClearBlockingTimeout(ctx context.Context) lilium.Result {
	t := ThreadFromContext(ctx)
	if t == nil {
		return lilium.INVALID_OPERATION
	}
	t.ClearBlockingTimeout()
	return 0
}

// LastErrorContext returns the error context recorded by the last call on the
// thread in ctx that failed with INVALID_OPTION.
func LastErrorContext(ctx context.Context) (lilium.ErrorContextInvalidOption, bool) {
	t := ThreadFromContext(ctx)
	if t == nil {
		return lilium.ErrorContextInvalidOption{}, false
	}
	return t.LastErrorContext()
}

// Interrupted consumes a pending interrupt of the thread in ctx and reports
// whether there was one.
func Interrupted(ctx context.Context) bool {
	t := ThreadFromContext(ctx)
	return t != nil && t.ConsumeInterrupt()
}
