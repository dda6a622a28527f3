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

// Package atomicwait extends atomic cells with the kernel's address wait and
// notify operations.
//
// Only the cell types defined here, Uintptr and Pointer, can be waited on.
// Both are one machine word wide, which is what AwaitAddress compares.
//
// A waiter blocks only while the cell holds the value it expects, and is woken
// by a later Notify on the same cell. Notifications are not queued: a Notify
// with nobody blocked is lost. Callers recheck the cell in a loop.
//
// Cells must not be placed in memory shared with another process.
package atomicwait

import (
	"context"
	"fmt"
	"time"

	"lilium.dev/lilium/pkg/abi/lilium"
	"lilium.dev/lilium/pkg/errors/liliumerr"
	_ "lilium.dev/lilium/pkg/kernel" // Default kernel.
	"lilium.dev/lilium/pkg/log"
	"lilium.dev/lilium/pkg/sys"
)

// WaitKind says why a wait returned without being notified.
type WaitKind int

// Wait outcomes other than success.
const (
	// UnexpectedValue means the cell did not hold the expected value.
	UnexpectedValue WaitKind = iota + 1

	// Interrupted means the thread was interrupted while blocked.
	Interrupted

	// Timeout means the thread's blocking timeout expired.
	Timeout
)

// String implements fmt.Stringer.
func (k WaitKind) String() string {
	switch k {
	case UnexpectedValue:
		return "unexpected value"
	case Interrupted:
		return "interrupted"
	case Timeout:
		return "timed out"
	default:
		return fmt.Sprintf("WaitKind(%d)", int(k))
	}
}

// Errors matched by errors.Is against a *WaitError.
var (
	ErrUnexpectedValue = liliumerr.INVALID_STATE
	ErrInterrupted     = liliumerr.INTERRUPTED
	ErrTimeout         = liliumerr.TIMEOUT
)

// WaitError is returned by a wait that was not notified. S is the cell's
// scalar type.
type WaitError[S any] struct {
	Kind WaitKind

	// Observed is the value found in the cell when Kind is UnexpectedValue.
	Observed S
}

// Error implements error.Error.
func (e *WaitError[S]) Error() string {
	if e.Kind == UnexpectedValue {
		return fmt.Sprintf("wait: unexpected value %v", e.Observed)
	}
	return "wait: " + e.Kind.String()
}

// Unwrap returns the kernel error corresponding to e.Kind.
func (e *WaitError[S]) Unwrap() error {
	switch e.Kind {
	case UnexpectedValue:
		return ErrUnexpectedValue
	case Interrupted:
		return ErrInterrupted
	case Timeout:
		return ErrTimeout
	default:
		return nil
	}
}

// unexpectedResult reports a kernel result that op cannot return for a
// well-formed cell. It does not return.
func unexpectedResult(op string, r lilium.Result) {
	log.Warningf("atomicwait: %s returned unexpected result %v", op, r)
	panic(fmt.Sprintf("atomicwait: %s: unexpected kernel result %v: %v", op, r, liliumerr.FromResult(r)))
}

// await blocks on addr while its bits outside ignore match expected. On
// UnexpectedValue, the returned word is the value the kernel observed.
func await(ctx context.Context, addr *uintptr, expected, ignore uintptr) (uintptr, WaitKind) {
	cur := expected
	r := sys.AwaitAddress(ctx, addr, &cur, ignore)
	switch {
	case r >= 0:
		return 0, 0
	case r == lilium.INVALID_STATE:
		return cur, UnexpectedValue
	case r == lilium.INTERRUPTED:
		return 0, Interrupted
	case r == lilium.TIMEOUT:
		return 0, Timeout
	default:
		unexpectedResult("AwaitAddress", r)
		panic("unreachable")
	}
}

// awaitFor is await with a blocking timeout of d. A negative d is treated as
// zero, so the wait times out at once unless the value differs.
func awaitFor(ctx context.Context, addr *uintptr, expected, ignore uintptr, d time.Duration) (uintptr, WaitKind) {
	ctx, _ = sys.EnsureThread(ctx)
	if d < 0 {
		d = 0
	}
	if r := sys.SetBlockingTimeout(ctx, d); r != 0 {
		unexpectedResult("SetBlockingTimeout", r)
	}
	return await(ctx, addr, expected, ignore)
}

// ignoreMask converts the bits a waiter cares about into the kernel's ignore
// mask. A zero mask is a programming error.
func ignoreMask(mask uintptr) uintptr {
	if mask == 0 {
		panic("atomicwait: wait with an empty mask")
	}
	return ^mask
}

// notify wakes up to count waiters on addr that care about a bit in wakeMask,
// or every waiter if wakeMask is zero.
func notify(addr *uintptr, count uint, wakeMask uintptr) int {
	r := sys.NotifyAddress(context.Background(), addr, count, wakeMask)
	if r < 0 {
		unexpectedResult("NotifyAddress", r)
	}
	return int(r)
}

// notifyAll is the count passed by NotifyAll.
const notifyAll = ^uint(0)
