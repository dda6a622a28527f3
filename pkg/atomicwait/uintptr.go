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

package atomicwait

import (
	"context"
	"sync/atomic"
	"time"
)

// noCopy may be embedded in cells that must not be copied after first use.
// See sync.Locker for the go vet check.
type noCopy struct{}

// Lock is a no-op used by go vet's copylocks checker.
func (*noCopy) Lock() {}

// Unlock is a no-op used by go vet's copylocks checker.
func (*noCopy) Unlock() {}

// Uintptr is an atomic uintptr that can be waited on.
//
// The zero value is a cell holding 0.
//
// Don't add fields to this struct. It is important that it remain the same
// size as a uintptr.
type Uintptr struct {
	_     noCopy
	value uintptr
}

// FromUintptr returns a Uintptr initialized to v.
func FromUintptr(v uintptr) Uintptr {
	return Uintptr{value: v}
}

// Load is analogous to atomic.LoadUintptr.
func (u *Uintptr) Load() uintptr {
	return atomic.LoadUintptr(&u.value)
}

// RacyLoad reads the cell without synchronization.
func (u *Uintptr) RacyLoad() uintptr {
	return u.value
}

// Store is analogous to atomic.StoreUintptr.
func (u *Uintptr) Store(v uintptr) {
	atomic.StoreUintptr(&u.value, v)
}

// Swap is analogous to atomic.SwapUintptr.
func (u *Uintptr) Swap(v uintptr) uintptr {
	return atomic.SwapUintptr(&u.value, v)
}

// CompareAndSwap is analogous to atomic.CompareAndSwapUintptr.
func (u *Uintptr) CompareAndSwap(oldVal, newVal uintptr) bool {
	return atomic.CompareAndSwapUintptr(&u.value, oldVal, newVal)
}

// Add is analogous to atomic.AddUintptr.
func (u *Uintptr) Add(delta uintptr) uintptr {
	return atomic.AddUintptr(&u.value, delta)
}

// And is analogous to atomic.AndUintptr. It returns the old value.
func (u *Uintptr) And(mask uintptr) uintptr {
	return atomic.AndUintptr(&u.value, mask)
}

// Or is analogous to atomic.OrUintptr. It returns the old value.
func (u *Uintptr) Or(mask uintptr) uintptr {
	return atomic.OrUintptr(&u.value, mask)
}

func (u *Uintptr) ptr() *uintptr {
	return &u.value
}

// Addr returns the address of the cell's word, as used by address blocking
// events.
func (u *Uintptr) Addr() *uintptr {
	return u.ptr()
}

func (u *Uintptr) result(observed uintptr, kind WaitKind) error {
	if kind == 0 {
		return nil
	}
	return &WaitError[uintptr]{Kind: kind, Observed: observed}
}

// Wait blocks while the cell holds expected, until it is notified. It returns
// a *WaitError[uintptr] if the cell holds another value or the wait is
// interrupted or times out.
func (u *Uintptr) Wait(expected uintptr) error {
	return u.WaitContext(context.Background(), expected)
}

// WaitContext is Wait with a context carrying the calling thread.
func (u *Uintptr) WaitContext(ctx context.Context, expected uintptr) error {
	return u.result(await(ctx, u.ptr(), expected, 0))
}

// WaitMask is Wait comparing only the bits set in mask. The waiter is woken
// only by notifications whose mask shares a bit with mask. WaitMask panics if
// mask is zero.
func (u *Uintptr) WaitMask(expected, mask uintptr) error {
	return u.WaitMaskContext(context.Background(), expected, mask)
}

// WaitMaskContext is WaitMask with a context.
func (u *Uintptr) WaitMaskContext(ctx context.Context, expected, mask uintptr) error {
	return u.result(await(ctx, u.ptr(), expected, ignoreMask(mask)))
}

// WaitFor is Wait bounded by d.
//
// The bound is the blocking timeout of the calling thread, which is consumed
// by the next blocking call. Nothing may block between it being armed and the
// wait.
func (u *Uintptr) WaitFor(expected uintptr, d time.Duration) error {
	return u.WaitForContext(context.Background(), expected, d)
}

// WaitForContext is WaitFor with a context.
func (u *Uintptr) WaitForContext(ctx context.Context, expected uintptr, d time.Duration) error {
	return u.result(awaitFor(ctx, u.ptr(), expected, 0, d))
}

// WaitForMask is WaitMask bounded by d.
func (u *Uintptr) WaitForMask(expected, mask uintptr, d time.Duration) error {
	return u.WaitForMaskContext(context.Background(), expected, mask, d)
}

// WaitForMaskContext is WaitForMask with a context.
func (u *Uintptr) WaitForMaskContext(ctx context.Context, expected, mask uintptr, d time.Duration) error {
	return u.result(awaitFor(ctx, u.ptr(), expected, ignoreMask(mask), d))
}

// WaitUntil is Wait bounded by deadline.
func (u *Uintptr) WaitUntil(expected uintptr, deadline time.Time) error {
	return u.WaitFor(expected, time.Until(deadline))
}

// WaitUntilMask is WaitMask bounded by deadline.
func (u *Uintptr) WaitUntilMask(expected, mask uintptr, deadline time.Time) error {
	return u.WaitForMask(expected, mask, time.Until(deadline))
}

// Notify wakes up to count waiters and returns the number of threads that
// were blocked on the cell at the time of the call.
func (u *Uintptr) Notify(count uint) int {
	return notify(u.ptr(), count, 0)
}

// NotifyOne wakes one waiter.
func (u *Uintptr) NotifyOne() int {
	return u.Notify(1)
}

// NotifyAll wakes every waiter.
func (u *Uintptr) NotifyAll() int {
	return u.Notify(notifyAll)
}

// NotifyMask wakes up to count waiters whose mask shares a bit with mask.
func (u *Uintptr) NotifyMask(mask uintptr, count uint) int {
	return notify(u.ptr(), count, mask)
}

// NotifyMaskOne is NotifyMask with a count of one.
func (u *Uintptr) NotifyMaskOne(mask uintptr) int {
	return u.NotifyMask(mask, 1)
}

// NotifyMaskAll is NotifyMask without a count.
func (u *Uintptr) NotifyMaskAll(mask uintptr) int {
	return u.NotifyMask(mask, notifyAll)
}
