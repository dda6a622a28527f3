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
	"unsafe"
)

// Pointer is an atomic *T that can be waited on. Masks apply to the pointer's
// address bits.
//
// The zero value is a cell holding nil.
type Pointer[T any] struct {
	_     noCopy
	_     [0]*T
	value unsafe.Pointer
}

// NewPointer returns a Pointer holding p.
func NewPointer[T any](p *T) *Pointer[T] {
	return &Pointer[T]{value: unsafe.Pointer(p)}
}

// Load is analogous to atomic.LoadPointer.
func (p *Pointer[T]) Load() *T {
	return (*T)(atomic.LoadPointer(&p.value))
}

// Store is analogous to atomic.StorePointer.
func (p *Pointer[T]) Store(v *T) {
	atomic.StorePointer(&p.value, unsafe.Pointer(v))
}

// Swap is analogous to atomic.SwapPointer.
func (p *Pointer[T]) Swap(v *T) *T {
	return (*T)(atomic.SwapPointer(&p.value, unsafe.Pointer(v)))
}

// CompareAndSwap is analogous to atomic.CompareAndSwapPointer.
func (p *Pointer[T]) CompareAndSwap(oldVal, newVal *T) bool {
	return atomic.CompareAndSwapPointer(&p.value, unsafe.Pointer(oldVal), unsafe.Pointer(newVal))
}

// word returns the cell as the machine word the kernel compares.
func (p *Pointer[T]) word() *uintptr {
	return (*uintptr)(unsafe.Pointer(&p.value))
}

// result converts a wait outcome. The kernel reports the observed word as an
// integer, which cannot be turned back into a pointer the garbage collector
// knows about, so the cell is reloaded instead.
func (p *Pointer[T]) result(_ uintptr, kind WaitKind) error {
	if kind == 0 {
		return nil
	}
	e := &WaitError[*T]{Kind: kind}
	if kind == UnexpectedValue {
		e.Observed = p.Load()
	}
	return e
}

// Wait blocks while the cell holds expected, until it is notified. It returns
// a *WaitError[*T] if the cell holds another pointer or the wait is
// interrupted or times out.
func (p *Pointer[T]) Wait(expected *T) error {
	return p.WaitContext(context.Background(), expected)
}

// WaitContext is Wait with a context carrying the calling thread.
func (p *Pointer[T]) WaitContext(ctx context.Context, expected *T) error {
	return p.result(await(ctx, p.word(), uintptr(unsafe.Pointer(expected)), 0))
}

// WaitMask is Wait comparing only the address bits set in mask. It panics if
// mask is zero.
func (p *Pointer[T]) WaitMask(expected *T, mask uintptr) error {
	return p.WaitMaskContext(context.Background(), expected, mask)
}

// WaitMaskContext is WaitMask with a context.
func (p *Pointer[T]) WaitMaskContext(ctx context.Context, expected *T, mask uintptr) error {
	return p.result(await(ctx, p.word(), uintptr(unsafe.Pointer(expected)), ignoreMask(mask)))
}

// WaitFor is Wait bounded by d. See Uintptr.WaitFor.
func (p *Pointer[T]) WaitFor(expected *T, d time.Duration) error {
	return p.WaitForContext(context.Background(), expected, d)
}

// WaitForContext is WaitFor with a context.
func (p *Pointer[T]) WaitForContext(ctx context.Context, expected *T, d time.Duration) error {
	return p.result(awaitFor(ctx, p.word(), uintptr(unsafe.Pointer(expected)), 0, d))
}

// WaitForMask is WaitMask bounded by d.
func (p *Pointer[T]) WaitForMask(expected *T, mask uintptr, d time.Duration) error {
	return p.WaitForMaskContext(context.Background(), expected, mask, d)
}

// WaitForMaskContext is WaitForMask with a context.
func (p *Pointer[T]) WaitForMaskContext(ctx context.Context, expected *T, mask uintptr, d time.Duration) error {
	return p.result(awaitFor(ctx, p.word(), uintptr(unsafe.Pointer(expected)), ignoreMask(mask), d))
}

// WaitUntil is Wait bounded by deadline.
func (p *Pointer[T]) WaitUntil(expected *T, deadline time.Time) error {
	return p.WaitFor(expected, time.Until(deadline))
}

// WaitUntilMask is WaitMask bounded by deadline.
func (p *Pointer[T]) WaitUntilMask(expected *T, mask uintptr, deadline time.Time) error {
	return p.WaitForMask(expected, mask, time.Until(deadline))
}

// Notify wakes up to count waiters and returns the number of threads that
// were blocked on the cell at the time of the call.
func (p *Pointer[T]) Notify(count uint) int {
	return notify(p.word(), count, 0)
}

// NotifyOne wakes one waiter.
func (p *Pointer[T]) NotifyOne() int {
	return p.Notify(1)
}

// NotifyAll wakes every waiter.
func (p *Pointer[T]) NotifyAll() int {
	return p.Notify(notifyAll)
}

// NotifyMask wakes up to count waiters whose mask shares a bit with mask.
func (p *Pointer[T]) NotifyMask(mask uintptr, count uint) int {
	return notify(p.word(), count, mask)
}

// NotifyMaskOne is NotifyMask with a count of one.
func (p *Pointer[T]) NotifyMaskOne(mask uintptr) int {
	return p.NotifyMask(mask, 1)
}

// NotifyMaskAll is NotifyMask without a count.
func (p *Pointer[T]) NotifyMaskAll(mask uintptr) int {
	return p.NotifyMask(mask, notifyAll)
}
