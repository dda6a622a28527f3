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

package sync

import (
	"lilium.dev/lilium/pkg/atomicwait"
)

// OnceLock state bits.
const (
	// onceInit is set, permanently, once the value is stored.
	onceInit = 1 << iota

	// onceLock is held by the goroutine running the initializer.
	onceLock

	// onceEvent is set by a goroutine that blocked waiting for onceLock.
	onceEvent
)

// OnceLock holds a value that is initialized at most once.
//
// The zero value is empty. An initializer that panics, or that gives up, leaves
// the OnceLock empty for the next caller to try again.
type OnceLock[T any] struct {
	state atomicwait.Uintptr
	value T
}

// NewOnceLockInit returns a OnceLock already holding v.
func NewOnceLockInit[T any](v T) *OnceLock[T] {
	return &OnceLock[T]{state: atomicwait.FromUintptr(onceInit), value: v}
}

// Get returns the value, or false if o has not been initialized. It never
// blocks.
func (o *OnceLock[T]) Get() (T, bool) {
	if o.state.Load()&onceInit == 0 {
		var zero T
		return zero, false
	}
	return o.value, true
}

// GetOrInit returns the value, running f to produce it if o is empty. At most
// one f runs at a time; concurrent callers wait for it.
func (o *OnceLock[T]) GetOrInit(f func() T) T {
	v, _ := o.GetOrTryInit(func() (T, error) { return f(), nil })
	return v
}

// GetOrTryInit is GetOrInit with an initializer that can fail. If f returns an
// error, o stays empty and the error is returned.
func (o *OnceLock[T]) GetOrTryInit(f func() (T, error)) (T, error) {
	var err error
	cf := TryInit(o, func() ControlFlow[error, T] {
		v, e := f()
		if e != nil {
			err = e
			return Break[T](e)
		}
		return Continue[error](v)
	})
	if cf.IsBreak() {
		var zero T
		return zero, err
	}
	return cf.Value(), nil
}

// ControlFlow is the outcome of an initializer passed to TryInit: either a
// value to store (Continue) or a reason to give up (Break).
type ControlFlow[B, C any] struct {
	brk   B
	value C
	isBrk bool
}

// Continue returns a ControlFlow carrying v.
func Continue[B, C any](v C) ControlFlow[B, C] {
	return ControlFlow[B, C]{value: v}
}

// Break returns a ControlFlow that stops with b.
func Break[C, B any](b B) ControlFlow[B, C] {
	return ControlFlow[B, C]{brk: b, isBrk: true}
}

// IsBreak reports whether c is a Break.
func (c ControlFlow[B, C]) IsBreak() bool {
	return c.isBrk
}

// BreakValue returns the value passed to Break.
func (c ControlFlow[B, C]) BreakValue() B {
	return c.brk
}

// Value returns the value passed to Continue.
func (c ControlFlow[B, C]) Value() C {
	return c.value
}

// TryInit returns Continue with the value of o, running f to produce it if o
// is empty. If f breaks, o stays empty and the Break is returned.
func TryInit[T, B any](o *OnceLock[T], f func() ControlFlow[B, T]) ControlFlow[B, T] {
	if o.state.Load()&onceInit != 0 {
		return Continue[B](o.value)
	}
	if !o.lock() {
		return Continue[B](o.value)
	}

	done := false
	defer func() {
		if !done {
			o.release(0)
		}
	}()
	cf := f()
	if cf.IsBreak() {
		return cf
	}
	o.value = cf.value
	done = true
	o.release(onceInit)
	return Continue[B](o.value)
}

// lock acquires onceLock. It returns false, without the lock, if o was
// initialized in the meantime.
func (o *OnceLock[T]) lock() bool {
	var attempts uint
	v := o.state.Or(onceLock)
	for spins := 0; v&onceLock != 0; {
		if spins < SpinLimit {
			attempts = spinDelay(attempts)
			spins++
			v = o.state.Or(onceLock)
			continue
		}
		// Ask the holder to notify before blocking. If it released in the
		// meantime there is nobody to notify us.
		if old := o.state.Or(onceEvent); old&onceLock != 0 {
			if o.state.Wait(old|onceEvent) == nil {
				// Spin a little before blocking again.
				spins = SpinLimit / 4
			}
		}
		v = o.state.Or(onceLock)
	}

	if v&onceInit != 0 {
		// Initialized while we were acquiring the lock.
		o.release(onceInit)
		return false
	}
	return true
}

// release stores next, dropping onceLock, and wakes the blocked goroutines.
func (o *OnceLock[T]) release(next uintptr) {
	if o.state.Swap(next)&onceEvent != 0 {
		o.state.NotifyAll()
	}
}
