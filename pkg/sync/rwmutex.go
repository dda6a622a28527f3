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
	"errors"
	"time"

	"lilium.dev/lilium/pkg/atomicwait"
)

// rwExclusive is set while an RWMutex is write locked. The remaining bits
// count readers. Both are never nonzero at once.
const rwExclusive = uintptr(1) << (wordBits - 1)

// RWMutex is a reader/writer lock held in a single word. Readers and writers
// spin briefly and then block in the kernel.
//
// The zero value is an unlocked RWMutex. An RWMutex must not be copied after
// first use.
type RWMutex struct {
	state atomicwait.Uintptr
}

// RLock locks rw for reading.
func (rw *RWMutex) RLock() {
	rw.rlock(time.Time{}, false)
}

// TryRLock locks rw for reading if no writer holds it, without spinning or
// blocking.
func (rw *RWMutex) TryRLock() bool {
	for {
		v := rw.state.Load()
		if v&rwExclusive != 0 {
			return false
		}
		if rw.state.CompareAndSwap(v, v+1) {
			return true
		}
	}
}

// TryRLockFor is TryRLockUntil with a deadline d from now.
func (rw *RWMutex) TryRLockFor(d time.Duration) bool {
	return rw.TryRLockUntil(time.Now().Add(d))
}

// TryRLockUntil locks rw for reading, blocking no later than deadline.
func (rw *RWMutex) TryRLockUntil(deadline time.Time) bool {
	return rw.rlock(deadline, true)
}

func (rw *RWMutex) rlock(deadline time.Time, timed bool) bool {
	var attempts uint
	v := rw.state.Load()
	for spins := 0; ; {
		if v&rwExclusive == 0 {
			if rw.state.CompareAndSwap(v, v+1) {
				return true
			}
			v = rw.state.Load()
			continue
		}
		if spins < SpinLimit {
			attempts = spinDelay(attempts)
			spins++
		} else if !rw.block(v, deadline, timed) {
			return false
		}
		v = rw.state.Load()
	}
}

// RUnlock undoes a single RLock call. It panics if rw is not read locked.
func (rw *RWMutex) RUnlock() {
	v := rw.state.Add(^uintptr(0)) + 1
	if v == 0 || v&rwExclusive != 0 {
		panic("sync: RUnlock of unlocked RWMutex")
	}
	if v == 1 {
		// The last reader left; a writer may be blocked.
		rw.state.NotifyOne()
	}
}

// Lock locks rw for writing.
func (rw *RWMutex) Lock() {
	rw.lock(time.Time{}, false)
}

// TryLock locks rw for writing if it is unlocked, without spinning or
// blocking.
func (rw *RWMutex) TryLock() bool {
	return rw.state.CompareAndSwap(0, rwExclusive)
}

// TryLockFor is TryLockUntil with a deadline d from now.
func (rw *RWMutex) TryLockFor(d time.Duration) bool {
	return rw.TryLockUntil(time.Now().Add(d))
}

// TryLockUntil locks rw for writing, blocking no later than deadline. On
// failure rw is untouched.
func (rw *RWMutex) TryLockUntil(deadline time.Time) bool {
	return rw.lock(deadline, true)
}

func (rw *RWMutex) lock(deadline time.Time, timed bool) bool {
	var attempts uint
	for spins := 0; !rw.state.CompareAndSwap(0, rwExclusive); {
		v := rw.state.Load()
		if v == 0 {
			continue
		}
		if spins < SpinLimit {
			attempts = spinDelay(attempts)
			spins++
		} else if !rw.block(v, deadline, timed) {
			return false
		}
	}
	return true
}

// block waits for the lock word to change from v. It returns false if the
// deadline passed.
func (rw *RWMutex) block(v uintptr, deadline time.Time, timed bool) bool {
	var err error
	if timed {
		err = rw.state.WaitUntil(v, deadline)
	} else {
		err = rw.state.Wait(v)
	}
	return !errors.Is(err, atomicwait.ErrTimeout)
}

// Unlock unlocks rw for writing and wakes the threads blocked on it. It panics
// if rw is not write locked.
func (rw *RWMutex) Unlock() {
	if rw.state.And(^rwExclusive)&rwExclusive == 0 {
		panic("sync: Unlock of unlocked RWMutex")
	}
	// Every blocked reader may proceed, so wake them all rather than one.
	rw.state.NotifyAll()
}

// IsLocked reports whether rw is held for reading or writing.
func (rw *RWMutex) IsLocked() bool {
	return rw.state.Load() != 0
}

// IsLockedExclusive reports whether rw is held for writing.
func (rw *RWMutex) IsLockedExclusive() bool {
	return rw.state.Load()&rwExclusive != 0
}

// RLocker returns a Locker that calls RLock and RUnlock.
func (rw *RWMutex) RLocker() Locker {
	return (*rlocker)(rw)
}

type rlocker RWMutex

func (r *rlocker) Lock()   { (*RWMutex)(r).RLock() }
func (r *rlocker) Unlock() { (*RWMutex)(r).RUnlock() }
