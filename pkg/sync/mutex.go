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

// Mutex states. A Mutex is unlocked when its word is zero.
const (
	// mutexLocked is held with no thread known to be blocked.
	mutexLocked = uintptr(1) << (wordBits - 1)

	// mutexContended is held with threads possibly blocked in the kernel.
	// Unlock must notify.
	mutexContended = mutexLocked | 1
)

// wordBits is the width of a lock word.
const wordBits = 32 << (^uintptr(0) >> 63)

// Mutex is a mutual exclusion lock that spins briefly and then blocks in the
// kernel.
//
// The zero value is an unlocked mutex. A Mutex must not be copied after first
// use. There is no fairness guarantee.
type Mutex struct {
	state atomicwait.Uintptr
}

// Lock locks m, blocking until it is available.
func (m *Mutex) Lock() {
	if m.state.CompareAndSwap(0, mutexLocked) {
		return
	}
	m.lockSlow(time.Time{}, false)
}

// TryLock locks m if it is unlocked, without spinning or blocking.
func (m *Mutex) TryLock() bool {
	return m.state.CompareAndSwap(0, mutexLocked)
}

// TryLockFor is TryLockUntil with a deadline d from now.
func (m *Mutex) TryLockFor(d time.Duration) bool {
	return m.TryLockUntil(time.Now().Add(d))
}

// TryLockUntil locks m, blocking no later than deadline. It reports whether
// the lock was acquired. On failure m stays held by its holder but may be
// marked contended, so the holder's Unlock will issue a notify.
func (m *Mutex) TryLockUntil(deadline time.Time) bool {
	if m.state.CompareAndSwap(0, mutexLocked) {
		return true
	}
	return m.lockSlow(deadline, true)
}

func (m *Mutex) lockSlow(deadline time.Time, timed bool) bool {
	var attempts uint
	for i := 0; i < SpinLimit; i++ {
		if m.state.Load() == 0 && m.state.CompareAndSwap(0, mutexLocked) {
			return true
		}
		attempts = spinDelay(attempts)
	}

	// Mark the lock contended before blocking so that the holder notifies.
	// Once marked, it stays marked until the next Unlock even if this
	// thread acquires the lock without anyone else waiting.
	for m.state.Swap(mutexContended) != 0 {
		var err error
		if timed {
			err = m.state.WaitUntil(mutexContended, deadline)
		} else {
			err = m.state.Wait(mutexContended)
		}
		if errors.Is(err, atomicwait.ErrTimeout) {
			return false
		}
	}
	return true
}

// Unlock unlocks m and wakes one blocked thread, if any. It panics if m is
// not locked.
func (m *Mutex) Unlock() {
	switch m.state.Swap(0) {
	case mutexLocked:
	case mutexContended:
		m.state.NotifyOne()
	default:
		panic("sync: unlock of unlocked Mutex")
	}
}

// IsLocked reports whether m is held by anyone.
func (m *Mutex) IsLocked() bool {
	return m.state.Load() != 0
}
