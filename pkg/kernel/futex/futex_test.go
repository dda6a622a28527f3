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

package futex

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"unsafe"

	"lilium.dev/lilium/pkg/errors/liliumerr"
)

const all = ^uintptr(0)

func newPreparedTestWaiter(t *testing.T, m *Manager, addr *uintptr, val uintptr, ignoreMask uintptr) *Waiter {
	w := NewWaiter()
	if _, err := m.WaitPrepare(w, addr, val, ignoreMask); err != nil {
		t.Fatalf("WaitPrepare failed: %v", err)
	}
	return w
}

func TestFutexWake(t *testing.T) {
	m := NewManager()
	d := make([]uintptr, 1)

	// Start waiting for wakeup.
	w := newPreparedTestWaiter(t, m, &d[0], 0, 0)
	defer m.WaitComplete(w)

	// Perform a wakeup.
	if n, err := m.Wake(&d[0], 0, 1); err != nil || n != 1 {
		t.Errorf("Wake: got (%d, %v), wanted (1, nil)", n, err)
	}

	// Expect the waiter to have been woken.
	if !w.woken() {
		t.Error("waiter not woken")
	}
}

func TestFutexWakeMask(t *testing.T) {
	m := NewManager()
	d := make([]uintptr, 1)

	// Wait on the low half only.
	w := newPreparedTestWaiter(t, m, &d[0], 0, ^uintptr(0x0000ffff))
	defer m.WaitComplete(w)

	// Perform a wakeup using a disjoint mask. The waiter is still counted
	// as blocked.
	if n, err := m.Wake(&d[0], 0xffff0000, 1); err != nil || n != 1 {
		t.Errorf("Wake with non-matching mask: got (%d, %v), wanted (1, nil)", n, err)
	}

	// Expect the waiter to still be waiting.
	if w.woken() {
		t.Error("waiter woken unexpectedly")
	}

	// Perform a wakeup using an overlapping mask.
	if n, err := m.Wake(&d[0], 0x00000001, 1); err != nil || n != 1 {
		t.Errorf("Wake with matching mask: got (%d, %v), wanted (1, nil)", n, err)
	}

	// Expect that the waiter was woken.
	if !w.woken() {
		t.Error("waiter not woken")
	}
}

func TestFutexWaitCheck(t *testing.T) {
	m := NewManager()
	d := []uintptr{0x1234}

	w := NewWaiter()
	got, err := m.WaitPrepare(w, &d[0], 0x1200, 0)
	if err != liliumerr.INVALID_STATE {
		t.Fatalf("WaitPrepare with stale value: got error %v, wanted INVALID_STATE", err)
	}
	if got != 0x1234 {
		t.Errorf("WaitPrepare observed %#x, wanted %#x", got, 0x1234)
	}

	// Ignoring the differing bits makes the check pass.
	if _, err := m.WaitPrepare(w, &d[0], 0x1200, 0xff); err != nil {
		t.Fatalf("WaitPrepare with ignored bits: %v", err)
	}
	if n := m.Waiters(&d[0]); n != 1 {
		t.Errorf("Waiters = %d, wanted 1", n)
	}
	if woken := m.WaitComplete(w); woken {
		t.Errorf("WaitComplete reported a wakeup that never happened")
	}
	if n := m.Waiters(&d[0]); n != 0 {
		t.Errorf("Waiters after WaitComplete = %d, wanted 0", n)
	}
}

func TestFutexMisaligned(t *testing.T) {
	m := NewManager()
	d := make([]uintptr, 2)
	bad := (*uintptr)(unsafe.Add(unsafe.Pointer(&d[0]), 1))

	if _, err := m.Wake(bad, 0, 1); err != liliumerr.INVALID_MEMORY {
		t.Errorf("Wake on misaligned address: got %v, wanted INVALID_MEMORY", err)
	}
	if _, err := m.WaitPrepare(NewWaiter(), nil, 0, 0); err != liliumerr.INVALID_MEMORY {
		t.Errorf("WaitPrepare on nil address: got %v, wanted INVALID_MEMORY", err)
	}
}

func TestFutexWakeTwo(t *testing.T) {
	m := NewManager()
	d := make([]uintptr, 1)

	// Start three waiters waiting for wakeup.
	var ws [3]*Waiter
	for i := range ws {
		ws[i] = newPreparedTestWaiter(t, m, &d[0], 0, 0)
		defer m.WaitComplete(ws[i])
	}

	// Perform two wakeups. All three waiters were blocked at the time.
	if n, err := m.Wake(&d[0], 0, 2); err != nil || n != len(ws) {
		t.Errorf("Wake: got (%d, %v), wanted (%d, nil)", n, err, len(ws))
	}
	if n := m.Waiters(&d[0]); n != 1 {
		t.Errorf("Waiters after Wake(2) = %d, wanted 1", n)
	}

	// The remaining waiter is reported by a zero-count wake too.
	if n, err := m.Wake(&d[0], 0, 0); err != nil || n != 1 {
		t.Errorf("Wake(0): got (%d, %v), wanted (1, nil)", n, err)
	}

	// Expect that exactly two waiters were woken, in queue order.
	if !ws[0].woken() || !ws[1].woken() || ws[2].woken() {
		t.Errorf("got woken = [%t %t %t], wanted [true true false]", ws[0].woken(), ws[1].woken(), ws[2].woken())
	}
}

func TestFutexWakeZero(t *testing.T) {
	m := NewManager()
	d := make([]uintptr, 1)

	w := newPreparedTestWaiter(t, m, &d[0], 0, 0)
	defer m.WaitComplete(w)

	if n, err := m.Wake(&d[0], 0, 0); err != nil || n != 1 {
		t.Errorf("Wake(0): got (%d, %v), wanted (1, nil)", n, err)
	}
	if w.woken() {
		t.Error("waiter woken by a zero-count wake")
	}
}

func TestFutexWakeUnrelated(t *testing.T) {
	m := NewManager()
	d := make([]uintptr, 2)

	// Start two waiters waiting for wakeup on different addresses.
	w1 := newPreparedTestWaiter(t, m, &d[0], 0, 0)
	defer m.WaitComplete(w1)
	w2 := newPreparedTestWaiter(t, m, &d[1], 0, 0)
	defer m.WaitComplete(w2)

	// Perform two wakeups on the second address.
	if n, err := m.Wake(&d[1], 0, 2); err != nil || n != 1 {
		t.Errorf("Wake: got (%d, %v), wanted (1, nil)", n, err)
	}

	// Expect that only the second waiter was woken.
	if w1.woken() {
		t.Error("w1 woken unexpectedly")
	}
	if !w2.woken() {
		t.Error("w2 not woken")
	}
}

func TestFutexNoPendingWake(t *testing.T) {
	m := NewManager()
	d := make([]uintptr, 1)

	// A wake with nobody waiting is lost.
	if n, err := m.Wake(&d[0], 0, 1); err != nil || n != 0 {
		t.Fatalf("Wake: got (%d, %v), wanted (0, nil)", n, err)
	}
	w := newPreparedTestWaiter(t, m, &d[0], 0, 0)
	defer m.WaitComplete(w)
	if w.woken() {
		t.Error("waiter consumed an earlier wake")
	}
}

func TestBucketIndexForAddrSpread(t *testing.T) {
	d := make([]uintptr, 4)
	seen := make(map[uintptr]bool)
	for i := range d {
		seen[bucketIndexForAddr(uintptr(unsafe.Pointer(&d[i])))] = true
	}
	if len(seen) != len(d) {
		t.Errorf("adjacent words share buckets: %d distinct of %d", len(seen), len(d))
	}
}

const (
	testMutexLocked   uintptr = 1
	testMutexUnlocked uintptr = 0
)

// testMutex ties together a word and a futex manager in order to implement
// the sync.Locker interface.
type testMutex struct {
	word *uintptr
	m    *Manager
}

// Lock acquires the testMutex.
// This may wait for it to be available via the futex manager.
func (t *testMutex) Lock() {
	for {
		// Attempt to grab the lock.
		if atomic.CompareAndSwapUintptr(t.word, testMutexUnlocked, testMutexLocked) {
			// Lock held.
			return
		}

		// Wait for it to be "not locked".
		w := NewWaiter()
		_, err := t.m.WaitPrepare(w, t.word, testMutexLocked, 0)
		if err == liliumerr.INVALID_STATE {
			continue
		}
		if err != nil {
			// Should never happen.
			panic("WaitPrepare returned unexpected error: " + err.Error())
		}
		<-w.C
		t.m.WaitComplete(w)
	}
}

// Unlock releases the testMutex.
// This will notify any waiters via the futex manager.
func (t *testMutex) Unlock() {
	atomic.StoreUintptr(t.word, testMutexUnlocked)
	t.m.Wake(t.word, 0, math.MaxInt32)
}

func hammerMutex(l sync.Locker, loops int, cdone chan bool) {
	for i := 0; i < loops; i++ {
		l.Lock()
		runtime.Gosched()
		l.Unlock()
	}
	cdone <- true
}

func TestMutexStress(t *testing.T) {
	var word uintptr
	tm := &testMutex{word: &word, m: NewManager()}
	c := make(chan bool)

	for i := 0; i < 10; i++ {
		go hammerMutex(tm, 1000, c)
	}

	for i := 0; i < 10; i++ {
		<-c
	}
}

func TestFutexEnqueue(t *testing.T) {
	m := NewManager()
	d := []uintptr{5}

	w := NewWaiter()
	if err := m.Enqueue(w, &d[0], 0); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if n, err := m.Wake(&d[0], 0, 1); err != nil || n != 1 {
		t.Errorf("Wake: got (%d, %v), wanted (1, nil)", n, err)
	}
	if !m.WaitComplete(w) {
		t.Errorf("WaitComplete did not report the wakeup")
	}
}
