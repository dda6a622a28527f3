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
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

func TestBasicLock(t *testing.T) {
	var m Mutex

	m.Lock()

	// Try blocking lock the mutex from a different goroutine. This must
	// not block because the mutex is held.
	ch := make(chan struct{}, 1)
	go func() {
		m.Lock()
		ch <- struct{}{}
		m.Unlock()
		ch <- struct{}{}
	}()

	select {
	case <-ch:
		t.Fatalf("Lock succeeded on locked mutex")
	case <-time.After(100 * time.Millisecond):
	}

	// Unlock the mutex and make sure that the goroutine waiting on Lock()
	// unblocks and succeeds.
	m.Unlock()

	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("Lock failed to acquire unlocked mutex")
	}
	<-ch

	// Make sure we can lock and unlock again.
	m.Lock()
	m.Unlock()
	if m.IsLocked() {
		t.Errorf("IsLocked after Unlock")
	}
}

func TestTryLock(t *testing.T) {
	var m Mutex

	if !m.TryLock() {
		t.Fatalf("TryLock failed on unlocked mutex")
	}
	if m.TryLock() {
		t.Fatalf("TryLock succeeded on locked mutex")
	}
	if !m.IsLocked() {
		t.Errorf("IsLocked = false on locked mutex")
	}

	ch := make(chan struct{}, 1)
	go func() {
		m.Lock()
		ch <- struct{}{}
		m.Unlock()
	}()

	select {
	case <-ch:
		t.Fatalf("Lock succeeded on locked mutex")
	case <-time.After(100 * time.Millisecond):
	}

	m.Unlock()

	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("Lock failed to acquire unlocked mutex")
	}
}

func TestTryLockFor(t *testing.T) {
	var m Mutex
	m.Lock()

	start := time.Now()
	if m.TryLockFor(20 * time.Millisecond) {
		t.Fatalf("TryLockFor succeeded on locked mutex")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("TryLockFor gave up after %v, want at least 20ms", elapsed)
	}
	if !m.IsLocked() {
		t.Errorf("failed TryLockFor released the mutex")
	}
	if got := m.state.Load(); got != mutexContended {
		t.Errorf("state after failed TryLockFor = %d, want contended (%d)", got, mutexContended)
	}
	m.Unlock()
	if m.IsLocked() {
		t.Fatalf("Unlock after a failed TryLockFor left the mutex locked")
	}
	if !m.TryLock() {
		t.Fatalf("TryLock failed on a mutex released after contention")
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		m.Unlock()
	}()
	if !m.TryLockUntil(time.Now().Add(5 * time.Second)) {
		t.Fatalf("TryLockUntil failed although the mutex was released")
	}
	m.Unlock()
}

func TestUnlockOfUnlockedMutexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Unlock of unlocked mutex did not panic")
		}
	}()
	var m Mutex
	m.Unlock()
}

func TestMutualExclusion(t *testing.T) {
	var m Mutex

	// Test mutual exclusion by running "gr" goroutines concurrently, and
	// have each one increment a counter "iters" times within the critical
	// section established by the mutex. The critical section also checks
	// that nobody else is inside it.
	//
	// If at the end the counter is not gr * iters, then we know that
	// goroutines ran concurrently within the critical section.
	const gr = 100
	const iters = 2000
	v := 0
	var inside atomic.Int32
	var g errgroup.Group
	for i := 0; i < gr; i++ {
		g.Go(func() error {
			for j := 0; j < iters; j++ {
				m.Lock()
				if n := inside.Add(1); n != 1 {
					m.Unlock()
					return fmt.Errorf("%d goroutines in the critical section", n)
				}
				v++
				inside.Add(-1)
				m.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if v != gr*iters {
		t.Fatalf("Bad count: got %v, want %v", v, gr*iters)
	}
}

func TestMutualExclusionWithTryLock(t *testing.T) {
	var m Mutex

	// Similar to the previous, with the addition of some goroutines that
	// only increment the count if TryLock succeeds.
	const gr = 100
	const iters = 2000
	total := int64(gr * iters)
	var tryTotal atomic.Int64
	v := int64(0)
	var g errgroup.Group
	for i := 0; i < gr; i++ {
		g.Go(func() error {
			for j := 0; j < iters; j++ {
				m.Lock()
				v++
				m.Unlock()
			}
			return nil
		})
		g.Go(func() error {
			local := int64(0)
			for j := 0; j < iters; j++ {
				if m.TryLock() {
					v++
					m.Unlock()
					local++
				}
			}
			tryTotal.Add(local)
			return nil
		})
	}
	g.Wait()

	t.Logf("tryTotal = %d", tryTotal.Load())
	total += tryTotal.Load()

	if v != total {
		t.Fatalf("Bad count: got %v, want %v", v, total)
	}
}

func TestSpinDelay(t *testing.T) {
	var attempts uint
	for i := 0; i < 10; i++ {
		attempts = spinDelay(attempts)
	}
	if attempts != 7 {
		t.Errorf("attempts = %d, want 7", attempts)
	}
}

// BenchmarkMutex measures Lock/Unlock with a variable number of goroutines,
// up to a maximum depending on GOMAXPROCS. Care is taken to ensure that all
// goroutines participating in the benchmark have been created before the
// benchmark begins.
func BenchmarkMutex(b *testing.B) {
	for n, max := 1, 4*runtime.GOMAXPROCS(0); n > 0 && n <= max; n *= 2 {
		b.Run(fmt.Sprintf("%d", n), func(b *testing.B) {
			var m Mutex
			benchmarkLocker(b, n, &m)
		})
	}
}

// BenchmarkRWMutexRead is BenchmarkMutex with read locks.
func BenchmarkRWMutexRead(b *testing.B) {
	for n, max := 1, 4*runtime.GOMAXPROCS(0); n > 0 && n <= max; n *= 2 {
		b.Run(fmt.Sprintf("%d", n), func(b *testing.B) {
			var rw RWMutex
			benchmarkLocker(b, n, rw.RLocker())
		})
	}
}

func benchmarkLocker(b *testing.B, n int, l Locker) {
	ready := make(chan struct{}, n)
	begin := make(chan struct{})
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			ready <- struct{}{}
			<-begin
			for j := 0; j < b.N; j++ {
				l.Lock()
				l.Unlock()
			}
			return nil
		})
	}
	for i := 0; i < n; i++ {
		<-ready
	}
	b.ResetTimer()
	close(begin)
	g.Wait()
}
