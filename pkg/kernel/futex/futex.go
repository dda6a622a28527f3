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

// Package futex provides the address wait queues behind the AwaitAddress and
// NotifyAddress system calls. It allows one to easily transform a wait on a
// memory word into a wait on a channel.
//
// Unlike Linux futexes, words are pointer sized and waits are masked: a
// waiter names the bits it ignores, both when the word is checked and when a
// notification is filtered. Notifications are never queued; a notify that
// finds no matching waiter is lost.
package futex

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"lilium.dev/lilium/pkg/errors/liliumerr"
)

const wordSize = unsafe.Sizeof(uintptr(0))

// Waiter is the struct which gets enqueued into buckets for wake up routines
// to scan and notify. Once a Waiter has been enqueued by WaitPrepare(),
// callers may listen on C for wake up events.
type Waiter struct {
	// Synchronization:
	//
	// - A Waiter that is not enqueued in a bucket is exclusively owned (no
	// synchronization applies).
	//
	// - A Waiter is enqueued in a bucket by calling WaitPrepare(). After this,
	// waiterEntry, bucket, and addr are protected by the bucket.mu ("bucket
	// lock") of the containing bucket, and interest is immutable. Note that
	// since bucket is mutated using atomic memory operations, bucket.Load()
	// may be called without holding the bucket lock, although it may change
	// racily. See WaitComplete().
	//
	// - A Waiter is only guaranteed to be no longer queued after calling
	// WaitComplete().

	// waiterEntry links Waiter into bucket.waiters.
	waiterEntry

	// bucket is the bucket this waiter is queued in. If bucket is nil, the
	// waiter is not waiting and is not in any bucket.
	bucket atomic.Pointer[bucket]

	// C is sent to when the Waiter is woken.
	C chan struct{}

	// addr is the word this waiter is waiting on.
	addr uintptr

	// interest is the complement of the waiter's ignore mask.
	interest uintptr
}

// NewWaiter returns a new unqueued Waiter.
func NewWaiter() *Waiter {
	return &Waiter{
		C: make(chan struct{}, 1),
	}
}

// woken returns true if w has been woken since the last call to WaitPrepare.
func (w *Waiter) woken() bool {
	return len(w.C) != 0
}

// wants returns true if a notification with wakeMask applies to w. A zero
// wakeMask applies to every waiter.
func (w *Waiter) wants(wakeMask uintptr) bool {
	return wakeMask == 0 || w.interest&wakeMask != 0
}

// bucket holds a list of waiters for a given address hash.
type bucket struct {
	// mu protects waiters and contained Waiter state. See comment in Waiter.
	mu sync.Mutex

	waiters waiterList
}

// wakeLocked wakes up to n waiters on addr that accept wakeMask and returns
// the number of waiters woken.
//
// Preconditions: b.mu must be locked.
func (b *bucket) wakeLocked(addr uintptr, wakeMask uintptr, n int) int {
	done := 0
	for w := b.waiters.Front(); done < n && w != nil; {
		if w.addr != addr || !w.wants(wakeMask) {
			// Not matching.
			w = w.Next()
			continue
		}

		// Remove from the bucket and wake the waiter.
		woke := w
		w = w.Next() // Next iteration.
		b.waiters.Remove(woke)
		woke.C <- struct{}{}

		// NOTE: The above channel write establishes a write barrier according
		// to the memory model, so nothing may be ordered around it. Since
		// we've dequeued woke and will never touch it again, we can safely
		// store nil to woke.bucket here and allow the WaitComplete() to
		// short-circuit grabbing the bucket lock. If they somehow miss the
		// store, we are still holding the lock, so we can know that they won't
		// dequeue woke, assume it's free and have the below operation
		// afterwards.
		woke.bucket.Store(nil)
		done++
	}
	return done
}

// countLocked returns the number of waiters on addr.
//
// Preconditions: b.mu must be locked.
func (b *bucket) countLocked(addr uintptr) int {
	n := 0
	for w := b.waiters.Front(); w != nil; w = w.Next() {
		if w.addr == addr {
			n++
		}
	}
	return n
}

const (
	// bucketCount is the number of buckets per Manager. By having many of
	// these we reduce contention when concurrent yet unrelated calls are made.
	bucketCount     = 1 << bucketCountBits
	bucketCountBits = 10
)

// checkAddr validates addr and returns it as a key.
func checkAddr(addr *uintptr) (uintptr, error) {
	key := uintptr(unsafe.Pointer(addr))
	if key == 0 || key%wordSize != 0 {
		return 0, liliumerr.INVALID_MEMORY
	}
	return key, nil
}

// bucketIndexForAddr returns the index into Manager.buckets for addr.
func bucketIndexForAddr(addr uintptr) uintptr {
	// The bottom 3 bits of addr are 0 per checkAddr on 64-bit platforms, and
	// user addresses leave the top 16 bits clear. We choose one of the
	// simplest possible hash functions that at least uses all the remaining
	// bits in the output, given that bucketCountBits == 10. Adjacent words map
	// to adjacent buckets, which slightly improves locality when a structure
	// uses several nearby cells.
	h1 := (addr >> 3) + (addr >> 13) + (addr >> 23)
	h2 := (addr >> 33) + (addr >> 43)
	return (h1 + h2) % bucketCount
}

// Manager holds the address wait queues for a single address space.
type Manager struct {
	buckets [bucketCount]bucket
}

// NewManager returns an initialized futex manager.
func NewManager() *Manager {
	return &Manager{}
}

// lockBucket returns a locked bucket for the given address.
func (m *Manager) lockBucket(addr uintptr) *bucket {
	b := &m.buckets[bucketIndexForAddr(addr)]
	b.mu.Lock()
	return b
}

// Wake wakes up to n waiters on addr whose interest overlaps wakeMask, or
// every waiter if wakeMask is zero. It returns the number of waiters that
// were blocked on addr when it was called, which may exceed the number woken.
func (m *Manager) Wake(addr *uintptr, wakeMask uintptr, n int) (int, error) {
	// This function is very hot; avoid defer.
	key, err := checkAddr(addr)
	if err != nil {
		return 0, err
	}

	b := m.lockBucket(key)
	blocked := b.countLocked(key)
	b.wakeLocked(key, wakeMask, n)
	b.mu.Unlock()
	return blocked, nil
}

// WaitPrepare atomically checks that the bits of *addr not set in ignoreMask
// equal those of val, then enqueues w to be woken by a send to w.C. If the
// check fails it returns the observed word and liliumerr.INVALID_STATE. If
// WaitPrepare returns a nil error, the Waiter must be subsequently removed by
// calling WaitComplete, whether or not a wakeup is received on w.C.
func (m *Manager) WaitPrepare(w *Waiter, addr *uintptr, val uintptr, ignoreMask uintptr) (uintptr, error) {
	key, err := checkAddr(addr)
	if err != nil {
		return 0, err
	}

	// Prepare the Waiter before taking the bucket lock.
	select {
	case <-w.C:
	default:
	}
	w.addr = key
	w.interest = ^ignoreMask

	b := m.lockBucket(key)
	// This function is very hot; avoid defer.

	// Perform our atomic check. Notifiers take the bucket lock, so a store
	// followed by a notify cannot slip between this load and the enqueue.
	if cur := atomic.LoadUintptr(addr); cur&^ignoreMask != val&^ignoreMask {
		b.mu.Unlock()
		return cur, liliumerr.INVALID_STATE
	}

	// Add the waiter to the bucket.
	b.waiters.PushBack(w)
	w.bucket.Store(b)

	b.mu.Unlock()
	return val, nil
}

// WaitComplete must be called when a Waiter previously added by WaitPrepare is
// no longer eligible to be woken. It returns true if w was woken by a
// notification rather than being dequeued here.
func (m *Manager) WaitComplete(w *Waiter) bool {
	// Remove w from the bucket it's in.
	for {
		b := w.bucket.Load()

		// If b is nil, the waiter isn't in any bucket anymore.
		if b == nil {
			break
		}

		// Take the bucket lock. Note that without holding the bucket lock, the
		// waiter is not guaranteed to stay in that bucket, so after we take
		// the bucket lock, we must ensure that the bucket hasn't changed.
		b.mu.Lock()
		if b != w.bucket.Load() {
			b.mu.Unlock()
			continue
		}

		// Remove w from b.
		b.waiters.Remove(w)
		w.bucket.Store(nil)
		b.mu.Unlock()
		return false
	}
	return true
}

// Waiters returns the number of waiters currently queued on addr.
func (m *Manager) Waiters(addr *uintptr) int {
	key, err := checkAddr(addr)
	if err != nil {
		return 0
	}
	b := m.lockBucket(key)
	n := b.countLocked(key)
	b.mu.Unlock()
	return n
}

// Enqueue queues w on addr without checking the word. It is used for address
// events, which wait for the next notification regardless of the value. The
// Waiter must be subsequently removed by calling WaitComplete.
func (m *Manager) Enqueue(w *Waiter, addr *uintptr, ignoreMask uintptr) error {
	key, err := checkAddr(addr)
	if err != nil {
		return err
	}
	select {
	case <-w.C:
	default:
	}
	w.addr = key
	w.interest = ^ignoreMask

	b := m.lockBucket(key)
	b.waiters.PushBack(w)
	w.bucket.Store(b)
	b.mu.Unlock()
	return nil
}
