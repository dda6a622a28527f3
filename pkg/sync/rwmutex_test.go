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
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

func TestRWMutexSharedHolders(t *testing.T) {
	var rw RWMutex
	const readers = 8

	// Every reader must hold the lock at the same time for the barrier to
	// open.
	var held atomic.Int32
	release := make(chan struct{})
	var g errgroup.Group
	for i := 0; i < readers; i++ {
		g.Go(func() error {
			rw.RLock()
			defer rw.RUnlock()
			if held.Add(1) == readers {
				close(release)
			}
			select {
			case <-release:
				return nil
			case <-time.After(5 * time.Second):
				return fmt.Errorf("only %d readers held the lock", held.Load())
			}
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if rw.IsLocked() {
		t.Errorf("IsLocked after every reader left")
	}
}

func TestRWMutexExclusion(t *testing.T) {
	var rw RWMutex

	if !rw.TryRLock() {
		t.Fatalf("TryRLock failed on unlocked RWMutex")
	}
	if rw.TryLock() {
		t.Fatalf("TryLock succeeded while read locked")
	}
	if !rw.TryRLock() {
		t.Fatalf("second TryRLock failed")
	}
	rw.RUnlock()
	rw.RUnlock()

	if !rw.TryLock() {
		t.Fatalf("TryLock failed on unlocked RWMutex")
	}
	if !rw.IsLockedExclusive() {
		t.Errorf("IsLockedExclusive = false while write locked")
	}
	if rw.TryRLock() {
		t.Fatalf("TryRLock succeeded while write locked")
	}

	// A blocked reader is released by Unlock.
	ch := make(chan struct{})
	go func() {
		rw.RLock()
		close(ch)
	}()
	select {
	case <-ch:
		t.Fatalf("RLock succeeded while write locked")
	case <-time.After(50 * time.Millisecond):
	}
	rw.Unlock()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("RLock never acquired the released lock")
	}
	rw.RUnlock()
}

func TestRWMutexTimed(t *testing.T) {
	var rw RWMutex
	rw.RLock()
	if rw.TryLockFor(10 * time.Millisecond) {
		t.Fatalf("TryLockFor succeeded while read locked")
	}
	if rw.IsLockedExclusive() {
		t.Errorf("failed TryLockFor left the exclusive bit set")
	}
	if !rw.TryRLockFor(10 * time.Millisecond) {
		t.Fatalf("TryRLockFor failed while only read locked")
	}
	rw.RUnlock()

	go func() {
		time.Sleep(10 * time.Millisecond)
		rw.RUnlock()
	}()
	if !rw.TryLockUntil(time.Now().Add(5 * time.Second)) {
		t.Fatalf("TryLockUntil failed although the readers left")
	}
	if rw.TryRLockFor(10 * time.Millisecond) {
		t.Fatalf("TryRLockFor succeeded while write locked")
	}
	rw.Unlock()
}

func TestRWMutexUnlockPanics(t *testing.T) {
	for name, fn := range map[string]func(*RWMutex){
		"Unlock":  (*RWMutex).Unlock,
		"RUnlock": (*RWMutex).RUnlock,
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s of unlocked RWMutex did not panic", name)
				}
			}()
			var rw RWMutex
			fn(&rw)
		})
	}
}

// TestRWMutexInvariant checks that a writer is never concurrent with a reader
// or another writer, while readers and writers hammer the lock.
func TestRWMutexInvariant(t *testing.T) {
	var rw RWMutex
	var readers, writers atomic.Int32
	const gr = 16
	const iters = 1000

	check := func() error {
		w, r := writers.Load(), readers.Load()
		if w > 1 || (w == 1 && r != 0) {
			return fmt.Errorf("%d writers and %d readers hold the lock", w, r)
		}
		return nil
	}

	var g errgroup.Group
	for i := 0; i < gr; i++ {
		g.Go(func() error {
			for j := 0; j < iters; j++ {
				rw.Lock()
				writers.Add(1)
				err := check()
				writers.Add(-1)
				rw.Unlock()
				if err != nil {
					return err
				}
			}
			return nil
		})
		g.Go(func() error {
			for j := 0; j < iters; j++ {
				rw.RLock()
				readers.Add(1)
				err := check()
				readers.Add(-1)
				rw.RUnlock()
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
