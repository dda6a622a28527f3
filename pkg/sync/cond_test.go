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
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

func TestCondSignal(t *testing.T) {
	var m Mutex
	c := NewCond(&m)
	ready := false

	done := make(chan struct{})
	go func() {
		m.Lock()
		for !ready {
			c.Wait()
		}
		m.Unlock()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	m.Lock()
	ready = true
	c.Signal()
	m.Unlock()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("waiter never woke up")
	}
}

func TestCondWaitTimeout(t *testing.T) {
	var m Mutex
	c := NewCond(&m)
	m.Lock()
	start := time.Now()
	if !c.WaitTimeout(20 * time.Millisecond) {
		t.Errorf("WaitTimeout without a signal did not time out")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("WaitTimeout returned after %v, want at least 20ms", elapsed)
	}
	if !m.IsLocked() {
		t.Errorf("WaitTimeout returned without the lock")
	}
	m.Unlock()
}

// TestCondBroadcastRace repeatedly races Broadcast against waiters that are
// between sampling the generation and blocking. No waiter may sleep through
// the broadcast that follows its check of the condition.
func TestCondBroadcastRace(t *testing.T) {
	const waiters = 4
	const rounds = 200
	for i := 0; i < rounds; i++ {
		var m Mutex
		c := NewCond(&m)
		gen := 0

		var g errgroup.Group
		started := make(chan struct{}, waiters)
		for j := 0; j < waiters; j++ {
			g.Go(func() error {
				m.Lock()
				started <- struct{}{}
				for gen == 0 {
					c.Wait()
				}
				m.Unlock()
				return nil
			})
		}
		for j := 0; j < waiters; j++ {
			<-started
		}
		m.Lock()
		gen++
		c.Broadcast()
		m.Unlock()

		done := make(chan struct{})
		go func() {
			g.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			t.Fatalf("round %d: a waiter missed the broadcast", i)
		}
	}
}

func TestCondWithRWMutexReader(t *testing.T) {
	var rw RWMutex
	c := NewCond(rw.RLocker())
	rw.RLock()
	if !c.WaitTimeout(time.Millisecond) {
		t.Errorf("WaitTimeout did not time out")
	}
	rw.RUnlock()
	if rw.IsLocked() {
		t.Errorf("lock still held")
	}
}
