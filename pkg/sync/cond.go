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

// Cond is a condition variable paired with a Locker, usually a *Mutex.
//
// Waiters sleep on a generation counter that every Signal and Broadcast
// advances. Wakeups may be spurious; callers recheck their condition in a
// loop.
type Cond struct {
	// L is held while observing or changing the condition.
	L Locker

	gen atomicwait.Uintptr
}

// NewCond returns a new Cond with Locker l.
func NewCond(l Locker) *Cond {
	return &Cond{L: l}
}

// Wait atomically unlocks c.L and suspends the calling goroutine. c.L is
// locked again before Wait returns, including when the wait panics.
func (c *Cond) Wait() {
	gen := c.gen.Load()
	c.L.Unlock()
	defer c.L.Lock()
	// Any outcome means the generation moved or the wait was cut short.
	_ = c.gen.Wait(gen)
}

// WaitTimeout is Wait bounded by d. It reports whether the wait timed out.
func (c *Cond) WaitTimeout(d time.Duration) (timedOut bool) {
	gen := c.gen.Load()
	c.L.Unlock()
	defer c.L.Lock()
	return errors.Is(c.gen.WaitFor(gen, d), atomicwait.ErrTimeout)
}

// Signal wakes one goroutine waiting on c, if there is any.
func (c *Cond) Signal() {
	c.gen.Add(1)
	c.gen.NotifyOne()
}

// Broadcast wakes all goroutines waiting on c.
func (c *Cond) Broadcast() {
	c.gen.Add(1)
	c.gen.NotifyAll()
}
