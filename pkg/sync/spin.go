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

// Package sync provides spin-then-block locks, a condition variable and a
// one-time initialization cell built on the kernel's address wait and notify
// (package atomicwait).
//
// Unlike the standard library, these types block through the Lilium kernel,
// so a blocked goroutine is visible to the kernel as a waiter on the lock
// word.
package sync

import (
	"runtime"
	"sync"
)

// SpinLimit is the number of acquisition attempts a lock makes before it
// blocks in the kernel. It is a tuning knob only.
const SpinLimit = 128

// Locker is an alias of sync.Locker.
type Locker = sync.Locker

// spinDelay is used in spin loops to delay resumption of the loop.
// Usage:
//
//	var attempts uint
//	for try_something {
//		attempts = spinDelay(attempts)
//	}
func spinDelay(attempts uint) uint {
	if attempts < 7 {
		for i := 0; i != 1<<attempts; i++ {
		}
		attempts++
	} else {
		runtime.Gosched()
	}
	return attempts
}
