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

package sys

import (
	"context"
	"sync"
	"time"

	"lilium.dev/lilium/pkg/abi/lilium"
)

// Thread is the kernel's view of one thread of execution.
type Thread struct {
	handle lilium.Handle

	// interrupt holds at most one pending interrupt.
	interrupt chan struct{}

	// done is closed when the thread exits.
	done chan struct{}

	mu sync.Mutex
	// The fields below are protected by mu.
	timeout  time.Duration
	armed    bool
	exitCode int64
	errCtx   lilium.ErrorContextInvalidOption
	hasErr   bool
}

// NewThread returns a running thread with handle h. Threads that are not
// started through the kernel use a zero handle.
func NewThread(h lilium.Handle) *Thread {
	return &Thread{
		handle:    h,
		interrupt: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Handle returns the thread's handle.
func (t *Thread) Handle() lilium.Handle {
	return t.handle
}

// SetBlockingTimeout arms a timeout consumed by the next blocking call.
func (t *Thread) SetBlockingTimeout(d time.Duration) {
	t.mu.Lock()
	t.timeout, t.armed = d, true
	t.mu.Unlock()
}

// ClearBlockingTimeout disarms the blocking timeout.
func (t *Thread) ClearBlockingTimeout() {
	t.mu.Lock()
	t.armed = false
	t.mu.Unlock()
}

// TakeBlockingTimeout consumes the armed timeout.
func (t *Thread) TakeBlockingTimeout() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.timeout, t.armed
	t.armed = false
	return d, ok
}

// Interrupt makes the current or next blocking call of t return
// INTERRUPTED. Interrupts do not accumulate.
func (t *Thread) Interrupt() {
	select {
	case t.interrupt <- struct{}{}:
	default:
	}
}

// Interrupts returns the channel a blocking call selects on. Receiving from
// it consumes the pending interrupt.
func (t *Thread) Interrupts() <-chan struct{} {
	return t.interrupt
}

// ConsumeInterrupt consumes a pending interrupt without blocking and reports
// whether there was one.
func (t *Thread) ConsumeInterrupt() bool {
	select {
	case <-t.interrupt:
		return true
	default:
		return false
	}
}

// Exit records code and wakes joiners. Exit may only be called once.
func (t *Thread) Exit(code int64) {
	t.mu.Lock()
	t.exitCode = code
	t.mu.Unlock()
	close(t.done)
}

// Done is closed once the thread has exited.
func (t *Thread) Done() <-chan struct{} {
	return t.done
}

// ExitCode returns the exit code. It is only meaningful after Done is closed.
func (t *Thread) ExitCode() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exitCode
}

// SetErrorContext records c as the thread's last error context.
func (t *Thread) SetErrorContext(c lilium.ErrorContextInvalidOption) {
	t.mu.Lock()
	t.errCtx, t.hasErr = c, true
	t.mu.Unlock()
}

// LastErrorContext returns the last recorded error context.
func (t *Thread) LastErrorContext() (lilium.ErrorContextInvalidOption, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errCtx, t.hasErr
}

type threadKey struct{}

// WithThread returns a copy of ctx carrying t.
func WithThread(ctx context.Context, t *Thread) context.Context {
	return context.WithValue(ctx, threadKey{}, t)
}

// ThreadFromContext returns the thread carried by ctx, or nil.
func ThreadFromContext(ctx context.Context) *Thread {
	t, _ := ctx.Value(threadKey{}).(*Thread)
	return t
}

// EnsureThread returns ctx and its thread, attaching a new anonymous thread
// if ctx carries none.
func EnsureThread(ctx context.Context) (context.Context, *Thread) {
	if t := ThreadFromContext(ctx); t != nil {
		return ctx, t
	}
	t := NewThread(0)
	return WithThread(ctx, t), t
}
