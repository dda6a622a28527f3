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

// Package kernel is an in-process implementation of the Lilium kernel
// surface used by the synchronization layer. Threads are goroutines carrying a
// sys.Thread in their context; address waits are served by a futex.Manager.
//
// Importing this package registers a default Kernel with package sys.
package kernel

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"lilium.dev/lilium/pkg/abi/lilium"
	"lilium.dev/lilium/pkg/errors/liliumerr"
	"lilium.dev/lilium/pkg/kernel/futex"
	"lilium.dev/lilium/pkg/log"
	"lilium.dev/lilium/pkg/sys"
)

// Options configures a Kernel.
type Options struct {
	// Logger receives kernel diagnostics. The global logger is used if nil.
	Logger log.Logger

	// Clocks maps clock ids to clocks. HostClocks() is used if nil.
	Clocks map[uuid.UUID]Clock

	// UnsupportedEvents lists event types the kernel treats as unknown.
	UnsupportedEvents []uuid.UUID

	// OptionLogInterval bounds how often rejected options are logged.
	// Defaults to one second.
	OptionLogInterval time.Duration
}

// Kernel implements sys.Kernel.
type Kernel struct {
	futexes *futex.Manager
	clocks  map[uuid.UUID]Clock
	events  map[uuid.UUID]bool
	log     log.Logger

	// optionLog is used for messages a misbehaving caller could trigger in a
	// loop.
	optionLog log.Logger

	nextHandle atomic.Uint64

	mu sync.Mutex
	// threads holds the threads started with StartThread that have not been
	// joined. Protected by mu.
	threads map[lilium.Handle]*sys.Thread
}

var _ sys.Kernel = (*Kernel)(nil)

// knownEvents lists the event types this kernel implements.
var knownEvents = []uuid.UUID{
	lilium.EVENT_AWAIT_ADDRESS,
	lilium.EVENT_SLEEP_THREAD,
	lilium.EVENT_SLEEP_THREAD_UNTIL,
	lilium.EVENT_JOIN_THREAD,
}

// New returns a new Kernel.
func New(opts Options) *Kernel {
	logger := opts.Logger
	if logger == nil {
		logger = log.Log()
	}
	clocks := opts.Clocks
	if clocks == nil {
		clocks = HostClocks()
	}
	every := opts.OptionLogInterval
	if every == 0 {
		every = time.Second
	}
	events := make(map[uuid.UUID]bool, len(knownEvents))
	for _, e := range knownEvents {
		events[e] = true
	}
	for _, e := range opts.UnsupportedEvents {
		delete(events, e)
	}
	return &Kernel{
		futexes:   futex.NewManager(),
		clocks:    clocks,
		events:    events,
		log:       logger,
		optionLog: log.RateLimitedLogger(logger, every),
		threads:   make(map[lilium.Handle]*sys.Thread),
	}
}

func init() {
	sys.RegisterDefault(func() sys.Kernel { return New(Options{}) })
}

// Default installs a host kernel with default options for the process and
// returns it. It replaces any previously installed kernel.
func Default() *Kernel {
	k := New(Options{})
	sys.SetKernel(k)
	return k
}

// Waiters returns the number of threads blocked on addr by AwaitAddress or an
// address event.
func (k *Kernel) Waiters(addr *uintptr) int {
	return k.futexes.Waiters(addr)
}

// ctxResult converts the error of a finished context.
func ctxResult(ctx context.Context) lilium.Result {
	if e, ok := liliumerr.TranslateError(ctx.Err()); ok {
		return e.Result()
	}
	return lilium.INTERRUPTED
}

// blocker holds the wake sources common to every blocking call: the thread's
// interrupts, its blocking timeout and ctx.
type blocker struct {
	ctx    context.Context
	thread *sys.Thread
	timer  *time.Timer
}

// beginBlocking starts a blocking call. It consumes the thread's blocking
// timeout, and returns INTERRUPTED at once if an interrupt is pending.
func beginBlocking(ctx context.Context) (*blocker, lilium.Result) {
	b := &blocker{ctx: ctx, thread: sys.ThreadFromContext(ctx)}
	if b.thread == nil {
		return b, 0
	}
	if b.thread.ConsumeInterrupt() {
		return nil, lilium.INTERRUPTED
	}
	if d, ok := b.thread.TakeBlockingTimeout(); ok {
		b.timer = time.NewTimer(d)
	}
	return b, 0
}

// release stops the timeout timer.
func (b *blocker) release() {
	if b.timer != nil {
		b.timer.Stop()
	}
}

// interrupts returns the thread's interrupt channel, or nil.
func (b *blocker) interrupts() <-chan struct{} {
	if b.thread == nil {
		return nil
	}
	return b.thread.Interrupts()
}

// timeout returns the timer channel, or nil.
func (b *blocker) timeout() <-chan time.Time {
	if b.timer == nil {
		return nil
	}
	return b.timer.C
}

// wakeSource says what ended a blocking call.
type wakeSource int

const (
	wokeReady wakeSource = iota
	wokeInterrupt
	wokeTimeout
	wokeContext
)

// wait waits for ch to become readable, the thread to be interrupted, the
// timeout to expire or ctx to be done, and reports which happened. A nil ch
// blocks until one of the others.
func (b *blocker) wait(ch <-chan struct{}) (wakeSource, lilium.Result) {
	select {
	case <-ch:
		return wokeReady, 0
	case <-b.interrupts():
		return wokeInterrupt, lilium.INTERRUPTED
	case <-b.timeout():
		return wokeTimeout, lilium.TIMEOUT
	case <-b.ctx.Done():
		return wokeContext, ctxResult(b.ctx)
	}
}

// block is wait without the source.
func (b *blocker) block(ch <-chan struct{}) lilium.Result {
	_, r := b.wait(ch)
	return r
}

// AwaitAddress implements sys.Kernel.AwaitAddress.
func (k *Kernel) AwaitAddress(ctx context.Context, addr *uintptr, current *uintptr, ignoreMask uintptr) lilium.Result {
	if current == nil {
		return lilium.INVALID_MEMORY
	}
	b, r := beginBlocking(ctx)
	if r != 0 {
		return r
	}
	defer b.release()

	w := futex.NewWaiter()
	observed, err := k.futexes.WaitPrepare(w, addr, *current, ignoreMask)
	if err != nil {
		if err == liliumerr.INVALID_STATE {
			*current = observed
		}
		e, _ := liliumerr.TranslateError(err)
		return liliumerr.ToResult(e)
	}

	src, r := b.wait(w.C)
	if woken := k.futexes.WaitComplete(w); woken && r != 0 {
		// A notification raced with the abrupt wakeup and counted this
		// thread; report it. An interrupt this call consumed is put back for
		// the next one. Timeouts and ctx ends leave the thread untouched.
		if src == wokeInterrupt && b.thread != nil {
			b.thread.Interrupt()
		}
		return 0
	}
	return r
}

// NotifyAddress implements sys.Kernel.NotifyAddress.
func (k *Kernel) NotifyAddress(ctx context.Context, addr *uintptr, count uint, wakeMask uintptr) lilium.Result {
	n := math.MaxInt
	if count < uint(math.MaxInt) {
		n = int(count)
	}
	woken, err := k.futexes.Wake(addr, wakeMask, n)
	if err != nil {
		e, _ := liliumerr.TranslateError(err)
		return liliumerr.ToResult(e)
	}
	return lilium.Result(woken)
}
