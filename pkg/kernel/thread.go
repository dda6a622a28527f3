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

package kernel

import (
	"context"
	"time"

	"lilium.dev/lilium/pkg/abi/lilium"
	"lilium.dev/lilium/pkg/sys"
)

// StartThread implements sys.Kernel.StartThread.
//
// The new thread's context keeps the values of ctx but not its cancellation.
func (k *Kernel) StartThread(ctx context.Context, fn func(ctx context.Context) int64) (*sys.Thread, lilium.Result) {
	if fn == nil {
		return nil, lilium.INVALID_MEMORY
	}
	h := lilium.Handle(k.nextHandle.Add(1))
	t := sys.NewThread(h)

	k.mu.Lock()
	k.threads[h] = t
	k.mu.Unlock()

	tctx := sys.WithThread(context.WithoutCancel(ctx), t)
	go func() {
		k.log.Debugf("thread %d started", h)
		code := fn(tctx)
		k.log.Debugf("thread %d exited with %d", h, code)
		t.Exit(code)
	}()
	return t, 0
}

// lookupThread returns the thread for h.
func (k *Kernel) lookupThread(h lilium.Handle) (*sys.Thread, lilium.Result) {
	k.mu.Lock()
	defer k.mu.Unlock()
	t, ok := k.threads[h]
	if !ok {
		return nil, lilium.INVALID_HANDLE
	}
	return t, 0
}

// releaseThread drops h from the thread table.
func (k *Kernel) releaseThread(h lilium.Handle) {
	k.mu.Lock()
	delete(k.threads, h)
	k.mu.Unlock()
}

// JoinThread implements sys.Kernel.JoinThread.
func (k *Kernel) JoinThread(ctx context.Context, h lilium.Handle) (int64, lilium.Result) {
	t, r := k.lookupThread(h)
	if r != 0 {
		return 0, r
	}
	if sys.ThreadFromContext(ctx) == t {
		return 0, lilium.DEADLOCKED
	}
	b, r := beginBlocking(ctx)
	if r != 0 {
		return 0, r
	}
	defer b.release()

	if r := b.block(t.Done()); r != 0 {
		return 0, r
	}
	k.releaseThread(h)
	return t.ExitCode(), 0
}

// InterruptThread implements sys.Kernel.InterruptThread.
func (k *Kernel) InterruptThread(h lilium.Handle) lilium.Result {
	t, r := k.lookupThread(h)
	if r != 0 {
		return r
	}
	t.Interrupt()
	return 0
}

// SleepThread implements sys.Kernel.SleepThread.
func (k *Kernel) SleepThread(ctx context.Context, d lilium.Duration) lilium.Result {
	if !d.Valid() {
		return lilium.INVALID_OPTION
	}
	b, r := beginBlocking(ctx)
	if r != 0 {
		return r
	}
	defer b.release()

	dur := d.ToTime()
	if dur <= 0 {
		return 0
	}
	ch := make(chan struct{})
	tm := time.AfterFunc(dur, func() { close(ch) })
	defer tm.Stop()
	return b.block(ch)
}

// PauseThread implements sys.Kernel.PauseThread.
func (k *Kernel) PauseThread(ctx context.Context) lilium.Result {
	b, r := beginBlocking(ctx)
	if r != 0 {
		return r
	}
	defer b.release()
	return b.block(nil)
}
