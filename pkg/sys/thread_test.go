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
	"testing"
	"time"

	"lilium.dev/lilium/pkg/abi/lilium"
)

func TestBlockingTimeoutIsOneShot(t *testing.T) {
	th := NewThread(0)
	if _, ok := th.TakeBlockingTimeout(); ok {
		t.Fatalf("fresh thread has an armed timeout")
	}
	th.SetBlockingTimeout(5 * time.Millisecond)
	if d, ok := th.TakeBlockingTimeout(); !ok || d != 5*time.Millisecond {
		t.Errorf("TakeBlockingTimeout = %v, %t; want 5ms, true", d, ok)
	}
	if _, ok := th.TakeBlockingTimeout(); ok {
		t.Errorf("timeout still armed after being consumed")
	}

	th.SetBlockingTimeout(time.Second)
	th.ClearBlockingTimeout()
	if _, ok := th.TakeBlockingTimeout(); ok {
		t.Errorf("timeout armed after ClearBlockingTimeout")
	}
}

func TestInterruptsDoNotAccumulate(t *testing.T) {
	th := NewThread(0)
	th.Interrupt()
	th.Interrupt()
	if !th.ConsumeInterrupt() {
		t.Fatalf("pending interrupt not seen")
	}
	if th.ConsumeInterrupt() {
		t.Errorf("second interrupt was queued")
	}

	ctx := WithThread(context.Background(), th)
	th.Interrupt()
	if !Interrupted(ctx) {
		t.Errorf("Interrupted did not see the pending interrupt")
	}
	if Interrupted(ctx) || Interrupted(context.Background()) {
		t.Errorf("Interrupted reported an interrupt that was not pending")
	}
}

func TestExit(t *testing.T) {
	th := NewThread(7)
	go th.Exit(42)
	select {
	case <-th.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("thread never exited")
	}
	if got := th.ExitCode(); got != 42 {
		t.Errorf("ExitCode = %d, want 42", got)
	}
	if th.Handle() != 7 {
		t.Errorf("Handle = %d, want 7", th.Handle())
	}
}

func TestContextThread(t *testing.T) {
	ctx := context.Background()
	if ThreadFromContext(ctx) != nil {
		t.Fatalf("background context carries a thread")
	}
	if r := SetBlockingTimeout(ctx, time.Second); r != lilium.INVALID_OPERATION {
		t.Errorf("SetBlockingTimeout without a thread = %v, want INVALID_OPERATION", r)
	}

	ctx, th := EnsureThread(ctx)
	if ThreadFromContext(ctx) != th {
		t.Fatalf("EnsureThread did not attach its thread")
	}
	if _, again := EnsureThread(ctx); again != th {
		t.Errorf("EnsureThread replaced an existing thread")
	}
	if r := SetBlockingTimeout(ctx, -1); r != lilium.INVALID_OPTION {
		t.Errorf("SetBlockingTimeout(-1) = %v, want INVALID_OPTION", r)
	}
	if r := SetBlockingTimeout(ctx, time.Second); r != 0 {
		t.Errorf("SetBlockingTimeout = %v, want 0", r)
	}
	if r := ClearBlockingTimeout(ctx); r != 0 {
		t.Errorf("ClearBlockingTimeout = %v, want 0", r)
	}

	if _, ok := LastErrorContext(ctx); ok {
		t.Errorf("fresh thread has an error context")
	}
	want := lilium.ErrorContextInvalidOption{Reason: lilium.INVALID_OPTION_REASON_UNKNOWN, Index: 1}
	th.SetErrorContext(want)
	if got, ok := LastErrorContext(ctx); !ok || got != want {
		t.Errorf("LastErrorContext = %v, %t; want %v, true", got, ok, want)
	}
}

func TestCurrentPanicsWithoutKernel(t *testing.T) {
	old := installed.Swap(nil)
	oldDefault := defaultNew.Swap(nil)
	defer func() {
		installed.Store(old)
		defaultNew.Store(oldDefault)
	}()
	defer func() {
		if recover() == nil {
			t.Errorf("Current did not panic")
		}
	}()
	Current()
}
