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

package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"lilium.dev/lilium/pkg/abi/lilium"
	"lilium.dev/lilium/pkg/atomicwait"
	"lilium.dev/lilium/pkg/errors/liliumerr"
	"lilium.dev/lilium/pkg/kernel"
	"lilium.dev/lilium/pkg/log"
	"lilium.dev/lilium/pkg/sys"
	"lilium.dev/lilium/pkg/test/testutil"
)

func newKernel(t *testing.T, opts kernel.Options) *kernel.Kernel {
	opts.Logger = testutil.NewTestLogger(t, log.Debug)
	k := kernel.New(opts)
	testutil.InstallKernel(t, k)
	return k
}

func TestAllWithOptionalSleep(t *testing.T) {
	newKernel(t, kernel.Options{})
	var got Values2[struct{}, Maybe[struct{}]]
	var err error
	elapsed := testutil.Elapsed(func() {
		got, err = All2(context.Background(), SleepFor(100*time.Millisecond), Optional(SleepFor(10*time.Millisecond)))
	})
	if err != nil {
		t.Fatalf("All2 = %v", err)
	}
	if elapsed < 100*time.Millisecond {
		t.Errorf("All2 returned after %v, want at least 100ms", elapsed)
	}
	if !got.V1.Ok {
		t.Errorf("optional sleep reported as unsupported")
	}
}

func TestAnySliceFirstFires(t *testing.T) {
	newKernel(t, kernel.Options{})
	var i int
	var err error
	elapsed := testutil.Elapsed(func() {
		i, _, err = AnySlice(context.Background(), []Event[struct{}]{
			SleepFor(10 * time.Millisecond),
			SleepFor(time.Second),
		})
	})
	if err != nil {
		t.Fatalf("AnySlice = %v", err)
	}
	if i != 0 {
		t.Errorf("AnySlice fired event %d, want 0", i)
	}
	if elapsed >= time.Second {
		t.Errorf("AnySlice waited %v, as long as the slower event", elapsed)
	}
}

func TestAllSlice(t *testing.T) {
	newKernel(t, kernel.Options{})
	got, err := AllSlice(context.Background(), []Event[Maybe[int64]]{
		Optional(JoinProcess(1)),
		Optional(JoinProcess(2)),
	})
	if err != nil {
		t.Fatalf("AllSlice = %v", err)
	}
	if diff := cmp.Diff([]Maybe[int64]{{}, {}}, got); diff != "" {
		t.Errorf("AllSlice mismatch (-want +got):\n%s", diff)
	}

	if got, err := AllSlice[struct{}](context.Background(), nil); err != nil || len(got) != 0 {
		t.Errorf("AllSlice(nil) = %v, %v; want empty, nil", got, err)
	}
}

func TestEmptyLists(t *testing.T) {
	newKernel(t, kernel.Options{})
	ctx, th := sys.EnsureThread(context.Background())

	th.SetBlockingTimeout(time.Hour)
	if err := All0(ctx); err != nil {
		t.Errorf("All0 = %v, want nil", err)
	}

	th.SetBlockingTimeout(10 * time.Millisecond)
	if err := Any0(ctx); !liliumerr.Equals(liliumerr.TIMEOUT, err) {
		t.Errorf("Any0 = %v, want TIMEOUT", err)
	}

	th.Interrupt()
	if _, _, err := AnySlice[struct{}](ctx, nil); !liliumerr.Equals(liliumerr.INTERRUPTED, err) {
		t.Errorf("AnySlice(nil) = %v, want INTERRUPTED", err)
	}
}

func TestOptionalUnsupported(t *testing.T) {
	newKernel(t, kernel.Options{})
	ctx := context.Background()

	all, err := All1(ctx, Optional(JoinProcess(1)))
	if err != nil {
		t.Fatalf("All1 = %v", err)
	}
	if all.V0.Ok {
		t.Errorf("unsupported optional event reported as fired: %+v", all.V0)
	}

	anyRes, err := Any2(ctx, Optional(JoinProcess(1)), SleepFor(time.Millisecond))
	if err != nil {
		t.Fatalf("Any2 = %v", err)
	}
	if anyRes.Index != 1 {
		t.Errorf("Any2 fired event %d, want 1", anyRes.Index)
	}

	if _, err := Any1(ctx, Optional(JoinProcess(1))); !liliumerr.Equals(liliumerr.DEADLOCKED, err) {
		t.Errorf("Any1 over only ignored events = %v, want DEADLOCKED", err)
	}
}

func TestRequiredUnsupported(t *testing.T) {
	newKernel(t, kernel.Options{})
	ctx, _ := sys.EnsureThread(context.Background())
	if _, err := All2(ctx, SleepFor(0), JoinProcess(1)); !liliumerr.Equals(liliumerr.INVALID_OPTION, err) {
		t.Fatalf("All2 = %v, want INVALID_OPTION", err)
	}
	ec, ok := sys.LastErrorContext(ctx)
	if !ok {
		t.Fatalf("no error context")
	}
	want := lilium.ErrorContextInvalidOption{
		Reason:     lilium.INVALID_OPTION_REASON_UNKNOWN,
		Index:      1,
		OptionType: lilium.EVENT_JOIN_PROCESS,
	}
	if diff := cmp.Diff(want, ec); diff != "" {
		t.Errorf("error context mismatch (-want +got):\n%s", diff)
	}
}

func TestJoinThread(t *testing.T) {
	newKernel(t, kernel.Options{})
	ctx := context.Background()
	th, r := sys.StartThread(ctx, func(context.Context) int64 { return 23 })
	if r != 0 {
		t.Fatalf("StartThread = %v", r)
	}
	got, err := Any2(ctx, JoinThread(th.Handle()), SleepFor(time.Hour))
	if err != nil {
		t.Fatalf("Any2 = %v", err)
	}
	if diff := cmp.Diff(OneOf2[int64, struct{}]{Index: 0, V0: 23}, got); diff != "" {
		t.Errorf("Any2 mismatch (-want +got):\n%s", diff)
	}
}

func TestAwaitAddress(t *testing.T) {
	k := newKernel(t, kernel.Options{})
	var cell atomicwait.Uintptr
	done := make(chan OneOf3[struct{}, struct{}, struct{}], 1)
	errc := make(chan error, 1)
	go func() {
		res, err := Any3(context.Background(),
			SleepFor(time.Hour),
			AwaitAddressMask(&cell, 0x1),
			AwaitAddressMask(&cell, 0x2))
		done <- res
		errc <- err
	}()
	if err := testutil.WaitForWaiters(func() int { return k.Waiters(cell.Addr()) }, 2, 5*time.Second); err != nil {
		t.Fatalf("events never registered: %v", err)
	}
	if n := cell.NotifyMaskAll(0x2); n != 2 {
		t.Errorf("NotifyMaskAll = %d, want 2 blocked", n)
	}
	if res := <-done; res.Index != 2 {
		t.Errorf("Any3 fired event %d, want 2", res.Index)
	}
	if err := <-errc; err != nil {
		t.Errorf("Any3 = %v", err)
	}
}

func TestAwaitAddressMaskZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("AwaitAddressMask with an empty mask did not panic")
		}
	}()
	var cell atomicwait.Uintptr
	AwaitAddressMask(&cell, 0)
}

func TestAll12(t *testing.T) {
	newKernel(t, kernel.Options{})
	s := SleepFor(0)
	got, err := All12(context.Background(), s, s, s, s, s, s, s, s, s, s, s, Optional(JoinProcess(1)))
	if err != nil {
		t.Fatalf("All12 = %v", err)
	}
	if got.V11.Ok {
		t.Errorf("unsupported event in position 11 reported as fired")
	}
}

func TestSleep(t *testing.T) {
	newKernel(t, kernel.Options{})
	ctx, th := sys.EnsureThread(context.Background())

	// An interruption does not cut the sleep short.
	go func() {
		time.Sleep(5 * time.Millisecond)
		th.Interrupt()
	}()
	var err error
	elapsed := testutil.Elapsed(func() { err = Sleep(ctx, 30*time.Millisecond) })
	if err != nil {
		t.Fatalf("Sleep = %v", err)
	}
	if elapsed < 30*time.Millisecond {
		t.Errorf("Sleep returned after %v, want at least 30ms", elapsed)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := Sleep(cctx, time.Hour); !liliumerr.Equals(liliumerr.INTERRUPTED, err) {
		t.Errorf("Sleep with canceled context = %v, want INTERRUPTED", err)
	}
}

func TestSleepUntilClock(t *testing.T) {
	for _, tc := range []struct {
		name        string
		unsupported []uuid.UUID
	}{
		{name: "event"},
		{name: "fallback", unsupported: []uuid.UUID{lilium.EVENT_SLEEP_THREAD_UNTIL}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			newKernel(t, kernel.Options{UnsupportedEvents: tc.unsupported})
			now, r := sys.GetClockOffset(lilium.CLOCK_MONOTONIC)
			if r != 0 {
				t.Fatalf("GetClockOffset = %v", r)
			}
			deadline := lilium.DurationFromTime(now.ToTime() + 20*time.Millisecond)
			var err error
			elapsed := testutil.Elapsed(func() {
				err = SleepUntilClock(context.Background(), lilium.CLOCK_MONOTONIC, deadline)
			})
			if err != nil {
				t.Fatalf("SleepUntilClock = %v", err)
			}
			if elapsed < 15*time.Millisecond {
				t.Errorf("SleepUntilClock returned after %v, want about 20ms", elapsed)
			}
		})
	}
}
