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
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"
)

func TestOnceLockEmpty(t *testing.T) {
	var o OnceLock[string]
	if v, ok := o.Get(); ok {
		t.Errorf("Get on empty OnceLock = %q, true", v)
	}
	if got := o.GetOrInit(func() string { return "a" }); got != "a" {
		t.Errorf("GetOrInit = %q, want a", got)
	}
	if got := o.GetOrInit(func() string { return "b" }); got != "a" {
		t.Errorf("second GetOrInit = %q, want a", got)
	}
	if v, ok := o.Get(); !ok || v != "a" {
		t.Errorf("Get = %q, %t; want a, true", v, ok)
	}
}

func TestNewOnceLockInit(t *testing.T) {
	o := NewOnceLockInit(7)
	if v, ok := o.Get(); !ok || v != 7 {
		t.Errorf("Get = %d, %t; want 7, true", v, ok)
	}
	if got := o.GetOrInit(func() int { t.Fatalf("initializer ran"); return 0 }); got != 7 {
		t.Errorf("GetOrInit = %d, want 7", got)
	}
}

func TestOnceLockIdempotent(t *testing.T) {
	var o OnceLock[[]int]
	var runs atomic.Int32
	const callers = 64

	results := make([][]int, callers)
	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			results[i] = o.GetOrInit(func() []int {
				runs.Add(1)
				// Hold the lock long enough for others to block.
				time.Sleep(20 * time.Millisecond)
				return []int{1, 2, 3}
			})
			return nil
		})
	}
	g.Wait()

	if n := runs.Load(); n != 1 {
		t.Errorf("initializer ran %d times, want 1", n)
	}
	for i, r := range results {
		if diff := cmp.Diff([]int{1, 2, 3}, r); diff != "" {
			t.Errorf("caller %d got a different value (-want +got):\n%s", i, diff)
		}
	}
}

func TestOnceLockAbandonRetry(t *testing.T) {
	var o OnceLock[int]
	errBusy := errors.New("busy")

	if _, err := o.GetOrTryInit(func() (int, error) { return 0, errBusy }); err != errBusy {
		t.Fatalf("GetOrTryInit = %v, want %v", err, errBusy)
	}
	if _, ok := o.Get(); ok {
		t.Fatalf("failed initializer stored a value")
	}

	cf := TryInit(&o, func() ControlFlow[string, int] { return Break[int]("later") })
	if !cf.IsBreak() || cf.BreakValue() != "later" {
		t.Fatalf("TryInit = %+v, want Break(later)", cf)
	}

	cf = TryInit(&o, func() ControlFlow[string, int] { return Continue[string](42) })
	if cf.IsBreak() || cf.Value() != 42 {
		t.Fatalf("TryInit = %+v, want Continue(42)", cf)
	}
	if v, err := o.GetOrTryInit(func() (int, error) { return 0, errBusy }); err != nil || v != 42 {
		t.Errorf("GetOrTryInit after init = %d, %v; want 42, nil", v, err)
	}
}

func TestOnceLockPanicDoesNotPoison(t *testing.T) {
	var o OnceLock[int]
	func() {
		defer func() { recover() }()
		o.GetOrInit(func() int { panic("boom") })
	}()
	if got := o.GetOrInit(func() int { return 3 }); got != 3 {
		t.Errorf("GetOrInit after a panicking initializer = %d, want 3", got)
	}
}

// TestOnceLockWaitersSeeAbandon checks that goroutines blocked behind an
// initializer that gives up are woken and one of them initializes.
func TestOnceLockWaitersSeeAbandon(t *testing.T) {
	var o OnceLock[int]
	var runs atomic.Int32
	const callers = 16

	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			_, err := o.GetOrTryInit(func() (int, error) {
				time.Sleep(5 * time.Millisecond)
				if runs.Add(1) == 1 {
					return 0, errors.New("first attempt fails")
				}
				return 9, nil
			})
			return err
		})
	}
	// Exactly one caller sees the first failure.
	if err := g.Wait(); err == nil {
		t.Errorf("no caller saw the failed attempt")
	}
	if v, ok := o.Get(); !ok || v != 9 {
		t.Errorf("Get = %d, %t; want 9, true", v, ok)
	}
	if n := runs.Load(); n != 2 {
		t.Errorf("initializer ran %d times, want 2", n)
	}
}
