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

// Package testutil contains utility functions for tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff"
	"lilium.dev/lilium/pkg/log"
	"lilium.dev/lilium/pkg/sys"
)

// DefaultPollInterval is the delay between two Poll attempts.
const DefaultPollInterval = 10 * time.Millisecond

// Poll is a shorthand function to poll for something with given timeout.
func Poll(cb func() error, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return PollContext(ctx, cb)
}

// PollContext is like Poll, but takes a context instead of a timeout.
func PollContext(ctx context.Context, cb func() error) error {
	b := backoff.WithContext(backoff.NewConstantBackOff(DefaultPollInterval), ctx)
	return backoff.Retry(cb, b)
}

// WaitForWaiters polls count until it reports at least want, which is how
// tests learn that goroutines are blocked in the kernel before they notify.
func WaitForWaiters(count func() int, want int, timeout time.Duration) error {
	return Poll(func() error {
		if got := count(); got < want {
			return fmt.Errorf("%d waiters, want %d", got, want)
		}
		return nil
	}, timeout)
}

// InstallKernel makes k the kernel for the duration of the test. Tests that
// install a kernel must not run in parallel.
func InstallKernel(t testing.TB, k sys.Kernel) {
	t.Helper()
	old := sys.SetKernel(k)
	t.Cleanup(func() { sys.SetKernel(old) })
}

// NewTestLogger returns a logger that writes to t at the given level.
func NewTestLogger(t testing.TB, level log.Level) log.Logger {
	return &log.BasicLogger{Level: level, Emitter: &log.TestEmitter{TestLogger: t}}
}

// Elapsed runs fn and returns how long it took.
func Elapsed(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}
