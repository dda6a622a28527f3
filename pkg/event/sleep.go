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
	"time"

	"github.com/google/uuid"
	"lilium.dev/lilium/pkg/abi/lilium"
	"lilium.dev/lilium/pkg/errors/liliumerr"
	"lilium.dev/lilium/pkg/sys"
)

// Sleep blocks for d. Interruptions and the blocking timeout do not cut the
// sleep short; only the end of ctx does, in which case its translated error
// is returned.
func Sleep(ctx context.Context, d time.Duration) error {
	deadline := time.Now().Add(d)
	for {
		r := sys.SleepThread(ctx, d)
		if r >= 0 {
			return nil
		}
		if ctx.Err() != nil {
			if e, ok := liliumerr.TranslateError(ctx.Err()); ok {
				return e
			}
			return ctx.Err()
		}
		if r != lilium.INTERRUPTED && r != lilium.TIMEOUT {
			return liliumerr.FromResult(r)
		}
		if d = time.Until(deadline); d <= 0 {
			return nil
		}
	}
}

// SleepUntilClock blocks until clock reads deadline. If the kernel rejects the
// event, for example because it lacks the clock's support for absolute
// sleeps, it falls back to a relative Sleep computed from the clock's current
// reading.
func SleepUntilClock(ctx context.Context, clock uuid.UUID, deadline lilium.Duration) error {
	evs := []lilium.BlockingEvent{SleepUntil(clock, deadline).Descriptor()}
	for {
		r := sys.BlockOnEventsAll(ctx, evs)
		switch {
		case r >= 0:
			return nil
		case r == lilium.INVALID_OPTION:
			now, r := sys.GetClockOffset(clock)
			if r < 0 {
				return liliumerr.FromResult(r)
			}
			return Sleep(ctx, deadline.ToTime()-now.ToTime())
		case ctx.Err() != nil:
			return liliumerr.FromResult(r)
		case r != lilium.INTERRUPTED && r != lilium.TIMEOUT:
			return liliumerr.FromResult(r)
		}
	}
}
