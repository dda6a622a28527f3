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
	"time"

	"github.com/google/uuid"
	"lilium.dev/lilium/pkg/abi/lilium"
	"lilium.dev/lilium/pkg/errors/liliumerr"
)

// Clock is a source of time.
type Clock interface {
	// Now returns the time elapsed since the clock's epoch.
	Now() (time.Duration, error)
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() (time.Duration, error)

// Now implements Clock.Now.
func (f ClockFunc) Now() (time.Duration, error) {
	return f()
}

// HostClocks returns the host's epoch and monotonic clocks.
func HostClocks() map[uuid.UUID]Clock {
	return map[uuid.UUID]Clock{
		lilium.CLOCK_EPOCH:     ClockFunc(hostRealtime),
		lilium.CLOCK_MONOTONIC: ClockFunc(hostMonotonic),
	}
}

// GetClockOffset implements sys.Kernel.GetClockOffset.
func (k *Kernel) GetClockOffset(clock uuid.UUID) (lilium.Duration, lilium.Result) {
	c, ok := k.clocks[clock]
	if !ok {
		return lilium.Duration{}, lilium.UNKNOWN_DEVICE
	}
	now, err := c.Now()
	if err != nil {
		e, ok := liliumerr.TranslateError(err)
		if !ok {
			return lilium.Duration{}, lilium.DEVICE_UNAVAILABLE
		}
		return lilium.Duration{}, e.Result()
	}
	return lilium.DurationFromUnixNano(int64(now)), 0
}

// until returns how long remains before clock reads deadline.
func (k *Kernel) until(clock uuid.UUID, deadline lilium.Duration) (time.Duration, bool) {
	c, ok := k.clocks[clock]
	if !ok {
		return 0, false
	}
	now, err := c.Now()
	if err != nil {
		return 0, false
	}
	return deadline.ToTime() - now, true
}
