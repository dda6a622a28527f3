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

//go:build linux

package kernel

import (
	"time"

	"golang.org/x/sys/unix"
	"lilium.dev/lilium/pkg/errors/liliumerr"
)

func clockGettime(id int32) (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(id, &ts); err != nil {
		if errno, ok := err.(unix.Errno); ok {
			return 0, liliumerr.ErrorFromUnix(errno)
		}
		return 0, err
	}
	return time.Duration(ts.Nano()), nil
}

func hostRealtime() (time.Duration, error) {
	return clockGettime(unix.CLOCK_REALTIME)
}

func hostMonotonic() (time.Duration, error) {
	return clockGettime(unix.CLOCK_MONOTONIC)
}
