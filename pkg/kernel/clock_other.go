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

//go:build !linux

package kernel

import (
	"time"
)

// processStart anchors the monotonic clock; its epoch is unspecified.
var processStart = time.Now()

func hostRealtime() (time.Duration, error) {
	return time.Duration(time.Now().UnixNano()), nil
}

func hostMonotonic() (time.Duration, error) {
	return time.Since(processStart), nil
}
