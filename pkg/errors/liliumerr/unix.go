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

//go:build unix

package liliumerr

import (
	"golang.org/x/sys/unix"
	"lilium.dev/lilium/pkg/errors"
)

var unixMap = map[unix.Errno]*errors.Error{
	unix.EPERM:     PERMISSION,
	unix.EACCES:    PERMISSION,
	unix.EBADF:     INVALID_HANDLE,
	unix.EFAULT:    INVALID_MEMORY,
	unix.EBUSY:     BUSY,
	unix.EINVAL:    INVALID_OPERATION,
	unix.ENOMEM:    INSUFFICIENT_MEMORY,
	unix.ETIMEDOUT: TIMEOUT,
	unix.EINTR:     INTERRUPTED,
	unix.EDEADLK:   DEADLOCKED,
	unix.ENOSYS:    UNSUPPORTED_OPERATION,
	unix.ENOENT:    DOES_NOT_EXIST,
	unix.EEXIST:    ALREADY_EXISTS,
	unix.EAGAIN:    WOULD_BLOCK,
	unix.ENOSPC:    DEVICE_FULL,
	unix.ELOOP:     LINK_RESOLUTION_LOOP,
}

// ErrorFromUnix converts a host errno into the closest kernel result. Errnos
// with no counterpart become INVALID_OPERATION.
func ErrorFromUnix(err unix.Errno) error {
	if err == unix.Errno(0) {
		return nil
	}
	if e, ok := unixMap[err]; ok {
		return e
	}
	return INVALID_OPERATION
}
