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

// Package cmd holds implementations of the lilium-sync commands.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"lilium.dev/lilium/pkg/log"
)

// ErrorLogger is where error messages should be written to. These messages
// are consumed by the caller of lilium-sync.
var ErrorLogger io.Writer = os.Stderr

// Errorf logs the error to the debug log and writes it to ErrorLogger, then
// returns subcommands.ExitFailure for the caller to return.
func Errorf(format string, args ...any) subcommands.ExitStatus {
	msg := fmt.Sprintf(format, args...)
	log.Warningf("FATAL ERROR: %s", msg)
	fmt.Fprintln(ErrorLogger, msg)
	return subcommands.ExitFailure
}

// Fatalf logs the same way as Errorf, then exits the process.
func Fatalf(format string, args ...any) {
	Errorf(format, args...)
	os.Exit(128)
}
