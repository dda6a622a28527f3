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

package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"lilium.dev/lilium/pkg/abi/lilium"
	"lilium.dev/lilium/pkg/errors/liliumerr"
)

// Errors implements subcommands.Command for the "errors" command.
type Errors struct{}

// Name implements subcommands.Command.Name.
func (*Errors) Name() string {
	return "errors"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Errors) Synopsis() string {
	return "print the kernel result code table"
}

// Usage implements subcommands.Command.Usage.
func (*Errors) Usage() string {
	return "errors - print every result code with its name and message\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Errors) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Errors) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if err := printErrors(os.Stdout); err != nil {
		return Errorf("writing error table: %v", err)
	}
	return subcommands.ExitSuccess
}

func printErrors(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tMESSAGE")
	for _, r := range lilium.ErrorCodes() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", int64(r), r, liliumerr.FromResult(r))
	}
	return w.Flush()
}
