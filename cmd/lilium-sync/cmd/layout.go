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
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"
	"unsafe"

	"github.com/google/subcommands"
	"lilium.dev/lilium/pkg/abi/lilium"
	"lilium.dev/lilium/pkg/sync"
)

// Layout implements subcommands.Command for the "layout" command.
type Layout struct {
	dump bool
}

// Name implements subcommands.Command.Name.
func (*Layout) Name() string {
	return "layout"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Layout) Synopsis() string {
	return "print the wire layout of kernel structures"
}

// Usage implements subcommands.Command.Usage.
func (*Layout) Usage() string {
	return `layout [flags] - print sizes and field offsets of every ABI structure,
followed by a hex dump of a sample BlockingEvent of each kind.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (l *Layout) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&l.dump, "dump", true, "print a hex dump of a sample event of each kind.")
}

// Execute implements subcommands.Command.Execute.
func (l *Layout) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if err := printLayout(os.Stdout); err != nil {
		return Errorf("writing layout: %v", err)
	}
	if l.dump {
		if err := dumpEvents(os.Stdout); err != nil {
			return Errorf("writing events: %v", err)
		}
	}
	return subcommands.ExitSuccess
}

type field struct {
	name   string
	offset int
	size   int
}

type structLayout struct {
	name   string
	size   int
	align  int
	fields []field
}

// wireLayouts describes the structures exchanged with the kernel, in the
// order they are marshalled.
var wireLayouts = []structLayout{
	{
		name: "ExtendedOptionHead", size: lilium.SizeOfExtendedOptionHead, align: lilium.OptionAlign,
		fields: []field{{"type", 0, lilium.SizeOfUUID}, {"flags", 16, 4}, {"reserved", 20, 12}},
	},
	{
		name: "Duration", size: lilium.SizeOfDuration, align: 8,
		fields: []field{{"seconds", 0, 8}, {"nanos_of_second", 8, 4}},
	},
	{
		name: "BlockingEvent", size: lilium.SizeOfBlockingEvent, align: lilium.OptionAlign,
		fields: []field{{"head", 0, lilium.SizeOfExtendedOptionHead}, {"payload", 32, lilium.SizeOfEventPayload}},
	},
	{
		name: "EventAwaitAddress", size: lilium.SizeOfBlockingEvent, align: lilium.OptionAlign,
		fields: []field{{"head", 0, 32}, {"addr", 32, 8}, {"ignore_mask", 40, 8}, {"await_options", 48, 16}},
	},
	{
		name: "EventSleepThread", size: lilium.SizeOfBlockingEvent, align: lilium.OptionAlign,
		fields: []field{{"head", 0, 32}, {"duration", 32, lilium.SizeOfDuration}},
	},
	{
		name: "EventSleepThreadUntil", size: lilium.SizeOfBlockingEvent, align: lilium.OptionAlign,
		fields: []field{{"head", 0, 32}, {"deadline", 32, lilium.SizeOfDuration}, {"clock", 48, lilium.SizeOfUUID}},
	},
	{
		name: "EventJoinThread", size: lilium.SizeOfBlockingEvent, align: lilium.OptionAlign,
		fields: []field{{"head", 0, 32}, {"thread", 32, 8}, {"exit_code", 40, 8}},
	},
	{
		name: "EventJoinProcess", size: lilium.SizeOfBlockingEvent, align: lilium.OptionAlign,
		fields: []field{{"head", 0, 32}, {"process", 32, 8}, {"status", 40, 8}},
	},
	{
		name: "ErrorContextInvalidOption", size: lilium.SizeOfErrorContextInvalidOption, align: lilium.OptionAlign,
		fields: []field{{"head", 0, 32}, {"reason", 32, 4}, {"index", 40, 8}, {"option_type", 48, lilium.SizeOfUUID}},
	},
}

func printLayout(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "STRUCT\tFIELD\tOFFSET\tSIZE")
	for _, s := range wireLayouts {
		fmt.Fprintf(w, "%s\t\t\t%d (align %d)\n", s.name, s.size, s.align)
		for _, f := range s.fields {
			fmt.Fprintf(w, "\t%s\t%d\t%d\n", f.name, f.offset, f.size)
		}
	}

	// The primitives are a single word so they can be placed in shared
	// memory and passed to the kernel by address.
	fmt.Fprintln(w, "\nPRIMITIVE\tSIZE\tALIGN")
	fmt.Fprintf(w, "Mutex\t%d\t%d\n", unsafe.Sizeof(sync.Mutex{}), unsafe.Alignof(sync.Mutex{}))
	fmt.Fprintf(w, "RWMutex\t%d\t%d\n", unsafe.Sizeof(sync.RWMutex{}), unsafe.Alignof(sync.RWMutex{}))
	fmt.Fprintf(w, "OnceLock[uint64]\t%d\t%d\n", unsafe.Sizeof(sync.OnceLock[uint64]{}), unsafe.Alignof(sync.OnceLock[uint64]{}))
	return w.Flush()
}

// sampleEvents returns one event of each kind the host kernel knows, plus an
// optional JoinProcess.
func sampleEvents() []lilium.BlockingEvent {
	var word uintptr
	joinProcess := lilium.NewBlockingEvent(lilium.EventJoinProcess{Process: 3})
	joinProcess.SetOptional(true)
	return []lilium.BlockingEvent{
		lilium.NewBlockingEvent(lilium.EventAwaitAddress{Address: &word, IgnoreMask: ^uintptr(0xff)}),
		lilium.NewBlockingEvent(lilium.EventSleepThread{Duration: lilium.DurationFromTime(1500 * time.Millisecond)}),
		lilium.NewBlockingEvent(lilium.EventSleepThreadUntil{
			Deadline: lilium.DurationFromUnixNano(int64(90 * time.Second)),
			Clock:    lilium.CLOCK_MONOTONIC,
		}),
		lilium.NewBlockingEvent(lilium.EventJoinThread{Thread: 7}),
		joinProcess,
	}
}

func dumpEvents(out io.Writer) error {
	for _, ev := range sampleEvents() {
		buf := make([]byte, ev.SizeBytes())
		ev.MarshalBytes(buf)
		if _, err := fmt.Fprintf(out, "\n%T (optional=%t):\n%s", ev.Body, ev.Optional(), hex.Dump(buf)); err != nil {
			return err
		}
	}
	return nil
}
