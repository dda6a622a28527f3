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
	"time"

	"github.com/google/subcommands"
	"lilium.dev/lilium/pkg/event"
	"lilium.dev/lilium/pkg/log"
	"lilium.dev/lilium/pkg/sys"
)

// Sleep implements subcommands.Command for the "sleep" command.
type Sleep struct {
	duration time.Duration
	race     time.Duration
}

// Name implements subcommands.Command.Name.
func (*Sleep) Name() string {
	return "sleep"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Sleep) Synopsis() string {
	return "block on two sleep events and report which fired first"
}

// Usage implements subcommands.Command.Usage.
func (*Sleep) Usage() string {
	return `sleep [flags] - block on SleepFor(-for) and SleepFor(-race) at once.
Without -race only the first event is used.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (s *Sleep) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&s.duration, "for", time.Second, "duration of the first sleep event.")
	f.DurationVar(&s.race, "race", 0, "duration of the second sleep event. Zero disables it.")
}

// Execute implements subcommands.Command.Execute.
func (s *Sleep) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if s.duration < 0 || s.race < 0 {
		return Errorf("durations must not be negative")
	}
	ctx, _ = sys.EnsureThread(ctx)

	start := time.Now()
	if s.race == 0 {
		_, err := event.AllSlice(ctx, []event.Event[struct{}]{event.SleepFor(s.duration)})
		if err != nil {
			return Errorf("sleep failed: %v", err)
		}
		fmt.Printf("slept %v\n", time.Since(start))
		return subcommands.ExitSuccess
	}

	got, err := event.Any2(ctx, event.SleepFor(s.duration), event.SleepFor(s.race))
	if err != nil {
		return Errorf("sleep failed: %v", err)
	}
	elapsed := time.Since(start)
	winner := s.duration
	if got.Index == 1 {
		winner = s.race
	}
	log.Debugf("Event %d of 2 fired after %v", got.Index, elapsed)
	fmt.Printf("event %d (%v) fired after %v\n", got.Index, winner, elapsed)
	return subcommands.ExitSuccess
}
