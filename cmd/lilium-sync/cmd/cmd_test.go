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
	"bytes"
	"context"
	"strings"
	"testing"

	"lilium.dev/lilium/cmd/lilium-sync/config"
	"lilium.dev/lilium/pkg/abi/lilium"
	_ "lilium.dev/lilium/pkg/kernel"
)

func TestRunStress(t *testing.T) {
	for _, p := range []config.Primitive{
		config.PrimitiveMutex,
		config.PrimitiveRWMutex,
		config.PrimitiveCond,
		config.PrimitiveOnce,
	} {
		t.Run(p.String(), func(t *testing.T) {
			res, err := RunStress(context.Background(), config.Stress{
				Threads:    4,
				Iterations: 200,
				Primitive:  p,
			})
			if err != nil {
				t.Fatalf("RunStress: %v", err)
			}
			if res.Violations != 0 {
				t.Errorf("RunStress reported %d violations", res.Violations)
			}
			if res.Operations <= 0 {
				t.Errorf("RunStress reported %d operations", res.Operations)
			}
		})
	}
}

func TestRunStressUnknownPrimitive(t *testing.T) {
	if _, err := RunStress(context.Background(), config.Stress{Threads: 1, Iterations: 1, Primitive: 42}); err == nil {
		t.Errorf("RunStress succeeded with an unknown primitive")
	}
}

func TestThroughput(t *testing.T) {
	if got := (StressResult{Operations: 10}).Throughput(); got != 0 {
		t.Errorf("Throughput with zero elapsed = %v, want 0", got)
	}
}

func TestPrintErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := printErrors(&buf); err != nil {
		t.Fatalf("printErrors: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if want := len(lilium.ErrorCodes()) + 1; len(lines) != want {
		t.Errorf("got %d lines, want %d", len(lines), want)
	}
	for _, name := range []string{"PERMISSION", "INVALID_STATE", "TIMEOUT", "INTERRUPTED", "DEADLOCKED"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("error table is missing %s", name)
		}
	}
}

func TestLayout(t *testing.T) {
	for _, s := range wireLayouts {
		end := 0
		for _, f := range s.fields {
			if f.offset < end {
				t.Errorf("%s.%s at %d overlaps the previous field ending at %d", s.name, f.name, f.offset, end)
			}
			end = f.offset + f.size
		}
		if end > s.size {
			t.Errorf("%s fields end at %d, past its size %d", s.name, end, s.size)
		}
		if s.size%s.align != 0 {
			t.Errorf("%s size %d is not a multiple of its alignment %d", s.name, s.size, s.align)
		}
	}

	var buf bytes.Buffer
	if err := printLayout(&buf); err != nil {
		t.Fatalf("printLayout: %v", err)
	}
	if !strings.Contains(buf.String(), "BlockingEvent") {
		t.Errorf("layout is missing BlockingEvent:\n%s", buf.String())
	}
}

func TestDumpEvents(t *testing.T) {
	var buf bytes.Buffer
	if err := dumpEvents(&buf); err != nil {
		t.Fatalf("dumpEvents: %v", err)
	}
	out := buf.String()
	for _, name := range []string{"EventAwaitAddress", "EventSleepThread", "EventSleepThreadUntil", "EventJoinThread", "EventJoinProcess (optional=true)"} {
		if !strings.Contains(out, name) {
			t.Errorf("dump is missing %s", name)
		}
	}
	// Each event is four hex.Dump lines of 16 bytes.
	if got, want := strings.Count(out, "|\n"), 4*len(sampleEvents()); got != want {
		t.Errorf("dump has %d lines of bytes, want %d", got, want)
	}
}
