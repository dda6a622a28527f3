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

package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newFlagSet() *flag.FlagSet {
	testFlags := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(testFlags)
	return testFlags
}

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lilium-sync.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c, err := NewFromFlags(newFlagSet())
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{LogFormat: LogFormatText, Stress: DefaultStress()}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("NewFromFlags() mismatch (-want +got):\n%s", diff)
	}
	// All defaults doesn't require setting flags.
	if flags := c.ToFlags(); len(flags) > 0 {
		t.Errorf("default flags not set correctly for: %s", flags)
	}
}

func TestFromFlags(t *testing.T) {
	testFlags := newFlagSet()
	if err := testFlags.Parse([]string{"--debug", "--log=/tmp/%COMMAND%.log", "--log-format=json"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := NewFromFlags(testFlags)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Debug {
		t.Errorf("Debug=false, want true")
	}
	if c.LogFilename != "/tmp/%COMMAND%.log" {
		t.Errorf("LogFilename=%q, want /tmp/%%COMMAND%%.log", c.LogFilename)
	}
	if c.LogFormat != LogFormatJSON {
		t.Errorf("LogFormat=%q, want json", c.LogFormat)
	}

	want := []string{"--debug=true", "--log=/tmp/%COMMAND%.log", "--log-format=json"}
	if diff := cmp.Diff(want, c.ToFlags()); diff != "" {
		t.Errorf("ToFlags() mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidFlags(t *testing.T) {
	for _, tc := range []struct {
		name  string
		value string
		error string
	}{
		{name: "log-format", value: "xml", error: "invalid log format"},
		{name: "debug", value: "maybe", error: "parse error"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			testFlags := newFlagSet()
			err := testFlags.Lookup(tc.name).Value.Set(tc.value)
			if err == nil || !strings.Contains(err.Error(), tc.error) {
				t.Errorf("Set(%q) = %v, want error containing %q", tc.value, err, tc.error)
			}
		})
	}
}

func TestFile(t *testing.T) {
	path := writeFile(t, `
debug = true
log-format = "json"

[stress]
threads = 3
iters = 50
primitive = "rwmutex"
`)
	testFlags := newFlagSet()
	if err := testFlags.Parse([]string{"--config=" + path}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := NewFromFlags(testFlags)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Debug:     true,
		LogFormat: LogFormatJSON,
		File:      path,
		Stress: Stress{
			Threads:    3,
			Iterations: 50,
			Primitive:  PrimitiveRWMutex,
		},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("NewFromFlags() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, `
debug = true
log-format = "json"
`)
	testFlags := newFlagSet()
	if err := testFlags.Parse([]string{"--config=" + path, "--debug=false"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := NewFromFlags(testFlags)
	if err != nil {
		t.Fatal(err)
	}
	if c.Debug {
		t.Errorf("Debug=true, want the explicit flag value false")
	}
	if c.LogFormat != LogFormatJSON {
		t.Errorf("LogFormat=%q, want json from the file", c.LogFormat)
	}
}

func TestBadFile(t *testing.T) {
	for _, tc := range []struct {
		name     string
		contents string
		error    string
	}{
		{name: "unknown key", contents: "colour = \"blue\"\n", error: "unknown keys"},
		{name: "bad primitive", contents: "[stress]\nprimitive = \"spinlock\"\n", error: "error reading config file"},
		{name: "zero threads", contents: "[stress]\nthreads = 0\n", error: "stress.threads"},
		{name: "negative iters", contents: "[stress]\niters = -1\n", error: "stress.iters"},
		{name: "syntax", contents: "debug = \n", error: "error reading config file"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			testFlags := newFlagSet()
			if err := testFlags.Set("config", writeFile(t, tc.contents)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			_, err := NewFromFlags(testFlags)
			if err == nil || !strings.Contains(err.Error(), tc.error) {
				t.Errorf("NewFromFlags() = %v, want error containing %q", err, tc.error)
			}
		})
	}
}

func TestMissingFile(t *testing.T) {
	testFlags := newFlagSet()
	if err := testFlags.Set("config", filepath.Join(t.TempDir(), "absent.toml")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := NewFromFlags(testFlags); err == nil {
		t.Errorf("NewFromFlags() succeeded with a missing config file")
	}
}

func TestPrimitive(t *testing.T) {
	for _, name := range []string{"mutex", "rwmutex", "cond", "once"} {
		var p Primitive
		if err := p.Set(name); err != nil {
			t.Errorf("Set(%q): %v", name, err)
			continue
		}
		if got := p.String(); got != name {
			t.Errorf("String() = %q, want %q", got, name)
		}
	}
	var p Primitive
	if err := p.Set("futex"); err == nil {
		t.Errorf("Set(futex) succeeded")
	}
}
