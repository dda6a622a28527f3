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

// Package config holds the lilium-sync configuration, populated from command
// line flags and optionally from a TOML file.
package config

import (
	"fmt"

	"lilium.dev/lilium/pkg/log"
)

// Config holds the settings of a lilium-sync invocation.
//
// Fields tagged "flag" are set from the global flag of that name; fields
// tagged "toml" may also come from the file named by --config. Flags given
// explicitly on the command line take precedence over the file.
type Config struct {
	// Debug enables debug logging.
	Debug bool `flag:"debug" toml:"debug"`

	// LogFilename is the log file pattern. %COMMAND%, %TIMESTAMP% and %PID%
	// are expanded. Empty means stderr.
	LogFilename string `flag:"log" toml:"log"`

	// LogFormat is the format of log messages.
	LogFormat LogFormat `flag:"log-format" toml:"log-format"`

	// File is the TOML file the configuration was read from, if any.
	File string `flag:"config" toml:"-"`

	// Stress holds defaults for the stress command.
	Stress Stress `toml:"stress"`
}

// Stress configures the stress command.
type Stress struct {
	Threads    int       `toml:"threads"`
	Iterations int       `toml:"iters"`
	Primitive  Primitive `toml:"primitive"`
}

// DefaultStress returns the stress settings used when neither the file nor
// the command line sets them.
func DefaultStress() Stress {
	return Stress{
		Threads:    8,
		Iterations: 10000,
		Primitive:  PrimitiveMutex,
	}
}

func (c *Config) validate() error {
	if c.Stress.Threads <= 0 {
		return fmt.Errorf("stress.threads must be positive, got %d", c.Stress.Threads)
	}
	if c.Stress.Iterations <= 0 {
		return fmt.Errorf("stress.iters must be positive, got %d", c.Stress.Iterations)
	}
	return nil
}

// Log logs important aspects of the configuration.
func (c *Config) Log() {
	log.Infof("Config:")
	log.Infof("\t\tDebug: %t", c.Debug)
	log.Infof("\t\tLog: %q (%s)", c.LogFilename, c.LogFormat)
	if c.File != "" {
		log.Infof("\t\tFile: %q", c.File)
	}
	log.Infof("\t\tStress: %d threads, %d iterations, %s", c.Stress.Threads, c.Stress.Iterations, c.Stress.Primitive)
}

// LogFormat selects the emitter used for log messages.
type LogFormat string

// Supported log formats.
const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

func logFormatPtr(v LogFormat) *LogFormat {
	return &v
}

// Set implements flag.Value.
func (f *LogFormat) Set(v string) error {
	switch LogFormat(v) {
	case LogFormatText, LogFormatJSON:
		*f = LogFormat(v)
		return nil
	}
	return fmt.Errorf("invalid log format %q, must be 'text' or 'json'", v)
}

// Get implements flag.Getter.
func (f *LogFormat) Get() any {
	return *f
}

// String implements flag.Value.
func (f *LogFormat) String() string {
	return string(*f)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *LogFormat) UnmarshalText(b []byte) error {
	return f.Set(string(b))
}

// Primitive names a synchronization primitive exercised by the stress
// command.
type Primitive int

// Supported primitives.
const (
	PrimitiveMutex Primitive = iota
	PrimitiveRWMutex
	PrimitiveCond
	PrimitiveOnce
)

var primitiveNames = [...]string{
	PrimitiveMutex:   "mutex",
	PrimitiveRWMutex: "rwmutex",
	PrimitiveCond:    "cond",
	PrimitiveOnce:    "once",
}

// Set implements flag.Value.
func (p *Primitive) Set(v string) error {
	for i, name := range primitiveNames {
		if name == v {
			*p = Primitive(i)
			return nil
		}
	}
	return fmt.Errorf("invalid primitive %q, must be one of mutex, rwmutex, cond or once", v)
}

// Get implements flag.Getter.
func (p *Primitive) Get() any {
	return *p
}

// String implements flag.Value.
func (p Primitive) String() string {
	if int(p) < 0 || int(p) >= len(primitiveNames) {
		panic(fmt.Sprintf("Invalid primitive %d", int(p)))
	}
	return primitiveNames[p]
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Primitive) UnmarshalText(b []byte) error {
	return p.Set(string(b))
}

// MarshalText implements encoding.TextMarshaler.
func (p Primitive) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
