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

// Package cli is the main entrypoint for lilium-sync.
package cli

import (
	"context"
	"flag"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/google/subcommands"
	"lilium.dev/lilium/cmd/lilium-sync/cmd"
	"lilium.dev/lilium/cmd/lilium-sync/config"
	"lilium.dev/lilium/pkg/kernel"
	"lilium.dev/lilium/pkg/log"
)

// Main is the main entrypoint.
func Main() {
	// Register all commands.
	forEachCmd(subcommands.Register)

	// Register with the main command line.
	config.RegisterFlags(flag.CommandLine)

	// All subcommands must be registered before flag parsing.
	flag.Parse()

	// Create a new Config from the flags.
	conf, err := config.NewFromFlags(flag.CommandLine)
	if err != nil {
		cmd.Fatalf("%v", err)
	}

	subcommand := flag.CommandLine.Arg(0)

	if conf.Debug {
		log.SetLevel(log.Debug)
	}

	var logFile io.Writer = os.Stderr
	if conf.LogFilename != "" {
		f, err := log.OpenFile(conf.LogFilename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, log.CommandFileOpts{
			Command:   subcommand,
			Timestamp: time.Now(),
		})
		if err != nil {
			cmd.Fatalf("error opening log file %q: %v", conf.LogFilename, err)
		}
		logFile = f
	}
	log.SetTarget(newEmitter(conf.LogFormat, logFile))

	const delimString = `**************** lilium-sync ****************`
	log.Infof(delimString)
	log.Infof("%s, %s, %d CPUs, %s, PID %d", runtime.Version(), runtime.GOARCH, runtime.NumCPU(), runtime.GOOS, os.Getpid())
	log.Infof("Args: %v", os.Args)
	conf.Log()
	log.Infof(delimString)

	k := kernel.Default()
	log.Debugf("Installed host kernel %p", k)

	// Call the subcommand and pass in the configuration.
	start := time.Now()
	subcmdCode := subcommands.Execute(context.Background(), conf)
	log.Infof("Command %q exited with %v after %v", subcommand, subcmdCode, time.Since(start))
	if f, ok := logFile.(*os.File); ok && f != os.Stderr {
		f.Close()
	}
	os.Exit(int(subcmdCode))
}

// forEachCmd invokes the passed callback for each command supported by
// lilium-sync.
func forEachCmd(cb func(cmd subcommands.Command, group string)) {
	// Help and flags commands are generated automatically.
	cb(subcommands.HelpCommand(), "")
	cb(subcommands.FlagsCommand(), "")
	cb(subcommands.CommandsCommand(), "")

	cb(new(cmd.Stress), "")
	cb(new(cmd.Sleep), "")

	const infoGroup = "info"
	cb(new(cmd.Layout), infoGroup)
	cb(new(cmd.Errors), infoGroup)
}

func newEmitter(format config.LogFormat, logFile io.Writer) log.Emitter {
	switch format {
	case config.LogFormatText:
		return log.GoogleEmitter{Emitter: &log.Writer{Next: logFile}}
	case config.LogFormatJSON:
		return log.JSONEmitter{Writer: &log.Writer{Next: logFile}}
	}
	cmd.Fatalf("invalid log format %q, must be 'text' or 'json'", format)
	panic("unreachable")
}
