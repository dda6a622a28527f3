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

// go_eventlist generates the fixed-arity AllN and AnyN functions of package
// event, which combine events of different result types.
//
// It is run through go:generate in pkg/event.
package main

import (
	"flag"
	"fmt"
	"os"
)

var (
	pkg      = flag.String("pkg", "event", "output package")
	output   = flag.String("output", "", "output file")
	maxArity = flag.Int("max", 12, "largest arity to generate")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -output <file> [-max N] [-pkg name]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *output == "" {
		flag.Usage()
		fmt.Fprint(os.Stderr, "Flag -output must be provided.\n")
		os.Exit(1)
	}
	if *maxArity < 1 || *maxArity > len(typeParams) {
		fmt.Fprintf(os.Stderr, "Flag -max must be between 1 and %d.\n", len(typeParams))
		os.Exit(1)
	}

	src, err := generate(*pkg, *maxArity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, src, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't write output file %q: %v\n", *output, err)
		os.Exit(1)
	}
}
