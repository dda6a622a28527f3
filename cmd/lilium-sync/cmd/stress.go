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
	"sync/atomic"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
	"lilium.dev/lilium/cmd/lilium-sync/config"
	"lilium.dev/lilium/pkg/event"
	"lilium.dev/lilium/pkg/log"
	"lilium.dev/lilium/pkg/sync"
	"lilium.dev/lilium/pkg/sys"
)

// Stress implements subcommands.Command for the "stress" command.
type Stress struct {
	threads   int
	iters     int
	primitive config.Primitive
}

// Name implements subcommands.Command.Name.
func (*Stress) Name() string {
	return "stress"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Stress) Synopsis() string {
	return "load test a synchronization primitive and check its invariants"
}

// Usage implements subcommands.Command.Usage.
func (*Stress) Usage() string {
	return `stress [flags] - run -threads workers for -iters iterations each against
one primitive, counting invariant violations. Defaults come from the [stress]
section of the --config file.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (s *Stress) SetFlags(f *flag.FlagSet) {
	f.IntVar(&s.threads, "threads", 0, "number of concurrent workers. Zero uses the configured value.")
	f.IntVar(&s.iters, "iters", 0, "iterations per worker. Zero uses the configured value.")
	f.Var(&s.primitive, "primitive", "primitive to exercise: mutex, rwmutex, cond or once.")
}

// Execute implements subcommands.Command.Execute.
func (s *Stress) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf := args[0].(*config.Config)

	params := conf.Stress
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "threads":
			params.Threads = s.threads
		case "iters":
			params.Iterations = s.iters
		case "primitive":
			params.Primitive = s.primitive
		}
	})
	if params.Threads <= 0 || params.Iterations <= 0 {
		return Errorf("-threads and -iters must be positive")
	}

	log.Infof("Stressing %s with %d threads, %d iterations each", params.Primitive, params.Threads, params.Iterations)
	res, err := RunStress(ctx, params)
	if err != nil {
		return Errorf("stress failed: %v", err)
	}
	log.Infof("Stress %s: %d operations, %d violations in %v", params.Primitive, res.Operations, res.Violations, res.Elapsed)
	fmt.Printf("%s: %d ops in %v (%.0f ops/s), %d violations\n",
		params.Primitive, res.Operations, res.Elapsed, res.Throughput(), res.Violations)
	if res.Violations != 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// StressResult summarizes a stress run.
type StressResult struct {
	Operations int64
	Violations int64
	Elapsed    time.Duration
}

// Throughput returns operations per second.
func (r StressResult) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Operations) / r.Elapsed.Seconds()
}

// RunStress exercises params.Primitive and reports the operations performed
// and the invariant violations observed.
func RunStress(ctx context.Context, params config.Stress) (StressResult, error) {
	var run func(context.Context, config.Stress) (ops, violations int64, err error)
	switch params.Primitive {
	case config.PrimitiveMutex:
		run = stressMutex
	case config.PrimitiveRWMutex:
		run = stressRWMutex
	case config.PrimitiveCond:
		run = stressCond
	case config.PrimitiveOnce:
		run = stressOnce
	default:
		return StressResult{}, fmt.Errorf("unknown primitive %d", int(params.Primitive))
	}
	start := time.Now()
	ops, violations, err := run(ctx, params)
	return StressResult{Operations: ops, Violations: violations, Elapsed: time.Since(start)}, err
}

// stressMutex checks that at most one worker is ever inside the critical
// section and that no increment of the shared counter is lost.
func stressMutex(ctx context.Context, p config.Stress) (int64, int64, error) {
	var (
		m          sync.Mutex
		inside     atomic.Int32
		violations atomic.Int64
		counter    int64
	)
	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < p.Threads; i++ {
		g.Go(func() error {
			for j := 0; j < p.Iterations; j++ {
				m.Lock()
				if inside.Add(1) != 1 {
					violations.Add(1)
				}
				counter++
				inside.Add(-1)
				m.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	want := int64(p.Threads) * int64(p.Iterations)
	v := violations.Load()
	if counter != want {
		v += want - counter
	}
	return want, v, nil
}

// stressRWMutex runs one writer for every four workers. Readers check that no
// writer is active, writers that nobody else is.
func stressRWMutex(ctx context.Context, p config.Stress) (int64, int64, error) {
	var (
		rw         sync.RWMutex
		readers    atomic.Int32
		writers    atomic.Int32
		violations atomic.Int64
	)
	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < p.Threads; i++ {
		writer := i%4 == 0
		g.Go(func() error {
			for j := 0; j < p.Iterations; j++ {
				if writer {
					rw.Lock()
					if writers.Add(1) != 1 || readers.Load() != 0 {
						violations.Add(1)
					}
					writers.Add(-1)
					rw.Unlock()
					continue
				}
				rw.RLock()
				readers.Add(1)
				if writers.Load() != 0 {
					violations.Add(1)
				}
				readers.Add(-1)
				rw.RUnlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	return int64(p.Threads) * int64(p.Iterations), violations.Load(), nil
}

// stressCond pairs producers and consumers on a counting queue guarded by a
// Mutex. Every produced item must be consumed exactly once.
func stressCond(ctx context.Context, p config.Stress) (int64, int64, error) {
	var (
		m        sync.Mutex
		queued   int
		consumed atomic.Int64
	)
	c := sync.NewCond(&m)
	pairs := max(p.Threads/2, 1)

	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < pairs; i++ {
		g.Go(func() error {
			for j := 0; j < p.Iterations; j++ {
				m.Lock()
				queued++
				m.Unlock()
				c.Signal()
			}
			return nil
		})
		g.Go(func() error {
			for j := 0; j < p.Iterations; j++ {
				m.Lock()
				for queued == 0 {
					c.Wait()
				}
				queued--
				m.Unlock()
				consumed.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	want := int64(pairs) * int64(p.Iterations)
	var violations int64
	if got := consumed.Load(); got != want {
		violations = want - got
	}
	if queued != 0 {
		violations += int64(queued)
	}
	return 2 * want, violations, nil
}

// stressOnce races kernel threads on a fresh OnceLock every iteration and
// joins them with a JoinThread event each. A thread exits with 1 if it saw a
// value other than the one stored by the single initializer.
func stressOnce(ctx context.Context, p config.Stress) (int64, int64, error) {
	ctx, _ = sys.EnsureThread(ctx)
	var (
		violations int64
		inits      atomic.Int64
	)
	joins := make([]event.Event[int64], p.Threads)
	for j := 0; j < p.Iterations; j++ {
		var o sync.OnceLock[int]
		for i := range joins {
			t, r := sys.StartThread(ctx, func(context.Context) int64 {
				v := o.GetOrInit(func() int {
					inits.Add(1)
					return j
				})
				if v != j {
					return 1
				}
				return 0
			})
			if r != 0 {
				return 0, 0, fmt.Errorf("starting thread: %v", r)
			}
			joins[i] = event.JoinThread(t.Handle())
		}
		codes, err := event.AllSlice(ctx, joins)
		if err != nil {
			return 0, 0, fmt.Errorf("joining threads: %w", err)
		}
		for _, code := range codes {
			violations += code
		}
	}
	if n := inits.Load(); n != int64(p.Iterations) {
		violations += n - int64(p.Iterations)
	}
	return int64(p.Threads) * int64(p.Iterations), violations, nil
}
