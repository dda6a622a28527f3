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

// Package event blocks a thread on several kernel events with a single
// system call.
//
// An Event describes one condition, such as a sleep or a thread join, and
// knows how to read its result back once the kernel returns. AllN and AnyN
// combine up to twelve events of different result types; AllSlice and
// AnySlice combine any number of events sharing one result type.
package event

import (
	"context"
	"fmt"

	"lilium.dev/lilium/pkg/abi/lilium"
	"lilium.dev/lilium/pkg/errors/liliumerr"
	_ "lilium.dev/lilium/pkg/kernel" // Default kernel.
	"lilium.dev/lilium/pkg/sys"
)

//go:generate go run lilium.dev/lilium/tools/go_eventlist -max 12 -output eventlist_autogen.go

// Event is a condition a thread can block on, resolving to a value of type V.
type Event[V any] interface {
	// Descriptor returns the kernel descriptor for the event.
	Descriptor() lilium.BlockingEvent

	// Result extracts the value from the descriptor after the kernel
	// reported the event as fired or, for All, after a successful call.
	Result(ev *lilium.BlockingEvent) V
}

// Maybe is the result of an Optional event. Ok is false if the kernel did
// not support the event.
type Maybe[V any] struct {
	Value V
	Ok    bool
}

type optional[V any] struct {
	e Event[V]
}

// Optional marks e as one the kernel may ignore if it does not support it.
// All does not wait for ignored events.
func Optional[V any](e Event[V]) Event[Maybe[V]] {
	return optional[V]{e}
}

// Descriptor implements Event.Descriptor.
func (o optional[V]) Descriptor() lilium.BlockingEvent {
	ev := o.e.Descriptor()
	ev.SetOptional(true)
	return ev
}

// Result implements Event.Result.
func (o optional[V]) Result(ev *lilium.BlockingEvent) Maybe[V] {
	// The kernel clears the flag on events it honoured.
	if ev.Optional() {
		return Maybe[V]{}
	}
	return Maybe[V]{Value: o.e.Result(ev), Ok: true}
}

// blockAll calls BlockOnEventsAll.
func blockAll(ctx context.Context, evs []lilium.BlockingEvent) error {
	if r := sys.BlockOnEventsAll(ctx, evs); r < 0 {
		return liliumerr.FromResult(r)
	}
	return nil
}

// blockAny calls BlockOnEventsAny and returns the index of the event that
// fired.
func blockAny(ctx context.Context, evs []lilium.BlockingEvent) (int, error) {
	r := sys.BlockOnEventsAny(ctx, evs)
	if r < 0 {
		return 0, liliumerr.FromResult(r)
	}
	if int64(r) >= int64(len(evs)) {
		badIndex(int(r), len(evs))
	}
	return int(r), nil
}

// badIndex panics on an index the kernel should never report.
func badIndex(i, n int) {
	panic(fmt.Sprintf("event: kernel reported event %d of %d", i, n))
}

// All0 returns at once; all of nothing has happened. It still consumes the
// thread's blocking timeout.
func All0(ctx context.Context) error {
	return blockAll(ctx, nil)
}

// Any0 blocks until the thread is interrupted or its blocking timeout
// expires, and returns the corresponding error.
func Any0(ctx context.Context) error {
	_, err := blockAny(ctx, nil)
	return err
}

// AllSlice blocks until every event has fired and returns their values in
// order.
func AllSlice[V any](ctx context.Context, events []Event[V]) ([]V, error) {
	evs := make([]lilium.BlockingEvent, len(events))
	for i, e := range events {
		evs[i] = e.Descriptor()
	}
	if err := blockAll(ctx, evs); err != nil {
		return nil, err
	}
	out := make([]V, len(events))
	for i, e := range events {
		out[i] = e.Result(&evs[i])
	}
	return out, nil
}

// AnySlice blocks until one event fires and returns its index and value. An
// empty slice blocks until interrupted, as Any0.
func AnySlice[V any](ctx context.Context, events []Event[V]) (int, V, error) {
	evs := make([]lilium.BlockingEvent, len(events))
	for i, e := range events {
		evs[i] = e.Descriptor()
	}
	var zero V
	i, err := blockAny(ctx, evs)
	if err != nil {
		return 0, zero, err
	}
	return i, events[i].Result(&evs[i]), nil
}
