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

package kernel

import (
	"context"
	"time"

	"lilium.dev/lilium/pkg/abi/lilium"
	"lilium.dev/lilium/pkg/kernel/futex"
	"lilium.dev/lilium/pkg/sys"
)

// eventState is the kernel-side registration of one blocking event.
type eventState struct {
	// ignored is true for optional events the kernel does not support.
	ignored bool

	// ready becomes readable when the event is satisfied.
	ready <-chan struct{}

	// finish is called once when the call completes. fired reports whether
	// the event was observed satisfied.
	finish func(fired bool)
}

// rejectOption records why option i was rejected and returns INVALID_OPTION.
func (k *Kernel) rejectOption(ctx context.Context, i int, ev *lilium.BlockingEvent, reason uint32) lilium.Result {
	c := lilium.ErrorContextInvalidOption{
		Reason:     reason,
		Index:      i,
		OptionType: ev.Head.Type,
	}
	if t := sys.ThreadFromContext(ctx); t != nil {
		t.SetErrorContext(c)
	}
	k.optionLog.Warningf("Rejected blocking event: %v", c)
	return lilium.INVALID_OPTION
}

// initEvent validates events[i] and registers it.
//
// Preconditions: every state before i has been registered and must be
// released by the caller on failure.
func (k *Kernel) initEvent(ctx context.Context, events []lilium.BlockingEvent, i int, st *eventState) lilium.Result {
	ev := &events[i]
	if !ev.Head.WellFormed() {
		return k.rejectOption(ctx, i, ev, lilium.INVALID_OPTION_REASON_BAD_HEAD)
	}
	if !k.events[ev.Head.Type] {
		if ev.Optional() {
			st.ignored = true
			return 0
		}
		return k.rejectOption(ctx, i, ev, lilium.INVALID_OPTION_REASON_UNKNOWN)
	}

	var r lilium.Result
	switch ev.Head.Type {
	case lilium.EVENT_AWAIT_ADDRESS:
		body, ok := ev.Body.(lilium.EventAwaitAddress)
		if !ok {
			return k.rejectOption(ctx, i, ev, lilium.INVALID_OPTION_REASON_TYPE_DEPENDANT)
		}
		r = k.initAwaitAddress(body, st)
	case lilium.EVENT_SLEEP_THREAD:
		body, ok := ev.Body.(lilium.EventSleepThread)
		if !ok || !body.Duration.Valid() {
			return k.rejectOption(ctx, i, ev, lilium.INVALID_OPTION_REASON_TYPE_DEPENDANT)
		}
		initTimer(body.Duration.ToTime(), st)
	case lilium.EVENT_SLEEP_THREAD_UNTIL:
		body, ok := ev.Body.(lilium.EventSleepThreadUntil)
		if !ok || !body.Deadline.Valid() {
			return k.rejectOption(ctx, i, ev, lilium.INVALID_OPTION_REASON_TYPE_DEPENDANT)
		}
		d, ok := k.until(body.Clock, body.Deadline)
		if !ok {
			if ev.Optional() {
				st.ignored = true
				return 0
			}
			return k.rejectOption(ctx, i, ev, lilium.INVALID_OPTION_REASON_TYPE_DEPENDANT)
		}
		initTimer(d, st)
	case lilium.EVENT_JOIN_THREAD:
		body, ok := ev.Body.(lilium.EventJoinThread)
		if !ok {
			return k.rejectOption(ctx, i, ev, lilium.INVALID_OPTION_REASON_TYPE_DEPENDANT)
		}
		r = k.initJoinThread(ctx, ev, body, st)
	}
	if r != 0 {
		return r
	}
	// The kernel honours this event.
	ev.SetOptional(false)
	return 0
}

func (k *Kernel) initAwaitAddress(body lilium.EventAwaitAddress, st *eventState) lilium.Result {
	w := futex.NewWaiter()
	if err := k.futexes.Enqueue(w, body.Address, body.IgnoreMask); err != nil {
		return lilium.INVALID_MEMORY
	}
	st.ready = w.C
	st.finish = func(bool) { k.futexes.WaitComplete(w) }
	return 0
}

func initTimer(d time.Duration, st *eventState) {
	ch := make(chan struct{})
	if d <= 0 {
		close(ch)
		st.ready = ch
		return
	}
	tm := time.AfterFunc(d, func() { close(ch) })
	st.ready = ch
	st.finish = func(bool) { tm.Stop() }
}

func (k *Kernel) initJoinThread(ctx context.Context, ev *lilium.BlockingEvent, body lilium.EventJoinThread, st *eventState) lilium.Result {
	t, r := k.lookupThread(body.Thread)
	if r != 0 {
		return r
	}
	if sys.ThreadFromContext(ctx) == t {
		return lilium.DEADLOCKED
	}
	st.ready = t.Done()
	st.finish = func(fired bool) {
		if !fired {
			return
		}
		body.ExitCode = t.ExitCode()
		ev.Body = body
		k.releaseThread(body.Thread)
	}
	return 0
}

// initEvents registers every event. On failure, the registered events are
// released and the error is returned.
func (k *Kernel) initEvents(ctx context.Context, events []lilium.BlockingEvent) ([]eventState, lilium.Result) {
	states := make([]eventState, len(events))
	for i := range events {
		if r := k.initEvent(ctx, events, i, &states[i]); r != 0 {
			releaseStates(states[:i], nil)
			return nil, r
		}
	}
	return states, 0
}

// releaseStates finishes every registered event.
func releaseStates(states []eventState, fired []bool) {
	for i := range states {
		if states[i].finish != nil {
			states[i].finish(fired != nil && fired[i])
		}
	}
}

// fanIn forwards the index of each state that becomes ready to the returned
// channel until stop is closed.
func fanIn(states []eventState, stop <-chan struct{}) <-chan int {
	out := make(chan int, len(states))
	for i := range states {
		if states[i].ignored {
			continue
		}
		go func(i int, ready <-chan struct{}) {
			select {
			case <-ready:
				out <- i
			case <-stop:
			}
		}(i, states[i].ready)
	}
	return out
}

// BlockOnEventsAll implements sys.Kernel.BlockOnEventsAll.
func (k *Kernel) BlockOnEventsAll(ctx context.Context, events []lilium.BlockingEvent) lilium.Result {
	if len(events) == 0 {
		if t := sys.ThreadFromContext(ctx); t != nil {
			t.TakeBlockingTimeout()
		}
		return 0
	}
	b, r := beginBlocking(ctx)
	if r != 0 {
		return r
	}
	defer b.release()

	states, r := k.initEvents(ctx, events)
	if r != 0 {
		return r
	}
	fired := make([]bool, len(states))
	defer releaseStates(states, fired)

	pending := 0
	for i := range states {
		if !states[i].ignored {
			pending++
		}
	}
	honoured := pending

	stop := make(chan struct{})
	defer close(stop)
	ready := fanIn(states, stop)
	for pending > 0 {
		select {
		case i := <-ready:
			fired[i] = true
			pending--
		case <-b.interrupts():
			return lilium.INTERRUPTED
		case <-b.timeout():
			return lilium.TIMEOUT
		case <-ctx.Done():
			return ctxResult(ctx)
		}
	}
	return lilium.Result(honoured)
}

// BlockOnEventsAny implements sys.Kernel.BlockOnEventsAny.
func (k *Kernel) BlockOnEventsAny(ctx context.Context, events []lilium.BlockingEvent) lilium.Result {
	if len(events) == 0 {
		return k.PauseThread(ctx)
	}
	b, r := beginBlocking(ctx)
	if r != 0 {
		return r
	}
	defer b.release()

	states, r := k.initEvents(ctx, events)
	if r != 0 {
		return r
	}
	fired := make([]bool, len(states))
	defer releaseStates(states, fired)

	live := false
	for i := range states {
		if !states[i].ignored {
			live = true
			break
		}
	}
	if !live {
		return lilium.DEADLOCKED
	}

	stop := make(chan struct{})
	defer close(stop)
	select {
	case i := <-fanIn(states, stop):
		fired[i] = true
		return lilium.Result(i)
	case <-b.interrupts():
		return lilium.INTERRUPTED
	case <-b.timeout():
		return lilium.TIMEOUT
	case <-ctx.Done():
		return ctxResult(ctx)
	}
}
