// Automatically generated event list functions. See tools/go_eventlist.

package event

import (
	"context"

	"lilium.dev/lilium/pkg/abi/lilium"
)

// Values1 holds the results of All1, in argument order.
type Values1[A any] struct {
	V0 A
}

// All1 blocks until every event has fired and returns their values.
func All1[A any](ctx context.Context, e0 Event[A]) (Values1[A], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
	}
	var out Values1[A]
	if err := blockAll(ctx, evs[:]); err != nil {
		return out, err
	}
	out.V0 = e0.Result(&evs[0])
	return out, nil
}

// OneOf1 holds the result of Any1: the index of the event that fired and
// its value. Only the field for that index is set.
type OneOf1[A any] struct {
	Index int
	V0    A
}

// Any1 blocks until one event fires and returns which, with its value.
func Any1[A any](ctx context.Context, e0 Event[A]) (OneOf1[A], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
	}
	var out OneOf1[A]
	i, err := blockAny(ctx, evs[:])
	if err != nil {
		return out, err
	}
	out.Index = i
	switch i {
	case 0:
		out.V0 = e0.Result(&evs[0])
	}
	return out, nil
}

// Values2 holds the results of All2, in argument order.
type Values2[A, B any] struct {
	V0 A
	V1 B
}

// All2 blocks until every event has fired and returns their values.
func All2[A, B any](ctx context.Context, e0 Event[A], e1 Event[B]) (Values2[A, B], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
	}
	var out Values2[A, B]
	if err := blockAll(ctx, evs[:]); err != nil {
		return out, err
	}
	out.V0 = e0.Result(&evs[0])
	out.V1 = e1.Result(&evs[1])
	return out, nil
}

// OneOf2 holds the result of Any2: the index of the event that fired and
// its value. Only the field for that index is set.
type OneOf2[A, B any] struct {
	Index int
	V0    A
	V1    B
}

// Any2 blocks until one event fires and returns which, with its value.
func Any2[A, B any](ctx context.Context, e0 Event[A], e1 Event[B]) (OneOf2[A, B], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
	}
	var out OneOf2[A, B]
	i, err := blockAny(ctx, evs[:])
	if err != nil {
		return out, err
	}
	out.Index = i
	switch i {
	case 0:
		out.V0 = e0.Result(&evs[0])
	case 1:
		out.V1 = e1.Result(&evs[1])
	}
	return out, nil
}

// Values3 holds the results of All3, in argument order.
type Values3[A, B, C any] struct {
	V0 A
	V1 B
	V2 C
}

// All3 blocks until every event has fired and returns their values.
func All3[A, B, C any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C]) (Values3[A, B, C], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
	}
	var out Values3[A, B, C]
	if err := blockAll(ctx, evs[:]); err != nil {
		return out, err
	}
	out.V0 = e0.Result(&evs[0])
	out.V1 = e1.Result(&evs[1])
	out.V2 = e2.Result(&evs[2])
	return out, nil
}

// OneOf3 holds the result of Any3: the index of the event that fired and
// its value. Only the field for that index is set.
type OneOf3[A, B, C any] struct {
	Index int
	V0    A
	V1    B
	V2    C
}

// Any3 blocks until one event fires and returns which, with its value.
func Any3[A, B, C any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C]) (OneOf3[A, B, C], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
	}
	var out OneOf3[A, B, C]
	i, err := blockAny(ctx, evs[:])
	if err != nil {
		return out, err
	}
	out.Index = i
	switch i {
	case 0:
		out.V0 = e0.Result(&evs[0])
	case 1:
		out.V1 = e1.Result(&evs[1])
	case 2:
		out.V2 = e2.Result(&evs[2])
	}
	return out, nil
}

// Values4 holds the results of All4, in argument order.
type Values4[A, B, C, D any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
}

// All4 blocks until every event has fired and returns their values.
func All4[A, B, C, D any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D]) (Values4[A, B, C, D], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
	}
	var out Values4[A, B, C, D]
	if err := blockAll(ctx, evs[:]); err != nil {
		return out, err
	}
	out.V0 = e0.Result(&evs[0])
	out.V1 = e1.Result(&evs[1])
	out.V2 = e2.Result(&evs[2])
	out.V3 = e3.Result(&evs[3])
	return out, nil
}

// OneOf4 holds the result of Any4: the index of the event that fired and
// its value. Only the field for that index is set.
type OneOf4[A, B, C, D any] struct {
	Index int
	V0    A
	V1    B
	V2    C
	V3    D
}

// Any4 blocks until one event fires and returns which, with its value.
func Any4[A, B, C, D any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D]) (OneOf4[A, B, C, D], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
	}
	var out OneOf4[A, B, C, D]
	i, err := blockAny(ctx, evs[:])
	if err != nil {
		return out, err
	}
	out.Index = i
	switch i {
	case 0:
		out.V0 = e0.Result(&evs[0])
	case 1:
		out.V1 = e1.Result(&evs[1])
	case 2:
		out.V2 = e2.Result(&evs[2])
	case 3:
		out.V3 = e3.Result(&evs[3])
	}
	return out, nil
}

// Values5 holds the results of All5, in argument order.
type Values5[A, B, C, D, E any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
}

// All5 blocks until every event has fired and returns their values.
func All5[A, B, C, D, E any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E]) (Values5[A, B, C, D, E], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
	}
	var out Values5[A, B, C, D, E]
	if err := blockAll(ctx, evs[:]); err != nil {
		return out, err
	}
	out.V0 = e0.Result(&evs[0])
	out.V1 = e1.Result(&evs[1])
	out.V2 = e2.Result(&evs[2])
	out.V3 = e3.Result(&evs[3])
	out.V4 = e4.Result(&evs[4])
	return out, nil
}

// OneOf5 holds the result of Any5: the index of the event that fired and
// its value. Only the field for that index is set.
type OneOf5[A, B, C, D, E any] struct {
	Index int
	V0    A
	V1    B
	V2    C
	V3    D
	V4    E
}

// Any5 blocks until one event fires and returns which, with its value.
func Any5[A, B, C, D, E any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E]) (OneOf5[A, B, C, D, E], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
	}
	var out OneOf5[A, B, C, D, E]
	i, err := blockAny(ctx, evs[:])
	if err != nil {
		return out, err
	}
	out.Index = i
	switch i {
	case 0:
		out.V0 = e0.Result(&evs[0])
	case 1:
		out.V1 = e1.Result(&evs[1])
	case 2:
		out.V2 = e2.Result(&evs[2])
	case 3:
		out.V3 = e3.Result(&evs[3])
	case 4:
		out.V4 = e4.Result(&evs[4])
	}
	return out, nil
}

// Values6 holds the results of All6, in argument order.
type Values6[A, B, C, D, E, F any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
	V5 F
}

// All6 blocks until every event has fired and returns their values.
func All6[A, B, C, D, E, F any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F]) (Values6[A, B, C, D, E, F], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
	}
	var out Values6[A, B, C, D, E, F]
	if err := blockAll(ctx, evs[:]); err != nil {
		return out, err
	}
	out.V0 = e0.Result(&evs[0])
	out.V1 = e1.Result(&evs[1])
	out.V2 = e2.Result(&evs[2])
	out.V3 = e3.Result(&evs[3])
	out.V4 = e4.Result(&evs[4])
	out.V5 = e5.Result(&evs[5])
	return out, nil
}

// OneOf6 holds the result of Any6: the index of the event that fired and
// its value. Only the field for that index is set.
type OneOf6[A, B, C, D, E, F any] struct {
	Index int
	V0    A
	V1    B
	V2    C
	V3    D
	V4    E
	V5    F
}

// Any6 blocks until one event fires and returns which, with its value.
func Any6[A, B, C, D, E, F any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F]) (OneOf6[A, B, C, D, E, F], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
	}
	var out OneOf6[A, B, C, D, E, F]
	i, err := blockAny(ctx, evs[:])
	if err != nil {
		return out, err
	}
	out.Index = i
	switch i {
	case 0:
		out.V0 = e0.Result(&evs[0])
	case 1:
		out.V1 = e1.Result(&evs[1])
	case 2:
		out.V2 = e2.Result(&evs[2])
	case 3:
		out.V3 = e3.Result(&evs[3])
	case 4:
		out.V4 = e4.Result(&evs[4])
	case 5:
		out.V5 = e5.Result(&evs[5])
	}
	return out, nil
}

// Values7 holds the results of All7, in argument order.
type Values7[A, B, C, D, E, F, G any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
	V5 F
	V6 G
}

// All7 blocks until every event has fired and returns their values.
func All7[A, B, C, D, E, F, G any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F], e6 Event[G]) (Values7[A, B, C, D, E, F, G], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
		e6.Descriptor(),
	}
	var out Values7[A, B, C, D, E, F, G]
	if err := blockAll(ctx, evs[:]); err != nil {
		return out, err
	}
	out.V0 = e0.Result(&evs[0])
	out.V1 = e1.Result(&evs[1])
	out.V2 = e2.Result(&evs[2])
	out.V3 = e3.Result(&evs[3])
	out.V4 = e4.Result(&evs[4])
	out.V5 = e5.Result(&evs[5])
	out.V6 = e6.Result(&evs[6])
	return out, nil
}

// OneOf7 holds the result of Any7: the index of the event that fired and
// its value. Only the field for that index is set.
type OneOf7[A, B, C, D, E, F, G any] struct {
	Index int
	V0    A
	V1    B
	V2    C
	V3    D
	V4    E
	V5    F
	V6    G
}

// Any7 blocks until one event fires and returns which, with its value.
func Any7[A, B, C, D, E, F, G any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F], e6 Event[G]) (OneOf7[A, B, C, D, E, F, G], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
		e6.Descriptor(),
	}
	var out OneOf7[A, B, C, D, E, F, G]
	i, err := blockAny(ctx, evs[:])
	if err != nil {
		return out, err
	}
	out.Index = i
	switch i {
	case 0:
		out.V0 = e0.Result(&evs[0])
	case 1:
		out.V1 = e1.Result(&evs[1])
	case 2:
		out.V2 = e2.Result(&evs[2])
	case 3:
		out.V3 = e3.Result(&evs[3])
	case 4:
		out.V4 = e4.Result(&evs[4])
	case 5:
		out.V5 = e5.Result(&evs[5])
	case 6:
		out.V6 = e6.Result(&evs[6])
	}
	return out, nil
}

// Values8 holds the results of All8, in argument order.
type Values8[A, B, C, D, E, F, G, H any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
	V5 F
	V6 G
	V7 H
}

// All8 blocks until every event has fired and returns their values.
func All8[A, B, C, D, E, F, G, H any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F], e6 Event[G], e7 Event[H]) (Values8[A, B, C, D, E, F, G, H], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
		e6.Descriptor(),
		e7.Descriptor(),
	}
	var out Values8[A, B, C, D, E, F, G, H]
	if err := blockAll(ctx, evs[:]); err != nil {
		return out, err
	}
	out.V0 = e0.Result(&evs[0])
	out.V1 = e1.Result(&evs[1])
	out.V2 = e2.Result(&evs[2])
	out.V3 = e3.Result(&evs[3])
	out.V4 = e4.Result(&evs[4])
	out.V5 = e5.Result(&evs[5])
	out.V6 = e6.Result(&evs[6])
	out.V7 = e7.Result(&evs[7])
	return out, nil
}

// OneOf8 holds the result of Any8: the index of the event that fired and
// its value. Only the field for that index is set.
type OneOf8[A, B, C, D, E, F, G, H any] struct {
	Index int
	V0    A
	V1    B
	V2    C
	V3    D
	V4    E
	V5    F
	V6    G
	V7    H
}

// Any8 blocks until one event fires and returns which, with its value.
func Any8[A, B, C, D, E, F, G, H any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F], e6 Event[G], e7 Event[H]) (OneOf8[A, B, C, D, E, F, G, H], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
		e6.Descriptor(),
		e7.Descriptor(),
	}
	var out OneOf8[A, B, C, D, E, F, G, H]
	i, err := blockAny(ctx, evs[:])
	if err != nil {
		return out, err
	}
	out.Index = i
	switch i {
	case 0:
		out.V0 = e0.Result(&evs[0])
	case 1:
		out.V1 = e1.Result(&evs[1])
	case 2:
		out.V2 = e2.Result(&evs[2])
	case 3:
		out.V3 = e3.Result(&evs[3])
	case 4:
		out.V4 = e4.Result(&evs[4])
	case 5:
		out.V5 = e5.Result(&evs[5])
	case 6:
		out.V6 = e6.Result(&evs[6])
	case 7:
		out.V7 = e7.Result(&evs[7])
	}
	return out, nil
}

// Values9 holds the results of All9, in argument order.
type Values9[A, B, C, D, E, F, G, H, I any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
	V5 F
	V6 G
	V7 H
	V8 I
}

// All9 blocks until every event has fired and returns their values.
func All9[A, B, C, D, E, F, G, H, I any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F], e6 Event[G], e7 Event[H], e8 Event[I]) (Values9[A, B, C, D, E, F, G, H, I], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
		e6.Descriptor(),
		e7.Descriptor(),
		e8.Descriptor(),
	}
	var out Values9[A, B, C, D, E, F, G, H, I]
	if err := blockAll(ctx, evs[:]); err != nil {
		return out, err
	}
	out.V0 = e0.Result(&evs[0])
	out.V1 = e1.Result(&evs[1])
	out.V2 = e2.Result(&evs[2])
	out.V3 = e3.Result(&evs[3])
	out.V4 = e4.Result(&evs[4])
	out.V5 = e5.Result(&evs[5])
	out.V6 = e6.Result(&evs[6])
	out.V7 = e7.Result(&evs[7])
	out.V8 = e8.Result(&evs[8])
	return out, nil
}

// OneOf9 holds the result of Any9: the index of the event that fired and
// its value. Only the field for that index is set.
type OneOf9[A, B, C, D, E, F, G, H, I any] struct {
	Index int
	V0    A
	V1    B
	V2    C
	V3    D
	V4    E
	V5    F
	V6    G
	V7    H
	V8    I
}

// Any9 blocks until one event fires and returns which, with its value.
func Any9[A, B, C, D, E, F, G, H, I any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F], e6 Event[G], e7 Event[H], e8 Event[I]) (OneOf9[A, B, C, D, E, F, G, H, I], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
		e6.Descriptor(),
		e7.Descriptor(),
		e8.Descriptor(),
	}
	var out OneOf9[A, B, C, D, E, F, G, H, I]
	i, err := blockAny(ctx, evs[:])
	if err != nil {
		return out, err
	}
	out.Index = i
	switch i {
	case 0:
		out.V0 = e0.Result(&evs[0])
	case 1:
		out.V1 = e1.Result(&evs[1])
	case 2:
		out.V2 = e2.Result(&evs[2])
	case 3:
		out.V3 = e3.Result(&evs[3])
	case 4:
		out.V4 = e4.Result(&evs[4])
	case 5:
		out.V5 = e5.Result(&evs[5])
	case 6:
		out.V6 = e6.Result(&evs[6])
	case 7:
		out.V7 = e7.Result(&evs[7])
	case 8:
		out.V8 = e8.Result(&evs[8])
	}
	return out, nil
}

// Values10 holds the results of All10, in argument order.
type Values10[A, B, C, D, E, F, G, H, I, J any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
	V5 F
	V6 G
	V7 H
	V8 I
	V9 J
}

// All10 blocks until every event has fired and returns their values.
func All10[A, B, C, D, E, F, G, H, I, J any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F], e6 Event[G], e7 Event[H], e8 Event[I], e9 Event[J]) (Values10[A, B, C, D, E, F, G, H, I, J], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
		e6.Descriptor(),
		e7.Descriptor(),
		e8.Descriptor(),
		e9.Descriptor(),
	}
	var out Values10[A, B, C, D, E, F, G, H, I, J]
	if err := blockAll(ctx, evs[:]); err != nil {
		return out, err
	}
	out.V0 = e0.Result(&evs[0])
	out.V1 = e1.Result(&evs[1])
	out.V2 = e2.Result(&evs[2])
	out.V3 = e3.Result(&evs[3])
	out.V4 = e4.Result(&evs[4])
	out.V5 = e5.Result(&evs[5])
	out.V6 = e6.Result(&evs[6])
	out.V7 = e7.Result(&evs[7])
	out.V8 = e8.Result(&evs[8])
	out.V9 = e9.Result(&evs[9])
	return out, nil
}

// OneOf10 holds the result of Any10: the index of the event that fired and
// its value. Only the field for that index is set.
type OneOf10[A, B, C, D, E, F, G, H, I, J any] struct {
	Index int
	V0    A
	V1    B
	V2    C
	V3    D
	V4    E
	V5    F
	V6    G
	V7    H
	V8    I
	V9    J
}

// Any10 blocks until one event fires and returns which, with its value.
func Any10[A, B, C, D, E, F, G, H, I, J any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F], e6 Event[G], e7 Event[H], e8 Event[I], e9 Event[J]) (OneOf10[A, B, C, D, E, F, G, H, I, J], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
		e6.Descriptor(),
		e7.Descriptor(),
		e8.Descriptor(),
		e9.Descriptor(),
	}
	var out OneOf10[A, B, C, D, E, F, G, H, I, J]
	i, err := blockAny(ctx, evs[:])
	if err != nil {
		return out, err
	}
	out.Index = i
	switch i {
	case 0:
		out.V0 = e0.Result(&evs[0])
	case 1:
		out.V1 = e1.Result(&evs[1])
	case 2:
		out.V2 = e2.Result(&evs[2])
	case 3:
		out.V3 = e3.Result(&evs[3])
	case 4:
		out.V4 = e4.Result(&evs[4])
	case 5:
		out.V5 = e5.Result(&evs[5])
	case 6:
		out.V6 = e6.Result(&evs[6])
	case 7:
		out.V7 = e7.Result(&evs[7])
	case 8:
		out.V8 = e8.Result(&evs[8])
	case 9:
		out.V9 = e9.Result(&evs[9])
	}
	return out, nil
}

// Values11 holds the results of All11, in argument order.
type Values11[A, B, C, D, E, F, G, H, I, J, K any] struct {
	V0  A
	V1  B
	V2  C
	V3  D
	V4  E
	V5  F
	V6  G
	V7  H
	V8  I
	V9  J
	V10 K
}

// All11 blocks until every event has fired and returns their values.
func All11[A, B, C, D, E, F, G, H, I, J, K any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F], e6 Event[G], e7 Event[H], e8 Event[I], e9 Event[J], e10 Event[K]) (Values11[A, B, C, D, E, F, G, H, I, J, K], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
		e6.Descriptor(),
		e7.Descriptor(),
		e8.Descriptor(),
		e9.Descriptor(),
		e10.Descriptor(),
	}
	var out Values11[A, B, C, D, E, F, G, H, I, J, K]
	if err := blockAll(ctx, evs[:]); err != nil {
		return out, err
	}
	out.V0 = e0.Result(&evs[0])
	out.V1 = e1.Result(&evs[1])
	out.V2 = e2.Result(&evs[2])
	out.V3 = e3.Result(&evs[3])
	out.V4 = e4.Result(&evs[4])
	out.V5 = e5.Result(&evs[5])
	out.V6 = e6.Result(&evs[6])
	out.V7 = e7.Result(&evs[7])
	out.V8 = e8.Result(&evs[8])
	out.V9 = e9.Result(&evs[9])
	out.V10 = e10.Result(&evs[10])
	return out, nil
}

// OneOf11 holds the result of Any11: the index of the event that fired and
// its value. Only the field for that index is set.
type OneOf11[A, B, C, D, E, F, G, H, I, J, K any] struct {
	Index int
	V0    A
	V1    B
	V2    C
	V3    D
	V4    E
	V5    F
	V6    G
	V7    H
	V8    I
	V9    J
	V10   K
}

// Any11 blocks until one event fires and returns which, with its value.
func Any11[A, B, C, D, E, F, G, H, I, J, K any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F], e6 Event[G], e7 Event[H], e8 Event[I], e9 Event[J], e10 Event[K]) (OneOf11[A, B, C, D, E, F, G, H, I, J, K], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
		e6.Descriptor(),
		e7.Descriptor(),
		e8.Descriptor(),
		e9.Descriptor(),
		e10.Descriptor(),
	}
	var out OneOf11[A, B, C, D, E, F, G, H, I, J, K]
	i, err := blockAny(ctx, evs[:])
	if err != nil {
		return out, err
	}
	out.Index = i
	switch i {
	case 0:
		out.V0 = e0.Result(&evs[0])
	case 1:
		out.V1 = e1.Result(&evs[1])
	case 2:
		out.V2 = e2.Result(&evs[2])
	case 3:
		out.V3 = e3.Result(&evs[3])
	case 4:
		out.V4 = e4.Result(&evs[4])
	case 5:
		out.V5 = e5.Result(&evs[5])
	case 6:
		out.V6 = e6.Result(&evs[6])
	case 7:
		out.V7 = e7.Result(&evs[7])
	case 8:
		out.V8 = e8.Result(&evs[8])
	case 9:
		out.V9 = e9.Result(&evs[9])
	case 10:
		out.V10 = e10.Result(&evs[10])
	}
	return out, nil
}

// Values12 holds the results of All12, in argument order.
type Values12[A, B, C, D, E, F, G, H, I, J, K, L any] struct {
	V0  A
	V1  B
	V2  C
	V3  D
	V4  E
	V5  F
	V6  G
	V7  H
	V8  I
	V9  J
	V10 K
	V11 L
}

// All12 blocks until every event has fired and returns their values.
func All12[A, B, C, D, E, F, G, H, I, J, K, L any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F], e6 Event[G], e7 Event[H], e8 Event[I], e9 Event[J], e10 Event[K], e11 Event[L]) (Values12[A, B, C, D, E, F, G, H, I, J, K, L], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
		e6.Descriptor(),
		e7.Descriptor(),
		e8.Descriptor(),
		e9.Descriptor(),
		e10.Descriptor(),
		e11.Descriptor(),
	}
	var out Values12[A, B, C, D, E, F, G, H, I, J, K, L]
	if err := blockAll(ctx, evs[:]); err != nil {
		return out, err
	}
	out.V0 = e0.Result(&evs[0])
	out.V1 = e1.Result(&evs[1])
	out.V2 = e2.Result(&evs[2])
	out.V3 = e3.Result(&evs[3])
	out.V4 = e4.Result(&evs[4])
	out.V5 = e5.Result(&evs[5])
	out.V6 = e6.Result(&evs[6])
	out.V7 = e7.Result(&evs[7])
	out.V8 = e8.Result(&evs[8])
	out.V9 = e9.Result(&evs[9])
	out.V10 = e10.Result(&evs[10])
	out.V11 = e11.Result(&evs[11])
	return out, nil
}

// OneOf12 holds the result of Any12: the index of the event that fired and
// its value. Only the field for that index is set.
type OneOf12[A, B, C, D, E, F, G, H, I, J, K, L any] struct {
	Index int
	V0    A
	V1    B
	V2    C
	V3    D
	V4    E
	V5    F
	V6    G
	V7    H
	V8    I
	V9    J
	V10   K
	V11   L
}

// Any12 blocks until one event fires and returns which, with its value.
func Any12[A, B, C, D, E, F, G, H, I, J, K, L any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C], e3 Event[D], e4 Event[E], e5 Event[F], e6 Event[G], e7 Event[H], e8 Event[I], e9 Event[J], e10 Event[K], e11 Event[L]) (OneOf12[A, B, C, D, E, F, G, H, I, J, K, L], error) {
	evs := [...]lilium.BlockingEvent{
		e0.Descriptor(),
		e1.Descriptor(),
		e2.Descriptor(),
		e3.Descriptor(),
		e4.Descriptor(),
		e5.Descriptor(),
		e6.Descriptor(),
		e7.Descriptor(),
		e8.Descriptor(),
		e9.Descriptor(),
		e10.Descriptor(),
		e11.Descriptor(),
	}
	var out OneOf12[A, B, C, D, E, F, G, H, I, J, K, L]
	i, err := blockAny(ctx, evs[:])
	if err != nil {
		return out, err
	}
	out.Index = i
	switch i {
	case 0:
		out.V0 = e0.Result(&evs[0])
	case 1:
		out.V1 = e1.Result(&evs[1])
	case 2:
		out.V2 = e2.Result(&evs[2])
	case 3:
		out.V3 = e3.Result(&evs[3])
	case 4:
		out.V4 = e4.Result(&evs[4])
	case 5:
		out.V5 = e5.Result(&evs[5])
	case 6:
		out.V6 = e6.Result(&evs[6])
	case 7:
		out.V7 = e7.Result(&evs[7])
	case 8:
		out.V8 = e8.Result(&evs[8])
	case 9:
		out.V9 = e9.Result(&evs[9])
	case 10:
		out.V10 = e10.Result(&evs[10])
	case 11:
		out.V11 = e11.Result(&evs[11])
	}
	return out, nil
}
