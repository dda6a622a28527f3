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

package main

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
)

// typeParams names the type parameter of each position.
var typeParams = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}

// sourceBuffer accumulates generated source.
type sourceBuffer struct {
	indent int
	b      bytes.Buffer
}

func (b *sourceBuffer) emit(format string, a ...any) {
	b.b.WriteString(strings.Repeat("\t", b.indent))
	fmt.Fprintf(&b.b, format, a...)
}

func (b *sourceBuffer) inIndent(body func()) {
	b.indent++
	body()
	b.indent--
}

// arity describes the functions generated for n events.
type arity struct {
	n int
}

// typeList returns "A, B, C".
func (a arity) typeList() string {
	return strings.Join(typeParams[:a.n], ", ")
}

// params returns "e0 Event[A], e1 Event[B]".
func (a arity) params() string {
	ps := make([]string, a.n)
	for i := range ps {
		ps[i] = fmt.Sprintf("e%d Event[%s]", i, typeParams[i])
	}
	return strings.Join(ps, ", ")
}

func (a arity) emitDescriptors(b *sourceBuffer) {
	b.emit("evs := [...]lilium.BlockingEvent{\n")
	b.inIndent(func() {
		for i := 0; i < a.n; i++ {
			b.emit("e%d.Descriptor(),\n", i)
		}
	})
	b.emit("}\n")
}

func (a arity) emitValues(b *sourceBuffer) {
	b.emit("// Values%d holds the results of All%d, in argument order.\n", a.n, a.n)
	b.emit("type Values%d[%s any] struct {\n", a.n, a.typeList())
	b.inIndent(func() {
		for i := 0; i < a.n; i++ {
			b.emit("V%d %s\n", i, typeParams[i])
		}
	})
	b.emit("}\n\n")

	b.emit("// All%d blocks until every event has fired and returns their values.\n", a.n)
	b.emit("func All%d[%s any](ctx context.Context, %s) (Values%d[%s], error) {\n", a.n, a.typeList(), a.params(), a.n, a.typeList())
	b.inIndent(func() {
		a.emitDescriptors(b)
		b.emit("var out Values%d[%s]\n", a.n, a.typeList())
		b.emit("if err := blockAll(ctx, evs[:]); err != nil {\n")
		b.inIndent(func() { b.emit("return out, err\n") })
		b.emit("}\n")
		for i := 0; i < a.n; i++ {
			b.emit("out.V%d = e%d.Result(&evs[%d])\n", i, i, i)
		}
		b.emit("return out, nil\n")
	})
	b.emit("}\n\n")
}

func (a arity) emitOneOf(b *sourceBuffer) {
	b.emit("// OneOf%d holds the result of Any%d: the index of the event that fired and\n", a.n, a.n)
	b.emit("// its value. Only the field for that index is set.\n")
	b.emit("type OneOf%d[%s any] struct {\n", a.n, a.typeList())
	b.inIndent(func() {
		b.emit("Index int\n")
		for i := 0; i < a.n; i++ {
			b.emit("V%d %s\n", i, typeParams[i])
		}
	})
	b.emit("}\n\n")

	b.emit("// Any%d blocks until one event fires and returns which, with its value.\n", a.n)
	b.emit("func Any%d[%s any](ctx context.Context, %s) (OneOf%d[%s], error) {\n", a.n, a.typeList(), a.params(), a.n, a.typeList())
	b.inIndent(func() {
		a.emitDescriptors(b)
		b.emit("var out OneOf%d[%s]\n", a.n, a.typeList())
		b.emit("i, err := blockAny(ctx, evs[:])\n")
		b.emit("if err != nil {\n")
		b.inIndent(func() { b.emit("return out, err\n") })
		b.emit("}\n")
		b.emit("out.Index = i\n")
		b.emit("switch i {\n")
		for i := 0; i < a.n; i++ {
			b.emit("case %d:\n", i)
			b.inIndent(func() { b.emit("out.V%d = e%d.Result(&evs[%d])\n", i, i, i) })
		}
		b.emit("}\n")
		b.emit("return out, nil\n")
	})
	b.emit("}\n")
}

// generate returns the formatted source for arities 1 through max.
func generate(pkg string, max int) ([]byte, error) {
	var b sourceBuffer
	b.emit("// Automatically generated event list functions. See tools/go_eventlist.\n\n")
	b.emit("package %s\n\n", pkg)
	b.emit("import (\n")
	b.inIndent(func() {
		b.emit("\"context\"\n\n")
		b.emit("\"lilium.dev/lilium/pkg/abi/lilium\"\n")
	})
	b.emit(")\n")
	for n := 1; n <= max; n++ {
		a := arity{n}
		b.emit("\n")
		a.emitValues(&b)
		a.emitOneOf(&b)
	}
	src, err := format.Source(b.b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}
