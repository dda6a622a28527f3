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
	"go/parser"
	"go/token"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	src, err := generate("event", 3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	f, err := parser.ParseFile(token.NewFileSet(), "eventlist_autogen.go", src, 0)
	if err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
	if f.Name.Name != "event" {
		t.Errorf("package = %q, want event", f.Name.Name)
	}

	// Two types and two functions per arity.
	if got, want := len(f.Decls), 1+3*4; got != want {
		t.Errorf("%d declarations, want %d", got, want)
	}
	for _, want := range []string{
		"func All1[A any](ctx context.Context, e0 Event[A]) (Values1[A], error)",
		"func Any3[A, B, C any](ctx context.Context, e0 Event[A], e1 Event[B], e2 Event[C]) (OneOf3[A, B, C], error)",
		"type OneOf2[A, B any] struct",
		"out.V2 = e2.Result(&evs[2])",
	} {
		if !strings.Contains(string(src), want) {
			t.Errorf("generated source lacks %q", want)
		}
	}
	if strings.Contains(string(src), "All4") {
		t.Errorf("generated arity 4 with max 3")
	}
}
