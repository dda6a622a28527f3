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

package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"lilium.dev/lilium/cmd/lilium-sync/config"
	"lilium.dev/lilium/pkg/log"
)

func TestNewEmitter(t *testing.T) {
	var buf bytes.Buffer
	e := newEmitter(config.LogFormatText, &buf)
	if _, ok := e.(log.GoogleEmitter); !ok {
		t.Fatalf("newEmitter(text) = %T, want log.GoogleEmitter", e)
	}
	e.Emit(0, log.Info, time.Now(), "hello %s", "text")
	if got := buf.String(); !strings.HasPrefix(got, "I") || !strings.HasSuffix(got, "hello text\n") {
		t.Errorf("text output = %q, want a glog line ending in the message", got)
	}

	buf.Reset()
	e = newEmitter(config.LogFormatJSON, &buf)
	if _, ok := e.(log.JSONEmitter); !ok {
		t.Fatalf("newEmitter(json) = %T, want log.JSONEmitter", e)
	}
	e.Emit(0, log.Warning, time.Now(), "hello %s", "json")
	var got struct {
		Msg   string    `json:"msg"`
		Level log.Level `json:"level"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("json output %q: %v", buf.String(), err)
	}
	if got.Msg != "hello json" || got.Level != log.Warning {
		t.Errorf("json output = %+v, want msg %q at warning", got, "hello json")
	}
}
