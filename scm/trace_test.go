/*
Copyright (C) 2024  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package scm

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type nopCloser struct {
	bytes.Buffer
}

func (nopCloser) Close() error { return nil }

func TestTraceRecordsProcedureCalls(t *testing.T) {
	var file nopCloser
	trace := NewTrace(&file)

	var out bytes.Buffer
	config := DefaultConfig()
	config.Stdout = &out
	config.Stdin = strings.NewReader("")
	config.Trace = trace
	in := New([]byte("(fncdef inner (x) (+ x 1))\n(fncdef outer (x) (inner x))\n(print (outer 1))"), config)
	if code := in.Run(func(message string, line int) {
		t.Fatalf("line %d: %s", line, message)
	}); code != Success {
		t.Fatalf("unexpected code %v", code)
	}
	in.Shutdown()
	if err := trace.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var events []traceEvent
	if err := json.Unmarshal(file.Bytes(), &events); err != nil {
		t.Fatalf("trace is no JSON array: %v\n%s", err, file.String())
	}
	var got []string
	for _, e := range events {
		got = append(got, e.Phase+" "+e.Name)
		if e.Cat != "call" {
			t.Fatalf("unexpected category %q", e.Cat)
		}
	}
	want := "B outer,B inner,E inner,E outer"
	if strings.Join(got, ",") != want {
		t.Fatalf("expected %s, got %s", want, strings.Join(got, ","))
	}
	if out.String() != "2\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestEmptyTraceIsValidJSON(t *testing.T) {
	var file nopCloser
	trace := NewTrace(&file)
	trace.Duration("idle", "test", func() {})
	trace.Close()
	trace.Close()
	trace.EventHalf("late", "test", "B", 0, 0)
	var events []traceEvent
	if err := json.Unmarshal(file.Bytes(), &events); err != nil || len(events) != 2 {
		t.Fatalf("unexpected trace %q: %v", file.String(), err)
	}
}
