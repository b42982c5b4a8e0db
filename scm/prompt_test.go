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
	"testing"
)

func TestCompleter(t *testing.T) {
	var out bytes.Buffer
	in := newTestInterpreter(&out)
	defer in.Shutdown()
	in.Exec([]byte("(numdef strange 1)"))
	c := completer{in}

	line := []rune("(print (str")
	candidates, length := c.Do(line, len(line))
	if length != 3 {
		t.Fatalf("expected prefix length 3, got %d", length)
	}
	found := map[string]bool{}
	for _, cand := range candidates {
		found[string(cand)] = true
	}
	for _, want := range []string{"len", "get", "def", "ange"} {
		if !found[want] {
			t.Fatalf("missing completion %q in %v", want, found)
		}
	}
	if found["print"] {
		t.Fatalf("completion does not match the prefix")
	}
}

func TestIncomplete(t *testing.T) {
	var out bytes.Buffer
	in := newTestInterpreter(&out)
	defer in.Shutdown()
	for _, chunk := range []string{"(print 1", `(print "a`} {
		if _, err := in.Exec([]byte(chunk)); !Incomplete(err) {
			t.Fatalf("%q: expected incomplete input, got %v", chunk, err)
		}
	}
	if _, err := in.Exec([]byte("(print 1))")); Incomplete(err) || err == nil {
		t.Fatalf("extra parenthesis must be a hard error, got %v", err)
	}
}
