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

import "io"
import "os"
import "sync"
import "time"
import "encoding/json"

// Tracefile writes events in the Chrome trace format (chrome://tracing,
// ui.perfetto.dev). One file may be shared by several interpreters.
type Tracefile struct {
	isFirst bool
	closed  bool
	file    io.WriteCloser
	start   time.Time
	m       sync.Mutex
}

// CreateTrace opens a new trace file at path.
func CreateTrace(path string) (*Tracefile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return NewTrace(f), nil
}

func NewTrace(file io.WriteCloser) *Tracefile {
	file.Write([]byte("["))
	result := new(Tracefile)
	result.file = file
	result.isFirst = true
	result.start = time.Now()
	return result
}

// Close terminates the JSON array; further calls do nothing.
func (t *Tracefile) Close() error {
	t.m.Lock()
	defer t.m.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.file.Write([]byte("]"))
	return t.file.Close()
}

func (t *Tracefile) Duration(name string, cat string, f func()) {
	t.EventHalf(name, cat, "B", 0, 0)
	defer t.EventHalf(name, cat, "E", 0, 0)
	f()
}

func (t *Tracefile) EventHalf(name string, cat string, typ string, tid int, pid int) {
	ts := time.Since(t.start).Microseconds()
	t.EventFull(name, cat, typ, ts, tid, pid)
}

type traceEvent struct {
	Name  string `json:"name"`
	Cat   string `json:"cat"`
	Phase string `json:"ph"`
	Ts    int64  `json:"ts"`
	Pid   int    `json:"pid"`
	Tid   int    `json:"tid"`
	Scope string `json:"s"`
}

/*
*

	@name string procedure
	@cat string comma separated categories (for filtering)
	@typ B/E for begin/end, X for events
	@ts timestamp in microseconds
	@pid process id
	@tid thread id
*/
func (t *Tracefile) EventFull(name string, cat string, typ string, ts int64, tid int, pid int) {
	b, _ := json.Marshal(traceEvent{name, cat, typ, ts, pid, tid, "g"})
	t.m.Lock()
	defer t.m.Unlock()
	if t.closed {
		return
	}
	if t.isFirst {
		t.isFirst = false
	} else {
		t.file.Write([]byte(",\n"))
	}
	t.file.Write(b)
}
