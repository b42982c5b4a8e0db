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
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func dialConsole(t *testing.T) (*websocket.Conn, func()) {
	t.Helper()
	server := httptest.NewServer(NewConsole(DefaultConfig()))
	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		server.Close()
		t.Fatalf("dial: %v", err)
	}
	return ws, func() {
		ws.Close()
		server.Close()
	}
}

func exchange(t *testing.T, ws *websocket.Conn, chunk string, replies ...string) {
	t.Helper()
	if err := ws.WriteMessage(websocket.TextMessage, []byte(chunk)); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, want := range replies {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(msg) != want {
			t.Fatalf("%q: expected %q, got %q", chunk, want, msg)
		}
	}
}

func TestConsoleEvaluatesChunks(t *testing.T) {
	ws, done := dialConsole(t)
	defer done()

	exchange(t, ws, "(numdef x 20)", "= 20")
	exchange(t, ws, "(print (+ x 1))", "21\n", "= 21")
	// lines count across messages
	exchange(t, ws, "(/ x 0)", "3: Error: Division by zero!")
	// the open call waits for the next message
	exchange(t, ws, "(+ x")
	exchange(t, ws, "2)", "= 22")
}

func TestConsoleSessionsAreIsolated(t *testing.T) {
	first, done1 := dialConsole(t)
	defer done1()
	second, done2 := dialConsole(t)
	defer done2()

	exchange(t, first, "(numdef y 1)", "= 1")
	exchange(t, second, "(numdef y 2)", "= 2")
	exchange(t, first, "(+ y 0)", "= 1")
}
