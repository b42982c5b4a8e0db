/*
Copyright (C) 2023  Carl-Philip Hänsch

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

import "fmt"
import "time"
import "strings"
import "net/http"
import "github.com/gorilla/websocket"

// Console is an interactive console over websockets. Every connection gets
// its own interpreter; every text message is evaluated as one chunk and
// answered with the output, the result ("= value") or the error.
type Console struct {
	Config   Config // template for the interpreters, Stdout and Stdin are replaced
	upgrader websocket.Upgrader
}

func NewConsole(config Config) *Console {
	c := &Console{Config: config}
	c.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	c.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	return c
}

// wsWriter sends every write as one text message.
type wsWriter struct {
	ws *websocket.Conn
}

func (w wsWriter) Write(b []byte) (int, error) {
	if err := w.ws.WriteMessage(websocket.TextMessage, b); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (c *Console) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	ws, err := c.upgrader.Upgrade(res, req, nil)
	if err != nil {
		log.Warningf("websocket upgrade from %s failed: %s", req.RemoteAddr, err)
		return
	}
	defer ws.Close()
	log.Infof("console session from %s", req.RemoteAddr)

	out := wsWriter{ws}
	config := c.Config
	config.Stdout = out
	config.Stdin = strings.NewReader("")
	in := New(nil, config)
	defer in.Shutdown()

	pending := ""
	for {
		// websocket read loop
		messageType, msg, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warningf("console session from %s: %s", req.RemoteAddr, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		chunk := pending + string(msg)
		result, err := in.Exec([]byte(chunk))
		if Incomplete(err) {
			pending = chunk + "\n"
			continue
		}
		pending = ""
		if err != nil {
			fmt.Fprintf(out, "%d: Error: %s", LineOf(err), CodeOf(err).Error())
			continue
		}
		fmt.Fprint(out, "= "+String(result))
		result.Release()
	}
}

// Serve runs the console on addr until the listener fails.
func (c *Console) Serve(addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           c,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	log.Noticef("console listening on %s", addr)
	return server.ListenAndServe()
}
