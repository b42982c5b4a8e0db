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
import "bufio"

const (
	DefaultStackSize = 256
	DefaultTokenSize = 512
)

type Config struct {
	StackSize int // maximum number of active user procedure calls
	TokenSize int // maximum length of a token or string literal in bytes
	Stdout    io.Writer
	Stdin     io.Reader
	Trace     *Tracefile // optional, records every user procedure call
}

func DefaultConfig() Config {
	return Config{
		StackSize: DefaultStackSize,
		TokenSize: DefaultTokenSize,
		Stdout:    os.Stdout,
		Stdin:     os.Stdin,
	}
}

// Stats counts what an interpreter did so far.
type Stats struct {
	Calls     int // evaluated call expressions, builtins included
	PeakDepth int // deepest frame stack seen
}

// Interpreter owns one program: its syntax tree, the global bindings and the
// frame stack. It is not safe for concurrent use.
type Interpreter struct {
	config  Config
	tree    *Tree
	globals *Symbols
	frames  []Frame
	source  []byte
	line    int
	stdin   *bufio.Reader
	closed  bool
	Stats   Stats
}

// New prepares an interpreter for source and binds every declared builtin.
// Zero fields of config fall back to DefaultConfig.
func New(source []byte, config Config) *Interpreter {
	def := DefaultConfig()
	if config.StackSize <= 0 {
		config.StackSize = def.StackSize
	}
	if config.TokenSize <= 0 {
		config.TokenSize = def.TokenSize
	}
	if config.Stdout == nil {
		config.Stdout = def.Stdout
	}
	if config.Stdin == nil {
		config.Stdin = def.Stdin
	}
	in := &Interpreter{
		config:  config,
		tree:    NewTree(),
		globals: NewSymbols(),
		source:  source,
		line:    1,
		stdin:   bufio.NewReader(config.Stdin),
	}
	for _, def := range Declarations() {
		if def.Fn == nil {
			continue
		}
		v := NewBuiltin(def)
		in.globals.Define([]byte(def.Name), v)
		v.Release()
	}
	return in
}

// Run parses the whole source and evaluates its top-level calls in order.
// The first error stops the program; onError gets its message and line.
func (in *Interpreter) Run(onError func(message string, line int)) Code {
	line, err := Parse(in.tree, in.source, in.config.TokenSize, in.line)
	in.line = line
	if err == nil {
		for _, id := range in.tree.TopLevel() {
			var v Value
			v, err = in.Evaluate(TopLevel, id)
			if err != nil {
				break
			}
			v.Release()
		}
	}
	if err != nil {
		code := CodeOf(err)
		log.Debugf("program stopped at line %d: %s", LineOf(err), code.Error())
		if onError != nil {
			onError(code.Error(), LineOf(err))
		}
		return code
	}
	return Success
}

// Exec parses another chunk of source into the same program and evaluates
// its calls; the result of the last one is returned. A chunk that does not
// parse leaves the program untouched.
func (in *Interpreter) Exec(source []byte) (Value, error) {
	size := in.tree.Len()
	first := len(in.tree.TopLevel())
	line, err := Parse(in.tree, source, in.config.TokenSize, in.line)
	if err != nil {
		in.tree.truncate(size)
		return Value{}, err
	}
	in.line = line + 1
	result := EmptyList(KindNumber)
	for _, id := range in.tree.TopLevel()[first:] {
		result.Release()
		result, err = in.Evaluate(TopLevel, id)
		if err != nil {
			return Value{}, err
		}
	}
	return result, nil
}

func (in *Interpreter) AddGlobal(v Value, name string) error {
	return in.globals.Define([]byte(name), v)
}

func (in *Interpreter) SetGlobal(v Value, name string) error {
	return in.globals.Set([]byte(name), v)
}

func (in *Interpreter) DeleteGlobal(name string) error {
	return in.globals.Delete([]byte(name))
}

// Global returns a copy of a global binding.
func (in *Interpreter) Global(name string) (Value, error) {
	return in.globals.Resolve([]byte(name))
}

// Names lists the global bindings in definition order.
func (in *Interpreter) Names() []string {
	return in.globals.Names()
}

func (in *Interpreter) Tree() *Tree {
	return in.tree
}

func (in *Interpreter) Stdout() io.Writer {
	return in.config.Stdout
}

// Shutdown releases the tree, the bindings and the frames. Calling it again
// does nothing.
func (in *Interpreter) Shutdown() {
	if in.closed {
		return
	}
	in.closed = true
	for len(in.frames) > 0 {
		in.popFrame()
	}
	in.tree.Release()
	in.globals.Release()
}
