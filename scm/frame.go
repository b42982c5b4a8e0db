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

// Context selects the frame names are resolved against: TopLevel or the
// n-th frame of the stack (1-based).
type Context int

const TopLevel Context = 0

// Frame is one active call of a user defined procedure. args[i] is only
// owned by the frame once evaluated[i] is set.
type Frame struct {
	site      NodeID
	formals   Value
	parent    Context
	args      []Value
	evaluated []bool
}

func (in *Interpreter) frame(ctx Context) *Frame {
	return &in.frames[ctx-1]
}

// Depth is the number of active frames.
func (in *Interpreter) Depth() int {
	return len(in.frames)
}

func (in *Interpreter) pushFrame(site NodeID, proc *Procedure, parent Context) (Context, error) {
	if len(in.frames) >= in.config.StackSize {
		return TopLevel, ErrStackOverflow
	}
	argc := len(in.tree.Node(site).Children)
	in.frames = append(in.frames, Frame{
		site:      site,
		formals:   proc.Formals.Copy(),
		parent:    parent,
		args:      make([]Value, argc),
		evaluated: make([]bool, argc),
	})
	if len(in.frames) > in.Stats.PeakDepth {
		in.Stats.PeakDepth = len(in.frames)
	}
	return Context(len(in.frames)), nil
}

func (in *Interpreter) popFrame() {
	f := &in.frames[len(in.frames)-1]
	for i, done := range f.evaluated {
		if done {
			f.args[i].Release()
		}
	}
	f.formals.Release()
	*f = Frame{}
	in.frames = in.frames[:len(in.frames)-1]
}
