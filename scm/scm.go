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

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("tinylisp.scm")

// Evaluate runs the call at node id with names resolved against ctx.
func (in *Interpreter) Evaluate(ctx Context, id NodeID) (Value, error) {
	node := in.tree.Node(id)
	line := node.Line
	if node.Value.Kind() != KindCall {
		return Value{}, &Error{ErrValueOutsideCall, line}
	}
	if node.Value.Len() != 1 {
		return Value{}, &Error{ErrInvalidListSize, line}
	}
	name := node.Value.Call().Name
	argc := len(node.Children)
	proc, err := in.globals.Procedure(name)
	if err != nil {
		return Value{}, &Error{CodeOf(err), line}
	}
	in.Stats.Calls++

	if def := proc.Builtin; def != nil {
		if argc < def.MinParameter {
			return Value{}, &Error{ErrTooFewArgs, line}
		}
		if argc > def.MaxParameter {
			return Value{}, &Error{ErrTooManyArgs, line}
		}
		result, err := def.Fn(&Args{in, ctx, id, def})
		if err != nil {
			result.Release()
			return Value{}, atLine(err, line)
		}
		return result, nil
	}

	if argc < proc.Formals.Len() {
		return Value{}, &Error{ErrTooFewArgs, line}
	}
	if argc > proc.Formals.Len() {
		return Value{}, &Error{ErrTooManyArgs, line}
	}
	return in.callProcedure(ctx, id, string(name), proc, line)
}

// callProcedure pushes a frame for a user defined procedure and evaluates
// its body; the value of the last body expression is the result.
func (in *Interpreter) callProcedure(ctx Context, site NodeID, name string, proc *Procedure, line int) (Value, error) {
	self, err := in.pushFrame(site, proc, ctx)
	if err != nil {
		log.Debugf("stack overflow calling %s at line %d", name, line)
		return Value{}, &Error{CodeOf(err), line}
	}
	defer in.popFrame()
	if t := in.config.Trace; t != nil {
		t.EventHalf(name, "call", "B", 0, 0)
		defer t.EventHalf(name, "call", "E", 0, 0)
	}

	body := in.tree.Node(proc.Def).Children
	if len(body) < 3 {
		return Value{}, &Error{ErrFncdefNoEnd, line}
	}
	var result Value
	for _, expr := range body[2:] {
		result.Release()
		result, err = in.parseArg(self, expr)
		if err != nil {
			return Value{}, err
		}
	}
	return result, nil
}

// parseArg turns an argument node into a value: calls are evaluated,
// names resolved, literals copied.
func (in *Interpreter) parseArg(ctx Context, id NodeID) (Value, error) {
	node := in.tree.Node(id)
	switch node.Value.Kind() {
	case KindCall:
		return in.Evaluate(ctx, id)
	case KindName:
		line := node.Line
		if node.Value.Len() != 1 {
			return Value{}, &Error{ErrInvalidName, line}
		}
		v, err := in.ResolveName(ctx, node.Value.Bytes(0))
		return v, atLine(err, line)
	}
	return node.Value.Copy(), nil
}

// ResolveName walks from ctx along the parent links of the frames. The first
// frame with a matching formal supplies the value: the caller's argument
// expression, evaluated once in the caller's context and cached. Names no
// frame binds come from the globals.
func (in *Interpreter) ResolveName(ctx Context, name []byte) (Value, error) {
	if len(name) == 0 {
		return Value{}, ErrInvalidName
	}
	for c := ctx; c != TopLevel; c = in.frame(c).parent {
		if i := in.frame(c).formals.indexOf(name); i >= 0 {
			return in.argument(c, i)
		}
	}
	return in.globals.Resolve(name)
}

func (in *Interpreter) argument(c Context, i int) (Value, error) {
	f := in.frame(c)
	if f.evaluated[i] {
		return f.args[i].Copy(), nil
	}
	expr := in.tree.Node(f.site).Children[i]
	v, err := in.parseArg(f.parent, expr)
	if err != nil {
		return Value{}, err
	}
	// nested calls may have moved the stack
	f = in.frame(c)
	f.args[i] = v
	f.evaluated[i] = true
	return v.Copy(), nil
}

// SetName overwrites a formal of the frame ctx or else a global binding. The
// kind of the stored value must not change.
func (in *Interpreter) SetName(ctx Context, name []byte, v Value) error {
	if len(name) == 0 {
		return ErrInvalidName
	}
	if ctx != TopLevel {
		if i := in.frame(ctx).formals.indexOf(name); i >= 0 {
			current, err := in.argument(ctx, i)
			if err != nil {
				return err
			}
			kind := current.Kind()
			current.Release()
			if kind != v.Kind() {
				return ErrBadType
			}
			f := in.frame(ctx)
			f.args[i].Release()
			f.args[i] = v.Copy()
			return nil
		}
	}
	return in.globals.Set(name, v)
}

// Args is the view a builtin gets on its call site.
type Args struct {
	in   *Interpreter
	ctx  Context
	site NodeID
	def  *Declaration
}

func (a *Args) Len() int {
	return len(a.in.tree.Node(a.site).Children)
}

// Node is the syntax node of argument i.
func (a *Args) Node(i int) NodeID {
	return a.in.tree.Node(a.site).Children[i]
}

// Raw is the unevaluated syntax of argument i. It belongs to the tree.
func (a *Args) Raw(i int) Value {
	return a.in.tree.Node(a.Node(i)).Value
}

// Arg returns argument i, resolved if the declaration asks for it and as a
// copy of the syntax otherwise. The caller owns the result.
func (a *Args) Arg(i int) (Value, error) {
	if a.def.Resolve {
		return a.Resolved(i)
	}
	return a.Raw(i).Copy(), nil
}

// Resolved evaluates argument i in the caller's context.
func (a *Args) Resolved(i int) (Value, error) {
	return a.in.parseArg(a.ctx, a.Node(i))
}

func init() {
	init_core()
	init_io()
	init_alu()
	init_compare()
	init_list()
	init_strings()
}
