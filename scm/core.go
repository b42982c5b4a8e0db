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

// rawName reads argument i as an unresolved single name.
func rawName(a *Args, i int) ([]byte, error) {
	v := a.Raw(i)
	if err := v.Single(KindName); err != nil {
		return nil, err
	}
	return v.Bytes(0), nil
}

// define binds the name at argument 0 to the resolved argument 1, which
// must be of kind k.
func define(a *Args, k Kind) (Value, error) {
	name, err := rawName(a, 0)
	if err != nil {
		return Value{}, err
	}
	value, err := a.Resolved(1)
	if err != nil {
		return Value{}, err
	}
	if value.Kind() != k {
		value.Release()
		return Value{}, ErrBadType
	}
	if err := a.in.globals.Define(name, value); err != nil {
		value.Release()
		return Value{}, err
	}
	return value, nil
}

// formalList reads the formal parameters of a fncdef: (params a b) is
// evaluated, any other form (a b) lists names directly and a bare name is
// a single formal.
func formalList(a *Args) (Value, error) {
	raw := a.Raw(1)
	switch raw.Kind() {
	case KindName:
		if raw.Len() != 1 {
			return Value{}, ErrInvalidListSize
		}
		return raw.Copy(), nil
	case KindCall:
		call := raw.Call()
		if string(call.Name) == "params" {
			formals, err := a.Resolved(1)
			if err != nil {
				return Value{}, err
			}
			if formals.Kind() != KindName {
				formals.Release()
				return Value{}, ErrBadType
			}
			return formals, nil
		}
		formals := NewName(string(call.Name))
		for _, child := range a.in.tree.Node(a.Node(1)).Children {
			if err := formals.Append(a.in.tree.Node(child).Value); err != nil {
				formals.Release()
				return Value{}, err
			}
		}
		return formals, nil
	}
	return Value{}, ErrBadType
}

func init_core() {
	DeclareTitle("Core")
	Declare(&Declaration{
		"comment", "ignores its arguments; use it to write comments",
		0, variadic,
		[]DeclarationParameter{
			DeclarationParameter{"text...", "any", "anything, it is never evaluated"},
		}, "string",
		func(a *Args) (Value, error) {
			return NewString(""), nil
		}, false,
	})
	Declare(&Declaration{
		"strdef", "defines a new global string",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"name", "name", "name of the new global"},
			DeclarationParameter{"value", "string", "initial value"},
		}, "string",
		func(a *Args) (Value, error) {
			return define(a, KindString)
		}, false,
	})
	Declare(&Declaration{
		"numdef", "defines a new global number",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"name", "name", "name of the new global"},
			DeclarationParameter{"value", "number", "initial value"},
		}, "number",
		func(a *Args) (Value, error) {
			return define(a, KindNumber)
		}, false,
	})
	Declare(&Declaration{
		"set", "overwrites a parameter of the current procedure or a global; the type must stay the same",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"name", "name", "parameter or global to overwrite"},
			DeclarationParameter{"value", "any", "new value"},
		}, "number",
		func(a *Args) (Value, error) {
			name, err := rawName(a, 0)
			if err != nil {
				return Value{}, err
			}
			value, err := a.Resolved(1)
			if err != nil {
				return Value{}, err
			}
			defer value.Release()
			if err := a.in.SetName(a.ctx, name, value); err != nil {
				return Value{}, err
			}
			return NewNumber(0), nil
		}, false,
	})
	Declare(&Declaration{
		"del", "removes a global; parameters can not be removed",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"name", "name", "global to remove"},
		}, "number",
		func(a *Args) (Value, error) {
			name, err := rawName(a, 0)
			if err != nil {
				return Value{}, err
			}
			if err := a.in.globals.Delete(name); err != nil {
				return Value{}, err
			}
			return NewNumber(0), nil
		}, false,
	})
	Declare(&Declaration{
		"fncdef", "defines a procedure. Parameters are evaluated lazily in the context of the caller, the value of the last body expression is returned.",
		3, variadic,
		[]DeclarationParameter{
			DeclarationParameter{"name", "name", "name of the procedure"},
			DeclarationParameter{"parameters", "call|name", "(params a b), (a b) or a single name"},
			DeclarationParameter{"body...", "any", "expressions to evaluate on each call; names and literals are returned as they are"},
		}, "number",
		func(a *Args) (Value, error) {
			name, err := rawName(a, 0)
			if err != nil {
				return Value{}, err
			}
			formals, err := formalList(a)
			if err != nil {
				return Value{}, err
			}
			defer formals.Release()
			fn := NewUserProcedure(a.site, formals)
			defer fn.Release()
			if err := a.in.globals.Define(name, fn); err != nil {
				return Value{}, err
			}
			log.Debugf("defined procedure %s with %d parameters", name, formals.Len())
			return NewNumber(0), nil
		}, false,
	})
	Declare(&Declaration{
		"params", "builds a list of names",
		0, variadic,
		[]DeclarationParameter{
			DeclarationParameter{"name...", "name", "names to collect"},
		}, "list",
		func(a *Args) (Value, error) {
			result := EmptyList(KindName)
			for i := 0; i < a.Len(); i++ {
				raw := a.Raw(i)
				if raw.Kind() != KindName {
					result.Release()
					return Value{}, ErrBadType
				}
				result.Append(raw)
			}
			return result, nil
		}, false,
	})
	Declare(&Declaration{
		"if", "evaluates the then branch if the condition is not 0, otherwise the else branch",
		3, 3,
		[]DeclarationParameter{
			DeclarationParameter{"condition", "number", "condition"},
			DeclarationParameter{"then", "any", "evaluated if condition != 0"},
			DeclarationParameter{"else", "any", "evaluated if condition = 0"},
		}, "any",
		func(a *Args) (Value, error) {
			cond, err := numberArg(a, 0)
			if err != nil {
				return Value{}, err
			}
			if cond != 0 {
				return a.Arg(1)
			}
			return a.Arg(2)
		}, true,
	})
	Declare(&Declaration{
		"callif", "evaluates the expressions in order if the condition is not 0 and returns the last value",
		1, variadic,
		[]DeclarationParameter{
			DeclarationParameter{"condition", "number", "condition"},
			DeclarationParameter{"body...", "any", "expressions to evaluate"},
		}, "any",
		func(a *Args) (Value, error) {
			cond, err := numberArg(a, 0)
			if err != nil {
				return Value{}, err
			}
			result := NewNumber(0)
			if cond == 0 {
				return result, nil
			}
			for i := 1; i < a.Len(); i++ {
				result.Release()
				result, err = a.Arg(i)
				if err != nil {
					return Value{}, err
				}
			}
			return result, nil
		}, true,
	})
}
