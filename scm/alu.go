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

import "math"

// numberArg reads argument i as a single number.
func numberArg(a *Args, i int) (float64, error) {
	v, err := a.Arg(i)
	if err != nil {
		return 0, err
	}
	defer v.Release()
	if v.Len() != 1 {
		return 0, ErrInvalidListSize
	}
	if v.Kind() != KindNumber {
		return 0, ErrBadType
	}
	return v.Num(0), nil
}

// binary wraps a number operation on two arguments into a builtin.
func binary(op func(x, y float64) (float64, error)) func(a *Args) (Value, error) {
	return func(a *Args) (Value, error) {
		x, err := numberArg(a, 0)
		if err != nil {
			return Value{}, err
		}
		y, err := numberArg(a, 1)
		if err != nil {
			return Value{}, err
		}
		r, err := op(x, y)
		if err != nil {
			return Value{}, err
		}
		return NewNumber(r), nil
	}
}

func unary(op func(x float64) float64) func(a *Args) (Value, error) {
	return func(a *Args) (Value, error) {
		x, err := numberArg(a, 0)
		if err != nil {
			return Value{}, err
		}
		return NewNumber(op(x)), nil
	}
}

// add sums two numbers or concatenates two strings.
func add(a *Args) (Value, error) {
	x, err := a.Arg(0)
	if err != nil {
		return Value{}, err
	}
	defer x.Release()
	y, err := a.Arg(1)
	if err != nil {
		return Value{}, err
	}
	defer y.Release()
	if x.Kind() != y.Kind() {
		return Value{}, ErrBadType
	}
	if x.Len() != 1 || y.Len() != 1 {
		return Value{}, ErrInvalidListSize
	}
	switch x.Kind() {
	case KindString:
		s := make([]byte, 0, len(x.Bytes(0))+len(y.Bytes(0)))
		s = append(append(s, x.Bytes(0)...), y.Bytes(0)...)
		return NewString(string(s)), nil
	case KindNumber:
		return NewNumber(x.Num(0) + y.Num(0)), nil
	}
	return Value{}, ErrBadType
}

func init_alu() {
	DeclareTitle("Arithmetic")

	twoNumbers := []DeclarationParameter{
		DeclarationParameter{"a", "number", "left operand"},
		DeclarationParameter{"b", "number", "right operand"},
	}
	Declare(&Declaration{
		"+", "adds two numbers or concatenates two strings",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "number|string", "left operand"},
			DeclarationParameter{"b", "number|string", "right operand, same type as a"},
		}, "number|string",
		add, true,
	})
	Declare(&Declaration{
		"-", "subtracts b from a",
		2, 2, twoNumbers, "number",
		binary(func(x, y float64) (float64, error) {
			return x - y, nil
		}), true,
	})
	Declare(&Declaration{
		"*", "multiplies two numbers",
		2, 2, twoNumbers, "number",
		binary(func(x, y float64) (float64, error) {
			return x * y, nil
		}), true,
	})
	Declare(&Declaration{
		"/", "divides a by b",
		2, 2, twoNumbers, "number",
		binary(func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, ErrDivisionByZero
			}
			return x / y, nil
		}), true,
	})
	Declare(&Declaration{
		"%", "remainder of a divided by b",
		2, 2, twoNumbers, "number",
		binary(func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, ErrDivisionByZero
			}
			return math.Mod(x, y), nil
		}), true,
	})
	Declare(&Declaration{
		"floor", "rounds down",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"a", "number", "value to round"},
		}, "number",
		unary(math.Floor), true,
	})
	Declare(&Declaration{
		"ceil", "rounds up",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"a", "number", "value to round"},
		}, "number",
		unary(math.Ceil), true,
	})
}
