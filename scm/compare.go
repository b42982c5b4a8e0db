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

func truth(b bool) Value {
	if b {
		return NewNumber(1)
	}
	return NewNumber(0)
}

func ordered(cmp func(x, y float64) bool) func(a *Args) (Value, error) {
	return func(a *Args) (Value, error) {
		x, err := numberArg(a, 0)
		if err != nil {
			return Value{}, err
		}
		y, err := numberArg(a, 1)
		if err != nil {
			return Value{}, err
		}
		return truth(cmp(x, y)), nil
	}
}

// equal compares two single numbers or two single strings.
func equal(a *Args) (bool, error) {
	x, err := a.Arg(0)
	if err != nil {
		return false, err
	}
	defer x.Release()
	y, err := a.Arg(1)
	if err != nil {
		return false, err
	}
	defer y.Release()
	if x.Len() != 1 || y.Len() != 1 {
		return false, ErrInvalidListSize
	}
	if x.Kind() != y.Kind() {
		return false, ErrBadType
	}
	switch x.Kind() {
	case KindString, KindNumber:
		return x.Equal(y), nil
	}
	return false, ErrBadType
}

func init_compare() {
	DeclareTitle("Comparison")

	twoNumbers := []DeclarationParameter{
		DeclarationParameter{"a", "number", "left operand"},
		DeclarationParameter{"b", "number", "right operand"},
	}
	twoValues := []DeclarationParameter{
		DeclarationParameter{"a", "number|string", "left operand"},
		DeclarationParameter{"b", "number|string", "right operand, same type as a"},
	}
	Declare(&Declaration{
		"<", "1 if a is less than b, else 0",
		2, 2, twoNumbers, "number",
		ordered(func(x, y float64) bool { return x < y }), true,
	})
	Declare(&Declaration{
		">", "1 if a is greater than b, else 0",
		2, 2, twoNumbers, "number",
		ordered(func(x, y float64) bool { return x > y }), true,
	})
	Declare(&Declaration{
		"<=", "1 if a is less than or equal to b, else 0",
		2, 2, twoNumbers, "number",
		ordered(func(x, y float64) bool { return x <= y }), true,
	})
	Declare(&Declaration{
		">=", "1 if a is greater than or equal to b, else 0",
		2, 2, twoNumbers, "number",
		ordered(func(x, y float64) bool { return x >= y }), true,
	})
	Declare(&Declaration{
		"=", "1 if both values are equal, else 0",
		2, 2, twoValues, "number",
		func(a *Args) (Value, error) {
			eq, err := equal(a)
			if err != nil {
				return Value{}, err
			}
			return truth(eq), nil
		}, true,
	})
	Declare(&Declaration{
		"!=", "1 if the values differ, else 0",
		2, 2, twoValues, "number",
		func(a *Args) (Value, error) {
			eq, err := equal(a)
			if err != nil {
				return Value{}, err
			}
			return truth(!eq), nil
		}, true,
	})
}
