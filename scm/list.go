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

// index checks that argument i is a number addressing one of n elements.
func index(a *Args, i int, n int) (int, error) {
	f, err := numberArg(a, i)
	if err != nil {
		return 0, err
	}
	// compare as float: huge values and NaN have no int
	if !(f >= 0 && f < float64(n)) {
		return 0, ErrOutOfRange
	}
	return int(f), nil
}

func init_list() {
	DeclareTitle("Lists")

	Declare(&Declaration{
		"list", "builds a list; all elements must have the same type",
		0, variadic,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "elements, lists are flattened"},
		}, "list",
		func(a *Args) (Value, error) {
			result := EmptyList(KindNumber)
			for i := 0; i < a.Len(); i++ {
				v, err := a.Arg(i)
				if err != nil {
					result.Release()
					return Value{}, err
				}
				err = result.Append(v)
				v.Release()
				if err != nil {
					result.Release()
					return Value{}, err
				}
			}
			return result, nil
		}, true,
	})
	Declare(&Declaration{
		"++", "merges two lists of the same type",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "list", "first list"},
			DeclarationParameter{"b", "list", "list to append"},
		}, "list",
		func(a *Args) (Value, error) {
			x, err := a.Arg(0)
			if err != nil {
				return Value{}, err
			}
			y, err := a.Arg(1)
			if err != nil {
				x.Release()
				return Value{}, err
			}
			defer y.Release()
			if err := x.Append(y); err != nil {
				x.Release()
				return Value{}, err
			}
			return x, nil
		}, true,
	})
	Declare(&Declaration{
		"len", "number of elements of a value",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"list", "any", "value to count"},
		}, "number",
		func(a *Args) (Value, error) {
			v, err := a.Arg(0)
			if err != nil {
				return Value{}, err
			}
			defer v.Release()
			return NewNumber(float64(v.Len())), nil
		}, true,
	})
	Declare(&Declaration{
		"get", "returns the element at a zero based position",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"list", "list", "list of numbers, strings or names"},
			DeclarationParameter{"index", "number", "position, 0 <= index < (len list)"},
		}, "any",
		func(a *Args) (Value, error) {
			v, err := a.Arg(0)
			if err != nil {
				return Value{}, err
			}
			defer v.Release()
			i, err := index(a, 1, v.Len())
			if err != nil {
				return Value{}, err
			}
			switch v.Kind() {
			case KindNumber, KindString, KindName:
				return v.Slice(i, i+1), nil
			}
			return Value{}, ErrBadType
		}, true,
	})
	Declare(&Declaration{
		"head", "returns the first element of a list",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"list", "list", "non-empty list"},
		}, "any",
		func(a *Args) (Value, error) {
			v, err := a.Arg(0)
			if err != nil {
				return Value{}, err
			}
			defer v.Release()
			if v.Len() == 0 {
				return Value{}, ErrOutOfRange
			}
			return v.Slice(0, 1), nil
		}, true,
	})
	Declare(&Declaration{
		"tail", "returns a list without its first element",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"list", "list", "non-empty list"},
		}, "list",
		func(a *Args) (Value, error) {
			v, err := a.Arg(0)
			if err != nil {
				return Value{}, err
			}
			defer v.Release()
			if v.Len() == 0 {
				return Value{}, ErrOutOfRange
			}
			return v.Slice(1, v.Len()), nil
		}, true,
	})
}
