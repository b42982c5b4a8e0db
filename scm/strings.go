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

// stringArg reads argument i as a single string.
func stringArg(a *Args, i int) ([]byte, error) {
	v, err := a.Arg(i)
	if err != nil {
		return nil, err
	}
	if v.Len() != 1 {
		v.Release()
		return nil, ErrInvalidListSize
	}
	if v.Kind() != KindString {
		v.Release()
		return nil, ErrBadType
	}
	return v.Bytes(0), nil
}

func init_strings() {
	DeclareTitle("Strings")

	Declare(&Declaration{
		"strlen", "length of a string in bytes",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "string to measure"},
		}, "number",
		func(a *Args) (Value, error) {
			s, err := stringArg(a, 0)
			if err != nil {
				return Value{}, err
			}
			return NewNumber(float64(len(s))), nil
		}, true,
	})
	Declare(&Declaration{
		"strget", "returns the byte at a zero based position as a string",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "string to read from"},
			DeclarationParameter{"index", "number", "position, 0 <= index < (strlen value)"},
		}, "string",
		func(a *Args) (Value, error) {
			s, err := stringArg(a, 0)
			if err != nil {
				return Value{}, err
			}
			i, err := index(a, 1, len(s))
			if err != nil {
				return Value{}, err
			}
			return NewString(string(s[i : i+1])), nil
		}, true,
	})
	Declare(&Declaration{
		"parsenum", "parses a number literal",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "text like -12.5"},
		}, "number",
		func(a *Args) (Value, error) {
			s, err := stringArg(a, 0)
			if err != nil {
				return Value{}, err
			}
			if !IsNumber(string(s)) {
				return Value{}, ErrBadInput
			}
			return NewNumber(ParseNumber(string(s))), nil
		}, true,
	})
	Declare(&Declaration{
		"numstr", "formats a number as a string",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "number to format"},
		}, "string",
		func(a *Args) (Value, error) {
			n, err := numberArg(a, 0)
			if err != nil {
				return Value{}, err
			}
			return NewString(FormatNumber(n)), nil
		}, true,
	})
}
