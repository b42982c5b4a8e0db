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

import "bytes"

// what a printer may show besides numbers and strings
const (
	printPlain = iota // print: numbers and strings only
	printRaw          // printraw: names as <variable: x>
	printAll          // REPL: everything
)

func serialize(b *bytes.Buffer, v Value, mode int) error {
	if v.Len() == 0 {
		b.WriteString("()")
		return nil
	}
	list := v.Len() > 1
	if list {
		b.WriteByte('(')
	}
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch v.Kind() {
		case KindString:
			if list {
				b.WriteByte('"')
			}
			b.Write(v.Bytes(i))
			if list {
				b.WriteByte('"')
			}
		case KindNumber:
			b.WriteString(FormatNumber(v.Num(i)))
		case KindName:
			if mode == printPlain {
				return ErrBadType
			}
			b.WriteString("<variable: ")
			b.Write(v.Bytes(i))
			b.WriteByte('>')
		case KindProcedure:
			if mode != printAll {
				return ErrBadType
			}
			if p := v.Proc(i); p.IsBuiltin() {
				b.WriteString("<builtin " + p.Builtin.Name + ">")
			} else {
				b.WriteString("<procedure")
				for j := 0; j < p.Formals.Len(); j++ {
					b.WriteByte(' ')
					b.Write(p.Formals.Bytes(j))
				}
				b.WriteByte('>')
			}
		default:
			return ErrBadType
		}
	}
	if list {
		b.WriteByte(')')
	}
	return nil
}

// Print renders v like the print builtin; names and procedures are rejected.
func Print(v Value) (string, error) {
	var b bytes.Buffer
	err := serialize(&b, v, printPlain)
	return b.String(), err
}

// PrintRaw renders v like the printraw builtin.
func PrintRaw(v Value) (string, error) {
	var b bytes.Buffer
	err := serialize(&b, v, printRaw)
	return b.String(), err
}

// String renders any value for interactive display.
func String(v Value) string {
	var b bytes.Buffer
	if err := serialize(&b, v, printAll); err != nil {
		return "<" + v.Kind().String() + ">"
	}
	return b.String()
}
