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
import "fmt"
import "bytes"

// printWith writes argument 0 followed by a newline and returns it.
func printWith(render func(Value) (string, error)) func(a *Args) (Value, error) {
	return func(a *Args) (Value, error) {
		v, err := a.Arg(0)
		if err != nil {
			return Value{}, err
		}
		s, err := render(v)
		if err != nil {
			v.Release()
			return Value{}, err
		}
		fmt.Fprintln(a.in.config.Stdout, s)
		return v, nil
	}
}

func init_io() {
	DeclareTitle("IO")

	Declare(&Declaration{
		"print", "prints a value and a newline to stdout; lists are shown in parentheses",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number|string|list", "value to print"},
		}, "any",
		printWith(Print), true,
	})
	Declare(&Declaration{
		"printraw", "prints the unevaluated argument; names are shown as <variable: name>",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "syntax to print"},
		}, "any",
		printWith(PrintRaw), false,
	})
	Declare(&Declaration{
		"input", "prints a prompt and reads one line from stdin",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"prompt", "string", "text shown before reading"},
		}, "string",
		func(a *Args) (Value, error) {
			prompt, err := stringArg(a, 0)
			if err != nil {
				return Value{}, err
			}
			a.in.config.Stdout.Write(prompt)
			line, err := a.in.stdin.ReadBytes('\n')
			if err != nil && err != io.EOF {
				return Value{}, ErrBadInput
			}
			line = bytes.TrimSuffix(line, []byte{'\n'})
			return NewString(string(line)), nil
		}, true,
	})
	Declare(&Declaration{
		"help", "lists all procedures or prints help for a specific one",
		0, 1,
		[]DeclarationParameter{
			DeclarationParameter{"topic", "string", "procedure to print help about"},
		}, "string",
		func(a *Args) (Value, error) {
			topic := ""
			if a.Len() > 0 {
				s, err := stringArg(a, 0)
				if err != nil {
					return Value{}, err
				}
				topic = string(s)
			}
			if err := Help(a.in.config.Stdout, topic); err != nil {
				return Value{}, err
			}
			return NewString(""), nil
		}, true,
	})
}
