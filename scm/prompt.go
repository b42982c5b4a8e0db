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

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

const newprompt = "\033[32m>\033[0m "
const contprompt = "\033[32m.\033[0m "
const resultprompt = "\033[31m=\033[0m "

// Incomplete reports whether err only means that the input stopped inside a
// call or a string, so more input may complete it.
func Incomplete(err error) bool {
	return errors.Is(err, ErrMissingParenthesis) || errors.Is(err, ErrUnterminatedString)
}

// completer offers the names of the global bindings for the word left of
// the cursor.
type completer struct {
	in *Interpreter
}

func (c completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && !strings.ContainsRune(" \t\n()\"", line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	var result [][]rune
	for _, name := range c.in.Names() {
		if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
			result = append(result, []rune(name[len(prefix):]))
		}
	}
	return result, len([]rune(prefix))
}

// Repl reads chunks from the terminal and evaluates them in in until EOF or
// an interrupt on an empty line.
func Repl(in *Interpreter, historyFile string) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt,
		HistoryFile:       historyFile,
		AutoComplete:      completer{in},
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()
	l.CaptureExitSignal()

	oldline := ""
	for {
		line, err := l.Readline()
		line = oldline + line
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			oldline = ""
			l.SetPrompt(newprompt)
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		result, err := in.Exec([]byte(line))
		if Incomplete(err) {
			// keep oldline
			oldline = line + "\n"
			l.SetPrompt(contprompt)
			continue
		}
		oldline = ""
		l.SetPrompt(newprompt)
		if err != nil {
			fmt.Fprintf(l.Stderr(), "%d: Error: %s\n", LineOf(err), CodeOf(err).Error())
			continue
		}
		fmt.Fprintln(l.Stdout(), resultprompt+String(result))
		result.Release()
	}
}
