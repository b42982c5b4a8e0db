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

/* scanner state machine:
	stateCode   = between or inside bare tokens
	stateString = inside "..."
	stateEscape = after a backslash inside a string
	stateHex    = inside \xHH, hexDigits tells how many digits were read

the tree is built while scanning, there is no token list.
*/
const (
	stateCode = iota
	stateString
	stateEscape
	stateHex
)

type parser struct {
	tree      *Tree
	current   NodeID
	token     []byte
	tokenSize int
	line      int
	state     int
	hex       byte
	hexDigits int
}

// Parse scans src once and appends its top-level calls to the root of t.
// line is the number of the first line of src; the returned line is the one
// the scan ended on. On error t may contain a partial tree, see Tree.truncate.
func Parse(t *Tree, src []byte, tokenSize int, line int) (int, error) {
	p := parser{tree: t, current: Root, tokenSize: tokenSize, line: line}
	for _, c := range src {
		if err := p.feed(c); err != nil {
			return p.line, &Error{CodeOf(err), p.line}
		}
	}
	if err := p.finish(); err != nil {
		return p.line, &Error{CodeOf(err), p.line}
	}
	return p.line, nil
}

func (p *parser) feed(c byte) error {
	switch p.state {
	case stateString:
		switch c {
		case '\\':
			p.state = stateEscape
			return nil
		case '"':
			p.state = stateCode
			return p.closeString()
		}
		if c == '\n' {
			p.line++
		}
		return p.push(c)
	case stateEscape:
		p.state = stateString
		switch c {
		case '"', '\\':
			return p.push(c)
		case 'n':
			return p.push('\n')
		case 'r':
			return p.push('\r')
		case 'a':
			return p.push('\a')
		case 'x':
			p.state = stateHex
			p.hex, p.hexDigits = 0, 0
			return nil
		}
		// unknown escapes stay as they are
		if c == '\n' {
			p.line++
		}
		if err := p.push('\\'); err != nil {
			return err
		}
		return p.push(c)
	case stateHex:
		d, ok := hexDigit(c)
		if !ok {
			return ErrBadEscape
		}
		p.hex = p.hex<<4 | d
		p.hexDigits++
		if p.hexDigits == 2 {
			p.state = stateString
			return p.push(p.hex)
		}
		return nil
	}

	switch c {
	case ' ', '\t', '\r':
		return p.flush()
	case '\n':
		err := p.flush()
		p.line++
		return err
	case '(':
		if err := p.flush(); err != nil {
			return err
		}
		if p.current != Root && !p.call().Named {
			return ErrMissingFunction
		}
		p.current = p.tree.add(p.current, newCall(), p.line)
		return nil
	case ')':
		if err := p.flush(); err != nil {
			return err
		}
		if p.current == Root {
			return ErrExtraParenthesis
		}
		if !p.call().Named {
			return ErrMissingFunction
		}
		p.current = p.tree.Node(p.current).Parent
		return nil
	case '"':
		if err := p.flush(); err != nil {
			return err
		}
		if p.current == Root {
			return ErrStringOutsideCall
		}
		if !p.call().Named {
			return ErrMissingFunction
		}
		p.state = stateString
		return nil
	}
	return p.push(c)
}

func (p *parser) finish() error {
	if p.state != stateCode {
		return ErrUnterminatedString
	}
	if err := p.flush(); err != nil {
		return err
	}
	if p.current != Root {
		return ErrMissingParenthesis
	}
	return nil
}

func (p *parser) call() *Call {
	return p.tree.Node(p.current).Value.Call()
}

func (p *parser) push(c byte) error {
	if len(p.token) >= p.tokenSize {
		return ErrTokenFull
	}
	p.token = append(p.token, c)
	return nil
}

// flush classifies a finished bare token: the first one names the call,
// every further one becomes an argument node.
func (p *parser) flush() error {
	if len(p.token) == 0 {
		return nil
	}
	token := string(p.token)
	p.token = p.token[:0]
	if p.current == Root {
		return ErrValueOutsideCall
	}
	call := p.call()
	if !call.Named {
		call.Name = []byte(token)
		call.Named = true
		return nil
	}
	v, err := NewAuto(token)
	if err != nil {
		return err
	}
	p.tree.add(p.current, v, p.line)
	return nil
}

func (p *parser) closeString() error {
	p.tree.add(p.current, NewString(string(p.token)), p.line)
	p.token = p.token[:0]
	return nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
