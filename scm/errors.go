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

import "errors"
import "fmt"

// Code is the numeric result of an interpreter operation. It doubles as the
// process exit status of the command line tool, so the order is fixed.
type Code int

const (
	Success Code = iota
	ErrTokenFull
	ErrMissingFunction
	ErrStringOutsideCall
	ErrOutOfMemory
	ErrCopy
	ErrFrameStackOverflow
	ErrExtraParenthesis
	ErrArgStackOverflow
	ErrInternal
	ErrUnknownType
	ErrNotDefined
	ErrFuncNotDefined
	ErrTooFewArgs
	ErrTooManyArgs
	ErrBadType
	ErrInvalidListSize
	ErrNameExists
	ErrFncdefNoEnd
	ErrInvalidName
	ErrStackOverflow
	ErrDivisionByZero
	ErrBadInput
	ErrValueOutsideCall
	ErrOutOfRange
	ErrUnterminatedString
	ErrMissingParenthesis
	ErrBadEscape
)

var codeMessages = [...]string{
	Success:               "Success!",
	ErrTokenFull:          "Token full!",
	ErrMissingFunction:    "Missing function!",
	ErrStringOutsideCall:  "String outside of call!",
	ErrOutOfMemory:        "Out of memory!",
	ErrCopy:               "Mem. copy error!",
	ErrFrameStackOverflow: "FStack overflow!",
	ErrExtraParenthesis:   "Extra parenthesis!",
	ErrArgStackOverflow:   "Argstack overflow!",
	ErrInternal:           "Internal error, please report it!",
	ErrUnknownType:        "Unknown type!",
	ErrNotDefined:         "Name not defined!",
	ErrFuncNotDefined:     "Function not defined!",
	ErrTooFewArgs:         "Too few arguments!",
	ErrTooManyArgs:        "Too many arguments!",
	ErrBadType:            "Bad type!",
	ErrInvalidListSize:    "Invalid list size!",
	ErrNameExists:         "Already defined name!",
	ErrFncdefNoEnd:        "Function definition not ended!",
	ErrInvalidName:        "Invalid name!",
	ErrStackOverflow:      "Stack overflow!",
	ErrDivisionByZero:     "Division by zero!",
	ErrBadInput:           "Bad input!",
	ErrValueOutsideCall:   "Value outside of call!",
	ErrOutOfRange:         "Index out of range!",
	ErrUnterminatedString: "Unterminated string!",
	ErrMissingParenthesis: "Missing closing parenthesis!",
	ErrBadEscape:          "Bad escape sequence!",
}

func (c Code) Error() string {
	if c >= 0 && int(c) < len(codeMessages) {
		return codeMessages[c]
	}
	return fmt.Sprintf("Unknown error %d!", int(c))
}

// Error is a Code annotated with the source line it was raised on.
type Error struct {
	Code Code
	Line int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Line, e.Code.Error())
}

func (e *Error) Unwrap() error {
	return e.Code
}

// atLine attaches a line to a bare Code; errors that already carry a line
// keep the innermost one.
func atLine(err error, line int) error {
	if err == nil {
		return nil
	}
	var located *Error
	if errors.As(err, &located) {
		return err
	}
	var code Code
	if errors.As(err, &code) {
		return &Error{code, line}
	}
	return err
}

// CodeOf extracts the interpreter code of err; foreign errors map to ErrInternal.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var code Code
	if errors.As(err, &code) {
		return code
	}
	return ErrInternal
}

// LineOf returns the source line attached to err or 0.
func LineOf(err error) int {
	var located *Error
	if errors.As(err, &located) {
		return located.Line
	}
	return 0
}
