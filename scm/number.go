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

import "math"
import "strconv"

// IsNumber matches -?[0-9]*\.?[0-9]* on a non-empty token. A lone "-" or
// "." is a number (zero).
func IsNumber(token string) bool {
	if token == "" {
		return false
	}
	dot := false
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c == '-' && i == 0:
		case c == '.' && !dot:
			dot = true
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// IsName accepts every non-empty token that does not start with a digit.
func IsName(token string) bool {
	return token != "" && (token[0] < '0' || token[0] > '9')
}

// ParseNumber accumulates the digits of a token accepted by IsNumber. There
// is no exponent syntax; precision beyond float32 is not guaranteed.
func ParseNumber(token string) float64 {
	var n float64
	neg, frac := false, false
	scale := 1.0
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c == '-' && i == 0:
			neg = true
		case c == '.':
			frac = true
		default:
			d := float64(c - '0')
			if frac {
				scale /= 10
				n += d * scale
			} else {
				n = n*10 + d
			}
		}
	}
	if neg {
		n = -n
	}
	return n
}

// FormatNumber prints integers exactly and everything else with the
// shortest float32 representation.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(float64(float32(f)), 'f', -1, 32)
}
