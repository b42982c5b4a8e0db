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

import (
	"errors"
	"math"
	"testing"
)

func TestNewAutoClassifiesTokens(t *testing.T) {
	tests := []struct {
		token string
		kind  Kind
		num   float64
	}{
		{"12", KindNumber, 12},
		{"-3.25", KindNumber, -3.25},
		{".5", KindNumber, 0.5},
		{"7.", KindNumber, 7},
		{"-", KindNumber, 0},
		{"x", KindName, 0},
		{"-x", KindName, 0},
		{"a1.2", KindName, 0},
	}
	for _, tt := range tests {
		v, err := NewAuto(tt.token)
		if err != nil {
			t.Fatalf("%q: %v", tt.token, err)
		}
		if v.Kind() != tt.kind {
			t.Fatalf("%q: expected %s, got %s", tt.token, tt.kind, v.Kind())
		}
		if tt.kind == KindNumber && math.Abs(v.Num(0)-tt.num) > 1e-6 {
			t.Fatalf("%q: expected %v, got %v", tt.token, tt.num, v.Num(0))
		}
	}
	for _, token := range []string{"1.2.3", "1x", "9-"} {
		if _, err := NewAuto(token); !errors.Is(err, ErrUnknownType) {
			t.Fatalf("%q: expected unknown type, got %v", token, err)
		}
	}
}

func TestNumberRoundTrip(t *testing.T) {
	for _, token := range []string{"0", "1", "-1", "42", "3.5", "-0.25", "1234.5", "0.1", "99.99", "100000"} {
		f := ParseNumber(token)
		back := ParseNumber(FormatNumber(f))
		if math.Abs(back-f) > 1e-4*math.Max(1, math.Abs(f)) {
			t.Fatalf("%q: %v formatted as %q parses to %v", token, f, FormatNumber(f), back)
		}
	}
	if s := FormatNumber(6); s != "6" {
		t.Fatalf("expected 6, got %q", s)
	}
	if s := FormatNumber(ParseNumber("1.23")); s != "1.23" {
		t.Fatalf("expected 1.23, got %q", s)
	}
}

func TestCopyIsDeep(t *testing.T) {
	a := NewString("abc")
	b := a.Copy()
	b.Bytes(0)[0] = 'x'
	if a.Text(0) != "abc" {
		t.Fatalf("copy shares its buffer: %q", a.Text(0))
	}
	formals := NewName("p")
	fn := NewUserProcedure(3, formals)
	formals.Release()
	fn2 := fn.Copy()
	fn.Release()
	if fn2.Proc(0).Formals.Text(0) != "p" || fn2.Proc(0).Def != 3 {
		t.Fatalf("procedure copy lost its formals")
	}
	empty := EmptyList(KindString).Copy()
	if empty.Kind() != KindString || empty.Len() != 0 {
		t.Fatalf("empty copy changed shape")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	v := NewNumber(1)
	v.Release()
	v.Release()
	if v.Len() != 0 {
		t.Fatalf("released value still has %d items", v.Len())
	}
}

func TestAppend(t *testing.T) {
	l := EmptyList(KindNumber)
	if err := l.Append(NewString("a")); err != nil {
		t.Fatalf("append to empty list: %v", err)
	}
	if err := l.Append(NewString("b")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if l.Kind() != KindString || l.Len() != 2 || l.Text(1) != "b" {
		t.Fatalf("unexpected list %s", String(l))
	}
	if err := l.Append(NewNumber(1)); !errors.Is(err, ErrBadType) {
		t.Fatalf("expected bad type, got %v", err)
	}
	if !l.Slice(1, 2).Equal(NewString("b")) {
		t.Fatalf("slice mismatch")
	}
}

func TestSingle(t *testing.T) {
	if err := NewNumber(1).Single(KindNumber); err != nil {
		t.Fatalf("single number rejected: %v", err)
	}
	if err := NewNumber(1).Single(KindString); !errors.Is(err, ErrBadType) {
		t.Fatalf("expected bad type, got %v", err)
	}
	if err := EmptyList(KindNumber).Single(KindNumber); !errors.Is(err, ErrInvalidListSize) {
		t.Fatalf("expected invalid list size, got %v", err)
	}
}

func TestErrorCodes(t *testing.T) {
	err := atLine(ErrNameExists, 7)
	if !errors.Is(err, ErrNameExists) || LineOf(err) != 7 {
		t.Fatalf("unexpected error %v", err)
	}
	if atLine(err, 9) != err {
		t.Fatalf("inner line was overwritten")
	}
	if CodeOf(errors.New("foreign")) != ErrInternal || CodeOf(nil) != Success {
		t.Fatalf("unexpected code mapping")
	}
	if ErrNotDefined.Error() != "Name not defined!" {
		t.Fatalf("unexpected message %q", ErrNotDefined.Error())
	}
}
