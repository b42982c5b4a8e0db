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
	"reflect"
	"testing"
)

func TestSymbolsDefineResolve(t *testing.T) {
	s := NewSymbols()
	if err := s.Define([]byte("x"), NewNumber(1)); err != nil {
		t.Fatalf("define: %v", err)
	}
	if err := s.Define([]byte("x"), NewNumber(2)); !errors.Is(err, ErrNameExists) {
		t.Fatalf("expected NameExists, got %v", err)
	}
	v, err := s.Resolve([]byte("x"))
	if err != nil || v.Num(0) != 1 {
		t.Fatalf("resolve: %v %s", err, String(v))
	}
	// the table hands out copies
	v.items[0].Num = 5
	if v2, _ := s.Resolve([]byte("x")); v2.Num(0) != 1 {
		t.Fatalf("binding changed through a copy")
	}
	if _, err := s.Resolve([]byte("xx")); !errors.Is(err, ErrNotDefined) {
		t.Fatalf("expected NotDefined for a longer name, got %v", err)
	}
	if _, err := s.Resolve([]byte("")); !errors.Is(err, ErrNotDefined) {
		t.Fatalf("expected NotDefined for the empty name, got %v", err)
	}
}

func TestSymbolsSet(t *testing.T) {
	s := NewSymbols()
	s.Define([]byte("x"), NewString("a"))
	if err := s.Set([]byte("x"), NewString("b")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := s.Resolve([]byte("x")); v.Text(0) != "b" {
		t.Fatalf("expected b, got %s", String(v))
	}
	if err := s.Set([]byte("x"), NewNumber(1)); !errors.Is(err, ErrBadType) {
		t.Fatalf("expected BadType, got %v", err)
	}
	if err := s.Set([]byte("y"), NewNumber(1)); !errors.Is(err, ErrNotDefined) {
		t.Fatalf("expected NotDefined, got %v", err)
	}
}

func TestSymbolsDeleteKeepsOrder(t *testing.T) {
	s := NewSymbols()
	for _, name := range []string{"d", "a", "c", "b"} {
		s.Define([]byte(name), NewNumber(0))
	}
	if err := s.Delete([]byte("a")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete([]byte("a")); !errors.Is(err, ErrNotDefined) {
		t.Fatalf("expected NotDefined, got %v", err)
	}
	if names := s.Names(); !reflect.DeepEqual(names, []string{"d", "c", "b"}) {
		t.Fatalf("unexpected order %v", names)
	}
	// a deleted name can be defined again
	if err := s.Define([]byte("a"), NewNumber(1)); err != nil {
		t.Fatalf("redefine: %v", err)
	}
	if s.Len() != 4 {
		t.Fatalf("expected 4 bindings, got %d", s.Len())
	}
}

func TestSymbolsProcedure(t *testing.T) {
	s := NewSymbols()
	s.Define([]byte("n"), NewNumber(1))
	s.Define([]byte("f"), NewBuiltin(DeclarationFor("print")))
	if _, err := s.Procedure([]byte("n")); !errors.Is(err, ErrFuncNotDefined) {
		t.Fatalf("expected FuncNotDefined, got %v", err)
	}
	p, err := s.Procedure([]byte("f"))
	if err != nil || p.Builtin.Name != "print" {
		t.Fatalf("unexpected procedure %v %v", p, err)
	}
	s.Release()
	if s.Len() != 0 {
		t.Fatalf("release left bindings")
	}
}
