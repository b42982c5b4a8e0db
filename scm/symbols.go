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

import "bytes"
import "github.com/google/btree"

type binding struct {
	name  []byte
	value Value
}

// Symbols holds the global bindings in definition order; the btree is an
// exact-match index over the names.
type Symbols struct {
	order []*binding
	index *btree.BTreeG[*binding]
}

func NewSymbols() *Symbols {
	return &Symbols{
		index: btree.NewG[*binding](8, func(a, b *binding) bool {
			return bytes.Compare(a.name, b.name) < 0
		}),
	}
}

func (s *Symbols) find(name []byte) (*binding, bool) {
	return s.index.Get(&binding{name: name})
}

func (s *Symbols) Len() int {
	return len(s.order)
}

// Define binds a copy of v to name. Names are never overwritten here.
func (s *Symbols) Define(name []byte, v Value) error {
	if _, ok := s.find(name); ok {
		return ErrNameExists
	}
	b := &binding{append([]byte(nil), name...), v.Copy()}
	s.order = append(s.order, b)
	s.index.ReplaceOrInsert(b)
	return nil
}

// Resolve returns a copy of the bound value.
func (s *Symbols) Resolve(name []byte) (Value, error) {
	b, ok := s.find(name)
	if !ok {
		return Value{}, ErrNotDefined
	}
	return b.value.Copy(), nil
}

// Procedure looks up a callable binding; the returned procedure belongs to
// the table and must not be released.
func (s *Symbols) Procedure(name []byte) (*Procedure, error) {
	b, ok := s.find(name)
	if !ok || !b.value.Is(KindProcedure) {
		return nil, ErrFuncNotDefined
	}
	return b.value.Proc(0), nil
}

// Set replaces the value of an existing binding with a copy of v; the kind
// must not change.
func (s *Symbols) Set(name []byte, v Value) error {
	b, ok := s.find(name)
	if !ok {
		return ErrNotDefined
	}
	if b.value.Kind() != v.Kind() {
		return ErrBadType
	}
	b.value.Release()
	b.value = v.Copy()
	return nil
}

// Delete removes a binding and keeps the order of the remaining ones.
func (s *Symbols) Delete(name []byte) error {
	b, ok := s.index.Delete(&binding{name: name})
	if !ok {
		return ErrNotDefined
	}
	for i, o := range s.order {
		if o == b {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	b.value.Release()
	return nil
}

// Names lists all bound names in definition order.
func (s *Symbols) Names() []string {
	result := make([]string, len(s.order))
	for i, b := range s.order {
		result[i] = string(b.name)
	}
	return result
}

func (s *Symbols) Release() {
	for _, b := range s.order {
		b.value.Release()
	}
	s.order = nil
	s.index.Clear(false)
}
