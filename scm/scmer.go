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

// Kind is the type tag shared by all items of a Value.
type Kind uint8

const (
	KindProcedure Kind = iota
	KindString
	KindNumber
	KindName
	KindCall
)

func (k Kind) String() string {
	switch k {
	case KindProcedure:
		return "procedure"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindName:
		return "name"
	case KindCall:
		return "call"
	}
	return "unknown"
}

// Call is the payload of a parsed (name ...) form. Named stays false until
// the parser has seen the first token of the form.
type Call struct {
	Name  []byte
	Named bool
}

// Procedure is either a builtin (Builtin != nil) or a user defined procedure
// whose body lives at the Def node of the syntax tree.
type Procedure struct {
	Builtin *Declaration
	Def     NodeID
	Formals Value // KindName, one item per formal parameter
}

func (p *Procedure) IsBuiltin() bool {
	return p.Builtin != nil
}

// Item is one element of a Value; which field is valid depends on the kind.
type Item struct {
	Num  float64
	Str  []byte
	Proc *Procedure
	Call *Call
}

// Value is a homogeneous list of zero or more items of one kind. Every owner
// of a Value releases it exactly once; Copy hands out an independent owner.
type Value struct {
	kind  Kind
	items []Item
}

//
// Constructors
//

func NewNumber(f float64) Value {
	return Value{KindNumber, []Item{{Num: f}}}
}

func NewString(s string) Value {
	return Value{KindString, []Item{{Str: []byte(s)}}}
}

func NewName(s string) Value {
	return Value{KindName, []Item{{Str: []byte(s)}}}
}

func NewBuiltin(def *Declaration) Value {
	return Value{KindProcedure, []Item{{Proc: &Procedure{Builtin: def}}}}
}

// NewUserProcedure builds a procedure value for the definition node def; the
// formal list is copied.
func NewUserProcedure(def NodeID, formals Value) Value {
	return Value{KindProcedure, []Item{{Proc: &Procedure{Def: def, Formals: formals.Copy()}}}}
}

func newCall() Value {
	return Value{KindCall, []Item{{Call: &Call{}}}}
}

// EmptyList returns a Value of size 0.
func EmptyList(k Kind) Value {
	return Value{kind: k}
}

// NewAuto classifies a bare token: numbers first, then names. A token that
// starts with a digit but is no number is ErrUnknownType.
func NewAuto(token string) (Value, error) {
	if IsNumber(token) {
		return NewNumber(ParseNumber(token)), nil
	}
	if IsName(token) {
		return NewName(token), nil
	}
	return Value{}, ErrUnknownType
}

//
// Accessors
//

func (v Value) Kind() Kind { return v.kind }
func (v Value) Len() int   { return len(v.items) }

func (v Value) Num(i int) float64     { return v.items[i].Num }
func (v Value) Bytes(i int) []byte    { return v.items[i].Str }
func (v Value) Text(i int) string     { return string(v.items[i].Str) }
func (v Value) Proc(i int) *Procedure { return v.items[i].Proc }
func (v Value) Call() *Call           { return v.items[0].Call }

// Is reports whether v is a single item of kind k.
func (v Value) Is(k Kind) bool {
	return v.kind == k && len(v.items) == 1
}

// Single checks that v has kind k and exactly one item.
func (v Value) Single(k Kind) error {
	if v.kind != k {
		return ErrBadType
	}
	if len(v.items) != 1 {
		return ErrInvalidListSize
	}
	return nil
}

//
// Ownership
//

// Copy duplicates v element by element; the result shares no buffers with v.
func (v Value) Copy() Value {
	if len(v.items) == 0 {
		return Value{kind: v.kind}
	}
	items := make([]Item, len(v.items))
	for i, it := range v.items {
		items[i] = copyItem(v.kind, it)
	}
	return Value{v.kind, items}
}

func copyItem(k Kind, it Item) Item {
	switch k {
	case KindString, KindName:
		return Item{Str: append([]byte(nil), it.Str...)}
	case KindNumber:
		return Item{Num: it.Num}
	case KindCall:
		return Item{Call: &Call{append([]byte(nil), it.Call.Name...), it.Call.Named}}
	case KindProcedure:
		p := *it.Proc
		p.Formals = it.Proc.Formals.Copy()
		return Item{Proc: &p}
	}
	return it
}

// Release drops every owned buffer and leaves v empty; releasing an empty
// value does nothing.
func (v *Value) Release() {
	for i := range v.items {
		it := &v.items[i]
		if it.Proc != nil {
			it.Proc.Formals.Release()
		}
		*it = Item{}
	}
	v.items = nil
}

// Append adds copies of all items of o. Appending to an empty value adopts
// the kind of o.
func (v *Value) Append(o Value) error {
	if len(v.items) == 0 && v.kind != o.kind {
		v.kind = o.kind
	}
	if v.kind != o.kind {
		return ErrBadType
	}
	for _, it := range o.items {
		v.items = append(v.items, copyItem(o.kind, it))
	}
	return nil
}

// Slice returns a copy of the items [from, to).
func (v Value) Slice(from, to int) Value {
	return Value{v.kind, v.items[from:to]}.Copy()
}

// Equal compares kind, size and items.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || len(v.items) != len(o.items) {
		return false
	}
	for i := range v.items {
		a, b := v.items[i], o.items[i]
		switch v.kind {
		case KindNumber:
			if a.Num != b.Num {
				return false
			}
		case KindString, KindName:
			if !bytes.Equal(a.Str, b.Str) {
				return false
			}
		case KindCall:
			if !bytes.Equal(a.Call.Name, b.Call.Name) {
				return false
			}
		case KindProcedure:
			if a.Proc.Builtin != b.Proc.Builtin || a.Proc.Def != b.Proc.Def {
				return false
			}
		}
	}
	return true
}

// indexOf returns the position of name among the items of a Name list or -1.
func (v Value) indexOf(name []byte) int {
	if v.kind != KindName {
		return -1
	}
	for i, it := range v.items {
		if bytes.Equal(it.Str, name) {
			return i
		}
	}
	return -1
}
