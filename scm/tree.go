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

// NodeID addresses a node inside a Tree.
type NodeID int32

// Root is the sentinel node holding the top-level calls of a program.
const Root NodeID = 0

// Node owns its value; children are owned through the arena, Parent is only
// used while parsing to find the way back after a closing parenthesis.
type Node struct {
	Value    Value
	Children []NodeID
	Parent   NodeID
	Line     int
}

// Tree is an arena of syntax nodes. Node pointers are only stable until the
// next parse appends to the arena.
type Tree struct {
	nodes []Node
}

func NewTree() *Tree {
	return &Tree{nodes: []Node{{}}}
}

func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

// TopLevel lists the program's calls in source order.
func (t *Tree) TopLevel() []NodeID {
	return t.nodes[Root].Children
}

func (t *Tree) add(parent NodeID, v Value, line int) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{Value: v, Parent: parent, Line: line})
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// truncate drops every node from size on together with the child links
// pointing to them; used to roll back a failed incremental parse.
func (t *Tree) truncate(size int) {
	for i := size; i < len(t.nodes); i++ {
		t.nodes[i].Value.Release()
	}
	t.nodes = t.nodes[:size]
	for i := range t.nodes {
		children := t.nodes[i].Children
		for len(children) > 0 && int(children[len(children)-1]) >= size {
			children = children[:len(children)-1]
		}
		t.nodes[i].Children = children
	}
}

// Release is the single free pass over the arena.
func (t *Tree) Release() {
	for i := range t.nodes {
		t.nodes[i].Value.Release()
		t.nodes[i].Children = nil
	}
	t.nodes = t.nodes[:1]
	t.nodes[Root] = Node{}
}
