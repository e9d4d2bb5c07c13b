// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package ast

import "github.com/lassandro/ac16/pkg/token"

func (n *Number) Pos() token.Cursor      { return n.Position }
func (n *String) Pos() token.Cursor      { return n.Position }
func (n *LabelRef) Pos() token.Cursor    { return n.Position }
func (n *AccReg) Pos() token.Cursor      { return n.Position }
func (n *RegFileReg) Pos() token.Cursor  { return n.Position }
func (n *Program) Pos() token.Cursor     { return n.Position }
func (n *Include) Pos() token.Cursor     { return n.Position }
func (n *DataField) Pos() token.Cursor   { return n.Position }
func (n *InstField) Pos() token.Cursor   { return n.Position }
func (n *LabelDec) Pos() token.Cursor    { return n.Position }
func (n *Space) Pos() token.Cursor       { return n.Position }
func (n *Word) Pos() token.Cursor        { return n.Position }
func (n *Byte) Pos() token.Cursor        { return n.Position }
func (n *ASCII) Pos() token.Cursor       { return n.Position }
func (n *NType) Pos() token.Cursor       { return n.Position }
func (n *RType) Pos() token.Cursor       { return n.Position }
func (n *IType) Pos() token.Cursor       { return n.Position }
func (n *SType) Pos() token.Cursor       { return n.Position }
func (n *JType) Pos() token.Cursor       { return n.Position }
func (n *E1) Pos() token.Cursor          { return n.Position }
func (n *E2) Pos() token.Cursor          { return n.Position }
func (n *E3) Pos() token.Cursor          { return n.Position }
func (n *E4) Pos() token.Cursor          { return n.Position }
func (n *PseudoJump) Pos() token.Cursor  { return n.Position }
func (n *PseudoMul) Pos() token.Cursor   { return n.Position }
func (n *PseudoDiv) Pos() token.Cursor   { return n.Position }
func (n *PseudoLoad) Pos() token.Cursor  { return n.Position }
func (n *PseudoStore) Pos() token.Cursor { return n.Position }
func (n *PseudoSwap) Pos() token.Cursor  { return n.Position }

func (*Number) node()      {}
func (*String) node()      {}
func (*LabelRef) node()    {}
func (*AccReg) node()      {}
func (*RegFileReg) node()  {}
func (*Program) node()     {}
func (*Include) node()     {}
func (*DataField) node()   {}
func (*InstField) node()   {}
func (*LabelDec) node()    {}
func (*Space) node()       {}
func (*Word) node()        {}
func (*Byte) node()        {}
func (*ASCII) node()       {}
func (*NType) node()       {}
func (*RType) node()       {}
func (*IType) node()       {}
func (*SType) node()       {}
func (*JType) node()       {}
func (*E1) node()          {}
func (*E2) node()          {}
func (*E3) node()          {}
func (*E4) node()          {}
func (*PseudoJump) node()  {}
func (*PseudoMul) node()   {}
func (*PseudoDiv) node()   {}
func (*PseudoLoad) node()  {}
func (*PseudoStore) node() {}
func (*PseudoSwap) node()  {}

func (*Include) field()   {}
func (*DataField) field() {}
func (*InstField) field() {}

func (*LabelDec) item()    {}
func (*Space) item()       {}
func (*Word) item()        {}
func (*Byte) item()        {}
func (*ASCII) item()       {}
func (*NType) item()       {}
func (*RType) item()       {}
func (*IType) item()       {}
func (*SType) item()       {}
func (*JType) item()       {}
func (*E1) item()          {}
func (*E2) item()          {}
func (*E3) item()          {}
func (*E4) item()          {}
func (*PseudoJump) item()  {}
func (*PseudoMul) item()   {}
func (*PseudoDiv) item()   {}
func (*PseudoLoad) item()  {}
func (*PseudoStore) item() {}
func (*PseudoSwap) item()  {}

func (n *NType) Op() string       { return n.Mnemonic }
func (n *RType) Op() string       { return n.Mnemonic }
func (n *IType) Op() string       { return n.Mnemonic }
func (n *SType) Op() string       { return n.Mnemonic }
func (n *JType) Op() string       { return n.Mnemonic }
func (n *E1) Op() string          { return n.Mnemonic }
func (n *E2) Op() string          { return n.Mnemonic }
func (n *E3) Op() string          { return n.Mnemonic }
func (n *E4) Op() string          { return n.Mnemonic }
func (*PseudoJump) Op() string    { return "jump" }
func (*PseudoMul) Op() string     { return "mul" }
func (*PseudoDiv) Op() string     { return "div" }
func (*PseudoLoad) Op() string    { return "lw" }
func (*PseudoStore) Op() string   { return "sw" }
func (*PseudoSwap) Op() string    { return "swap" }

func (*Number) Children() []Node     { return nil }
func (*String) Children() []Node     { return nil }
func (*LabelRef) Children() []Node   { return nil }
func (*AccReg) Children() []Node     { return nil }
func (*RegFileReg) Children() []Node { return nil }
func (*LabelDec) Children() []Node   { return nil }
func (*NType) Children() []Node      { return nil }

func (n *Program) Children() []Node {
	children := make([]Node, len(n.Fields))
	for i, field := range n.Fields {
		children[i] = field
	}
	return children
}

func (n *Include) Children() []Node { return []Node{n.Path} }

func (n *DataField) Children() []Node { return items(n.Items) }
func (n *InstField) Children() []Node { return items(n.Items) }

func items(list []Item) []Node {
	children := make([]Node, len(list))
	for i, item := range list {
		children[i] = item
	}
	return children
}

func (n *Space) Children() []Node { return []Node{n.Count} }
func (n *Word) Children() []Node  { return numbers(n.Values) }
func (n *Byte) Children() []Node  { return numbers(n.Values) }
func (n *ASCII) Children() []Node { return []Node{n.Text} }

func numbers(list []*Number) []Node {
	children := make([]Node, len(list))
	for i, number := range list {
		children[i] = number
	}
	return children
}

func (n *RType) Children() []Node       { return []Node{n.AC, n.RF1, n.RF2} }
func (n *IType) Children() []Node       { return []Node{n.AC, n.Imm} }
func (n *SType) Children() []Node       { return []Node{n.AC, n.RF, n.Imm} }
func (n *JType) Children() []Node       { return []Node{n.Imm} }
func (n *E1) Children() []Node          { return []Node{n.AC, n.RF} }
func (n *E2) Children() []Node          { return []Node{n.RF} }
func (n *E3) Children() []Node          { return []Node{n.AC} }
func (n *E4) Children() []Node          { return []Node{n.RF} }
func (n *PseudoJump) Children() []Node  { return []Node{n.Target} }
func (n *PseudoMul) Children() []Node   { return []Node{n.A, n.B} }
func (n *PseudoDiv) Children() []Node   { return []Node{n.A, n.B} }
func (n *PseudoLoad) Children() []Node  { return []Node{n.AC, n.Label, n.Offset} }
func (n *PseudoStore) Children() []Node { return []Node{n.AC, n.Label, n.Offset} }
func (n *PseudoSwap) Children() []Node  { return []Node{n.A, n.B} }

// Walk visits n and its descendants depth-first in source order. Returning
// false from fn skips the children of the node just visited.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	for _, child := range n.Children() {
		Walk(child, fn)
	}
}
