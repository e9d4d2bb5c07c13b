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

// Package ast holds the syntax tree produced by the parser. The set of node
// types is closed: only this package can add implementations of Node.
package ast

import (
	"strconv"

	"github.com/lassandro/ac16/pkg/token"
)

type Node interface {
	Pos() token.Cursor
	Children() []Node
	node()
}

// Field is a top-level item of a Program: *DataField, *InstField or
// *Include.
type Field interface {
	Node
	field()
}

// Item is an entry of a DataField or InstField. Label declarations are
// items in their own right and bind to the item that follows them.
type Item interface {
	Node
	item()
}

// Instruction is implemented by every real and pseudo instruction.
type Instruction interface {
	Item
	Op() string
}

// Operand nodes

type Number struct {
	Position token.Cursor
	Lexeme   string
}

type String struct {
	Position token.Cursor
	Lexeme   string
}

// Value returns the string with its quotes and escapes removed.
func (s *String) Value() (string, error) {
	return strconv.Unquote(s.Lexeme)
}

type LabelRef struct {
	Position token.Cursor
	Name     string
}

type AccReg struct {
	Position token.Cursor
	Lexeme   string
}

type RegFileReg struct {
	Position token.Cursor
	Lexeme   string
}

// Program structure

type Program struct {
	Position token.Cursor
	Fields   []Field
}

type Include struct {
	Position token.Cursor
	Path     *String
}

type DataField struct {
	Position token.Cursor
	Items    []Item
}

type InstField struct {
	Position token.Cursor
	Items    []Item
}

type LabelDec struct {
	Position token.Cursor
	Name     string
}

// Data directives

type Space struct {
	Position token.Cursor
	Count    *Number
}

type Word struct {
	Position token.Cursor
	Values   []*Number
}

type Byte struct {
	Position token.Cursor
	Values   []*Number
}

type ASCII struct {
	Position token.Cursor
	Text     *String
}

// Instructions, one per operand shape

// NType  |opcode      |0000000000         |
type NType struct {
	Position token.Cursor
	Mnemonic string
}

// RType  |opcode      |AC  |RF      |RF      |
type RType struct {
	Position token.Cursor
	Mnemonic string
	AC       *AccReg
	RF1      *RegFileReg
	RF2      *RegFileReg
}

// IType  |opcode      |AC  |imm8            |
type IType struct {
	Position token.Cursor
	Mnemonic string
	AC       *AccReg
	Imm      *Number
}

// SType  |opcode      |AC  |RF      |imm4    |
type SType struct {
	Position token.Cursor
	Mnemonic string
	AC       *AccReg
	RF       *RegFileReg
	Imm      *Number
}

// JType  |opcode      |imm10               |
type JType struct {
	Position token.Cursor
	Mnemonic string
	Imm      *Number
}

// E1     |opcode      |AC  |RF      |0000    |
type E1 struct {
	Position token.Cursor
	Mnemonic string
	AC       *AccReg
	RF       *RegFileReg
}

// E2     |opcode      |00  |RF      |0000    |
type E2 struct {
	Position token.Cursor
	Mnemonic string
	RF       *RegFileReg
}

// E3     |opcode      |AC  |00000000        |
type E3 struct {
	Position token.Cursor
	Mnemonic string
	AC       *AccReg
}

// E4     |opcode      |000000      |RF      |
type E4 struct {
	Position token.Cursor
	Mnemonic string
	RF       *RegFileReg
}

// Pseudo-instructions

// PseudoJump targets either a *Number or a *LabelRef.
type PseudoJump struct {
	Position token.Cursor
	Target   Node
}

type PseudoMul struct {
	Position token.Cursor
	A        *RegFileReg
	B        *RegFileReg
}

type PseudoDiv struct {
	Position token.Cursor
	A        *RegFileReg
	B        *RegFileReg
}

// PseudoLoad is "lw &ac, _label(offset)".
type PseudoLoad struct {
	Position token.Cursor
	AC       *AccReg
	Label    *LabelRef
	Offset   *Number
}

// PseudoStore is "sw &ac, _label(offset)".
type PseudoStore struct {
	Position token.Cursor
	AC       *AccReg
	Label    *LabelRef
	Offset   *Number
}

type PseudoSwap struct {
	Position token.Cursor
	A        *RegFileReg
	B        *RegFileReg
}
