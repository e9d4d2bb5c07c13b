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

// Package encoder validates a syntax tree and packs it into 8-bit output
// units. Label references that cannot be known until every unit exists are
// left as placeholders for the linker.
package encoder

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/lassandro/ac16/pkg/ast"
	"github.com/lassandro/ac16/pkg/encoding"
	"github.com/lassandro/ac16/pkg/image"
	"github.com/lassandro/ac16/pkg/isa"
)

// Field widths in bits.
const (
	WidthAC   = 2
	WidthRF   = 4
	WidthImm4 = 4
	WidthImm8 = 8
	WidthJ    = 10
	WidthWord = 16
	WidthByte = 8
)

// Registers the assembler keeps for itself when lowering pseudo-instructions.
const (
	ScratchAC = 1
	ScratchRF = 1
)

type Config struct {
	// Strict rejects the general registers with a fixed role: $0 is
	// read-only, $1 belongs to the assembler, $14 is the stack pointer and
	// $15 the link register.
	Strict bool
}

type Encoder struct {
	table  *isa.Table
	config Config

	units   []image.Unit
	pending *ast.LabelDec
}

func New(table *isa.Table, config Config) *Encoder {
	if table == nil {
		table = isa.Default()
	}

	return &Encoder{table: table, config: config}
}

// Encode is shorthand for New(table, config).Encode(program).
func Encode(program *ast.Program, table *isa.Table, config Config) ([]image.Unit, error) {
	return New(table, config).Encode(program)
}

// Encode returns the output units of program in emission order. Nothing is
// returned alongside an error.
func (e *Encoder) Encode(program *ast.Program) ([]image.Unit, error) {
	e.units = make([]image.Unit, 0, 64)
	e.pending = nil

	for _, field := range program.Fields {
		if err := e.field(field); err != nil {
			return nil, err
		}
	}

	if e.pending != nil {
		return nil, &DanglingLabelError{e.pending.Position, e.pending.Name, ""}
	}

	units := e.units
	e.units = nil

	return units, nil
}

func (e *Encoder) field(field ast.Field) error {
	switch n := field.(type) {
	case *ast.DataField:
		return e.items(n.Items)
	case *ast.InstField:
		return e.items(n.Items)
	case *ast.Include:
		return &UnexpandedIncludeError{n.Position, n.Path.Lexeme}
	default:
		return &UnknownNodeError{field.Pos(), fmt.Sprintf("%T", field)}
	}
}

func (e *Encoder) items(items []ast.Item) error {
	for _, item := range items {
		if label, ok := item.(*ast.LabelDec); ok {
			if e.pending != nil {
				return &DanglingLabelError{
					e.pending.Position, e.pending.Name, label.Name,
				}
			}

			e.pending = label
			continue
		}

		units, err := e.item(item)

		if err != nil {
			return err
		}

		e.emit(units)
	}

	return nil
}

// emit appends units, binding any pending label to the first of them.
func (e *Encoder) emit(units []image.Unit) {
	if len(units) == 0 {
		return
	}

	if e.pending != nil {
		units[0].Label = e.pending.Name
		e.pending = nil
	}

	e.units = append(e.units, units...)
}

func (e *Encoder) item(item ast.Item) ([]image.Unit, error) {
	switch n := item.(type) {
	// Data
	case *ast.Space:
		return e.space(n)
	case *ast.Word:
		return e.word(n)
	case *ast.Byte:
		return e.byte(n)
	case *ast.ASCII:
		return e.ascii(n)

	// Instructions
	case *ast.NType:
		return e.nType(n)
	case *ast.RType:
		return e.rType(n)
	case *ast.IType:
		return e.iType(n)
	case *ast.SType:
		return e.sType(n)
	case *ast.JType:
		return e.jType(n)
	case *ast.E1:
		return e.e1(n)
	case *ast.E2:
		return e.e2(n)
	case *ast.E3:
		return e.e3(n)
	case *ast.E4:
		return e.e4(n)

	// Pseudo-instructions
	case *ast.PseudoJump:
		return e.jump(n)
	case *ast.PseudoMul:
		return e.mulDiv(n.Op(), "tmul", n.Position, n.A, n.B)
	case *ast.PseudoDiv:
		return e.mulDiv(n.Op(), "tdiv", n.Position, n.A, n.B)
	case *ast.PseudoLoad:
		return e.memory(n.Op(), "lwr", n.Position, n.AC, n.Label, n.Offset)
	case *ast.PseudoStore:
		return e.memory(n.Op(), "swr", n.Position, n.AC, n.Label, n.Offset)
	case *ast.PseudoSwap:
		return e.swap(n)
	}

	return nil, &UnknownNodeError{item.Pos(), fmt.Sprintf("%T", item)}
}

// Operands

func (e *Encoder) number(n *ast.Number, width uint, context string) (uint16, error) {
	value, err := encoding.DecodeInt(n.Lexeme)

	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &NumberOutOfBoundsError{n.Position, context, width, n.Lexeme}
		}

		return 0, &InvalidNumberError{n.Position, n.Lexeme}
	}

	result, ok := encoding.Fits(value, width)

	if !ok {
		return 0, &NumberOutOfBoundsError{n.Position, context, width, n.Lexeme}
	}

	return result, nil
}

func (e *Encoder) accReg(reg *ast.AccReg, mnemonic string) (uint16, error) {
	index, err := strconv.ParseUint(reg.Lexeme[1:], 10, 8)

	if err != nil || index >= 1<<WidthAC {
		return 0, &RegisterOutOfRangeError{
			reg.Position, mnemonic, reg.Lexeme, 1<<WidthAC - 1,
		}
	}

	if index == ScratchAC {
		return 0, &ReservedRegisterError{
			reg.Position, mnemonic, reg.Lexeme, "reserved for the assembler",
		}
	}

	return uint16(index), nil
}

var strictRF = map[uint64]string{
	0:  "read-only",
	1:  "reserved for the assembler",
	14: "stack pointer",
	15: "link register",
}

func (e *Encoder) rfReg(reg *ast.RegFileReg, mnemonic string) (uint16, error) {
	index, err := strconv.ParseUint(reg.Lexeme[1:], 10, 8)

	if err != nil || index >= 1<<WidthRF {
		return 0, &RegisterOutOfRangeError{
			reg.Position, mnemonic, reg.Lexeme, 1<<WidthRF - 1,
		}
	}

	if reason, reserved := strictRF[index]; reserved && e.config.Strict {
		return 0, &ReservedRegisterError{
			reg.Position, mnemonic, reg.Lexeme, reason,
		}
	}

	return uint16(index), nil
}

// Data

func (e *Encoder) space(n *ast.Space) ([]image.Unit, error) {
	count, err := encoding.DecodeInt(n.Count.Lexeme)

	if err != nil || count < 0 || count > 1<<WidthWord {
		return nil, &NumberOutOfBoundsError{
			n.Count.Position, ".space", WidthWord, n.Count.Lexeme,
		}
	}

	units := make([]image.Unit, count)

	for i := range units {
		units[i] = image.Unit{
			Segments: []image.Segment{image.Literal(0, image.UnitBits)},
			Pos:      n.Position,
		}
	}

	return units, nil
}

func (e *Encoder) word(n *ast.Word) ([]image.Unit, error) {
	var builder image.Builder

	for _, number := range n.Values {
		value, err := e.number(number, WidthWord, ".word")

		if err != nil {
			return nil, err
		}

		builder.Literal(value, WidthWord)
	}

	return builder.Units(n.Position), nil
}

func (e *Encoder) byte(n *ast.Byte) ([]image.Unit, error) {
	var builder image.Builder

	for _, number := range n.Values {
		value, err := e.number(number, WidthByte, ".byte")

		if err != nil {
			return nil, err
		}

		builder.Literal(value, WidthByte)
	}

	return builder.Units(n.Position), nil
}

func (e *Encoder) ascii(n *ast.ASCII) ([]image.Unit, error) {
	text, err := n.Text.Value()

	if err != nil {
		return nil, &InvalidStringError{n.Text.Position}
	}

	var builder image.Builder

	for _, char := range text {
		if char > 0xFF {
			return nil, &NumberOutOfBoundsError{
				n.Text.Position, ".ascii", WidthByte, strconv.QuoteRune(char),
			}
		}

		builder.Literal(uint16(char), WidthByte)
	}

	return builder.Units(n.Position), nil
}
