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

package encoder

import (
	"fmt"

	"github.com/lassandro/ac16/pkg/ast"
	"github.com/lassandro/ac16/pkg/image"
	"github.com/lassandro/ac16/pkg/isa"
	"github.com/lassandro/ac16/pkg/token"
)

func (e *Encoder) opcode(pos token.Cursor, mnemonic string, format isa.Format) (*image.Builder, error) {
	inst, ok := e.table.Lookup(mnemonic)

	if !ok || inst.Format != format {
		return nil, &InstructionFormatError{pos, mnemonic, format, inst.Format}
	}

	builder := &image.Builder{}
	builder.Literal(uint16(inst.Opcode), isa.OpcodeBits)

	return builder, nil
}

// NOP  |000000      |0000000000         |
func (e *Encoder) nType(n *ast.NType) ([]image.Unit, error) {
	builder, err := e.opcode(n.Position, n.Mnemonic, isa.FormatN)
	if err != nil {
		return nil, err
	}

	builder.Literal(0, 10)

	return builder.Units(n.Position), nil
}

// ADD  |000001      |AC  |RF      |RF      |
func (e *Encoder) rType(n *ast.RType) ([]image.Unit, error) {
	builder, err := e.opcode(n.Position, n.Mnemonic, isa.FormatR)
	if err != nil {
		return nil, err
	}

	ac, err := e.accReg(n.AC, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	rf1, err := e.rfReg(n.RF1, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	rf2, err := e.rfReg(n.RF2, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	builder.
		Literal(ac, WidthAC).
		Literal(rf1, WidthRF).
		Literal(rf2, WidthRF)

	return builder.Units(n.Position), nil
}

// ADDI |010110      |AC  |imm8            |
func (e *Encoder) iType(n *ast.IType) ([]image.Unit, error) {
	builder, err := e.opcode(n.Position, n.Mnemonic, isa.FormatI)
	if err != nil {
		return nil, err
	}

	ac, err := e.accReg(n.AC, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	imm, err := e.number(n.Imm, WidthImm8, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	builder.Literal(ac, WidthAC).Literal(imm, WidthImm8)

	return builder.Units(n.Position), nil
}

// SLL  |001010      |AC  |RF      |imm4    |
func (e *Encoder) sType(n *ast.SType) ([]image.Unit, error) {
	builder, err := e.opcode(n.Position, n.Mnemonic, isa.FormatS)
	if err != nil {
		return nil, err
	}

	ac, err := e.accReg(n.AC, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	rf, err := e.rfReg(n.RF, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	imm, err := e.number(n.Imm, WidthImm4, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	builder.
		Literal(ac, WidthAC).
		Literal(rf, WidthRF).
		Literal(imm, WidthImm4)

	return builder.Units(n.Position), nil
}

// JAL  |100110      |imm10               |
func (e *Encoder) jType(n *ast.JType) ([]image.Unit, error) {
	builder, err := e.opcode(n.Position, n.Mnemonic, isa.FormatJ)
	if err != nil {
		return nil, err
	}

	imm, err := e.number(n.Imm, WidthJ, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	builder.Literal(imm, WidthJ)

	return builder.Units(n.Position), nil
}

// MTAC |010011      |AC  |RF      |0000    |
func (e *Encoder) e1(n *ast.E1) ([]image.Unit, error) {
	builder, err := e.opcode(n.Position, n.Mnemonic, isa.FormatE1)
	if err != nil {
		return nil, err
	}

	ac, err := e.accReg(n.AC, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	rf, err := e.rfReg(n.RF, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	builder.Literal(ac, WidthAC).Literal(rf, WidthRF).Literal(0, 4)

	return builder.Units(n.Position), nil
}

// JR   |100111      |00  |RF      |0000    |
func (e *Encoder) e2(n *ast.E2) ([]image.Unit, error) {
	builder, err := e.opcode(n.Position, n.Mnemonic, isa.FormatE2)
	if err != nil {
		return nil, err
	}

	rf, err := e.rfReg(n.RF, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	builder.Literal(0, 2).Literal(rf, WidthRF).Literal(0, 4)

	return builder.Units(n.Position), nil
}

// MTL  |001111      |AC  |00000000        |
func (e *Encoder) e3(n *ast.E3) ([]image.Unit, error) {
	builder, err := e.opcode(n.Position, n.Mnemonic, isa.FormatE3)
	if err != nil {
		return nil, err
	}

	ac, err := e.accReg(n.AC, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	builder.Literal(ac, WidthAC).Literal(0, 8)

	return builder.Units(n.Position), nil
}

// TMUL |001101      |000000      |RF      |
func (e *Encoder) e4(n *ast.E4) ([]image.Unit, error) {
	builder, err := e.opcode(n.Position, n.Mnemonic, isa.FormatE4)
	if err != nil {
		return nil, err
	}

	rf, err := e.rfReg(n.RF, n.Mnemonic)
	if err != nil {
		return nil, err
	}

	builder.Literal(0, 6).Literal(rf, WidthRF)

	return builder.Units(n.Position), nil
}

// sequence collects the primitive instructions a pseudo-instruction lowers
// to. The first failure sticks and is reported by done.
type sequence struct {
	e     *Encoder
	pos   token.Cursor
	units []image.Unit
	err   error
}

func (e *Encoder) sequence(pos token.Cursor) *sequence {
	return &sequence{e: e, pos: pos}
}

func (s *sequence) emit(mnemonic string, format isa.Format, fields ...image.Segment) {
	if s.err != nil {
		return
	}

	builder, err := s.e.opcode(s.pos, mnemonic, format)

	if err != nil {
		s.err = err
		return
	}

	for _, field := range fields {
		builder.Segment(field)
	}

	if builder.Width() != isa.InstructionBits {
		panic(fmt.Sprintf("encoder: '%s' lowered to %d bits", mnemonic, builder.Width()))
	}

	s.units = append(s.units, builder.Units(s.pos)...)
}

// loadAddress leaves hi:lo in the scratch accumulator.
func (s *sequence) loadAddress(hi, lo image.Segment) {
	s.emit("lui", isa.FormatI, scratchAC(), hi)
	s.emit("ori", isa.FormatI, scratchAC(), lo)
}

func (s *sequence) done() ([]image.Unit, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.units, nil
}

func scratchAC() image.Segment { return image.Literal(ScratchAC, WidthAC) }
func scratchRF() image.Segment { return image.Literal(ScratchRF, WidthRF) }
func zero(width uint8) image.Segment { return image.Literal(0, width) }

// jump T
//
//	lui  &1, T[15:8]
//	ori  &1, T[7:0]
//	mfac &1, $1
//	jr   $1
func (e *Encoder) jump(n *ast.PseudoJump) ([]image.Unit, error) {
	var hi, lo image.Segment

	switch target := n.Target.(type) {
	case *ast.Number:
		addr, err := e.number(target, WidthWord, n.Op())

		if err != nil {
			return nil, err
		}

		hi = image.Literal(addr>>8, 8)
		lo = image.Literal(addr, 8)

	case *ast.LabelRef:
		hi = image.Placeholder(target.Name, 15, 8, target.Position)
		lo = image.Placeholder(target.Name, 7, 0, target.Position)

	default:
		return nil, &UnknownNodeError{n.Position, fmt.Sprintf("%T", n.Target)}
	}

	s := e.sequence(n.Position)
	s.loadAddress(hi, lo)
	s.emit("mfac", isa.FormatE1, scratchAC(), scratchRF(), zero(4))
	s.emit("jr", isa.FormatE2, zero(2), scratchRF(), zero(4))

	return s.done()
}

// mul $a, $b / div $a, $b
//
//	lli  &1, 0
//	lui  &1, 0
//	mth  &1
//	mtl  &1
//	mtac &1, $a
//	mtl  &1
//	lli  &1, 0
//	lui  &1, 0
//	tmul $b       (x16, one per bit of the word)
func (e *Encoder) mulDiv(op, step string, pos token.Cursor, a, b *ast.RegFileReg) ([]image.Unit, error) {
	ra, err := e.rfReg(a, op)
	if err != nil {
		return nil, err
	}

	rb, err := e.rfReg(b, op)
	if err != nil {
		return nil, err
	}

	s := e.sequence(pos)
	s.emit("lli", isa.FormatI, scratchAC(), zero(8))
	s.emit("lui", isa.FormatI, scratchAC(), zero(8))
	s.emit("mth", isa.FormatE3, scratchAC(), zero(8))
	s.emit("mtl", isa.FormatE3, scratchAC(), zero(8))
	s.emit("mtac", isa.FormatE1, scratchAC(), image.Literal(ra, WidthRF), zero(4))
	s.emit("mtl", isa.FormatE3, scratchAC(), zero(8))
	s.emit("lli", isa.FormatI, scratchAC(), zero(8))
	s.emit("lui", isa.FormatI, scratchAC(), zero(8))

	for i := 0; i < WidthWord; i++ {
		s.emit(step, isa.FormatE4, zero(6), image.Literal(rb, WidthRF))
	}

	return s.done()
}

// lw &d, _L(N) / sw &s, _L(N)
//
//	lui  &1, L[15:8]
//	ori  &1, L[7:0]
//	addi &1, N
//	mfac &1, $1
//	lwr  &d, $1
func (e *Encoder) memory(op, access string, pos token.Cursor, ac *ast.AccReg, label *ast.LabelRef, offset *ast.Number) ([]image.Unit, error) {
	reg, err := e.accReg(ac, op)
	if err != nil {
		return nil, err
	}

	off, err := e.number(offset, WidthImm8, op)
	if err != nil {
		return nil, err
	}

	s := e.sequence(pos)
	s.loadAddress(
		image.Placeholder(label.Name, 15, 8, label.Position),
		image.Placeholder(label.Name, 7, 0, label.Position),
	)
	s.emit("addi", isa.FormatI, scratchAC(), image.Literal(off, WidthImm8))
	s.emit("mfac", isa.FormatE1, scratchAC(), scratchRF(), zero(4))
	s.emit(access, isa.FormatE1, image.Literal(reg, WidthAC), scratchRF(), zero(4))

	return s.done()
}

// swap $a, $b
//
//	xor  &1, $a, $b
//	mfac &1, $a
//	xor  &1, $a, $b
//	mfac &1, $b
//	xor  &1, $a, $b
//	mfac &1, $a
func (e *Encoder) swap(n *ast.PseudoSwap) ([]image.Unit, error) {
	ra, err := e.rfReg(n.A, n.Op())
	if err != nil {
		return nil, err
	}

	rb, err := e.rfReg(n.B, n.Op())
	if err != nil {
		return nil, err
	}

	a := image.Literal(ra, WidthRF)
	b := image.Literal(rb, WidthRF)

	s := e.sequence(n.Position)

	for _, dst := range []image.Segment{a, b, a} {
		s.emit("xor", isa.FormatR, scratchAC(), a, b)
		s.emit("mfac", isa.FormatE1, scratchAC(), dst, zero(4))
	}

	return s.done()
}
