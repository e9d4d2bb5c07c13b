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

package parser

import (
	"github.com/lassandro/ac16/pkg/ast"
	"github.com/lassandro/ac16/pkg/isa"
	"github.com/lassandro/ac16/pkg/token"
)

func (p *Parser) instruction() (ast.Instruction, error) {
	tok := p.advance()
	pos := tok.Position

	switch tok.Value {
	// jump _label | jump N
	case "jump":
		target, err := p.expect(token.NUMBER, token.LABEL)

		if err != nil {
			return nil, err
		}

		var node ast.Node = &ast.Number{Position: target.Position, Lexeme: target.Value}

		if target.Kind == token.LABEL {
			node = &ast.LabelRef{Position: target.Position, Name: target.Value}
		}

		return &ast.PseudoJump{Position: pos, Target: node}, nil

	// mul $a, $b | div $a, $b | swap $a, $b
	case "mul", "div", "swap":
		a, b, err := p.rfPair()

		if err != nil {
			return nil, err
		}

		switch tok.Value {
		case "mul":
			return &ast.PseudoMul{Position: pos, A: a, B: b}, nil
		case "div":
			return &ast.PseudoDiv{Position: pos, A: a, B: b}, nil
		default:
			return &ast.PseudoSwap{Position: pos, A: a, B: b}, nil
		}

	// lw &ac, _label(N) | sw &ac, _label(N)
	case "lw", "sw":
		ac, label, offset, err := p.memOperands()

		if err != nil {
			return nil, err
		}

		if tok.Value == "lw" {
			return &ast.PseudoLoad{
				Position: pos, AC: ac, Label: label, Offset: offset,
			}, nil
		}

		return &ast.PseudoStore{
			Position: pos, AC: ac, Label: label, Offset: offset,
		}, nil
	}

	inst, ok := p.table.Lookup(tok.Value)

	if !ok {
		return nil, &UnknownMnemonicError{pos, tok.Value}
	}

	switch inst.Format {
	case isa.FormatN:
		return &ast.NType{Position: pos, Mnemonic: inst.Mnemonic}, nil

	// R  &ac, $rf, $rf
	case isa.FormatR:
		ac, err := p.accReg()
		if err != nil {
			return nil, err
		}

		if err := p.comma(); err != nil {
			return nil, err
		}

		rf1, rf2, err := p.rfPair()
		if err != nil {
			return nil, err
		}

		return &ast.RType{
			Position: pos, Mnemonic: inst.Mnemonic, AC: ac, RF1: rf1, RF2: rf2,
		}, nil

	// I  &ac, imm8
	case isa.FormatI:
		ac, err := p.accReg()
		if err != nil {
			return nil, err
		}

		if err := p.comma(); err != nil {
			return nil, err
		}

		imm, err := p.number()
		if err != nil {
			return nil, err
		}

		return &ast.IType{
			Position: pos, Mnemonic: inst.Mnemonic, AC: ac, Imm: imm,
		}, nil

	// S  &ac, $rf, imm4
	case isa.FormatS:
		ac, rf, err := p.acRFPair()
		if err != nil {
			return nil, err
		}

		if err := p.comma(); err != nil {
			return nil, err
		}

		imm, err := p.number()
		if err != nil {
			return nil, err
		}

		return &ast.SType{
			Position: pos, Mnemonic: inst.Mnemonic, AC: ac, RF: rf, Imm: imm,
		}, nil

	// J  imm10
	case isa.FormatJ:
		imm, err := p.number()
		if err != nil {
			return nil, err
		}

		return &ast.JType{Position: pos, Mnemonic: inst.Mnemonic, Imm: imm}, nil

	// E1 &ac, $rf
	case isa.FormatE1:
		ac, rf, err := p.acRFPair()
		if err != nil {
			return nil, err
		}

		return &ast.E1{Position: pos, Mnemonic: inst.Mnemonic, AC: ac, RF: rf}, nil

	// E2 $rf
	case isa.FormatE2:
		rf, err := p.rfReg()
		if err != nil {
			return nil, err
		}

		return &ast.E2{Position: pos, Mnemonic: inst.Mnemonic, RF: rf}, nil

	// E3 &ac
	case isa.FormatE3:
		ac, err := p.accReg()
		if err != nil {
			return nil, err
		}

		return &ast.E3{Position: pos, Mnemonic: inst.Mnemonic, AC: ac}, nil

	// E4 $rf
	case isa.FormatE4:
		rf, err := p.rfReg()
		if err != nil {
			return nil, err
		}

		return &ast.E4{Position: pos, Mnemonic: inst.Mnemonic, RF: rf}, nil
	}

	return nil, &UnknownMnemonicError{pos, tok.Value}
}

func (p *Parser) rfPair() (*ast.RegFileReg, *ast.RegFileReg, error) {
	a, err := p.rfReg()
	if err != nil {
		return nil, nil, err
	}

	if err := p.comma(); err != nil {
		return nil, nil, err
	}

	b, err := p.rfReg()
	if err != nil {
		return nil, nil, err
	}

	return a, b, nil
}

func (p *Parser) acRFPair() (*ast.AccReg, *ast.RegFileReg, error) {
	ac, err := p.accReg()
	if err != nil {
		return nil, nil, err
	}

	if err := p.comma(); err != nil {
		return nil, nil, err
	}

	rf, err := p.rfReg()
	if err != nil {
		return nil, nil, err
	}

	return ac, rf, nil
}

// &ac, _label(N)
func (p *Parser) memOperands() (*ast.AccReg, *ast.LabelRef, *ast.Number, error) {
	ac, err := p.accReg()
	if err != nil {
		return nil, nil, nil, err
	}

	if err := p.comma(); err != nil {
		return nil, nil, nil, err
	}

	label, err := p.labelRef()
	if err != nil {
		return nil, nil, nil, err
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, nil, nil, err
	}

	offset, err := p.number()
	if err != nil {
		return nil, nil, nil, err
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, nil, nil, err
	}

	return ac, label, offset, nil
}
