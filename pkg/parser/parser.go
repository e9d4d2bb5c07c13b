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

// Package parser builds an ast.Program from a token stream.
//
// Grammar:
//
//	program     = (dataField | instField | include)* EOF
//	include     = ".include" STRING
//	dataField   = ".data" (labelDec? data)*
//	data        = ".space" NUMBER
//	            | ".word" NUMBER ("," NUMBER)*
//	            | ".byte" NUMBER ("," NUMBER)*
//	            | ".ascii" STRING
//	instField   = ".inst" (labelDec? instruction)*
//	labelDec    = LABEL ":"
//	instruction = MNEMONIC operands   (shape chosen by the mnemonic)
//
// Pseudo-instructions are recognised before the instruction table is
// consulted, so they shadow any real instruction of the same name.
package parser

import (
	"github.com/lassandro/ac16/pkg/ast"
	"github.com/lassandro/ac16/pkg/isa"
	"github.com/lassandro/ac16/pkg/token"
)

type Parser struct {
	tokens []token.Token
	pos    int
	table  *isa.Table
}

func New(tokens []token.Token, table *isa.Table) *Parser {
	if table == nil {
		table = isa.Default()
	}

	return &Parser{tokens: tokens, table: table}
}

// Parse is shorthand for New(tokens, table).Parse().
func Parse(tokens []token.Token, table *isa.Table) (*ast.Program, error) {
	return New(tokens, table).Parse()
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) > 0 {
			last := p.tokens[len(p.tokens)-1]
			return token.Token{Kind: token.EOF, Position: last.Position}
		}

		return token.Token{Kind: token.EOF}
	}

	return p.tokens[p.pos]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()

	if p.pos < len(p.tokens) {
		p.pos++
	}

	return tok
}

func (p *Parser) expect(kinds ...token.Kind) (token.Token, error) {
	tok := p.peek()

	for _, kind := range kinds {
		if tok.Kind == kind {
			return p.advance(), nil
		}
	}

	return tok, &UnexpectedTokenError{
		Position: tok.Position,
		Expected: kinds,
		Received: tok.Kind,
		Lexeme:   tok.Value,
	}
}

func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{Position: p.peek().Position}

	for {
		var field ast.Field
		var err error

		switch p.peek().Kind {
		case token.EOF:
			return program, nil
		case token.DATA:
			field, err = p.dataField()
		case token.INST:
			field, err = p.instField()
		case token.INCLUDE:
			field, err = p.include()
		default:
			_, err = p.expect(token.DATA, token.INST, token.INCLUDE, token.EOF)
		}

		if err != nil {
			return nil, err
		}

		program.Fields = append(program.Fields, field)
	}
}

func (p *Parser) include() (*ast.Include, error) {
	tok := p.advance()

	path, err := p.string()

	if err != nil {
		return nil, err
	}

	return &ast.Include{Position: tok.Position, Path: path}, nil
}

func (p *Parser) dataField() (*ast.DataField, error) {
	tok := p.advance()
	field := &ast.DataField{Position: tok.Position}

	for {
		switch p.peek().Kind {
		case token.LABEL:
			label, err := p.labelDec()

			if err != nil {
				return nil, err
			}

			field.Items = append(field.Items, label)

			if _, err := p.expectAhead(
				token.SPACE, token.WORD, token.BYTE, token.ASCII,
			); err != nil {
				return nil, err
			}

		case token.SPACE, token.WORD, token.BYTE, token.ASCII:
			item, err := p.data()

			if err != nil {
				return nil, err
			}

			field.Items = append(field.Items, item)

		default:
			return field, nil
		}
	}
}

// expectAhead checks the next token without consuming it.
func (p *Parser) expectAhead(kinds ...token.Kind) (token.Token, error) {
	tok, err := p.expect(kinds...)

	if err == nil {
		p.pos--
	}

	return tok, err
}

func (p *Parser) data() (ast.Item, error) {
	tok := p.advance()

	switch tok.Kind {
	case token.SPACE:
		count, err := p.number()

		if err != nil {
			return nil, err
		}

		return &ast.Space{Position: tok.Position, Count: count}, nil

	case token.WORD:
		values, err := p.numberList()

		if err != nil {
			return nil, err
		}

		return &ast.Word{Position: tok.Position, Values: values}, nil

	case token.BYTE:
		values, err := p.numberList()

		if err != nil {
			return nil, err
		}

		return &ast.Byte{Position: tok.Position, Values: values}, nil

	default:
		text, err := p.string()

		if err != nil {
			return nil, err
		}

		return &ast.ASCII{Position: tok.Position, Text: text}, nil
	}
}

func (p *Parser) numberList() ([]*ast.Number, error) {
	first, err := p.number()

	if err != nil {
		return nil, err
	}

	values := []*ast.Number{first}

	for p.peek().Kind == token.COMMA {
		p.advance()

		next, err := p.number()

		if err != nil {
			return nil, err
		}

		values = append(values, next)
	}

	return values, nil
}

func (p *Parser) instField() (*ast.InstField, error) {
	tok := p.advance()
	field := &ast.InstField{Position: tok.Position}

	for {
		switch p.peek().Kind {
		case token.LABEL:
			label, err := p.labelDec()

			if err != nil {
				return nil, err
			}

			field.Items = append(field.Items, label)

			if _, err := p.expectAhead(token.MNEMONIC); err != nil {
				return nil, err
			}

		case token.MNEMONIC:
			inst, err := p.instruction()

			if err != nil {
				return nil, err
			}

			field.Items = append(field.Items, inst)

		default:
			return field, nil
		}
	}
}

func (p *Parser) labelDec() (*ast.LabelDec, error) {
	tok := p.advance()

	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}

	return &ast.LabelDec{Position: tok.Position, Name: tok.Value}, nil
}

// Operands

func (p *Parser) number() (*ast.Number, error) {
	tok, err := p.expect(token.NUMBER)

	if err != nil {
		return nil, err
	}

	return &ast.Number{Position: tok.Position, Lexeme: tok.Value}, nil
}

func (p *Parser) string() (*ast.String, error) {
	tok, err := p.expect(token.STRING)

	if err != nil {
		return nil, err
	}

	return &ast.String{Position: tok.Position, Lexeme: tok.Value}, nil
}

func (p *Parser) labelRef() (*ast.LabelRef, error) {
	tok, err := p.expect(token.LABEL)

	if err != nil {
		return nil, err
	}

	return &ast.LabelRef{Position: tok.Position, Name: tok.Value}, nil
}

func (p *Parser) accReg() (*ast.AccReg, error) {
	tok, err := p.expect(token.ACREG)

	if err != nil {
		return nil, err
	}

	return &ast.AccReg{Position: tok.Position, Lexeme: tok.Value}, nil
}

func (p *Parser) rfReg() (*ast.RegFileReg, error) {
	tok, err := p.expect(token.RFREG)

	if err != nil {
		return nil, err
	}

	return &ast.RegFileReg{Position: tok.Position, Lexeme: tok.Value}, nil
}

func (p *Parser) comma() error {
	_, err := p.expect(token.COMMA)
	return err
}
