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

package parser_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/lassandro/ac16/pkg/ast"
	"github.com/lassandro/ac16/pkg/lexer"
	"github.com/lassandro/ac16/pkg/parser"
)

type testCase struct {
	Name   string
	Input  string
	Output string
}

type failCase struct {
	Name  string
	Input string
	Error error
}

// render prints a tree as nested s-expressions without positions.
func render(n ast.Node) string {
	var head string

	switch n := n.(type) {
	case *ast.Program:
		head = "Program"
	case *ast.Include:
		head = "Include"
	case *ast.DataField:
		head = "Data"
	case *ast.InstField:
		head = "Inst"
	case *ast.LabelDec:
		return n.Name + ":"
	case *ast.LabelRef:
		return n.Name
	case *ast.Number:
		return n.Lexeme
	case *ast.String:
		return n.Lexeme
	case *ast.AccReg:
		return n.Lexeme
	case *ast.RegFileReg:
		return n.Lexeme
	case *ast.Space:
		head = "Space"
	case *ast.Word:
		head = "Word"
	case *ast.Byte:
		head = "Byte"
	case *ast.ASCII:
		head = "ASCII"
	case ast.Instruction:
		head = fmt.Sprintf("%s %s", strings.TrimPrefix(reflect.TypeOf(n).Elem().Name(), "Pseudo"), n.Op())
	default:
		head = fmt.Sprintf("%T", n)
	}

	parts := []string{head}
	for _, child := range n.Children() {
		parts = append(parts, render(child))
	}

	return "(" + strings.Join(parts, " ") + ")"
}

func parse(input string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize("test.s", strings.NewReader(input))

	if err != nil {
		return nil, err
	}

	return parser.Parse(tokens, nil)
}

func testParserSuccess(t *testing.T, test *testCase) {
	program, err := parse(test.Input)

	if err != nil {
		t.Fatal(err)
	}

	if have := render(program); have != test.Output {
		t.Fatalf(
			"Syntax tree mismatch\nwant:%s\nhave:%s\n%s",
			test.Output,
			have,
			spew.Sdump(program),
		)
	}
}

func testParserFail(t *testing.T, test *failCase) {
	if test.Error == nil {
		panic("Fail case missing error value")
	}

	program, err := parse(test.Input)

	if err == nil {
		t.Fatalf(
			"%s produced no error\nwant:%T (test.Error)\nhave:<nil>\n%s",
			t.Name(),
			test.Error,
			spew.Sdump(program),
		)
	}

	if reflect.TypeOf(err) != reflect.TypeOf(test.Error) {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:%T (%v)",
			t.Name(),
			test.Error,
			err,
			err,
		)
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			test := test
			t.Run(test.Name, func(t *testing.T) {
				testParserSuccess(t, &test)
			})
		}
	})
}

func testFail(t *testing.T, tests []failCase) {
	t.Run("Fail", func(t *testing.T) {
		for _, test := range tests {
			test := test
			t.Run(test.Name, func(t *testing.T) {
				testParserFail(t, &test)
			})
		}
	})
}

func TestProgram(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Empty",
			Input:  "",
			Output: "(Program)",
		},
		{
			Name:   "Empty fields",
			Input:  ".data .inst",
			Output: "(Program (Data) (Inst))",
		},
		{
			Name:   "Include",
			Input:  `.include "lib.s" .inst nop`,
			Output: `(Program (Include "lib.s") (Inst (NType nop)))`,
		},
		{
			Name:   "Repeated fields",
			Input:  ".inst nop .data .byte 1 .inst nop",
			Output: "(Program (Inst (NType nop)) (Data (Byte 1)) (Inst (NType nop)))",
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Instruction outside field",
			Input: "nop",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Include without path",
			Input: ".include lib",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Data in instruction field",
			Input: ".inst .word 1",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Instruction in data field",
			Input: ".data nop",
			Error: &parser.UnexpectedTokenError{},
		},
	})
}

func TestDataField(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Word",
			Input:  ".data .word 258",
			Output: "(Program (Data (Word 258)))",
		},
		{
			Name:   "Word list",
			Input:  ".data .word 1, -2, 3",
			Output: "(Program (Data (Word 1 -2 3)))",
		},
		{
			Name:   "Labels",
			Input:  ".data _buf: .space 4 _msg: .ascii \"hi\" .byte 1, 2",
			Output: `(Program (Data _buf: (Space 4) _msg: (ASCII "hi") (Byte 1 2)))`,
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Word without value",
			Input: ".data .word",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Trailing comma",
			Input: ".data .byte 1,",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "ASCII number",
			Input: ".data .ascii 5",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Label without colon",
			Input: ".data _buf .space 4",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Label without data",
			Input: ".data _buf:",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Double label",
			Input: ".data _a: _b: .byte 1",
			Error: &parser.UnexpectedTokenError{},
		},
	})
}

func TestInstField(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "R",
			Input:  ".inst _loop: add &0, $2, $3",
			Output: "(Program (Inst _loop: (RType add &0 $2 $3)))",
		},
		{
			Name:   "I",
			Input:  ".inst addi &2, -5",
			Output: "(Program (Inst (IType addi &2 -5)))",
		},
		{
			Name:   "S",
			Input:  ".inst sll &2, $4, 3",
			Output: "(Program (Inst (SType sll &2 $4 3)))",
		},
		{
			Name:   "J",
			Input:  ".inst jal 1000",
			Output: "(Program (Inst (JType jal 1000)))",
		},
		{
			Name:   "E1-E4",
			Input:  ".inst not &0, $2 jr $3 push &2 tmul $4",
			Output: "(Program (Inst (E1 not &0 $2) (E2 jr $3) (E3 push &2) (E4 tmul $4)))",
		},
		{
			Name:   "N",
			Input:  ".inst nop",
			Output: "(Program (Inst (NType nop)))",
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Unknown mnemonic",
			Input: ".inst frob &0",
			Error: &parser.UnknownMnemonicError{},
		},
		{
			Name:  "Missing comma",
			Input: ".inst add &0 $2, $3",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Register kinds swapped",
			Input: ".inst add $0, &2, $3",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Too few operands",
			Input: ".inst add &0, $2",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Too many operands",
			Input: ".inst push &0, &2",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Label immediate",
			Input: ".inst jal _target",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "String immediate",
			Input: `.inst addi &0, "a"`,
			Error: &parser.UnexpectedTokenError{},
		},
	})
}

func TestPseudo(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Jump label",
			Input:  ".inst jump _target",
			Output: "(Program (Inst (Jump jump _target)))",
		},
		{
			Name:   "Jump number",
			Input:  ".inst _start: jump 512",
			Output: "(Program (Inst _start: (Jump jump 512)))",
		},
		{
			Name:   "Arithmetic",
			Input:  ".inst mul $2, $3 div $4, $5 swap $6, $7",
			Output: "(Program (Inst (Mul mul $2 $3) (Div div $4 $5) (Swap swap $6 $7)))",
		},
		{
			Name:   "Memory",
			Input:  ".inst lw &2, _buf(3) sw &3, _buf(-1)",
			Output: "(Program (Inst (Load lw &2 _buf 3) (Store sw &3 _buf -1)))",
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Jump register",
			Input: ".inst jump $2",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Mul accumulator",
			Input: ".inst mul &2, $3",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Load without offset",
			Input: ".inst lw &2, _buf",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Load unclosed",
			Input: ".inst lw &2, _buf(3",
			Error: &parser.UnexpectedTokenError{},
		},
		{
			Name:  "Store number address",
			Input: ".inst sw &2, 10(3)",
			Error: &parser.UnexpectedTokenError{},
		},
	})
}

func TestErrorMessage(t *testing.T) {
	_, err := parse(".inst add &0, 5, $3")

	unexpected, ok := err.(*parser.UnexpectedTokenError)

	if !ok {
		t.Fatalf("want:*parser.UnexpectedTokenError\nhave:%T", err)
	}

	want := "test.s:01:15: Unexpected token\n\twant:RF register\n\thave:Number '5'"

	if have := unexpected.Error(); have != want {
		t.Fatalf("Message mismatch\nwant:%q\nhave:%q", want, have)
	}
}
