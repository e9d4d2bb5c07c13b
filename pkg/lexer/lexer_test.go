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

package lexer_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lassandro/ac16/pkg/lexer"
	"github.com/lassandro/ac16/pkg/token"
)

type testCase struct {
	Name   string
	Input  string
	Kinds  []token.Kind
	Values []string
}

type failCase struct {
	Name  string
	Input string
	Error error
}

func testLexerSuccess(t *testing.T, test *testCase) {
	tokens, err := lexer.Tokenize("test.s", strings.NewReader(test.Input))

	if err != nil {
		t.Fatal(err)
	}

	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}

	if !reflect.DeepEqual(kinds, test.Kinds) {
		t.Fatalf("Token kind mismatch\nwant:%v\nhave:%v", test.Kinds, kinds)
	}

	if test.Values == nil {
		return
	}

	for i, want := range test.Values {
		if have := tokens[i].Value; have != want {
			t.Fatalf(
				"Token value mismatch\nwant:%q (test.Values[%d])\nhave:%q",
				want,
				i,
				have,
			)
		}
	}
}

func testLexerFail(t *testing.T, test *failCase) {
	if test.Error == nil {
		panic("Fail case missing error value")
	}

	_, err := lexer.Tokenize("test.s", strings.NewReader(test.Input))

	if err == nil {
		t.Fatalf(
			"%s produced no error\nwant:%T (test.Error)\nhave:<nil>",
			t.Name(),
			test.Error,
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
				testLexerSuccess(t, &test)
			})
		}
	})
}

func testFail(t *testing.T, tests []failCase) {
	t.Run("Fail", func(t *testing.T) {
		for _, test := range tests {
			test := test
			t.Run(test.Name, func(t *testing.T) {
				testLexerFail(t, &test)
			})
		}
	})
}

func TestInstruction(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:  "R-type",
			Input: `.inst _loop: add &0, $2, $3`,
			Kinds: []token.Kind{
				token.INST, token.LABEL, token.COLON, token.MNEMONIC,
				token.ACREG, token.COMMA, token.RFREG, token.COMMA,
				token.RFREG, token.EOF,
			},
			Values: []string{
				".inst", "_loop", ":", "add", "&0", ",", "$2", ",", "$3", "",
			},
		},
		{
			Name:  "Upper case",
			Input: `.INST ADD &0,$2,$3`,
			Kinds: []token.Kind{
				token.INST, token.MNEMONIC, token.ACREG, token.COMMA,
				token.RFREG, token.COMMA, token.RFREG, token.EOF,
			},
			Values: []string{".inst", "add"},
		},
		{
			Name:  "Load",
			Input: "lw &2, _buf(3)",
			Kinds: []token.Kind{
				token.MNEMONIC, token.ACREG, token.COMMA, token.LABEL,
				token.LPAREN, token.NUMBER, token.RPAREN, token.EOF,
			},
		},
		{
			Name:  "Label with digits",
			Input: "jump _l00p_2",
			Kinds: []token.Kind{token.MNEMONIC, token.LABEL, token.EOF},
			Values: []string{"jump", "_l00p_2"},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Bare accumulator sigil",
			Input: "add &, $2, $3",
			Error: &lexer.UnexpectedCharacterError{},
		},
		{
			Name:  "Bare register sigil",
			Input: "add &0, $",
			Error: &lexer.UnexpectedCharacterError{},
		},
		{
			Name:  "Bare label sigil",
			Input: "jump _",
			Error: &lexer.UnexpectedCharacterError{},
		},
		{
			Name:  "Register suffix",
			Input: "add &0x, $2, $3",
			Error: &lexer.UnexpectedCharacterError{},
		},
		{
			Name:  "Mnemonic with digits",
			Input: "r2",
			Error: &lexer.UnexpectedCharacterError{},
		},
		{
			Name:  "Unknown character",
			Input: "add @0, $2, $3",
			Error: &lexer.UnexpectedCharacterError{},
		},
	})
}

func TestData(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:  "Word list",
			Input: `.data .word 258, -1, +7`,
			Kinds: []token.Kind{
				token.DATA, token.WORD, token.NUMBER, token.COMMA,
				token.NUMBER, token.COMMA, token.NUMBER, token.EOF,
			},
			Values: []string{".data", ".word", "258", ",", "-1", ",", "+7"},
		},
		{
			Name:  "All directives",
			Input: `.include .data .inst .space .word .byte .ascii`,
			Kinds: []token.Kind{
				token.INCLUDE, token.DATA, token.INST, token.SPACE,
				token.WORD, token.BYTE, token.ASCII, token.EOF,
			},
		},
		{
			Name:  "String",
			Input: `.ascii "a \"quoted\" b; #"`,
			Kinds: []token.Kind{token.ASCII, token.STRING, token.EOF},
			Values: []string{".ascii", `"a \"quoted\" b; #"`},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Unknown directive",
			Input: `.text`,
			Error: &lexer.UnknownDirectiveError{},
		},
		{
			Name:  "Bare dot",
			Input: `. word`,
			Error: &lexer.UnknownDirectiveError{},
		},
		{
			Name:  "Unterminated string",
			Input: `.ascii "abc`,
			Error: &lexer.InvalidStringError{},
		},
		{
			Name:  "String across lines",
			Input: ".ascii \"abc\n\"",
			Error: &lexer.InvalidStringError{},
		},
		{
			Name:  "Bad escape",
			Input: `.ascii "\q"`,
			Error: &lexer.InvalidStringError{},
		},
		{
			Name:  "Bare sign",
			Input: `.word -`,
			Error: &lexer.UnexpectedCharacterError{},
		},
		{
			Name:  "Number suffix",
			Input: `.word 12ab`,
			Error: &lexer.UnexpectedCharacterError{},
		},
	})
}

func TestComment(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:  "Semicolon",
			Input: "; comment\nnop ; trailing",
			Kinds: []token.Kind{token.MNEMONIC, token.EOF},
		},
		{
			Name:  "Hash",
			Input: "# comment\nnop # trailing",
			Kinds: []token.Kind{token.MNEMONIC, token.EOF},
		},
		{
			Name:  "Empty",
			Input: "",
			Kinds: []token.Kind{token.EOF},
		},
		{
			Name:  "Blank lines",
			Input: "\r\n\n\t\n",
			Kinds: []token.Kind{token.EOF},
		},
	})
}

func TestPosition(t *testing.T) {
	input := ".inst\n  add &0, $2, $3\n"

	tokens, err := lexer.Tokenize("pos.s", strings.NewReader(input))

	if err != nil {
		t.Fatal(err)
	}

	add := tokens[1].Position
	want := token.Cursor{
		File:     "pos.s",
		Line:     2,
		Column:   3,
		Byte:     8,
		Size:     3,
		LineByte: 6,
	}

	if add != want {
		t.Fatalf("Position mismatch\nwant:%+v\nhave:%+v", want, add)
	}

	_, err = lexer.Tokenize("pos.s", strings.NewReader("nop\n  nop @"))

	unexpected, ok := err.(*lexer.UnexpectedCharacterError)

	if !ok {
		t.Fatalf("want:*lexer.UnexpectedCharacterError\nhave:%T", err)
	}

	if pos := unexpected.GetPosition(); pos.Line != 2 || pos.Column != 7 {
		t.Fatalf("Position mismatch\nwant:02:07\nhave:%s", pos)
	}

	if unexpected.Received != '@' {
		t.Fatalf("Character mismatch\nwant:'@'\nhave:%q", unexpected.Received)
	}
}
