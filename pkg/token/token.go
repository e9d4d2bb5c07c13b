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

// Package token defines the lexical vocabulary shared by the lexer, parser
// and every later stage that reports a source position.
package token

import (
	"fmt"
	"strings"
)

type Kind uint

const (
	NONE Kind = iota
	EOF

	// Directives
	DATA
	INST
	SPACE
	WORD
	BYTE
	ASCII
	INCLUDE

	// Punctuation
	COMMA
	COLON
	LPAREN
	RPAREN

	// Operands
	MNEMONIC
	ACREG
	RFREG
	LABEL
	NUMBER
	STRING
)

var kindNames = [...]string{
	NONE:     "<invalid>",
	EOF:      "end of file",
	DATA:     ".data",
	INST:     ".inst",
	SPACE:    ".space",
	WORD:     ".word",
	BYTE:     ".byte",
	ASCII:    ".ascii",
	INCLUDE:  ".include",
	COMMA:    "','",
	COLON:    "':'",
	LPAREN:   "'('",
	RPAREN:   "')'",
	MNEMONIC: "Mnemonic",
	ACREG:    "AC register",
	RFREG:    "RF register",
	LABEL:    "Label",
	NUMBER:   "Number",
	STRING:   "String",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}

	return kindNames[NONE]
}

// Directives maps the lower-case spelling of every directive to its kind.
var Directives = map[string]Kind{
	".data":    DATA,
	".inst":    INST,
	".space":   SPACE,
	".word":    WORD,
	".byte":    BYTE,
	".ascii":   ASCII,
	".include": INCLUDE,
}

// IsDirective reports whether k opens a directive.
func (k Kind) IsDirective() bool {
	return k >= DATA && k <= INCLUDE
}

// JoinKinds renders a list of kinds the way diagnostics print them:
// "A", "A or B", "A, B, or C".
func JoinKinds(kinds []Kind) string {
	names := make([]string, 0, len(kinds))

	for _, kind := range kinds {
		names = append(names, kind.String())
	}

	switch count := len(names); {
	case count == 0:
		return ""
	case count == 1:
		return names[0]
	case count == 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:count-1], ", ") + ", or " + names[count-1]
	}
}

// Cursor locates a token inside its source file. Byte is the absolute
// offset of the token, LineByte the offset of the start of its line and
// Size the length of the lexeme in bytes.
type Cursor struct {
	File     string
	Line     int
	Column   int
	Byte     int64
	Size     int64
	LineByte int64
}

func (c Cursor) String() string {
	if c.File == "" {
		return fmt.Sprintf("%02d:%02d", c.Line, c.Column)
	}

	return fmt.Sprintf("%s:%02d:%02d", c.File, c.Line, c.Column)
}

type Token struct {
	Kind     Kind
	Position Cursor
	Value    string
}

func (t Token) String() string {
	if t.Value == "" {
		return t.Kind.String()
	}

	return fmt.Sprintf("%s %q", t.Kind, t.Value)
}

// PositionError is implemented by every error that can be traced back to
// a location in the source.
type PositionError interface {
	error
	GetPosition() Cursor
}
