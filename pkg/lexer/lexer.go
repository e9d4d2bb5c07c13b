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

// Package lexer turns assembly source into a token stream.
package lexer

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lassandro/ac16/pkg/token"
)

type scanner struct {
	file   string
	tokens []token.Token

	line     []byte
	lineNo   int
	lineByte int64
	pos      int
}

// Tokenize splits the source read from input into tokens. The returned
// slice always ends with a single token.EOF. Scanning stops at the first
// lexical error.
func Tokenize(file string, input io.Reader) ([]token.Token, error) {
	src, err := io.ReadAll(input)

	if err != nil {
		return nil, err
	}

	return TokenizeBytes(file, src)
}

func TokenizeBytes(file string, src []byte) ([]token.Token, error) {
	s := scanner{file: file, tokens: make([]token.Token, 0, len(src)/3)}

	var offset int64
	rest := src

	for len(rest) > 0 || s.lineNo == 0 {
		var line []byte

		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			line, rest = rest, nil
		}

		s.lineNo++
		s.lineByte = offset
		s.line = line
		s.pos = 0

		if err := s.scanLine(); err != nil {
			return nil, err
		}

		offset += int64(len(line) + 1)
	}

	s.tokens = append(s.tokens, token.Token{
		Kind: token.EOF,
		Position: token.Cursor{
			File:     file,
			Line:     s.lineNo,
			Column:   len(s.line) + 1,
			Byte:     int64(len(src)),
			LineByte: s.lineByte,
		},
	})

	return s.tokens, nil
}

func (s *scanner) cursor(start, end int) token.Cursor {
	return token.Cursor{
		File:     s.file,
		Line:     s.lineNo,
		Column:   start + 1,
		Byte:     s.lineByte + int64(start),
		Size:     int64(end - start),
		LineByte: s.lineByte,
	}
}

func (s *scanner) emit(kind token.Kind, start int, value string) {
	s.tokens = append(s.tokens, token.Token{
		Kind:     kind,
		Position: s.cursor(start, s.pos),
		Value:    value,
	})
}

func (s *scanner) unexpected(at int) error {
	if at >= len(s.line) {
		return &UnexpectedCharacterError{s.cursor(at, at+1), 0}
	}

	char, size := utf8.DecodeRune(s.line[at:])

	return &UnexpectedCharacterError{s.cursor(at, at+size), char}
}

func (s *scanner) skipWhile(accept func(byte) bool) {
	for s.pos < len(s.line) && accept(s.line[s.pos]) {
		s.pos++
	}
}

// Words must be followed by whitespace, punctuation, a comment or the end
// of the line: "12ab" and "add$2" are rejected here.
func (s *scanner) delimited() error {
	if s.pos >= len(s.line) {
		return nil
	}

	switch s.line[s.pos] {
	case ' ', '\t', '\r', ',', ':', '(', ')', ';', '#':
		return nil
	}

	return s.unexpected(s.pos)
}

func (s *scanner) scanLine() error {
	for s.pos < len(s.line) {
		start := s.pos
		char := s.line[s.pos]

		switch {
		// Whitespace
		case char == ' ' || char == '\t' || char == '\r':
			s.pos++
			continue

		// Comments
		case char == ';' || char == '#':
			return nil

		// Punctuation
		case char == ',':
			s.pos++
			s.emit(token.COMMA, start, ",")
			continue
		case char == ':':
			s.pos++
			s.emit(token.COLON, start, ":")
			continue
		case char == '(':
			s.pos++
			s.emit(token.LPAREN, start, "(")
			continue
		case char == ')':
			s.pos++
			s.emit(token.RPAREN, start, ")")
			continue

		// Assembler directives
		case char == '.':
			s.pos++
			s.skipWhile(isLetter)

			ident := strings.ToLower(string(s.line[start:s.pos]))
			kind, ok := token.Directives[ident]

			if !ok {
				return &UnknownDirectiveError{
					s.cursor(start, s.pos), string(s.line[start:s.pos]),
				}
			}

			s.emit(kind, start, ident)

		// Registers (&0 accumulator, $0 register file)
		case char == '&' || char == '$':
			s.pos++
			s.skipWhile(isDigit)

			if s.pos == start+1 {
				return s.unexpected(s.pos)
			}

			kind := token.ACREG
			if char == '$' {
				kind = token.RFREG
			}

			s.emit(kind, start, string(s.line[start:s.pos]))

		// Labels
		case char == '_':
			s.pos++
			s.skipWhile(isLabelChar)

			if s.pos == start+1 {
				return s.unexpected(start)
			}

			s.emit(token.LABEL, start, string(s.line[start:s.pos]))

		// Mnemonics
		case isLetter(char):
			s.skipWhile(isLetter)
			s.emit(
				token.MNEMONIC, start,
				strings.ToLower(string(s.line[start:s.pos])),
			)

		// Decimal literals, optionally signed
		case isDigit(char) || char == '-' || char == '+':
			s.pos++
			s.skipWhile(isDigit)

			if !isDigit(s.line[s.pos-1]) {
				return s.unexpected(start)
			}

			s.emit(token.NUMBER, start, string(s.line[start:s.pos]))

		// String literals
		case char == '"':
			if err := s.scanString(); err != nil {
				return err
			}

			s.emit(token.STRING, start, string(s.line[start:s.pos]))

		default:
			return s.unexpected(start)
		}

		if err := s.delimited(); err != nil {
			return err
		}
	}

	return nil
}

func (s *scanner) scanString() error {
	start := s.pos
	s.pos++

	for s.pos < len(s.line) {
		switch s.line[s.pos] {
		case '\\':
			s.pos += 2
		case '"':
			s.pos++

			if _, err := strconv.Unquote(string(s.line[start:s.pos])); err != nil {
				return &InvalidStringError{s.cursor(start, s.pos)}
			}

			return nil
		default:
			s.pos++
		}
	}

	s.pos = len(s.line)
	return &InvalidStringError{s.cursor(start, s.pos)}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isLabelChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}
