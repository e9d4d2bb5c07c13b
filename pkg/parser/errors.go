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
	"fmt"

	"github.com/lassandro/ac16/pkg/token"
)

type UnexpectedTokenError struct {
	Position token.Cursor
	Expected []token.Kind
	Received token.Kind
	Lexeme   string
}

func (err *UnexpectedTokenError) GetPosition() token.Cursor {
	return err.Position
}

func (err *UnexpectedTokenError) Error() string {
	have := err.Received.String()

	if err.Lexeme != "" {
		have = fmt.Sprintf("%s '%s'", have, err.Lexeme)
	}

	return fmt.Sprintf(
		"%s: Unexpected token\n\twant:%s\n\thave:%s",
		err.Position,
		token.JoinKinds(err.Expected),
		have,
	)
}

type UnknownMnemonicError struct {
	Position token.Cursor
	Received string
}

func (err *UnknownMnemonicError) GetPosition() token.Cursor {
	return err.Position
}

func (err *UnknownMnemonicError) Error() string {
	return fmt.Sprintf(
		"%s: Unknown mnemonic '%s'", err.Position, err.Received,
	)
}
