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

package lexer

import (
	"fmt"

	"github.com/lassandro/ac16/pkg/token"
)

type UnexpectedCharacterError struct {
	Position token.Cursor
	Received rune
}

func (err *UnexpectedCharacterError) GetPosition() token.Cursor {
	return err.Position
}

func (err *UnexpectedCharacterError) Error() string {
	if err.Received == 0 {
		return fmt.Sprintf("%s: Unexpected end of line", err.Position)
	}

	return fmt.Sprintf(
		"%s: Unexpected character %q", err.Position, err.Received,
	)
}

type UnknownDirectiveError struct {
	Position token.Cursor
	Received string
}

func (err *UnknownDirectiveError) GetPosition() token.Cursor {
	return err.Position
}

func (err *UnknownDirectiveError) Error() string {
	return fmt.Sprintf(
		"%s: Unknown directive '%s'", err.Position, err.Received,
	)
}

type InvalidStringError struct {
	Position token.Cursor
}

func (err *InvalidStringError) GetPosition() token.Cursor {
	return err.Position
}

func (err *InvalidStringError) Error() string {
	return fmt.Sprintf("%s: Invalid string literal", err.Position)
}
