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

	"github.com/lassandro/ac16/pkg/isa"
	"github.com/lassandro/ac16/pkg/token"
)

type ReservedRegisterError struct {
	Position token.Cursor
	Mnemonic string
	Register string
	Reason   string
}

func (err *ReservedRegisterError) GetPosition() token.Cursor {
	return err.Position
}

func (err *ReservedRegisterError) Error() string {
	return fmt.Sprintf(
		"%s: Reserved register %s in '%s': %s",
		err.Position,
		err.Register,
		err.Mnemonic,
		err.Reason,
	)
}

type RegisterOutOfRangeError struct {
	Position token.Cursor
	Mnemonic string
	Register string
	Limit    int
}

func (err *RegisterOutOfRangeError) GetPosition() token.Cursor {
	return err.Position
}

func (err *RegisterOutOfRangeError) Error() string {
	return fmt.Sprintf(
		"%s: Register out of range in '%s'\n\twant:0-%d\n\thave:%s",
		err.Position,
		err.Mnemonic,
		err.Limit,
		err.Register,
	)
}

type NumberOutOfBoundsError struct {
	Position token.Cursor
	Context  string
	Width    uint
	Value    string
}

func (err *NumberOutOfBoundsError) GetPosition() token.Cursor {
	return err.Position
}

func (err *NumberOutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"%s: Number out of bounds in '%s'\n\twant:%d bits\n\thave:%s",
		err.Position,
		err.Context,
		err.Width,
		err.Value,
	)
}

type InvalidNumberError struct {
	Position token.Cursor
	Value    string
}

func (err *InvalidNumberError) GetPosition() token.Cursor {
	return err.Position
}

func (err *InvalidNumberError) Error() string {
	return fmt.Sprintf("%s: Invalid numeric literal '%s'", err.Position, err.Value)
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

// DanglingLabelError reports a label that cannot be bound to an output
// byte: either another label claims the same byte, or nothing follows it.
type DanglingLabelError struct {
	Position token.Cursor
	Label    string
	Next     string
}

func (err *DanglingLabelError) GetPosition() token.Cursor {
	return err.Position
}

func (err *DanglingLabelError) Error() string {
	if err.Next == "" {
		return fmt.Sprintf(
			"%s: Label '%s' is not followed by any output",
			err.Position,
			err.Label,
		)
	}

	return fmt.Sprintf(
		"%s: Label '%s' shares its address with '%s'",
		err.Position,
		err.Label,
		err.Next,
	)
}

type UnexpandedIncludeError struct {
	Position token.Cursor
	Path     string
}

func (err *UnexpandedIncludeError) GetPosition() token.Cursor {
	return err.Position
}

func (err *UnexpandedIncludeError) Error() string {
	return fmt.Sprintf(
		"%s: Include of %s was not expanded before encoding",
		err.Position,
		err.Path,
	)
}

// InstructionFormatError means the instruction table disagrees with the
// syntax tree about a mnemonic, or lacks one the assembler emits itself.
type InstructionFormatError struct {
	Position token.Cursor
	Mnemonic string
	Want     isa.Format
	Have     isa.Format
}

func (err *InstructionFormatError) GetPosition() token.Cursor {
	return err.Position
}

func (err *InstructionFormatError) Error() string {
	return fmt.Sprintf(
		"%s: Instruction table mismatch for '%s'\n\twant:%s\n\thave:%s",
		err.Position,
		err.Mnemonic,
		err.Want,
		err.Have,
	)
}

type UnknownNodeError struct {
	Position token.Cursor
	Node     string
}

func (err *UnknownNodeError) GetPosition() token.Cursor {
	return err.Position
}

func (err *UnknownNodeError) Error() string {
	return fmt.Sprintf("%s: Internal error: cannot encode %s", err.Position, err.Node)
}
