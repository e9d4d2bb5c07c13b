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

// Package linker resolves the label placeholders left in encoder output and
// produces the final program image.
package linker

import (
	"fmt"

	"github.com/lassandro/ac16/pkg/encoding"
	"github.com/lassandro/ac16/pkg/image"
	"github.com/lassandro/ac16/pkg/token"
)

// MaxUnits is the size of the 16-bit address space, in bytes.
const MaxUnits = 1 << 16

// Table maps a label to its address: the index of the unit carrying it.
type Table map[string]uint16

type Config struct {
	// Strict turns a repeated label declaration into an error instead of
	// keeping the first one.
	Strict bool
}

// BuildTable records the address of every labelled unit. The first unit
// carrying a label wins.
func BuildTable(units []image.Unit, config Config) (Table, error) {
	if len(units) > MaxUnits {
		return nil, &image.OversizedImageError{Required: MaxUnits, Received: len(units)}
	}

	table := make(Table)

	for addr, unit := range units {
		if unit.Label == "" {
			continue
		}

		if _, exists := table[unit.Label]; exists {
			if config.Strict {
				return nil, &RedeclaredLabelError{unit.Pos, unit.Label}
			}

			continue
		}

		table[unit.Label] = uint16(addr)
	}

	return table, nil
}

// Resolve substitutes every placeholder in units with the bits it names.
// Units without placeholders are returned as they are, so resolving twice
// changes nothing.
func Resolve(units []image.Unit, table Table) ([]image.Unit, error) {
	result := make([]image.Unit, len(units))

	for i, unit := range units {
		if unit.Resolved() {
			result[i] = unit
			continue
		}

		segments := make([]image.Segment, len(unit.Segments))

		for j, segment := range unit.Segments {
			if segment.Ref == nil {
				segments[j] = segment
				continue
			}

			addr, exists := table[segment.Ref.Label]

			if !exists {
				return nil, &UndefinedLabelError{
					segment.Ref.Position, segment.Ref.Label,
				}
			}

			segments[j] = image.Literal(
				encoding.Bits(addr, segment.Ref.Hi, segment.Ref.Lo),
				segment.Width,
			)
		}

		unit.Segments = segments
		result[i] = unit
	}

	return result, nil
}

// Link runs both passes and flattens the result into an image.
func Link(units []image.Unit, config Config) (*image.Image, error) {
	table, err := BuildTable(units, config)

	if err != nil {
		return nil, err
	}

	resolved, err := Resolve(units, table)

	if err != nil {
		return nil, err
	}

	img := &image.Image{
		Bytes:  make([]image.Byte, len(resolved)),
		Labels: table,
	}

	for i, unit := range resolved {
		value, ok := unit.Byte()

		if !ok || unit.Width() != image.UnitBits {
			panic(fmt.Sprintf("linker: unit %d is malformed: %s", i, unit.String()))
		}

		img.Bytes[i] = image.Byte{Value: value, Label: unit.Label}
	}

	return img, nil
}

type UndefinedLabelError struct {
	Position token.Cursor
	Label    string
}

func (err *UndefinedLabelError) GetPosition() token.Cursor {
	return err.Position
}

func (err *UndefinedLabelError) Error() string {
	return fmt.Sprintf("%s: Undefined label '%s'", err.Position, err.Label)
}

type RedeclaredLabelError struct {
	Position token.Cursor
	Label    string
}

func (err *RedeclaredLabelError) GetPosition() token.Cursor {
	return err.Position
}

func (err *RedeclaredLabelError) Error() string {
	return fmt.Sprintf(
		"%s: Redeclaration of label '%s'", err.Position, err.Label,
	)
}
