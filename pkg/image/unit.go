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

// Package image models the assembler's output: 8-bit units that may still
// hold unresolved label references, and the final resolved program image.
package image

import (
	"fmt"
	"strings"

	"github.com/lassandro/ac16/pkg/encoding"
	"github.com/lassandro/ac16/pkg/token"
)

const UnitBits = 8

// Ref stands in for bits Hi..Lo (inclusive, bit 0 = LSB) of the 16-bit
// address of Label.
type Ref struct {
	Label    string
	Hi       uint8
	Lo       uint8
	Position token.Cursor
}

func (r *Ref) Width() uint8 {
	return r.Hi - r.Lo + 1
}

func (r *Ref) String() string {
	return fmt.Sprintf("{%s[%d:%d]}", r.Label, r.Hi, r.Lo)
}

// Segment is a run of bits inside a unit: either Width literal bits held in
// the low bits of Value, or a placeholder when Ref is set.
type Segment struct {
	Value uint16
	Width uint8
	Ref   *Ref
}

func Literal(value uint16, width uint8) Segment {
	return Segment{Value: value & encoding.Mask(width), Width: width}
}

func Placeholder(label string, hi, lo uint8, pos token.Cursor) Segment {
	ref := &Ref{Label: label, Hi: hi, Lo: lo, Position: pos}
	return Segment{Width: ref.Width(), Ref: ref}
}

func (s Segment) String() string {
	if s.Ref != nil {
		return s.Ref.String()
	}

	return encoding.FormatBits(s.Value, s.Width)
}

// split cuts the segment after its first n bits.
func (s Segment) split(n uint8) (Segment, Segment) {
	rest := s.Width - n

	if s.Ref != nil {
		hi := *s.Ref
		lo := *s.Ref
		hi.Lo = s.Ref.Hi - n + 1
		lo.Hi = s.Ref.Hi - n

		return Segment{Width: n, Ref: &hi}, Segment{Width: rest, Ref: &lo}
	}

	return Literal(s.Value>>rest, n), Literal(s.Value, rest)
}

type Unit struct {
	Segments []Segment
	Label    string
	Pos      token.Cursor
}

func (u *Unit) Width() int {
	width := 0

	for _, segment := range u.Segments {
		width += int(segment.Width)
	}

	return width
}

func (u *Unit) Resolved() bool {
	for _, segment := range u.Segments {
		if segment.Ref != nil {
			return false
		}
	}

	return true
}

// Byte returns the unit's value, or false while a placeholder remains.
func (u *Unit) Byte() (uint8, bool) {
	var value uint16

	for _, segment := range u.Segments {
		if segment.Ref != nil {
			return 0, false
		}

		value = value<<segment.Width | segment.Value
	}

	return uint8(value), true
}

func (u *Unit) Bits() string {
	var builder strings.Builder

	for _, segment := range u.Segments {
		builder.WriteString(segment.String())
	}

	return builder.String()
}

func (u *Unit) String() string {
	if u.Label == "" {
		return u.Bits()
	}

	return u.Label + ": " + u.Bits()
}

// Builder packs fields MSB first and cuts them into 8-bit units.
type Builder struct {
	segments []Segment
	width    int
}

func (b *Builder) Literal(value uint16, width uint8) *Builder {
	if width > 0 {
		b.segments = append(b.segments, Literal(value, width))
		b.width += int(width)
	}

	return b
}

func (b *Builder) Ref(label string, hi, lo uint8, pos token.Cursor) *Builder {
	b.segments = append(b.segments, Placeholder(label, hi, lo, pos))
	b.width += int(hi-lo) + 1
	return b
}

func (b *Builder) Segment(segment Segment) *Builder {
	b.segments = append(b.segments, segment)
	b.width += int(segment.Width)
	return b
}

func (b *Builder) Width() int {
	return b.width
}

// Units splits the packed fields into units, breaking any field that
// straddles a unit boundary. Every unit is stamped with pos.
func (b *Builder) Units(pos token.Cursor) []Unit {
	if b.width%UnitBits != 0 {
		panic(fmt.Sprintf("image: %d bits do not fill whole units", b.width))
	}

	units := make([]Unit, 0, b.width/UnitBits)
	current := Unit{Pos: pos}
	free := uint8(UnitBits)

	for _, segment := range b.segments {
		for segment.Width > 0 {
			if segment.Width <= free {
				current.Segments = append(current.Segments, segment)
				free -= segment.Width
				segment.Width = 0
			} else {
				head, tail := segment.split(free)
				current.Segments = append(current.Segments, head)
				segment = tail
				free = 0
			}

			if free == 0 {
				units = append(units, current)
				current = Unit{Pos: pos}
				free = UnitBits
			}
		}
	}

	return units
}
