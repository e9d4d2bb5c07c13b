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

// Package encoding holds the numeric helpers shared by the encoder, linker
// and image renderers.
package encoding

import (
	"fmt"
	"strconv"
)

// Decodes a signed base-10 string in the formats: 123, +123, -123
func DecodeInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// Fits packs value into a field of width bits. Non-negative values must be
// representable unsigned. Negative values must have a magnitude that fits
// the width and are stored in two's complement of that width, so -1 in a
// 4-bit field is 0b1111 and -15 is 0b0001.
func Fits(value int64, width uint) (uint16, bool) {
	if width == 0 || width > 16 {
		return 0, false
	}

	limit := int64(1) << width
	magnitude := value

	if magnitude < 0 {
		magnitude = -magnitude
	}

	if magnitude < 0 || magnitude >= limit {
		return 0, false
	}

	return uint16(value & (limit - 1)), true
}

// Bits extracts the inclusive range hi..lo of value, bit 0 being the least
// significant bit.
func Bits(value uint16, hi, lo uint8) uint16 {
	if hi < lo || hi > 15 {
		panic(fmt.Sprintf("encoding: invalid bit range %d..%d", hi, lo))
	}

	return (value >> lo) & Mask(hi-lo+1)
}

func Mask(width uint8) uint16 {
	if width >= 16 {
		return 0xFFFF
	}

	return (uint16(1) << width) - 1
}

// FormatBits renders the low width bits of value MSB first.
func FormatBits(value uint16, width uint8) string {
	return fmt.Sprintf("%0*b", int(width), value&Mask(width))
}
