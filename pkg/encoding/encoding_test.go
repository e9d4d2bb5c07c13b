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

package encoding_test

import (
	"testing"

	"github.com/lassandro/ac16/pkg/encoding"
)

func TestDecodeInt(t *testing.T) {
	for input, want := range map[string]int64{
		"0":      0,
		"258":    258,
		"-1":     -1,
		"+7":     7,
		"-0":     0,
		"065535": 65535,
	} {
		have, err := encoding.DecodeInt(input)

		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}

		if have != want {
			t.Fatalf("Decode mismatch for %q\nwant:%d\nhave:%d", input, want, have)
		}
	}

	for _, input := range []string{"", "0x10", "1_000", "ten", "--1"} {
		if _, err := encoding.DecodeInt(input); err == nil {
			t.Fatalf("%q decoded without error", input)
		}
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		Value int64
		Width uint
		Want  uint16
		Fits  bool
	}{
		{0, 4, 0b0000, true},
		{15, 4, 0b1111, true},
		{16, 4, 0, false},
		{-1, 4, 0b1111, true},
		{-8, 4, 0b1000, true},
		{-15, 4, 0b0001, true},
		{-16, 4, 0, false},
		{255, 8, 0xFF, true},
		{256, 8, 0, false},
		{-128, 8, 0x80, true},
		{1023, 10, 0x3FF, true},
		{1024, 10, 0, false},
		{65535, 16, 0xFFFF, true},
		{65536, 16, 0, false},
		{-1, 16, 0xFFFF, true},
		{1, 0, 0, false},
		{1, 17, 0, false},
		{-9223372036854775808, 16, 0, false},
	}

	for _, test := range tests {
		have, ok := encoding.Fits(test.Value, test.Width)

		if ok != test.Fits || have != test.Want {
			t.Fatalf(
				"Fits(%d, %d)\nwant:%#04x %v\nhave:%#04x %v",
				test.Value,
				test.Width,
				test.Want,
				test.Fits,
				have,
				ok,
			)
		}
	}
}

func TestBits(t *testing.T) {
	const addr = 0x0134

	if have := encoding.Bits(addr, 15, 8); have != 0x01 {
		t.Fatalf("Bits 15..8\nwant:0x01\nhave:%#02x", have)
	}

	if have := encoding.Bits(addr, 7, 0); have != 0x34 {
		t.Fatalf("Bits 7..0\nwant:0x34\nhave:%#02x", have)
	}

	if have := encoding.Bits(addr, 15, 0); have != addr {
		t.Fatalf("Bits 15..0\nwant:%#04x\nhave:%#04x", addr, have)
	}

	if have := encoding.Bits(addr, 5, 2); have != 0b1101 {
		t.Fatalf("Bits 5..2\nwant:0b1101\nhave:%04b", have)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Bits accepted an inverted range")
		}
	}()

	encoding.Bits(addr, 2, 5)
}

func TestFormatBits(t *testing.T) {
	if have := encoding.FormatBits(0b101, 8); have != "00000101" {
		t.Fatalf("want:00000101\nhave:%s", have)
	}

	if have := encoding.FormatBits(0xFFFF, 4); have != "1111" {
		t.Fatalf("want:1111\nhave:%s", have)
	}
}
