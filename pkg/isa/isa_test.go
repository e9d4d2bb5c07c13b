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

package isa_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/ac16/pkg/isa"
)

func TestDefault(t *testing.T) {
	table := isa.Default()

	tests := []isa.Instruction{
		{Mnemonic: "nop", Format: isa.FormatN, Opcode: 0b000000},
		{Mnemonic: "add", Format: isa.FormatR, Opcode: 0b000001},
		{Mnemonic: "not", Format: isa.FormatE1, Opcode: 0b000011},
		{Mnemonic: "sra", Format: isa.FormatS, Opcode: 0b001100},
		{Mnemonic: "tmul", Format: isa.FormatE4, Opcode: 0b001101},
		{Mnemonic: "mth", Format: isa.FormatE3, Opcode: 0b010001},
		{Mnemonic: "lui", Format: isa.FormatI, Opcode: 0b011111},
		{Mnemonic: "jal", Format: isa.FormatJ, Opcode: 0b100110},
		{Mnemonic: "jr", Format: isa.FormatE2, Opcode: 0b100111},
		{Mnemonic: "bnezr", Format: isa.FormatE1, Opcode: 0b110000},
	}

	for _, want := range tests {
		have, ok := table.Lookup(want.Mnemonic)
		require.True(t, ok, want.Mnemonic)
		assert.Equal(t, want, have)
	}

	// Pseudo-instructions never reach the table.
	for _, mnemonic := range []string{"jump", "mul", "div", "lw", "sw", "swap"} {
		_, ok := table.Lookup(mnemonic)
		assert.False(t, ok, mnemonic)
	}

	inst, ok := table.Lookup("ADD")
	assert.True(t, ok)
	assert.Equal(t, "add", inst.Mnemonic)

	assert.Equal(t, 48, table.Len())
	assert.Len(t, table.Mnemonics(), 48)
	assert.Equal(t, "add", table.Mnemonics()[0])
}

func TestLoad(t *testing.T) {
	table, err := isa.Load(strings.NewReader(
		"mnemonic,format,opcode\n" +
			"# comment\n" +
			"ADD, r, 000001\n" +
			"halt,n,111111\n",
	))
	require.NoError(t, err)

	add, ok := table.Lookup("add")
	require.True(t, ok)
	assert.Equal(t, isa.Instruction{Mnemonic: "add", Format: isa.FormatR, Opcode: 1}, add)

	halt := table.MustLookup("halt")
	assert.Equal(t, uint8(0b111111), halt.Opcode)

	assert.Panics(t, func() { table.MustLookup("sub") })
}

func TestLoadFail(t *testing.T) {
	for name, input := range map[string]string{
		"Empty":          "",
		"Unknown format": "mnemonic,format,opcode\nadd,x,000001\n",
		"Opcode width":   "mnemonic,format,opcode\nadd,r,1000000\n",
		"Opcode digits":  "mnemonic,format,opcode\nadd,r,000002\n",
		"Duplicate":      "mnemonic,format,opcode\nadd,r,000001\nadd,r,000010\n",
		"Columns":        "mnemonic,format,opcode\nadd,r\n",
	} {
		_, err := isa.Load(strings.NewReader(input))
		assert.Error(t, err, name)
	}
}

func TestFormat(t *testing.T) {
	for _, tag := range []string{"n", "r", "i", "s", "j", "e1", "e2", "e3", "e4"} {
		format, ok := isa.ParseFormat(tag)
		require.True(t, ok, tag)
		assert.Equal(t, tag, format.String())
	}

	format, ok := isa.ParseFormat(" E3 ")
	assert.True(t, ok)
	assert.Equal(t, isa.FormatE3, format)

	_, ok = isa.ParseFormat("e5")
	assert.False(t, ok)

	_, ok = isa.ParseFormat("<invalid>")
	assert.False(t, ok)
}
