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

// Package isa describes the instruction set: which operand shape every
// mnemonic takes and which opcode it encodes to.
package isa

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

type Format uint8

const (
	FormatInvalid Format = iota
	FormatN
	FormatR
	FormatI
	FormatS
	FormatJ
	FormatE1
	FormatE2
	FormatE3
	FormatE4
)

var formatTags = [...]string{
	FormatInvalid: "<invalid>",
	FormatN:       "n",
	FormatR:       "r",
	FormatI:       "i",
	FormatS:       "s",
	FormatJ:       "j",
	FormatE1:      "e1",
	FormatE2:      "e2",
	FormatE3:      "e3",
	FormatE4:      "e4",
}

func (f Format) String() string {
	if int(f) < len(formatTags) {
		return formatTags[f]
	}

	return formatTags[FormatInvalid]
}

func ParseFormat(tag string) (Format, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))

	for format, name := range formatTags {
		if format != int(FormatInvalid) && name == tag {
			return Format(format), true
		}
	}

	return FormatInvalid, false
}

const (
	OpcodeBits      = 6
	InstructionBits = 16
)

type Instruction struct {
	Mnemonic string
	Format   Format
	Opcode   uint8
}

// Table is read-only once built and safe for concurrent use.
type Table struct {
	entries map[string]Instruction
}

func NewTable(instructions ...Instruction) (*Table, error) {
	table := &Table{entries: make(map[string]Instruction, len(instructions))}

	for _, inst := range instructions {
		if inst.Mnemonic == "" {
			return nil, fmt.Errorf("isa: empty mnemonic")
		}

		if inst.Opcode >= 1<<OpcodeBits {
			return nil, fmt.Errorf(
				"isa: opcode %#x of '%s' exceeds %d bits",
				inst.Opcode, inst.Mnemonic, OpcodeBits,
			)
		}

		if _, exists := table.entries[inst.Mnemonic]; exists {
			return nil, fmt.Errorf("isa: duplicate mnemonic '%s'", inst.Mnemonic)
		}

		table.entries[inst.Mnemonic] = inst
	}

	return table, nil
}

func (t *Table) Lookup(mnemonic string) (Instruction, bool) {
	inst, ok := t.entries[strings.ToLower(mnemonic)]
	return inst, ok
}

// MustLookup is for mnemonics the assembler itself emits; a table missing
// them cannot lower pseudo-instructions.
func (t *Table) MustLookup(mnemonic string) Instruction {
	inst, ok := t.Lookup(mnemonic)

	if !ok {
		panic(fmt.Sprintf("isa: missing instruction '%s'", mnemonic))
	}

	return inst
}

func (t *Table) Mnemonics() []string {
	names := make([]string, 0, len(t.entries))

	for name := range t.entries {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Load reads a table in the "mnemonic,format,opcode" CSV layout. The first
// row is a header and is skipped. Opcodes are written in binary.
func Load(input io.Reader) (*Table, error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = 3
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()

	if err != nil {
		return nil, fmt.Errorf("isa: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("isa: missing header row")
	}

	instructions := make([]Instruction, 0, len(records)-1)

	for i, record := range records[1:] {
		format, ok := ParseFormat(record[1])

		if !ok {
			return nil, fmt.Errorf(
				"isa: row %d: unknown format class '%s'", i+2, record[1],
			)
		}

		opcode, err := strconv.ParseUint(strings.TrimSpace(record[2]), 2, OpcodeBits)

		if err != nil {
			return nil, fmt.Errorf(
				"isa: row %d: invalid opcode '%s'", i+2, record[2],
			)
		}

		instructions = append(instructions, Instruction{
			Mnemonic: strings.ToLower(strings.TrimSpace(record[0])),
			Format:   format,
			Opcode:   uint8(opcode),
		})
	}

	return NewTable(instructions...)
}

//go:embed insts.csv
var defaultCSV []byte

var defaultTable *Table

func init() {
	table, err := Load(bytes.NewReader(defaultCSV))

	if err != nil {
		panic(err)
	}

	defaultTable = table
}

// Default returns the built-in instruction table.
func Default() *Table {
	return defaultTable
}
