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

package assembler

import (
	"encoding/gob"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/lassandro/ac16/pkg/ast"
	"github.com/lassandro/ac16/pkg/image"
	"github.com/lassandro/ac16/pkg/isa"
	"github.com/lassandro/ac16/pkg/token"
	"github.com/sirupsen/logrus"
)

type Options struct {
	// ISA defaults to isa.Default().
	ISA *isa.Table

	// Strict enables the fixed general register roles and rejects
	// redeclared labels.
	Strict bool

	// FS resolves source files and includes. Paths are slash-separated
	// and relative to its root.
	FS fs.FS

	Logger logrus.FieldLogger
}

// Result holds every intermediate product of one compilation.
type Result struct {
	File    string
	Program *ast.Program
	Units   []image.Unit
	Image   *image.Image
}

// SymTable maps image addresses back to the source that produced them.
type SymTable struct {
	Source string
	Labels map[uint16]string
	Files  map[uint16]string
	Lines  map[uint16]int
}

func NewSymTable(source string, units []image.Unit) *SymTable {
	symtable := &SymTable{
		Source: source,
		Labels: make(map[uint16]string),
		Files:  make(map[uint16]string),
		Lines:  make(map[uint16]int),
	}

	for addr, unit := range units {
		if unit.Label != "" {
			symtable.Labels[uint16(addr)] = unit.Label
		}

		symtable.Files[uint16(addr)] = unit.Pos.File
		symtable.Lines[uint16(addr)] = unit.Pos.Line
	}

	return symtable
}

func (s *SymTable) Write(w io.Writer) error {
	return gob.NewEncoder(w).Encode(s)
}

func ReadSymTable(r io.Reader) (*SymTable, error) {
	var symtable SymTable

	if err := gob.NewDecoder(r).Decode(&symtable); err != nil {
		return nil, err
	}

	return &symtable, nil
}

type IncludeError struct {
	Position token.Cursor
	Path     string
	Err      error
}

func (err *IncludeError) GetPosition() token.Cursor {
	return err.Position
}

func (err *IncludeError) Error() string {
	return fmt.Sprintf(
		"%s: Cannot include '%s': %v", err.Position, err.Path, err.Err,
	)
}

func (err *IncludeError) Unwrap() error {
	return err.Err
}

type IncludeCycleError struct {
	Position token.Cursor
	Chain    []string
}

func (err *IncludeCycleError) GetPosition() token.Cursor {
	return err.Position
}

func (err *IncludeCycleError) Error() string {
	return fmt.Sprintf(
		"%s: Include cycle\n\thave:%s",
		err.Position,
		strings.Join(err.Chain, " -> "),
	)
}
