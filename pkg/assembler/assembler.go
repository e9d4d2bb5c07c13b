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

// Package assembler drives a whole compilation: it reads sources, expands
// includes and runs the parser, encoder and linker in turn. The first error
// of any stage ends the compilation.
package assembler

import (
	"io"
	"io/fs"
	"path"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lassandro/ac16/pkg/ast"
	"github.com/lassandro/ac16/pkg/encoder"
	"github.com/lassandro/ac16/pkg/image"
	"github.com/lassandro/ac16/pkg/isa"
	"github.com/lassandro/ac16/pkg/lexer"
	"github.com/lassandro/ac16/pkg/linker"
	"github.com/lassandro/ac16/pkg/parser"
)

var ErrNoFS = errors.New("no file system to resolve includes against")

type Assembler struct {
	table  *isa.Table
	strict bool
	fsys   fs.FS
	log    logrus.FieldLogger
}

func New(opts Options) *Assembler {
	a := &Assembler{
		table:  opts.ISA,
		strict: opts.Strict,
		fsys:   opts.FS,
		log:    opts.Logger,
	}

	if a.table == nil {
		a.table = isa.Default()
	}

	if a.log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		a.log = logger
	}

	return a
}

// Assemble compiles src, reporting positions against file. Includes are
// resolved relative to file inside Options.FS.
func Assemble(file string, src []byte, opts Options) (*Result, error) {
	return New(opts).Assemble(file, src)
}

func (a *Assembler) Assemble(file string, src []byte) (*Result, error) {
	program, err := a.Parse(file, src)

	if err != nil {
		return nil, err
	}

	return a.finish(file, program)
}

// AssembleFile reads file from Options.FS and compiles it.
func (a *Assembler) AssembleFile(file string) (*Result, error) {
	if a.fsys == nil {
		return nil, errors.Wrapf(ErrNoFS, "reading %s", file)
	}

	src, err := fs.ReadFile(a.fsys, file)

	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", file)
	}

	return a.Assemble(file, src)
}

func (a *Assembler) finish(file string, program *ast.Program) (*Result, error) {
	units, err := a.Encode(program)

	if err != nil {
		return nil, err
	}

	img, err := a.Link(units)

	if err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"file":   file,
		"bytes":  len(img.Bytes),
		"labels": len(img.Labels),
	}).Debug("assembled")

	return &Result{File: file, Program: program, Units: units, Image: img}, nil
}

// Parse returns the syntax tree of src with every include expanded in
// place.
func (a *Assembler) Parse(file string, src []byte) (*ast.Program, error) {
	return a.parse(file, src, []string{path.Clean(file)})
}

func (a *Assembler) parse(file string, src []byte, chain []string) (*ast.Program, error) {
	tokens, err := lexer.TokenizeBytes(file, src)

	if err != nil {
		return nil, err
	}

	program, err := parser.Parse(tokens, a.table)

	if err != nil {
		return nil, err
	}

	nodes := 0
	ast.Walk(program, func(ast.Node) bool {
		nodes++
		return true
	})

	a.log.WithFields(logrus.Fields{
		"file":   file,
		"tokens": len(tokens),
		"nodes":  nodes,
	}).Debug("parsed")

	return a.expand(file, program, chain)
}

// expand splices the fields of every included file into program.
func (a *Assembler) expand(file string, program *ast.Program, chain []string) (*ast.Program, error) {
	fields := make([]ast.Field, 0, len(program.Fields))

	for _, field := range program.Fields {
		include, ok := field.(*ast.Include)

		if !ok {
			fields = append(fields, field)
			continue
		}

		name, err := include.Path.Value()

		if err != nil {
			return nil, &IncludeError{include.Position, include.Path.Lexeme, err}
		}

		target := path.Join(path.Dir(file), name)

		for _, active := range chain {
			if active == target {
				cycle := append(append([]string{}, chain...), target)
				return nil, &IncludeCycleError{include.Position, cycle}
			}
		}

		if a.fsys == nil {
			return nil, &IncludeError{include.Position, name, ErrNoFS}
		}

		src, err := fs.ReadFile(a.fsys, target)

		if err != nil {
			return nil, &IncludeError{include.Position, name, err}
		}

		a.log.WithFields(logrus.Fields{
			"file":    file,
			"include": target,
		}).Debug("including")

		included, err := a.parse(target, src, append(chain, target))

		if err != nil {
			return nil, err
		}

		fields = append(fields, included.Fields...)
	}

	program.Fields = fields
	return program, nil
}

func (a *Assembler) Encode(program *ast.Program) ([]image.Unit, error) {
	units, err := encoder.New(a.table, encoder.Config{Strict: a.strict}).Encode(program)

	if err != nil {
		return nil, err
	}

	a.log.WithField("units", len(units)).Debug("encoded")

	return units, nil
}

func (a *Assembler) Link(units []image.Unit) (*image.Image, error) {
	return linker.Link(units, linker.Config{Strict: a.strict})
}
