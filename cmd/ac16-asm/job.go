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

package main

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/k0kubun/pp/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lassandro/ac16/pkg/assembler"
	"github.com/lassandro/ac16/pkg/image"
	"github.com/lassandro/ac16/pkg/isa"
)

// job assembles one input. Everything written to the terminal goes
// through mu so that concurrent jobs do not interleave.
type job struct {
	opts   *options
	table  *isa.Table
	logger logrus.FieldLogger
	mu     *sync.Mutex
}

func (j *job) assembleFile(file string) error {
	abs, err := filepath.Abs(file)

	if err != nil {
		return err
	}

	fsys := os.DirFS(filepath.Dir(abs))
	name := filepath.Base(abs)

	src, err := fs.ReadFile(fsys, name)

	if err != nil {
		return errors.Wrapf(err, "reading %s", file)
	}

	return j.assemble(fsys, name, src, abs, outputName(j.opts, file))
}

func assembleStdin(opts *options, table *isa.Table, logger *logrus.Logger) error {
	src, err := io.ReadAll(os.Stdin)

	if err != nil {
		return errors.Wrap(err, "reading standard input")
	}

	j := &job{
		opts:   opts,
		table:  table,
		logger: logger.WithField("file", "<stdin>"),
		mu:     &sync.Mutex{},
	}

	return j.assemble(os.DirFS("."), "<stdin>", src, "", outputName(opts, "out"))
}

func (j *job) assemble(fsys fs.FS, name string, src []byte, source, output string) error {
	asm := assembler.New(assembler.Options{
		ISA:    j.table,
		Strict: j.opts.strict,
		FS:     fsys,
		Logger: j.logger,
	})

	result, err := asm.Assemble(name, src)

	if err != nil {
		j.report(fsys, name, src, err)
		return errReported
	}

	if j.opts.dumpAST || j.opts.dumpUnits {
		j.dump(result)
	}

	if j.opts.fill > 0 {
		if err := result.Image.Pad(j.opts.fill); err != nil {
			j.report(fsys, name, src, err)
			return errReported
		}
	}

	if err := writeImage(result.Image, j.opts.format, output); err != nil {
		return errors.Wrapf(err, "writing %s", output)
	}

	j.logger.WithField("out", output).Debug("image written")

	if j.opts.debug {
		dbname := strings.TrimSuffix(output, filepath.Ext(output)) + ".ac16db"
		symtable := assembler.NewSymTable(source, result.Units)

		if err := writeSymTable(symtable, dbname); err != nil {
			return errors.Wrapf(err, "writing %s", dbname)
		}

		j.logger.WithField("out", dbname).Debug("symbol table written")
	}

	return nil
}

func (j *job) dump(result *assembler.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()

	printer := pp.New()
	printer.SetOutput(os.Stdout)
	printer.SetColoringEnabled(isTerminal(os.Stdout.Fd()))

	if j.opts.dumpAST {
		printer.Println(result.Program)
	}

	if j.opts.dumpUnits {
		listing := make([]string, len(result.Units))

		for i := range result.Units {
			listing[i] = result.Units[i].String()
		}

		printer.Println(listing)
	}
}

func writeImage(img *image.Image, format, output string) error {
	file, err := os.Create(output)

	if err != nil {
		return err
	}

	out := bufio.NewWriter(file)

	switch format {
	case "hex":
		err = img.WriteHex(out)
	case "text":
		err = img.WriteText(out)
	default:
		err = img.WriteBinary(out)
	}

	if err == nil {
		err = out.Flush()
	}

	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	return err
}

func writeSymTable(symtable *assembler.SymTable, output string) error {
	file, err := os.Create(output)

	if err != nil {
		return err
	}

	if err := symtable.Write(file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
