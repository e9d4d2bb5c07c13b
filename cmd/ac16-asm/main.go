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
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lassandro/ac16/pkg/isa"
)

var errReported = errors.New("assembly failed")

type options struct {
	out       string
	format    string
	isaFile   string
	fill      int
	strict    bool
	debug     bool
	dumpAST   bool
	dumpUnits bool
	verbose   bool
}

var extensions = map[string]string{
	"bin":  ".bin",
	"hex":  ".hex",
	"text": ".txt",
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "ac16-asm [flags] file...",
		Short: "Assembler for the AC16 accumulator machine",
		Long: `ac16-asm translates AC16 assembly into a program image.

Every input file is assembled on its own. Output goes next to the input
with the extension of the chosen format unless --out names a file, which
is only allowed for a single input. Without arguments the source is read
from standard input.
`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(&opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.out, "out", "o", "", "write the image to this file")
	flags.StringVarP(&opts.format, "format", "f", "bin", "image format: bin, hex or text")
	flags.StringVar(&opts.isaFile, "isa", "", "load the instruction table from a CSV file")
	flags.IntVar(&opts.fill, "fill", 0, "pad the image with zero words up to this many words")
	flags.BoolVar(&opts.strict, "strict", false, "reject $0, $1, $14 and $15 and redeclared labels")
	flags.BoolVar(&opts.debug, "debug", false, "write a symbol table next to the image (.ac16db)")
	flags.BoolVar(&opts.dumpAST, "dump-ast", false, "print the syntax tree")
	flags.BoolVar(&opts.dumpUnits, "dump-units", false, "print the encoded units before linking")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every compilation stage")

	return cmd
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      isTerminal(os.Stderr.Fd()),
	})

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	return logger
}

func loadISA(file string) (*isa.Table, error) {
	if file == "" {
		return isa.Default(), nil
	}

	input, err := os.Open(file)

	if err != nil {
		return nil, err
	}

	defer input.Close()

	table, err := isa.Load(input)

	return table, errors.Wrapf(err, "loading %s", file)
}

func run(opts *options, args []string) error {
	logger := newLogger(opts.verbose)

	if _, ok := extensions[opts.format]; !ok {
		return errors.Errorf("unknown format %q", opts.format)
	}

	if opts.out != "" && len(args) > 1 {
		return errors.New("--out requires a single input file")
	}

	table, err := loadISA(opts.isaFile)

	if err != nil {
		return err
	}

	logger.WithField("instructions", table.Len()).Debug("instruction table loaded")

	if len(args) == 0 {
		if stat, err := os.Stdin.Stat(); err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return errors.New("no input files")
		}

		return assembleStdin(opts, table, logger)
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, arg := range args {
		arg := arg

		g.Go(func() error {
			job := &job{
				opts:   opts,
				table:  table,
				logger: logger.WithField("file", arg),
				mu:     &mu,
			}

			return job.assembleFile(arg)
		})
	}

	return g.Wait()
}

func outputName(opts *options, input string) string {
	if opts.out != "" {
		return opts.out
	}

	ext := filepath.Ext(input)

	return strings.TrimSuffix(input, ext) + extensions[opts.format]
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if err != errReported {
			fmt.Fprintf(os.Stderr, "ac16-asm: %v\n", err)
		}

		os.Exit(1)
	}
}
