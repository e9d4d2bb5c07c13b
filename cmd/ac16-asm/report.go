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
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/lassandro/ac16/pkg/token"
)

// report prints err in the form
//
//	file.s:03:10: message
//	    add &1, $2, $3
//	        ^~
//
// quoting the offending line when the error carries a position. Errors
// without one are prefixed with the input name.
func (j *job) report(fsys fs.FS, name string, src []byte, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	color := isTerminal(os.Stderr.Fd())

	var posErr token.PositionError

	if !errors.As(err, &posErr) {
		fmt.Fprintf(os.Stderr, "%s %v\n", prefix(name, color), err)
		return
	}

	cursor := posErr.GetPosition()
	file := cursor.File

	if file == "" {
		file = name
	}

	text := src

	if file != name {
		if included, readErr := fs.ReadFile(fsys, file); readErr == nil {
			text = included
		} else {
			text = nil
		}
	}

	line, ok := sourceLine(text, cursor.LineByte)

	if !ok {
		fmt.Fprintf(os.Stderr, "%s\n", headline(err, color))
		return
	}

	size := int(cursor.Size)

	if size < 1 {
		size = 1
	}

	underline := strings.Repeat(" ", int(cursor.Byte-cursor.LineByte)) +
		"^" + strings.Repeat("~", size-1)

	if color {
		underline = "\033[31m" + underline + "\033[0m"
	}

	fmt.Fprintf(os.Stderr, "%s\n%s\n%s\n", headline(err, color), line, underline)
}

// headline emboldens the position that starts the first line of err.
func headline(err error, color bool) string {
	msg := err.Error()

	if !color {
		return msg
	}

	if i := strings.Index(msg, ": "); i >= 0 {
		return "\033[1m" + msg[:i+1] + "\033[0m" + msg[i+1:]
	}

	return msg
}

func prefix(file string, color bool) string {
	if color {
		return fmt.Sprintf("\033[1m%s:\033[0m", file)
	}

	return file + ":"
}

func sourceLine(src []byte, offset int64) (string, bool) {
	if src == nil || offset < 0 || offset > int64(len(src)) {
		return "", false
	}

	line := src[offset:]

	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	return strings.TrimRight(string(line), "\r"), true
}
