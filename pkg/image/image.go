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

package image

import (
	"bufio"
	"fmt"
	"io"
)

// Byte is a resolved output unit. Label is kept for listings and debug
// symbols only.
type Byte struct {
	Value uint8
	Label string
}

type Image struct {
	Bytes  []Byte
	Labels map[string]uint16
}

// Pad extends the image with zero bytes up to words 16-bit words.
func (img *Image) Pad(words int) error {
	size := words * 2

	if len(img.Bytes) > size {
		return &OversizedImageError{Required: size, Received: len(img.Bytes)}
	}

	for len(img.Bytes) < size {
		img.Bytes = append(img.Bytes, Byte{})
	}

	return nil
}

func (img *Image) Raw() []byte {
	raw := make([]byte, len(img.Bytes))

	for i, b := range img.Bytes {
		raw[i] = b.Value
	}

	return raw
}

func (img *Image) WriteBinary(w io.Writer) error {
	_, err := w.Write(img.Raw())
	return err
}

// WriteHex writes one byte per line as two hex digits.
func (img *Image) WriteHex(w io.Writer) error {
	out := bufio.NewWriter(w)

	for _, b := range img.Bytes {
		if _, err := fmt.Fprintf(out, "%02x\n", b.Value); err != nil {
			return err
		}
	}

	return out.Flush()
}

// WriteText writes a listing: address, bits and label of every byte.
func (img *Image) WriteText(w io.Writer) error {
	out := bufio.NewWriter(w)

	for addr, b := range img.Bytes {
		var err error

		if b.Label != "" {
			_, err = fmt.Fprintf(out, "%04x  %08b  %s\n", addr, b.Value, b.Label)
		} else {
			_, err = fmt.Fprintf(out, "%04x  %08b\n", addr, b.Value)
		}

		if err != nil {
			return err
		}
	}

	return out.Flush()
}

type OversizedImageError struct {
	Required int
	Received int
}

func (err *OversizedImageError) Error() string {
	return fmt.Sprintf(
		"Image exceeds allowed size\n\twant:%d\n\thave:%d",
		err.Required,
		err.Received,
	)
}
