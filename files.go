/*
 * files.go, part of mdtools.
 *
 * Copyright 2026 The mdtools authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package mdtools

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression returns the compression format implied by the extension of
// fname: "zst", "gz" or the empty string for plain files.
func Compression(fname string) string {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".zst", ".zstd":
		return "zst"
	case ".gz":
		return "gz"
	default:
		return ""
	}
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (R *readCloser) Close() error {
	var err error
	for _, c := range R.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Open opens fname for reading. Files ending in .zst or .gz are decompressed
// on the fly, anything else is read as is.
func Open(fname string) (io.ReadCloser, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewReader(f)
	switch Compression(fname) {
	case "zst":
		dec, err := zstd.NewReader(buf)
		if err != nil {
			f.Close()
			return nil, err
		}
		//*zstd.Decoder's Close doesn't return an error.
		return &readCloser{dec, []func() error{func() error { dec.Close(); return nil }, f.Close}}, nil
	case "gz":
		dec, err := gzip.NewReader(buf)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{dec, []func() error{dec.Close, f.Close}}, nil
	}
	return &readCloser{buf, []func() error{f.Close}}, nil
}

type writeCloser struct {
	io.Writer
	closers []func() error
}

func (W *writeCloser) Close() error {
	var err error
	for _, c := range W.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Create creates (or truncates) fname for writing. Data written to files ending in .zst
// or .gz is compressed. Close must be called to flush everything to disk.
func Create(fname string) (io.WriteCloser, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(f)
	closers := []func() error{buf.Flush, f.Close}
	switch Compression(fname) {
	case "zst":
		enc, err := zstd.NewWriter(buf, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return nil, err
		}
		return &writeCloser{enc, append([]func() error{enc.Close}, closers...)}, nil
	case "gz":
		enc := gzip.NewWriter(buf)
		return &writeCloser{enc, append([]func() error{enc.Close}, closers...)}, nil
	}
	return &writeCloser{buf, closers}, nil
}
