/*
 * crd_test.go, part of mdtools.
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

package crd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/mdtools"
)

func equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRoundTrip(Te *testing.T) {
	C, err := New("two atoms", []float64{1, 2, 3, 4, 5, 6}, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	fname := filepath.Join(Te.TempDir(), "two.crd")
	if err = WriteFile(fname, C); err != nil {
		Te.Fatal(err)
	}
	back, err := ReadFile(fname)
	if err != nil {
		Te.Fatal(err)
	}
	if back.NAtoms() != 2 || !equal(back.Coords, C.Coords) {
		Te.Errorf("unexpected coordinates after round trip: %d %v", back.NAtoms(), back.Coords)
	}
	if back.Box != nil || back.Angles != nil {
		Te.Errorf("no box was written but got %v %v", back.Box, back.Angles)
	}
	if back.Title != "two atoms" {
		Te.Errorf("wrong title %q", back.Title)
	}
}

func TestWriteFormat(Te *testing.T) {
	C := &Coords{Title: "box", Coords: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, Box: []float64{30, 31, 32}, Angles: []float64{90, 90, 90}}
	var b strings.Builder
	if err := Write(&b, C); err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(b.String(), "\n")
	//title, natoms, 6 values, 6 values, 3 values, and the empty string after the last newline.
	if len(lines) != 6 || lines[5] != "" {
		Te.Fatalf("unexpected layout:\n%s", b.String())
	}
	if lines[1] != "     3" {
		Te.Errorf("wrong atom count line %q", lines[1])
	}
	if lines[2] != "   1.0000000   2.0000000   3.0000000   4.0000000   5.0000000   6.0000000" {
		Te.Errorf("wrong first coordinate line %q", lines[2])
	}
	if lines[4] != "  90.0000000  90.0000000  90.0000000" {
		Te.Errorf("wrong last line %q", lines[4])
	}
	back, err := Read(strings.NewReader(b.String()), "")
	if err != nil {
		Te.Fatal(err)
	}
	if !equal(back.Box, C.Box) || !equal(back.Angles, C.Angles) {
		Te.Errorf("box metadata lost: %v %v", back.Box, back.Angles)
	}
}

func TestBoxInference(Te *testing.T) {
	coords := "title\n     1\n 1 2 3"
	cases := []struct {
		extra     string
		box, angs bool
	}{
		{"", false, false},
		{" 4 5", false, false},
		{" 4 5 6", true, false},
		{" 4 5 6 7", true, false},
		{" 4 5 6 7 8 9", true, true},
		{" 4 5 6 7 8 9 10", true, false},
	}
	for i, c := range cases {
		C, err := Read(strings.NewReader(coords+c.extra+"\n"), "")
		if err != nil {
			Te.Errorf("case %d: %v", i, err)
			continue
		}
		if (C.Box != nil) != c.box || (C.Angles != nil) != c.angs {
			Te.Errorf("case %d: expected box %t angles %t, got %v %v", i, c.box, c.angs, C.Box, C.Angles)
		}
		if C.Box != nil && !equal(C.Box, []float64{4, 5, 6}) {
			Te.Errorf("case %d: wrong box %v", i, C.Box)
		}
		if !equal(C.Coords, []float64{1, 2, 3}) {
			Te.Errorf("case %d: wrong coordinates %v", i, C.Coords)
		}
	}
}

func TestReadErrors(Te *testing.T) {
	bad := []string{
		"",
		"title\n",
		"title\n  abc\n",
		"title\n     2\n 1 2 3 4 5\n",
		"title\n     1\n 1 2 x\n",
		"title\n4000000000000000000\n 1 2 3\n",
		"title\n100000000000\n 1 2 3\n",
		"title\n99999999999999999999\n 1 2 3\n",
	}
	for i, v := range bad {
		_, err := Read(strings.NewReader(v), "bad.crd")
		var ferr *mdtools.FormatError
		if !errors.As(err, &ferr) {
			Te.Errorf("case %d: expected a FormatError, got %v", i, err)
		}
	}
}

func TestWriteErrors(Te *testing.T) {
	fname := filepath.Join(Te.TempDir(), "bad.crd")
	var perr *mdtools.ParameterError
	err := WriteFile(fname, &Coords{Title: "bad", Coords: []float64{1, 2, 3, 4}})
	if !errors.As(err, &perr) {
		Te.Errorf("expected a ParameterError, got %v", err)
	}
	if _, err := os.Stat(fname); !os.IsNotExist(err) {
		Te.Errorf("a file was written despite the error")
	}
	err = WriteFile(fname, &Coords{Title: "bad", Coords: []float64{1, 2, 3}, Angles: []float64{90, 90, 90}})
	if !errors.As(err, &perr) {
		Te.Errorf("expected a ParameterError for angles without box, got %v", err)
	}
	if _, err := New("bad", []float64{1, 2, 3}, []float64{1, 2}, nil); !errors.As(err, &perr) {
		Te.Errorf("expected a ParameterError for a 2-value box, got %v", err)
	}
}

func TestCompressed(Te *testing.T) {
	C := &Coords{Title: "zst", Coords: []float64{1.5, -2.25, 3, 4, 5, 6.125}, Box: []float64{10, 20, 30}}
	fname := filepath.Join(Te.TempDir(), "c.crd.zst")
	if err := WriteFile(fname, C); err != nil {
		Te.Fatal(err)
	}
	back, err := ReadFile(fname)
	if err != nil {
		Te.Fatal(err)
	}
	if !equal(back.Coords, C.Coords) || !equal(back.Box, C.Box) || back.Angles != nil {
		Te.Errorf("compressed round trip failed: %+v", back)
	}
	center := back.BoxCenter()
	if !equal(center, []float64{5, 10, 15}) {
		Te.Errorf("wrong box center %v", center)
	}
	m, err := back.Matrix()
	if err != nil {
		Te.Fatal(err)
	}
	if m.NVecs() != 2 || m.At(1, 2) != 6.125 {
		Te.Errorf("wrong matrix %v", m)
	}
}
