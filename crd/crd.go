/*
 * crd.go, part of mdtools.
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

//Package crd reads and writes AMBER coordinate files (the restart-like .crd format):
//a title line, a line with the number of atoms, and then the coordinates, 6 per line,
//optionally followed by the box dimensions and the box angles.
package crd

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rmera/mdtools"
	v3 "github.com/rmera/mdtools/v3"
	"gonum.org/v1/gonum/floats"
)

const perLine = 6

// maxAtoms is the largest atom count for which the number of values, including
// box and angles, fits in an int.
const maxAtoms = (math.MaxInt - 6) / 3

// Coords is the content of a crd file.
type Coords struct {
	Title  string
	Coords []float64 //concatenated (x,y,z) triples.
	Box    []float64 //nil, or the 3 box dimensions.
	Angles []float64 //nil, or the 3 box angles. Never set if Box is nil.
}

// New returns a new Coords, after checking that the data given is consistent.
// box and angles can be nil.
func New(title string, coords, box, angles []float64) (*Coords, error) {
	C := &Coords{Title: title, Coords: coords, Box: box, Angles: angles}
	if err := C.check(); err != nil {
		return nil, mdtools.ErrDecorate(err, "crd.New")
	}
	return C, nil
}

func (C *Coords) check() error {
	if len(C.Coords)%3 != 0 {
		return mdtools.NewParameterError(fmt.Sprintf("number of atomic coordinates (%d) is not a multiple of 3", len(C.Coords)), "check")
	}
	if C.Box != nil && len(C.Box) != 3 {
		return mdtools.NewParameterError(fmt.Sprintf("box dimensions must have 3 values, got %d", len(C.Box)), "check")
	}
	if C.Angles != nil && len(C.Angles) != 3 {
		return mdtools.NewParameterError(fmt.Sprintf("box angles must have 3 values, got %d", len(C.Angles)), "check")
	}
	if C.Angles != nil && C.Box == nil {
		return mdtools.NewParameterError("box angles given without box dimensions", "check")
	}
	return nil
}

// NAtoms returns the number of atoms.
func (C *Coords) NAtoms() int {
	return len(C.Coords) / 3
}

// Matrix returns the atomic coordinates as a v3.Matrix. The matrix shares the
// underlying data with C.
func (C *Coords) Matrix() (*v3.Matrix, error) {
	m, err := v3.NewMatrix(C.Coords)
	return m, mdtools.ErrDecorate(err, "Matrix")
}

// BoxCenter returns the center of the box, or nil if C has no box.
func (C *Coords) BoxCenter() []float64 {
	if C.Box == nil {
		return nil
	}
	ret := make([]float64, 3)
	return floats.ScaleTo(ret, 0.5, C.Box)
}

// Read reads a crd file from r. fname is only used for errors, and can be empty.
// Box dimensions are read if there are at least 3 values after the coordinates, and
// box angles if there are exactly 6. Any other extra values are ignored.
func Read(r io.Reader, fname string) (*Coords, error) {
	var err error
	C := new(Coords)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	if !scanner.Scan() {
		return nil, mdtools.NewFormatError(fname, 1, "missing title line", scanner.Err(), "crd.Read")
	}
	C.Title = strings.TrimRight(scanner.Text(), " \r\n")
	if !scanner.Scan() {
		return nil, mdtools.NewFormatError(fname, 2, "missing number of atoms", scanner.Err(), "crd.Read")
	}
	f := strings.Fields(scanner.Text())
	if len(f) == 0 {
		return nil, mdtools.NewFormatError(fname, 2, "missing number of atoms", nil, "crd.Read")
	}
	natoms, err := strconv.Atoi(f[0])
	if err != nil || natoms < 0 || natoms > maxAtoms {
		return nil, mdtools.NewFormatError(fname, 2, fmt.Sprintf("can't read the number of atoms from %q", f[0]), err, "crd.Read")
	}
	//the declared count is not trusted for the allocation.
	values := make([]float64, 0, min(3*natoms+6, 1<<16))
	lineno := 2
	for scanner.Scan() {
		lineno++
		for _, s := range strings.Fields(scanner.Text()) {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, mdtools.NewFormatError(fname, lineno, fmt.Sprintf("can't read coordinate %q", s), err, "crd.Read")
			}
			values = append(values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	n := 3 * natoms
	if len(values) < n {
		return nil, mdtools.NewFormatError(fname, 0, fmt.Sprintf("%d atoms declared but only %d values present", natoms, len(values)), nil, "crd.Read")
	}
	if len(values) >= n+3 {
		C.Box = append([]float64(nil), values[n:n+3]...)
	}
	if len(values) == n+6 {
		C.Angles = append([]float64(nil), values[n+3:n+6]...)
	}
	C.Coords = values[:n:n]
	return C, nil
}

// ReadFile reads the crd file fname.
func ReadFile(fname string) (*Coords, error) {
	f, err := mdtools.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	C, err := Read(f, fname)
	return C, mdtools.ErrDecorate(err, "crd.ReadFile")
}

// Write writes C to w in crd format.
func Write(w io.Writer, C *Coords) error {
	if err := C.check(); err != nil {
		return mdtools.ErrDecorate(err, "crd.Write")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n", C.Title)
	fmt.Fprintf(bw, "%6d\n", C.NAtoms())
	towrite := make([]float64, 0, len(C.Coords)+6)
	towrite = append(towrite, C.Coords...)
	if C.Box != nil {
		towrite = append(towrite, C.Box...)
		towrite = append(towrite, C.Angles...)
	}
	thisline := 0
	for _, v := range towrite {
		fmt.Fprintf(bw, "%12.7f", v)
		thisline++
		if thisline == perLine {
			bw.WriteString("\n")
			thisline = 0
		}
	}
	if thisline != 0 {
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// WriteFile writes C to the file fname, which is overwritten if it exists.
// If C is not consistent, an error is returned and no file is created.
func WriteFile(fname string, C *Coords) error {
	if err := C.check(); err != nil {
		return mdtools.ErrDecorate(err, "crd.WriteFile")
	}
	f, err := mdtools.Create(fname)
	if err != nil {
		return err
	}
	if err = Write(f, C); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return f.Close()
}
