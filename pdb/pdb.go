/*
 * pdb.go, part of mdtools.
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

//Package pdb reads and writes the ATOM records of PDB files, keeping the fixed-column
//layout. Every other record type is ignored when reading, and never written.
package pdb

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rmera/mdtools"
	v3 "github.com/rmera/mdtools/v3"
)

// AtomTag is the record name that identifies the lines that are read.
const AtomTag = "ATOM  "

// BlankChain is the chain identifier of atoms with no chain (a single space).
const BlankChain byte = ' '

// Atom is one ATOM record of a PDB file. A zero AltLoc, Chain or ICode is written
// as a blank, and read back as BlankChain (' ').
type Atom struct {
	Serial     int
	Name       string //4 characters, as read, i.e. " CA ".
	AltLoc     byte
	ResName    string
	Chain      byte
	ResSeq     int
	ICode      byte
	X, Y, Z    float64
	Occupancy  float64 //1.0 if blank in the file.
	TempFactor float64 //0.0 if blank in the file.
	SegID      string
	Element    string
	Charge     string
}

// Copy returns a copy of the atom.
func (A *Atom) Copy() *Atom {
	r := *A
	return &r
}

// col returns the characters of line between ini (inclusive) and end (exclusive), with
// the line padded with spaces if it is shorter than end.
func col(line string, ini, end int) string {
	if ini >= len(line) {
		return strings.Repeat(" ", end-ini)
	}
	if end > len(line) {
		return line[ini:] + strings.Repeat(" ", end-len(line))
	}
	return line[ini:end]
}

func colByte(line string, i int) byte {
	if i >= len(line) {
		return ' '
	}
	return line[i]
}

// atomFromLine parses an ATOM line. fname and lineno are only used for errors.
func atomFromLine(line, fname string, lineno int) (*Atom, error) {
	var err error
	ferr := func(field string, err error) error {
		return mdtools.NewFormatError(fname, lineno, fmt.Sprintf("can't read %s from %q", field, line), err, "atomFromLine")
	}
	A := new(Atom)
	if A.Serial, err = strconv.Atoi(strings.TrimSpace(col(line, 6, 11))); err != nil {
		return nil, ferr("serial", err)
	}
	A.Name = col(line, 12, 16)
	A.AltLoc = colByte(line, 16)
	A.ResName = col(line, 17, 20)
	A.Chain = colByte(line, 21)
	if A.ResSeq, err = strconv.Atoi(strings.TrimSpace(col(line, 22, 26))); err != nil {
		return nil, ferr("residue sequence number", err)
	}
	A.ICode = colByte(line, 26)
	xyz := []*float64{&A.X, &A.Y, &A.Z}
	for i, v := range xyz {
		ini := 30 + 8*i
		if *v, err = strconv.ParseFloat(strings.TrimSpace(col(line, ini, ini+8)), 64); err != nil {
			return nil, ferr(string("xyz"[i]), err)
		}
	}
	A.Occupancy = 1.0
	if s := strings.TrimSpace(col(line, 54, 60)); s != "" {
		if A.Occupancy, err = strconv.ParseFloat(s, 64); err != nil {
			return nil, ferr("occupancy", err)
		}
	}
	if s := strings.TrimSpace(col(line, 60, 66)); s != "" {
		if A.TempFactor, err = strconv.ParseFloat(s, 64); err != nil {
			return nil, ferr("temperature factor", err)
		}
	}
	A.SegID = strings.TrimSpace(col(line, 72, 76))
	A.Element = strings.TrimSpace(col(line, 76, 78))
	A.Charge = strings.TrimSpace(col(line, 78, 80))
	return A, nil
}

// ReadAtoms reads all the ATOM records from r, in order. fname is only used
// to report errors, and can be empty.
func ReadAtoms(r io.Reader, fname string) ([]*Atom, error) {
	atoms := make([]*Atom, 0, 100)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r")
		if !strings.HasPrefix(line, AtomTag) {
			continue
		}
		at, err := atomFromLine(line, fname, lineno)
		if err != nil {
			return nil, mdtools.ErrDecorate(err, "ReadAtoms")
		}
		atoms = append(atoms, at)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	return atoms, nil
}

// ReadFile reads all the ATOM records in the PDB file fname.
func ReadFile(fname string) ([]*Atom, error) {
	f, err := mdtools.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	atoms, err := ReadAtoms(f, fname)
	return atoms, mdtools.ErrDecorate(err, "ReadFile")
}

// PresentSequence returns the residue names of the residues with coordinates in chain,
// one per run of consecutive atoms with the same residue sequence number.
func PresentSequence(atoms []*Atom, chain byte) []string {
	seq := make([]string, 0, 10)
	first := true
	var last int
	for _, at := range atoms {
		if at.Chain != chain {
			continue
		}
		if first || at.ResSeq != last {
			seq = append(seq, at.ResName)
			last = at.ResSeq
			first = false
		}
	}
	return seq
}

// PresentSequenceFile returns the sequence of chain present in the PDB file fname.
// See PresentSequence.
func PresentSequenceFile(fname string, chain byte) ([]string, error) {
	atoms, err := ReadFile(fname)
	if err != nil {
		return nil, mdtools.ErrDecorate(err, "PresentSequenceFile")
	}
	return PresentSequence(atoms, chain), nil
}

// Renumber returns copies of atoms with serials going from 1 to len(atoms), and residue
// numbers starting from 1 and increasing every time the original residue number of an
// atom differs from that of the previous atom. The atoms given are not modified.
func Renumber(atoms []*Atom) []*Atom {
	ret := make([]*Atom, len(atoms))
	resSeq := 0
	first := true
	var last int
	for i, at := range atoms {
		c := at.Copy()
		c.Serial = i + 1
		if first || at.ResSeq != last {
			resSeq++
			last = at.ResSeq
			first = false
		}
		c.ResSeq = resSeq
		ret[i] = c
	}
	return ret
}

func nonzero(b byte) byte {
	if b == 0 {
		return ' '
	}
	return b
}

// Line returns the ATOM record for A, including the final newline.
func (A *Atom) Line() string {
	return fmt.Sprintf("%-6s%5d %4s%c%3s %c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f      %-4s%2s%2s\n", AtomTag,
		A.Serial, A.Name, nonzero(A.AltLoc), A.ResName, nonzero(A.Chain), A.ResSeq, nonzero(A.ICode),
		A.X, A.Y, A.Z, A.Occupancy, A.TempFactor, A.SegID, A.Element, A.Charge)
}

// fits reports whether the value v, printed with format, takes at most width characters.
func fits(format string, v interface{}, width int) bool {
	return len(fmt.Sprintf(format, v)) <= width
}

// Check returns a ParameterError if a field of A doesn't fit in its columns.
func (A *Atom) Check() error {
	fields := []struct {
		name   string
		format string
		v      interface{}
		width  int
	}{
		{"serial", "%d", A.Serial, 5},
		{"name", "%s", A.Name, 4},
		{"residue name", "%s", A.ResName, 3},
		{"residue sequence number", "%d", A.ResSeq, 4},
		{"x", "%.3f", A.X, 8},
		{"y", "%.3f", A.Y, 8},
		{"z", "%.3f", A.Z, 8},
		{"occupancy", "%.2f", A.Occupancy, 6},
		{"temperature factor", "%.2f", A.TempFactor, 6},
		{"segment", "%s", A.SegID, 4},
		{"element", "%s", A.Element, 2},
		{"charge", "%s", A.Charge, 2},
	}
	for _, f := range fields {
		if !fits(f.format, f.v, f.width) {
			return mdtools.NewParameterError(fmt.Sprintf("%s %v of atom %d doesn't fit in %d columns", f.name, f.v, A.Serial, f.width), "Atom.Check")
		}
	}
	return nil
}

// checked returns the atoms to be written (renumbered, if requested), or an error
// if any of them can't be written in the fixed columns.
func checked(atoms []*Atom, renumber bool) ([]*Atom, error) {
	if renumber {
		atoms = Renumber(atoms)
	}
	for _, at := range atoms {
		if err := at.Check(); err != nil {
			return nil, err
		}
	}
	return atoms, nil
}

// WriteAtoms writes atoms to w as ATOM records. If renumber is true, atoms and residues
// are renumbered first (see Renumber). If a field of any atom doesn't fit in its columns,
// a ParameterError is returned and nothing is written.
func WriteAtoms(w io.Writer, atoms []*Atom, renumber bool) error {
	atoms, err := checked(atoms, renumber)
	if err != nil {
		return mdtools.ErrDecorate(err, "WriteAtoms")
	}
	for _, at := range atoms {
		if _, err := io.WriteString(w, at.Line()); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes atoms to the PDB file fname, which is overwritten if it exists.
// The file is not created if the atoms can't be written (see WriteAtoms).
func WriteFile(fname string, atoms []*Atom, renumber bool) error {
	atoms, err := checked(atoms, renumber)
	if err != nil {
		return mdtools.ErrDecorate(err, "WriteFile")
	}
	f, err := mdtools.Create(fname)
	if err != nil {
		return err
	}
	if err = WriteAtoms(f, atoms, false); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return f.Close()
}

// SelectChain returns the atoms in chain, in order. The atoms are not copied.
func SelectChain(atoms []*Atom, chain byte) []*Atom {
	ret := make([]*Atom, 0, len(atoms))
	for _, at := range atoms {
		if at.Chain == chain {
			ret = append(ret, at)
		}
	}
	return ret
}

// SelectResSeq returns the atoms with residue number resSeq, in order. The atoms are not copied.
func SelectResSeq(atoms []*Atom, resSeq int) []*Atom {
	ret := make([]*Atom, 0, 10)
	for _, at := range atoms {
		if at.ResSeq == resSeq {
			ret = append(ret, at)
		}
	}
	return ret
}

// Flatten returns the positions of atoms as concatenated (x,y,z) triples.
func Flatten(atoms []*Atom) []float64 {
	ret := make([]float64, 0, 3*len(atoms))
	for _, at := range atoms {
		ret = append(ret, at.X, at.Y, at.Z)
	}
	return ret
}

// Coords returns the positions of atoms as a v3.Matrix.
func Coords(atoms []*Atom) (*v3.Matrix, error) {
	m, err := v3.NewMatrix(Flatten(atoms))
	return m, mdtools.ErrDecorate(err, "pdb.Coords")
}
