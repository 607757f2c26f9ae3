/*
 * pdb_test.go, part of mdtools.
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

package pdb

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/mdtools"
)

const testPDB = `REMARK   1 a test file
ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00  0.00           N
ATOM      2  CA  ALA A   1      11.639   6.071  -5.147  1.00  0.00           C
ATOM      3  N   GLY A   2      12.000   5.000  -4.000  1.00  0.00           N
ATOM      4  CA  GLY A   2      12.500   5.500  -3.500  0.50 12.30           C
HETATM    5  O   HOH A   3       1.000   1.000   1.000  1.00  0.00           O
ATOM      6  N   SER A   3      13.000   4.000  -2.000
TER
ATOM      7  OW  WAT B   1       0.000   0.000   0.000  1.00  0.00           O
ATOM      8  HW1 WAT B   1       0.957   0.000   0.000  1.00  0.00           H
END
`

func readString(Te *testing.T, s string) []*Atom {
	atoms, err := ReadAtoms(strings.NewReader(s), "test.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	return atoms
}

func TestRead(Te *testing.T) {
	atoms := readString(Te, testPDB)
	if len(atoms) != 7 {
		Te.Fatalf("expected 7 ATOM records, got %d", len(atoms))
	}
	a := atoms[1]
	if a.Serial != 2 || a.Name != " CA " || a.ResName != "ALA" || a.Chain != 'A' || a.ResSeq != 1 {
		Te.Errorf("wrong identity for atom 2: %+v", a)
	}
	if a.X != 11.639 || a.Y != 6.071 || a.Z != -5.147 {
		Te.Errorf("wrong coordinates for atom 2: %v %v %v", a.X, a.Y, a.Z)
	}
	if a.Element != "C" {
		Te.Errorf("wrong element for atom 2: %q", a.Element)
	}
	if atoms[3].Occupancy != 0.5 || atoms[3].TempFactor != 12.3 {
		Te.Errorf("wrong occupancy/b-factor for atom 4: %v %v", atoms[3].Occupancy, atoms[3].TempFactor)
	}
	//Line truncated after the coordinates, so the defaults apply.
	s := atoms[4]
	if s.Serial != 6 || s.Occupancy != 1.0 || s.TempFactor != 0.0 || s.Element != "" {
		Te.Errorf("wrong defaults for a truncated line: %+v", s)
	}
}

func TestReadErrors(Te *testing.T) {
	bad := []string{
		"ATOM      1  N   ALA A   1      11.104   6.1x4  -6.504  1.00  0.00           N\n",
		"ATOM         N   ALA A   1      11.104   6.134  -6.504  1.00  0.00           N\n",
		"ATOM      1  N   ALA A          11.104   6.134  -6.504  1.00  0.00           N\n",
		"ATOM      1  N   ALA A   1      11.104   6.134\n",
		"ATOM      1  N   ALA A   1      11.104   6.134  -6.504  abcd  0.00           N\n",
	}
	for i, v := range bad {
		_, err := ReadAtoms(strings.NewReader("REMARK\n"+v), "bad.pdb")
		var ferr *mdtools.FormatError
		if !errors.As(err, &ferr) {
			Te.Errorf("line %d: expected a FormatError, got %v", i, err)
			continue
		}
		if ferr.Line != 2 || ferr.File != "bad.pdb" {
			Te.Errorf("line %d: wrong location in error: %s:%d", i, ferr.File, ferr.Line)
		}
	}
}

func TestRoundTrip(Te *testing.T) {
	atoms := readString(Te, testPDB)
	fname := filepath.Join(Te.TempDir(), "out.pdb")
	if err := WriteFile(fname, atoms, false); err != nil {
		Te.Fatal(err)
	}
	back, err := ReadFile(fname)
	if err != nil {
		Te.Fatal(err)
	}
	if len(back) != len(atoms) {
		Te.Fatalf("wrote %d atoms, read %d", len(atoms), len(back))
	}
	for i, a := range atoms {
		if *a != *back[i] {
			Te.Errorf("atom %d changed in the round trip:\n%+v\n%+v", i, a, back[i])
		}
	}
	raw, err := os.ReadFile(fname)
	if err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(string(raw), "\n")
	expected := "ATOM      2  CA  ALA A   1      11.639   6.071  -5.147  1.00  0.00           C  "
	if lines[1] != expected {
		Te.Errorf("wrong PDB line.\nexpected: %q\ngot:      %q", expected, lines[1])
	}
}

func TestWriteOverflow(Te *testing.T) {
	good := &Atom{Serial: 99999, Name: " CA ", ResName: "ALA", ResSeq: 9999, X: 9999.999, Y: -999.999, Occupancy: 1}
	if err := good.Check(); err != nil {
		Te.Errorf("atom at the limits rejected: %v", err)
	}
	bad := []func(*Atom){
		func(A *Atom) { A.Serial = 100000 },
		func(A *Atom) { A.Name = " CA  X" },
		func(A *Atom) { A.ResSeq = 10000 },
		func(A *Atom) { A.X = 10000 },
		func(A *Atom) { A.Z = -1000 },
		func(A *Atom) { A.TempFactor = 1000 },
		func(A *Atom) { A.SegID = "LONGSEG" },
		func(A *Atom) { A.Element = "XYZ" },
	}
	dir := Te.TempDir()
	for i, f := range bad {
		A := good.Copy()
		f(A)
		var perr *mdtools.ParameterError
		fname := filepath.Join(dir, "bad.pdb")
		if err := WriteFile(fname, []*Atom{A}, false); !errors.As(err, &perr) {
			Te.Errorf("case %d: expected a ParameterError, got %v", i, err)
		}
		if _, err := os.Stat(fname); !os.IsNotExist(err) {
			Te.Errorf("case %d: a file was written despite the error", i)
		}
	}
	//renumbering can bring a serial back into range.
	A := good.Copy()
	A.Serial = 123456
	var b strings.Builder
	if err := WriteAtoms(&b, []*Atom{A}, true); err != nil {
		Te.Errorf("renumbered atom rejected: %v", err)
	}
}

func TestBlankBytes(Te *testing.T) {
	A := &Atom{Serial: 1, Name: " O  ", ResName: "WAT", ResSeq: 1, Occupancy: 1}
	back := readString(Te, A.Line())
	if back[0].AltLoc != ' ' || back[0].Chain != BlankChain || back[0].ICode != ' ' {
		Te.Errorf("zero bytes should be read back as blanks: %+v", back[0])
	}
}

func TestCompressedRoundTrip(Te *testing.T) {
	atoms := readString(Te, testPDB)
	for _, ext := range []string{".pdb.zst", ".pdb.gz"} {
		fname := filepath.Join(Te.TempDir(), "out"+ext)
		if err := WriteFile(fname, atoms, true); err != nil {
			Te.Fatal(err)
		}
		back, err := ReadFile(fname)
		if err != nil {
			Te.Fatal(err)
		}
		if len(back) != len(atoms) || back[6].Serial != 7 || back[6].X != 0.957 {
			Te.Errorf("%s: unexpected atoms after compressed round trip", ext)
		}
	}
}

func TestPresentSequence(Te *testing.T) {
	var atoms []*Atom
	for i, r := range []int{1, 1, 2, 2, 3} {
		atoms = append(atoms, &Atom{Serial: i + 1, Name: " CA ", ResName: "ALA", Chain: 'A', ResSeq: r})
	}
	for i, r := range []int{1, 1} {
		atoms = append(atoms, &Atom{Serial: i + 6, Name: " OW ", ResName: "WAT", Chain: 'B', ResSeq: r})
	}
	fname := filepath.Join(Te.TempDir(), "seq.pdb")
	if err := WriteFile(fname, atoms, false); err != nil {
		Te.Fatal(err)
	}
	a, err := PresentSequenceFile(fname, 'A')
	if err != nil {
		Te.Fatal(err)
	}
	b, err := PresentSequenceFile(fname, 'B')
	if err != nil {
		Te.Fatal(err)
	}
	if len(a) != 3 || len(b) != 1 {
		Te.Errorf("expected 3 and 1 residues, got %v and %v", a, b)
	}
	if len(a)-len(b) != 2 {
		Te.Errorf("wrong delta: %d", len(a)-len(b))
	}
	if blank := PresentSequence(atoms, BlankChain); len(blank) != 0 {
		Te.Errorf("no atom has a blank chain, got %v", blank)
	}
}

func TestRenumber(Te *testing.T) {
	var atoms []*Atom
	orig := []int{5, 5, 9, 9, 9, 2, 5}
	for i, r := range orig {
		atoms = append(atoms, &Atom{Serial: 100 + i, ResSeq: r})
	}
	ren := Renumber(atoms)
	expected := []int{1, 1, 2, 2, 2, 3, 4}
	for i, a := range ren {
		if a.Serial != i+1 || a.ResSeq != expected[i] {
			Te.Errorf("atom %d: expected serial %d resSeq %d, got %d %d", i, i+1, expected[i], a.Serial, a.ResSeq)
		}
		if atoms[i].ResSeq != orig[i] || atoms[i].Serial != 100+i {
			Te.Errorf("atom %d: Renumber modified its input", i)
		}
	}
	//Renumbering something already numbered is a no-op.
	again := Renumber(ren)
	for i, a := range again {
		if *a != *ren[i] {
			Te.Errorf("atom %d: renumbering is not idempotent: %+v %+v", i, a, ren[i])
		}
	}
}

func TestCoords(Te *testing.T) {
	atoms := readString(Te, testPDB)
	c, err := Coords(SelectChain(atoms, 'B'))
	if err != nil {
		Te.Fatal(err)
	}
	if c.NVecs() != 2 || c.At(1, 0) != 0.957 {
		Te.Errorf("unexpected coordinates %v", c)
	}
	if l := len(SelectResSeq(atoms, 2)); l != 2 {
		Te.Errorf("expected 2 atoms in residue 2, got %d", l)
	}
	if _, err := Coords(nil); err == nil {
		Te.Errorf("expected an error for an empty selection")
	}
}
