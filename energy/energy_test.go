/*
 * energy_test.go, part of mdtools.
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

package energy

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/mdtools"
)

const testXVG = `# This file was created by gmx energy
# Some comment
@    title "GROMACS Energies"
@    xaxis  label "Time (ps)"
@    yaxis  label "(kJ/mol), (K), (bar)"
@TYPE xy
@ view 0.15, 0.15, 0.75, 0.85
@ legend on
@ legend box on
@ s0 legend "Bond"
@ s1 legend "Proper Dih."
@ s2 legend "Ryckaert-Bell."
@ s3 legend "LJ-14"
@ s4 legend "Coulomb-14"
@ s5 legend "LJ (SR)"
@ s6 legend "Coulomb (SR)"
@ s7 legend "Potential"
@ s8 legend "Kinetic En."
@ s9 legend "Temperature"
    0.000000  10.0  1.0  2.0  3.0  4.0  -50.0  -100.0  -230.0  25.0  300.0
    1.000000  12.0  1.5  2.5  3.5  4.5  -52.0  -110.0  -238.0  27.0  310.0
`

func TestReadXVG(Te *testing.T) {
	X, err := ReadXVG(strings.NewReader(testXVG), "test.xvg")
	if err != nil {
		Te.Fatal(err)
	}
	if len(X.Names) != 10 || X.Names[5] != "LJ (SR)" {
		Te.Errorf("wrong series names %v", X.Names)
	}
	if len(X.Data) != 2 || X.Time[1] != 1 {
		Te.Errorf("wrong data %v %v", X.Time, X.Data)
	}
	last := X.Last()
	if last[0] != 12 || last[9] != 310 {
		Te.Errorf("wrong last row %v", last)
	}
	if s := X.Series("Bond"); len(s) != 2 || s[0] != 10 {
		Te.Errorf("wrong Bond series %v", s)
	}
	if X.Series("Nope") != nil {
		Te.Errorf("got a series that doesn't exist")
	}
}

func TestReadXVGErrors(Te *testing.T) {
	bad := []string{
		"# nothing\n@ s0 legend \"Bond\"\n",
		"@ s0 legend \"Bond\"\n0.0 1.0 2.0\n",
		"@ s0 legend \"Bond\"\n0.0 abc\n",
	}
	for i, v := range bad {
		_, err := ReadXVG(strings.NewReader(v), "bad.xvg")
		var ferr *mdtools.FormatError
		if !errors.As(err, &ferr) {
			Te.Errorf("case %d: expected a FormatError, got %v", i, err)
		}
	}
}

func TestTerms(Te *testing.T) {
	X, err := ReadXVG(strings.NewReader(testXVG), "test.xvg")
	if err != nil {
		Te.Fatal(err)
	}
	T, err := FromXVG(X)
	if err != nil {
		Te.Fatal(err)
	}
	if _, ok := T.Get("Kinetic En."); ok {
		Te.Errorf("non-energy terms should be dropped")
	}
	if _, ok := T.Get("Temperature"); ok {
		Te.Errorf("non-energy terms should be dropped")
	}
	expected := map[string]float64{
		"Bond":        12,
		Dispersive:    -52 + 3.5,
		Electrostatic: -110 + 4.5,
		NonBonded:     -52 + 3.5 - 110 + 4.5,
		AllDihedrals:  1.5 + 2.5,
	}
	for k, v := range expected {
		got, ok := T.Get(k)
		if !ok || math.Abs(got-v) > 1e-9 {
			Te.Errorf("%s: expected %v, got %v (%t)", k, v, got, ok)
		}
	}
	names := T.Names()
	if names[len(names)-1] != AllDihedrals || names[0] != "Bond" {
		Te.Errorf("wrong order of terms %v", names)
	}
	if T.Len() != 12 {
		Te.Errorf("expected 12 terms, got %d: %v", T.Len(), names)
	}
	if e := EnergyNames(X.Names); len(e) != 8 || e[7] != "Potential" {
		Te.Errorf("wrong energy names %v", e)
	}
	if _, err := New([]string{"a"}, nil); err == nil {
		Te.Errorf("expected an error for mismatched names and values")
	}
}

func TestSummaryPlot(Te *testing.T) {
	X, err := ReadXVG(strings.NewReader(testXVG), "test.xvg")
	if err != nil {
		Te.Fatal(err)
	}
	s, err := Summary(X, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if s[0].Name != "Bond" || s[0].Mean != 11 || math.Abs(s[0].StdDev-math.Sqrt2) > 1e-9 {
		Te.Errorf("wrong statistics for Bond: %+v", s[0])
	}
	if _, err := Summary(X, 2); err == nil {
		Te.Errorf("expected an error when skipping all the rows")
	}
	plotname := filepath.Join(Te.TempDir(), "energy.png")
	if err := Plot(X, []string{"Bond", "LJ (SR)"}, "test", plotname); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(plotname); err != nil {
		Te.Errorf("plot not written: %v", err)
	}
	if err := Plot(X, []string{"Nope"}, "test", plotname); err == nil {
		Te.Errorf("expected an error for a series that doesn't exist")
	}
}
