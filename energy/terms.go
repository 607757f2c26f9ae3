/*
 * terms.go, part of mdtools.
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

//Package energy collects the energy terms reported by GROMACS in XVG files, and
//groups them into the usual categories (dispersive, electrostatic, dihedrals).
//All energies are in kJ/mol, as given by GROMACS.
package energy

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Names of the terms added by FromXVGRow.
const (
	Dispersive    = "Dispersive"
	Electrostatic = "Electrostatic"
	NonBonded     = "Non-bonded"
	AllDihedrals  = "All dihedrals"
)

// Series that are not energies, or are sums of other terms, and are dropped by FromXVGRow.
var Unwanted = []string{"Kinetic En.", "Total Energy", "Temperature", "Pressure",
	"Volume", "Box-X", "Box-Y", "Box-Z", "Pres. DC"}

// Series added up for each of the grouped terms. Series that are not present count as zero.
var (
	DispersiveTerms    = []string{"LJ (SR)", "LJ-14", "Disper.corr."}
	ElectrostaticTerms = []string{"Coulomb (SR)", "Coulomb-14", "Coul. recip."}
	DihedralTerms      = []string{"Ryckaert-Bell.", "Proper Dih.", "Improper Dih."}
)

// Terms is an ordered set of named energies.
type Terms struct {
	names  []string
	values map[string]float64
}

// New returns a Terms with the given names and values, in that order. If a name
// is repeated, the last value is kept.
func New(names []string, values []float64) (*Terms, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("energy.New: %d names but %d values", len(names), len(values))
	}
	T := &Terms{values: make(map[string]float64, len(names))}
	for i, n := range names {
		T.Set(n, values[i])
	}
	return T, nil
}

// Set sets the value of the term name, appending it at the end if it wasn't there.
func (T *Terms) Set(name string, value float64) {
	if _, ok := T.values[name]; !ok {
		T.names = append(T.names, name)
	}
	T.values[name] = value
}

// Get returns the value of the term name, and whether it is present.
func (T *Terms) Get(name string) (float64, bool) {
	v, ok := T.values[name]
	return v, ok
}

// Delete removes the term name, if present.
func (T *Terms) Delete(name string) {
	if _, ok := T.values[name]; !ok {
		return
	}
	delete(T.values, name)
	for i, v := range T.names {
		if v == name {
			T.names = append(T.names[:i], T.names[i+1:]...)
			break
		}
	}
}

// Names returns the names of the terms, in order.
func (T *Terms) Names() []string {
	return append([]string(nil), T.names...)
}

// Len returns the number of terms.
func (T *Terms) Len() int { return len(T.names) }

// Sum returns the sum of the given terms. Terms not present are ignored.
func (T *Terms) Sum(names ...string) float64 {
	vals := make([]float64, 0, len(names))
	for _, n := range names {
		if v, ok := T.values[n]; ok {
			vals = append(vals, v)
		}
	}
	return floats.Sum(vals)
}

func (T *Terms) String() string {
	var b strings.Builder
	for _, n := range T.names {
		fmt.Fprintf(&b, "%-20s %15.4f kJ/mol\n", n, T.values[n])
	}
	return b.String()
}

// FromXVGRow builds Terms from the series names of an XVG file and one row of values.
// Non-energy series are dropped, and the Dispersive, Electrostatic, Non-bonded and
// All dihedrals terms are added.
func FromXVGRow(names []string, row []float64) (*Terms, error) {
	T, err := New(names, row)
	if err != nil {
		return nil, err
	}
	for _, v := range Unwanted {
		T.Delete(v)
	}
	T.Set(Dispersive, T.Sum(DispersiveTerms...))
	T.Set(Electrostatic, T.Sum(ElectrostaticTerms...))
	T.Set(NonBonded, T.Sum(Electrostatic, Dispersive))
	T.Set(AllDihedrals, T.Sum(DihedralTerms...))
	return T, nil
}

// EnergyNames returns the names that are not in Unwanted, in order.
func EnergyNames(names []string) []string {
	ret := make([]string, 0, len(names))
	for _, n := range names {
		if !unwanted(n) {
			ret = append(ret, n)
		}
	}
	return ret
}

func unwanted(name string) bool {
	for _, v := range Unwanted {
		if v == name {
			return true
		}
	}
	return false
}

// FromXVG returns the terms for the last row of X.
func FromXVG(X *XVG) (*Terms, error) {
	return FromXVGRow(X.Names, X.Last())
}
