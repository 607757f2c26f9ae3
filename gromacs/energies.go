/*
 * energies.go, part of mdtools.
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

package gromacs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/mdtools"
	"github.com/rmera/mdtools/energy"
)

// Names of the files written by Energies, in the directory of the topology.
const (
	TprName    = "topol.tpr"
	EdrName    = "ener.edr"
	XvgName    = "energy.xvg"
	ConfName   = "confout.gro"
	MdoutName  = "mdout.mdp"
	StateName  = "state.cpt"
	TrajName   = "traj.trr"
	LogName    = "md.log"
	StdoutName = "gromacs_stdout.txt"
	StderrName = "gromacs_stderr.txt"
)

// energySelection is what is given to the energy tool on its standard input: the
// first 19 terms, then 0 to finish.
func energySelection() string {
	sel := make([]string, 0, 20)
	for i := 1; i < 20; i++ {
		sel = append(sel, strconv.Itoa(i))
	}
	sel = append(sel, "0")
	return strings.Join(sel, " ") + "\n"
}

// Energies runs grompp, mdrun (a single step, if mdp says so) and the energy tool
// for the system given by the topology top, the coordinates gro and the parameters mdp.
// All files are written in the directory of top. It returns the energy terms for
// the last frame, and the name of the XVG file where they were read from.
// If gromppCheck is true, it only runs grompp, and returns nil terms and an empty name.
func (H *Handle) Energies(ctx context.Context, top, gro, mdp string, gromppCheck bool) (*energy.Terms, string, error) {
	if err := abs(&top, &gro, &mdp); err != nil {
		return nil, "", err
	}
	dir := filepath.Dir(top)
	name := func(n string) string { return filepath.Join(dir, n) }
	stdout, err := os.Create(name(StdoutName))
	if err != nil {
		return nil, "", err
	}
	defer stdout.Close()
	stderr, err := os.Create(name(StderrName))
	if err != nil {
		return nil, "", err
	}
	defer stderr.Close()

	fail := func(err error, step string) error {
		return mdtools.ErrDecorate(err, fmt.Sprintf("Energies: %s failed for %s", step, top))
	}

	err = H.run(ctx, dir, "grompp", []string{"-f", mdp, "-c", gro, "-p", top, "-o", name(TprName), "-po", name(MdoutName), "-maxwarn", "1"}, nil, stdout, stderr)
	if err != nil {
		return nil, "", fail(err, "grompp")
	}
	if gromppCheck {
		return nil, "", nil
	}
	err = H.run(ctx, dir, "mdrun", []string{"-nt", "1", "-s", name(TprName), "-o", name(TrajName), "-cpo", name(StateName), "-c",
		name(ConfName), "-e", name(EdrName), "-g", name(LogName)}, nil, stdout, stderr)
	if err != nil {
		return nil, "", fail(err, "mdrun")
	}
	xvg := name(XvgName)
	err = H.run(ctx, dir, "energy", []string{"-f", name(EdrName), "-o", xvg, "-dp"}, strings.NewReader(energySelection()), stdout, stderr)
	if err != nil {
		return nil, "", fail(err, "energy")
	}
	X, err := energy.ReadXVGFile(xvg)
	if err != nil {
		return nil, "", mdtools.ErrDecorate(err, "Energies")
	}
	T, err := energy.FromXVG(X)
	if err != nil {
		return nil, "", err
	}
	return T, xvg, nil
}
