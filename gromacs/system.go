/*
 * system.go, part of mdtools.
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
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rmera/mdtools"
)

// SaltIons gives the GROMACS names of the positive and negative ions for each supported salt.
var SaltIons = map[string][2]string{
	"NaCl": {"NA", "CL"},
	"KCl":  {"K", "CL"},
}

// System is a PDB structure to be turned into a solvated, neutralized GROMACS
// system ready to be equilibrated.
type System struct {
	H          *Handle
	pdb        string
	forcefield string
	water      string
	waterBox   string //the pre-equilibrated water box used by solvate.
	boxType    string
	margin     float64 //distance from the solute to the box edges, in nm
	salt       string
	conc       float64 //molar
	nsteps     int
}

// NewSystem returns a new System for the structure in the PDB file pdb, to be simulated
// with the force field forcefield, i.e. "amber99sb-ildn". The defaults are TIP3P water,
// a dodecahedral box with 1 nm between the solute and its edges, only counterions,
// and 50000 equilibration steps.
func NewSystem(pdb, forcefield string, H *Handle) *System {
	return &System{
		H:          H,
		pdb:        pdb,
		forcefield: forcefield,
		water:      "tip3p",
		waterBox:   "spc216.gro",
		boxType:    "dodecahedron",
		margin:     1.0,
		salt:       "NaCl",
		nsteps:     50000,
	}
}

// SetSaltConditions sets the salt and its molar concentration. Counterions are always added
// to neutralize the system.
func (S *System) SetSaltConditions(salt string, conc float64) error {
	if _, ok := SaltIons[salt]; !ok {
		return mdtools.NewParameterError(fmt.Sprintf("salt %s not supported", salt), "SetSaltConditions")
	}
	if conc < 0 {
		return mdtools.NewParameterError(fmt.Sprintf("negative salt concentration %f", conc), "SetSaltConditions")
	}
	S.salt = salt
	S.conc = conc
	return nil
}

// SetWater sets the water model (as understood by pdb2gmx) and the pre-equilibrated
// water box used to solvate the system.
func (S *System) SetWater(model, box string) {
	if model != "" {
		S.water = model
	}
	if box != "" {
		S.waterBox = box
	}
}

// SetBox sets the box type (as understood by editconf) and the minimum distance, in nm,
// between the solute and the box edges. Empty or non-positive values are ignored.
func (S *System) SetBox(boxType string, margin float64) {
	if boxType != "" {
		S.boxType = boxType
	}
	if margin > 0 {
		S.margin = margin
	}
}

// SetSteps sets the number of steps of the equilibration run. Non-positive values are ignored.
func (S *System) SetSteps(n int) {
	if n > 0 {
		S.nsteps = n
	}
}

// Prepare builds the system in outdir: it writes outname.top, outname.gro, outname.tpr,
// the mdp files used, a prepare.log file with everything GROMACS printed, and an
// "equilibrate" script that runs mdrun on outname.tpr.
func (S *System) Prepare(ctx context.Context, outname, outdir string) (err error) {
	if err = abs(&outdir); err != nil {
		return err
	}
	if err = os.MkdirAll(outdir, 0755); err != nil {
		return err
	}
	pdb := S.pdb
	if err = abs(&pdb); err != nil {
		return err
	}
	logfile, err := os.Create(filepath.Join(outdir, "prepare.log"))
	if err != nil {
		return err
	}
	defer logfile.Close()
	L := log.New(logfile, "", log.LstdFlags)
	defer func() {
		if err != nil {
			L.Printf("Preparation failed: %v", err)
		}
	}()
	name := func(suffix string) string { return filepath.Join(outdir, outname+suffix) }
	top := name(".top")
	ions := SaltIons[S.salt]

	steps := []struct {
		tool  string
		args  []string
		stdin string
	}{
		{"pdb2gmx", []string{"-f", pdb, "-o", name("_processed.gro"), "-p", top, "-i", name("_posre.itp"), "-ff", S.forcefield, "-water", S.water, "-ignh"}, ""},
		{"editconf", []string{"-f", name("_processed.gro"), "-o", name("_box.gro"), "-c", "-d", fmt.Sprintf("%.3f", S.margin), "-bt", S.boxType}, ""},
		{"solvate", []string{"-cp", name("_box.gro"), "-cs", S.waterBox, "-o", name("_solv.gro"), "-p", top}, ""},
		{"grompp", []string{"-f", name("_ions.mdp"), "-c", name("_solv.gro"), "-p", top, "-o", name("_ions.tpr"), "-po", name("_ions_out.mdp"), "-maxwarn", "1"}, ""},
		{"genion", []string{"-s", name("_ions.tpr"), "-o", name(".gro"), "-p", top, "-pname", ions[0], "-nname", ions[1], "-conc", fmt.Sprintf("%.4f", S.conc), "-neutral"}, "SOL\n"},
		{"grompp", []string{"-f", name(".mdp"), "-c", name(".gro"), "-r", name(".gro"), "-p", top, "-o", name(".tpr"), "-po", name("_out.mdp"), "-maxwarn", "1"}, ""},
	}
	if err = os.WriteFile(name("_ions.mdp"), []byte(IonsMdp()), 0644); err != nil {
		return err
	}
	if err = os.WriteFile(name(".mdp"), []byte(EquilibrationMdp(S.nsteps)), 0644); err != nil {
		return err
	}
	L.Printf("Preparing %s with force field %s, water %s, %s %.3f M", S.pdb, S.forcefield, S.water, S.salt, S.conc)
	for _, s := range steps {
		var stdin io.Reader
		if s.stdin != "" {
			stdin = strings.NewReader(s.stdin)
		}
		bin, first := S.H.Command(s.tool)
		L.Printf("Running: %s %s", bin, strings.Join(append(first, s.args...), " "))
		if err = S.H.run(ctx, outdir, s.tool, s.args, stdin, logfile, logfile); err != nil {
			return mdtools.ErrDecorate(err, "Prepare: "+s.tool)
		}
	}
	bin, first := S.H.Command("mdrun")
	mdrun := make([]string, 0, 2)
	for _, v := range append([]string{bin}, first...) {
		mdrun = append(mdrun, shellQuote(v))
	}
	script := fmt.Sprintf("#!/bin/sh\n# Equilibration of %s\ncd %s || exit 1\n%s -s %s -deffnm %s\n", strings.ReplaceAll(S.pdb, "\n", " "),
		shellQuote(outdir), strings.Join(mdrun, " "), shellQuote(name(".tpr")), shellQuote(outname))
	if err = os.WriteFile(filepath.Join(outdir, "equilibrate"), []byte(script), 0755); err != nil {
		return err
	}
	L.Printf("System ready: %s, %s, %s", name(".top"), name(".gro"), name(".tpr"))
	return nil
}

// shellQuote returns s in single quotes, so sh takes it literally.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
