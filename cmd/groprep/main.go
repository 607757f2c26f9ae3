/*
 * main.go, part of mdtools.
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

//groprep prepares a PDB structure for a GROMACS simulation: it builds the topology,
//puts the structure in a water box, adds ions and leaves everything ready for an
//equilibration run, started with the "equilibrate" script it writes.
//
//usage: groprep -pdb test.pdb -ff amber99sb-ildn -salt NaCl -conc 0.15 -out prod -dir .
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rmera/mdtools/cfg"
)

func main() {
	var c cfg.Prepare
	flag.StringVar(&c.PDB, "pdb", "", "Structure to prepare")
	flag.StringVar(&c.ForceField, "ff", "amber99sb-ildn", "Force field, as understood by pdb2gmx")
	flag.StringVar(&c.Water, "water", "", "Water model, as understood by pdb2gmx (default tip3p)")
	flag.StringVar(&c.WaterBox, "waterbox", "", "Pre-equilibrated water box (default spc216.gro)")
	flag.StringVar(&c.BoxType, "bt", "", "Box type, as understood by editconf (default dodecahedron)")
	flag.Float64Var(&c.Margin, "d", 0, "Distance between the solute and the box, in nm (default 1)")
	flag.StringVar(&c.Salt, "salt", "NaCl", "Salt to add: NaCl or KCl")
	flag.Float64Var(&c.Conc, "conc", 0.15, "Salt concentration (M)")
	flag.IntVar(&c.Steps, "steps", 0, "Steps of the equilibration (default 50000)")
	flag.StringVar(&c.Out, "out", "", "Name for the output files")
	flag.StringVar(&c.Dir, "dir", ".", "Directory for the output files")
	flag.StringVar(&c.GroPath, "gropath", "", "Directory with the GROMACS programs. Empty means the PATH")
	flag.StringVar(&c.GroSuffix, "grosuff", "", "Suffix of the GROMACS programs, i.e. _d")
	flag.StringVar(&c.Gmx, "gmx", "gmx", "gmx wrapper to use. Set it to an empty string to use -gropath and -grosuff")
	config := flag.String("config", "", "YAML or TOML configuration file. Flags override its values")
	flag.Parse()
	if err := cfg.Merge(flag.CommandLine, *config, &c); err != nil {
		flag.Usage()
		log.Fatal(err)
	}
	S, err := c.System()
	if err != nil {
		log.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err = S.Prepare(ctx, c.Out, c.Dir); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("System ready. Run %s to equilibrate it.\n", filepath.Join(c.Dir, "equilibrate"))
}
