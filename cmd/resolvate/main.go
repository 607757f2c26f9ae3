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

//resolvate puts a PDB structure in a water box with the dimensions of a reference
//AMBER crd file, and as many water molecules as the reference PDB has residues beyond
//those of the structure. The result is written as an AMBER crd file.
//
//usage: resolvate -refpdb REFERENCE.pdb -refcrd REFERENCE.crd -source SOURCE.pdb -output OUTPUT.crd
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/rmera/mdtools/cfg"
	"github.com/rmera/mdtools/resolvate"
)

func main() {
	var c cfg.Resolvate
	flag.StringVar(&c.RefPDB, "refpdb", "", "Reference PDB file (to determine number of waters)")
	flag.StringVar(&c.RefCrd, "refcrd", "", "Reference AMBER .crd file (to determine box dimensions)")
	flag.StringVar(&c.Source, "source", "", "PDB file to resolvate")
	flag.StringVar(&c.Output, "output", "", "Name of solvated AMBER .crd file to generate")
	flag.StringVar(&c.Packmol, "packmol", "packmol", "Packmol executable")
	flag.Float64Var(&c.Tolerance, "tolerance", 2.0, "Minimum distance between molecules, in A")
	flag.StringVar(&c.SoluteChain, "solutechain", "B", "Chain of the solute in the Packmol output")
	flag.StringVar(&c.SolventChain, "solventchain", "A", "Chain of the water in the Packmol output")
	flag.StringVar(&c.SequenceChain, "seqchain", " ", "Chain used to compare the sequences of the reference and source")
	flag.BoolVar(&c.KeepTemp, "keep", false, "Keep the temporary directory")
	flag.StringVar(&c.TempRoot, "tmproot", "", "Where to create the temporary directory")
	config := flag.String("config", "", "YAML or TOML configuration file. Flags override its values")
	flag.Parse()
	if err := cfg.Merge(flag.CommandLine, *config, &c); err != nil {
		flag.Usage()
		log.Fatal(err)
	}
	o, err := c.Options()
	if err != nil {
		log.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	R, err := resolvate.Resolvate(ctx, c.RefPDB, c.RefCrd, c.Source, c.Output, o)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(R.Title)
	fmt.Printf("%d solute atoms and %d solvent atoms written to %s\n", R.SoluteAtoms, R.SolventAtoms, c.Output)
	if R.TempDir != "" {
		fmt.Println("Temporary files kept in", R.TempDir)
	}
}
