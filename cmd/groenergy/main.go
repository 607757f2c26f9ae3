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

//groenergy obtains the energy terms of a system with GROMACS (grompp, a short mdrun and
//energy) and prints them, grouped into dispersive, electrostatic and dihedral terms.
//
//usage: groenergy -top topol.top -gro conf.gro -mdp energy.mdp [-gmx gmx] [-plot energies.png]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/rmera/mdtools/cfg"
	"github.com/rmera/mdtools/energy"
)

func main() {
	var c cfg.Energy
	flag.StringVar(&c.Top, "top", "", "GROMACS topology")
	flag.StringVar(&c.Gro, "gro", "", "Coordinates")
	flag.StringVar(&c.Mdp, "mdp", "", "Parameters for the (single step) mdrun")
	flag.StringVar(&c.GroPath, "gropath", "", "Directory with the GROMACS programs. Empty means the PATH")
	flag.StringVar(&c.GroSuffix, "grosuff", "", "Suffix of the GROMACS programs, i.e. _d")
	flag.StringVar(&c.Gmx, "gmx", "", "gmx wrapper to use, i.e. gmx or gmx_mpi. Overrides -gropath and -grosuff")
	flag.BoolVar(&c.GromppCheck, "check", false, "Only check that grompp accepts the input")
	flag.StringVar(&c.Plot, "plot", "", "Save a plot of the energies with this name")
	flag.IntVar(&c.Skip, "skip", 0, "Frames skipped at the beginning for the statistics")
	config := flag.String("config", "", "YAML or TOML configuration file. Flags override its values")
	flag.Parse()
	if err := cfg.Merge(flag.CommandLine, *config, &c); err != nil {
		flag.Usage()
		log.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	T, xvg, err := c.Handle().Energies(ctx, c.Top, c.Gro, c.Mdp, c.GromppCheck)
	if err != nil {
		log.Fatal(err)
	}
	if c.GromppCheck {
		fmt.Println("grompp accepted", c.Top)
		return
	}
	fmt.Print(T)
	X, err := energy.ReadXVGFile(xvg)
	if err != nil {
		log.Fatal(err)
	}
	if len(X.Data) > 1 {
		stats, err := energy.Summary(X, c.Skip)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("\nMean and standard deviation:")
		for _, s := range stats {
			fmt.Printf("%-20s %15.4f %12.4f\n", s.Name, s.Mean, s.StdDev)
		}
	}
	if c.Plot != "" {
		if err := energy.Plot(X, energy.EnergyNames(X.Names), "Energies for "+c.Top, c.Plot); err != nil {
			log.Fatal(err)
		}
	}
}
