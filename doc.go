/*
 * doc.go.new, part of mdtools.
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

/*
Package mdtools collects small helpers for setting up and post-processing
molecular dynamics simulations. None of them does any physics: the actual work
is left to external programs (Packmol, GROMACS), and mdtools only prepares their
inputs, runs them and reads their outputs.

	**mdtools Capabilities**

	Reads/writes the ATOM records of PDB files (package pdb), keeping the
	fixed-column layout, with optional atom and residue renumbering.

	Reads/writes AMBER coordinate (.crd/restart-style) files, including the
	optional box dimensions and angles (package crd).

	Resolvates a structure with Packmol using the number of waters and box
	of a reference system, and writes the result as an AMBER .crd file
	(package resolvate, program cmd/resolvate).

	Runs grompp/mdrun/energy on a GROMACS system and collects the energy
	terms from the resulting XVG file (packages gromacs and energy, program cmd/groenergy).

	Prepares a solvated, neutralized GROMACS system ready for equilibration
	(package gromacs, program cmd/groprep).

Files ending in .zst or .gz are compressed/decompressed on the fly by all readers and
writers in the library.

The root package only contains the error types shared by the other packages,
and the functions to open and create (possibly compressed) files.
*/
package mdtools
