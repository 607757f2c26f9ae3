/*
 * mdp.go, part of mdtools.
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

import "fmt"

// IonsMdp returns the parameters for the grompp run whose only purpose is to
// give genion a tpr file.
func IonsMdp() string {
	return `; used only to generate the tpr file genion needs
integrator      = steep
emtol           = 1000.0
emstep          = 0.01
nsteps          = 50000
nstlist         = 10
cutoff-scheme   = Verlet
coulombtype     = PME
rcoulomb        = 1.0
rvdw            = 1.0
pbc             = xyz
`
}

// EquilibrationMdp returns the parameters for an NVT equilibration of nsteps 2 fs steps
// at 300 K, with position restraints on the solute.
func EquilibrationMdp(nsteps int) string {
	return fmt.Sprintf(`; NVT equilibration with position restraints
define                  = -DPOSRES
integrator              = md
nsteps                  = %d
dt                      = 0.002
nstxout-compressed      = 500
nstenergy               = 500
nstlog                  = 500
continuation            = no
constraint_algorithm    = lincs
constraints             = h-bonds
cutoff-scheme           = Verlet
nstlist                 = 10
rcoulomb                = 1.0
rvdw                    = 1.0
coulombtype             = PME
pme_order               = 4
fourierspacing          = 0.16
tcoupl                  = V-rescale
tc-grps                 = Protein Non-Protein
tau_t                   = 0.1     0.1
ref_t                   = 300     300
pcoupl                  = no
pbc                     = xyz
DispCorr                = EnerPres
gen_vel                 = yes
gen_temp                = 300
gen_seed                = -1
`, nsteps)
}
