/*
 * packmol.go, part of mdtools.
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

//In order to use this package you need the Packmol program (http://m3g.iqm.unicamp.br/packmol),
//which must be obtained independently.

//Package packmol builds Packmol input files and runs the program.
package packmol

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rmera/mdtools"
)

// InputName is the name of the parameter file written by Run.
const InputName = "packmol.in"

// Fixed describes a structure that is placed once, with its center of mass
// fixed at Center and no rotation.
type Fixed struct {
	File       string
	ResNumbers int
	Center     [3]float64
}

// Fill describes a structure that is copied Number times inside the box going from
// the origin to Box.
type Fill struct {
	File       string
	Number     int
	ResNumbers int
	Box        [3]float64
}

// Input is a Packmol parameter file with one fixed structure and one structure
// filling the remaining free volume of a box.
type Input struct {
	Date      time.Time
	Title     string
	Tolerance float64
	FileType  string
	Output    string
	Fixed     Fixed
	Fill      Fill
}

// String returns the input in Packmol format.
func (I *Input) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#\n# Generated by mdtools on %s\n# %s\n#\n\n", I.Date.Format(time.UnixDate), I.Title)
	b.WriteString("# All atoms from different molecules will be at least 'tolerance' A apart at the solution\n\n")
	fmt.Fprintf(&b, "tolerance %g\n\n", I.Tolerance)
	fmt.Fprintf(&b, "# The type of the files will be %s\n\n", I.FileType)
	fmt.Fprintf(&b, "filetype %s\n\n", I.FileType)
	b.WriteString("# The name of the output file\n\n")
	fmt.Fprintf(&b, "output %s\n\n", I.Output)
	b.WriteString("# The solute is fixed with its center of mass at the center of the box, and no rotation.\n\n")
	fmt.Fprintf(&b, "structure %s\n", I.Fixed.File)
	b.WriteString("  number 1\n")
	fmt.Fprintf(&b, "  resnumbers %d\n", I.Fixed.ResNumbers)
	c := I.Fixed.Center
	fmt.Fprintf(&b, "  fixed %f %f %f 0. 0. 0.\n", c[0], c[1], c[2])
	b.WriteString("  centerofmass\nend structure\n\n")
	b.WriteString("# Solvent molecules are put inside a box that contains the solute.\n")
	fmt.Fprintf(&b, "structure %s\n", I.Fill.File)
	fmt.Fprintf(&b, "  number %d\n", I.Fill.Number)
	fmt.Fprintf(&b, "  resnumbers %d\n", I.Fill.ResNumbers)
	x := I.Fill.Box
	fmt.Fprintf(&b, "  inside box 0.0 0.0 0.0 %f %f %f\n", x[0], x[1], x[2])
	b.WriteString("end structure\n\n")
	return b.String()
}

// Handle runs Packmol.
type Handle struct {
	command   string
	tolerance float64
	filetype  string
	output    string
}

// NewHandle returns a Handle with the default options and the given command.
// If command is empty, "packmol" is used, and the program is looked for in the PATH.
func NewHandle(command string) *Handle {
	H := new(Handle)
	H.SetDefaults()
	if command != "" {
		H.command = command
	}
	return H
}

// SetDefaults sets the default values: command "packmol", tolerance 2.0 A, pdb files, and
// output.pdb as the output name.
func (H *Handle) SetDefaults() {
	H.command = "packmol"
	H.tolerance = 2.0
	H.filetype = "pdb"
	H.output = "output.pdb"
}

func (H *Handle) Command() string { return H.command }

func (H *Handle) SetCommand(command string) { H.command = command }

func (H *Handle) Tolerance() float64 { return H.tolerance }

// SetTolerance sets the minimum distance between atoms of different molecules. Non-positive values are ignored.
func (H *Handle) SetTolerance(t float64) {
	if t > 0 {
		H.tolerance = t
	}
}

// Output returns the name of the file Packmol will write.
func (H *Handle) Output() string { return H.output }

// BuildInput returns an input for placing the structure in solute at the center of
// box, and nsolv copies of the structure in solvent around it. File names are relative
// to the directory where Packmol will run.
func (H *Handle) BuildInput(title, solute, solvent string, nsolv int, box []float64) (*Input, error) {
	if len(box) != 3 {
		return nil, mdtools.NewParameterError(fmt.Sprintf("the box must have 3 dimensions, got %d", len(box)), "packmol.BuildInput")
	}
	if nsolv <= 0 {
		return nil, mdtools.NewParameterError(fmt.Sprintf("the number of solvent molecules must be positive, got %d", nsolv), "packmol.BuildInput")
	}
	in := &Input{
		Date:      time.Now(),
		Title:     title,
		Tolerance: H.tolerance,
		FileType:  H.filetype,
		Output:    H.output,
		Fixed:     Fixed{File: solute, ResNumbers: 1},
		Fill:      Fill{File: solvent, Number: nsolv, ResNumbers: 0},
	}
	for i, v := range box {
		in.Fixed.Center[i] = v / 2
		in.Fill.Box[i] = v
	}
	return in, nil
}

// Run writes the input in dir and runs Packmol there, with the input file as its
// standard input. It waits for the program to finish and returns the path to the
// output file and whatever Packmol printed.
func (H *Handle) Run(ctx context.Context, dir string, in *Input) (string, string, error) {
	inname := filepath.Join(dir, InputName)
	if err := os.WriteFile(inname, []byte(in.String()), 0644); err != nil {
		return "", "", fmt.Errorf("writing Packmol input: %w", err)
	}
	stdin, err := os.Open(inname)
	if err != nil {
		return "", "", err
	}
	defer stdin.Close()
	var out bytes.Buffer
	command := exec.CommandContext(ctx, H.command)
	command.Dir = dir
	command.Stdin = stdin
	command.Stdout = &out
	command.Stderr = &out
	log.Printf("Running %s < %s in %s", H.command, InputName, dir)
	if err = command.Run(); err != nil {
		return "", out.String(), mdtools.NewExternalToolError(H.command, nil, out.String(), err, "packmol.Run")
	}
	outname := filepath.Join(dir, in.Output)
	if _, err := os.Stat(outname); err != nil {
		return "", out.String(), mdtools.NewExternalToolError(H.command, nil, out.String(), fmt.Errorf("no output file: %w", err), "packmol.Run")
	}
	return outname, out.String(), nil
}
