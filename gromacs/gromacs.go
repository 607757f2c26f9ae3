/*
 * gromacs.go, part of mdtools.
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

//In order to use this package you need GROMACS (http://www.gromacs.org), which
//must be obtained independently.

//Package gromacs runs GROMACS programs to prepare systems for simulation and to
//obtain energies from them. It doesn't parse or write topologies: GROMACS does all the work.
package gromacs

import (
	"bytes"
	"context"
	"io"
	"log"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rmera/mdtools"
)

// oldNames are the names that some tools had before the gmx wrapper was introduced.
var oldNames = map[string]string{
	"energy":  "g_energy",
	"solvate": "genbox",
}

// Handle knows how to call the GROMACS programs. Either a path and a suffix
// (i.e. "_d" for double precision builds) for the old, separate binaries, or
// the gmx wrapper, can be used.
type Handle struct {
	path   string
	suffix string
	gmx    string
}

// NewHandle returns a handle for the GROMACS binaries in the directory path (which can be empty,
// in which case the binaries are looked for in the PATH), with the given suffix.
func NewHandle(path, suffix string) *Handle {
	return &Handle{path: path, suffix: suffix}
}

// NewGmxHandle returns a handle that uses the gmx wrapper given, i.e. "gmx" or "gmx_mpi".
func NewGmxHandle(gmx string) *Handle {
	return &Handle{gmx: gmx}
}

// SetGmx sets the gmx wrapper to be used. If gmx is empty, the separate binaries are used.
func (H *Handle) SetGmx(gmx string) { H.gmx = gmx }

// Command returns the program and the first arguments needed to run the GROMACS tool name.
func (H *Handle) Command(name string) (string, []string) {
	if H.gmx != "" {
		return H.gmx, []string{name}
	}
	if old, ok := oldNames[name]; ok {
		name = old
	}
	bin := name + H.suffix
	if H.path != "" {
		bin = filepath.Join(H.path, bin)
	}
	return bin, nil
}

// run runs the GROMACS tool name with the given arguments in dir, and waits for it to finish.
// stdin can be nil. If stdout or stderr are nil, the output is captured and returned in the
// error in case of failure.
func (H *Handle) run(ctx context.Context, dir, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	bin, first := H.Command(name)
	args = append(first, args...)
	var captured bytes.Buffer
	if stdout == nil {
		stdout = &captured
	}
	if stderr == nil {
		stderr = &captured
	}
	command := exec.CommandContext(ctx, bin, args...)
	command.Dir = dir
	command.Stdin = stdin
	command.Stdout = stdout
	command.Stderr = stderr
	log.Printf("Running GROMACS with command: %s %s", bin, strings.Join(args, " "))
	if err := command.Run(); err != nil {
		return mdtools.NewExternalToolError(bin, args, captured.String(), err, "gromacs.run")
	}
	return nil
}

// abs returns the absolute versions of the paths given.
func abs(paths ...*string) error {
	for _, p := range paths {
		a, err := filepath.Abs(*p)
		if err != nil {
			return err
		}
		*p = a
	}
	return nil
}
