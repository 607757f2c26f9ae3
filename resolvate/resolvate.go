/*
 * resolvate.go, part of mdtools.
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

//Package resolvate places a structure back in a water box with the size and number of water
//molecules of a reference system, using Packmol, and writes the result as an AMBER crd file.
package resolvate

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/rmera/mdtools"
	"github.com/rmera/mdtools/crd"
	"github.com/rmera/mdtools/packmol"
	"github.com/rmera/mdtools/pdb"
)

// Names of the files written in the temporary directory.
const (
	WaterName  = "wat.pdb"
	SourceName = "source.pdb"
)

// Options for Resolvate.
type Options struct {
	packmol   string
	tolerance float64
	solute    byte
	solvent   byte
	seqchain  byte
	keep      bool
	tmproot   string
}

// DefaultOptions returns Options with the default values: the packmol in the PATH,
// a tolerance of 2 A, Packmol's output chains B for the solute and A for the solvent,
// blank chain for the sequences, and a temporary directory in the default place, which is
// removed at the end.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.packmol = "packmol"
	ret.tolerance = 2.0
	ret.solute = 'B'
	ret.solvent = 'A'
	ret.seqchain = pdb.BlankChain
	return ret
}

// Packmol returns the Packmol executable to be used, and sets it, if a non-empty name is given.
func (O *Options) Packmol(command ...string) string {
	ret := O.packmol
	if len(command) > 0 && command[0] != "" {
		O.packmol = command[0]
	}
	return ret
}

// Tolerance returns the minimum distance between molecules, in A, and sets it,
// if a valid value is given.
func (O *Options) Tolerance(tol ...float64) float64 {
	ret := O.tolerance
	if len(tol) > 0 && tol[0] > 0 {
		O.tolerance = tol[0]
	}
	return ret
}

// SoluteChain returns the chain of the solute in Packmol's output, and sets it, if given.
func (O *Options) SoluteChain(chain ...byte) byte {
	ret := O.solute
	if len(chain) > 0 {
		O.solute = chain[0]
	}
	return ret
}

// SolventChain returns the chain of the solvent in Packmol's output, and sets it, if given.
func (O *Options) SolventChain(chain ...byte) byte {
	ret := O.solvent
	if len(chain) > 0 {
		O.solvent = chain[0]
	}
	return ret
}

// SequenceChain returns the chain used to compare the sequences of the reference and
// source structures, and sets it, if given.
func (O *Options) SequenceChain(chain ...byte) byte {
	ret := O.seqchain
	if len(chain) > 0 {
		O.seqchain = chain[0]
	}
	return ret
}

// KeepTemp returns whether the temporary directory is kept at the end, and sets it, if given.
func (O *Options) KeepTemp(keep ...bool) bool {
	ret := O.keep
	if len(keep) > 0 {
		O.keep = keep[0]
	}
	return ret
}

// TempRoot returns the directory where the temporary directory is created (empty
// means the system default) and sets it, if given.
func (O *Options) TempRoot(root ...string) string {
	ret := O.tmproot
	if len(root) > 0 {
		O.tmproot = root[0]
	}
	return ret
}

// Result summarizes a resolvation.
type Result struct {
	Title         string
	Waters        int //water molecules asked to Packmol
	SoluteAtoms   int
	SolventAtoms  int
	TempDir       string //only meaningful if the temporary directory was kept.
	PackmolOutput string
}

// Resolvate puts the structure in the PDB file source in a water box. The number of water
// molecules is the difference between the number of residues of the reference PDB refPDB
// and that of source, and the box is the one in the reference crd file refCrd, which must
// have one. The first residue of refPDB after the solute is used as the water molecule.
// The solvated system is written to the AMBER crd file output, solute first, with the box
// dimensions and angles of refCrd.
func Resolvate(ctx context.Context, refPDB, refCrd, source, output string, options ...*Options) (*Result, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	refatoms, err := pdb.ReadFile(refPDB)
	if err != nil {
		return nil, mdtools.ErrDecorate(err, "Resolvate")
	}
	refseq := pdb.PresentSequence(refatoms, o.SequenceChain())
	srcseq, err := pdb.PresentSequenceFile(source, o.SequenceChain())
	if err != nil {
		return nil, mdtools.ErrDecorate(err, "Resolvate")
	}
	nwat := len(refseq) - len(srcseq)
	if nwat <= 0 {
		return nil, mdtools.NewParameterError(fmt.Sprintf("the reference has %d residues and the source %d: no water molecules to add", len(refseq), len(srcseq)), "Resolvate")
	}
	log.Printf("Will add %d water molecules.", nwat)

	ref, err := crd.ReadFile(refCrd)
	if err != nil {
		return nil, mdtools.ErrDecorate(err, "Resolvate")
	}
	if ref.Box == nil {
		return nil, mdtools.NewFormatError(refCrd, 0, "no box dimensions in the reference", nil, "Resolvate")
	}
	wat := pdb.SelectResSeq(refatoms, len(srcseq)+1)
	if len(wat) == 0 {
		return nil, mdtools.NewFormatError(refPDB, 0, fmt.Sprintf("no residue %d to use as water molecule", len(srcseq)+1), nil, "Resolvate")
	}

	tmpdir, err := os.MkdirTemp(o.TempRoot(), "resolvate")
	if err != nil {
		return nil, err
	}
	if !o.KeepTemp() {
		defer os.RemoveAll(tmpdir)
	}
	log.Printf("tmpdir is %s", tmpdir)
	if err = pdb.WriteFile(filepath.Join(tmpdir, WaterName), wat, true); err != nil {
		return nil, err
	}
	if err = copyFile(source, filepath.Join(tmpdir, SourceName)); err != nil {
		return nil, err
	}

	box := ref.Box
	title := fmt.Sprintf("Resolvation of %s in %f A x %f A x %f A box by %d water molecules", source, box[0], box[1], box[2], nwat)
	H := packmol.NewHandle(o.Packmol())
	H.SetTolerance(o.Tolerance())
	in, err := H.BuildInput(title, SourceName, WaterName, nwat, box)
	if err != nil {
		return nil, mdtools.ErrDecorate(err, "Resolvate")
	}
	log.Println("Running packmol...")
	outname, out, err := H.Run(ctx, tmpdir, in)
	log.Print(out)
	if err != nil {
		return nil, mdtools.ErrDecorate(err, "Resolvate")
	}
	atoms, err := pdb.ReadFile(outname)
	if err != nil {
		return nil, mdtools.ErrDecorate(err, "Resolvate")
	}
	solute := pdb.SelectChain(atoms, o.SoluteChain())
	solvent := pdb.SelectChain(atoms, o.SolventChain())
	if len(solvent) != nwat*len(wat) {
		log.Printf("Warning: expected %d solvent atoms, Packmol placed %d", nwat*len(wat), len(solvent))
	}
	checkExtent(solute, box)
	if len(solute) > 0 {
		if M, err := pdb.Coords(solute); err == nil {
			log.Printf("Solute centroid at %v, box center at %v", M.Centroid().Flat(), ref.BoxCenter())
		}
	}

	coords := append(pdb.Flatten(solute), pdb.Flatten(solvent)...)
	C, err := crd.New(title, coords, box, ref.Angles)
	if err != nil {
		return nil, mdtools.ErrDecorate(err, "Resolvate")
	}
	if err = crd.WriteFile(output, C); err != nil {
		return nil, mdtools.ErrDecorate(err, "Resolvate")
	}
	ret := &Result{
		Title:         title,
		Waters:        nwat,
		SoluteAtoms:   len(solute),
		SolventAtoms:  len(solvent),
		PackmolOutput: out,
	}
	if o.KeepTemp() {
		ret.TempDir = tmpdir
	}
	return ret, nil
}

// checkExtent logs a warning if the solute doesn't fit in the box.
func checkExtent(solute []*pdb.Atom, box []float64) {
	if len(solute) == 0 {
		log.Printf("Warning: no solute atoms in the Packmol output")
		return
	}
	M, err := pdb.Coords(solute)
	if err != nil {
		return
	}
	for i, v := range M.Extent() {
		if v > box[i] {
			log.Printf("Warning: the solute extends %.3f A along axis %d, but the box is only %.3f A", v, i, box[i])
		}
	}
}

// copyFile copies src to dst, decompressing src if needed.
func copyFile(src, dst string) error {
	in, err := mdtools.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
