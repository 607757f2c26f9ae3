/*
 * cfg.go, part of mdtools.
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

//Package cfg reads the YAML or TOML configuration files of the mdtools programs.
//Every value in a configuration file can also be given, or overriden, in the command line.
package cfg

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/rmera/mdtools"
	"github.com/rmera/mdtools/gromacs"
	"github.com/rmera/mdtools/resolvate"
)

// Checker is implemented by the configuration structures.
type Checker interface {
	Check() error
}

// Load decodes the configuration file path into v, and checks it.
// Files ending in .toml are read as TOML, everything else, as YAML.
func Load(path string, v Checker) error {
	if err := Decode(path, v); err != nil {
		return err
	}
	if err := v.Check(); err != nil {
		return fmt.Errorf("Check: %w", err)
	}
	return nil
}

// Decode decodes the configuration file path into v, without checking it.
func Decode(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	r := bufio.NewReader(f)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.NewDecoder(r).Decode(v)
	default:
		err = yaml.NewDecoder(r).Decode(v)
	}
	if err != nil {
		return mdtools.NewFormatError(path, 0, "can't decode configuration", err, "cfg.Decode")
	}
	return nil
}

// Merge decodes the configuration file path, if not empty, into v, whose fields must be
// bound to the flags in fs, which must be already parsed. The values of the flags set in
// the command line take precedence over those in the file. v is checked at the end.
func Merge(fs *flag.FlagSet, path string, v Checker) error {
	if path != "" {
		set := make(map[string]string)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })
		if err := Decode(path, v); err != nil {
			return err
		}
		for name, val := range set {
			if err := fs.Set(name, val); err != nil {
				return err
			}
		}
	}
	return v.Check()
}

func missing(field, caller string) error {
	return mdtools.NewParameterError(fmt.Sprintf("%s must be given", field), caller)
}

// chain returns the chain identifier in s, which must have at most one character.
func chain(s, field string) (byte, bool, error) {
	switch len(s) {
	case 0:
		return 0, false, nil
	case 1:
		return s[0], true, nil
	}
	return 0, false, mdtools.NewParameterError(fmt.Sprintf("%s must be a single character, got %q", field, s), "cfg.chain")
}

// Resolvate contains the parameters of the resolvate program.
type Resolvate struct {
	RefPDB    string  `yaml:"refpdb" toml:"refpdb"`
	RefCrd    string  `yaml:"refcrd" toml:"refcrd"`
	Source    string  `yaml:"source" toml:"source"`
	Output    string  `yaml:"output" toml:"output"`
	Packmol   string  `yaml:"packmol" toml:"packmol"`
	Tolerance float64 `yaml:"tolerance" toml:"tolerance"`

	// Chains are given as one-character strings. Empty means the default.
	SoluteChain   string `yaml:"solutechain" toml:"solutechain"`
	SolventChain  string `yaml:"solventchain" toml:"solventchain"`
	SequenceChain string `yaml:"seqchain" toml:"seqchain"`

	KeepTemp bool   `yaml:"keeptemp" toml:"keeptemp"`
	TempRoot string `yaml:"tmproot" toml:"tmproot"`
}

// Check returns a ParameterError if a file name is missing or a chain is not a single character.
func (R *Resolvate) Check() error {
	for _, v := range [][2]string{{R.RefPDB, "refpdb"}, {R.RefCrd, "refcrd"}, {R.Source, "source"}, {R.Output, "output"}} {
		if v[0] == "" {
			return missing(v[1], "Resolvate.Check")
		}
	}
	_, err := R.Options()
	return err
}

// Options returns resolvate.Options with the values in R. Unset values keep their defaults.
func (R *Resolvate) Options() (*resolvate.Options, error) {
	o := resolvate.DefaultOptions()
	o.Packmol(R.Packmol)
	o.Tolerance(R.Tolerance)
	o.KeepTemp(R.KeepTemp)
	o.TempRoot(R.TempRoot)
	chains := []struct {
		val, name string
		set       func(...byte) byte
	}{
		{R.SoluteChain, "solutechain", o.SoluteChain},
		{R.SolventChain, "solventchain", o.SolventChain},
		{R.SequenceChain, "seqchain", o.SequenceChain},
	}
	for _, c := range chains {
		b, ok, err := chain(c.val, c.name)
		if err != nil {
			return nil, err
		}
		if ok {
			c.set(b)
		}
	}
	return o, nil
}

// handle returns a gromacs.Handle for the programs in path with suffix, or
// for the gmx wrapper, if given.
func handle(path, suffix, gmx string) *gromacs.Handle {
	if gmx != "" {
		return gromacs.NewGmxHandle(gmx)
	}
	return gromacs.NewHandle(path, suffix)
}

// Energy contains the parameters of the groenergy program.
type Energy struct {
	GroPath     string `yaml:"gropath" toml:"gropath"`
	GroSuffix   string `yaml:"grosuffix" toml:"grosuffix"`
	Gmx         string `yaml:"gmx" toml:"gmx"` //if set, GroPath and GroSuffix are ignored.
	Top         string `yaml:"top" toml:"top"`
	Gro         string `yaml:"gro" toml:"gro"`
	Mdp         string `yaml:"mdp" toml:"mdp"`
	GromppCheck bool   `yaml:"check" toml:"check"`
	Plot        string `yaml:"plot" toml:"plot"` //if not empty, a plot of the energies is saved with this name.
	Skip        int    `yaml:"skip" toml:"skip"` //frames skipped at the beginning for the statistics.
}

// Check returns a ParameterError if the topology, coordinates or parameters are missing.
func (E *Energy) Check() error {
	for _, v := range [][2]string{{E.Top, "top"}, {E.Gro, "gro"}, {E.Mdp, "mdp"}} {
		if v[0] == "" {
			return missing(v[1], "Energy.Check")
		}
	}
	if E.Skip < 0 {
		return mdtools.NewParameterError("skip can't be negative", "Energy.Check")
	}
	return nil
}

// Handle returns the gromacs.Handle to be used.
func (E *Energy) Handle() *gromacs.Handle { return handle(E.GroPath, E.GroSuffix, E.Gmx) }

// Prepare contains the parameters of the groprep program.
type Prepare struct {
	GroPath    string  `yaml:"gropath" toml:"gropath"`
	GroSuffix  string  `yaml:"grosuffix" toml:"grosuffix"`
	Gmx        string  `yaml:"gmx" toml:"gmx"`
	PDB        string  `yaml:"pdb" toml:"pdb"`
	ForceField string  `yaml:"ff" toml:"ff"`
	Water      string  `yaml:"water" toml:"water"`
	WaterBox   string  `yaml:"waterbox" toml:"waterbox"`
	BoxType    string  `yaml:"boxtype" toml:"boxtype"`
	Margin     float64 `yaml:"margin" toml:"margin"`
	Salt       string  `yaml:"salt" toml:"salt"`
	Conc       float64 `yaml:"conc" toml:"conc"`
	Steps      int     `yaml:"steps" toml:"steps"`
	Out        string  `yaml:"out" toml:"out"`
	Dir        string  `yaml:"dir" toml:"dir"`
}

// Check returns a ParameterError if the structure, force field or output name are missing,
// or the salt is not supported.
func (P *Prepare) Check() error {
	for _, v := range [][2]string{{P.PDB, "pdb"}, {P.ForceField, "ff"}, {P.Out, "out"}} {
		if v[0] == "" {
			return missing(v[1], "Prepare.Check")
		}
	}
	_, err := P.System()
	return err
}

// Handle returns the gromacs.Handle to be used.
func (P *Prepare) Handle() *gromacs.Handle { return handle(P.GroPath, P.GroSuffix, P.Gmx) }

// System returns the gromacs.System described by P.
func (P *Prepare) System() (*gromacs.System, error) {
	S := gromacs.NewSystem(P.PDB, P.ForceField, P.Handle())
	if P.Salt != "" || P.Conc != 0 {
		salt := P.Salt
		if salt == "" {
			salt = "NaCl"
		}
		if err := S.SetSaltConditions(salt, P.Conc); err != nil {
			return nil, err
		}
	}
	S.SetWater(P.Water, P.WaterBox)
	S.SetBox(P.BoxType, P.Margin)
	S.SetSteps(P.Steps)
	return S, nil
}
