/*
 * errors.go, part of mdtools.
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

package mdtools

import (
	"fmt"
	"strings"
)

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	//Decorate adds the name of a function in the calling stack (plus, optionally, extra info in the
	//format "FunctionName: Extra info") and returns the current decoration. An empty string
	//doesn't add anything, it just returns the decoration.
	Decorate(string) []string
}

// FormatError is returned when a PDB, crd or XVG file is malformed, or a mandatory field is missing.
type FormatError struct {
	File string
	Line int //1-based. 0 means the line is unknown or irrelevant.
	Msg  string
	Err  error
	deco []string
}

// NewFormatError returns a FormatError for the given file and line, decorated with caller.
func NewFormatError(file string, line int, msg string, err error, caller string) *FormatError {
	return &FormatError{File: file, Line: line, Msg: msg, Err: err, deco: []string{caller}}
}

func (E *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("format error")
	if E.File != "" {
		fmt.Fprintf(&b, " in %s", E.File)
	}
	if E.Line > 0 {
		fmt.Fprintf(&b, ", line %d", E.Line)
	}
	fmt.Fprintf(&b, ": %s", E.Msg)
	if E.Err != nil {
		fmt.Fprintf(&b, ": %v", E.Err)
	}
	return b.String()
}

func (E *FormatError) Unwrap() error { return E.Err }

func (E *FormatError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// ParameterError is returned when a function gets values it can't work with, for instance
// a coordinate slice whose length is not a multiple of 3.
type ParameterError struct {
	Msg  string
	deco []string
}

// NewParameterError returns a ParameterError with the given message, decorated with caller.
func NewParameterError(msg string, caller string) *ParameterError {
	return &ParameterError{Msg: msg, deco: []string{caller}}
}

func (E *ParameterError) Error() string { return "parameter error: " + E.Msg }

func (E *ParameterError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// ExternalToolError is returned when an external program (packmol, grompp, mdrun...) can't be
// started or exits with a non-zero status.
type ExternalToolError struct {
	Command string
	Args    []string
	Output  string //whatever the program printed, if it was captured.
	Err     error
	deco    []string
}

// NewExternalToolError returns an ExternalToolError for the command and arguments given, decorated with caller.
func NewExternalToolError(command string, args []string, output string, err error, caller string) *ExternalToolError {
	return &ExternalToolError{Command: command, Args: args, Output: output, Err: err, deco: []string{caller}}
}

func (E *ExternalToolError) Error() string {
	cmd := strings.TrimSpace(E.Command + " " + strings.Join(E.Args, " "))
	msg := fmt.Sprintf("external command %q failed", cmd)
	if E.Err != nil {
		msg += ": " + E.Err.Error()
	}
	return msg
}

func (E *ExternalToolError) Unwrap() error { return E.Err }

func (E *ExternalToolError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// ErrDecorate decorates err with the caller's name if err implements Error,
// and returns it. Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}
