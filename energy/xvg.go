/*
 * xvg.go, part of mdtools.
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

package energy

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/rmera/mdtools"
)

// legend matches the lines of an XVG file that name a data series, i.e.:
// @ s0 legend "Bond"
var legend = regexp.MustCompile(`^@ s\d+\s+legend\s+"(.*)"`)

// XVG contains the data series of an XVG file, as written by the GROMACS energy tool.
type XVG struct {
	Names []string    //one per series, not including the first column (time).
	Time  []float64   //the first column.
	Data  [][]float64 //Data[i] are the values of all the series in the ith row.
}

// ReadXVG reads an XVG file from r. fname is only used for errors and can be empty.
func ReadXVG(r io.Reader, fname string) (*XVG, error) {
	X := new(XVG)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 4*1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "&") {
			continue
		}
		if strings.HasPrefix(line, "@") {
			if m := legend.FindStringSubmatch(line); m != nil {
				X.Names = append(X.Names, m[1])
			}
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, mdtools.NewFormatError(fname, lineno, fmt.Sprintf("can't read value %q", f), err, "energy.ReadXVG")
			}
			row[i] = v
		}
		if len(row)-1 != len(X.Names) {
			return nil, mdtools.NewFormatError(fname, lineno, fmt.Sprintf("%d series named but %d values found", len(X.Names), len(row)-1), nil, "energy.ReadXVG")
		}
		X.Time = append(X.Time, row[0])
		X.Data = append(X.Data, row[1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	if len(X.Data) == 0 {
		return nil, mdtools.NewFormatError(fname, 0, "no data in XVG file", nil, "energy.ReadXVG")
	}
	return X, nil
}

// ReadXVGFile reads the XVG file fname.
func ReadXVGFile(fname string) (*XVG, error) {
	f, err := mdtools.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	X, err := ReadXVG(f, fname)
	return X, mdtools.ErrDecorate(err, "ReadXVGFile")
}

// Last returns the values in the last row of the file, i.e. the most recent ones.
func (X *XVG) Last() []float64 {
	return X.Data[len(X.Data)-1]
}

// Series returns the values of the series with the given name for all the rows, or
// nil if there is no such series.
func (X *XVG) Series(name string) []float64 {
	col := -1
	for i, v := range X.Names {
		if v == name {
			col = i
			break
		}
	}
	if col < 0 {
		return nil
	}
	ret := make([]float64, len(X.Data))
	for i, row := range X.Data {
		ret[i] = row[col]
	}
	return ret
}
