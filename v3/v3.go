/*
 * v3.go, part of mdtools.
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

package v3

import (
	"fmt"

	"github.com/rmera/mdtools"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space. Within the package it is understood that a "vector"
// is a row vector, i.e. the cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

// NewMatrix generates and returns a Matrix with 3 columns from data. The data slice is not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	if l%cols != 0 {
		return nil, mdtools.NewParameterError(fmt.Sprintf("input slice length %d not divisible by %d", l, cols), "v3.NewMatrix")
	}
	if l == 0 {
		return nil, mdtools.NewParameterError("empty input slice", "v3.NewMatrix")
	}
	return &Matrix{mat.NewDense(l/cols, cols, data)}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Centroid returns the geometric center of the vectors in F, as a 1x3 Matrix.
func (F *Matrix) Centroid() *Matrix {
	n := F.NVecs()
	ret := Zeros(1)
	col := make([]float64, n)
	for j := 0; j < 3; j++ {
		mat.Col(col, j, F.Dense)
		ret.Set(0, j, floats.Sum(col)/float64(n))
	}
	return ret
}

// Extent returns, for each of the 3 axes, the difference between the largest
// and smallest coordinate in F.
func (F *Matrix) Extent() []float64 {
	n := F.NVecs()
	ret := make([]float64, 3)
	col := make([]float64, n)
	for j := range ret {
		mat.Col(col, j, F.Dense)
		ret[j] = floats.Max(col) - floats.Min(col)
	}
	return ret
}

// Flat returns the coordinates in F as a new slice of concatenated (x,y,z) triples.
func (F *Matrix) Flat() []float64 {
	n := F.NVecs()
	ret := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		ret = append(ret, F.At(i, 0), F.At(i, 1), F.At(i, 2))
	}
	return ret
}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const ErrNotXx3Matrix = PanicMsg("mdtools/v3: A Matrix should have 3 columns")
