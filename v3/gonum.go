/*
 * gonum.go, part of goPowder.
 *
 * Copyright 2024 The goPowder developers
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

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, implemented as a wrapper over a
//gonum dense matrix with 3 columns. Within the package it is understood that
//a "vector" is a row of the matrix, i.e. the (here, fractional) coordinates
//of a point in 3D space. The embedded Dense makes every gonum mat method
//available on a Matrix.
type Matrix struct {
	*mat.Dense
}

func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

func Dense2Matrix(A *mat.Dense) *Matrix {
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("goPowder/v3: input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

//NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//VecView returns a view (not a copy) of the i-th vector of the matrix.
func (F *Matrix) VecView(i int) *Matrix {
	if i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//Row fills or allocates a slice with a copy of the i-th vector and returns it.
func (F *Matrix) Row(dst []float64, i int) []float64 {
	if i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	if dst == nil {
		dst = make([]float64, 3)
	}
	if len(dst) != 3 {
		panic(ErrShape)
	}
	mat.Row(dst, i, F.Dense)
	return dst
}

//SetVec sets the i-th vector of the receiver to v.
func (F *Matrix) SetVec(i int, v []float64) {
	if i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	if len(v) != 3 {
		panic(ErrShape)
	}
	F.Dense.SetRow(i, v)
}

//Copy returns a deep copy of the matrix.
func (F *Matrix) Copy() *Matrix {
	r, _ := F.Dims()
	c := mat.NewDense(r, 3, nil)
	c.Copy(F.Dense)
	return &Matrix{c}
}

//Errors

//Error is the v3 implementation of the powder.Error interface. As v3 cannot
//import the root package, the interface is re-stated here.
type Error struct {
	message string
	deco    []string
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//PanicMsg is a message used for panics. Programmer errors (shape mismatches,
//out of range access) panic instead of returning an error, as the program is
//most likely wrong and should crash.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("goPowder/v3: a Matrix should have 3 columns")
	ErrShape           = PanicMsg("goPowder/v3: dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("goPowder/v3: index out of range")
)
