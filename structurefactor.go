/*
 * structurefactor.go, part of goPowder.
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

package powder

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

//StructureFactors computes the structure factor of the cell at every given
//reciprocal lattice vector: the coherent sum over all atoms of
//form_factor(q) * exp(2*pi*i*(h*x + k*y + l*z)), with (x, y, z) the
//fractional coordinates of the atom. One complex value per RLV is returned,
//in the order of the input.
//
//Atoms are grouped by species so that each form factor is evaluated once
//over all magnitudes, and the Miller-index/position dot products for a
//species are obtained in a single matrix multiplication
//(RLVs x 3)*(3 x atoms) rather than atom by atom. A species present in the
//cell but missing from the table fails with a *MissingFormFactorError; no
//partial result is returned.
func StructureFactors(cell *UnitCell, table map[int]FormFactor, rlvs []RLV) ([]complex128, error) {
	nrlv := len(rlvs)
	magnitudes := make([]float64, nrlv)
	millerData := make([]float64, nrlv*3)
	for i, r := range rlvs {
		magnitudes[i] = r.Magnitude
		millerData[3*i] = float64(r.H)
		millerData[3*i+1] = float64(r.K)
		millerData[3*i+2] = float64(r.L)
	}
	factors := make([]complex128, nrlv)
	var miller *mat.Dense
	if nrlv > 0 {
		miller = mat.NewDense(nrlv, 3, millerData)
	}
	for _, z := range cell.Species() {
		ffac, ok := table[z]
		if !ok {
			return nil, &MissingFormFactorError{Z: z}
		}
		if miller == nil { //nothing to accumulate, but the table check above still applies
			continue
		}
		values := ffac.Evaluate(magnitudes)
		if len(values) != nrlv {
			panic("goPowder: form factor broke its contract: output length differs from input")
		}
		//gather the fractional coordinates of this species
		var posData []float64
		row := make([]float64, 3)
		for i, at := range cell.Atoms {
			if at.Z == z {
				posData = append(posData, cell.Coords.Row(row, i)...)
			}
		}
		natoms := len(posData) / 3
		positions := mat.NewDense(natoms, 3, posData)
		//dots is (RLVs x atoms); entry (n, a) is h*x_a + k*y_a + l*z_a
		var dots mat.Dense
		dots.Mul(miller, positions.T())
		for n := 0; n < nrlv; n++ {
			dr := dots.RawRowView(n)
			for a := 0; a < natoms; a++ {
				s, c := math.Sincos(2 * math.Pi * dr[a])
				factors[n] += complex(values[n]*c, values[n]*s)
			}
		}
	}
	return factors, nil
}
