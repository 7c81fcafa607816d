/*
 * alloy.go, part of goPowder.
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

//Package alloy builds supercells and substitutionally disordered solid
//solutions. Both are returned as ordinary powder.UnitCell values: the
//diffraction machinery is agnostic to whether an atom list came from an
//ordered basis or from a disorder-substituted supercell.
package alloy

import (
	"fmt"
	"math"
	"math/rand"

	powder "github.com/gopowder/powder"
	"github.com/gopowder/powder/v3"
)

//SuperCell tiles the unit cell nx x ny x nz times and returns the result as
//a new cell: the basis is replicated in every copy of the cell, fractional
//coordinates are rescaled to the supercell, and the lattice constants are
//multiplied by the respective tiling factors.
func SuperCell(cell *powder.UnitCell, nx, ny, nz int) (*powder.UnitCell, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("goPowder/alloy: supercell dimensions must be at least 1, got (%d, %d, %d)", nx, ny, nz)
	}
	n := nx * ny * nz
	atoms := make([]*powder.Atom, 0, n*cell.Len())
	data := make([]float64, 0, 3*n*cell.Len())
	row := make([]float64, 3)
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				for i := 0; i < cell.Len(); i++ {
					atoms = append(atoms, cell.Atom(i).Copy())
					cell.Coords.Row(row, i)
					data = append(data,
						(row[0]+float64(ix))/float64(nx),
						(row[1]+float64(iy))/float64(ny),
						(row[2]+float64(iz))/float64(nz))
				}
			}
		}
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, err
	}
	lattice := [3]float64{
		cell.Lattice[0] * float64(nx),
		cell.Lattice[1] * float64(ny),
		cell.Lattice[2] * float64(nz),
	}
	return powder.NewUnitCell(cell.Material, atoms, coords, lattice)
}

//Disorder models a solid solution: it returns a copy of the supercell in
//which a random fraction of the atoms of species targetZ, given by
//concentration in [0, 1], is replaced by the substitute atom. The number of
//substituted atoms is round(concentration * count(targetZ)), drawn without
//replacement. The lattice constants are interpolated linearly (Vegard's
//law) between those of the pure cell (latticePure, the target end member)
//and those of latticeSubstituted (the fully substituted end member), both
//given per unit cell; the supercell tiling factors are preserved.
//
//src seeds the substitution draw; pass a fixed source for reproducible
//cells, or nil for an arbitrary one.
func Disorder(super *powder.UnitCell, targetZ int, substitute *powder.Atom, concentration float64, latticePure, latticeSubstituted [3]float64, name string, src rand.Source) (*powder.UnitCell, error) {
	if concentration < 0 || concentration > 1 {
		return nil, fmt.Errorf("goPowder/alloy: concentration %v outside [0, 1]", concentration)
	}
	if substitute == nil {
		return nil, fmt.Errorf("goPowder/alloy: nil substitute atom")
	}
	var targets []int
	for i := 0; i < super.Len(); i++ {
		if super.Atom(i).Z == targetZ {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("goPowder/alloy: no atom of species %d in %s", targetZ, super.Material)
	}
	if src == nil {
		src = rand.NewSource(rand.Int63())
	}
	rnd := rand.New(src)
	nsub := int(math.Round(concentration * float64(len(targets))))
	cell := super.Copy()
	cell.Material = name
	for _, k := range rnd.Perm(len(targets))[:nsub] {
		cell.Atoms[targets[k]] = substitute.Copy()
	}
	for i := range cell.Lattice {
		if latticePure[i] <= 0 {
			return nil, fmt.Errorf("goPowder/alloy: non-positive pure lattice constant %v", latticePure[i])
		}
		tiling := super.Lattice[i] / latticePure[i]
		vegard := latticePure[i] + concentration*(latticeSubstituted[i]-latticePure[i])
		cell.Lattice[i] = vegard * tiling
	}
	return cell, nil
}
