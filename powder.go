/*
 * powder.go, part of goPowder.
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
	"fmt"
	"sort"

	"github.com/gopowder/powder/v3"
)

// Diffraction modalities accepted by the MillerPeaks and DiffractionPattern
// entry points.
const (
	ND  = "ND"  //neutron diffraction
	XRD = "XRD" //X-ray diffraction
)

// Defaults for the peak extraction and pattern synthesis entry points.
// Angles are deflection angles (2theta) in degrees, the peak width in
// degrees too.
const (
	DefaultMinAngle  = 10.0
	DefaultMaxAngle  = 170.0
	DefaultCutoff    = 1e-6
	DefaultPeakWidth = 0.1
)

//Atom contains the species information for one atom of a crystal basis.
//Coordinates are kept separately, in a v3.Matrix with one row per atom.
type Atom struct {
	Z      int    //atomic number, the species identifier
	Symbol string //chemical symbol, informational only
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("goPowder: attempted to copy a nil atom")
	}
	return &Atom{Z: A.Z, Symbol: A.Symbol}
}

//UnitCell represents a crystal: an atomic basis with fractional coordinates
//plus the three lattice constants of an orthorhombic (or cubic/tetragonal)
//cell, in the same length unit as the radiation wavelength, conventionally
//angstroms. A supercell built by the alloy subpackage is a UnitCell like any
//other; the diffraction machinery does not care where the atom list came
//from.
type UnitCell struct {
	Material string
	Atoms    []*Atom
	Coords   *v3.Matrix //fractional coordinates, one row per atom
	Lattice  [3]float64 //a, b, c
}

//NewUnitCell builds a UnitCell after checking that the basis is sane: atoms
//and coordinates must be non-nil and of equal length, and the lattice
//constants positive.
func NewUnitCell(material string, atoms []*Atom, coords *v3.Matrix, lattice [3]float64) (*UnitCell, error) {
	if atoms == nil || coords == nil {
		return nil, &CError{"goPowder: nil atoms or coordinates given to NewUnitCell", []string{"NewUnitCell"}}
	}
	if len(atoms) != coords.NVecs() {
		return nil, &CError{fmt.Sprintf("goPowder: %d atoms but %d coordinate rows", len(atoms), coords.NVecs()), []string{"NewUnitCell"}}
	}
	for _, v := range lattice {
		if v <= 0 {
			return nil, &CError{fmt.Sprintf("goPowder: non-positive lattice constant %v", v), []string{"NewUnitCell"}}
		}
	}
	return &UnitCell{Material: material, Atoms: atoms, Coords: coords, Lattice: lattice}, nil
}

//Len returns the number of atoms in the cell.
func (U *UnitCell) Len() int {
	return len(U.Atoms)
}

//Atom returns the i-th atom of the cell. It panics if i is out of range.
func (U *UnitCell) Atom(i int) *Atom {
	if i >= len(U.Atoms) {
		panic("goPowder: UnitCell: Requested atom out of range")
	}
	return U.Atoms[i]
}

//Copy returns a deep copy of the cell.
func (U *UnitCell) Copy() *UnitCell {
	atoms := make([]*Atom, len(U.Atoms))
	for i, at := range U.Atoms {
		atoms[i] = at.Copy()
	}
	return &UnitCell{Material: U.Material, Atoms: atoms, Coords: U.Coords.Copy(), Lattice: U.Lattice}
}

//Species returns the sorted list of distinct atomic numbers present in the
//cell. The order is only cosmetic: structure factor contributions are
//additive over species.
func (U *UnitCell) Species() []int {
	seen := make(map[int]bool)
	var zs []int
	for _, at := range U.Atoms {
		if !seen[at.Z] {
			seen[at.Z] = true
			zs = append(zs, at.Z)
		}
	}
	sort.Ints(zs)
	return zs
}
