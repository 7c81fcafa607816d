/*
 * interfaces.go, part of goPowder.
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

import "fmt"

// FormFactor is the capability of one atomic species to scatter at a given
// momentum transfer. Evaluate takes the magnitudes of a set of reciprocal
// lattice vectors and returns the scattering amplitude of the species at each
// of them, in the same order and with the same length as the input.
// Implementations must be pure: no state shared across species or across
// calls, and no mutation of the input slice. The ff subpackage provides the
// neutron (constant), tabulated X-ray (4 Gaussians plus a constant) and
// hard-shell X-ray implementations.
type FormFactor interface {
	Evaluate(magnitudes []float64) []float64
}

// Atomer is the minimal read-only view of an atom collection that the
// structure factor machinery needs.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i.
	//Should panic if out of range.
	Atom(i int) *Atom

	Len() int
}

//Errors

// Error is the interface all errors of this library implement. The Decorate
// method adds information to the error as it travels up the call stack,
// without changing its type or wrapping it. Passed an empty string, Decorate
// just returns the current decoration slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the catch-all implementation of Error, used for file reading and
// other failures that have no dedicated type.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// InvalidRangeError reports a malformed angular window (negative bound,
// max not greater than min) or an angle/wavelength combination for which
// no reciprocal lattice vector magnitude exists.
type InvalidRangeError struct {
	msg  string
	deco []string
}

func (err *InvalidRangeError) Error() string { return err.msg }

func (err *InvalidRangeError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// MissingFormFactorError reports an atomic species that is present in the
// crystal but has no entry in the supplied form factor table. Z identifies
// the offending species.
type MissingFormFactorError struct {
	Z    int
	deco []string
}

func (err *MissingFormFactorError) Error() string {
	return fmt.Sprintf("goPowder: no form factor for atomic number %d", err.Z)
}

func (err *MissingFormFactorError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// InvalidModalityError reports a diffraction modality selector other than
// ND or XRD.
type InvalidModalityError struct {
	Modality string
	deco     []string
}

func (err *InvalidModalityError) Error() string {
	return fmt.Sprintf("goPowder: invalid diffraction modality %q (want %q or %q)", err.Modality, ND, XRD)
}

func (err *InvalidModalityError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// NoVisiblePeaksError reports that no reflection survived generation and
// filtering, so there is nothing to normalize against.
type NoVisiblePeaksError struct {
	msg  string
	deco []string
}

func (err *NoVisiblePeaksError) Error() string { return err.msg }

func (err *NoVisiblePeaksError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
