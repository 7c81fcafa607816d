/*
 * reciprocal.go, part of goPowder.
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

//reciprocal.go deals with reciprocal space: enumeration of reciprocal
//lattice vectors for an orthorhombic lattice, and the Bragg-law conversions
//between RLV magnitude and deflection angle. Deflection angles are the
//conventional 2theta, in degrees.

package powder

import (
	"fmt"
	"math"
)

//RLV is one reciprocal lattice vector: the Miller index triple and the
//magnitude of the vector, in inverse length units (inverse angstroms if the
//lattice constants are in angstroms).
type RLV struct {
	H, K, L   int
	Magnitude float64
}

//Miller returns the Miller indices as a triple.
func (r *RLV) Miller() [3]int {
	return [3]int{r.H, r.K, r.L}
}

//ReciprocalVectors enumerates every reciprocal lattice vector of the lattice
//given by the three lattice constants whose magnitude lies in
//[minMag, maxMag], bounds included. The zero vector (forward scattering) is
//never included. For an orthorhombic lattice the magnitude of the vector
//with Miller indices (h, k, l) is 2*pi*sqrt((h/a)^2 + (k/b)^2 + (l/c)^2).
func ReciprocalVectors(minMag, maxMag float64, lattice [3]float64) ([]RLV, error) {
	if minMag < 0 || maxMag <= minMag {
		return nil, &InvalidRangeError{fmt.Sprintf("goPowder: invalid magnitude range [%v, %v]", minMag, maxMag), []string{"ReciprocalVectors"}}
	}
	for _, v := range lattice {
		if v <= 0 {
			return nil, &InvalidRangeError{fmt.Sprintf("goPowder: non-positive lattice constant %v", v), []string{"ReciprocalVectors"}}
		}
	}
	//Miller index bounds: |h| <= maxMag*a/2pi, etc.
	hmax := int(maxMag * lattice[0] / (2 * math.Pi))
	kmax := int(maxMag * lattice[1] / (2 * math.Pi))
	lmax := int(maxMag * lattice[2] / (2 * math.Pi))
	var rlvs []RLV
	for h := -hmax; h <= hmax; h++ {
		for k := -kmax; k <= kmax; k++ {
			for l := -lmax; l <= lmax; l++ {
				if h == 0 && k == 0 && l == 0 {
					continue
				}
				x := float64(h) / lattice[0]
				y := float64(k) / lattice[1]
				z := float64(l) / lattice[2]
				m := 2 * math.Pi * math.Sqrt(x*x+y*y+z*z)
				if m >= minMag && m <= maxMag {
					rlvs = append(rlvs, RLV{h, k, l, m})
				}
			}
		}
	}
	return rlvs, nil
}

//MagnitudeFromAngle returns the magnitude of the reciprocal lattice vector
//that scatters radiation of the given wavelength to the given deflection
//angle (degrees): q = 4*pi*sin(angle*pi/360)/wavelength.
func MagnitudeFromAngle(angle, wavelength float64) (float64, error) {
	if wavelength <= 0 {
		return 0, &InvalidRangeError{fmt.Sprintf("goPowder: non-positive wavelength %v", wavelength), []string{"MagnitudeFromAngle"}}
	}
	if angle < 0 || angle > 360 {
		return 0, &InvalidRangeError{fmt.Sprintf("goPowder: deflection angle %v outside [0, 360]", angle), []string{"MagnitudeFromAngle"}}
	}
	return 4 * math.Pi * math.Sin(angle*math.Pi/360) / wavelength, nil
}

//AngleFromMagnitude is the inverse of MagnitudeFromAngle. It fails when the
//magnitude/wavelength pair has no real deflection angle, i.e. when
//magnitude*wavelength/(4*pi) falls outside [-1, 1].
func AngleFromMagnitude(magnitude, wavelength float64) (float64, error) {
	if wavelength <= 0 {
		return 0, &InvalidRangeError{fmt.Sprintf("goPowder: non-positive wavelength %v", wavelength), []string{"AngleFromMagnitude"}}
	}
	s := magnitude * wavelength / (4 * math.Pi)
	if s < -1 || s > 1 {
		return 0, &InvalidRangeError{fmt.Sprintf("goPowder: no deflection angle for magnitude %v at wavelength %v", magnitude, wavelength), []string{"AngleFromMagnitude"}}
	}
	return 360 * math.Asin(s) / math.Pi, nil
}

//DeflectionAngles converts a batch of RLV magnitudes to deflection angles
//for the given wavelength. A single out-of-domain magnitude fails the whole
//batch.
func DeflectionAngles(magnitudes []float64, wavelength float64) ([]float64, error) {
	angles := make([]float64, len(magnitudes))
	for i, m := range magnitudes {
		a, err := AngleFromMagnitude(m, wavelength)
		if err != nil {
			return nil, errDecorate(err, "DeflectionAngles")
		}
		angles[i] = a
	}
	return angles, nil
}

//errDecorate asserts that err implements the package Error interface,
//decorates it with the caller's name and returns it. Calling it on any other
//error is a bug and panics.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
