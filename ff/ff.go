/*
 * ff.go, part of goPowder.
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

//Package ff implements the atomic form factor variants used by goPowder.
//All of them satisfy the powder.FormFactor interface: a pure function from
//an array of reciprocal lattice vector magnitudes to an equally long array
//of scattering amplitudes. The structure factor machinery only ever sees the
//interface, so the variants are freely interchangeable per species.
package ff

import "math"

//Neutron is the form factor for neutron diffraction. Neutrons scatter off
//nuclei, which are point-like at diffraction length scales, so the form
//factor is just the scattering length of the species, independent of the
//momentum transfer. As only relative intensities matter, no distinction is
//made between the form factor and the scattering length itself.
type Neutron struct {
	ScatteringLength float64 //in fm, though any consistent unit works
}

//Evaluate broadcasts the scattering length over all magnitudes.
func (N *Neutron) Evaluate(magnitudes []float64) []float64 {
	f := make([]float64, len(magnitudes))
	for i := range f {
		f[i] = N.ScatteringLength
	}
	return f
}

//XRay is the tabulated X-ray form factor: the standard interpolation of the
//atomic scattering amplitude as a sum of four Gaussians plus a constant,
//
//	f(q) = sum_i a_i * exp(-b_i*(q/4pi)^2) + c
//
//with the nine Cromer-Mann style parameters stored per species.
type XRay struct {
	A1, B1 float64
	A2, B2 float64
	A3, B3 float64
	A4, B4 float64
	C      float64
}

//Evaluate computes the Gaussian interpolation at every magnitude.
func (X *XRay) Evaluate(magnitudes []float64) []float64 {
	a := [4]float64{X.A1, X.A2, X.A3, X.A4}
	b := [4]float64{X.B1, X.B2, X.B3, X.B4}
	f := make([]float64, len(magnitudes))
	for i, q := range magnitudes {
		s := q / (4 * math.Pi)
		v := X.C
		for j := 0; j < 4; j++ {
			v += a[j] * math.Exp(-b[j]*s*s)
		}
		f[i] = v
	}
	return f
}

//HardShell is the X-ray form factor of an atom whose electron density is
//approximated by a uniformly charged sphere of radius Radius. The Fourier
//transform of that density has the closed form
//
//	f(q) = 3*Z*(sin x - x*cos x)/x^3,  x = q*Radius
//
//which tends to Z as q tends to 0.
type HardShell struct {
	Z      int     //atomic number, the total electron count
	Radius float64 //atomic radius, same length unit as 1/q
}

//Evaluate computes the uniform-sphere form factor at every magnitude.
//The x = 0 singularity is removable; the limit Z is used there.
func (H *HardShell) Evaluate(magnitudes []float64) []float64 {
	f := make([]float64, len(magnitudes))
	z := float64(H.Z)
	for i, q := range magnitudes {
		x := q * H.Radius
		if x == 0 {
			f[i] = z
			continue
		}
		f[i] = 3 * z * (math.Sin(x) - x*math.Cos(x)) / (x * x * x)
	}
	return f
}
