/*
 * peaks.go, part of goPowder.
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

//peaks.go turns raw per-RLV intensities into the peak table of a powder
//diffractogram: reflections that land on the same deflection angle are
//merged into one peak, counting multiplicity, then intensities are
//normalized so the strongest peak is 1.0 and everything below the cutoff is
//dropped.

package powder

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/floats"
)

//Relative tolerance for considering two deflection angles the same
//observable reflection.
const angleTolerance = 1e-10

//Peak is one observed reflection of a powder pattern. Miller holds the
//canonical display triple: the absolute values of the indices of the
//surviving member of the merge, sorted descending (merging discards the
//sign/permutation information of the individual reflections anyway).
//Intensity is relative to the strongest peak of the table, which has
//exactly 1.0. Multiplicity counts the reflections merged into this peak.
type Peak struct {
	Miller       [3]int
	Angle        float64 //deflection angle, degrees
	Intensity    float64
	Multiplicity int
}

//Peaks computes the peak table of the cell for radiation of the given
//wavelength, inside the deflection angle window [minAngle, maxAngle]
//(degrees). Both bounds must be non-negative and maxAngle strictly greater
//than minAngle. Peaks with a normalized intensity below cutoff are dropped.
//The table is sorted by ascending angle.
//
//Failure is eager and total: a malformed window or an angle/wavelength pair
//with no magnitude solution gives an *InvalidRangeError, a species without
//a form factor a *MissingFormFactorError, and a window containing no
//observable reflection a *NoVisiblePeaksError. No partial table is ever
//returned.
func Peaks(cell *UnitCell, table map[int]FormFactor, wavelength, minAngle, maxAngle, cutoff float64) ([]Peak, error) {
	if minAngle < 0 || maxAngle <= 0 {
		return nil, &InvalidRangeError{fmt.Sprintf("goPowder: deflection angles must be non-negative, got [%v, %v]", minAngle, maxAngle), []string{"Peaks"}}
	}
	if maxAngle <= minAngle {
		return nil, &InvalidRangeError{fmt.Sprintf("goPowder: max deflection angle %v not greater than min %v", maxAngle, minAngle), []string{"Peaks"}}
	}
	minMag, err := MagnitudeFromAngle(minAngle, wavelength)
	if err != nil {
		return nil, errDecorate(err, "Peaks")
	}
	maxMag, err := MagnitudeFromAngle(maxAngle, wavelength)
	if err != nil {
		return nil, errDecorate(err, "Peaks")
	}
	rlvs, err := ReciprocalVectors(minMag, maxMag, cell.Lattice)
	if err != nil {
		return nil, errDecorate(err, "Peaks")
	}
	if len(rlvs) == 0 {
		return nil, &NoVisiblePeaksError{fmt.Sprintf("goPowder: no reciprocal lattice vector in the window [%v, %v]", minAngle, maxAngle), []string{"Peaks"}}
	}
	magnitudes := make([]float64, len(rlvs))
	for i, r := range rlvs {
		magnitudes[i] = r.Magnitude
	}
	angles, err := DeflectionAngles(magnitudes, wavelength)
	if err != nil {
		return nil, errDecorate(err, "Peaks")
	}
	factors, err := StructureFactors(cell, table, rlvs)
	if err != nil {
		return nil, errDecorate(err, "Peaks")
	}
	intensities := make([]float64, len(factors))
	for i, f := range factors {
		a := cmplx.Abs(f)
		intensities[i] = a * a
	}
	//Provisional normalization, so the merge works on O(1) numbers even if
	//peaks are discarded later.
	max := floats.Max(intensities)
	if max == 0 {
		return nil, &NoVisiblePeaksError{"goPowder: all reflections in the window have zero intensity", []string{"Peaks"}}
	}
	floats.Scale(1/max, intensities)
	peaks := make([]Peak, len(rlvs))
	for i, r := range rlvs {
		peaks[i] = Peak{Miller: r.Miller(), Angle: angles[i], Intensity: intensities[i], Multiplicity: 1}
	}
	sort.SliceStable(peaks, func(i, j int) bool { return peaks[i].Angle < peaks[j].Angle })
	peaks = mergePeaks(peaks)
	//Re-normalize: merging summed intensities, so the maximum moved.
	max = 0
	for _, p := range peaks {
		if p.Intensity > max {
			max = p.Intensity
		}
	}
	for i := range peaks {
		peaks[i].Intensity /= max
	}
	peaks = cutPeaks(peaks, cutoff)
	if len(peaks) == 0 {
		return nil, &NoVisiblePeaksError{fmt.Sprintf("goPowder: no peak above the intensity cutoff %v", cutoff), []string{"Peaks"}}
	}
	for i := range peaks {
		peaks[i].Miller = canonicalMiller(peaks[i].Miller)
	}
	return peaks, nil
}

//mergePeaks merges runs of peaks whose deflection angles agree to within
//angleTolerance (relative). The input must be sorted by ascending angle.
//Each run is anchored at its first member: a peak joins the run while it
//stays within tolerance of the anchor, not of its immediate predecessor, so
//a slow angular drift cannot chain arbitrarily far. Intensities of a run
//are summed, multiplicity counts its members, and the anchor survives.
func mergePeaks(peaks []Peak) []Peak {
	merged := make([]Peak, 0, len(peaks))
	i := 0
	for i < len(peaks) {
		anchor := peaks[i]
		j := i + 1
		for j < len(peaks) && sameAngle(peaks[j].Angle, anchor.Angle) {
			anchor.Intensity += peaks[j].Intensity
			anchor.Multiplicity++
			j++
		}
		merged = append(merged, anchor)
		i = j
	}
	return merged
}

func sameAngle(a, anchor float64) bool {
	return math.Abs(a-anchor) <= angleTolerance*math.Abs(anchor)
}

//cutPeaks drops every peak with an intensity strictly below cutoff.
func cutPeaks(peaks []Peak, cutoff float64) []Peak {
	kept := make([]Peak, 0, len(peaks))
	for _, p := range peaks {
		if p.Intensity >= cutoff {
			kept = append(kept, p)
		}
	}
	return kept
}

//canonicalMiller maps a Miller triple to its display form: absolute values
//sorted in descending order. All reflections merged into a peak share a
//magnitude, so individual signs and permutations carry no information the
//table could preserve.
func canonicalMiller(m [3]int) [3]int {
	for i, v := range m {
		if v < 0 {
			m[i] = -v
		}
	}
	s := m[:]
	sort.Sort(sort.Reverse(sort.IntSlice(s)))
	return m
}

//MillerPeaks is the modality-dispatching entry point for peak extraction:
//it selects the neutron or the X-ray form factor table according to the
//modality selector (ND or XRD) and computes the peak table. Any other
//selector fails with an *InvalidModalityError.
func MillerPeaks(cell *UnitCell, modality string, neutron, xray map[int]FormFactor, wavelength, minAngle, maxAngle, cutoff float64) ([]Peak, error) {
	switch modality {
	case ND:
		return Peaks(cell, neutron, wavelength, minAngle, maxAngle, cutoff)
	case XRD:
		return Peaks(cell, xray, wavelength, minAngle, maxAngle, cutoff)
	}
	return nil, &InvalidModalityError{Modality: modality}
}
