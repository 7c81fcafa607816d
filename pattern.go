/*
 * pattern.go, part of goPowder.
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
	"math"

	"gonum.org/v1/gonum/floats"
)

//Samples per unit of peak width across the angular span. Callers that
//compare patterns numerically rely on this exact derivation of the sample
//count, so it is a constant, not a parameter.
const samplesPerPeakWidth = 10

//Sample is one point of a synthesized diffraction pattern.
type Sample struct {
	Angle     float64 //deflection angle, degrees
	Intensity float64
}

//Pattern expands a peak table into a continuous intensity curve over
//[minAngle, maxAngle], both ends included: at each of
//round(10*span/width) uniformly spaced angles, the intensities of all
//peaks are superposed with an un-normalized Gaussian kernel of standard
//deviation width and the peak's intensity as height. The curve is not
//re-normalized, so overlapping peaks can add up beyond 1; that is
//constructive broadening, not an error.
func Pattern(peaks []Peak, minAngle, maxAngle, width float64) []Sample {
	n := int(math.Round(samplesPerPeakWidth * (maxAngle - minAngle) / width))
	if n < 2 {
		n = 2
	}
	angles := make([]float64, n)
	floats.Span(angles, minAngle, maxAngle)
	samples := make([]Sample, n)
	for i, x := range angles {
		var y float64
		for _, p := range peaks {
			d := (x - p.Angle) / width
			y += p.Intensity * math.Exp(-0.5*d*d)
		}
		samples[i] = Sample{Angle: x, Intensity: y}
	}
	return samples
}

//DiffractionPattern is the modality-dispatching entry point for pattern
//synthesis: it computes the peak table like MillerPeaks and expands it with
//Pattern, using Gaussian peaks of standard deviation width (degrees).
func DiffractionPattern(cell *UnitCell, modality string, neutron, xray map[int]FormFactor, wavelength, minAngle, maxAngle, width, cutoff float64) ([]Sample, error) {
	if width <= 0 {
		return nil, &InvalidRangeError{fmt.Sprintf("goPowder: non-positive peak width %v", width), []string{"DiffractionPattern"}}
	}
	peaks, err := MillerPeaks(cell, modality, neutron, xray, wavelength, minAngle, maxAngle, cutoff)
	if err != nil {
		return nil, errDecorate(err, "DiffractionPattern")
	}
	return Pattern(peaks, minAngle, maxAngle, width), nil
}
