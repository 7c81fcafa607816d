/*
 * powder_test.go, part of goPowder.
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
	"math/cmplx"
	"reflect"
	"testing"

	"github.com/gopowder/powder/ff"
	"github.com/gopowder/powder/v3"
)

//monatomicCubic returns a simple cubic crystal with a single atom of
//species z at the origin and unit lattice constant.
func monatomicCubic(z int) *UnitCell {
	coords, err := v3.NewMatrix([]float64{0, 0, 0})
	if err != nil {
		panic(err.Error())
	}
	cell, err := NewUnitCell("cubium", []*Atom{{Z: z, Symbol: "X"}}, coords, [3]float64{1, 1, 1})
	if err != nil {
		panic(err.Error())
	}
	return cell
}

//zincblendeGaAs builds the conventional GaAs cell in code, so the core
//tests do not depend on the fixture files.
func zincblendeGaAs() *UnitCell {
	data := []float64{
		0, 0, 0,
		0.5, 0.5, 0,
		0.5, 0, 0.5,
		0, 0.5, 0.5,
		0.25, 0.25, 0.25,
		0.75, 0.75, 0.25,
		0.75, 0.25, 0.75,
		0.25, 0.75, 0.75,
	}
	atoms := []*Atom{
		{31, "Ga"}, {31, "Ga"}, {31, "Ga"}, {31, "Ga"},
		{33, "As"}, {33, "As"}, {33, "As"}, {33, "As"},
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		panic(err.Error())
	}
	cell, err := NewUnitCell("GaAs", atoms, coords, [3]float64{5.6535, 5.6535, 5.6535})
	if err != nil {
		panic(err.Error())
	}
	return cell
}

func gaAsNeutronTable() map[int]FormFactor {
	return map[int]FormFactor{
		31: &ff.Neutron{ScatteringLength: 7.288},
		33: &ff.Neutron{ScatteringLength: 6.58},
	}
}

//TestCubicNeutronPeaks checks the whole pipeline against a case that can be
//worked out by hand: a single atom with scattering length 1 on a unit cubic
//lattice, 1 angstrom neutrons, window [10, 170]. The reachable reflections
//have h^2+k^2+l^2 = 1, 2, 3, at deflection angles of exactly 60, 90 and 120
//degrees, and since the form factor is constant the intensities are the
//multiplicities 6, 12 and 8 up to normalization.
func TestCubicNeutronPeaks(Te *testing.T) {
	cell := monatomicCubic(11)
	table := map[int]FormFactor{11: &ff.Neutron{ScatteringLength: 1}}
	peaks, err := Peaks(cell, table, 1, 10, 170, DefaultCutoff)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("cubic neutron peaks", peaks)
	if len(peaks) != 3 {
		Te.Fatalf("got %d peaks, want 3", len(peaks))
	}
	wantAngles := []float64{60, 90, 120}
	wantMult := []int{6, 12, 8}
	wantIntensity := []float64{0.5, 1.0, 8.0 / 12.0}
	wantMiller := [][3]int{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}}
	for i, p := range peaks {
		if math.Abs(p.Angle-wantAngles[i]) > 1e-9 {
			Te.Errorf("peak %d: angle %v, want %v", i, p.Angle, wantAngles[i])
		}
		if p.Multiplicity != wantMult[i] {
			Te.Errorf("peak %d: multiplicity %d, want %d", i, p.Multiplicity, wantMult[i])
		}
		if math.Abs(p.Intensity-wantIntensity[i]) > 1e-12 {
			Te.Errorf("peak %d: intensity %v, want %v", i, p.Intensity, wantIntensity[i])
		}
		if p.Miller != wantMiller[i] {
			Te.Errorf("peak %d: Miller %v, want %v", i, p.Miller, wantMiller[i])
		}
	}
}

//TestNormalizationInvariant checks that the strongest peak of a non-empty
//table is exactly 1.0, and that the table is sorted by ascending angle.
func TestNormalizationInvariant(Te *testing.T) {
	peaks, err := Peaks(zincblendeGaAs(), gaAsNeutronTable(), 1.5, 10, 170, DefaultCutoff)
	if err != nil {
		Te.Fatal(err)
	}
	max := 0.0
	for i, p := range peaks {
		if p.Intensity > max {
			max = p.Intensity
		}
		if i > 0 && peaks[i-1].Angle > p.Angle {
			Te.Errorf("peaks not sorted by angle: %v after %v", p.Angle, peaks[i-1].Angle)
		}
	}
	if math.Abs(max-1.0) > 1e-15 {
		Te.Errorf("maximum intensity %v, want exactly 1.0", max)
	}
}

//TestMultiplicityConservation checks that with a zero cutoff every
//enumerated RLV is counted in exactly one peak's multiplicity.
func TestMultiplicityConservation(Te *testing.T) {
	cell := zincblendeGaAs()
	wavelength := 1.5
	peaks, err := Peaks(cell, gaAsNeutronTable(), wavelength, 10, 170, 0)
	if err != nil {
		Te.Fatal(err)
	}
	minMag, err := MagnitudeFromAngle(10, wavelength)
	if err != nil {
		Te.Fatal(err)
	}
	maxMag, err := MagnitudeFromAngle(170, wavelength)
	if err != nil {
		Te.Fatal(err)
	}
	rlvs, err := ReciprocalVectors(minMag, maxMag, cell.Lattice)
	if err != nil {
		Te.Fatal(err)
	}
	total := 0
	for _, p := range peaks {
		total += p.Multiplicity
	}
	if total != len(rlvs) {
		Te.Errorf("multiplicities sum to %d, but %d RLVs were enumerated", total, len(rlvs))
	}
}

//TestMonotonicCutoff checks that raising the intensity cutoff never
//increases the number of returned peaks.
func TestMonotonicCutoff(Te *testing.T) {
	cell := zincblendeGaAs()
	table := gaAsNeutronTable()
	last := -1
	for _, cutoff := range []float64{0, 1e-6, 1e-3, 1e-1, 0.5, 1} {
		peaks, err := Peaks(cell, table, 1.5, 10, 170, cutoff)
		if err != nil {
			Te.Fatal(err)
		}
		if last >= 0 && len(peaks) > last {
			Te.Errorf("cutoff %v returned %d peaks, more than %d at a lower cutoff", cutoff, len(peaks), last)
		}
		last = len(peaks)
	}
}

//TestMergeIdempotence checks that merging an already merged peak table is a
//no-op.
func TestMergeIdempotence(Te *testing.T) {
	peaks, err := Peaks(zincblendeGaAs(), gaAsNeutronTable(), 1.5, 10, 170, DefaultCutoff)
	if err != nil {
		Te.Fatal(err)
	}
	again := mergePeaks(peaks)
	if !reflect.DeepEqual(peaks, again) {
		Te.Errorf("re-merging a merged table changed it:\n%v\n%v", peaks, again)
	}
}

//TestMergeAnchoredRuns checks the run semantics of the merge directly: a
//peak joins a run while it is within tolerance of the run's anchor, not of
//its predecessor, so a drifting chain is split.
func TestMergeAnchoredRuns(Te *testing.T) {
	base := 90.0
	step := base * angleTolerance * 0.6 //within tolerance of the previous, not of the anchor after two steps
	peaks := []Peak{
		{Angle: base, Intensity: 0.25, Multiplicity: 1},
		{Angle: base + step, Intensity: 0.25, Multiplicity: 1},
		{Angle: base + 2*step, Intensity: 0.25, Multiplicity: 1},
	}
	merged := mergePeaks(peaks)
	if len(merged) != 2 {
		Te.Fatalf("got %d merged peaks, want 2", len(merged))
	}
	if merged[0].Multiplicity != 2 || merged[1].Multiplicity != 1 {
		Te.Errorf("got multiplicities %d, %d, want 2, 1", merged[0].Multiplicity, merged[1].Multiplicity)
	}
	if math.Abs(merged[0].Intensity-0.5) > 1e-15 {
		Te.Errorf("anchor intensity %v, want 0.5", merged[0].Intensity)
	}
}

//TestTranslationalDoubling checks constructive interference: two atoms at
//lattice-translationally equivalent positions scatter exactly twice the
//amplitude of one atom wherever their phase factors are 1.
func TestTranslationalDoubling(Te *testing.T) {
	table := map[int]FormFactor{11: &ff.Neutron{ScatteringLength: 1}}
	one := monatomicCubic(11)
	coords, err := v3.NewMatrix([]float64{0, 0, 0, 0.5, 0, 0})
	if err != nil {
		Te.Fatal(err)
	}
	two, err := NewUnitCell("doubled", []*Atom{{Z: 11, Symbol: "X"}, {Z: 11, Symbol: "X"}}, coords, [3]float64{1, 1, 1})
	if err != nil {
		Te.Fatal(err)
	}
	//even h: the second atom sits a whole lattice translation of the halved
	//cell away, so its phase factor is exactly 1.
	rlvs := []RLV{{H: 2, K: 0, L: 0, Magnitude: 4 * math.Pi}, {H: 2, K: 1, L: 1, Magnitude: 2 * math.Pi * math.Sqrt(6)}}
	fOne, err := StructureFactors(one, table, rlvs)
	if err != nil {
		Te.Fatal(err)
	}
	fTwo, err := StructureFactors(two, table, rlvs)
	if err != nil {
		Te.Fatal(err)
	}
	for i := range rlvs {
		if math.Abs(cmplx.Abs(fTwo[i])-2*cmplx.Abs(fOne[i])) > 1e-12 {
			Te.Errorf("RLV %v: |F| = %v for two atoms, want twice %v", rlvs[i].Miller(), cmplx.Abs(fTwo[i]), cmplx.Abs(fOne[i]))
		}
	}
}

//TestStructureFactorIntensities checks that squared structure factor
//magnitudes are non-negative and finite over a realistic RLV set.
func TestStructureFactorIntensities(Te *testing.T) {
	cell := zincblendeGaAs()
	wavelength := 1.5
	minMag, err := MagnitudeFromAngle(10, wavelength)
	if err != nil {
		Te.Fatal(err)
	}
	maxMag, err := MagnitudeFromAngle(170, wavelength)
	if err != nil {
		Te.Fatal(err)
	}
	rlvs, err := ReciprocalVectors(minMag, maxMag, cell.Lattice)
	if err != nil {
		Te.Fatal(err)
	}
	factors, err := StructureFactors(cell, gaAsNeutronTable(), rlvs)
	if err != nil {
		Te.Fatal(err)
	}
	for i, f := range factors {
		in := cmplx.Abs(f) * cmplx.Abs(f)
		if math.IsNaN(in) || in < 0 {
			Te.Errorf("RLV %v: intensity %v", rlvs[i].Miller(), in)
		}
	}
}

//TestMissingFormFactor checks that a species without a table entry fails
//with a MissingFormFactorError naming it, and that no partial table comes
//back.
func TestMissingFormFactor(Te *testing.T) {
	cell := zincblendeGaAs()
	table := map[int]FormFactor{31: &ff.Neutron{ScatteringLength: 7.288}} //no As
	peaks, err := Peaks(cell, table, 1.5, 10, 170, DefaultCutoff)
	if peaks != nil {
		Te.Errorf("got a partial peak table despite the missing species")
	}
	missing, ok := err.(*MissingFormFactorError)
	if !ok {
		Te.Fatalf("got error %v of type %T, want *MissingFormFactorError", err, err)
	}
	if missing.Z != 33 {
		Te.Errorf("error names species %d, want 33", missing.Z)
	}
}

//TestInvalidRanges checks the angular window validation: a reversed window
//must fail before any RLV is generated, and negative bounds must fail too.
func TestInvalidRanges(Te *testing.T) {
	cell := monatomicCubic(11)
	table := map[int]FormFactor{11: &ff.Neutron{ScatteringLength: 1}}
	for _, window := range [][2]float64{{170, 10}, {-5, 170}, {10, 10}} {
		_, err := Peaks(cell, table, 1, window[0], window[1], DefaultCutoff)
		if _, ok := err.(*InvalidRangeError); !ok {
			Te.Errorf("window %v: got error %v of type %T, want *InvalidRangeError", window, err, err)
		}
	}
}

//TestInvalidModality checks the modality dispatch.
func TestInvalidModality(Te *testing.T) {
	cell := monatomicCubic(11)
	table := map[int]FormFactor{11: &ff.Neutron{ScatteringLength: 1}}
	_, err := MillerPeaks(cell, "ED", table, table, 1, 10, 170, DefaultCutoff)
	bad, ok := err.(*InvalidModalityError)
	if !ok {
		Te.Fatalf("got error %v of type %T, want *InvalidModalityError", err, err)
	}
	if bad.Modality != "ED" {
		Te.Errorf("error names modality %q, want %q", bad.Modality, "ED")
	}
	if _, err := MillerPeaks(cell, ND, table, nil, 1, 10, 170, DefaultCutoff); err != nil {
		Te.Errorf("ND dispatch failed: %v", err)
	}
	if _, err := MillerPeaks(cell, XRD, nil, table, 1, 10, 170, DefaultCutoff); err != nil {
		Te.Errorf("XRD dispatch failed: %v", err)
	}
}

//TestNoVisiblePeaks checks the guarded empty cases: a window too narrow to
//contain any RLV, and a cutoff above every intensity.
func TestNoVisiblePeaks(Te *testing.T) {
	cell := monatomicCubic(11)
	table := map[int]FormFactor{11: &ff.Neutron{ScatteringLength: 1}}
	//with a 10 angstrom wavelength no RLV of the unit lattice is reachable
	_, err := Peaks(cell, table, 10, 10, 170, DefaultCutoff)
	if _, ok := err.(*NoVisiblePeaksError); !ok {
		Te.Errorf("empty window: got error %v of type %T, want *NoVisiblePeaksError", err, err)
	}
	_, err = Peaks(cell, table, 1, 10, 170, 1.5)
	if _, ok := err.(*NoVisiblePeaksError); !ok {
		Te.Errorf("impossible cutoff: got error %v of type %T, want *NoVisiblePeaksError", err, err)
	}
}
