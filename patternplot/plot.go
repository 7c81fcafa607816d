/*
 * plot.go, part of goPowder.
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

//Package patternplot renders synthesized diffraction patterns with
//gonum/plot. Everything here is presentation: the numbers come untouched
//from the root package.
package patternplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	powder "github.com/gopowder/powder"
)

func basicPatternPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Deflection angle (°)"
	p.Y.Label.Text = "Relative intensity"
	p.Add(plotter.NewGrid())
	return p
}

func samples2XYs(samples []powder.Sample) plotter.XYs {
	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = s.Angle
		pts[i].Y = s.Intensity
	}
	return pts
}

//Pattern plots one diffraction pattern as a line and saves it as a PNG
//file. The ".png" extension is appended to plotname.
func Pattern(samples []powder.Sample, title, plotname string) error {
	if samples == nil {
		return fmt.Errorf("goPowder/patternplot: given nil pattern")
	}
	p := basicPatternPlot(title)
	line, err := plotter.NewLine(samples2XYs(samples))
	if err != nil {
		return err
	}
	p.Add(line)
	return p.Save(10*vg.Inch, 6*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

//Compare superimposes several diffraction patterns, one labeled line each,
//and saves the result as a PNG file. Lines are colored and dashed by
//plotutil so overlapping patterns stay distinguishable. labels must have
//one entry per pattern.
func Compare(patterns [][]powder.Sample, labels []string, title, plotname string) error {
	if len(patterns) == 0 {
		return fmt.Errorf("goPowder/patternplot: given no patterns")
	}
	if len(labels) != len(patterns) {
		return fmt.Errorf("goPowder/patternplot: %d patterns but %d labels", len(patterns), len(labels))
	}
	p := basicPatternPlot(title)
	args := make([]interface{}, 0, 2*len(patterns))
	for i, samples := range patterns {
		args = append(args, labels[i], samples2XYs(samples))
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return err
	}
	return p.Save(10*vg.Inch, 6*vg.Inch, fmt.Sprintf("%s.png", plotname))
}
