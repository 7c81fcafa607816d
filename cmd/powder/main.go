/*
 * main.go, part of goPowder.
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

//powder computes powder diffraction peak tables and patterns from a config
//file describing the crystal, the radiation and the angular window.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"gopkg.in/gcfg.v1"

	powder "github.com/gopowder/powder"
	"github.com/gopowder/powder/alloy"
	"github.com/gopowder/powder/patternplot"
)

const exampleConfig = `[Powder]

# Name of the material, used in printouts and plot titles.
Material = GaAs

# Basis and lattice constant files (see the package documentation for the
# formats). Files ending in .gz are decompressed on the fly.
Basis = test/GaAs_basis.csv
Lattice = test/GaAs_lattice.csv

# Diffraction modality: ND (neutron) or XRD (X-ray).
Modality = ND

# Form factor tables. Only the table of the selected modality is needed.
# Set HardShell = true to use the uniform-sphere X-ray model instead of the
# tabulated Gaussian one; it is read from HardShellTable.
NeutronTable = test/neutron_scattering_lengths.csv
XRayTable = test/xray_form_factors.csv
# HardShell = false
# HardShellTable = test/xray_hard_shell.csv

# Radiation wavelength, in the same length unit as the lattice constants.
Wavelength = 1.0

# Deflection angle window, in degrees, and the minimum relative intensity a
# peak needs to be reported.
MinAngle = 10
MaxAngle = 170
IntensityCutoff = 1e-6

# Supercell tiling. (1, 1, 1) means the plain unit cell.
# Nx = 4
# Ny = 4
# Nz = 4

# Substitutional disorder: replace a fraction Concentration of the atoms of
# species TargetZ by the substitute species, drawing with the given Seed.
# SubstituteLattice names the lattice file of the fully substituted end
# member, for the Vegard interpolation of the lattice constants.
# TargetZ = 31
# SubstituteZ = 49
# SubstituteSymbol = In
# SubstituteLattice = test/InAs_lattice.csv
# Concentration = 0.3
# Seed = 1

# If PlotFile is set, the continuous pattern is synthesized with Gaussian
# peaks of width PeakWidth degrees and saved as <PlotFile>.png.
# PeakWidth = 0.1
# PlotFile = results/GaAs_ND
`

type Config struct {
	Powder struct {
		Material          string
		Basis             string
		Lattice           string
		Modality          string
		NeutronTable      string
		XRayTable         string
		HardShellTable    string
		HardShell         bool
		Wavelength        float64
		MinAngle          float64
		MaxAngle          float64
		IntensityCutoff   float64
		PeakWidth         float64
		Nx, Ny, Nz        int
		TargetZ           int
		SubstituteZ       int
		SubstituteSymbol  string
		SubstituteLattice string
		Concentration     float64
		Seed              int64
		PlotFile          string
	}
}

func defaultConfig() *Config {
	cfg := new(Config)
	cfg.Powder.Modality = powder.ND
	cfg.Powder.Wavelength = 1.0
	cfg.Powder.MinAngle = powder.DefaultMinAngle
	cfg.Powder.MaxAngle = powder.DefaultMaxAngle
	cfg.Powder.IntensityCutoff = powder.DefaultCutoff
	cfg.Powder.PeakWidth = powder.DefaultPeakWidth
	cfg.Powder.Nx, cfg.Powder.Ny, cfg.Powder.Nz = 1, 1, 1
	cfg.Powder.Seed = 1
	return cfg
}

//buildCell assembles the unit cell, tiles it into a supercell and applies
//substitutional disorder, as far as the config asks for each.
func buildCell(cfg *Config) (*powder.UnitCell, error) {
	p := &cfg.Powder
	cell, err := powder.ReadUnitCell(p.Material, p.Basis, p.Lattice)
	if err != nil {
		return nil, err
	}
	unitLattice := cell.Lattice
	if p.Nx != 1 || p.Ny != 1 || p.Nz != 1 {
		cell, err = alloy.SuperCell(cell, p.Nx, p.Ny, p.Nz)
		if err != nil {
			return nil, err
		}
	}
	if p.Concentration > 0 {
		subLattice, err := powder.ReadLattice(p.SubstituteLattice)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("%s(%s %.3f)", p.Material, p.SubstituteSymbol, p.Concentration)
		sub := &powder.Atom{Z: p.SubstituteZ, Symbol: p.SubstituteSymbol}
		cell, err = alloy.Disorder(cell, p.TargetZ, sub, p.Concentration, unitLattice, subLattice, name, rand.NewSource(p.Seed))
		if err != nil {
			return nil, err
		}
	}
	return cell, nil
}

//readTables reads whichever form factor tables the config names. Tables the
//run does not need may be left unset.
func readTables(cfg *Config) (neutron, xray map[int]powder.FormFactor, err error) {
	p := &cfg.Powder
	if p.NeutronTable != "" {
		neutron, err = powder.ReadNeutronTable(p.NeutronTable)
		if err != nil {
			return nil, nil, err
		}
	}
	if p.HardShell {
		xray, err = powder.ReadHardShellTable(p.HardShellTable)
		if err != nil {
			return nil, nil, err
		}
	} else if p.XRayTable != "" {
		xray, err = powder.ReadXRayTable(p.XRayTable)
		if err != nil {
			return nil, nil, err
		}
	}
	return neutron, xray, nil
}

func main() {
	var configFile string
	var example bool
	flag.StringVar(&configFile, "config", "", "configuration file")
	flag.BoolVar(&example, "example", false, "print an example configuration file and exit")
	flag.Parse()
	if example {
		fmt.Print(exampleConfig)
		return
	}
	if configFile == "" {
		log.Fatal("no configuration file given; run with -example for a template")
	}
	cfg := defaultConfig()
	if err := gcfg.ReadFileInto(cfg, configFile); err != nil {
		log.Fatalf("error reading %s: %s", configFile, err.Error())
	}
	p := &cfg.Powder
	cell, err := buildCell(cfg)
	if err != nil {
		log.Fatalf("error building the crystal: %s", err.Error())
	}
	neutron, xray, err := readTables(cfg)
	if err != nil {
		log.Fatalf("error reading form factor tables: %s", err.Error())
	}
	peaks, err := powder.MillerPeaks(cell, p.Modality, neutron, xray, p.Wavelength, p.MinAngle, p.MaxAngle, p.IntensityCutoff)
	if err != nil {
		log.Fatalf("error computing diffraction peaks: %s", err.Error())
	}
	fmt.Printf("%s diffraction peaks (%s, wavelength %g):\n", cell.Material, p.Modality, p.Wavelength)
	for i, peak := range peaks {
		fmt.Printf("Peak %d: [h k l] = %v; deflection angle = %.2f°; relative intensity = %.4f; multiplicity = %d\n",
			i+1, peak.Miller, peak.Angle, peak.Intensity, peak.Multiplicity)
	}
	if p.PlotFile != "" {
		pattern := powder.Pattern(peaks, p.MinAngle, p.MaxAngle, p.PeakWidth)
		title := fmt.Sprintf("Diffraction pattern for %s (%s)", cell.Material, p.Modality)
		if err := patternplot.Pattern(pattern, title, p.PlotFile); err != nil {
			log.Fatalf("error plotting the pattern: %s", err.Error())
		}
		fmt.Fprintf(os.Stderr, "Plot created at %s.png\n", p.PlotFile)
	}
}
