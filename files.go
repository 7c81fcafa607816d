/*
 * files.go, part of goPowder.
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

//files.go reads the tabular data goPowder consumes: crystal bases, lattice
//constants and form factor tables, all as comma-separated files with one
//header line. Lines starting with '#' and blank lines are ignored. Files
//ending in ".gz" are transparently decompressed.
//
//Formats (one header line, then one record per line):
//
//	basis:      symbol,atomic_number,x,y,z        (x, y, z fractional)
//	lattice:    a,b,c                             (one record, angstroms)
//	neutron:    symbol,atomic_number,scattering_length
//	xray:       symbol,atomic_number,a1,b1,a2,b2,a3,b3,a4,b4,c
//	hard shell: symbol,atomic_number,atomic_radius

package powder

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/gopowder/powder/ff"
	"github.com/gopowder/powder/v3"
)

//tableLines reads every record of a table file: header, comments and blank
//lines are stripped, each surviving line is split on commas and its fields
//trimmed.
func tableLines(filename string) ([][]string, error) {
	fin, err := os.Open(filename)
	if err != nil {
		return nil, &CError{"goPowder: failed to open table file: " + err.Error(), []string{"tableLines"}}
	}
	defer fin.Close()
	var r io.Reader = fin
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(fin)
		if err != nil {
			return nil, &CError{"goPowder: failed to open gzipped table file: " + err.Error(), []string{"tableLines"}}
		}
		defer gz.Close()
		r = gz
	}
	var records [][]string
	header := true
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if header {
			header = false
			continue
		}
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		records = append(records, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, &CError{"goPowder: failed reading table file: " + err.Error(), []string{"tableLines"}}
	}
	return records, nil
}

//parseFloats parses fields[from:] as float64s.
func parseFloats(fields []string, from int) ([]float64, error) {
	vals := make([]float64, 0, len(fields)-from)
	for _, f := range fields[from:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

//ReadBasis reads a crystal basis file and returns the atoms and their
//fractional coordinates.
func ReadBasis(filename string) ([]*Atom, *v3.Matrix, error) {
	records, err := tableLines(filename)
	if err != nil {
		return nil, nil, errDecorate(err, "ReadBasis")
	}
	if len(records) == 0 {
		return nil, nil, &CError{"goPowder: empty basis file " + filename, []string{"ReadBasis"}}
	}
	atoms := make([]*Atom, 0, len(records))
	data := make([]float64, 0, 3*len(records))
	for i, rec := range records {
		if len(rec) != 5 {
			return nil, nil, &CError{fmt.Sprintf("goPowder: basis record %d of %s has %d fields, want 5", i+1, filename, len(rec)), []string{"ReadBasis"}}
		}
		z, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, nil, &CError{fmt.Sprintf("goPowder: bad atomic number in basis record %d of %s: %s", i+1, filename, err.Error()), []string{"ReadBasis"}}
		}
		pos, err := parseFloats(rec, 2)
		if err != nil {
			return nil, nil, &CError{fmt.Sprintf("goPowder: bad coordinate in basis record %d of %s: %s", i+1, filename, err.Error()), []string{"ReadBasis"}}
		}
		atoms = append(atoms, &Atom{Z: z, Symbol: rec[0]})
		data = append(data, pos...)
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, nil, errDecorate(err, "ReadBasis")
	}
	return atoms, coords, nil
}

//ReadLattice reads a lattice constants file and returns the three
//constants.
func ReadLattice(filename string) ([3]float64, error) {
	var lattice [3]float64
	records, err := tableLines(filename)
	if err != nil {
		return lattice, errDecorate(err, "ReadLattice")
	}
	if len(records) != 1 || len(records[0]) != 3 {
		return lattice, &CError{"goPowder: lattice file " + filename + " should have exactly one record with 3 fields", []string{"ReadLattice"}}
	}
	vals, err2 := parseFloats(records[0], 0)
	if err2 != nil {
		return lattice, &CError{"goPowder: bad lattice constant in " + filename + ": " + err2.Error(), []string{"ReadLattice"}}
	}
	copy(lattice[:], vals)
	return lattice, nil
}

//ReadUnitCell reads a basis file and a lattice file and assembles the
//unit cell.
func ReadUnitCell(material, basisfile, latticefile string) (*UnitCell, error) {
	atoms, coords, err := ReadBasis(basisfile)
	if err != nil {
		return nil, errDecorate(err, "ReadUnitCell")
	}
	lattice, err := ReadLattice(latticefile)
	if err != nil {
		return nil, errDecorate(err, "ReadUnitCell")
	}
	cell, err := NewUnitCell(material, atoms, coords, lattice)
	if err != nil {
		return nil, errDecorate(err, "ReadUnitCell")
	}
	return cell, nil
}

//ReadNeutronTable reads a table of neutron scattering lengths and returns
//the corresponding form factor table.
func ReadNeutronTable(filename string) (map[int]FormFactor, error) {
	records, err := tableLines(filename)
	if err != nil {
		return nil, errDecorate(err, "ReadNeutronTable")
	}
	table := make(map[int]FormFactor, len(records))
	for i, rec := range records {
		if len(rec) != 3 {
			return nil, &CError{fmt.Sprintf("goPowder: neutron record %d of %s has %d fields, want 3", i+1, filename, len(rec)), []string{"ReadNeutronTable"}}
		}
		z, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, &CError{fmt.Sprintf("goPowder: bad atomic number in neutron record %d of %s: %s", i+1, filename, err.Error()), []string{"ReadNeutronTable"}}
		}
		b, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, &CError{fmt.Sprintf("goPowder: bad scattering length in neutron record %d of %s: %s", i+1, filename, err.Error()), []string{"ReadNeutronTable"}}
		}
		table[z] = &ff.Neutron{ScatteringLength: b}
	}
	return table, nil
}

//ReadXRayTable reads a table of 4-Gaussian X-ray form factor parameters and
//returns the corresponding form factor table.
func ReadXRayTable(filename string) (map[int]FormFactor, error) {
	records, err := tableLines(filename)
	if err != nil {
		return nil, errDecorate(err, "ReadXRayTable")
	}
	table := make(map[int]FormFactor, len(records))
	for i, rec := range records {
		if len(rec) != 11 {
			return nil, &CError{fmt.Sprintf("goPowder: X-ray record %d of %s has %d fields, want 11", i+1, filename, len(rec)), []string{"ReadXRayTable"}}
		}
		z, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, &CError{fmt.Sprintf("goPowder: bad atomic number in X-ray record %d of %s: %s", i+1, filename, err.Error()), []string{"ReadXRayTable"}}
		}
		p, err := parseFloats(rec, 2)
		if err != nil {
			return nil, &CError{fmt.Sprintf("goPowder: bad parameter in X-ray record %d of %s: %s", i+1, filename, err.Error()), []string{"ReadXRayTable"}}
		}
		table[z] = &ff.XRay{A1: p[0], B1: p[1], A2: p[2], B2: p[3], A3: p[4], B3: p[5], A4: p[6], B4: p[7], C: p[8]}
	}
	return table, nil
}

//ReadHardShellTable reads a table of atomic radii and returns the
//corresponding hard-shell X-ray form factor table.
func ReadHardShellTable(filename string) (map[int]FormFactor, error) {
	records, err := tableLines(filename)
	if err != nil {
		return nil, errDecorate(err, "ReadHardShellTable")
	}
	table := make(map[int]FormFactor, len(records))
	for i, rec := range records {
		if len(rec) != 3 {
			return nil, &CError{fmt.Sprintf("goPowder: hard-shell record %d of %s has %d fields, want 3", i+1, filename, len(rec)), []string{"ReadHardShellTable"}}
		}
		z, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, &CError{fmt.Sprintf("goPowder: bad atomic number in hard-shell record %d of %s: %s", i+1, filename, err.Error()), []string{"ReadHardShellTable"}}
		}
		r, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, &CError{fmt.Sprintf("goPowder: bad atomic radius in hard-shell record %d of %s: %s", i+1, filename, err.Error()), []string{"ReadHardShellTable"}}
		}
		table[z] = &ff.HardShell{Z: z, Radius: r}
	}
	return table, nil
}
