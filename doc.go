/*
 * doc.go, part of goPowder.
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

//Package powder simulates powder diffraction patterns (neutron and X-ray)
//for crystalline materials in the kinematic approximation. Given the atomic
//basis and lattice constants of a unit cell it computes the reciprocal
//lattice vectors observable inside an angular window, the structure factor
//and relative intensity of each reflection, merges symmetry-equivalent
//reflections into peaks with multiplicities, and can expand the peak table
//into a continuous intensity-versus-angle curve comparable to an
//experimental diffractogram.
//
//The package only deals with fully materialized, in-memory data: reading
//basis, lattice and form-factor tables from files is provided in files.go,
//supercell and substitutional-disorder construction lives in the alloy
//subpackage, and plotting in the patternplot subpackage.
package powder
