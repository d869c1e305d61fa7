/*
 * interfaces.go, part of govmmc.
 *
 * Copyright 2016 Raul Mera
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

package vmmc

//Model is the capability set the engine needs from a concrete interaction
//potential. All positions and orientations passed to the methods are
//hypothetical: they describe the configuration the engine wants evaluated,
//which need not be the committed one. All other particles are always taken at
//their current committed state.
//
//Energies are in units of kBT. A return of Infinity (or anything above the
//overlap threshold) signals a hard-core overlap.
type Model interface {

	//Energy returns the total interaction energy felt by particle i when
	//placed at the given position with the given orientation.
	Energy(i int, pos, orient []float64) float64

	//PairEnergy returns the pair interaction energy between particles i and
	//j in the given hypothetical configuration. It must be symmetric in its
	//arguments to numerical tolerance.
	PairEnergy(i int, posi, orienti []float64, j int, posj, orientj []float64) float64

	//Interactions writes the indices of the neighbours particle i interacts
	//with when placed at the given position/orientation into out, and
	//returns their number. It must not list i itself nor list duplicates,
	//and must not write past len(out).
	Interactions(i int, pos, orient []float64, out []int) int

	//PostMove tells the model that particle i is now to be considered at
	//the given position/orientation for every subsequent call. It is called
	//once per cluster member to apply a trial move, and, if the move is
	//rejected, once more per member to revert it.
	PostMove(i int, pos, orient []float64)
}

//NonPairwiser is an optional extension of Model for potentials with
//non-pairwise energy contributions (external fields, many-body terms). When
//implemented, the difference of NonPairwise between the new and old
//configuration of every cluster member enters the acceptance test.
type NonPairwiser interface {
	NonPairwise(i int, pos, orient []float64) float64
}

//Bounder is an optional extension of Model for custom boundary conditions,
//e.g. confining walls. A true return for any trial-moved particle rejects
//the move outright.
type Bounder interface {
	OutsideBoundary(i int, pos, orient []float64) bool
}
