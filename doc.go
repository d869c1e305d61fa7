/*
 * doc.go, part of govmmc.
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

/*Package vmmc implements Virtual-Move Monte Carlo (VMMC) sampling of systems of
interacting particles in two or three periodic dimensions.

VMMC accelerates equilibrium sampling of strongly attractive particle systems
by proposing collective moves: instead of displacing a single particle, a
cluster of mutually bonded particles is grown stochastically and moved as a
rigid body, with acceptance rules that obey super-detailed balance and include
an approximate hydrodynamic (Stokes) damping factor. See

	Avoiding unphysical kinetic traps in Monte Carlo simulations of strongly
	attractive particles, S. Whitelam and P.L. Geissler,
	Journal of Chemical Physics, 127, 154101 (2007).

	Approximating the dynamical evolution of systems of strongly interacting
	overdamped particles, S. Whitelam, Molecular Simulation, 37 (7) (2011).

The library is potential-agnostic. The concrete interaction model is supplied
through the Model interface (particle energy, pair energy, neighbour
enumeration and a post-move notification). Cell-list neighbour indexing for
the bundled demonstration potentials lives in the cell subpackage, the
potentials themselves in the potential subpackage, and trajectory output in
traj.

All energies are in units of kBT (beta is one). Distances are in units of the
particle diameter. Positions live in box coordinates, each component in
[0, L). The engine is single threaded; callbacks are invoked synchronously
from the calling goroutine.
*/
package vmmc
