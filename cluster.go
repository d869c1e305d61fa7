/*
 * cluster.go, part of govmmc.
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

import (
	"fmt"
	"math"

	"github.com/rmera/govmmc/vec"
)

//growCluster grows the trial cluster from the seed with an explicit work
//stack, forming stochastic links to neighbours and recruiting the linked
//particles. The traversal is depth first; the per-particle isMoving flag is
//the visited set. Growth stops when the stack drains, when a frustrated link
//forces an early rejection, or when the cluster outgrows the per-trial size
//cutoff.
func (v *VMMC) growCluster() error {
	v.initiate(v.params.seed)
	for len(v.workStack) > 0 && !v.isEarlyExit {
		a := v.workStack[len(v.workStack)-1]
		v.workStack = v.workStack[:len(v.workStack)-1]
		if err := v.linkNeighbours(a); err != nil {
			return errDecorate(err, "growCluster")
		}
	}
	return nil
}

//initiate recruits particle i into the cluster and computes its trial state.
func (v *VMMC) initiate(i int) {
	p := &v.particles[i]
	p.isMoving = true
	v.moveList = append(v.moveList, i)
	v.workStack = append(v.workStack, i)
	v.transform(p.pos, p.orient, p.postMovePos, p.postMoveOrient)
}

//linkNeighbours attempts a virtual link from cluster member a to each of its
//neighbours at the pre-move configuration.
func (v *VMMC) linkNeighbours(a int) error {
	pa := &v.particles[a]
	k := v.model.Interactions(a, pa.pos, pa.orient, v.nbuf)
	if k > v.cfg.MaxInteractions {
		return Error{fmt.Sprintf("Model listed %d interactions for particle %d, %d allowed", k, a, v.cfg.MaxInteractions), []string{"linkNeighbours"}, false}
	}
	for _, b := range v.nbuf[:k] {
		if v.isEarlyExit {
			return nil
		}
		if v.pairs.has(a, b) {
			continue
		}
		pb := &v.particles[b]
		eOld := v.model.PairEnergy(a, pa.pos, pa.orient, b, pb.pos, pb.orient)
		eFwd := v.model.PairEnergy(a, pa.postMovePos, pa.postMoveOrient, b, pb.pos, pb.orient)
		if math.IsNaN(eOld) || math.IsNaN(eFwd) {
			panic(ErrNaNEnergy)
		}
		pForward := linkProbability(eOld, eFwd)
		if v.RNG.Float64() >= pForward {
			//No link. If the pair interacts before or after the move its
			//energy change still has to reach the running total, so record
			//it as unlinked; growth already knows its final energy, since
			//an undragged b stays put.
			if eOld != 0 || eFwd != 0 {
				st := v.pairs.add(a, b, eOld, true)
				st.newEnergy = eFwd
			}
			continue
		}
		v.pairs.add(a, b, eOld, false)
		if pb.isMoving {
			//the pair is already internal to the cluster; nothing to recruit
			continue
		}
		//Test the reverse link from the perspective of b being dragged along.
		v.transform(pb.pos, pb.orient, v.hypoPos, v.hypoOrient)
		eRev := v.model.PairEnergy(a, pa.postMovePos, pa.postMoveOrient, b, v.hypoPos, v.hypoOrient)
		if math.IsNaN(eRev) {
			panic(ErrNaNEnergy)
		}
		pReverse := linkProbability(eFwd, eRev)
		if pReverse < pForward {
			v.nFrustrated++
			if pReverse <= 0 {
				v.isEarlyExit = true
				return nil
			}
			v.frustrationW *= pReverse / pForward
		}
		if len(v.moveList) == v.cutOff {
			//recruiting b would outgrow the sampled cluster-size cutoff
			v.isEarlyExit = true
			return nil
		}
		v.initiate(b)
	}
	return nil
}

//linkProbability is the Metropolis-style link formation probability
//max(0, 1-exp(-(eTo-eFrom))), with beta equal to one. Energies at or above
//the overlap sentinel form (or refuse, when on the From side) the link with
//certainty.
func linkProbability(eFrom, eTo float64) float64 {
	if eTo >= EnergyOverlap {
		return 1
	}
	if eFrom >= EnergyOverlap {
		return 0
	}
	p := 1 - math.Exp(eFrom-eTo)
	if p < 0 {
		return 0
	}
	return p
}

//transform computes the image of a particle at pos/orient under the trial
//move, writing the result into outPos/outOrient. Positions are first taken
//to their minimum-image representative relative to the seed so that
//rotations of clusters spanning a periodic boundary stay rigid; the result
//is wrapped back into the primary image.
func (v *VMMC) transform(pos, orient, outPos, outOrient []float64) {
	d := v.dimension
	seedPos := v.particles[v.params.seed].pos
	rel := v.scratch
	for k := 0; k < d; k++ {
		rel[k] = pos[k] - seedPos[k]
	}
	v.box.MinimumImage(rel)
	if !v.params.isRotation {
		for k := 0; k < d; k++ {
			outPos[k] = seedPos[k] + rel[k] + v.params.stepSize*v.params.trialVector[k]
		}
		v.box.Wrap(outPos)
		copy(outOrient, orient)
		return
	}
	disp := v.scratch2
	vec.Rotate(rel, v.params.trialVector, v.params.stepSize, disp)
	for k := 0; k < d; k++ {
		outPos[k] = seedPos[k] + rel[k] + disp[k]
	}
	v.box.Wrap(outPos)
	vec.Rotate(orient, v.params.trialVector, v.params.stepSize, disp)
	for k := 0; k < d; k++ {
		outOrient[k] = orient[k] + disp[k]
	}
	if math.Abs(vec.Norm(outOrient)-1) > orientTol {
		vec.Normalize(outOrient)
	}
}
