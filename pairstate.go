package vmmc

import "math"

//pairState records one pair considered during a virtual move: the initiator
//a (the cluster member that attempted to recruit b), its partner b, and the
//pair interaction energy before and after the trial transform. newEnergy is
//NaN until the overlap/energy phase fills it in, except for unlinked pairs,
//where growth already knows the final energy.
//
//unlinked marks pairs that were offered a link and declined it. Their energy
//change updates the running total but stays out of the acceptance exponent:
//the no-link probability sampled during growth already carries their
//Metropolis weight, and counting them twice would break detailed balance.
type pairState struct {
	a, b                 int
	oldEnergy, newEnergy float64
	unlinked             bool
}

//pairStore is the append-only per-trial list of pairState entries plus the
//"already initiated" set that forbids duplicate initiation of the same pair.
//Pairs are keyed unordered: once a has initiated a link to b, neither (a,b)
//nor (b,a) may be recorded again, so no pair energy is ever counted twice.
type pairStore struct {
	nParticles int
	pairs      []pairState
	seen       map[int]bool
}

func newPairStore(nParticles, capacity int) *pairStore {
	return &pairStore{
		nParticles: nParticles,
		pairs:      make([]pairState, 0, capacity),
		seen:       make(map[int]bool, capacity),
	}
}

func (ps *pairStore) key(a, b int) int {
	if a > b {
		a, b = b, a
	}
	return a*ps.nParticles + b
}

func (ps *pairStore) has(a, b int) bool {
	return ps.seen[ps.key(a, b)]
}

//add records a pair initiated by a towards b with the given pre-move energy.
//Duplicate initiation is a bug in the engine, not a recoverable condition.
func (ps *pairStore) add(a, b int, oldEnergy float64, unlinked bool) *pairState {
	k := ps.key(a, b)
	if ps.seen[k] {
		panic(ErrDuplicatePair)
	}
	ps.seen[k] = true
	ps.pairs = append(ps.pairs, pairState{a: a, b: b, oldEnergy: oldEnergy, newEnergy: math.NaN(), unlinked: unlinked})
	return &ps.pairs[len(ps.pairs)-1]
}

func (ps *pairStore) reset() {
	ps.pairs = ps.pairs[:0]
	for k := range ps.seen {
		delete(ps.seen, k)
	}
}

const ErrDuplicatePair = PanicMsg("goVMMC: duplicate initiation of a pair link")
