package vmmc

//particle holds the engine-side bookkeeping for one particle during a
//virtual move. pos/orient are the committed state and double as the
//pre-move snapshot while a trial is in flight; postMovePos/postMoveOrient
//hold the trial state. Trial positions are always derived from the
//minimum-image representative relative to the seed, which keeps rigid-body
//rotations consistent when the cluster spans a periodic boundary.
type particle struct {
	index          int
	isMoving       bool
	pos            []float64
	orient         []float64
	postMovePos    []float64
	postMoveOrient []float64
}

func newParticle(index, dimension int) particle {
	return particle{
		index:          index,
		pos:            make([]float64, dimension),
		orient:         make([]float64, dimension),
		postMovePos:    make([]float64, dimension),
		postMoveOrient: make([]float64, dimension),
	}
}
