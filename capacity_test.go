package vmmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//greedyModel claims more interactions than it is allowed to until told to
//behave.
type greedyModel struct {
	*testModel
	limit  int
	behave bool
}

func (g *greedyModel) Interactions(i int, pos, orient []float64, out []int) int {
	if g.behave {
		return g.testModel.Interactions(i, pos, orient, out)
	}
	return g.limit + 1
}

//A Model listing more neighbours than MaxInteractions allows must fail the
//step deterministically, leaving the engine usable.
func TestCapacityError(t *testing.T) {
	box := box2D(10)
	tm := newTestModel(box, []float64{5, 5, 5.5, 5}, squareWellPair(2, 1.2))
	cfg := defaultConfig(2, 10)
	g := &greedyModel{testModel: tm, limit: cfg.MaxInteractions}
	v := mustNew(g, tm.flatCoords(), tm.flatOrients(), nil, cfg)

	err := v.Step()
	require.Error(t, err)
	//state must be untouched: growth fails before anything is applied
	assert.Equal(t, 5.0, tm.pos[0][0])
	assert.Equal(t, 5.5, tm.pos[1][0])
	assert.Zero(t, tm.postMoves)

	//the engine stays usable once the model behaves
	g.behave = true
	assert.NoError(t, v.Step())
}

//On a rejection the post-move hook runs exactly twice per cluster member:
//once to apply the trial and once to revert it.
func TestPostMoveRevertPattern(t *testing.T) {
	box := box2D(10)
	m := newTestModel(box, []float64{5, 5, 6.01, 5}, hardCorePair)
	cfg := defaultConfig(2, 10)
	v := mustNew(m, m.flatCoords(), m.flatOrients(), nil, cfg)

	//drive a single-particle trial straight into the neighbour's core
	v.proposeMove()
	v.params.seed = 0
	v.params.isRotation = false
	v.params.trialVector[0] = 1
	v.params.trialVector[1] = 0
	v.params.stepSize = 0.5
	v.cutOff = 1

	require.NoError(t, v.growCluster())
	require.False(t, v.isEarlyExit)
	m.postMoves = 0
	v.applyMove()
	accepted, _, err := v.decide()
	require.NoError(t, err)
	require.False(t, accepted, "overlapping trial must be rejected")
	v.revertMove()
	v.clearCluster()

	assert.Equal(t, 2, m.postMoves)
	assert.Equal(t, 5.0, m.pos[0][0])
}
