package rkga

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaheuristics/internal/mh"
	"metaheuristics/internal/mhtest"
	"metaheuristics/internal/rng"
)

func TestExecuteImprovesFitnessOverGenerations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PopSize = 30
	cfg.ChromSize = 6
	cfg.NGenerations = 40
	cfg.NMutant = 5
	cfg.InheritProb = 0.7

	problem := mhtest.NewSumGenes(6)
	eng, err := New(cfg, rng.NewComputer(11), problem)
	require.NoError(t, err)

	res, err := eng.Execute(context.Background(), problem)
	require.NoError(t, err)

	assert.Equal(t, 40, res.Generations)
	assert.Greater(t, res.BestFitness, 0.5)
	assert.Equal(t, res.BestFitness, problem.Evaluate())
}

func TestExecutePropagatesInfeasibleDecode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PopSize = 5
	cfg.ChromSize = 1
	cfg.NGenerations = 3
	cfg.NMutant = 1

	eng, err := New(cfg, rng.NewComputer(1), infeasibleDecoder{size: 1})
	require.NoError(t, err)

	_, err = eng.Execute(context.Background(), infeasibleDecoder{size: 1})
	require.Error(t, err)
	assert.True(t, mh.IsInfeasible(err))
}

func TestSelectParentsAllowsCoincidingIndices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PopSize = 5
	cfg.ChromSize = 6
	cfg.NGenerations = 1
	cfg.NMutant = 1
	problem := mhtest.NewSumGenes(cfg.ChromSize)

	eng, err := New(cfg, rng.NewComputer(2), problem)
	require.NoError(t, err)
	require.NoError(t, eng.base.InitializePopulation())

	sawCoincidence := false
	for i := 0; i < 200; i++ {
		p1, p2 := eng.selectParents()
		assert.GreaterOrEqual(t, p1, 0)
		assert.Less(t, p1, cfg.PopSize)
		assert.GreaterOrEqual(t, p2, 0)
		assert.Less(t, p2, cfg.PopSize)
		if p1 == p2 {
			sawCoincidence = true
		}
	}
	assert.True(t, sawCoincidence, "expected independent draws to coincide at least once over 200 tries on a 5-member population")
}

func TestExecuteRespectsContextCancellation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PopSize = 10
	cfg.ChromSize = 4
	cfg.NGenerations = 1000
	cfg.NMutant = 2

	problem := mhtest.NewSumGenes(4)
	eng, err := New(cfg, rng.NewComputer(5), problem)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = eng.Execute(ctx, problem)
	assert.ErrorIs(t, err, context.Canceled)
}

// infeasibleDecoder is a minimal mh.Problem whose Decode always fails,
// exercising the "decode Infeasible is fatal" behaviour.
type infeasibleDecoder struct{ size int }

func (d infeasibleDecoder) Empty() mh.Problem                                       { return d }
func (d infeasibleDecoder) Clone() mh.Problem                                       { return d }
func (d infeasibleDecoder) CopyFrom(mh.Problem)                                     {}
func (d infeasibleDecoder) GreedyConstruct() error                                  { return nil }
func (d infeasibleDecoder) RandomConstruct(rng.Generator, float64) error            { return nil }
func (d infeasibleDecoder) BestNeighbour(mh.LocalSearchPolicy) (mh.Problem, bool)   { return nil, false }
func (d infeasibleDecoder) Decode(mh.Chromosome) error                              { return mh.Infeasiblef("always infeasible") }
func (d infeasibleDecoder) Evaluate() float64                                       { return 0 }
func (d infeasibleDecoder) ChromosomeSize() int                                     { return d.size }
func (d infeasibleDecoder) NeighboursExplored() int                                 { return 0 }
func (d infeasibleDecoder) SanityCheck() bool                                       { return false }
