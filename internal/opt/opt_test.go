package opt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaheuristics/internal/brkga"
	"metaheuristics/internal/grasp"
	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/mhtest"
	"metaheuristics/internal/rkga"
	"metaheuristics/internal/rng"
)

func TestLocalSearchOptimizer(t *testing.T) {
	eng, err := localsearch.New(localsearch.DefaultConfig())
	require.NoError(t, err)

	o := LocalSearchOptimizer{Engine: eng}
	p := mhtest.NewHillClimb(8, 0)

	res, err := o.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.BestFitness)
}

func TestGraspOptimizer(t *testing.T) {
	cfg := grasp.DefaultConfig()
	cfg.Iterations = 10
	eng, err := grasp.New(cfg)
	require.NoError(t, err)

	g := rng.NewComputer(1)
	o := GraspOptimizer{Engine: eng, Rng: g}
	p := mhtest.NewHillClimb(8, 0)

	res, err := o.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Iterations)
}

func TestRKGAOptimizer(t *testing.T) {
	p := mhtest.NewSumGenes(4)
	cfg := rkga.DefaultConfig()
	cfg.PopSize = 10
	cfg.ChromSize = 4
	cfg.NGenerations = 5
	cfg.NMutant = 2

	eng, err := rkga.New(cfg, rng.NewComputer(2), p)
	require.NoError(t, err)

	o := RKGAOptimizer{Engine: eng}
	res, err := o.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Iterations)
}

func TestBRKGAOptimizer(t *testing.T) {
	p := mhtest.NewSumGenes(4)
	cfg := brkga.DefaultConfig()
	cfg.PopSize = 10
	cfg.ChromSize = 4
	cfg.NGenerations = 5
	cfg.NElite = 2
	cfg.NMutant = 2

	eng, err := brkga.New(cfg, rng.NewComputer(2), p)
	require.NoError(t, err)

	o := BRKGAOptimizer{Engine: eng}
	res, err := o.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Iterations)
}
