package grasp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/mh"
	"metaheuristics/internal/mhtest"
	"metaheuristics/internal/rng"
)

func TestExecuteFindsGoodSolution(t *testing.T) {
	cfg := Config{
		Iterations:  50,
		Alpha:       0.5,
		LocalSearch: localsearch.DefaultConfig(),
	}
	eng, err := New(cfg)
	require.NoError(t, err)

	p := mhtest.NewHillClimb(10, 0)
	g := rng.NewComputer(1)

	res, err := eng.Execute(context.Background(), p, g)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Iterations)
	assert.Equal(t, 10, p.Value)
	assert.Equal(t, 0.0, p.Evaluate())
}

func TestExecuteInfeasibleLeavesProblemUnchanged(t *testing.T) {
	eng, err := New(DefaultConfig())
	require.NoError(t, err)

	p := mhtest.AlwaysInfeasible{}
	g := rng.NewComputer(3)

	before := p
	_, err = eng.Execute(context.Background(), p, g)
	require.Error(t, err)
	assert.True(t, mh.IsInfeasible(err))
	assert.Equal(t, before, p)
}

func TestExecuteNilArgs(t *testing.T) {
	eng, err := New(DefaultConfig())
	require.NoError(t, err)

	_, err = eng.Execute(context.Background(), nil, rng.NewComputer(1))
	assert.ErrorIs(t, err, mh.ErrNilProblem)

	_, err = eng.Execute(context.Background(), mhtest.NewHillClimb(3, 0), nil)
	assert.ErrorIs(t, err, mh.ErrNilRNG)
}

func TestConfigValidation(t *testing.T) {
	_, err := New(Config{Iterations: 0, Alpha: 0.5})
	require.Error(t, err)

	_, err = New(Config{Iterations: 10, Alpha: 1.5})
	require.Error(t, err)
}
