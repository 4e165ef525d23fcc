package centres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaheuristics/internal/grasp"
	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/mh"
	"metaheuristics/internal/rng"
)

func smallInstance(t *testing.T) *Instance {
	t.Helper()
	demand := []int{3, 4, 2, 5}
	dist := [][]float64{
		{1.0, 5.0, 9.0},
		{2.0, 1.0, 8.0},
		{6.0, 2.0, 1.0},
		{4.0, 3.0, 2.0},
	}
	centreTypes := []CentreType{
		{Capacity: 6, InstallCost: 10},
		{Capacity: 10, InstallCost: 18},
		{Capacity: 20, InstallCost: 30},
	}
	inst, err := NewInstance(demand, dist, centreTypes)
	require.NoError(t, err)
	return inst
}

func TestNewInstanceSortsCentreTypesByCost(t *testing.T) {
	inst := smallInstance(t)
	for i := 1; i < len(inst.CentreTypes); i++ {
		assert.LessOrEqual(t, inst.CentreTypes[i-1].InstallCost, inst.CentreTypes[i].InstallCost)
	}
}

func TestGreedyConstructAssignsEveryCity(t *testing.T) {
	inst := smallInstance(t)
	s, err := NewSolver(inst)
	require.NoError(t, err)

	require.NoError(t, s.GreedyConstruct())
	for _, loc := range s.Assignments() {
		assert.GreaterOrEqual(t, loc, 0)
	}
}

func TestRandomConstructRespectsRCLInclusionLaw(t *testing.T) {
	inst := smallInstance(t)
	s, err := NewSolver(inst)
	require.NoError(t, err)

	g := rng.NewComputer(9)
	require.NoError(t, s.RandomConstruct(g, 0.2))

	for c, loc := range s.Assignments() {
		chosenCost := inst.Dist[c][loc]
		minCost, maxCost := chosenCost, chosenCost
		for l := 0; l < inst.NLocations; l++ {
			d := inst.Dist[c][l]
			if d < minCost {
				minCost = d
			}
			if d > maxCost {
				maxCost = d
			}
		}
		assert.LessOrEqual(t, chosenCost, minCost+0.2*(maxCost-minCost)+1e-9)
	}
}

func TestRandomConstructAlphaZeroIsGreedyOnCost(t *testing.T) {
	inst := smallInstance(t)
	s, err := NewSolver(inst)
	require.NoError(t, err)

	g := rng.NewComputer(1)
	require.NoError(t, s.RandomConstruct(g, 0))

	for c, loc := range s.Assignments() {
		chosenCost := inst.Dist[c][loc]
		for l := 0; l < inst.NLocations; l++ {
			assert.LessOrEqual(t, chosenCost, inst.Dist[c][l]+1e-9)
		}
	}
}

func TestDecodeInfeasibleWhenOverloaded(t *testing.T) {
	demand := []int{100}
	dist := [][]float64{{1.0}}
	centreTypes := []CentreType{{Capacity: 5, InstallCost: 1}}
	inst, err := NewInstance(demand, dist, centreTypes)
	require.NoError(t, err)

	s, err := NewSolver(inst)
	require.NoError(t, err)

	err = s.Decode(mh.Chromosome{0.5})
	require.Error(t, err)
	assert.True(t, mh.IsInfeasible(err))
}

func TestLocalSearchImprovesGreedySolution(t *testing.T) {
	inst := smallInstance(t)
	s, err := NewSolver(inst)
	require.NoError(t, err)
	require.NoError(t, s.GreedyConstruct())

	before := s.Evaluate()

	eng, err := localsearch.New(localsearch.DefaultConfig())
	require.NoError(t, err)
	_, err = eng.Execute(context.Background(), s)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, s.Evaluate(), before)
}

func TestGraspFindsFeasibleSolution(t *testing.T) {
	inst := smallInstance(t)
	s, err := NewSolver(inst)
	require.NoError(t, err)

	cfg := grasp.DefaultConfig()
	cfg.Iterations = 20
	eng, err := grasp.New(cfg)
	require.NoError(t, err)

	g := rng.NewComputer(3)
	res, err := eng.Execute(context.Background(), s, g)
	require.NoError(t, err)
	assert.Greater(t, res.FeasibleIterations, 0)
	for _, loc := range s.Assignments() {
		assert.GreaterOrEqual(t, loc, 0)
	}
}

// TestSanityAfterRun exercises testable property 10: whatever route produces
// a solution (greedy construction, random construction, local search
// starting from a greedy one, or GRASP), SanityCheck must hold over the
// result.
func TestSanityAfterRun(t *testing.T) {
	inst := smallInstance(t)

	t.Run("greedy", func(t *testing.T) {
		s, err := NewSolver(inst)
		require.NoError(t, err)
		require.NoError(t, s.GreedyConstruct())
		assert.True(t, s.SanityCheck())
	})

	t.Run("random", func(t *testing.T) {
		s, err := NewSolver(inst)
		require.NoError(t, err)
		require.NoError(t, s.RandomConstruct(rng.NewComputer(11), 0.3))
		assert.True(t, s.SanityCheck())
	})

	t.Run("local_search", func(t *testing.T) {
		s, err := NewSolver(inst)
		require.NoError(t, err)
		require.NoError(t, s.GreedyConstruct())

		eng, err := localsearch.New(localsearch.DefaultConfig())
		require.NoError(t, err)
		_, err = eng.Execute(context.Background(), s)
		require.NoError(t, err)
		assert.True(t, s.SanityCheck())
	})

	t.Run("grasp", func(t *testing.T) {
		s, err := NewSolver(inst)
		require.NoError(t, err)

		cfg := grasp.DefaultConfig()
		cfg.Iterations = 20
		eng, err := grasp.New(cfg)
		require.NoError(t, err)

		_, err = eng.Execute(context.Background(), s, rng.NewComputer(7))
		require.NoError(t, err)
		assert.True(t, s.SanityCheck())
	})

	t.Run("unassigned_fails", func(t *testing.T) {
		s, err := NewSolver(inst)
		require.NoError(t, err)
		assert.False(t, s.SanityCheck())
	})
}
