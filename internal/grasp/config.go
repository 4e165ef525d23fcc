package grasp

import (
	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/mh"
)

// Config controls a GRASP run: a fixed number of construct-then-improve
// iterations, each keeping the best solution seen so far.
type Config struct {
	// Iterations is the number of construct+local-search rounds to run.
	Iterations int

	// Alpha is the RCL greediness parameter passed to RandomConstruct: 0 is
	// purely greedy, 1 is purely random.
	Alpha float64

	// LocalSearch configures the improvement phase applied after each
	// construction.
	LocalSearch localsearch.Config
}

// Validate checks Config's invariants.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return mh.ConfigErrorf("grasp: Iterations должно быть > 0 (получено %d)", c.Iterations)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return mh.ConfigErrorf("grasp: Alpha должно быть в диапазоне [0,1] (получено %f)", c.Alpha)
	}
	return c.LocalSearch.Validate()
}

// DefaultConfig returns a Config with 100 iterations, alpha=0.3 and
// best-improvement local search.
func DefaultConfig() Config {
	return Config{
		Iterations:  100,
		Alpha:       0.3,
		LocalSearch: localsearch.DefaultConfig(),
	}
}
