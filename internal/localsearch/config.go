package localsearch

import "metaheuristics/internal/mh"

// Config controls a local search run.
type Config struct {
	// MaxIterations bounds the number of improving moves the search will
	// make before giving up on convergence. <= 0 means unbounded (run
	// until no improving neighbour exists).
	MaxIterations int

	// Policy selects how BestNeighbour picks among improving neighbours.
	Policy mh.LocalSearchPolicy
}

// Validate checks Config's invariants.
func (c Config) Validate() error {
	return nil
}

// DefaultConfig returns a Config with best-improvement policy and no
// iteration cap.
func DefaultConfig() Config {
	return Config{MaxIterations: 0, Policy: mh.BestImprovement}
}
