// Package localsearch implements iterative neighbourhood improvement over an
// mh.Problem: repeatedly replace the current solution with a better
// neighbour until none exists or an iteration cap is reached.
package localsearch

import (
	"context"
	"time"

	"metaheuristics/internal/mh"
)

// Engine runs local search against a Problem.
type Engine struct {
	Cfg Config
}

// New returns an Engine with a validated Config.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{Cfg: cfg}, nil
}

// Result summarizes one Execute call.
type Result struct {
	Improved           bool
	Iterations         int
	NeighboursExplored int
	FinalFitness       float64
	Duration           time.Duration
}

// Execute mutates p in place, replacing it with successively better
// neighbours until BestNeighbour reports no improving move, ctx is
// cancelled, or MaxIterations is reached. p's own state at return time is
// the local optimum found (or p unchanged, if no improving move ever
// existed).
func (e *Engine) Execute(ctx context.Context, p mh.Problem) (Result, error) {
	if p == nil {
		return Result{}, mh.ErrNilProblem
	}
	start := time.Now()

	res := Result{FinalFitness: p.Evaluate()}

	for e.Cfg.MaxIterations <= 0 || res.Iterations < e.Cfg.MaxIterations {
		if err := ctx.Err(); err != nil {
			res.Duration = time.Since(start)
			return res, err
		}

		candidate, found := p.BestNeighbour(e.Cfg.Policy)
		if !found {
			break
		}
		p.CopyFrom(candidate)
		res.Improved = true
		res.Iterations++
		res.FinalFitness = p.Evaluate()
	}

	res.NeighboursExplored = p.NeighboursExplored()
	res.Duration = time.Since(start)
	return res, nil
}
