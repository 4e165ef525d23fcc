// Package grasp implements the Greedy Randomized Adaptive Search Procedure:
// repeated randomized construction followed by local search, keeping the
// best solution found across iterations.
package grasp

import (
	"context"
	"time"

	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/mh"
	"metaheuristics/internal/rng"
)

// Engine runs GRASP against a Problem.
type Engine struct {
	Cfg Config
	ls  *localsearch.Engine
}

// New returns an Engine with a validated Config.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ls, err := localsearch.New(cfg.LocalSearch)
	if err != nil {
		return nil, err
	}
	return &Engine{Cfg: cfg, ls: ls}, nil
}

// Result summarizes one Execute call.
type Result struct {
	Iterations         int
	FeasibleIterations int
	NeighboursExplored int
	BestFitness        float64
	Duration           time.Duration
}

// Execute runs Cfg.Iterations rounds of RandomConstruct+local search against
// scratch copies of p, and on success overwrites p with the best solution
// found. If every round is infeasible, p is left unchanged and Execute
// returns an *mh.InfeasibleError.
func (e *Engine) Execute(ctx context.Context, p mh.Problem, g rng.Generator) (Result, error) {
	if p == nil {
		return Result{}, mh.ErrNilProblem
	}
	if g == nil {
		return Result{}, mh.ErrNilRNG
	}
	start := time.Now()

	var res Result
	best := p.Empty()
	bestFitness := 0.0
	haveBest := false
	cand := p.Empty()

	for i := 0; i < e.Cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			res.Duration = time.Since(start)
			return res, err
		}
		res.Iterations++

		if err := cand.RandomConstruct(g, e.Cfg.Alpha); err != nil {
			if mh.IsInfeasible(err) {
				continue
			}
			res.Duration = time.Since(start)
			return res, err
		}

		if _, err := e.ls.Execute(ctx, cand); err != nil {
			res.Duration = time.Since(start)
			return res, err
		}

		fit := cand.Evaluate()
		res.FeasibleIterations++
		res.NeighboursExplored += cand.NeighboursExplored()

		if !haveBest || fit > bestFitness {
			haveBest = true
			bestFitness = fit
			best.CopyFrom(cand)
		}
	}

	res.Duration = time.Since(start)

	if !haveBest {
		return res, mh.Infeasiblef("grasp: no feasible solution found in %d iterations", e.Cfg.Iterations)
	}

	p.CopyFrom(best)
	res.BestFitness = bestFitness
	return res, nil
}
