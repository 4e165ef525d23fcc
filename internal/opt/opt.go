// Package opt unifies the four algorithm engines (local search, GRASP,
// RKGA, BRKGA) behind one Optimizer interface, so cmd/centres and
// internal/bench can run any of them against an mh.Problem without knowing
// which one they got.
package opt

import (
	"context"
	"time"

	"metaheuristics/internal/brkga"
	"metaheuristics/internal/grasp"
	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/mh"
	"metaheuristics/internal/rkga"
	"metaheuristics/internal/rng"
)

// Optimizer runs one algorithm engine against p, mutating it in place, and
// reports a uniform Result.
type Optimizer interface {
	Solve(ctx context.Context, p mh.Problem) (Result, error)
}

// Result is the outcome of one Optimizer.Solve call.
type Result struct {
	BestFitness float64
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// LocalSearchOptimizer adapts a localsearch.Engine to Optimizer. Since
// local search only relocates an already-complete solution, Solve builds
// one with GreedyConstruct before handing p to the engine.
type LocalSearchOptimizer struct{ Engine *localsearch.Engine }

func (o LocalSearchOptimizer) Solve(ctx context.Context, p mh.Problem) (Result, error) {
	if err := p.GreedyConstruct(); err != nil {
		return Result{}, err
	}
	res, err := o.Engine.Execute(ctx, p)
	return Result{
		BestFitness: res.FinalFitness,
		Iterations:  res.Iterations,
		Duration:    res.Duration,
		Meta:        map[string]any{"neighbours_explored": res.NeighboursExplored},
	}, err
}

// GraspOptimizer adapts a grasp.Engine to Optimizer.
type GraspOptimizer struct {
	Engine *grasp.Engine
	Rng    rng.Generator
}

func (o GraspOptimizer) Solve(ctx context.Context, p mh.Problem) (Result, error) {
	res, err := o.Engine.Execute(ctx, p, o.Rng)
	return Result{
		BestFitness: res.BestFitness,
		Iterations:  res.Iterations,
		Duration:    res.Duration,
		Meta: map[string]any{
			"feasible_iterations": res.FeasibleIterations,
			"neighbours_explored": res.NeighboursExplored,
		},
	}, err
}

// RKGAOptimizer adapts an rkga.Engine to Optimizer.
type RKGAOptimizer struct{ Engine *rkga.Engine }

func (o RKGAOptimizer) Solve(ctx context.Context, p mh.Problem) (Result, error) {
	res, err := o.Engine.Execute(ctx, p)
	return Result{
		BestFitness: res.BestFitness,
		Evaluations: res.Evaluations,
		Iterations:  res.Generations,
		Duration:    res.Duration,
		Meta:        res.Meta,
	}, err
}

// BRKGAOptimizer adapts a brkga.Engine to Optimizer.
type BRKGAOptimizer struct{ Engine *brkga.Engine }

func (o BRKGAOptimizer) Solve(ctx context.Context, p mh.Problem) (Result, error) {
	res, err := o.Engine.Execute(ctx, p)
	return Result{
		BestFitness: res.BestFitness,
		Evaluations: res.Evaluations,
		Iterations:  res.Generations,
		Duration:    res.Duration,
		Meta:        res.Meta,
	}, err
}
