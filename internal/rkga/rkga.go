// Package rkga implements the Random-Key Genetic Algorithm: each generation
// replaces the population with NMutant fresh random individuals plus
// crossover children whose two parents are drawn uniformly and
// independently from the whole population.
package rkga

import (
	"context"
	"time"

	"metaheuristics/internal/ga"
	"metaheuristics/internal/mh"
	"metaheuristics/internal/rng"
)

// Engine runs RKGA against a Problem.
type Engine struct {
	Cfg  Config
	base *ga.Base
	next []mh.Individual
}

// New returns an Engine with a validated Config, ready to evolve
// chromosomes for problem.
func New(cfg Config, g rng.Generator, problem mh.Problem) (*Engine, error) {
	base, err := ga.NewBase(cfg, g, problem)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Cfg:  cfg,
		base: base,
		next: make([]mh.Individual, cfg.PopSize),
	}, nil
}

// Execute evolves the population for Cfg.NGenerations generations and
// decodes the best chromosome found into p, leaving p in that decoded
// state. It returns *mh.InfeasibleError (propagated from decode, per this
// module's design) if any chromosome fails to decode.
func (e *Engine) Execute(ctx context.Context, p mh.Problem) (ga.Result, error) {
	if p == nil {
		return ga.Result{}, mh.ErrNilProblem
	}
	start := time.Now()

	if err := e.base.InitializePopulation(); err != nil {
		return ga.Result{}, err
	}

	// next is backed by one contiguous chromosome buffer, resliced each
	// generation into the mutant and crossover partitions.
	backing := make(mh.Chromosome, e.Cfg.PopSize*e.Cfg.ChromSize)
	for i := range e.next {
		e.next[i].Chromosome = backing[i*e.Cfg.ChromSize : (i+1)*e.Cfg.ChromSize]
	}

	gen := 0
	for ; gen < e.Cfg.NGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			break
		}

		mutants := e.next[:e.Cfg.NMutant]
		crossovers := e.next[e.Cfg.NMutant:]

		if err := e.base.GenerateMutants(mutants); err != nil {
			return ga.Result{}, err
		}
		if err := e.base.GenerateCrossovers(crossovers, e.selectParents); err != nil {
			return ga.Result{}, err
		}

		e.base.Population, e.next = e.next, e.base.Population
	}

	best := e.base.Population[e.base.BestIndividual()]
	if err := p.Decode(best.Chromosome); err != nil {
		return ga.Result{}, err
	}

	res := ga.ToResult(best, e.base.Evaluations(), gen, map[string]any{
		"pop_size": e.Cfg.PopSize,
		"n_mutant": e.Cfg.NMutant,
	})
	res.Duration = time.Since(start)
	if ctxErr := ctx.Err(); ctxErr != nil {
		res.Meta["stopped"] = "context"
		return res, ctxErr
	}
	return res, nil
}

// selectParents draws two independent uniform indices into the population;
// the two may coincide.
func (e *Engine) selectParents() (int, int) {
	n := len(e.base.Population)
	p1 := e.base.Rng.NextInt(0, n-1)
	p2 := e.base.Rng.NextInt(0, n-1)
	return p1, p2
}
