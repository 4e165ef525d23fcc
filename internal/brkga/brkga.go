// Package brkga implements the Biased Random-Key Genetic Algorithm: each
// generation carries its top NElite individuals forward unchanged, injects
// NMutant fresh random individuals, and fills the rest with crossover
// children biased toward an elite parent.
package brkga

import (
	"context"
	"sort"
	"time"

	"metaheuristics/internal/ga"
	"metaheuristics/internal/mh"
	"metaheuristics/internal/rng"
)

// Engine runs BRKGA against a Problem.
type Engine struct {
	Cfg  Config
	base *ga.Base
	next []mh.Individual
}

// New returns an Engine with a validated Config, ready to evolve
// chromosomes for problem.
func New(cfg Config, g rng.Generator, problem mh.Problem) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := ga.NewBase(cfg.Config, g, problem)
	if err != nil {
		return nil, err
	}
	backing := make(mh.Chromosome, cfg.PopSize*cfg.ChromSize)
	next := make([]mh.Individual, cfg.PopSize)
	for i := range next {
		next[i].Chromosome = backing[i*cfg.ChromSize : (i+1)*cfg.ChromSize]
	}
	return &Engine{Cfg: cfg, base: base, next: next}, nil
}

// Execute evolves the population for Cfg.NGenerations generations and
// decodes the best chromosome found into p. The population is physically
// reordered elite-first after every generation (rather than tracked via a
// separate index set): with NElite typically a small fraction of PopSize,
// re-sorting the whole slice each generation is simpler than maintaining a
// parallel elite index structure and costs the same O(n log n) either way.
func (e *Engine) Execute(ctx context.Context, p mh.Problem) (ga.Result, error) {
	if p == nil {
		return ga.Result{}, mh.ErrNilProblem
	}
	start := time.Now()

	if err := e.base.InitializePopulation(); err != nil {
		return ga.Result{}, err
	}
	reorderEliteFirst(e.base.Population)

	gen := 0
	for ; gen < e.Cfg.NGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			break
		}

		nElite := e.Cfg.NElite
		nMutant := e.Cfg.NMutant

		copy(e.next[:nElite], e.base.Population[:nElite])

		mutants := e.next[nElite : nElite+nMutant]
		if err := e.base.GenerateMutants(mutants); err != nil {
			return ga.Result{}, err
		}

		crossovers := e.next[nElite+nMutant:]
		if err := e.base.GenerateCrossovers(crossovers, e.selectParents); err != nil {
			return ga.Result{}, err
		}

		e.base.Population, e.next = e.next, e.base.Population
		reorderEliteFirst(e.base.Population)
	}

	best := e.base.Population[0]
	if err := p.Decode(best.Chromosome); err != nil {
		return ga.Result{}, err
	}

	res := ga.ToResult(best, e.base.Evaluations(), gen, map[string]any{
		"pop_size": e.Cfg.PopSize,
		"n_elite":  e.Cfg.NElite,
		"n_mutant": e.Cfg.NMutant,
	})
	res.Duration = time.Since(start)
	if ctxErr := ctx.Err(); ctxErr != nil {
		res.Meta["stopped"] = "context"
		return res, ctxErr
	}
	return res, nil
}

// selectParents draws the first parent from the elite partition
// [0, NElite) and the second from the non-elite partition
// [NElite, PopSize).
func (e *Engine) selectParents() (int, int) {
	nElite := e.Cfg.NElite
	popSize := e.Cfg.PopSize
	p1 := e.base.Rng.NextInt(0, nElite-1)
	p2 := e.base.Rng.NextInt(nElite, popSize-1)
	return p1, p2
}

// reorderEliteFirst sorts pop by descending fitness in place, using a
// stable sort so equal-fitness individuals keep their prior relative order
// (i.e. ties are broken toward the individual that was already ranked
// higher, which is equivalent to breaking ties by ascending original
// index on the very first sort).
func reorderEliteFirst(pop []mh.Individual) {
	sort.SliceStable(pop, func(i, j int) bool {
		return pop[i].Fitness > pop[j].Fitness
	})
}
