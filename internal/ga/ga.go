// Package ga provides the population machinery random-key genetic
// algorithms (RKGA, BRKGA) are built from: chromosome generation, biased
// crossover, mutant injection and decode-then-evaluate, all driven through
// an mh.Problem and an rng.Generator. It does not run a generation loop
// itself, RKGA and BRKGA each supply their own parent-selection and
// elite-handling policy around Base.
package ga

import (
	"metaheuristics/internal/mh"
	"metaheuristics/internal/rng"
)

// Base holds the population and the operators shared by every random-key
// genetic algorithm engine in this module.
type Base struct {
	Cfg Config
	Rng rng.Generator

	// Population is the current generation, indexed [0, Cfg.PopSize).
	Population []mh.Individual

	scratch     mh.Problem
	evaluations int
}

// NewBase validates cfg and returns a Base with a freshly-allocated
// population of the right shape. problem is used only as a template:
// fitness computation decodes into a scratch instance from problem.Empty(),
// and problem itself is never mutated.
func NewBase(cfg Config, g rng.Generator, problem mh.Problem) (*Base, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, mh.ErrNilRNG
	}
	if problem == nil {
		return nil, mh.ErrNilProblem
	}
	if problem.ChromosomeSize() != cfg.ChromSize {
		return nil, mh.ConfigErrorf(
			"ga: ChromSize=%d не совпадает с ChromosomeSize задачи (%d)",
			cfg.ChromSize, problem.ChromosomeSize(),
		)
	}

	b := &Base{
		Cfg:        cfg,
		Rng:        g,
		Population: makeIndividuals(cfg.PopSize, cfg.ChromSize),
		scratch:    problem.Empty(),
	}
	return b, nil
}

func makeIndividuals(n, chromSize int) []mh.Individual {
	backing := make(mh.Chromosome, n*chromSize)
	out := make([]mh.Individual, n)
	for i := range out {
		out[i].Chromosome = backing[i*chromSize : (i+1)*chromSize]
	}
	return out
}

// Evaluations returns the total number of Decode+Evaluate calls made so far.
func (b *Base) Evaluations() int { return b.evaluations }

// randomChromosome fills chrom with fresh random keys.
func (b *Base) randomChromosome(chrom mh.Chromosome) {
	for i := range chrom {
		chrom[i] = b.Rng.NextReal()
	}
}

// evaluateIndividual decodes ind's chromosome against the scratch Problem
// and records the resulting fitness. Per this module's design, a chromosome
// that decodes to an infeasible solution is treated as fatal: the caller's
// run aborts rather than silently assigning -Inf fitness and continuing,
// since a Problem whose random-key encoding produces routinely-infeasible
// individuals needs its RCL/decode logic fixed, not papered over.
func (b *Base) evaluateIndividual(ind *mh.Individual) error {
	if err := b.scratch.Decode(ind.Chromosome); err != nil {
		return err
	}
	ind.Fitness = b.scratch.Evaluate()
	b.evaluations++
	return nil
}

// InitializePopulation fills every individual in b.Population with a random
// chromosome and evaluates it.
func (b *Base) InitializePopulation() error {
	for i := range b.Population {
		b.randomChromosome(b.Population[i].Chromosome)
		if err := b.evaluateIndividual(&b.Population[i]); err != nil {
			return err
		}
	}
	return nil
}

// GenerateMutants fills dst with fresh random individuals (evaluated).
func (b *Base) GenerateMutants(dst []mh.Individual) error {
	for i := range dst {
		b.randomChromosome(dst[i].Chromosome)
		if err := b.evaluateIndividual(&dst[i]); err != nil {
			return err
		}
	}
	return nil
}

// ParentSelector returns a pair of indices into b.Population to be crossed.
type ParentSelector func() (p1, p2 int)

// GenerateCrossovers fills dst with children produced by crossing parents
// chosen by selectParents, and evaluates each child.
func (b *Base) GenerateCrossovers(dst []mh.Individual, selectParents ParentSelector) error {
	for i := range dst {
		p1, p2 := selectParents()
		b.crossover(b.Population[p1].Chromosome, b.Population[p2].Chromosome, dst[i].Chromosome)
		if err := b.evaluateIndividual(&dst[i]); err != nil {
			return err
		}
	}
	return nil
}

// crossover fills child gene-wise, inheriting each gene from p1 with
// probability Cfg.InheritProb and from p2 otherwise. This is the biased
// uniform crossover both RKGA and BRKGA use; what differs between them is
// how p1 and p2 are chosen.
func (b *Base) crossover(p1, p2, child mh.Chromosome) {
	for i := range child {
		if b.Rng.NextReal() < b.Cfg.InheritProb {
			child[i] = p1[i]
		} else {
			child[i] = p2[i]
		}
	}
}

// BestIndividual returns the index of the fittest individual in
// b.Population, ties broken toward the lowest index.
func (b *Base) BestIndividual() int {
	best := 0
	for i := 1; i < len(b.Population); i++ {
		if b.Population[i].Fitness > b.Population[best].Fitness {
			best = i
		}
	}
	return best
}
