package ga

import "metaheuristics/internal/mh"

// Config carries the parameters shared by every random-key genetic
// algorithm built on top of Base (RKGA, BRKGA): population size, chromosome
// length, generation count, mutant count, and the biased-inheritance
// probability used by crossover.
type Config struct {
	// PopSize is the number of individuals held in the population. Must be
	// > 1.
	PopSize int

	// ChromSize is the number of genes in a chromosome; must match the
	// target Problem's ChromosomeSize().
	ChromSize int

	// NGenerations is the number of generations to evolve.
	NGenerations int

	// NMutant is the number of freshly-random individuals injected each
	// generation. Must satisfy 0 <= NMutant < PopSize.
	NMutant int

	// InheritProb is the probability that a crossover child inherits a gene
	// from its first (in BRKGA: elite) parent rather than its second.
	InheritProb float64
}

// Validate checks Config's invariants.
func (c Config) Validate() error {
	if c.PopSize <= 1 {
		return mh.ConfigErrorf("ga: размер популяции должен быть > 1 (получено %d)", c.PopSize)
	}
	if c.ChromSize <= 0 {
		return mh.ConfigErrorf("ga: размер хромосомы должен быть > 0 (получено %d)", c.ChromSize)
	}
	if c.NGenerations <= 0 {
		return mh.ConfigErrorf("ga: количество поколений должно быть > 0 (получено %d)", c.NGenerations)
	}
	if c.NMutant < 0 || c.NMutant >= c.PopSize {
		return mh.ConfigErrorf("ga: число мутантов должно быть в диапазоне [0, population) (получено %d)", c.NMutant)
	}
	if c.InheritProb < 0 || c.InheritProb > 1 {
		return mh.ConfigErrorf("ga: вероятность наследования должна быть в диапазоне [0,1] (получено %f)", c.InheritProb)
	}
	return nil
}

// DefaultConfig returns a Config with 100 individuals, 200 generations, 15
// mutants per generation and a 0.7 inheritance bias.
func DefaultConfig() Config {
	return Config{
		PopSize:      100,
		ChromSize:    1,
		NGenerations: 200,
		NMutant:      15,
		InheritProb:  0.7,
	}
}
