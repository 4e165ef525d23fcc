package brkga

import (
	"metaheuristics/internal/ga"
	"metaheuristics/internal/mh"
)

// Config extends ga.Config with the elite partition size BRKGA needs on top
// of the shared population/mutant/crossover/inheritance parameters.
type Config struct {
	ga.Config

	// NElite is the number of top individuals, by fitness, carried into the
	// next generation unchanged and eligible as a first crossover parent.
	NElite int
}

// Validate checks Config's invariants, including the base ga.Config's, plus
// BRKGA's own requirement that the elite, mutant and crossover partitions
// fit inside the population (the "are_set_sizes_correct" check).
func (c Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.NElite <= 0 || c.NElite >= c.PopSize {
		return mh.ConfigErrorf("brkga: размер элиты должен быть в диапазоне (0, population) (получено %d)", c.NElite)
	}
	if c.NElite+c.NMutant >= c.PopSize {
		return mh.ConfigErrorf(
			"brkga: NElite+NMutant должно быть строго меньше population, иначе не останется места для потомков от скрещивания (получено %d+%d >= %d)",
			c.NElite, c.NMutant, c.PopSize,
		)
	}
	return nil
}

// DefaultConfig returns a Config with 100 individuals, 20 elite, 15 mutant,
// 200 generations and a 0.7 inheritance bias.
func DefaultConfig() Config {
	return Config{
		Config: ga.DefaultConfig(),
		NElite: 20,
	}
}
