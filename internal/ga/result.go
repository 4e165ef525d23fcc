package ga

import (
	"time"

	"metaheuristics/internal/mh"
)

// Result summarizes a completed genetic algorithm run. RKGA and BRKGA both
// return this shape from Execute.
type Result struct {
	BestChromosome mh.Chromosome
	BestFitness    float64
	Evaluations    int
	Generations    int
	Duration       time.Duration
	Meta           map[string]any
}

// ToResult copies best's chromosome and packages the run's counters into a
// Result.
func ToResult(best mh.Individual, evaluations, generations int, meta map[string]any) Result {
	return Result{
		BestChromosome: best.Chromosome.Clone(),
		BestFitness:    best.Fitness,
		Evaluations:    evaluations,
		Generations:    generations,
		Meta:           meta,
	}
}
