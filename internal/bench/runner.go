// Package bench runs an opt.Optimizer against a case's problem instance
// across repeated seeds and reports fitness/time statistics: a reusable
// benchmarking harness over the generic mh.Problem/opt.Optimizer contracts
// instead of a single hardcoded domain.
package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"metaheuristics/internal/mh"
	"metaheuristics/internal/opt"
)

// Algorithm names a Factory producing a fresh Optimizer for a given seed
// (so each run gets its own independently-seeded randomness source).
type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

// Case names a scenario: a label for reporting, and a factory returning a
// fresh, unsolved Problem for each run.
type Case struct {
	Name       string
	NewProblem func() mh.Problem
}

// Record is one algorithm x case row of aggregated statistics.
type Record struct {
	Algo string
	Case string
	Runs int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	FitnessBest float64
	FitnessMean float64
	FitnessStd  float64
}

// Runner repeats a Case against an Algorithm Runs times, each with an
// independent seed derived from BaseSeed.
type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
}

// RunCase executes r.Runs independent runs of algo against fresh instances
// of c's problem and aggregates the resulting fitness and wall-clock time.
func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	fitnesses := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)
		op := algo.Factory(runSeed)
		p := c.NewProblem()

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		_, err := op.Solve(runCtx, p)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}

		fitnesses = append(fitnesses, p.Evaluate())
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	fStats := CalcStats(fitnesses, true)
	tStats := CalcStats(timesMs, false)

	return Record{
		Algo: algo.Name,
		Case: c.Name,
		Runs: r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		FitnessBest: fStats.Best,
		FitnessMean: fStats.Mean,
		FitnessStd:  fStats.Std,
	}, nil
}

// WriteCSV writes records to path, creating parent directories as needed.
func WriteCSV(path string, records []Record) error {
	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "case", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"fitness_best", "fitness_mean", "fitness_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			r.Case,
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			ftoa(r.FitnessBest),
			ftoa(r.FitnessMean),
			ftoa(r.FitnessStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
