package rkga

import "metaheuristics/internal/ga"

// Config is a ga.Config alias: RKGA needs no parameters beyond the shared
// population/mutant/crossover/inheritance settings.
type Config = ga.Config

// DefaultConfig returns ga.DefaultConfig().
func DefaultConfig() Config { return ga.DefaultConfig() }
