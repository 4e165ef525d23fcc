package mh

import (
	"errors"
	"fmt"
)

// InfeasibleError signals that a construction, decode or neighbourhood move
// produced a solution outside the feasible region of a Problem. GRASP treats
// it as recoverable and skips the failed iteration; local search and the
// genetic engines' decode step return it to the caller, aborting the run.
type InfeasibleError struct {
	msg string
}

func (e *InfeasibleError) Error() string { return e.msg }

// Infeasiblef builds an *InfeasibleError with a formatted message.
func Infeasiblef(format string, args ...any) error {
	return &InfeasibleError{msg: fmt.Sprintf(format, args...)}
}

// IsInfeasible reports whether err is, or wraps, an *InfeasibleError.
func IsInfeasible(err error) bool {
	var ie *InfeasibleError
	return errors.As(err, &ie)
}

// ConfigError signals that an engine or Config was constructed with
// parameters that violate a documented invariant. Unlike InfeasibleError it
// is fatal: it is only ever returned from a constructor, never from a
// running engine.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

// ConfigErrorf builds a *ConfigError with a formatted message.
func ConfigErrorf(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is, or wraps, a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// ErrNilRNG is returned by constructors that require a non-nil rng.Generator.
var ErrNilRNG = errors.New("генератор случайных чисел не инициализирован (nil)")

// ErrNilProblem is returned by constructors that require a non-nil Problem.
var ErrNilProblem = errors.New("problem не инициализирован (nil)")
