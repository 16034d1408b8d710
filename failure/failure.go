// Package failure holds the error taxonomy shared by the cycle engine.
//
// Every error returned by a constructor or an analysis wraps exactly one of
// the sentinels below, so callers can branch with errors.Is.
package failure

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks an invalid configuration value.
	ErrConfig = errors.New("invalid configuration")
	// ErrInfeasible marks a state point that cannot physically exist.
	ErrInfeasible = errors.New("physically infeasible")
	// ErrNoSolution marks an implicit equation the solver could not close.
	ErrNoSolution = errors.New("no solution found")
	// ErrBoundary marks bad boundary temperatures of an entropy analysis.
	ErrBoundary = errors.New("invalid boundary temperatures")
)

// Configf returns a configuration error with a message naming the constraint.
func Configf(format string, args ...interface{}) error {
	return wrap(ErrConfig, format, args...)
}

// Infeasiblef returns a physical feasibility error.
func Infeasiblef(format string, args ...interface{}) error {
	return wrap(ErrInfeasible, format, args...)
}

// NoSolutionf returns a root finding failure.
func NoSolutionf(format string, args ...interface{}) error {
	return wrap(ErrNoSolution, format, args...)
}

// Boundaryf returns an entropy analysis boundary error.
func Boundaryf(format string, args ...interface{}) error {
	return wrap(ErrBoundary, format, args...)
}

func wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
