package seeder

import (
	"errors"
	"fmt"
)

var (
	// ErrUniquenessExhausted means the resolver could not produce a
	// conflict-free value for a unique column within its attempt bound.
	ErrUniquenessExhausted = errors.New("uniqueness attempts exhausted")

	// ErrDependencyOrder means the stage graph has a cycle or references
	// an undeclared stage and cannot be topologically ordered.
	ErrDependencyOrder = errors.New("stage graph cannot be ordered")
)

// UniquenessError identifies the entity and column the resolver gave up on.
type UniquenessError struct {
	Entity string
	Column string
	Value  string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("could not resolve unique value for %s.%s (last tried %q)", e.Entity, e.Column, e.Value)
}

func (e *UniquenessError) Unwrap() error { return ErrUniquenessExhausted }

// StageError wraps any failure raised while a stage was running and
// records which phase of the stage it came from. A StageError always
// aborts the run and rolls back the enclosing transaction.
type StageError struct {
	Stage string
	State State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed while %s: %v", e.Stage, e.State, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
