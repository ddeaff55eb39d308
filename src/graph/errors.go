package graph

import "errors"

// the error kinds returned by this package, check them with errors.Is
var (
	// ErrNotFound is returned when a requested path or sequence is absent from the graph
	ErrNotFound = errors.New("not found")

	// ErrInsufficientData is returned when a path-count threshold cannot be inferred
	ErrInsufficientData = errors.New("insufficient data")

	// ErrPrecondition is returned when an operation is called on input it does not accept
	ErrPrecondition = errors.New("precondition failed")

	// ErrMalformed is returned when a graph file can't be turned into a graph
	ErrMalformed = errors.New("malformed graph")
)
