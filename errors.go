package turing

import "errors"

var (
	// ErrInvalidNumTapes is returned when a TuringMachine is constructed
	// with a non-positive tape count.
	ErrInvalidNumTapes = errors.New("invalid number of tapes")

	// ErrInvalidMoveDirection is returned when a transition has an invalid
	// move direction on one of its tapes.
	ErrInvalidMoveDirection = errors.New("invalid move direction")

	// ErrUnexpectedSymbol is returned by Validate when a transition writes a
	// symbol outside its machine's alphabet.
	ErrUnexpectedSymbol = errors.New("unexpected symbol")

	// ErrStateNotFound is returned when a transition references a
	// non-existent state and the program is validated against a closed
	// state set.
	ErrStateNotFound = errors.New("state not found")

	// ErrInvalidSymbol is returned when a Letter or State fails IsValidSymbol.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrTransitionNotFound is returned by Simulate when no transition is
	// defined for the current state and scanned letters -- the machine
	// halts without having reached AcceptingState.
	ErrTransitionNotFound = errors.New("transition not found")

	// ErrStepsExceeded is returned by Simulate when the machine exceeds the
	// maximum number of execution steps without halting.
	ErrStepsExceeded = errors.New("steps exceeded")
)
