package compiler

import "errors"

var (
	// ErrNotTwoTaped is returned when Compile is given a machine whose
	// NumTapes is not exactly 2.
	ErrNotTwoTaped = errors.New("compiler: source machine must have exactly two tapes")

	// ErrMalformedTransition is returned when a source transition has no
	// tape-2 letter on its read or write side.
	ErrMalformedTransition = errors.New("compiler: malformed transition")

	// ErrReservedSymbol is returned when a source machine uses a State or
	// Letter containing the separator token, or a Letter that begins with
	// the head-mark token and is longer than it, which would make composite
	// states or cells ambiguous.
	ErrReservedSymbol = errors.New("compiler: letter or state collides with a reserved token")
)
