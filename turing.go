// Package turing is the generic Turing-machine data structure the compiler
// package builds on top of: states, transitions, a symbol validator, and a
// bounded-step simulator for testing and the CLI's run subcommand. It knows
// nothing about the two-tape-to-one-tape construction itself.
package turing

import (
	"context"
	"fmt"
)

// Letter is a non-empty symbol drawn from a finite alphabet.
type Letter string

// State is a non-empty symbol naming a control state.
type State string

// Reserved letter and states every TuringMachine shares.
const (
	// Blank is the letter occupying every tape cell that has never been written.
	Blank Letter = "_"

	// InitialState is the state every machine starts execution in.
	InitialState State = "q0"

	// AcceptingState is the sole accepting state. Reaching it halts the machine.
	AcceptingState State = "qacc"
)

// TransitionKey is the left-hand side of a transition: a control state and
// the letter scanned on each tape. Letters[1] is the zero value when
// NumTapes == 1. A fixed-size array (rather than a slice) keeps TransitionKey
// comparable, so it can be used directly as a Go map key.
type TransitionKey struct {
	State   State
	Letters [2]Letter
}

// Transition is the right-hand side: the next state, the letter to write on
// each tape, and the direction to move each tape's head.
type Transition struct {
	NextState  State
	Letters    [2]Letter
	Directions [2]Direction
}

// TuringMachine is a deterministic Turing machine of NumTapes tapes (1 or 2
// in this module's domain). Transitions is a mapping: at most one
// Transition is defined per TransitionKey.
type TuringMachine struct {
	NumTapes      int
	InputAlphabet map[Letter]struct{}
	Transitions   map[TransitionKey]Transition
}

// NewTuringMachine constructs a TuringMachine, rejecting a non-positive tape
// count. It does not otherwise validate the transition table -- call
// Validate for that.
func NewTuringMachine(numTapes int, inputAlphabet map[Letter]struct{}, transitions map[TransitionKey]Transition) (*TuringMachine, error) {
	if numTapes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNumTapes, numTapes)
	}

	alphabet := make(map[Letter]struct{}, len(inputAlphabet))
	for l := range inputAlphabet {
		alphabet[l] = struct{}{}
	}

	trans := make(map[TransitionKey]Transition, len(transitions))
	for k, v := range transitions {
		trans[k] = v
	}

	return &TuringMachine{
		NumTapes:      numTapes,
		InputAlphabet: alphabet,
		Transitions:   trans,
	}, nil
}

// WorkingAlphabet returns every Letter appearing in Transitions (read or
// written, on any tape) unioned with InputAlphabet, excluding Blank.
func (tm *TuringMachine) WorkingAlphabet() []Letter {
	seen := make(map[Letter]struct{})
	for l := range tm.InputAlphabet {
		seen[l] = struct{}{}
	}

	for key, val := range tm.Transitions {
		for i := 0; i < tm.NumTapes; i++ {
			seen[key.Letters[i]] = struct{}{}
			seen[val.Letters[i]] = struct{}{}
		}
	}

	delete(seen, Blank)

	alphabet := make([]Letter, 0, len(seen))
	for l := range seen {
		alphabet = append(alphabet, l)
	}

	return alphabet
}

// knownStates returns every State appearing as a transition's origin, plus
// InitialState and AcceptingState.
func (tm *TuringMachine) knownStates() map[State]struct{} {
	states := map[State]struct{}{
		InitialState:   {},
		AcceptingState: {},
	}
	for key := range tm.Transitions {
		states[key.State] = struct{}{}
	}

	return states
}

// Validate checks, over NumTapes tapes, every transition's move directions,
// that every written letter is a valid symbol drawn from InputAlphabet, the
// letters some transition reads, or Blank, and that every NextState is
// AcceptingState or a state with transitions of its own.
func (tm *TuringMachine) Validate() error {
	alphabet := make(map[Letter]struct{})
	for l := range tm.InputAlphabet {
		alphabet[l] = struct{}{}
	}
	for key := range tm.Transitions {
		for i := 0; i < tm.NumTapes; i++ {
			alphabet[key.Letters[i]] = struct{}{}
		}
	}
	alphabet[Blank] = struct{}{}

	states := tm.knownStates()

	for key, val := range tm.Transitions {
		for i := 0; i < tm.NumTapes; i++ {
			if val.Directions[i] != Left && val.Directions[i] != Right && val.Directions[i] != Stay {
				return fmt.Errorf("%w: %v for state %q, tape %d", ErrInvalidMoveDirection, val.Directions[i], key.State, i)
			}

			if !IsValidSymbol(string(val.Letters[i])) {
				return fmt.Errorf("%w: %q for state %q", ErrInvalidSymbol, val.Letters[i], key.State)
			}

			if _, ok := alphabet[val.Letters[i]]; !ok {
				return fmt.Errorf("%w: %q for state %q", ErrUnexpectedSymbol, val.Letters[i], key.State)
			}
		}

		if val.NextState == AcceptingState {
			continue
		}

		if _, ok := states[val.NextState]; !ok {
			return fmt.Errorf("%w: %q", ErrStateNotFound, val.NextState)
		}
	}

	return nil
}

// tape is a sparse, per-track representation: unwritten cells read as Blank.
type tape map[int]Letter

func (t tape) read(pos int) Letter {
	if l, ok := t[pos]; ok {
		return l
	}
	return Blank
}

// Configuration is the result of Simulate: the halting state and the final
// contents of each tape (as a map from cell index to Letter holding every
// cell that was given input or written, Blank writes included; cells never
// touched are absent), plus where each head ended up.
type Configuration struct {
	State     State
	Accepted  bool
	Steps     uint
	Tapes     []map[int]Letter
	Carriages []int
}

// Simulate runs the machine starting at InitialState with the given input
// written left-aligned (starting at position 0) on tape 0, every other
// track blank, up to maxSteps steps (0 disables the bound). The compiler
// package never calls this -- it exists so tests and the CLI's run
// subcommand can observe what a TuringMachine (either a two-tape source
// machine or a compiled one-tape machine) actually does.
func (tm *TuringMachine) Simulate(ctx context.Context, input []Letter, maxSteps uint) (Configuration, error) {
	tapes := make([]tape, tm.NumTapes)
	for i := range tapes {
		tapes[i] = make(tape)
	}
	for i, l := range input {
		tapes[0][i] = l
	}

	carriages := make([]int, tm.NumTapes)
	state := InitialState

	var steps uint
	for {
		if ctx.Err() != nil {
			return Configuration{}, ctx.Err() //nolint:wrapcheck
		}

		if state == AcceptingState {
			return snapshot(state, true, steps, tapes, carriages), nil
		}

		var letters [2]Letter
		for i := 0; i < tm.NumTapes; i++ {
			letters[i] = tapes[i].read(carriages[i])
		}

		transition, ok := tm.Transitions[TransitionKey{State: state, Letters: letters}]
		if !ok {
			return snapshot(state, false, steps, tapes, carriages), fmt.Errorf("%w: state %q, letters %v", ErrTransitionNotFound, state, letters[:tm.NumTapes])
		}

		for i := 0; i < tm.NumTapes; i++ {
			tapes[i][carriages[i]] = transition.Letters[i]
			carriages[i] += int(transition.Directions[i])
		}

		state = transition.NextState
		steps++

		if maxSteps > 0 && steps >= maxSteps {
			return snapshot(state, false, steps, tapes, carriages), fmt.Errorf("%w: after %d steps", ErrStepsExceeded, steps)
		}
	}
}

func snapshot(state State, accepted bool, steps uint, tapes []tape, carriages []int) Configuration {
	cfg := Configuration{
		State:     state,
		Accepted:  accepted,
		Steps:     steps,
		Tapes:     make([]map[int]Letter, len(tapes)),
		Carriages: append([]int(nil), carriages...),
	}
	for i, t := range tapes {
		m := make(map[int]Letter, len(t))
		for pos, l := range t {
			m[pos] = l
		}
		cfg.Tapes[i] = m
	}
	return cfg
}
