package compiler

import "github.com/asphodex/tm2to1"

// buildInputConditioning emits, for every input letter, the straight-line
// chain that turns a plain one-track input into the paired, head-marked
// representation the simulation phases expect: write the input letter's
// guard-delimited echo, walk right re-pairing each further input letter
// with blank, walk back to the guard, then drop both head marks at the
// first simulated position.
func buildInputConditioning(b *builder, m2 *turing.TuringMachine) {
	for orig := range m2.InputAlphabet {
		start := compositeState{phase: phase0Start, orig: turing.InitialState, carried: turing.Blank}.pack()
		b.appendTransition(turing.InitialState, orig, start, orig, turing.Stay)

		input := compositeState{phase: phase0Input, orig: turing.InitialState, carried: orig}.pack()
		b.appendTransition(start, orig, input, turing.Letter(guard), turing.Right)

		for seen := range m2.InputAlphabet {
			nextInput := compositeState{phase: phase0Input, orig: turing.InitialState, carried: seen}.pack()
			b.appendTransition(input, seen, nextInput, packCell(orig, false, turing.Blank, false), turing.Right)
		}

		goBack := compositeState{phase: phase0Back, orig: turing.InitialState, carried: turing.Blank}.pack()
		b.appendTransition(input, turing.Blank, goBack, packCell(orig, false, turing.Blank, false), turing.Left)
		b.appendTransition(goBack, packCell(orig, false, turing.Blank, false), goBack, packCell(orig, false, turing.Blank, false), turing.Left)

		setupMarks := compositeState{phase: phase0SetupMarks, orig: turing.InitialState, carried: turing.Blank}.pack()
		b.appendTransition(goBack, guardLetter, setupMarks, guardLetter, turing.Right)

		ready := compositeState{phase: phase1FindSecond, orig: turing.InitialState, carried: orig}.pack()
		b.appendTransition(setupMarks, packCell(orig, false, turing.Blank, false), ready, packCell(orig, true, turing.Blank, true), turing.Stay)
	}
}
