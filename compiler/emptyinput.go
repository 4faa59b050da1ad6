package compiler

import "github.com/asphodex/tm2to1"

// buildEmptyInputCornerCase handles the one case the input-conditioning
// chain can't reach on its own: a machine whose very first move reads blank
// on both tracks never touches the input-letter loop in buildInputConditioning
// at all, so without this it would have no path off the initial state. It
// only applies when the original machine actually defines a transition from
// its initial state on [blank, blank].
func buildEmptyInputCornerCase(b *builder, m2 *turing.TuringMachine) {
	key := turing.TransitionKey{State: turing.InitialState, Letters: [2]turing.Letter{turing.Blank, turing.Blank}}
	if _, ok := m2.Transitions[key]; !ok {
		return
	}

	corner := turing.State(wrap(string(turing.InitialState) + sep + string(turing.InitialState) + sep + string(turing.Blank) + sep + string(turing.Blank)))
	b.appendTransition(turing.InitialState, turing.Blank, corner, guardLetter, turing.Right)

	ready := compositeState{phase: phase1FindSecond, orig: turing.InitialState, carried: turing.Blank}.pack()
	b.appendTransition(corner, turing.Blank, ready, packCell(turing.Blank, true, turing.Blank, true), turing.Stay)
}
