package compiler

import "github.com/asphodex/tm2to1"

// builder accumulates the one-tape transition table under construction. Its
// methods are the only place transitions are written, so the
// dispatchesNewStep short-circuit and the uniform wrap of every
// from/read/to/write argument live in exactly one spot.
type builder struct {
	transitions map[turing.TransitionKey]turing.Transition
}

func newBuilder() *builder {
	return &builder{transitions: make(map[turing.TransitionKey]turing.Transition)}
}

// dispatchesNewStep reports whether from is a Phase1-Find-Second state whose
// embedded original state is the accepting state: the point where a step
// simulation would normally dispatch into the next original transition's
// seed. The original machine has no outgoing transitions from its accepting
// state, so nothing will ever seed from here -- it is safe to stop table
// growth at exactly this phase. Earlier phases (Phase1-Set-Second-Mark
// through Phase2-Back) reaching the same embedded accepting state still have
// a pending tape-1 write/move in flight from the transition that reached
// accept and must be allowed to finish applying it; only the resumption
// point where a *new* step would begin is dead.
func dispatchesNewStep(from turing.State) bool {
	cs, ok := unpackState(from)
	return ok && cs.phase == phase1FindSecond && cs.orig == turing.AcceptingState
}

// appendTransition records one transition, wrapping from/read/to/write
// uniformly. If from is a Phase1-Find-Second state already parked on the
// accepting state and this isn't itself the terminal move into
// turing.AcceptingState, the write is dropped: buildAcceptSweep gives that
// state its real exits later, and nothing would ever reach it through this
// path anyway since the original machine has no transitions out of accept.
func (b *builder) appendTransition(from turing.State, read turing.Letter, to turing.State, write turing.Letter, dir turing.Direction) {
	if to != turing.AcceptingState && dispatchesNewStep(from) {
		return
	}

	key := turing.TransitionKey{
		State:   turing.State(wrap(string(from))),
		Letters: [2]turing.Letter{turing.Letter(wrap(string(read)))},
	}
	val := turing.Transition{
		NextState:  turing.State(wrap(string(to))),
		Letters:    [2]turing.Letter{turing.Letter(wrap(string(write)))},
		Directions: [2]turing.Direction{dir},
	}

	b.transitions[key] = val
}

// snapshotNextStates returns the distinct to-states currently in the table.
// Every closure pass dispatches on this snapshot rather than the live map:
// each pass both reads what an earlier pass produced and writes its own new
// transitions, and Go map iteration is undefined in the presence of
// concurrent mutation -- a snapshot first removes any ambiguity, matching
// the admitted "iteration hazard" the ranged source loops rely on undefined
// map-grows-during-range behavior to paper over.
func (b *builder) snapshotNextStates() []turing.State {
	seen := make(map[turing.State]struct{}, len(b.transitions))
	out := make([]turing.State, 0, len(b.transitions))

	for _, v := range b.transitions {
		if _, ok := seen[v.NextState]; ok {
			continue
		}
		seen[v.NextState] = struct{}{}
		out = append(out, v.NextState)
	}

	return out
}

// snapshotFromStates returns the distinct from-states currently in the
// table, for passes (the tape-extension rule) that dispatch on where a
// transition starts rather than where it leads.
func (b *builder) snapshotFromStates() []turing.State {
	seen := make(map[turing.State]struct{}, len(b.transitions))
	out := make([]turing.State, 0, len(b.transitions))

	for k := range b.transitions {
		if _, ok := seen[k.State]; ok {
			continue
		}
		seen[k.State] = struct{}{}
		out = append(out, k.State)
	}

	return out
}

// build finalizes the table into a one-tape machine over inputAlphabet.
func (b *builder) build(inputAlphabet map[turing.Letter]struct{}) *turing.TuringMachine {
	return &turing.TuringMachine{
		NumTapes:      1,
		InputAlphabet: inputAlphabet,
		Transitions:   b.transitions,
	}
}
