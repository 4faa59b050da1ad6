package compiler

import "github.com/asphodex/tm2to1"

// buildTransitionSeeds emits, for every transition of the original machine,
// the entry point into its simulation: from Phase1-Find-Second already
// parked on head 2 (carried = the tape-1 letter this transition expects to
// read), apply the transition's tape-2 write and move, leaving tape-1's
// write pending in the new state's carried/direction fields.
func buildTransitionSeeds(b *builder, m2 *turing.TuringMachine, workAlphabet []turing.Letter) {
	for key, val := range m2.Transitions {
		before := compositeState{phase: phase1FindSecond, orig: key.State, carried: key.Letters[headOneTape]}.pack()
		dir := val.Directions[headOneTape]
		after := compositeState{phase: phase1SetSecondMark, orig: val.NextState, carried: val.Letters[headOneTape], carriedDir: &dir}.pack()

		for _, letterOnFirst := range workAlphabet {
			b.appendTransition(before,
				packCell(letterOnFirst, false, key.Letters[headTwoTape], true),
				after,
				packCell(letterOnFirst, false, val.Letters[headTwoTape], false),
				val.Directions[headTwoTape])

			b.appendTransition(before,
				packCell(letterOnFirst, true, key.Letters[headTwoTape], true),
				after,
				packCell(letterOnFirst, true, val.Letters[headTwoTape], false),
				val.Directions[headTwoTape])
		}
	}
}

// buildSecondMark closes Phase1-Set-Second-Mark: having just landed on head
// 2's new position, stamp the head-2 mark onto whatever is physically there
// and move into Phase1-Back.
func buildSecondMark(b *builder, workAlphabet []turing.Letter) {
	for _, s := range b.snapshotNextStates() {
		cs, ok := unpackState(s)
		if !ok || cs.phase != phase1SetSecondMark {
			continue
		}

		after := compositeState{phase: phase1Back, orig: cs.orig, carried: cs.carried, carriedDir: cs.carriedDir}.pack()

		for _, l1 := range workAlphabet {
			for _, l2 := range workAlphabet {
				b.appendTransition(s, packCell(l1, false, l2, false), after, packCell(l1, false, l2, true), turing.Left)
				b.appendTransition(s, packCell(l1, true, l2, false), after, packCell(l1, true, l2, true), turing.Left)
			}
		}
	}
}

// buildPhase1Back closes Phase1-Back: walk left over every cell unchanged
// until the guard, then cross into Phase2-Find-First moving right.
func buildPhase1Back(b *builder, workAlphabet []turing.Letter) {
	for _, s := range b.snapshotNextStates() {
		cs, ok := unpackState(s)
		if !ok || cs.phase != phase1Back {
			continue
		}

		for _, l1 := range workAlphabet {
			for _, l2 := range workAlphabet {
				cell := packCell(l1, false, l2, false)
				b.appendTransition(s, cell, s, cell, turing.Left)

				cellH1 := packCell(l1, true, l2, false)
				b.appendTransition(s, cellH1, s, cellH1, turing.Left)
			}
		}

		next := compositeState{phase: phase2FindFirst, orig: cs.orig, carried: cs.carried, carriedDir: cs.carriedDir}.pack()
		b.appendTransition(s, guardLetter, next, guardLetter, turing.Right)
	}
}

// buildPhase2FindFirst closes Phase2-Find-First: walk right until head 1 is
// found, then apply the pending tape-1 write (carried in the state) and the
// pending tape-1 move (also carried), transitioning into Phase2-Set-First-Mark.
func buildPhase2FindFirst(b *builder, workAlphabet []turing.Letter) {
	for _, s := range b.snapshotNextStates() {
		cs, ok := unpackState(s)
		if !ok || cs.phase != phase2FindFirst {
			continue
		}

		dir := turing.Stay
		if cs.carriedDir != nil {
			dir = *cs.carriedDir
		}

		for _, l1 := range workAlphabet {
			for _, l2 := range workAlphabet {
				cell := packCell(l1, false, l2, false)
				b.appendTransition(s, cell, s, cell, turing.Right)

				cellH2 := packCell(l1, false, l2, true)
				b.appendTransition(s, cellH2, s, cellH2, turing.Right)

				after := compositeState{phase: phase2SetFirstMark, orig: cs.orig, carried: turing.Blank}.pack()

				b.appendTransition(s, packCell(l1, true, l2, false), after, packCell(cs.carried, false, l2, false), dir)
				b.appendTransition(s, packCell(l1, true, l2, true), after, packCell(cs.carried, false, l2, true), dir)
			}
		}
	}
}

// buildPhase2SetFirstMark closes Phase2-Set-First-Mark: stamp the head-1
// mark onto the cell head 1 has just moved to, remembering that cell's
// tape-1 letter so the resumed Phase1-Find-Second can dispatch on it, and
// move into Phase2-Back.
func buildPhase2SetFirstMark(b *builder, workAlphabet []turing.Letter) {
	for _, s := range b.snapshotNextStates() {
		cs, ok := unpackState(s)
		if !ok || cs.phase != phase2SetFirstMark {
			continue
		}

		for _, l1 := range workAlphabet {
			for _, l2 := range workAlphabet {
				after := compositeState{phase: phase2Back, orig: cs.orig, carried: l1}.pack()

				b.appendTransition(s, packCell(l1, false, l2, false), after, packCell(l1, true, l2, false), turing.Left)
				b.appendTransition(s, packCell(l1, false, l2, true), after, packCell(l1, true, l2, true), turing.Left)
			}
		}
	}
}

// buildPhase2Back closes Phase2-Back: walk left unchanged until the guard,
// then cross back into Phase1-Find-Second, now bound to the original
// machine's new state and ready to locate head 2 for the next step.
func buildPhase2Back(b *builder, workAlphabet []turing.Letter) {
	for _, s := range b.snapshotNextStates() {
		cs, ok := unpackState(s)
		if !ok || cs.phase != phase2Back {
			continue
		}

		for _, l1 := range workAlphabet {
			for _, l2 := range workAlphabet {
				cell := packCell(l1, false, l2, false)
				b.appendTransition(s, cell, s, cell, turing.Left)

				cellH2 := packCell(l1, false, l2, true)
				b.appendTransition(s, cellH2, s, cellH2, turing.Left)
			}
		}

		next := compositeState{phase: phase1FindSecond, orig: cs.orig, carried: cs.carried}.pack()
		b.appendTransition(s, guardLetter, next, guardLetter, turing.Right)
	}
}

// buildPhase1FindSecondResume closes Phase1-Find-Second for states reached
// from Phase2-Back rather than freshly seeded: walk right over any cell
// without head 2's mark. The transition fired once head 2 is found was already
// emitted by buildTransitionSeeds for the matching (orig, carried) pair, so
// nothing further is added here.
func buildPhase1FindSecondResume(b *builder, workAlphabet []turing.Letter) {
	for _, s := range b.snapshotNextStates() {
		cs, ok := unpackState(s)
		if !ok || cs.phase != phase1FindSecond {
			continue
		}

		for _, l1 := range workAlphabet {
			for _, l2 := range workAlphabet {
				cell := packCell(l1, false, l2, false)
				b.appendTransition(s, cell, s, cell, turing.Right)

				cellH1 := packCell(l1, true, l2, false)
				b.appendTransition(s, cellH1, s, cellH1, turing.Right)
			}
		}
	}
}
