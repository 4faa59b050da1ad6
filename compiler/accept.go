package compiler

import "github.com/asphodex/tm2to1"

// buildAcceptSweep gives every composite state whose embedded original
// state is the accepting state, and whose tape-1 write/move has already been
// applied, a way out: for each such state, a plain blank or the guard reads
// straight through to turing.AcceptingState, and any composite cell (marked
// or not, on either track) also falls through unchanged. States still in
// Phase1-Set-Second-Mark, Phase1-Back or Phase2-Find-First carry the pending
// tape-1 write of the transition that reached accept, so they are skipped
// and keep their own transitions; the sweep takes over from
// Phase2-Set-First-Mark onward.
func buildAcceptSweep(b *builder, workAlphabet []turing.Letter) {
	for _, s := range b.snapshotNextStates() {
		if s == turing.AcceptingState {
			continue
		}

		cs, ok := unpackState(s)
		if !ok || cs.orig != turing.AcceptingState {
			continue
		}

		switch cs.phase {
		case phase1SetSecondMark, phase1Back, phase2FindFirst:
			continue
		}

		b.appendTransition(s, turing.Blank, turing.AcceptingState, turing.Blank, turing.Stay)
		b.appendTransition(s, guardLetter, turing.AcceptingState, guardLetter, turing.Stay)

		for _, l1 := range workAlphabet {
			for _, l2 := range workAlphabet {
				for _, h1 := range []bool{false, true} {
					for _, h2 := range []bool{false, true} {
						cell := packCell(l1, h1, l2, h2)
						b.appendTransition(s, cell, turing.AcceptingState, cell, turing.Stay)
					}
				}
			}
		}
	}
}
