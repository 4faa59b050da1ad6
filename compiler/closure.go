package compiler

import "github.com/asphodex/tm2to1"

// buildTapeExtension lets any in-flight simulation state materialize fresh
// tape: reading a plain, not-yet-paired blank while in any Phase1-*/Phase2-*
// state writes the blank composite cell in its place and stays put, so the
// transition that actually needed a cell there gets a real one to match
// against next.
func buildTapeExtension(b *builder) {
	for _, s := range b.snapshotFromStates() {
		cs, ok := unpackState(s)
		if !ok || !isPhase1Or2(cs.phase) {
			continue
		}

		b.appendTransition(s, turing.Blank, s, blankCell(), turing.Stay)
	}
}
