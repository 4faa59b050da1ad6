package compiler

import (
	"strings"

	"github.com/asphodex/tm2to1"
)

// compositeState is the typed payload a synthetic 1TM control state
// serializes. Representing it as a struct rather than building up a flat
// string ad hoc and scanning it for phase-name substrings turns what would
// otherwise be positional string surgery into ordinary field access.
//
// carriedDir holds the pending head-1 direction while head 2 is being
// processed. The transition seed sets it on entry to Phase1-Set-Second-Mark,
// Phase1-Back and Phase2-Find-First carry it along, and it is nil again once
// Phase2-Find-First has applied it (and in every other phase). Because the
// struct already keeps phase/state/letter/direction in separate fields
// instead of splicing them into one string that also carries literal move
// directions, no L/R re-encoding is needed to avoid ambiguity on unpack.
// Direction.Token's "<"/">"/"." wire form is used purely because it's
// already guaranteed distinct from any Letter IsValidSymbol accepts that a
// caller is likely to choose.
type compositeState struct {
	phase      phase
	orig       turing.State
	carried    turing.Letter
	carriedDir *turing.Direction
}

// pack serializes a compositeState into a flat, wrapped turing.State.
func (cs compositeState) pack() turing.State {
	dirField := string(turing.Blank)
	if cs.carriedDir != nil {
		dirField = cs.carriedDir.Token()
	}

	flat := string(cs.phase) + sep + string(cs.orig) + sep + string(cs.carried) + sep + dirField

	return turing.State(wrap(flat))
}

// unpackState parses a flat turing.State back into a compositeState. It
// returns ok=false for any state that isn't one of ours -- in particular
// the external turing.InitialState and turing.AcceptingState, which closure
// passes routinely encounter while scanning every emitted key/value.
func unpackState(s turing.State) (compositeState, bool) {
	flat := unwrap(string(s))

	parts := strings.Split(flat, sep)
	if len(parts) != 4 {
		return compositeState{}, false
	}

	p := phase(parts[0])
	if !isKnownPhase(p) {
		return compositeState{}, false
	}

	cs := compositeState{
		phase:   p,
		orig:    turing.State(parts[1]),
		carried: turing.Letter(parts[2]),
	}

	if parts[3] != string(turing.Blank) {
		d, ok := turing.ParseDirectionToken(parts[3])
		if !ok {
			return compositeState{}, false
		}
		cs.carriedDir = &d
	}

	return cs, true
}

func isKnownPhase(p phase) bool {
	switch p {
	case phase0Start, phase0Input, phase0Back, phase0SetupMarks,
		phase1FindSecond, phase1SetSecondMark, phase1Back,
		phase2FindFirst, phase2SetFirstMark, phase2Back:
		return true
	default:
		return false
	}
}

// isPhase reports whether s is one of ours and tagged with phase p.
func isPhase(s turing.State, p phase) bool {
	cs, ok := unpackState(s)
	return ok && cs.phase == p
}

// isPhase1Or2 reports whether p belongs to the per-step simulation phases
// (as opposed to the one-time Phase0-* input-conditioning chain). The
// tape-extension rule only ever needs to fire while a step is in flight.
func isPhase1Or2(p phase) bool {
	switch p {
	case phase1FindSecond, phase1SetSecondMark, phase1Back,
		phase2FindFirst, phase2SetFirstMark, phase2Back:
		return true
	default:
		return false
	}
}

// isWrapped reports whether inp is already fully parenthesized: at every
// prefix up to (but not including) the last character, the running count of
// '(' minus ')' stays at least 1. Ported directly from
// original_source/tm_convert.cpp's is_wrapped.
func isWrapped(inp string) bool {
	depth := 0
	for i, r := range inp {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}

		if depth < 1 && i != len(inp)-1 {
			return false
		}
	}

	return true
}

// wrap adds a single outer parenthesis pair to inp unless it is a single
// character or already fully wrapped. Idempotent.
func wrap(inp string) string {
	if len(inp) < 2 || isWrapped(inp) {
		return inp
	}

	return "(" + inp + ")"
}

// unwrap removes exactly one outer parenthesis pair from any fully wrapped
// inp of two or more characters, so unwrap(wrap(s)) == s for every s that
// wrap actually changed. An s that was already wrapped loses its own outer
// pair.
func unwrap(inp string) string {
	if len(inp) < 2 || !isWrapped(inp) || inp[0] != '(' || inp[len(inp)-1] != ')' {
		return inp
	}

	return inp[1 : len(inp)-1]
}
