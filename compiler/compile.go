// Package compiler builds a one-tape Turing machine that simulates a
// deterministic two-tape Turing machine step for step. Each simulated
// transition becomes a fixed sequence of phases on the composite tape: find
// head 2's position, apply the second track's move, walk back to find head
// 1, apply the first track's move, then walk back to resume. See state.go
// and cell.go for the composite encoding and simulation.go/closure.go for
// how each phase's sub-table is built.
package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/asphodex/tm2to1"
)

// Compile translates m2, a deterministic two-tape Turing machine, into a
// behaviorally equivalent one-tape Turing machine. m2 must already satisfy
// m2.Validate(); Compile does not re-run it. logger may be nil, in which
// case construction proceeds silently against a discard sink.
func Compile(m2 *turing.TuringMachine, logger *logrus.Logger) (*turing.TuringMachine, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	if m2.NumTapes != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotTwoTaped, m2.NumTapes)
	}

	for key, val := range m2.Transitions {
		if key.Letters[headTwoTape] == "" || val.Letters[headTwoTape] == "" {
			return nil, fmt.Errorf("%w: state %q is missing a tape-2 letter", ErrMalformedTransition, key.State)
		}

		for _, s := range []turing.State{key.State, val.NextState} {
			if strings.Contains(string(s), sep) {
				return nil, fmt.Errorf("%w: state %q", ErrReservedSymbol, s)
			}
		}
	}

	for _, l := range m2.WorkingAlphabet() {
		if strings.Contains(string(l), sep) || (strings.HasPrefix(string(l), headMark) && l != headMark) {
			return nil, fmt.Errorf("%w: letter %q", ErrReservedSymbol, l)
		}
	}

	workAlphabet := append(m2.WorkingAlphabet(), turing.Blank)

	b := newBuilder()

	logger.Debug("compiler: building input-conditioning chain")
	buildInputConditioning(b, m2)

	logger.Debug("compiler: seeding per-transition simulation phases")
	buildTransitionSeeds(b, m2, workAlphabet)

	logger.Debug("compiler: closing Phase1-Set-Second-Mark")
	buildSecondMark(b, workAlphabet)

	logger.Debug("compiler: closing Phase1-Back")
	buildPhase1Back(b, workAlphabet)

	logger.Debug("compiler: closing Phase2-Find-First")
	buildPhase2FindFirst(b, workAlphabet)

	logger.Debug("compiler: closing Phase2-Set-First-Mark")
	buildPhase2SetFirstMark(b, workAlphabet)

	logger.Debug("compiler: closing Phase2-Back")
	buildPhase2Back(b, workAlphabet)

	logger.Debug("compiler: resuming Phase1-Find-Second from Phase2-Back")
	buildPhase1FindSecondResume(b, workAlphabet)

	logger.Debug("compiler: wiring lazy tape extension")
	buildTapeExtension(b)

	logger.Debug("compiler: handling the empty-input corner case")
	buildEmptyInputCornerCase(b, m2)

	logger.Debug("compiler: sweeping accept transitions")
	buildAcceptSweep(b, workAlphabet)

	logger.WithField("transitions", len(b.transitions)).Debug("compiler: done")

	return b.build(m2.InputAlphabet), nil
}
