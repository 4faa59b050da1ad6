package compiler_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asphodex/tm2to1"
	"github.com/asphodex/tm2to1/compiler"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

// decodedTapes unpacks a compiled one-tape machine's final tape back into
// the two original tracks, skipping the leading guard cell. Blank track
// components are left out of both maps, so a composite cell holding blank
// on both tracks contributes nothing.
func decodedTapes(t *testing.T, tm *turing.TuringMachine, cfg turing.Configuration) (map[int]turing.Letter, map[int]turing.Letter) {
	t.Helper()

	tape1 := make(map[int]turing.Letter)
	tape2 := make(map[int]turing.Letter)

	for pos, cell := range cfg.Tapes[0] {
		if pos <= 0 {
			continue
		}

		a, _, b, _, ok := compiler.ExportUnpackCell(cell)
		require.True(t, ok, "position %d should decode as a composite cell, got %q", pos, cell)

		// Position 0 is the guard; original tape position i is recorded at
		// composite position i+1 by the input-conditioning chain.
		origPos := pos - 1

		if a != turing.Blank {
			tape1[origPos] = a
		}
		if b != turing.Blank {
			tape2[origPos] = b
		}
	}

	return tape1, tape2
}

// trimBlanks drops blank-valued entries so an explicit identity write of
// blank compares equal to a position that was simply never visited.
func trimBlanks(m map[int]turing.Letter) map[int]turing.Letter {
	out := make(map[int]turing.Letter, len(m))
	for pos, l := range m {
		if l != turing.Blank {
			out[pos] = l
		}
	}
	return out
}

// copyMachine is a two-tape machine over {a, b} that copies its tape-1
// input onto tape-2, one letter at a time, then accepts.
func copyMachine() *turing.TuringMachine {
	tm := &turing.TuringMachine{
		NumTapes:      2,
		InputAlphabet: map[turing.Letter]struct{}{"a": {}, "b": {}},
		Transitions:   map[turing.TransitionKey]turing.Transition{},
	}

	for _, l := range []turing.Letter{"a", "b"} {
		tm.Transitions[turing.TransitionKey{State: turing.InitialState, Letters: [2]turing.Letter{l, turing.Blank}}] = turing.Transition{
			NextState:  turing.InitialState,
			Letters:    [2]turing.Letter{l, l},
			Directions: [2]turing.Direction{turing.Right, turing.Right},
		}
	}
	tm.Transitions[turing.TransitionKey{State: turing.InitialState, Letters: [2]turing.Letter{turing.Blank, turing.Blank}}] = turing.Transition{
		NextState:  turing.AcceptingState,
		Letters:    [2]turing.Letter{turing.Blank, turing.Blank},
		Directions: [2]turing.Direction{turing.Stay, turing.Stay},
	}

	return tm
}

// blankAcceptMachine accepts immediately on blank input without ever
// consuming any input letters -- this is the empty-input corner case.
func blankAcceptMachine() *turing.TuringMachine {
	return &turing.TuringMachine{
		NumTapes:      2,
		InputAlphabet: map[turing.Letter]struct{}{"a": {}},
		Transitions: map[turing.TransitionKey]turing.Transition{
			{State: turing.InitialState, Letters: [2]turing.Letter{turing.Blank, turing.Blank}}: {
				NextState:  turing.AcceptingState,
				Letters:    [2]turing.Letter{turing.Blank, turing.Blank},
				Directions: [2]turing.Direction{turing.Stay, turing.Stay},
			},
		},
	}
}

// leftMoveMachine has a single transition that both changes the tape-1
// letter under the head and moves that head left before accepting, so its
// final tape-1 write is not an identity echo of what was already there.
func leftMoveMachine() *turing.TuringMachine {
	return &turing.TuringMachine{
		NumTapes:      2,
		InputAlphabet: map[turing.Letter]struct{}{"a": {}, "b": {}},
		Transitions: map[turing.TransitionKey]turing.Transition{
			{State: turing.InitialState, Letters: [2]turing.Letter{"a", turing.Blank}}: {
				NextState:  turing.AcceptingState,
				Letters:    [2]turing.Letter{"b", turing.Blank},
				Directions: [2]turing.Direction{turing.Left, turing.Stay},
			},
		},
	}
}

// rejectingMachine is copyMachine without its transition for reading b on
// tape 1, so simulating it on an input containing b fails to find a
// transition on both the original and the compiled machine.
func rejectingMachine() *turing.TuringMachine {
	tm := copyMachine()
	delete(tm.Transitions, turing.TransitionKey{State: turing.InitialState, Letters: [2]turing.Letter{"b", turing.Blank}})
	return tm
}

func TestCompile_RejectsWrongArity(t *testing.T) {
	t.Parallel()

	tm := &turing.TuringMachine{NumTapes: 1, InputAlphabet: map[turing.Letter]struct{}{"a": {}}}
	_, err := compiler.Compile(tm, quietLogger())
	require.ErrorIs(t, err, compiler.ErrNotTwoTaped)
}

func TestCompile_ProducesOneTapeMachine(t *testing.T) {
	t.Parallel()

	m1, err := compiler.Compile(copyMachine(), quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, m1.NumTapes)
	assert.NotEmpty(t, m1.Transitions)
}

func TestCompile_WellFormed(t *testing.T) {
	t.Parallel()

	for name, m2 := range map[string]*turing.TuringMachine{
		"copy":         copyMachine(),
		"blank accept": blankAcceptMachine(),
		"rejecting":    rejectingMachine(),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.NoError(t, m2.Validate())

			m1, err := compiler.Compile(m2, quietLogger())
			require.NoError(t, err)
			assert.NoError(t, m1.Validate())
		})
	}
}

func TestCompile_SemanticEquivalence(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name     string
		m2       *turing.TuringMachine
		input    []turing.Letter
		accepted bool
	}{
		{name: "S1 trivial accept on blank input", m2: blankAcceptMachine(), input: nil, accepted: true},
		{name: "S2 single letter echo", m2: copyMachine(), input: []turing.Letter{"a"}, accepted: true},
		{name: "S3 left move on tape 1 with a letter change", m2: leftMoveMachine(), input: []turing.Letter{"a"}, accepted: true},
		{name: "S4 copy tape 1 to tape 2, multiple letters", m2: copyMachine(), input: []turing.Letter{"a", "b", "a"}, accepted: true},
		{name: "S5 reject by no-transition", m2: rejectingMachine(), input: []turing.Letter{"a", "b"}, accepted: false},
		{name: "S6 longer copy forces tape extension", m2: copyMachine(), input: []turing.Letter{"a", "b", "a", "b", "a", "b"}, accepted: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			m2cfg, m2err := tc.m2.Simulate(ctx, tc.input, 10_000)

			m1, err := compiler.Compile(tc.m2, quietLogger())
			require.NoError(t, err)

			m1cfg, m1err := m1.Simulate(ctx, tc.input, 200_000)

			assert.Equal(t, tc.accepted, m2cfg.Accepted)
			assert.Equal(t, m2cfg.Accepted, m1cfg.Accepted)

			if tc.accepted {
				require.NoError(t, m2err)
				require.NoError(t, m1err)

				tape1, tape2 := decodedTapes(t, m1, m1cfg)
				assert.Equal(t, trimBlanks(m2cfg.Tapes[0]), tape1)
				assert.Equal(t, trimBlanks(m2cfg.Tapes[1]), tape2)
			}
		})
	}
}

func TestCompile_AcceptCollapsesToSingleState(t *testing.T) {
	t.Parallel()

	m1, err := compiler.Compile(copyMachine(), quietLogger())
	require.NoError(t, err)

	ctx := context.Background()
	cfg, err := m1.Simulate(ctx, []turing.Letter{"a", "b"}, 100_000)
	require.NoError(t, err)
	assert.True(t, cfg.Accepted)
	assert.Equal(t, turing.AcceptingState, cfg.State)
}

func TestCompile_Deterministic(t *testing.T) {
	t.Parallel()

	m2 := copyMachine()
	first, err := compiler.Compile(m2, quietLogger())
	require.NoError(t, err)
	second, err := compiler.Compile(m2, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, first.Transitions, second.Transitions)
}

func TestCompile_GuardNeverOverwritten(t *testing.T) {
	t.Parallel()

	m1, err := compiler.Compile(copyMachine(), quietLogger())
	require.NoError(t, err)

	ctx := context.Background()
	cfg, err := m1.Simulate(ctx, []turing.Letter{"a", "b", "a"}, 100_000)
	require.NoError(t, err)

	assert.True(t, compiler.ExportIsGuard(cfg.Tapes[0][0]), "position 0 must remain the guard sentinel")
}
