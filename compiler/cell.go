package compiler

import (
	"strings"

	"github.com/asphodex/tm2to1"
)

// guardLetter is the wrapped form of the two-separator sentinel -- wrap is
// applied uniformly (exactly once, see packCell/pack) so every recognizer
// below compares against this single canonical value.
var guardLetter = turing.Letter(wrap(guard))

// packCell serializes one paired position of the two original tapes -- the
// tape-1 letter a, the tape-2 letter b, and whether either simulated head
// currently sits here -- into a single 1TM cell letter.
func packCell(a turing.Letter, h1 bool, b turing.Letter, h2 bool) turing.Letter {
	left := string(a)
	if h1 {
		left = headMark + left
	}

	right := string(b)
	if h2 {
		right = headMark + right
	}

	return turing.Letter(wrap(left + sep + right))
}

// blankCell is the composite cell both simulated tapes materialize to the
// first time a simulated head visits previously-unexplored tape.
func blankCell() turing.Letter {
	return packCell(turing.Blank, false, turing.Blank, false)
}

// isGuard reports whether c is the left-sentinel cell.
func isGuard(c turing.Letter) bool {
	return c == guardLetter
}

// unpackCell is packCell's inverse. ok is false for the guard cell or for
// any letter that isn't a composite cell at all (e.g. a plain, not-yet-paired
// blank the simulated region hasn't reached).
func unpackCell(c turing.Letter) (a turing.Letter, h1 bool, b turing.Letter, h2 bool, ok bool) {
	if isGuard(c) {
		return "", false, "", false, false
	}

	flat := unwrap(string(c))

	parts := strings.SplitN(flat, sep, 2)
	if len(parts) != 2 {
		return "", false, "", false, false
	}

	left, right := parts[0], parts[1]

	h1 = strings.HasPrefix(left, headMark) && left != headMark
	if h1 {
		left = left[len(headMark):]
	}

	h2 = strings.HasPrefix(right, headMark) && right != headMark
	if h2 {
		right = right[len(headMark):]
	}

	return turing.Letter(left), h1, turing.Letter(right), h2, true
}

// hasHead1 reports whether c carries the head-1 mark.
func hasHead1(c turing.Letter) bool {
	_, h1, _, _, ok := unpackCell(c)
	return ok && h1
}

// hasHead2 reports whether c carries the head-2 mark.
func hasHead2(c turing.Letter) bool {
	_, _, _, h2, ok := unpackCell(c)
	return ok && h2
}

// isComposite reports whether c decodes as a paired cell at all (as opposed
// to a plain, not-yet-extended blank or the guard).
func isComposite(c turing.Letter) bool {
	_, _, _, _, ok := unpackCell(c)
	return ok
}
