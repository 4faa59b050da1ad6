package compiler

import "github.com/asphodex/tm2to1"

// ExportUnpackCell exposes unpackCell to compiler_test's external test
// package, which otherwise has no way to decode a compiled machine's
// composite tape back into the two original tracks it represents.
func ExportUnpackCell(c turing.Letter) (a turing.Letter, h1 bool, b turing.Letter, h2 bool, ok bool) {
	return unpackCell(c)
}

// ExportIsGuard exposes isGuard to compiler_test.
func ExportIsGuard(c turing.Letter) bool {
	return isGuard(c)
}
