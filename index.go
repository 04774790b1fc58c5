package main

import "fmt"

// Canonical orders an unordered pair of 1-based state ids as (higher,
// lower) and returns the antisymmetry sign of the reported order: +1
// when (a, b) already is (higher, lower), -1 when it is reversed. A
// state cannot couple to itself.
func Canonical(a, b int) (higher, lower, sign int, err error) {
	if a == b {
		return 0, 0, 0, fmt.Errorf(
			"%w: state %d paired with itself",
			ErrStructuralMismatch, a)
	}
	if a > b {
		return a, b, 1, nil
	}
	return b, a, -1, nil
}

// PairIndex returns the linear index of the canonical pair (higher,
// lower) in the lower-triangular coupling store
func PairIndex(higher, lower int) int {
	return (higher-1)*(higher-2)/2 + (lower - 1)
}

// NPairs returns the number of distinct state pairs for nstat states
func NPairs(nstat int) int {
	return nstat * (nstat - 1) / 2
}
