package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ReadCouplings reads a coupling-vector file of npair*natom rows of
// three floats into one row of 3*natom components per pair. A file
// that exists but runs short is a missing-input error; a file that
// does not exist surfaces os.ErrNotExist for the caller to treat as
// the first step of a trajectory.
func ReadCouplings(filename string, npair, natom int) ([][]float64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out := make([][]float64, npair)
	for i := range out {
		out[i] = make([]float64, 0, 3*natom)
	}
	scanner := bufio.NewScanner(f)
	row := 0
	for scanner.Scan() && row < npair*natom {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: malformed row %q in %s",
				ErrMissingInput, line, filename)
		}
		for _, fld := range fields[:3] {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: malformed row %q in %s",
					ErrMissingInput, line, filename)
			}
			out[row/natom] = append(out[row/natom], v)
		}
		row++
	}
	if row != npair*natom {
		return nil, fmt.Errorf("%w: %s has %d rows, want %d",
			ErrMissingInput, filename, row, npair*natom)
	}
	return out, nil
}

// AlignPhases flips the sign of each pair's coupling vector in cur, in
// place, whenever its overlap with the same pair in prev is negative,
// so the vectors vary continuously across steps. It returns the
// 0-based indices of the flipped pairs.
func AlignPhases(cur, prev [][]float64) (flipped []int) {
	for p := range cur {
		if floats.Dot(cur[p], prev[p]) < 0 {
			floats.Scale(-1, cur[p])
			flipped = append(flipped, p)
		}
	}
	return
}

// Flipped reports which pairs differ in sign between the uncorrected
// and corrected stores
func Flipped(before, after [][]float64) (flipped []int) {
	for p := range before {
		if floats.Dot(before[p], after[p]) < 0 {
			flipped = append(flipped, p)
		}
	}
	return
}
