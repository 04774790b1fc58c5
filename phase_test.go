package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func couplingFixture() [][]float64 {
	return [][]float64{
		{0.01, 0.02, 0.03, 0.04, 0.05, 0.06},
		{-0.10, 0.20, -0.30, 0.40, -0.50, 0.60},
		{0.00, 0.00, 0.07, 0.00, 0.00, -0.07},
	}
}

func negated(row []float64) []float64 {
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = -v
	}
	return out
}

func TestAlignPhasesNoop(t *testing.T) {
	cur := couplingFixture()
	prev := couplingFixture()
	flipped := AlignPhases(cur, prev)
	if flipped != nil {
		t.Errorf("identical stores flipped pairs %v", flipped)
	}
	if !reflect.DeepEqual(cur, couplingFixture()) {
		t.Errorf("identical stores changed the couplings: %v", cur)
	}
}

func TestAlignPhasesFlip(t *testing.T) {
	cur := couplingFixture()
	prev := couplingFixture()
	prev[1] = negated(prev[1])
	flipped := AlignPhases(cur, prev)
	if !reflect.DeepEqual(flipped, []int{1}) {
		t.Errorf("got flipped pairs %v, wanted [1]", flipped)
	}
	want := couplingFixture()
	want[1] = negated(want[1])
	if !reflect.DeepEqual(cur, want) {
		t.Errorf("got %v, wanted %v", cur, want)
	}
}

func TestReadCouplings(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "oldh")
	st := couplingFixture()
	if err := WriteCouplings(file, st); err != nil {
		t.Fatal(err)
	}
	got, err := ReadCouplings(file, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, st) {
		t.Errorf("got %v, wanted %v", got, st)
	}

	_, err = ReadCouplings(filepath.Join(dir, "nonexistent"), 3, 2)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, wanted os.ErrNotExist", err)
	}

	_, err = ReadCouplings(file, 4, 2)
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("got %v, wanted a missing-input error", err)
	}
}
