package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testStores() *Stores {
	st := NewStores(2, 2)
	st.Energies = []float64{-75.123456, -74.987654}
	copy(st.Grads[0], []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6})
	copy(st.Grads[1], []float64{1.1, 1.2, 1.3, 1.4, 1.5, 1.6})
	copy(st.Couplings[0], []float64{0.01, 0.02, 0.03, 0.04, 0.05, 0.06})
	return st
}

func TestWriteEnergies(t *testing.T) {
	file := filepath.Join(t.TempDir(), "epot")
	if err := WriteEnergies(file, testStores().Energies); err != nil {
		t.Fatal(err)
	}
	byts, _ := os.ReadFile(file)
	want := "    -75.123456000000\n    -74.987654000000\n"
	if string(byts) != want {
		t.Errorf("got %q, wanted %q", byts, want)
	}
}

func TestWriteGradients(t *testing.T) {
	dir := t.TempDir()
	st := testStores()
	all := filepath.Join(dir, "grad.all")
	cur := filepath.Join(dir, "grad")
	if err := WriteGradAll(all, st.Grads); err != nil {
		t.Fatal(err)
	}
	if err := WriteGradCurrent(cur, st.Grads, 2); err != nil {
		t.Fatal(err)
	}
	abyts, _ := os.ReadFile(all)
	cbyts, _ := os.ReadFile(cur)
	alines := strings.Split(strings.TrimRight(string(abyts), "\n"), "\n")
	if len(alines) != 4 {
		t.Fatalf("got %d lines in grad.all, wanted 4", len(alines))
	}
	// the current-state file is the nstatdyn slice of the full file
	if string(cbyts) != strings.Join(alines[2:], "\n")+"\n" {
		t.Errorf("grad is not the state-2 slice of grad.all")
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, testStores(), 2, 7, 3.5)
	out := buf.String()
	for _, want := range []string{
		"step 7, time 3.50 fs",
		"state 1:    -75.123456000000",
		"gradient of state 2",
		"coupling for pair 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
