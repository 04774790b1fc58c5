package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// WriteEnergies writes one state energy per line in state order
func WriteEnergies(filename string, energies []float64) error {
	var buf bytes.Buffer
	for _, e := range energies {
		fmt.Fprintf(&buf, "%20.12f\n", e)
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}

// writeVecs writes rows of 3*natom components as natom lines of three
// floats each
func writeVecs(buf *bytes.Buffer, row []float64) {
	for i := 0; i < len(row); i += 3 {
		fmt.Fprintf(buf, "%20.12f%20.12f%20.12f\n",
			row[i], row[i+1], row[i+2])
	}
}

// WriteGradAll writes the gradients of every state, outer loop over
// states, inner loop over atoms
func WriteGradAll(filename string, grads [][]float64) error {
	var buf bytes.Buffer
	for _, g := range grads {
		writeVecs(&buf, g)
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}

// WriteGradCurrent writes just the gradient of the propagated state
func WriteGradCurrent(filename string, grads [][]float64, nstatdyn int) error {
	var buf bytes.Buffer
	writeVecs(&buf, grads[nstatdyn-1])
	return os.WriteFile(filename, buf.Bytes(), 0644)
}

// WriteCouplings writes the coupling vectors, outer loop over pairs in
// PairIndex order, inner loop over atoms
func WriteCouplings(filename string, couplings [][]float64) error {
	var buf bytes.Buffer
	for _, c := range couplings {
		writeVecs(&buf, c)
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}

// PrintSummary prints the extracted energies, the gradient of the
// propagated state, and the nonzero couplings touching it, tagged
// with the step index and simulation time
func PrintSummary(w io.Writer, st *Stores, nstatdyn, step int, time float64) {
	fmt.Fprintf(w, "step %d, time %.2f fs: state energies (hartree):\n",
		step, time)
	for i, e := range st.Energies {
		fmt.Fprintf(w, "  state %d:%20.12f\n", i+1, e)
	}
	fmt.Fprintf(w, "step %d, time %.2f fs: gradient of state %d (hartree/bohr):\n",
		step, time, nstatdyn)
	var buf bytes.Buffer
	writeVecs(&buf, st.Grads[nstatdyn-1])
	w.Write(buf.Bytes())
	for p, c := range st.Couplings {
		if !touches(p, nstatdyn, len(st.Energies)) || allZero(c) {
			continue
		}
		fmt.Fprintf(w, "step %d, time %.2f fs: coupling for pair %d (a.u.):\n",
			step, time, p)
		buf.Reset()
		writeVecs(&buf, c)
		w.Write(buf.Bytes())
	}
}

// touches reports whether pair p involves the state nstatdyn
func touches(p, nstatdyn, nstat int) bool {
	for higher := 2; higher <= nstat; higher++ {
		for lower := 1; lower < higher; lower++ {
			if PairIndex(higher, lower) == p {
				return higher == nstatdyn || lower == nstatdyn
			}
		}
	}
	return false
}

func allZero(row []float64) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

// ArchiveStep copies the raw Q-Chem output into a DEBUG directory so
// a failed trajectory can be reconstructed afterwards
func ArchiveStep(dir, outfile string, step int) {
	debugDir := dir + "/DEBUG"
	os.MkdirAll(debugDir, 0755)
	dst := fmt.Sprintf("%s/qchem.out.%d", debugDir, step)
	if err := CopyFile(outfile, dst); err != nil {
		Warn("archiving %s: %v", outfile, err)
	}
}
