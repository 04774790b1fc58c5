/*
Q-Chem interface for surface-hopping dynamics
---------------------------------------------
This program is invoked once per trajectory timestep by the dynamics
driver. It writes a Q-Chem input deck for the current geometry, runs
Q-Chem, extracts the EOM-CC state energies, energy gradients, and
nonadiabatic coupling vectors from the output, aligns the coupling
phases with the previous step, and writes the numeric result files the
propagator reads.
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Error kinds surfaced at the process boundary. Everything fatal wraps
// one of these three.
var (
	ErrMissingInput       = errors.New("output file absent or truncated")
	ErrStructuralMismatch = errors.New("output does not match the expected report structure")
	ErrExternalProcess    = errors.New("external program exited abnormally")
)

// Global accumulates run diagnostics
var Global struct {
	Warnings int
}

// Result file names expected by the dynamics driver.
const (
	epotFile   = "epot"
	gradAll    = "grad.all"
	gradCur    = "grad"
	nadFile    = "nad_vectors"
	nadNewFile = "nad_vectors.new"
	oldNadFile = "oldh"
)

// RunStep performs one full timestep: deck, Q-Chem, extraction, phase
// alignment, result files. dir is the work directory holding the
// geometry file, the previous step's couplings, and the Q-Chem files.
func RunStep(dir string) error {
	natom := Conf.Int(Natom)
	nstat := Conf.Int(Nstat)
	nstatdyn := Conf.Int(Nstatdyn)
	lvprt := Conf.Int(Lvprt)

	names, coords, err := ReadGeom(filepath.Join(dir, Conf.Str(GeomFile)))
	if err != nil {
		return err
	}
	if natom == 0 {
		natom = len(names)
		Conf.Set(Natom, natom)
	} else if natom != len(names) {
		return fmt.Errorf("%w: geometry has %d atoms, control file says %d",
			ErrStructuralMismatch, len(names), natom)
	}

	base := filepath.Join(dir, "qchem")
	if !*parseOnly {
		qc, err := LoadQchem(filepath.Join(dir, Conf.Str(QchemTmpl)))
		if err != nil {
			return err
		}
		qc.FormatGeom(names, coords)
		qc.WriteInput(base + ".inp")
		if *dry {
			return nil
		}
		if err := qc.Run(base); err != nil {
			return err
		}
	}

	lines, err := ReadFile(base + ".out")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMissingInput, err)
	}
	st, err := Assemble(NewBlockScanner(lines, natom), nstat, natom,
		nstatdyn, Conf.Bool(StrictNac))
	if err != nil {
		return err
	}

	// the pre-alignment snapshot goes out first so a phase flip is
	// visible to the driver
	if err := WriteCouplings(filepath.Join(dir, nadNewFile), st.Couplings); err != nil {
		return err
	}
	flipped, err := AlignStep(dir, st)
	if err != nil {
		return err
	}
	if lvprt >= 1 && len(flipped) > 0 {
		fmt.Printf("step %d: phase flipped for pairs %v\n",
			Conf.Int(Step), flipped)
	}

	if err := WriteEnergies(filepath.Join(dir, epotFile), st.Energies); err != nil {
		return err
	}
	if err := WriteGradAll(filepath.Join(dir, gradAll), st.Grads); err != nil {
		return err
	}
	if err := WriteGradCurrent(filepath.Join(dir, gradCur), st.Grads, nstatdyn); err != nil {
		return err
	}
	if err := WriteCouplings(filepath.Join(dir, nadFile), st.Couplings); err != nil {
		return err
	}

	if lvprt >= 1 {
		PrintSummary(os.Stdout, st, nstatdyn, Conf.Int(Step), Conf.Float(Time))
	}
	if *debug {
		ArchiveStep(dir, base+".out", Conf.Int(Step))
	}
	return nil
}

// AlignStep applies the phase-continuity correction to st.Couplings in
// place, either through the configured external aligner or the
// built-in overlap rule, and reports which pairs were flipped.
func AlignStep(dir string, st *Stores) ([]int, error) {
	natom := Conf.Int(Natom)
	if cmd := Conf.Str(PhaseCmd); cmd != "" {
		if err := RunProgram(cmd, dir, nadNewFile, nadFile); err != nil {
			return nil, fmt.Errorf("%w: phase aligner: %v",
				ErrExternalProcess, err)
		}
		aligned, err := ReadCouplings(filepath.Join(dir, nadFile),
			len(st.Couplings), natom)
		if err != nil {
			return nil, err
		}
		flipped := Flipped(st.Couplings, aligned)
		st.Couplings = aligned
		return flipped, nil
	}
	prev, err := ReadCouplings(filepath.Join(dir, oldNadFile),
		len(st.Couplings), natom)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// first step of a trajectory, nothing to align against
			return nil, nil
		}
		return nil, err
	}
	return AlignPhases(st.Couplings, prev), nil
}

func main() {
	args := ParseFlags()
	infile := "qchem.ctl"
	if len(args) >= 1 {
		infile = args[0]
	}
	ParseInfile(infile)
	if err := Conf.Check(); err != nil {
		errExit(err, "checking control file")
	}
	if err := RunStep(filepath.Dir(infile)); err != nil {
		errExit(err, "")
	}
	if Global.Warnings > 0 {
		fmt.Printf("finished with %d warnings\n", Global.Warnings)
	}
}
