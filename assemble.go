package main

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Stores holds the three dense per-step result arrays. Grads has one
// row of 3*natom components per state, Couplings one row per state
// pair in PairIndex order with the higher state as the bra index.
// Rows stay zero where the output reports nothing.
type Stores struct {
	Energies  []float64
	Grads     [][]float64
	Couplings [][]float64
}

// NewStores returns zero-filled stores sized for nstat states and
// natom atoms
func NewStores(nstat, natom int) *Stores {
	st := &Stores{
		Grads:     make([][]float64, nstat),
		Couplings: make([][]float64, NPairs(nstat)),
	}
	for i := range st.Grads {
		st.Grads[i] = make([]float64, 3*natom)
	}
	for i := range st.Couplings {
		st.Couplings[i] = make([]float64, 3*natom)
	}
	return st
}

// Assemble drains the scanner and populates the result stores.
// Energies are assigned to states in emission order; gradients go to
// the state named by the block's A or B context; couplings go to the
// canonical pair slot with the antisymmetry sign applied. With no
// gradient blocks at all, a final-gradient block is taken as the
// single gradient of state nstatdyn. strict turns a coupling block
// without a resolvable state context from a warning into an error.
func Assemble(bs *BlockScanner, nstat, natom, nstatdyn int, strict bool) (*Stores, error) {
	st := NewStores(nstat, natom)
	var (
		ngrad int
		final []float64
	)
	for {
		ev, err := bs.Next()
		if err != nil {
			return nil, err
		}
		if ev == nil {
			break
		}
		switch ev.Kind {
		case EnergyReport:
			st.Energies = append(st.Energies, ev.Value)
		case GradientReport:
			state := ev.StateA
			if ev.Slot == 'J' {
				state = ev.StateB
			}
			if state == 0 {
				return nil, fmt.Errorf(
					"%w: gradient block for slot %c before its state header",
					ErrStructuralMismatch, ev.Slot)
			}
			if state > nstat {
				return nil, fmt.Errorf(
					"%w: gradient reported for state %d with nstat=%d",
					ErrStructuralMismatch, state, nstat)
			}
			copy(st.Grads[state-1], ev.Rows)
			ngrad++
		case CouplingReport:
			if ev.StateA == 0 || ev.StateB == 0 {
				if strict {
					return nil, fmt.Errorf(
						"%w: coupling block without a state context",
						ErrStructuralMismatch)
				}
				Warn("skipping coupling block without a state context")
				continue
			}
			higher, lower, sign, err := Canonical(ev.StateA, ev.StateB)
			if err != nil {
				return nil, err
			}
			if higher > nstat {
				return nil, fmt.Errorf(
					"%w: coupling reported for pair (%d,%d) with nstat=%d",
					ErrStructuralMismatch, ev.StateA, ev.StateB, nstat)
			}
			row := st.Couplings[PairIndex(higher, lower)]
			copy(row, ev.Rows)
			if sign < 0 {
				floats.Scale(-1, row)
			}
		case FinalGradientReport:
			final = ev.Rows
		}
	}
	if len(st.Energies) != nstat {
		return nil, fmt.Errorf(
			"%w: found %d state energies, want %d",
			ErrStructuralMismatch, len(st.Energies), nstat)
	}
	if ngrad == 0 {
		if final == nil {
			return nil, fmt.Errorf(
				"%w: no gradient block of any form found",
				ErrStructuralMismatch)
		}
		copy(st.Grads[nstatdyn-1], final)
	}
	return st, nil
}
