package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const angbohr = 0.5291772109 // Angstrom per Bohr

// Qchem holds the data for writing Q-Chem input files. Head runs
// through the charge/multiplicity line of the $molecule section, Tail
// from that section's $end to the end of the template.
type Qchem struct {
	Head     string
	Geometry string
	Tail     string
}

// LoadQchem loads a template Q-Chem input file, dropping any
// coordinates present in the $molecule section
func LoadQchem(filename string) (*Qchem, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingInput, err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	var (
		buf    bytes.Buffer
		qc     Qchem
		inmol  bool
		chgmul bool
	)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(strings.ToLower(line), "$molecule"):
			inmol = true
			buf.WriteString(line + "\n")
		case inmol && !chgmul:
			// charge and multiplicity stay with the header
			buf.WriteString(line + "\n")
			qc.Head = buf.String()
			buf.Reset()
			chgmul = true
		case inmol && strings.Contains(strings.ToLower(line), "$end"):
			inmol = false
			buf.WriteString(line + "\n")
		case inmol:
			// template coordinates are discarded
		default:
			buf.WriteString(line + "\n")
		}
	}
	qc.Tail = buf.String()
	if qc.Head == "" {
		return nil, fmt.Errorf("%w: no $molecule section in %s",
			ErrStructuralMismatch, filename)
	}
	return &qc, nil
}

// WriteInput writes a Q-Chem input file
func (q *Qchem) WriteInput(filename string) {
	var buf bytes.Buffer
	buf.WriteString(q.Head)
	buf.WriteString(q.Geometry)
	buf.WriteString(q.Tail)
	os.WriteFile(filename, buf.Bytes(), 0755)
}

// FormatGeom formats the driver's geometry (Bohr) as the Angstrom
// coordinate lines of a $molecule section
func (q *Qchem) FormatGeom(names []string, coords []float64) {
	var buf bytes.Buffer
	for i, name := range names {
		fmt.Fprintf(&buf, "%-3s%15.10f%15.10f%15.10f\n", name,
			coords[3*i]*angbohr,
			coords[3*i+1]*angbohr,
			coords[3*i+2]*angbohr)
	}
	q.Geometry = buf.String()
}

// Run runs Q-Chem on base.inp, writing base.out, and waits for it
func (q *Qchem) Run(base string) error {
	dir := filepath.Dir(base)
	name := filepath.Base(base)
	err := RunProgram(Conf.Str(QchemCmd), dir, name+".inp", name+".out")
	if err != nil {
		return fmt.Errorf("%w: qchem: %v", ErrExternalProcess, err)
	}
	return nil
}

// ReadGeom reads the dynamics driver's geometry file, one atom per
// line as symbol, atomic number, x, y, z in Bohr, and mass. It
// returns the atom names and the flattened coordinates.
func ReadGeom(filename string) (names []string, coords []float64, err error) {
	lines, err := ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMissingInput, err)
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		for _, fld := range fields[2:5] {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, nil, fmt.Errorf(
					"%w: malformed geometry line %q",
					ErrMissingInput, line)
			}
			coords = append(coords, v)
		}
		names = append(names, fields[0])
	}
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("%w: no atoms in %s",
			ErrMissingInput, filename)
	}
	return names, coords, nil
}
