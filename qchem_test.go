package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadQchem(t *testing.T) {
	got, err := LoadQchem("testfiles/qchem.tmpl")
	if err != nil {
		t.Fatal(err)
	}
	want := &Qchem{
		Head: `$comment
surface hopping single point
$end

$molecule
0 1
`,
		Geometry: "",
		Tail: `$end

$rem
jobtype             sp
method              eom-ccsd
basis               aug-cc-pVDZ
ee_states           2
cc_state_to_opt     [1,2]
calc_nac            true
$end
`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got\n%#v, wanted\n%#v", got, want)
	}
}

func TestWriteInput(t *testing.T) {
	qc, err := LoadQchem("testfiles/qchem.tmpl")
	if err != nil {
		t.Fatal(err)
	}
	names, coords, err := ReadGeom("testfiles/geom")
	if err != nil {
		t.Fatal(err)
	}
	qc.FormatGeom(names, coords)
	write := filepath.Join(t.TempDir(), "qchem.inp")
	qc.WriteInput(write)
	byts, err := os.ReadFile(write)
	if err != nil {
		t.Fatal(err)
	}
	str := string(byts)
	if !strings.Contains(str, "$molecule\n0 1\nO ") {
		t.Errorf("geometry does not follow the charge line:\n%s", str)
	}
	if strings.Count(str, "$end") != 3 {
		t.Errorf("wanted 3 $end markers:\n%s", str)
	}
	// 1.4309088364 bohr = 0.7572043471 angstrom
	if !strings.Contains(str, "0.7572043471") {
		t.Errorf("coordinates not converted to angstrom:\n%s", str)
	}
}

func TestReadGeom(t *testing.T) {
	names, coords, err := ReadGeom("testfiles/geom")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"O", "H", "H"}) {
		t.Errorf("got names %v", names)
	}
	want := []float64{
		0, 0, 0.2216783625,
		0, 1.4309088364, -0.8867134501,
		0, -1.4309088364, -0.8867134501,
	}
	if !reflect.DeepEqual(coords, want) {
		t.Errorf("got coords %v, wanted %v", coords, want)
	}
}
