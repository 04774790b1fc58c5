package main

import (
	"flag"
	"fmt"
	"os"
)

const (
	help = `Requirements:
- a keyword control file (default qchem.ctl) giving at least nstat and
  nstatdyn
- the dynamics driver's geometry file in the same directory
- a template Q-Chem input (default qchem.tmpl) with the $molecule
  section emptied of coordinates; the charge/multiplicity line stays
  - the $rem section must request the EOM gradients and derivative
    couplings so they appear in the output
Flags:
`
)

// overridden by the linker in release builds
var (
	VERSION   = "dev"
	COMP_TIME = "unknown"
)

var (
	debug     = flag.Bool("debug", false, "archive the raw Q-Chem output for each step")
	dry       = flag.Bool("dry", false, "write the input deck and exit without running Q-Chem")
	parseOnly = flag.Bool("parse", false, "skip running Q-Chem and parse an existing qchem.out")
	version   = flag.Bool("version", false, "print the version and exit")
)

// ParseFlags parses command line flags and returns a slice of the
// remaining arguments
func ParseFlags() []string {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), help)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *version {
		fmt.Printf("nxqchem version: %s\ncompiled at %s\n", VERSION, COMP_TIME)
		os.Exit(0)
	}
	return flag.Args()
}
