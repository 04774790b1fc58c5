package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The Q-Chem EOM-CC report dialect. Each labeled block is separated
// from its first data row by blockOffset header lines, and a data row
// carries its Cartesian components in the last three fields.
const blockOffset = 3

const (
	gradILbl = "Gradient of state I"
	gradJLbl = "Gradient of state J"
	nacLbl   = "Total derivative coupling"
	finalLbl = "Final gradient"
)

var (
	stateARe = regexp.MustCompile(`State A: .*: ([0-9]+)/`)
	stateBRe = regexp.MustCompile(`State B: .*: ([0-9]+)/`)
	eomRe    = regexp.MustCompile(`EOM[A-Z]{2}\S* transition`)
	toteRe   = regexp.MustCompile(`Total energy\s+=\s+(-?[0-9]+\.[0-9]+)\s+a\.u\.`)
)

// EventKind labels the report blocks recognized in Q-Chem output
type EventKind int

const (
	StateHeader EventKind = iota
	EnergyReport
	GradientReport
	CouplingReport
	FinalGradientReport
)

func (e EventKind) String() string {
	return []string{
		"StateHeader",
		"EnergyReport",
		"GradientReport",
		"CouplingReport",
		"FinalGradientReport",
	}[e]
}

// Event is one recognized report block. StateA and StateB are the
// scanner's state-header context at the time the block was seen, 0
// when the corresponding header has not appeared yet. Rows holds the
// natom data rows flattened to x,y,z triples.
type Event struct {
	Kind   EventKind
	Which  byte // 'A' or 'B' for StateHeader
	State  int  // state id carried by a StateHeader
	StateA int
	StateB int
	Slot   byte // 'I' or 'J' for GradientReport
	Value  float64
	Rows   []float64
}

// BlockScanner makes a single forward pass over the output lines,
// emitting one Event per recognized block. The current-state context
// set by State A/B headers lives here and is snapshotted into every
// event.
type BlockScanner struct {
	lines  []string
	pos    int
	natom  int
	stateA int
	stateB int
}

func NewBlockScanner(lines []string, natom int) *BlockScanner {
	return &BlockScanner{lines: lines, natom: natom}
}

// Next returns the next recognized block, or nil when the input is
// exhausted. A block whose data rows run off the end of the input is
// a missing-input error.
func (bs *BlockScanner) Next() (*Event, error) {
	for ; bs.pos < len(bs.lines); bs.pos++ {
		line := bs.lines[bs.pos]
		switch {
		case stateARe.MatchString(line):
			bs.stateA = atoi(stateARe.FindStringSubmatch(line)[1])
			bs.pos++
			return bs.event(&Event{
				Kind:  StateHeader,
				Which: 'A',
				State: bs.stateA,
			}), nil
		case stateBRe.MatchString(line):
			bs.stateB = atoi(stateBRe.FindStringSubmatch(line)[1])
			bs.pos++
			return bs.event(&Event{
				Kind:  StateHeader,
				Which: 'B',
				State: bs.stateB,
			}), nil
		case eomRe.MatchString(line) && bs.pos+1 < len(bs.lines):
			m := toteRe.FindStringSubmatch(bs.lines[bs.pos+1])
			if m == nil {
				continue
			}
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad energy in %q",
					ErrStructuralMismatch, bs.lines[bs.pos+1])
			}
			bs.pos += 2
			return bs.event(&Event{Kind: EnergyReport, Value: v}), nil
		case strings.Contains(line, gradILbl):
			return bs.block(&Event{Kind: GradientReport, Slot: 'I'})
		case strings.Contains(line, gradJLbl):
			return bs.block(&Event{Kind: GradientReport, Slot: 'J'})
		case strings.Contains(line, nacLbl):
			return bs.block(&Event{Kind: CouplingReport})
		case strings.Contains(line, finalLbl):
			return bs.block(&Event{Kind: FinalGradientReport})
		}
	}
	return nil, nil
}

// event stamps ev with the current state context
func (bs *BlockScanner) event(ev *Event) *Event {
	ev.StateA = bs.stateA
	ev.StateB = bs.stateB
	return ev
}

// block consumes the fixed header offset and natom data rows following
// the label line at bs.pos and attaches them to ev
func (bs *BlockScanner) block(ev *Event) (*Event, error) {
	label := bs.lines[bs.pos]
	bs.pos += 1 + blockOffset
	rows, err := bs.rows(label)
	if err != nil {
		return nil, err
	}
	ev.Rows = rows
	return bs.event(ev), nil
}

// rows parses natom data rows at bs.pos, taking the last three fields
// of each as the x, y, z components
func (bs *BlockScanner) rows(label string) ([]float64, error) {
	if bs.pos+bs.natom > len(bs.lines) {
		return nil, fmt.Errorf(
			"%w: %d rows left for block %q, want %d",
			ErrMissingInput, len(bs.lines)-bs.pos,
			strings.TrimSpace(label), bs.natom)
	}
	rows := make([]float64, 0, 3*bs.natom)
	for i := 0; i < bs.natom; i++ {
		fields := strings.Fields(bs.lines[bs.pos])
		if len(fields) < 3 {
			return nil, fmt.Errorf(
				"%w: malformed data row %q in block %q",
				ErrMissingInput, bs.lines[bs.pos],
				strings.TrimSpace(label))
		}
		for _, f := range fields[len(fields)-3:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf(
					"%w: malformed data row %q in block %q",
					ErrMissingInput, bs.lines[bs.pos],
					strings.TrimSpace(label))
			}
			rows = append(rows, v)
		}
		bs.pos++
	}
	return rows, nil
}

func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return v
}
