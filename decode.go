// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bustrace

// A BusState is one discrete phase of the external bus cycle, identified
// by the 3-bit state-select code sampled each clock.
//
type BusState uint8

// Bus states. StateUnknown covers samples whose state-select group has an
// indeterminate bit; the raw pattern stays available through
// Sample.StateCode.
//
const (
	StateUnknown BusState = iota
	StateT1               // cycle start
	StateT1I              // cycle start, interrupt acknowledge
	StateT2               // address / command phase
	StateT3               // data transfer phase
	StateT4               // extended wait
	StateT5               // extended wait
	StateWait             // idle
	StateStopped
)

var stateNames = [...]string{"UNKNOWN", "T1", "T1I", "T2", "T3", "T4", "T5", "TWAIT", "STOPPED"}

func (s BusState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}

// CycleStart reports whether s begins a new bus cycle.
//
func (s BusState) CycleStart() bool { return s == StateT1 || s == StateT1I }

// A StateTable maps every resolved 3-bit state-select pattern to a
// BusState, indexed by s2<<2 | s1<<1 | s0. The table is exhaustive: all 8
// patterns decode, there is no failure mode.
//
type StateTable [8]BusState

// DefaultStates is the state encoding of the target CPU board. One source
// tool disagreed on the 101/111 assignments in its comments; this table
// follows the code of the majority of the tools and should be checked
// against the hardware's documented truth table before trusting a trace
// from a different design.
//
var DefaultStates = StateTable{
	0b000: StateWait,
	0b001: StateT3,
	0b010: StateT1,
	0b011: StateStopped,
	0b100: StateT2,
	0b101: StateT5,
	0b110: StateT1I,
	0b111: StateT4,
}

// Decode maps the state-select group of s to its BusState. Pure: no side
// effects, never fails. An indeterminate select bit yields StateUnknown.
//
func (t *StateTable) Decode(s *Sample) BusState {
	var n uint
	for _, b := range [...]Bit{s.S2, s.S1, s.S0} {
		n <<= 1
		switch b {
		case High:
			n |= 1
		case Unknown:
			return StateUnknown
		}
	}
	return t[n]
}

// A CycleType classifies a bus cycle. It is carried on data lines D7:D6
// during the address/command phase and is undefined in any other state.
//
type CycleType uint8

// Cycle types, in D7:D6 order. The assignment is fixed by the capture's
// bit convention.
//
const (
	CycleUnknown CycleType = iota
	PCI                    // 00: instruction fetch
	PCR                    // 01: data read
	PCW                    // 10: data write
	PCC                    // 11: command / halt class
)

var cycleNames = [...]string{"?", "PCI", "PCR", "PCW", "PCC"}

func (c CycleType) String() string {
	if int(c) < len(cycleNames) {
		return cycleNames[c]
	}
	return "?"
}

// DecodeCycleType reads the cycle classification from D7:D6 of s. Only
// meaningful while the bus is in the address/command phase; the caller is
// expected to sample it there. Returns CycleUnknown when either line is
// indeterminate.
//
func DecodeCycleType(s *Sample) CycleType {
	d7, d6 := s.Data[7], s.Data[6]
	if d7 == Unknown || d6 == Unknown {
		return CycleUnknown
	}
	var n uint
	if d7 == High {
		n |= 2
	}
	if d6 == High {
		n |= 1
	}
	return [...]CycleType{PCI, PCR, PCW, PCC}[n]
}
