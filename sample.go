// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bustrace

// A Bit is the tri-state value of one captured signal line: resolved low,
// resolved high, or indeterminate (high impedance or mid-transition at
// sampling time).
//
type Bit uint8

// Bit values.
//
const (
	Low Bit = iota
	High
	Unknown
)

// ParseBit converts a captured signal character to a Bit. Only '0' and '1'
// resolve; anything else, including the usual '?' marker, is Unknown.
// Unknown is never treated as Low.
//
func ParseBit(s string) Bit {
	switch s {
	case "0":
		return Low
	case "1":
		return High
	}
	return Unknown
}

func (b Bit) String() string {
	switch b {
	case Low:
		return "0"
	case High:
		return "1"
	}
	return "?"
}

// Capture signal line names, as written by the capture tool (leading
// whitespace already stripped).
//
const (
	SigSync = "SYNC"
	SigInt  = "INT"
	SigDEn  = "CP_D_EN"
)

// A Sample is one captured row: a timestamp and the value of every
// monitored line at that instant. Samples are never mutated once built;
// all higher-level entities are read-only projections of a Sample slice
// ordered by non-decreasing Time (ties broken by Index, the capture row
// order).
//
type Sample struct {
	Time  float64 // seconds
	Index int     // capture row order

	S2, S1, S0 Bit // state-select group
	Sync       Bit
	Int        Bit
	DEn        Bit // data bus enable (CP_D_EN)

	Data [8]Bit // Data[i] is line Di
}

// Byte reconstructs the data bus value, D7 first. If any line is
// indeterminate the whole byte is unresolved and ok is false; a partially
// decoded byte is never fabricated.
//
func (s *Sample) Byte() (b byte, ok bool) {
	for i := 7; i >= 0; i-- {
		b <<= 1
		switch s.Data[i] {
		case High:
			b |= 1
		case Unknown:
			return 0, false
		}
	}
	return b, true
}

// Signal returns the value of the named line. ok is false if the name is
// not a monitored line.
//
func (s *Sample) Signal(name string) (v Bit, ok bool) {
	switch name {
	case SigSync:
		return s.Sync, true
	case SigInt:
		return s.Int, true
	case SigDEn:
		return s.DEn, true
	case "S2":
		return s.S2, true
	case "S1":
		return s.S1, true
	case "S0":
		return s.S0, true
	}
	if len(name) == 2 && name[0] == 'D' && name[1] >= '0' && name[1] <= '7' {
		return s.Data[name[1]-'0'], true
	}
	return Unknown, false
}

// StateCode renders the raw state-select pattern ("010", "1?0", ...) for
// diagnostics on samples that decode to StateUnknown.
//
func (s *Sample) StateCode() string {
	return s.S2.String() + s.S1.String() + s.S0.String()
}
