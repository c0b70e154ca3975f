// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bustrace

// A Transition marks the sample immediately following a 0 to 1 edge on the
// sync line, i.e. the first sample of a new state period. It carries a
// copy of that sample and its decoded state; the sample's Index locates
// the transition in the capture.
//
type Transition struct {
	Sample Sample
	State  BusState
}

// A Scanner produces the forward-only sequence of Transitions over a
// sample slice. It holds no state beyond its scan position: a fresh
// Scanner over the same slice yields the same sequence, so separate
// analysis passes cannot leak into each other.
//
// The first sample never qualifies: there is no prior value to compare
// against. Only strict 0 to 1 edges count; 1 to 0 and edges involving an
// indeterminate value are not state boundaries (the glitch detector
// watches those).
//
type Scanner struct {
	samples []Sample
	table   *StateTable
	pos     int
}

// NewScanner returns a Scanner over samples. A nil table selects
// DefaultStates.
//
func NewScanner(samples []Sample, table *StateTable) *Scanner {
	if table == nil {
		table = &DefaultStates
	}
	return &Scanner{samples: samples, table: table}
}

// Next returns the next Transition. ok is false once the input is
// exhausted.
//
func (sc *Scanner) Next() (t Transition, ok bool) {
	for i := sc.pos; i < len(sc.samples); i++ {
		if i == 0 {
			continue
		}
		s := &sc.samples[i]
		if sc.samples[i-1].Sync == Low && s.Sync == High {
			sc.pos = i + 1
			return Transition{Sample: *s, State: sc.table.Decode(s)}, true
		}
	}
	sc.pos = len(sc.samples)
	return Transition{}, false
}

// Transitions drains the scanner into a slice.
//
func (sc *Scanner) Transitions() []Transition {
	var ts []Transition
	for t, ok := sc.Next(); ok; t, ok = sc.Next() {
		ts = append(ts, t)
	}
	return ts
}

// RisingEdges returns the indices of samples where the named line rises
// from a resolved 0 to a resolved 1. Same edge discipline as the sync
// scan, usable on any monitored line (e.g. INT).
//
func RisingEdges(samples []Sample, signal string) []int {
	var idx []int
	for i := 1; i < len(samples); i++ {
		prev, ok := samples[i-1].Signal(signal)
		if !ok {
			return nil
		}
		cur, _ := samples[i].Signal(signal)
		if prev == Low && cur == High {
			idx = append(idx, i)
		}
	}
	return idx
}
