// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package report renders analysis results as text. It is the only place
// that formats anything; the core exposes plain data.
//
package report

import (
	"fmt"
	"io"

	"github.com/db47h/bustrace"
)

func us(t float64) float64 { return t * 1e6 }

func dataString(s *bustrace.Sample) string {
	if b, ok := s.Byte(); ok {
		return fmt.Sprintf("0x%02X", b)
	}
	return "0x??"
}

func stateString(t *bustrace.Transition) string {
	if t.State == bustrace.StateUnknown {
		return "UNKNOWN(" + t.Sample.StateCode() + ")"
	}
	return t.State.String()
}

// States writes the per-transition trace: one line per state period with
// the resolved state, data byte and monitored lines, and a divider at
// each cycle boundary.
//
func States(w io.Writer, tr *bustrace.Trace) error {
	n := 0
	for _, cy := range tr.Cycles {
		if cy.Seq > 0 {
			if _, err := fmt.Fprintf(w, "--- cycle #%d (%s) ---\n", cy.Seq, cy.Type); err != nil {
				return err
			}
		}
		for i := range cy.States {
			t := &cy.States[i]
			n++
			s := &t.Sample
			_, err := fmt.Fprintf(w, "state #%3d @ %8.1fus: %-7s data=%s CP_D_EN=%s INT=%s\n",
				n, us(s.Time), stateString(t), dataString(s), s.DEn, s.Int)
			if err != nil {
				return err
			}
		}
		if !cy.Complete {
			if _, err := fmt.Fprintf(w, "(cycle #%d incomplete)\n", cy.Seq); err != nil {
				return err
			}
		}
	}
	return nil
}

// Instructions writes the instruction trace, at most max entries when
// max > 0. Incomplete instructions are flagged, never omitted.
//
func Instructions(w io.Writer, tr *bustrace.Trace, max int) error {
	ins := tr.Instructions
	if max > 0 && len(ins) > max {
		ins = ins[:max]
	}
	for i := range ins {
		in := &ins[i]
		var err error
		if op, ok := in.Op(); ok && in.Complete {
			_, err = fmt.Fprintf(w, "#%3d @ row %5d: opcode=0x%02X\n", in.Num, in.Fetch.Sample.Index, op)
		} else {
			_, err = fmt.Fprintf(w, "#%3d @ row %5d: incomplete (opcode %s)\n",
				in.Num, in.Fetch.Sample.Index, opcodeString(in))
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d instructions traced\n", len(ins))
	return err
}

func opcodeString(in *bustrace.Instruction) string {
	if !in.HasOpcode {
		return "missing"
	}
	if op, ok := in.Op(); ok {
		return fmt.Sprintf("0x%02X", op)
	}
	return "indeterminate"
}

// Glitches writes one block per anomaly, with its location and the
// offending values.
//
func Glitches(w io.Writer, tr *bustrace.Trace) error {
	for i, g := range tr.Glitches {
		var err error
		switch g := g.(type) {
		case *bustrace.Contention:
			_, err = fmt.Fprintf(w, "*** glitch #%d: bus contention in %s, rows %d-%d (%.1f-%.1fus)\n",
				i+1, g.State, g.First, g.Last, us(g.Start), us(g.End))
			if err != nil {
				return err
			}
			for _, v := range g.Values {
				if _, err = fmt.Fprintf(w, "    0x%02X (%08b) - %d samples\n", v.Value, v.Value, v.Count); err != nil {
					return err
				}
			}
		case *bustrace.SignalGlitch:
			_, err = fmt.Fprintf(w, "*** glitch #%d: %s changed %s -> %s at row %d (%.1fus), no state boundary\n",
				i+1, g.Signal, g.Old, g.New, g.Index, us(g.Time))
		default:
			_, err = fmt.Fprintf(w, "*** glitch #%d: %v\n", i+1, g)
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d glitches found\n", len(tr.Glitches))
	return err
}

// IntEdges lists the rising edges of the interrupt line together with
// the bus state at each edge, for checking that interrupts are raised at
// a legal point in the cycle.
//
func IntEdges(w io.Writer, samples []bustrace.Sample, table *bustrace.StateTable) error {
	if table == nil {
		table = &bustrace.DefaultStates
	}
	edges := bustrace.RisingEdges(samples, bustrace.SigInt)
	for n, i := range edges {
		s := &samples[i]
		_, err := fmt.Fprintf(w, "edge %d: row %5d @ %8.2fus, state %s\n",
			n+1, s.Index, us(s.Time), table.Decode(s))
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d INT rising edges found\n", len(edges))
	return err
}
