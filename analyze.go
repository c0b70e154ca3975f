// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bustrace

import (
	"github.com/pkg/errors"
)

// Config selects the decoding tables for an analysis pass. The zero value
// uses DefaultStates and DefaultMonitor.
//
type Config struct {
	// Table is the state-select decoding table. Nil selects
	// DefaultStates. Captures from a board with a different state
	// encoding supply their own.
	Table *StateTable
	// Monitor lists the control lines watched for glitches, by capture
	// name. Nil selects DefaultMonitor.
	Monitor []string
}

// A Trace is the result of one analysis pass: every derived entity, in
// non-decreasing time order, as plain data. Rendering is up to the
// caller.
//
type Trace struct {
	Transitions  []Transition
	Cycles       []Cycle
	Instructions []Instruction
	Glitches     []Glitch
}

// Analyze runs one full pass over samples: state decoding, transition
// detection, cycle and instruction assembly, glitch detection. The pass
// is single threaded, forward only and deterministic: two passes over the
// same samples yield identical traces.
//
// Samples must be ordered by non-decreasing timestamp; a violation aborts
// the pass with an error naming the offending row. Indeterminate signal
// values and unrecognized state patterns are not errors: they flow
// through as Unknown values in the emitted entities.
//
func Analyze(samples []Sample, cfg Config) (*Trace, error) {
	table := cfg.Table
	if table == nil {
		table = &DefaultStates
	}

	for i := 1; i < len(samples); i++ {
		if samples[i].Time < samples[i-1].Time {
			return nil, errors.Errorf("row %d: timestamp %g decreases from %g",
				samples[i].Index, samples[i].Time, samples[i-1].Time)
		}
	}

	tr := &Trace{}
	if len(samples) == 0 {
		return tr, nil
	}

	asm := newAssembler(samples[0].Index)
	sc := NewScanner(samples, table)
	for t, ok := sc.Next(); ok; t, ok = sc.Next() {
		tr.Transitions = append(tr.Transitions, t)
		asm.transition(t)
	}
	asm.finish(samples[len(samples)-1].Index)
	tr.Cycles = asm.cycles
	tr.Instructions = asm.instrs

	tr.Glitches = glitchPass(samples, table, cfg.Monitor)
	return tr, nil
}
