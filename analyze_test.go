// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bustrace_test

import (
	"reflect"
	"testing"

	bt "github.com/db47h/bustrace"
	"github.com/db47h/bustrace/tracetest"
)

const idempotenceCapture = `
	0e-6  0 000 0 0 00
	1e-6  1 110 0 0 00
	2e-6  0 110 0 0 00
	3e-6  1 010 0 0 C0
	4e-6  0 010 0 0 C0
	5e-6  1 100 0 0 C0
	6e-6  0 100 1 0 20   # CP_D_EN glitch
	7e-6  1 001 1 0 B8
	8e-6  0 001 1 0 B9   # contention with row 7
	9e-6  1 010 1 1 C1
	10e-6 0 0?0 1 1 ??
`

func TestAnalyze_idempotent(t *testing.T) {
	ss := tracetest.Samples(t, idempotenceCapture)
	a, err := bt.Analyze(ss, bt.Config{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := bt.Analyze(ss, bt.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("two passes differ:\n%+v\n%+v", a, b)
	}
	if len(a.Glitches) == 0 || len(a.Instructions) == 0 || len(a.Cycles) == 0 {
		t.Errorf("scenario should produce every entity kind: %+v", a)
	}
}

func TestAnalyze_empty(t *testing.T) {
	tr, err := bt.Analyze(nil, bt.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tr.Transitions)+len(tr.Cycles)+len(tr.Instructions)+len(tr.Glitches) != 0 {
		t.Errorf("empty input should yield an empty trace, got %+v", tr)
	}
}

// a custom table reroutes decoding; the default table is untouched
func TestAnalyze_customTable(t *testing.T) {
	table := bt.DefaultStates
	table[0b010], table[0b100] = table[0b100], table[0b010]
	ss := tracetest.Samples(t, `
		0e-6 0 100 0 0 00
		1e-6 1 100 0 0 00
	`)
	tr, err := bt.Analyze(ss, bt.Config{Table: &table})
	if err != nil {
		t.Fatal(err)
	}
	if len(tr.Transitions) != 1 || tr.Transitions[0].State != bt.StateT1 {
		t.Fatalf("transitions = %+v, want one T1", tr.Transitions)
	}
	if len(tr.Cycles) != 1 || tr.Cycles[0].Seq != 1 {
		t.Errorf("swapped table should make 100 a cycle start, got %+v", tr.Cycles)
	}
}
