// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bustrace

// A Cycle is one bus cycle: the span of samples from one cycle-start
// state to the next. Cycles partition the sample sequence; First and Last
// are inclusive capture row indices (Sample.Index). A cycle closed by
// end-of-stream instead of a cycle-start is marked incomplete, as is the
// leading span when the capture starts mid-cycle (Seq 0).
//
type Cycle struct {
	Seq         int
	Type        CycleType // resolved from the first address/command phase, CycleUnknown until then
	States      []Transition
	First, Last int
	Complete    bool
}

// An Instruction pairs the fetch-state sample of one instruction with the
// data-transfer sample carrying its opcode. It is assembled only once an
// interrupt-acknowledge cycle start has been seen. An instruction still
// pending at end-of-stream is emitted with Complete false, never dropped.
//
type Instruction struct {
	Num       int
	Fetch     Transition
	Opcode    Transition
	HasOpcode bool
	Complete  bool
}

// Op returns the opcode byte. ok is false while the opcode sample is
// missing or unresolved.
//
func (in *Instruction) Op() (byte, bool) {
	if !in.HasOpcode {
		return 0, false
	}
	return in.Opcode.Sample.Byte()
}

// assembler is the two-state machine of the trace pass: it stays
// awaiting-interrupt-ack until a T1I transition arms it, one way, for the
// rest of the pass. Driven transition by transition; unknown states pass
// through into whatever cycle is open.
//
type assembler struct {
	firstIdx int // capture row index of the first analyzed sample

	cycles  []Cycle
	open    *Cycle
	nextSeq int

	armed   bool
	pending *Instruction
	instrs  []Instruction
	nextNum int
}

func newAssembler(firstIdx int) *assembler {
	return &assembler{firstIdx: firstIdx, nextSeq: 1, nextNum: 1}
}

func (a *assembler) transition(t Transition) {
	if t.State.CycleStart() {
		a.closeCycle(t.Sample.Index-1, true)
		a.open = &Cycle{Seq: a.nextSeq, First: t.Sample.Index}
		a.nextSeq++
	} else if a.open == nil {
		// capture starts mid-cycle: collect the leading span as Seq 0
		a.open = &Cycle{Seq: 0, First: a.firstIdx}
	}
	a.open.States = append(a.open.States, t)
	if t.State == StateT2 && a.open.Type == CycleUnknown {
		a.open.Type = DecodeCycleType(&t.Sample)
	}

	switch t.State {
	case StateT1I:
		a.armed = true
	case StateT1:
		if !a.armed {
			break
		}
		if p := a.pending; p != nil && p.HasOpcode {
			p.Complete = true
			a.emit(p)
		}
		a.pending = &Instruction{Fetch: t}
	case StateT3:
		if p := a.pending; p != nil && !p.HasOpcode {
			p.Opcode = t
			p.HasOpcode = true
		}
	}
}

// finish flushes the machine at end-of-stream. last is the index of the
// final sample. The open cycle closes incomplete; a pending instruction
// is emitted, complete only if both of its samples resolved.
//
func (a *assembler) finish(last int) {
	a.closeCycle(last, false)
	if p := a.pending; p != nil {
		p.Complete = p.HasOpcode
		a.emit(p)
	}
}

func (a *assembler) closeCycle(last int, complete bool) {
	if a.open == nil {
		return
	}
	a.open.Last = last
	a.open.Complete = complete && a.open.Seq > 0
	if a.open.Seq == 1 && len(a.cycles) == 0 {
		// no leading span: the first cycle owns the samples before its
		// first transition so that no sample is orphaned
		a.open.First = a.firstIdx
	}
	a.cycles = append(a.cycles, *a.open)
	a.open = nil
}

func (a *assembler) emit(in *Instruction) {
	in.Num = a.nextNum
	a.nextNum++
	a.instrs = append(a.instrs, *in)
	a.pending = nil
}
