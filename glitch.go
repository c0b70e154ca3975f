// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bustrace

// A Glitch is an electrical or timing anomaly found in the capture. The
// concrete type is *Contention or *SignalGlitch; both carry enough
// context to locate the anomaly in the original capture.
//
type Glitch interface {
	// When returns the anomaly's position on the capture time line, in
	// seconds. Glitches are emitted in non-decreasing When order.
	When() float64
}

// A ValueCount is one distinct data bus value and its number of
// occurrences within a state window.
//
type ValueCount struct {
	Value byte
	Count int
}

// Contention reports the data bus carrying more than one distinct
// resolved value within a single state period, i.e. two drivers fighting
// over the bus. Values lists the distinct values in order of first
// occurrence; First/Last are the window's inclusive capture row range,
// Start/End its time range.
//
type Contention struct {
	State       BusState
	Values      []ValueCount
	First, Last int
	Start, End  float64
}

func (g *Contention) When() float64 { return g.End }

// SignalGlitch reports a monitored control line changing value between
// two adjacent samples that do not straddle a sync transition: the line
// moved where it should have been stable.
//
type SignalGlitch struct {
	Signal   string
	Old, New Bit
	Index    int // capture row index of the sample holding the new value
	Time     float64
}

func (g *SignalGlitch) When() float64 { return g.Time }

// DefaultMonitor is the control-line set watched for glitches when the
// caller does not supply one.
//
var DefaultMonitor = []string{SigDEn}

// glitchPass runs both anomaly checks in one forward scan. The checks are
// independent: a single window may produce both kinds. State windows are
// bounded by sync transitions; the span before the first transition and
// the span after the last one are checked too, so a contention at either
// end of the capture is not missed.
//
func glitchPass(samples []Sample, table *StateTable, monitor []string) []Glitch {
	if len(samples) == 0 {
		return nil
	}
	if monitor == nil {
		monitor = DefaultMonitor
	}

	var (
		gs    []Glitch
		win   window
		first = &samples[0]
	)
	win.open(first, table.Decode(first))
	win.add(first)

	for i := 1; i < len(samples); i++ {
		s, prev := &samples[i], &samples[i-1]
		edge := prev.Sync == Low && s.Sync == High

		if edge {
			if g := win.close(prev); g != nil {
				gs = append(gs, g)
			}
			win.open(s, table.Decode(s))
		}
		win.add(s)

		if edge {
			continue // changes coincident with a transition are legitimate
		}
		for _, name := range monitor {
			old, ok := prev.Signal(name)
			if !ok {
				continue
			}
			cur, _ := s.Signal(name)
			if cur != old {
				gs = append(gs, &SignalGlitch{
					Signal: name,
					Old:    old,
					New:    cur,
					Index:  s.Index,
					Time:   s.Time,
				})
			}
		}
	}
	if g := win.close(&samples[len(samples)-1]); g != nil {
		gs = append(gs, g)
	}
	return gs
}

// window accumulates the resolved data bus values of one state period.
//
type window struct {
	first  int // capture row index of the window's first sample
	state  BusState
	start  float64
	values []ValueCount
}

func (w *window) open(s *Sample, state BusState) {
	w.first = s.Index
	w.state = state
	w.start = s.Time
	w.values = w.values[:0]
}

func (w *window) add(s *Sample) {
	v, ok := s.Byte()
	if !ok {
		return
	}
	for i := range w.values {
		if w.values[i].Value == v {
			w.values[i].Count++
			return
		}
	}
	w.values = append(w.values, ValueCount{Value: v, Count: 1})
}

// close checks the window against its last sample and returns a
// Contention if two or more distinct values were seen. Zero or one
// resolved value never triggers.
//
func (w *window) close(last *Sample) *Contention {
	if len(w.values) < 2 {
		return nil
	}
	vals := make([]ValueCount, len(w.values))
	copy(vals, w.values)
	return &Contention{
		State:  w.state,
		Values: vals,
		First:  w.first,
		Last:   last.Index,
		Start:  w.start,
		End:    last.Time,
	}
}
