// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package capture_test

import (
	"strings"
	"testing"

	bt "github.com/db47h/bustrace"
	"github.com/db47h/bustrace/capture"
)

// a realistic capture head: tool preamble, then leading-space column
// names, then data rows with an indeterminate marker
const sampleCapture = `#Logic analyzer export
#Device: LA1010
#Sample rate: 24MHz

Time(s), S2, S1, S0, SYNC, INT, CP_D_EN, D7, D6, D5, D4, D3, D2, D1, D0
0.000000000, 0, 1, 0, 0, 0, 1, 0, 0, 1, 1, 1, 1, 1, 1
0.000000042, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1, 1, 1, 1, 1
0.000000084, 1, 0, 0, 1, 1, ?, ?, ?, ?, ?, ?, ?, ?, ?
`

func TestRead(t *testing.T) {
	ss, err := capture.Read(strings.NewReader(sampleCapture))
	if err != nil {
		t.Fatal(err)
	}
	if len(ss) != 3 {
		t.Fatalf("got %d samples, want 3", len(ss))
	}

	s := &ss[0]
	if s.Index != 0 || s.Time != 0 {
		t.Errorf("sample 0: Index=%d Time=%g", s.Index, s.Time)
	}
	if got := bt.DefaultStates.Decode(s); got != bt.StateT1 {
		t.Errorf("sample 0 state = %v, want T1", got)
	}
	if b, ok := s.Byte(); !ok || b != 0x3F {
		t.Errorf("sample 0 data = %#x (ok=%v), want 0x3F", b, ok)
	}
	if s.Sync != bt.Low || s.DEn != bt.High || s.Int != bt.Low {
		t.Errorf("sample 0 signals: SYNC=%v CP_D_EN=%v INT=%v", s.Sync, s.DEn, s.Int)
	}

	s = &ss[2]
	if s.Time != 0.000000084 {
		t.Errorf("sample 2 time = %g", s.Time)
	}
	if got := bt.DefaultStates.Decode(s); got != bt.StateT2 {
		t.Errorf("sample 2 state = %v, want T2", got)
	}
	if s.DEn != bt.Unknown {
		t.Errorf("sample 2 CP_D_EN = %v, want Unknown", s.DEn)
	}
	if _, ok := s.Byte(); ok {
		t.Error("sample 2 data should be indeterminate")
	}
}

func TestRead_missingColumn(t *testing.T) {
	in := `Time(s), S2, S1, S0, SYNC, INT, D7, D6, D5, D4, D3, D2, D1, D0
0.0, 0, 1, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1
`
	_, err := capture.Read(strings.NewReader(in))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), `"CP_D_EN"`) {
		t.Errorf("error %q does not name the missing column", err)
	}
}

func TestRead_noHeader(t *testing.T) {
	_, err := capture.Read(strings.NewReader("#junk\n#more junk\n"))
	if err == nil || !strings.Contains(err.Error(), "header") {
		t.Errorf("got %v, want a missing-header error", err)
	}
}

func TestRead_badTimestamp(t *testing.T) {
	in := `Time(s), S2, S1, S0, SYNC, INT, CP_D_EN, D7, D6, D5, D4, D3, D2, D1, D0
0.0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 1, 1, 1, 1, 1
bogus, 0, 1, 0, 0, 0, 1, 0, 0, 1, 1, 1, 1, 1, 1
`
	_, err := capture.Read(strings.NewReader(in))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "line 3") || !strings.Contains(err.Error(), "Time(s)") {
		t.Errorf("error %q does not name line 3 and the timestamp column", err)
	}
}

func TestRead_shortRow(t *testing.T) {
	in := `Time(s), S2, S1, S0, SYNC, INT, CP_D_EN, D7, D6, D5, D4, D3, D2, D1, D0
0.0, 0, 1, 0
`
	_, err := capture.Read(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("got %v, want a short-row error naming line 2", err)
	}
}

func TestReadLayout_renamedColumns(t *testing.T) {
	in := `T, S2, S1, S0, SY, INT, CP_D_EN, D7, D6, D5, D4, D3, D2, D1, D0
1.5, 0, 1, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0
`
	ss, err := capture.ReadLayout(strings.NewReader(in), capture.Layout{Time: "T", Sync: "SY"})
	if err != nil {
		t.Fatal(err)
	}
	if len(ss) != 1 || ss[0].Time != 1.5 || ss[0].Sync != bt.High {
		t.Errorf("got %+v", ss)
	}
}
