// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package tracetest provides utility functions for building synthetic
// sample sequences in tests.
//
package tracetest

import (
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/bustrace"
)

// Samples builds a sample slice from a compact table, one sample per
// line. Each line has six whitespace-separated fields:
//
//	time sync s2s1s0 den int data
//
// time is in seconds; sync, den and int are single bit characters;
// s2s1s0 is the 3-character state-select pattern; data is either two hex
// digits, "??" for a fully indeterminate bus, or 8 bit characters D7
// first (each '0', '1' or '?'). Blank lines and text after '#' are
// ignored. Malformed rows fail the test.
//
func Samples(t *testing.T, table string) []bustrace.Sample {
	t.Helper()
	var samples []bustrace.Sample
	for _, row := range strings.Split(table, "\n") {
		if i := strings.IndexByte(row, '#'); i >= 0 {
			row = row[:i]
		}
		f := strings.Fields(row)
		if len(f) == 0 {
			continue
		}
		if len(f) != 6 {
			t.Fatalf("sample row %q: %d fields, want 6", row, len(f))
		}
		ts, err := strconv.ParseFloat(f[0], 64)
		if err != nil {
			t.Fatalf("sample row %q: bad time: %v", row, err)
		}
		if len(f[2]) != 3 {
			t.Fatalf("sample row %q: bad state pattern %q", row, f[2])
		}
		s := bustrace.Sample{
			Time:  ts,
			Index: len(samples),
			Sync:  bustrace.ParseBit(f[1]),
			S2:    bustrace.ParseBit(f[2][0:1]),
			S1:    bustrace.ParseBit(f[2][1:2]),
			S0:    bustrace.ParseBit(f[2][2:3]),
			DEn:   bustrace.ParseBit(f[3]),
			Int:   bustrace.ParseBit(f[4]),
			Data:  dataBits(t, row, f[5]),
		}
		samples = append(samples, s)
	}
	return samples
}

func dataBits(t *testing.T, row, spec string) (d [8]bustrace.Bit) {
	t.Helper()
	switch {
	case spec == "??":
		for i := range d {
			d[i] = bustrace.Unknown
		}
	case len(spec) == 8:
		for i := 0; i < 8; i++ {
			d[7-i] = bustrace.ParseBit(spec[i : i+1])
		}
	default:
		v, err := strconv.ParseUint(spec, 16, 8)
		if err != nil {
			t.Fatalf("sample row %q: bad data %q: %v", row, spec, err)
		}
		d = DataByte(byte(v))
	}
	return d
}

// DataByte encodes a byte onto 8 resolved data lines, Data[i] = bit i.
//
func DataByte(v byte) (d [8]bustrace.Bit) {
	for i := range d {
		if v&(1<<uint(i)) != 0 {
			d[i] = bustrace.High
		} else {
			d[i] = bustrace.Low
		}
	}
	return d
}
