// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package capture reads delimited-text logic analyzer captures into
// bustrace Samples.
//
// A capture file may carry a free-form preamble; the first line whose
// first field is the timestamp column name is taken as the header. Some
// capture tools prefix column names with a space; header fields are
// trimmed before matching. Signal values are single characters: '0', '1'
// or an indeterminate marker, anything but '0'/'1' reading as
// indeterminate.
//
package capture

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/bustrace"
	"github.com/pkg/errors"
)

// A Layout names the capture columns holding each monitored line. The
// zero value of a field falls back to DefaultLayout's.
//
type Layout struct {
	Time           string
	S2, S1, S0     string
	Sync, Int, DEn string
	Data           [8]string // Data[i] is the column for line Di
}

// DefaultLayout matches the capture tool used on the target board.
//
var DefaultLayout = Layout{
	Time: "Time(s)",
	S2:   "S2", S1: "S1", S0: "S0",
	Sync: bustrace.SigSync,
	Int:  bustrace.SigInt,
	DEn:  bustrace.SigDEn,
	Data: [8]string{"D0", "D1", "D2", "D3", "D4", "D5", "D6", "D7"},
}

func (l *Layout) merge() {
	d := &DefaultLayout
	if l.Time == "" {
		l.Time = d.Time
	}
	if l.S2 == "" {
		l.S2 = d.S2
	}
	if l.S1 == "" {
		l.S1 = d.S1
	}
	if l.S0 == "" {
		l.S0 = d.S0
	}
	if l.Sync == "" {
		l.Sync = d.Sync
	}
	if l.Int == "" {
		l.Int = d.Int
	}
	if l.DEn == "" {
		l.DEn = d.DEn
	}
	for i := range l.Data {
		if l.Data[i] == "" {
			l.Data[i] = d.Data[i]
		}
	}
}

// Read decodes a capture from r using DefaultLayout.
//
func Read(r io.Reader) ([]bustrace.Sample, error) {
	return ReadLayout(r, Layout{})
}

// ReadFile decodes the capture file at path using DefaultLayout.
//
func ReadFile(path string) ([]bustrace.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open capture")
	}
	defer f.Close()
	ss, err := Read(f)
	return ss, errors.Wrap(err, path)
}

// ReadLayout decodes a capture from r. Structural failures (missing
// header, missing required column, unparseable timestamp, short row)
// abort with an error naming the file line and column at fault. Anything
// a Sample can represent, including indeterminate bits, is not a failure.
//
func ReadLayout(r io.Reader, l Layout) ([]bustrace.Sample, error) {
	l.merge()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1<<16), 1<<20)

	cols, line, err := header(sc, l.Time)
	if err != nil {
		return nil, err
	}

	idx := func(name string) (int, error) {
		for i, c := range cols {
			if c == name {
				return i, nil
			}
		}
		return 0, errors.Errorf("line %d: missing required column %q", line, name)
	}

	var c columns
	for _, want := range []struct {
		name string
		dst  *int
	}{
		{l.Time, &c.time}, {l.S2, &c.s2}, {l.S1, &c.s1}, {l.S0, &c.s0},
		{l.Sync, &c.sync}, {l.Int, &c.irq}, {l.DEn, &c.den},
		{l.Data[0], &c.data[0]}, {l.Data[1], &c.data[1]},
		{l.Data[2], &c.data[2]}, {l.Data[3], &c.data[3]},
		{l.Data[4], &c.data[4]}, {l.Data[5], &c.data[5]},
		{l.Data[6], &c.data[6]}, {l.Data[7], &c.data[7]},
	} {
		if *want.dst, err = idx(want.name); err != nil {
			return nil, err
		}
	}

	var samples []bustrace.Sample
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) < len(cols) {
			return nil, errors.Errorf("line %d: %d fields, want %d", line, len(fields), len(cols))
		}
		s, err := c.sample(fields, l.Time)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		s.Index = len(samples)
		samples = append(samples, s)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read capture")
	}
	return samples, nil
}

// header skips the preamble and returns the trimmed header fields along
// with the header's line number.
//
func header(sc *bufio.Scanner, timeCol string) ([]string, int, error) {
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Split(sc.Text(), ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if len(fields) > 0 && fields[0] == timeCol {
			return fields, line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, line, errors.Wrap(err, "read capture")
	}
	return nil, line, errors.Errorf("no header row (no line starting with %q)", timeCol)
}

type columns struct {
	time, s2, s1, s0, sync, irq, den int
	data                              [8]int
}

func (c *columns) sample(fields []string, timeCol string) (bustrace.Sample, error) {
	var s bustrace.Sample

	ts, err := strconv.ParseFloat(strings.TrimSpace(fields[c.time]), 64)
	if err != nil {
		return s, errors.Errorf("column %q: bad timestamp %q", timeCol, strings.TrimSpace(fields[c.time]))
	}
	s.Time = ts

	bit := func(i int) bustrace.Bit { return bustrace.ParseBit(strings.TrimSpace(fields[i])) }
	s.S2, s.S1, s.S0 = bit(c.s2), bit(c.s1), bit(c.s0)
	s.Sync, s.Int, s.DEn = bit(c.sync), bit(c.irq), bit(c.den)
	for i, di := range c.data {
		s.Data[i] = bit(di)
	}
	return s, nil
}
