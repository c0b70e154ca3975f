// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command bustrace analyzes a logic analyzer capture of the CPU bus.
//
//	bustrace [flags] <mode> <capture.csv>
//
// Modes:
//
//	states    per-transition state trace with cycle boundaries
//	exec      instruction trace (fetch/opcode pairs after interrupt ack)
//	glitch    bus contention and signal glitch scan
//	intedges  INT rising edges and the bus state at each
//
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/db47h/bustrace"
	"github.com/db47h/bustrace/capture"
	"github.com/db47h/bustrace/report"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

var (
	fromUs  = flag.Float64("from", -1, "discard samples before this time (µs)")
	toUs    = flag.Float64("to", -1, "discard samples after this time (µs)")
	maxIns  = flag.Int("max", 0, "exec: stop after this many instructions (0 = all)")
	monitor = flag.String("monitor", "", "comma separated signal glitch watch list (default CP_D_EN)")
	verbose = flag.Bool("v", false, "verbose logging")
	prof    = flag.Bool("profile", false, "write a CPU profile to the current directory")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <states|exec|glitch|intedges> <capture.csv>\n", os.Args[0])
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *prof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		log.Fatal(err)
	}
}

func run(mode, path string) error {
	samples, err := capture.ReadFile(path)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"file": path, "samples": len(samples)}).Debug("capture loaded")
	samples = timeWindow(samples, *fromUs, *toUs)

	cfg := bustrace.Config{}
	if *monitor != "" {
		cfg.Monitor = strings.Split(*monitor, ",")
	}

	tr, err := bustrace.Analyze(samples, cfg)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"transitions":  len(tr.Transitions),
		"cycles":       len(tr.Cycles),
		"instructions": len(tr.Instructions),
		"glitches":     len(tr.Glitches),
	}).Debug("pass complete")

	w := os.Stdout
	switch mode {
	case "states":
		return report.States(w, tr)
	case "exec":
		return report.Instructions(w, tr, *maxIns)
	case "glitch":
		return report.Glitches(w, tr)
	case "intedges":
		return report.IntEdges(w, samples, cfg.Table)
	}
	usage()
	return nil
}

// timeWindow narrows samples to [from, to] microseconds. Negative bounds
// are open. Capture row indices are preserved so that reports still name
// rows in the original file.
//
func timeWindow(samples []bustrace.Sample, from, to float64) []bustrace.Sample {
	lo := 0
	if from >= 0 {
		lo = sort.Search(len(samples), func(i int) bool { return samples[i].Time*1e6 >= from })
	}
	hi := len(samples)
	if to >= 0 {
		hi = sort.Search(len(samples), func(i int) bool { return samples[i].Time*1e6 > to })
	}
	if lo > hi {
		return nil
	}
	return samples[lo:hi]
}
