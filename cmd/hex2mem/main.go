// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command hex2mem converts an Intel HEX memory image to the flat .mem
// format expected by the board's VHDL testbench: one hex byte per line,
// gaps zero-filled, no 0x prefix.
//
//	hex2mem <input.hex> <output.mem>
//
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/db47h/bustrace/internal/ihex"
	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input.hex> <output.mem>\n", os.Args[0])
		os.Exit(2)
	}
	if err := convert(os.Args[1], os.Args[2]); err != nil {
		log.Fatal(err)
	}
}

func convert(hexFile, memFile string) error {
	in, err := os.Open(hexFile)
	if err != nil {
		return err
	}
	defer in.Close()

	img, err := ihex.Decode(in)
	if err != nil {
		return err
	}

	out, err := os.Create(memFile)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, b := range img.Bytes() {
		fmt.Fprintf(w, "%02X\n", b)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"loaded": img.Loaded(),
		"size":   img.Len(),
	}).Infof("converted %s -> %s", hexFile, memFile)
	return nil
}
