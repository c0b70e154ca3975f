// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package ihex decodes Intel HEX memory images into a flat byte slice.
// Only data and end-of-file records matter here; other record types are
// skipped. Addresses not covered by any record read as zero.
//
package ihex

import (
	"bufio"
	"encoding/hex"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// record types
const (
	recData = 0x00
	recEOF  = 0x01
)

// An Image is a decoded memory image.
//
type Image struct {
	mem map[int]byte
	max int
}

// Len returns the image size: highest written address + 1.
//
func (img *Image) Len() int {
	if len(img.mem) == 0 {
		return 0
	}
	return img.max + 1
}

// Loaded returns the number of bytes actually covered by data records.
//
func (img *Image) Loaded() int { return len(img.mem) }

// Bytes returns the flat image from address 0 to the highest written
// address, gaps zero-filled.
//
func (img *Image) Bytes() []byte {
	b := make([]byte, img.Len())
	for a, v := range img.mem {
		b[a] = v
	}
	return b
}

// Decode reads Intel HEX records from r until the end-of-file record (or
// the end of input). Lines not starting with ':' are ignored. A record
// that is too short, not hex, or fails its checksum aborts with an error
// naming the line.
//
func Decode(r io.Reader) (*Image, error) {
	img := &Image{mem: make(map[int]byte)}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(text, ":") {
			continue
		}
		rec, err := hex.DecodeString(text[1:])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: bad record", line)
		}
		if len(rec) < 5 {
			return nil, errors.Errorf("line %d: record too short", line)
		}
		count := int(rec[0])
		if len(rec) != count+5 {
			return nil, errors.Errorf("line %d: record length %d, want %d", line, len(rec), count+5)
		}
		var sum byte
		for _, b := range rec {
			sum += b
		}
		if sum != 0 {
			return nil, errors.Errorf("line %d: checksum mismatch", line)
		}
		addr := int(rec[1])<<8 | int(rec[2])
		switch rec[3] {
		case recData:
			for i, b := range rec[4 : 4+count] {
				a := addr + i
				img.mem[a] = b
				if a > img.max {
					img.max = a
				}
			}
		case recEOF:
			return img, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read hex")
	}
	return img, nil
}
