// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ihex

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	in := `; assembler listing comment
:03000000B8C9FD7F
:01000500AA50
:00000001FF
`
	img, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if img.Loaded() != 4 {
		t.Errorf("Loaded() = %d, want 4", img.Loaded())
	}
	want := []byte{0xB8, 0xC9, 0xFD, 0x00, 0x00, 0xAA}
	if got := img.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %x, want %x", got, want)
	}
}

func TestDecode_stopsAtEOFRecord(t *testing.T) {
	in := `:03000000B8C9FD7F
:00000001FF
:0100100011DE
`
	img, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if img.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (record after EOF must be ignored)", img.Len())
	}
}

func TestDecode_errors(t *testing.T) {
	td := []struct {
		name, in, want string
	}{
		{"checksum", ":03000000B8C9FD00\n", "checksum"},
		{"not hex", ":03zz0000B8C9FD7F\n", "bad record"},
		{"short", ":0300\n", "too short"},
		{"length", ":05000000B8C9FD7F\n", "length"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(d.in))
			if err == nil || !strings.Contains(err.Error(), d.want) {
				t.Errorf("got %v, want error containing %q", err, d.want)
			}
		})
	}
}

func TestDecode_empty(t *testing.T) {
	img, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if img.Len() != 0 || len(img.Bytes()) != 0 {
		t.Errorf("empty input: Len() = %d", img.Len())
	}
}
