package x11

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestSizeHintsPinsMinAndMax(t *testing.T) {
	raw := sizeHints(420, 180)
	if len(raw) != 18*4 {
		t.Fatalf("hints block = %d bytes, want %d", len(raw), 18*4)
	}

	words := make([]uint32, 18)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}

	const wantFlags = 1<<4 | 1<<5
	if words[0] != wantFlags {
		t.Errorf("flags = %#x, want %#x", words[0], uint32(wantFlags))
	}
	if words[5] != 420 || words[6] != 180 {
		t.Errorf("min size = %dx%d, want 420x180", words[5], words[6])
	}
	if words[7] != 420 || words[8] != 180 {
		t.Errorf("max size = %dx%d, want 420x180", words[7], words[8])
	}
}

func TestU32BytesLittleEndian(t *testing.T) {
	got := u32bytes(0x01020304)
	want := []byte{0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("u32bytes = %v, want %v", got, want)
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"placard": "Placard",
		"Already": "Already",
		"":        "",
		"9lives":  "9lives",
	}
	for in, want := range cases {
		if got := titleCase(in); got != want {
			t.Errorf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
