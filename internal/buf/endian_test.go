package buf

import "testing"

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45}

	if got := U16LE(data); got != 0x2301 {
		t.Fatalf("U16LE = 0x%x, want 0x2301", got)
	}
	if got := U16LE(data[1:]); got != 0x4523 {
		t.Fatalf("U16LE offset = 0x%x, want 0x4523", got)
	}

	short := []byte{0xAA}
	if U16LE(short) != 0 {
		t.Fatalf("U16LE short should be 0")
	}
}

func TestPutU16LE(t *testing.T) {
	data := make([]byte, 3)
	if !PutU16LE(data[1:], 0x801E) {
		t.Fatalf("PutU16LE should succeed on a 2-byte slice")
	}
	if data[0] != 0 || data[1] != 0x1E || data[2] != 0x80 {
		t.Fatalf("PutU16LE wrote %v, want [0 0x1e 0x80]", data)
	}

	short := []byte{0xAA}
	if PutU16LE(short, 0xFFFF) {
		t.Fatalf("PutU16LE should fail on a short slice")
	}
	if short[0] != 0xAA {
		t.Fatalf("PutU16LE modified a short slice")
	}
}
