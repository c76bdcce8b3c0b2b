package pool

import "github.com/joshuapare/blockpool/internal/buf"

const (
	// HeaderSize is the number of bytes preceding every payload.
	HeaderSize = 2

	// MaxBlockSize is the largest payload a single header can describe (15 bits).
	MaxBlockSize = 0x7FFF

	allocatedBit = 0x8000
)

// Header is the decoded form of a block header.
type Header struct {
	Size      int
	Allocated bool
}

// encodeHeader packs h into its on-buffer word. ok is false when h.Size does
// not fit in 15 bits.
func encodeHeader(h Header) (uint16, bool) {
	if h.Size < 0 || h.Size > MaxBlockSize {
		return 0, false
	}
	v := uint16(h.Size)
	if h.Allocated {
		v |= allocatedBit
	}
	return v, true
}

func decodeHeader(v uint16) Header {
	return Header{
		Size:      int(v &^ allocatedBit),
		Allocated: v&allocatedBit != 0,
	}
}

// readHeader decodes the header at off. ok is false when the two header bytes
// are not inside data.
func readHeader(data []byte, off int) (Header, bool) {
	b, ok := buf.Slice(data, off, HeaderSize)
	if !ok {
		return Header{}, false
	}
	return decodeHeader(buf.U16LE(b)), true
}

// writeHeader stores h at off. Nothing is written when off is out of bounds
// or h.Size is not representable.
func writeHeader(data []byte, off int, h Header) bool {
	v, ok := encodeHeader(h)
	if !ok {
		return false
	}
	b, ok := buf.Slice(data, off, HeaderSize)
	if !ok {
		return false
	}
	return buf.PutU16LE(b, v)
}
