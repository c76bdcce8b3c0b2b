package pool

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/blockpool/internal/buf"
)

// Ref is the buffer offset of a block's payload, HeaderSize bytes past its header.
type Ref uint32

// Pool is a fixed-capacity block allocator over one owned buffer.
type Pool struct {
	data    []byte
	release func([]byte) error
	cfg     Config
	log     *slog.Logger
	closed  bool

	// Statistics for testing and instrumentation
	stats allocatorStats
}

// allocatorStats holds internal allocator counters.
type allocatorStats struct {
	AllocCalls    int // Total Alloc() calls
	AllocFailures int // Alloc() calls that returned ErrNoSpace
	Splits        int // Free blocks split into allocated head + free tail
	AbsorbedTails int // Allocations that took a whole block because the tail was too small
	Coalesces     int // Free neighbours merged (by Alloc scans or Free)
	FreeCalls     int // Total Free() calls
}

// New creates a pool with capacity usable bytes.
//
// Parameters:
//   - capacity: usable bytes, header overhead included; the buffer is capacity+2 bytes
//   - cfg: buffer backing and logging (use nil for DefaultConfig)
//
// A failed New returns no pool.
func New(capacity int, cfg *Config) (*Pool, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if capacity < 1 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrBadCapacity, capacity, MaxCapacity)
	}

	total := capacity + HeaderSize
	data, release, err := acquire(cfg.Backing, total)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes from %s: %w", ErrConstruction, total, cfg.Backing, err)
	}

	p := &Pool{
		data:    data,
		release: release,
		cfg:     *cfg,
		log:     cfg.logger().With("pool", cfg.Name),
	}
	p.format()

	p.log.Debug("pool created", "capacity", capacity, "backing", cfg.Backing.String(), "blocks", p.BlockCount())
	return p, nil
}

// format lays the buffer out as free blocks of at most MaxBlockSize bytes.
// A leftover that cannot hold a header is avoided by shortening the previous span.
func (p *Pool) format() {
	off := 0
	for rest := len(p.data); rest > 0; {
		span := min(rest, HeaderSize+MaxBlockSize)
		if rest-span == 1 {
			span--
		}
		writeHeader(p.data, off, Header{Size: span - HeaderSize})
		off += span
		rest -= span
	}
}

// Capacity returns the usable capacity the pool was created with.
func (p *Pool) Capacity() int {
	if p.closed {
		return 0
	}
	return len(p.data) - HeaderSize
}

// Alloc returns a block with at least size usable bytes.
// The returned payload aliases the pool buffer and is capped at the block's recorded size.
//
// ErrNoSpace is the normal out-of-space outcome; the pool is unchanged apart
// from any free neighbours the scan merged.
func (p *Pool) Alloc(size int) (Ref, []byte, error) {
	if p.closed {
		return 0, nil, ErrClosed
	}
	p.stats.AllocCalls++

	if size < 1 || size > MaxBlockSize {
		return 0, nil, fmt.Errorf("%w: %d (want 1..%d)", ErrSizeOutOfRange, size, MaxBlockSize)
	}

	data := p.data
	for off := 0; off < len(data); {
		h, next, err := p.blockAt(off)
		if err != nil {
			return 0, nil, err
		}

		if h.Allocated {
			off = next
			continue
		}

		switch {
		case h.Size == size:
			writeHeader(data, off, Header{Size: size, Allocated: true})
			return p.grant(off, size)

		case h.Size > size:
			remaining := h.Size - size - HeaderSize
			if remaining > 0 {
				// Split: allocate head, leave the tail free
				p.stats.Splits++
				writeHeader(data, off+HeaderSize+size, Header{Size: remaining})
				p.log.Debug("split", "off", off, "block", h.Size, "need", size, "tail", remaining)
			} else {
				// Tail cannot hold a header plus a byte; hand out the whole block
				p.stats.AbsorbedTails++
				p.log.Debug("absorb tail", "off", off, "block", h.Size, "need", size)
				size = h.Size
			}
			writeHeader(data, off, Header{Size: size, Allocated: true})
			return p.grant(off, size)

		default:
			nh, ok := readHeader(data, next)
			merged := h.Size + HeaderSize + nh.Size
			if ok && !nh.Allocated && merged <= MaxBlockSize && next+HeaderSize+nh.Size <= len(data) {
				// Absorb the free neighbour and retry at the same offset
				p.stats.Coalesces++
				writeHeader(data, off, Header{Size: merged})
				p.log.Debug("coalesce", "off", off, "left", h.Size, "right", nh.Size, "merged", merged)
				continue
			}
			off = next
		}
	}

	p.stats.AllocFailures++
	p.log.Debug("alloc failed", "need", size)
	return 0, nil, fmt.Errorf("%w: need %d bytes", ErrNoSpace, size)
}

// grant finishes a successful allocation of the block at off.
func (p *Pool) grant(off, size int) (Ref, []byte, error) {
	if err := p.paranoidCheck("alloc"); err != nil {
		return 0, nil, err
	}
	ref := off + HeaderSize
	payload, _ := buf.Slice(p.data, ref, size)
	return Ref(ref), payload, nil
}

// Free marks the block at ref free and merges it with the free blocks that
// directly follow it.
func (p *Pool) Free(ref Ref) error {
	if p.closed {
		return ErrClosed
	}
	p.stats.FreeCalls++

	off, h, err := p.locate(ref)
	if err != nil {
		return err
	}
	if !h.Allocated {
		return fmt.Errorf("%w: ref %d", ErrNotAllocated, ref)
	}

	size := h.Size
	for {
		next := off + HeaderSize + size
		nh, ok := readHeader(p.data, next)
		if !ok || nh.Allocated {
			break
		}
		merged := size + HeaderSize + nh.Size
		if merged > MaxBlockSize || next+HeaderSize+nh.Size > len(p.data) {
			break
		}
		p.stats.Coalesces++
		size = merged
	}
	writeHeader(p.data, off, Header{Size: size})

	if size != h.Size {
		p.log.Debug("free coalesce", "off", off, "block", h.Size, "merged", size)
	}
	return p.paranoidCheck("free")
}

// Payload returns the payload of the allocated block at ref.
func (p *Pool) Payload(ref Ref) ([]byte, error) {
	if p.closed {
		return nil, ErrClosed
	}
	off, h, err := p.locate(ref)
	if err != nil {
		return nil, err
	}
	if !h.Allocated {
		return nil, fmt.Errorf("%w: ref %d", ErrNotAllocated, ref)
	}
	payload, _ := buf.Slice(p.data, off+HeaderSize, h.Size)
	return payload, nil
}

// SizeOf returns the recorded payload size of the block at ref, which may
// exceed the size originally requested.
func (p *Pool) SizeOf(ref Ref) (int, error) {
	if p.closed {
		return 0, ErrClosed
	}
	_, h, err := p.locate(ref)
	if err != nil {
		return 0, err
	}
	return h.Size, nil
}

// Reset discards every block and restores the layout New produced.
// Counters are kept.
func (p *Pool) Reset() {
	if p.closed {
		return
	}
	p.format()
	p.log.Debug("pool reset", "blocks", p.BlockCount())
}

// Close releases the buffer. The pool must not be used afterwards.
func (p *Pool) Close() error {
	if p.closed {
		return ErrClosed
	}
	p.closed = true
	data := p.data
	p.data = nil
	return p.release(data)
}

// blockAt decodes the block at off and returns the offset of the block after it.
func (p *Pool) blockAt(off int) (Header, int, error) {
	h, ok := readHeader(p.data, off)
	if !ok {
		return Header{}, 0, &ValidationError{
			Type:    "Header",
			Message: fmt.Sprintf("header runs past end of buffer (len=%d)", len(p.data)),
			Offset:  off,
		}
	}
	next := off + HeaderSize + h.Size
	if next > len(p.data) {
		return Header{}, 0, &ValidationError{
			Type:    "Block",
			Message: fmt.Sprintf("block of %d bytes ends at %d, past buffer end %d", h.Size, next, len(p.data)),
			Offset:  off,
		}
	}
	return h, next, nil
}

// locate finds the block whose payload starts at ref.
func (p *Pool) locate(ref Ref) (int, Header, error) {
	target := int(ref) - HeaderSize
	if !buf.Has(p.data, target, HeaderSize) {
		return 0, Header{}, fmt.Errorf("%w: %d", ErrBadRef, ref)
	}

	for off := 0; off <= target; {
		h, next, err := p.blockAt(off)
		if err != nil {
			return 0, Header{}, err
		}
		if off == target {
			return off, h, nil
		}
		off = next
	}
	return 0, Header{}, fmt.Errorf("%w: %d is not a block start", ErrBadRef, ref)
}

func (p *Pool) paranoidCheck(op string) error {
	if !p.cfg.Paranoid {
		return nil
	}
	if err := p.Verify(); err != nil {
		p.log.Error("consistency violation", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
