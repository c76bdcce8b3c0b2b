package pool

import "fmt"

// ValidationError describes where the block chain stops tiling the buffer.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap makes every ValidationError match ErrCorrupt.
func (e *ValidationError) Unwrap() error {
	return ErrCorrupt
}

// Verify walks the chain from offset 0 and returns a *ValidationError if it
// does not end exactly at the end of the buffer.
func (p *Pool) Verify() error {
	if p.closed {
		return ErrClosed
	}
	if len(p.data) == 0 {
		return &ValidationError{Type: "Pool", Message: "empty buffer", Offset: -1}
	}
	return p.walk(func(int, Header) bool { return true })
}

// MemCheck reports whether the header chain exactly tiles the buffer.
func (p *Pool) MemCheck() bool {
	return p.Verify() == nil
}

// walk visits every block in order until fn returns false.
func (p *Pool) walk(fn func(off int, h Header) bool) error {
	for off := 0; off < len(p.data); {
		h, next, err := p.blockAt(off)
		if err != nil {
			return err
		}
		if !fn(off, h) {
			return nil
		}
		off = next
	}
	return nil
}
