package pool

// Block is one entry of the chain as reported by Walk.
type Block struct {
	Offset int // header offset
	Header
}

// Ref returns the payload reference of the block.
func (b Block) Ref() Ref {
	return Ref(b.Offset + HeaderSize)
}

// Stats is a snapshot of capacity usage and allocator counters.
type Stats struct {
	Capacity        int `json:"capacity"`
	Blocks          int `json:"blocks"`
	FreeBlocks      int `json:"free_blocks"`
	AllocatedBlocks int `json:"allocated_blocks"`
	TotalFree       int `json:"total_free"`
	TotalAllocated  int `json:"total_allocated"`
	LargestFree     int `json:"largest_free"`

	AllocCalls    int `json:"alloc_calls"`
	AllocFailures int `json:"alloc_failures"`
	Splits        int `json:"splits"`
	AbsorbedTails int `json:"absorbed_tails"`
	Coalesces     int `json:"coalesces"`
	FreeCalls     int `json:"free_calls"`
}

// Walk calls fn for each block from offset 0 until fn returns false.
// It returns a *ValidationError if the chain is corrupt.
func (p *Pool) Walk(fn func(Block) bool) error {
	if p.closed {
		return ErrClosed
	}
	return p.walk(func(off int, h Header) bool {
		return fn(Block{Offset: off, Header: h})
	})
}

// TotFree returns the summed payload size of all free blocks.
func (p *Pool) TotFree() int {
	n := 0
	_ = p.Walk(func(b Block) bool {
		if !b.Allocated {
			n += b.Size
		}
		return true
	})
	return n
}

// TotAllocated returns the summed recorded size of all allocated blocks.
func (p *Pool) TotAllocated() int {
	n := 0
	_ = p.Walk(func(b Block) bool {
		if b.Allocated {
			n += b.Size
		}
		return true
	})
	return n
}

// LargestFree returns the payload size of the largest single free block.
// Adjacent free blocks are not summed.
func (p *Pool) LargestFree() int {
	n := 0
	_ = p.Walk(func(b Block) bool {
		if !b.Allocated && b.Size > n {
			n = b.Size
		}
		return true
	})
	return n
}

// BlockCount returns the number of blocks in the chain.
func (p *Pool) BlockCount() int {
	n := 0
	_ = p.Walk(func(Block) bool {
		n++
		return true
	})
	return n
}

// Stats scans the pool once and returns totals plus counters.
func (p *Pool) Stats() Stats {
	s := Stats{
		Capacity:      p.Capacity(),
		AllocCalls:    p.stats.AllocCalls,
		AllocFailures: p.stats.AllocFailures,
		Splits:        p.stats.Splits,
		AbsorbedTails: p.stats.AbsorbedTails,
		Coalesces:     p.stats.Coalesces,
		FreeCalls:     p.stats.FreeCalls,
	}
	_ = p.Walk(func(b Block) bool {
		s.Blocks++
		if b.Allocated {
			s.AllocatedBlocks++
			s.TotalAllocated += b.Size
		} else {
			s.FreeBlocks++
			s.TotalFree += b.Size
			s.LargestFree = max(s.LargestFree, b.Size)
		}
		return true
	})
	return s
}
