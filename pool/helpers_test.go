package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestPool creates a paranoid heap-backed pool and closes it at test end.
func newTestPool(t testing.TB, capacity int) *Pool {
	t.Helper()
	p, err := New(capacity, &ConfigParanoid)
	require.NoError(t, err)
	t.Cleanup(func() {
		if !p.closed {
			require.NoError(t, p.Close())
		}
	})
	return p
}

// layout returns every block in chain order.
func layout(t testing.TB, p *Pool) []Block {
	t.Helper()
	var blocks []Block
	require.NoError(t, p.Walk(func(b Block) bool {
		blocks = append(blocks, b)
		return true
	}))
	return blocks
}

// getBlock decodes the header at off directly from the buffer.
func getBlock(t testing.TB, p *Pool, off int) Header {
	t.Helper()
	h, ok := readHeader(p.data, off)
	require.True(t, ok, "header at %d out of bounds", off)
	return h
}

// assertInvariants checks the tiling and accounting laws.
func assertInvariants(t testing.TB, p *Pool) {
	t.Helper()
	require.NoError(t, p.Verify())
	require.True(t, p.MemCheck())

	s := p.Stats()
	require.Equal(t, s.Capacity+HeaderSize, s.TotalFree+s.TotalAllocated+HeaderSize*s.Blocks,
		"payload + header bytes must cover the buffer")
	require.LessOrEqual(t, s.TotalFree+s.TotalAllocated, s.Capacity)
	require.Equal(t, s.Blocks, s.FreeBlocks+s.AllocatedBlocks)
	require.Equal(t, s.TotalFree, p.TotFree())
	require.Equal(t, s.TotalAllocated, p.TotAllocated())
	require.Equal(t, s.LargestFree, p.LargestFree())
	require.Equal(t, s.Blocks, p.BlockCount())
}

// fill allocates each size in order, failing the test on any error.
func fill(t testing.TB, p *Pool, sizes ...int) []Ref {
	t.Helper()
	refs := make([]Ref, 0, len(sizes))
	for _, sz := range sizes {
		ref, _, err := p.Alloc(sz)
		require.NoError(t, err, "Alloc(%d)", sz)
		refs = append(refs, ref)
	}
	return refs
}
