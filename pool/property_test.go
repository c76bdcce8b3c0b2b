package pool

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Property_RandomAllocFree performs random alloc/free and validates the
// tiling invariant, the accounting law and payload integrity after every step.
func Test_Property_RandomAllocFree(t *testing.T) {
	for _, capacity := range []int{64, 1000, 4096, 40000} {
		rng := rand.New(rand.NewSource(int64(capacity))) // Fixed seed for reproducibility
		p := newTestPool(t, capacity)

		// live maps each ref to the fill byte written across its payload
		live := make(map[Ref]byte)
		var order []Ref

		for i := 0; i < 1000; i++ {
			if rng.Intn(3) != 0 || len(order) == 0 {
				size := 1 + rng.Intn(min(capacity, 512))
				ref, payload, err := p.Alloc(size)
				if err != nil {
					require.ErrorIs(t, err, ErrNoSpace, "step %d", i)
				} else {
					require.GreaterOrEqual(t, len(payload), size, "step %d", i)
					fillByte := byte(i)
					for j := range payload {
						payload[j] = fillByte
					}
					live[ref] = fillByte
					order = append(order, ref)
				}
			} else {
				idx := rng.Intn(len(order))
				ref := order[idx]
				require.NoError(t, p.Free(ref), "step %d", i)
				delete(live, ref)
				order = append(order[:idx], order[idx+1:]...)
			}

			assertInvariants(t, p)
			for ref, want := range live {
				payload, err := p.Payload(ref)
				require.NoError(t, err, "step %d ref %d", i, ref)
				for j, b := range payload {
					if b != want {
						t.Fatalf("step %d: ref %d byte %d = 0x%X, want 0x%X", i, ref, j, b, want)
					}
				}
			}
		}
	}
}

// Test_Property_ExhaustionLeavesChainIntact fills a pool with random sizes
// until it fails and checks nothing was corrupted on the failing call.
func Test_Property_ExhaustionLeavesChainIntact(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := newTestPool(t, 2048)

	for {
		size := 1 + rng.Intn(200)
		_, _, err := p.Alloc(size)
		if err != nil {
			require.ErrorIs(t, err, ErrNoSpace)
			require.Less(t, p.LargestFree(), size)
			break
		}
	}
	assertInvariants(t, p)
}

func FuzzAllocFree(f *testing.F) {
	f.Add(uint16(100), []byte{30, 20, 40, 10})
	f.Add(uint16(64), []byte{0x81, 10, 0x80, 10, 20})
	f.Add(uint16(40000), []byte{0xFF, 0xFF, 0x82, 0x7F})

	f.Fuzz(func(t *testing.T, capacity uint16, ops []byte) {
		if capacity == 0 {
			return
		}
		p, err := New(int(capacity), &ConfigParanoid)
		require.NoError(t, err)
		defer p.Close()

		var refs []Ref
		for _, op := range ops {
			// High bit selects free, low bits pick the victim or the size
			if op&0x80 != 0 && len(refs) > 0 {
				idx := int(op&0x7F) % len(refs)
				require.NoError(t, p.Free(refs[idx]))
				refs = append(refs[:idx], refs[idx+1:]...)
				continue
			}
			size := int(op&0x7F)*int(capacity)/0x7F + 1
			ref, _, err := p.Alloc(min(size, MaxBlockSize))
			if err != nil {
				require.ErrorIs(t, err, ErrNoSpace)
				continue
			}
			refs = append(refs, ref)
		}
		assertInvariants(t, p)
	})
}
