// Package pool provides a fixed-capacity block allocator that manages a single
// pre-allocated byte buffer without touching the Go heap after construction.
//
// # Overview
//
// A Pool owns one contiguous buffer of capacity+2 bytes. The buffer is carved
// into a chain of variable-size blocks, each prefixed by a 2-byte header that
// packs a 15-bit payload size and an allocated flag:
//
//	byte 0: size & 0xFF
//	byte 1: (size >> 8) & 0x7F | 0x80 if allocated
//
// Walking the chain from offset 0 and advancing by 2+size always lands exactly
// on the end of the buffer. MemCheck and Verify test that invariant.
//
// # Allocation
//
// Alloc performs a single left-to-right scan:
//
//   - a free block of exactly the requested size is marked allocated in place
//   - a larger free block is split when the tail can hold a header and at
//     least one byte, otherwise the whole block is handed out and keeps its
//     original recorded size
//   - a free block that is too small absorbs a free right neighbour and the
//     fit is retried at the same offset, so merges cascade
//   - allocated blocks are skipped
//
// Free marks a block free again and merges it with the free blocks that follow
// it. Free blocks to its left are merged lazily by the next Alloc scan.
//
// # Usage Example
//
//	p, err := pool.New(4096, nil)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	ref, payload, err := p.Alloc(64)
//	if errors.Is(err, pool.ErrNoSpace) {
//	    // fall back or report upstream
//	}
//	copy(payload, msg)
//
//	err = p.Free(ref)
//
// # Capacity
//
// A single block holds at most MaxBlockSize (32767) bytes. Pools larger than
// that start out as a chain of maximal free blocks, and merges never produce a
// block above MaxBlockSize.
//
// # Thread Safety
//
// Pool instances are not thread-safe. Alloc and Free leave the header chain in
// intermediate states while they run, so callers sharing a Pool must serialise
// every call externally.
package pool
