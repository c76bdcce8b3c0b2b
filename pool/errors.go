package pool

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found, even after coalescing.
	ErrNoSpace = errors.New("pool: no free block large enough")

	// ErrSizeOutOfRange indicates a requested payload size outside [1, MaxBlockSize].
	ErrSizeOutOfRange = errors.New("pool: size out of range")

	// ErrBadCapacity indicates a construction capacity outside [1, MaxCapacity].
	ErrBadCapacity = errors.New("pool: bad capacity")

	// ErrConstruction indicates that the backing buffer could not be obtained.
	ErrConstruction = errors.New("pool: cannot obtain backing buffer")

	// ErrBackingUnsupported indicates the requested backing is not available on this platform.
	ErrBackingUnsupported = errors.New("pool: backing not supported on this platform")

	// ErrBadRef indicates a reference that does not name a block in the chain.
	ErrBadRef = errors.New("pool: bad block reference")

	// ErrNotAllocated indicates an operation on a block that is already free.
	ErrNotAllocated = errors.New("pool: block is not allocated")

	// ErrCorrupt indicates the header chain no longer tiles the buffer.
	ErrCorrupt = errors.New("pool: corrupt block chain")

	// ErrClosed indicates use of a pool after Close.
	ErrClosed = errors.New("pool: closed")
)
