package pool

import (
	"io"
	"log/slog"
	"os"
)

// Runtime debug flag for allocation logging - controlled by BLOCKPOOL_LOG_ALLOC env var.
var logAlloc = os.Getenv("BLOCKPOOL_LOG_ALLOC") != ""

// MaxCapacity is the largest usable capacity New accepts.
const MaxCapacity = 1 << 30

// Backing selects where the pool buffer comes from.
type Backing uint8

const (
	// BackingHeap allocates the buffer with make.
	BackingHeap Backing = iota

	// BackingMmap maps an anonymous private region outside the Go heap.
	// Close unmaps it.
	BackingMmap
)

func (b Backing) String() string {
	switch b {
	case BackingHeap:
		return "heap"
	case BackingMmap:
		return "mmap"
	default:
		return "unknown"
	}
}

// Config defines how a pool acquires its buffer and reports what it does.
type Config struct {
	// Name for this configuration (shows up in log records)
	Name string

	// Backing for the buffer
	Backing Backing

	// Logger receives split/coalesce/failure events at debug level and
	// consistency violations at error level. nil uses the package default,
	// which discards output unless BLOCKPOOL_LOG_ALLOC is set.
	Logger *slog.Logger

	// Paranoid runs Verify after every Alloc and Free.
	Paranoid bool
}

// Predefined configurations.
var (
	// ConfigMapped keeps the buffer outside the Go heap.
	ConfigMapped = Config{
		Name:    "Mapped",
		Backing: BackingMmap,
	}

	// ConfigParanoid verifies the chain after every mutation. Meant for tests.
	ConfigParanoid = Config{
		Name:     "Paranoid",
		Backing:  BackingHeap,
		Paranoid: true,
	}

	// Default configuration (used if none specified).
	DefaultConfig = Config{
		Name:    "Default",
		Backing: BackingHeap,
	}
)

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	if logAlloc {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// acquire returns a zeroed buffer of n bytes and the function that releases it.
func acquire(b Backing, n int) ([]byte, func([]byte) error, error) {
	switch b {
	case BackingHeap:
		return make([]byte, n), func([]byte) error { return nil }, nil
	case BackingMmap:
		data, err := mapAnon(n)
		if err != nil {
			return nil, nil, err
		}
		return data, unmap, nil
	default:
		return nil, nil, ErrBackingUnsupported
	}
}
