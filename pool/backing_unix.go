//go:build linux || darwin || freebsd

package pool

import (
	"golang.org/x/sys/unix"
)

// mapAnon maps n zeroed bytes of private anonymous memory.
func mapAnon(n int) ([]byte, error) {
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

// unmap releases a region returned by mapAnon.
func unmap(data []byte) error {
	return unix.Munmap(data)
}
