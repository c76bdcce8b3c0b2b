//go:build !(linux || darwin || freebsd)

package pool

func mapAnon(int) ([]byte, error) {
	return nil, ErrBackingUnsupported
}

func unmap([]byte) error {
	return nil
}
