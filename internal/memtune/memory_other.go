//go:build !linux && !darwin && !freebsd && !dragonfly && !netbsd && !openbsd

package memtune

// Reports that the memory query is not available.
func TotalMemoryMB() (int64, error) {
	return 0, ErrUnsupported
}
