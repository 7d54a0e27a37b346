//go:build linux

package memtune

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Returns total physical memory in MB, from sysinfo(2).
func TotalMemoryMB() (int64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMemory, err)
	}

	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return int64(uint64(info.Totalram) * unit / 1024 / 1024), nil
}
