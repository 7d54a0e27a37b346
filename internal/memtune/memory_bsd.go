//go:build darwin || freebsd || dragonfly || netbsd || openbsd

package memtune

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// Returns total physical memory in MB, from sysctl(3).
func TotalMemoryMB() (int64, error) {
	key := memsizeKey(runtime.GOOS)
	bytes, err := unix.SysctlUint64(key)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrMemory, key, err)
	}
	return int64(bytes / 1024 / 1024), nil
}
