package memtune

// Returns the 64-bit physical memory sysctl for goos.
func memsizeKey(goos string) string {
	switch goos {
	case "darwin":
		return "hw.memsize"
	case "netbsd":
		return "hw.physmem64"
	default:
		return "hw.physmem"
	}
}
