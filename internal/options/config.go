package options

import (
	"os"
	"strconv"
)

const (

	// Default sampling interval for --prof, in microseconds.
	DefaultProfInterval = 1000

	// Lowest accepted sampling interval, in microseconds. Smaller values
	// given to --prof-interval are raised to this.
	MinProfInterval = 50
)

// Process-wide runtime configuration.
//
// A Config is built once from [Default] and the host flags, then treated as
// read-only for the rest of the process. Subsystems receive it by value or
// through [WithConfig].
type Config struct {
	StackSize    int           // Base native stack size in KB, before the engine guard.
	UseThread    bool          // Run fibers on native threads.
	TCPDump      bool          // Print the contents of TCP packets.
	SSLDump      bool          // Print the contents of SSL packets.
	UVSocket     bool          // Use libuv as the socket backend.
	Prof         bool          // Log statistical profiling information.
	ProfInterval int           // Profiler sampling interval in microseconds.
	Coverage     *CoverageSink // Coverage output, or nil when coverage is off.
}

// Returns the configuration in effect before any flag is applied.
func Default() Config {
	return Config{
		StackSize:    defaultStackSize(),
		ProfInterval: DefaultProfInterval,
	}
}

// Returns the base stack size for the running architecture.
//
// 64-bit targets get 512 KB, everything else 256 KB.
func defaultStackSize() int {
	if strconv.IntSize == 64 {
		return 512
	}
	return 256
}

// An open, append-mode destination for coverage samples.
//
// The sink is only opened here. Writing samples and closing the file at exit
// belong to the coverage subsystem.
type CoverageSink struct {
	Name string   // Resolved file name.
	File *os.File // Open handle, positioned for append.
}

// Closes the underlying file. Safe to call on a nil sink.
func (s *CoverageSink) Close() error {
	if s == nil || s.File == nil {
		return nil
	}
	return s.File.Close()
}
