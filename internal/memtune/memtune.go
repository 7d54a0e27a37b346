package memtune

import (
	"log/slog"
	"strconv"

	"github.com/fibjs/fibhost/internal/engine"
)

const (

	// Stack reserved below the base stack size in release builds, in KB.
	GuardSize = 16

	// Stack reserved below the base stack size in debug builds, in KB.
	DebugGuardSize = 32

	// Heap ceiling for machines with more than 2048 MB, in MB.
	largeTier = 2048

	// Heap ceiling for machines with more than 1024 MB, in MB. Also used when
	// the memory reading is unusable.
	smallTier = 1024
)

// Reports total physical memory in MB.
type Probe func() (int64, error)

// Values applied by [Tune].
type Result struct {
	TotalMB     int64 // Memory reading, or zero if the probe failed.
	HeapLimitMB int64 // Old generation limit applied to the engine.
	StackSize   int   // Usable native stack applied to the engine, in KB.
}

// Returns the old generation heap ceiling for a machine with totalMB of
// memory.
//
// A non-positive reading is treated as unknown and gets the 1024 MB tier,
// not a zero limit that would leave sizing to the engine's own heuristic.
func HeapLimit(totalMB int64) int64 {
	switch {
	case totalMB <= 0:
		return smallTier
	case totalMB > largeTier:
		return largeTier
	case totalMB > smallTier:
		return smallTier
	default:
		return totalMB * 3 / 4
	}
}

// Returns the stack guard margin for the build type.
func Guard(debug bool) int {
	if debug {
		return DebugGuardSize
	}
	return GuardSize
}

// Applies memory-derived limits to the engine flags.
//
// The heap limit comes from [HeapLimit] on probe's reading; a probe error is
// logged and handled as an unusable reading. The usable stack is stackSize
// minus the guard for the build type. Asynchronous WebAssembly compilation
// is always disabled.
func Tune(flags *engine.Flags, probe Probe, stackSize int, debug bool, logger *slog.Logger) Result {
	total, err := probe()
	if err != nil {
		logger.Warn("failed to read total memory", "error", err)
		total = 0
	}

	res := Result{
		TotalMB:     total,
		HeapLimitMB: HeapLimit(total),
		StackSize:   stackSize - Guard(debug),
	}

	for name, value := range map[string]string{
		"max-old-space-size":     strconv.FormatInt(res.HeapLimitMB, 10),
		"stack-size":             strconv.Itoa(res.StackSize),
		"wasm-async-compilation": "false",
	} {
		if err := flags.Set(name, value); err != nil {
			logger.Warn("failed to tune engine flag", "flag", name, "error", err)
		}
	}

	logger.Debug("tuned engine memory",
		"total_mb", res.TotalMB,
		"max_old_space_size", res.HeapLimitMB,
		"stack_size", res.StackSize,
	)

	return res
}
