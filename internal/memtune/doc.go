// Derives engine memory limits from the machine's physical memory.
//
// [Tune] runs once at startup, before the command line is inspected. It
// caps the engine's old generation heap by tier: 2048 MB on machines with
// more than 2 GB, 1024 MB on machines with more than 1 GB, and three quarters
// of physical memory otherwise. It also reserves a guard margin below the
// host's base stack size (32 KB in debug builds, 16 KB otherwise) and turns
// off asynchronous WebAssembly compilation.
//
// Engine flags given on the command line are applied afterwards and take
// precedence over the tuned values.
//
// Example usage:
//
//	eng := engine.New()
//	res := memtune.Tune(eng.Flags, memtune.TotalMemoryMB, cfg.StackSize, internal.IsDebug(), logger)
//	logger.Debug("memory", "total_mb", res.TotalMB, "heap_mb", res.HeapLimitMB)
package memtune
