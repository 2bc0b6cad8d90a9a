package lyrender

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one trim runs at a time.
	MinWorkers = 1

	// MaxWorkers caps concurrent convert processes; each holds a decoded
	// page in memory.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for the tools' own threads.
	cpuDivisor = 2
)

// ResolveWorkers determines how many pages are trimmed concurrently.
// Priority: explicit value > auto-calculated from GOMAXPROCS.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
