package readmehelp

import "runtime"

// Worker sizing constants for batch conversion.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent conversions; each holds a document and its
	// snippet sources in memory.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for file reads.
	cpuDivisor = 2
)

// ResolveWorkers determines how many documents to convert in parallel.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
