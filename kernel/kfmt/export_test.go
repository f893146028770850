package kfmt

import "bootcore/kernel"

// MockHalt replaces the CPU halt routine used by Fatal and resets the fatal
// path so external tests can exercise it repeatedly. The returned function
// restores the original routine.
func MockHalt(fn func()) (restore func()) {
	orig := cpuHaltFn
	cpuHaltFn = fn
	fatalInProgress = false
	kernel.SetStateForTest(kernel.StateBooting)

	return func() {
		cpuHaltFn = orig
		fatalInProgress = false
		outputSink = nil
		kernel.SetStateForTest(kernel.StateBooting)
	}
}

// FatalColor exposes the attribute used for fatal reports.
const FatalColor = fatalColor
