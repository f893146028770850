package kfmt

import (
	"bootcore/kernel"
	"bootcore/kernel/cpu"
)

// fatalColor is the console attribute used for fatal reports (red on black).
// It must match console.FatalAttr; the console package imports kfmt so the
// value cannot be referenced directly.
const fatalColor uint8 = 0x04

// ColorSetter is implemented by output sinks that support colored output.
// SetColor activates attr for subsequent writes and returns the previously
// active attribute.
type ColorSetter interface {
	SetColor(attr uint8) uint8
}

var (
	// cpuHaltFn is mocked by tests and is automatically inlined by the compiler.
	cpuHaltFn = cpu.Halt

	// fatalInProgress guards against re-entering Fatal while a report is
	// being written (e.g. a fault raised by the console itself).
	fatalInProgress bool

	// errRuntimePanic is populated by Panic when the value passed to the
	// redirected runtime.gopanic is not already a report.
	errRuntimePanic = &kernel.Report{Module: "rt", Message: "unknown cause"}

	haltBanner = "\n*** system halted ***"
)

// Fatal writes r to the active output sink using the fatal color, moves the
// kernel to StateHalted and halts the CPU. Fatal never returns and never
// allocates. A nil report produces a bare panic banner.
//
// If Fatal is re-entered while a report is being written, the CPU is halted
// immediately without any further output.
func Fatal(r *kernel.Report) {
	if fatalDone() {
		cpuHaltFn()
		return
	}
	fatalInProgress = true

	w := outputSink
	if cs, ok := w.(ColorSetter); ok {
		cs.SetColor(fatalColor)
	}

	writeString(w, "kernel panic")
	if r.HasLocation() {
		writeString(w, " at ")
		writeString(w, r.File)
		writeByte(w, ':')
		writeUint(w, uint64(r.Line), false, 10, 0)
		if r.Column != 0 {
			writeByte(w, ':')
			writeUint(w, uint64(r.Column), false, 10, 0)
		}
	}

	if r.HasMessage() {
		writeString(w, ": ")
		if r.Module != "" {
			writeByte(w, '[')
			writeString(w, r.Module)
			writeString(w, "] ")
		}
		writeString(w, r.Message)
	}
	writeString(w, haltBanner)

	kernel.SetState(kernel.StateHalted)
	cpuHaltFn()
}

// Panic converts e into a fatal report and passes it to Fatal. Calls to Panic
// never return. Panic also works as a redirection target for calls to panic()
// (resolved via runtime.gopanic).
//
//go:redirect-from runtime.gopanic
func Panic(e interface{}) {
	// errRuntimePanic may be the report an outer Fatal is still writing.
	if fatalDone() {
		cpuHaltFn()
		return
	}

	switch t := e.(type) {
	case *kernel.Report:
		Fatal(t)
	case *kernel.Error:
		errRuntimePanic.Module = t.Module
		errRuntimePanic.Message = t.Message
		Fatal(errRuntimePanic)
	case string:
		panicString(t)
	case error:
		errRuntimePanic.Module = "rt"
		errRuntimePanic.Message = t.Error()
		Fatal(errRuntimePanic)
	default:
		Fatal(nil)
	}
}

// panicString serves as a redirect target for runtime.throw
//
//go:redirect-from runtime.throw
func panicString(msg string) {
	if fatalDone() {
		cpuHaltFn()
		return
	}

	errRuntimePanic.Module = "rt"
	errRuntimePanic.Message = msg
	Fatal(errRuntimePanic)
}

// fatalDone returns true if a fatal report is being written or the kernel has
// already halted.
func fatalDone() bool {
	return fatalInProgress || kernel.CurrentState() == kernel.StateHalted
}
