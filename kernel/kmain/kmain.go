// Package kmain contains the kernel entrypoint and the boot sequence.
package kmain

import (
	"bootcore/device/video/console"
	"bootcore/kernel"
	"bootcore/kernel/cpu"
	"bootcore/kernel/kfmt"
)

var (
	// The following functions are mocked by tests.
	idleFn       = cpu.Idle
	fatalFn      = kfmt.Fatal
	consoleFn    = console.Default
	hwCursorFn   = (*console.VgaText).EnableHardwareCursor
	bannerAttr   = console.MakeAttr(console.White, console.Black)
	bootLog      = kfmt.PrefixWriter{Prefix: []byte("[boot] ")}
	bannerString = "bootcore x86_64\n"

	errKmainReturned = &kernel.Report{Module: "kmain", Message: "Kmain returned"}
)

// Kmain is the kernel entrypoint. It is reached through the main.main
// trampoline which the rt0 code calls after the bootloader has handed over
// control with the CPU in long mode and interrupts disabled.
//
// Kmain initializes the console, emits the boot banner and then idles for as
// long as the kernel is running. Kmain is not expected to return; should the
// idle loop ever exit, the fatal-failure path is invoked.
//
//go:noinline
func Kmain() {
	boot()

	for kernel.CurrentState() == kernel.StateRunning {
		idleFn()
	}

	// Use fatalFn instead of panic to prevent the compiler from treating
	// kfmt.Fatal as dead-code and eliminating it.
	fatalFn(errKmainReturned)
}

// boot performs the initialization steps in order and moves the kernel to
// StateRunning.
func boot() {
	cons := consoleFn()
	cons.Init()
	hwCursorFn(cons)

	// Replays anything printed before the console was available.
	kfmt.SetOutputSink(cons)

	cons.PutString(bannerString, bannerAttr)

	cols, rows := cons.Dimensions()
	bootLog.Sink = cons
	kfmt.Fprintf(&bootLog, "console: %dx%d text mode @ 0x%x\n", cols, rows, console.FramebufferPhysAddr)
	kfmt.Fprintf(&bootLog, "no scheduler; idling\n")

	kernel.SetState(kernel.StateRunning)
}
