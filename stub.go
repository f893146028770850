package main

import "bootcore/kernel/kmain"

// main is the only Go symbol the rt0 code calls. It is a trampoline for the
// actual kernel entrypoint and keeps the Go compiler from discarding the
// kernel code, since the compiler is not aware of the rt0 caller.
//
// The rt0 code invokes main with no arguments after setting up the GDT and a
// minimal g0 on the stack provided by the bootloader. main never returns; if
// it did, the rt0 code would halt the CPU.
func main() {
	kmain.Kmain()
}
