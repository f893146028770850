// Package cpu exposes the handful of privileged x86_64 instructions the kernel
// needs. All functions are implemented in assembly.
package cpu

// DisableInterrupts disables interrupt handling.
func DisableInterrupts()

// Halt disables interrupts and stops instruction execution. Halt never
// returns; if the CPU is woken up by an NMI it halts again.
func Halt()

// Idle suspends instruction execution until the next interrupt arrives.
func Idle()

// PortWriteByte writes a uint8 value to the requested port.
func PortWriteByte(port uint16, val uint8)

// PortReadByte reads a uint8 value from the requested port.
func PortReadByte(port uint16) uint8
