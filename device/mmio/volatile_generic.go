//go:build !amd64

package mmio

import "unsafe"

// store8 writes v to addr. Keeping it out of line prevents the compiler from
// proving the store dead at the call site.
//
//go:noinline
func store8(addr uintptr, v uint8) {
	*(*uint8)(unsafe.Pointer(addr)) = v
}

// load8 reads the byte at addr.
//
//go:noinline
func load8(addr uintptr) uint8 {
	return *(*uint8)(unsafe.Pointer(addr))
}
