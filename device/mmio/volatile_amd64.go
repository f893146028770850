package mmio

// store8 writes v to addr. It is implemented in assembly so the compiler can
// neither elide nor reorder the store.
func store8(addr uintptr, v uint8)

// load8 reads the byte at addr. It is implemented in assembly so the compiler
// can neither cache nor reorder the load.
func load8(addr uintptr) uint8
