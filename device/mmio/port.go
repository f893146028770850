// Package mmio provides the only sanctioned path for touching memory-mapped
// device regions. Drivers obtain a Port for the region they own and access it
// exclusively through bounds-checked, volatile cell accessors; no other
// package performs raw address arithmetic on device memory.
package mmio

import (
	"bootcore/kernel"
	"bootcore/kernel/kfmt"
	"unsafe"
)

// CellSize is the number of bytes occupied by a Cell in device memory.
const CellSize = 2

var (
	// fatalFn is mocked by tests.
	fatalFn = kfmt.Fatal

	errOffsetOutOfRange = &kernel.Report{Module: "mmio", Message: "cell offset out of range"}
)

// Cell is a (character, attribute) pair as laid out in text-mode device
// memory. The low nibble of Attr encodes the foreground color and the high
// nibble the background color.
type Cell struct {
	Ch   byte
	Attr uint8
}

// Port grants access to a fixed range of cells starting at a physical base
// address. The zero value is an unmapped port; reads return the zero Cell and
// writes are discarded.
type Port struct {
	base  uintptr
	cells uint32

	// backing keeps host memory passed to Map reachable for as long as the
	// port is in use.
	backing []byte
}

// NewPort returns a port covering cells consecutive cells starting at base.
func NewPort(base uintptr, cells uint32) Port {
	return Port{base: base, cells: cells}
}

// Map returns a port backed by buf instead of device memory. It is used by
// host tooling and tests to observe what a driver writes. Trailing bytes that
// do not form a complete cell are ignored.
func Map(buf []byte) Port {
	if len(buf) < CellSize {
		return Port{}
	}

	return Port{
		base:    uintptr(unsafe.Pointer(&buf[0])),
		cells:   uint32(len(buf) / CellSize),
		backing: buf,
	}
}

// Cells returns the number of cells addressable through this port.
func (p *Port) Cells() uint32 {
	return p.cells
}

// Mapped returns true if the port is backed by memory.
func (p *Port) Mapped() bool {
	return p.base != 0
}

// WriteCell stores the character and then the attribute byte of c at the
// requested cell offset. An offset outside the port range is reported to the
// fatal-failure path and the write is dropped.
func (p *Port) WriteCell(offset uint32, c Cell) {
	if !p.checkOffset(offset) {
		return
	}

	addr := p.base + uintptr(offset)*CellSize
	store8(addr, c.Ch)
	store8(addr+1, c.Attr)
}

// ReadCell loads the cell at the requested offset. An offset outside the port
// range is reported to the fatal-failure path and the zero Cell is returned.
func (p *Port) ReadCell(offset uint32) Cell {
	if !p.checkOffset(offset) {
		return Cell{}
	}

	addr := p.base + uintptr(offset)*CellSize
	return Cell{Ch: load8(addr), Attr: load8(addr + 1)}
}

func (p *Port) checkOffset(offset uint32) bool {
	if p.base == 0 {
		return false
	}

	if offset >= p.cells {
		fatalFn(errOffsetOutOfRange)
		return false
	}

	return true
}
