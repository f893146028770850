// Package console implements the VGA text mode console: an 80x25 grid of
// character cells backed by device memory at physical address 0xB8000.
package console

import (
	"bootcore/device/mmio"
	"io"
)

const (
	// DefaultColumns is the width of the standard text mode in characters.
	DefaultColumns = 80

	// DefaultRows is the height of the standard text mode in characters.
	DefaultRows = 25

	// FramebufferPhysAddr is the physical address of the text mode buffer.
	FramebufferPhysAddr uintptr = 0xb8000

	// Placeholder replaces bytes that have no printable glyph.
	Placeholder byte = 0xfe

	clearChar = byte(' ')
)

// defaultConsole lives in static storage; the kernel has no allocator.
var defaultConsole = VgaText{
	port:    mmio.NewPort(FramebufferPhysAddr, DefaultColumns*DefaultRows),
	width:   DefaultColumns,
	height:  DefaultRows,
	curAttr: DefaultAttr,
}

// Default returns the console bound to the physical text mode buffer. The
// console must be initialized with Init before use.
func Default() *VgaText {
	return &defaultConsole
}

// VgaText drives a text mode console. It tracks a write cursor, wraps long
// lines and scrolls the grid contents up when output runs past the last row.
//
// The driver never fails: bytes without a printable glyph are rendered as
// Placeholder, and every write issued before Init is silently dropped.
type VgaText struct {
	port mmio.Port

	width  uint32
	height uint32

	// Cursor position; always within the grid after a public call returns.
	row uint32
	col uint32

	curAttr  Attr
	ready    bool
	hwCursor bool
}

// NewVgaText creates a console with the requested dimensions on top of port.
// The row count is clipped so the grid never exceeds the port range.
func NewVgaText(columns, rows uint32, port mmio.Port) *VgaText {
	if columns == 0 {
		rows = 0
	} else if maxRows := port.Cells() / columns; rows > maxRows {
		rows = maxRows
	}

	return &VgaText{
		port:    port,
		width:   columns,
		height:  rows,
		curAttr: DefaultAttr,
	}
}

// Init clears the grid using DefaultAttr, resets the cursor to the top-left
// corner and the active color to DefaultAttr. Calling Init more than once
// yields the same state as calling it once.
func (cons *VgaText) Init() {
	if !cons.port.Mapped() || cons.width == 0 || cons.height == 0 {
		return
	}

	for row := uint32(0); row < cons.height; row++ {
		cons.clearRow(row)
	}

	cons.row, cons.col = 0, 0
	cons.curAttr = DefaultAttr
	cons.ready = true
	cons.syncCursor()
}

// Ready returns true once Init has completed successfully.
func (cons *VgaText) Ready() bool {
	return cons.ready
}

// Dimensions returns the console width and height in characters.
func (cons *VgaText) Dimensions() (columns, rows uint32) {
	return cons.width, cons.height
}

// CursorPosition returns the 0-based row and column of the write cursor.
func (cons *VgaText) CursorPosition() (row, col uint32) {
	return cons.row, cons.col
}

// CellAt returns the contents of the cell at (row, col). Coordinates outside
// the grid yield the zero Cell.
func (cons *VgaText) CellAt(row, col uint32) mmio.Cell {
	if row >= cons.height || col >= cons.width {
		return mmio.Cell{}
	}

	return cons.port.ReadCell(row*cons.width + col)
}

// PutByte renders b with the supplied attribute at the cursor position and
// advances the cursor. A newline moves the cursor to the start of the next
// row.
func (cons *VgaText) PutByte(b byte, attr Attr) {
	if !cons.ready {
		return
	}

	cons.putByte(b, attr)
	cons.syncCursor()
}

// PutString renders each byte of s in order using PutByte.
func (cons *VgaText) PutString(s string, attr Attr) {
	if !cons.ready {
		return
	}

	for i := 0; i < len(s); i++ {
		cons.putByte(s[i], attr)
	}
	cons.syncCursor()
}

// Write implements io.Writer using the active color. It returns
// io.ErrClosedPipe if the console has not been initialized.
func (cons *VgaText) Write(p []byte) (int, error) {
	if !cons.ready {
		return 0, io.ErrClosedPipe
	}

	for _, b := range p {
		cons.putByte(b, cons.curAttr)
	}
	cons.syncCursor()

	return len(p), nil
}

// WriteByte implements io.ByteWriter using the active color.
func (cons *VgaText) WriteByte(b byte) error {
	if !cons.ready {
		return io.ErrClosedPipe
	}

	cons.PutByte(b, cons.curAttr)
	return nil
}

// SetColor sets the attribute used by Write and WriteByte and returns the
// previously active one.
func (cons *VgaText) SetColor(attr uint8) uint8 {
	prev := cons.curAttr
	cons.curAttr = Attr(attr)
	return uint8(prev)
}

// ClearRow fills row with blank cells using DefaultAttr. The cursor is not
// moved.
func (cons *VgaText) ClearRow(row uint32) {
	if !cons.ready || row >= cons.height {
		return
	}

	cons.clearRow(row)
}

func (cons *VgaText) putByte(b byte, attr Attr) {
	if b == '\n' {
		cons.lf()
		return
	}

	if b < 0x20 || b > 0x7e {
		b = Placeholder
	}

	cons.port.WriteCell(cons.row*cons.width+cons.col, mmio.Cell{Ch: b, Attr: uint8(attr)})

	if cons.col++; cons.col == cons.width {
		cons.lf()
	}
}

// lf moves the cursor to the start of the next row, scrolling the grid up by
// one row when the cursor is already on the last row.
func (cons *VgaText) lf() {
	cons.col = 0

	if cons.row+1 < cons.height {
		cons.row++
		return
	}

	cons.scrollUp()
}

// scrollUp copies every row one row up, discarding row 0, and clears the last
// row.
func (cons *VgaText) scrollUp() {
	last := (cons.height - 1) * cons.width
	for offset := uint32(0); offset < last; offset++ {
		cons.port.WriteCell(offset, cons.port.ReadCell(offset+cons.width))
	}

	cons.clearRow(cons.height - 1)
}

func (cons *VgaText) clearRow(row uint32) {
	blank := mmio.Cell{Ch: clearChar, Attr: uint8(DefaultAttr)}
	start := row * cons.width
	for offset := start; offset < start+cons.width; offset++ {
		cons.port.WriteCell(offset, blank)
	}
}
