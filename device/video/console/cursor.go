package console

import "bootcore/kernel/cpu"

const (
	crtcIndexPort uint16 = 0x3d4
	crtcDataPort  uint16 = 0x3d5

	crtcCursorLocHigh uint8 = 0x0e
	crtcCursorLocLow  uint8 = 0x0f
)

// portWriteByteFn is mocked by tests.
var portWriteByteFn = cpu.PortWriteByte

// EnableHardwareCursor keeps the blinking VGA cursor in sync with the write
// cursor by programming the CRT controller after every write.
func (cons *VgaText) EnableHardwareCursor() {
	cons.hwCursor = true
	cons.syncCursor()
}

func (cons *VgaText) syncCursor() {
	if !cons.hwCursor || !cons.ready {
		return
	}

	pos := uint16(cons.row*cons.width + cons.col)
	portWriteByteFn(crtcIndexPort, crtcCursorLocLow)
	portWriteByteFn(crtcDataPort, uint8(pos))
	portWriteByteFn(crtcIndexPort, crtcCursorLocHigh)
	portWriteByteFn(crtcDataPort, uint8(pos>>8))
}
