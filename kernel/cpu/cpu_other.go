//go:build !amd64

package cpu

// The kernel only targets amd64. These fallbacks let host tools that share
// the device drivers build on other platforms.

func DisableInterrupts() {}

func Halt() {
	for {
	}
}

func Idle() {}

func PortWriteByte(_ uint16, _ uint8) {}

func PortReadByte(_ uint16) uint8 { return 0 }
