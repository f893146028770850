package console

// Color is one of the 16 standard VGA text mode colors.
type Color uint8

// The set of colors supported by the VGA text console.
const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGrey
	DarkGrey
	LightBlue
	LightGreen
	LightCyan
	LightRed
	Pink
	Yellow
	White
)

// Attr is a text cell attribute. The low nibble holds the foreground color
// and the high nibble the background color.
type Attr uint8

const (
	// DefaultAttr is used for cleared cells: light grey on black.
	DefaultAttr = Attr(LightGrey) | Attr(Black)<<4

	// FatalAttr is used by the fatal-failure path: red on black.
	FatalAttr = Attr(Red) | Attr(Black)<<4
)

// MakeAttr combines a foreground and a background color into an attribute.
// Colors outside the [0, 15] range are truncated to their low nibble.
func MakeAttr(fg, bg Color) Attr {
	return Attr(fg&0xf) | Attr(bg&0xf)<<4
}

// Foreground returns the foreground color encoded in a.
func (a Attr) Foreground() Color {
	return Color(a & 0xf)
}

// Background returns the background color encoded in a.
func (a Attr) Background() Color {
	return Color(a >> 4)
}
