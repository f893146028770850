package main

import (
	"bootcore/device/video/console"
	"image/color"

	"golang.org/x/text/encoding/charmap"
)

// lowGlyphs holds the graphical glyphs the VGA character generator shows for
// the control code range, which charmap decodes as control characters.
var lowGlyphs = [0x20]rune{
	' ', '☺', '☻', '♥', '♦', '♣', '♠', '•', '◘', '○', '◙', '♂', '♀', '♪', '♫', '☼',
	'►', '◄', '↕', '‼', '¶', '§', '▬', '↨', '↑', '↓', '→', '←', '∟', '↔', '▲', '▼',
}

// glyph maps a code page 437 byte to the rune it is displayed as.
func glyph(b byte) rune {
	switch {
	case b < 0x20:
		return lowGlyphs[b]
	case b == 0x7f:
		return '⌂'
	case b == 0xff:
		return ' '
	default:
		return charmap.CodePage437.DecodeByte(b)
	}
}

// palette holds the default VGA DAC colors.
var palette = [16]color.RGBA{
	console.Black:      {0x00, 0x00, 0x00, 0xff},
	console.Blue:       {0x00, 0x00, 0xaa, 0xff},
	console.Green:      {0x00, 0xaa, 0x00, 0xff},
	console.Cyan:       {0x00, 0xaa, 0xaa, 0xff},
	console.Red:        {0xaa, 0x00, 0x00, 0xff},
	console.Magenta:    {0xaa, 0x00, 0xaa, 0xff},
	console.Brown:      {0xaa, 0x55, 0x00, 0xff},
	console.LightGrey:  {0xaa, 0xaa, 0xaa, 0xff},
	console.DarkGrey:   {0x55, 0x55, 0x55, 0xff},
	console.LightBlue:  {0x55, 0x55, 0xff, 0xff},
	console.LightGreen: {0x55, 0xff, 0x55, 0xff},
	console.LightCyan:  {0x55, 0xff, 0xff, 0xff},
	console.LightRed:   {0xff, 0x55, 0x55, 0xff},
	console.Pink:       {0xff, 0x55, 0xff, 0xff},
	console.Yellow:     {0xff, 0xff, 0x55, 0xff},
	console.White:      {0xff, 0xff, 0xff, 0xff},
}

// colors returns the foreground and background RGB values for a cell
// attribute.
func colors(attr uint8) (fg, bg color.RGBA) {
	a := console.Attr(attr)
	return palette[a.Foreground()], palette[a.Background()]
}
