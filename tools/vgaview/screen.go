package main

import (
	"bootcore/device/mmio"
	"bootcore/device/video/console"
	"fmt"
)

// Screen is a decoded snapshot of a text mode buffer.
type Screen struct {
	Cols, Rows int
	Cells      []mmio.Cell
}

// Decode interprets data as a cols x rows text mode buffer, as produced by
// dumping the 0xB8000 region of a running machine (e.g. with the QEMU monitor
// command "pmemsave 0xb8000 4000 screen.bin"). The cells are read through the
// same console driver the kernel uses to write them.
func Decode(data []byte, cols, rows int) (*Screen, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("invalid screen dimensions %dx%d", cols, rows)
	}

	if need := cols * rows * mmio.CellSize; len(data) < need {
		return nil, fmt.Errorf("dump too short for a %dx%d screen: need %d bytes; got %d", cols, rows, need, len(data))
	}

	cons := console.NewVgaText(uint32(cols), uint32(rows), mmio.Map(data))
	scr := &Screen{
		Cols:  cols,
		Rows:  rows,
		Cells: make([]mmio.Cell, 0, cols*rows),
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			scr.Cells = append(scr.Cells, cons.CellAt(uint32(row), uint32(col)))
		}
	}

	return scr, nil
}

// At returns the cell at (row, col).
func (s *Screen) At(row, col int) mmio.Cell {
	return s.Cells[row*s.Cols+col]
}

// Line returns the glyphs of a row as a string.
func (s *Screen) Line(row int) string {
	runes := make([]rune, s.Cols)
	for col := range runes {
		runes[col] = glyph(s.At(row, col).Ch)
	}
	return string(runes)
}
