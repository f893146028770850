package main

import (
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	cellWidth  = 8
	cellHeight = 16
)

// rasterize draws the screen with an 8x16 cell grid, magnified by scale.
func rasterize(scr *Screen, scale int) image.Image {
	if scale < 1 {
		scale = 1
	}

	dc := gg.NewContext(scr.Cols*cellWidth*scale, scr.Rows*cellHeight*scale)
	dc.Scale(float64(scale), float64(scale))
	dc.SetFontFace(basicfont.Face7x13)

	face := basicfont.Face7x13
	baseline := float64(cellHeight-(cellHeight-face.Height)/2) - float64(face.Descent)

	for row := 0; row < scr.Rows; row++ {
		for col := 0; col < scr.Cols; col++ {
			cell := scr.At(row, col)
			fg, bg := colors(cell.Attr)
			x, y := float64(col*cellWidth), float64(row*cellHeight)

			dc.SetColor(bg)
			dc.DrawRectangle(x, y, cellWidth, cellHeight)
			dc.Fill()

			if r := glyph(cell.Ch); r != ' ' {
				dc.SetColor(fg)
				dc.DrawString(string(r), x, y+baseline)
			}
		}
	}

	return dc.Image()
}

// savePNG renders the screen into a PNG file.
func savePNG(scr *Screen, path string, scale int) error {
	return gg.SavePNG(path, rasterize(scr, scale))
}
