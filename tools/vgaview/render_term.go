package main

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// cellStyle returns the tcell style for a VGA cell attribute.
func cellStyle(attr uint8) tcell.Style {
	fg, bg := colors(attr)
	return tcell.StyleDefault.
		Foreground(tcellColor(fg)).
		Background(tcellColor(bg))
}

// drawScreen copies the decoded grid into s starting at the top-left corner.
// Cells that fall outside the terminal are clipped by tcell.
func drawScreen(s tcell.Screen, scr *Screen) {
	s.Clear()
	for row := 0; row < scr.Rows; row++ {
		for col := 0; col < scr.Cols; col++ {
			cell := scr.At(row, col)
			s.SetContent(col, row, glyph(cell.Ch), nil, cellStyle(cell.Attr))
		}
	}
	s.Show()
}

// pumpEvents forwards the events returned by poll to events until poll
// returns nil or done is closed.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for ev := poll(); ev != nil; ev = poll() {
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// isQuit reports whether ev asks the viewer to exit.
func isQuit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q'
	}
	return false
}
