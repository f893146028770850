package main

import (
	"bootcore/device/mmio"
	"bootcore/device/video/console"
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

// consoleDump returns a buffer written by the kernel console driver.
func consoleDump(t *testing.T, fill func(*console.VgaText)) []byte {
	t.Helper()
	buf := make([]byte, console.DefaultColumns*console.DefaultRows*mmio.CellSize)
	cons := console.NewVgaText(console.DefaultColumns, console.DefaultRows, mmio.Map(buf))
	cons.Init()
	fill(cons)
	return buf
}

func TestDecode(t *testing.T) {
	dump := consoleDump(t, func(cons *console.VgaText) {
		cons.PutString("Hello World!\n", console.DefaultAttr)
		cons.PutString("oops", console.FatalAttr)
	})

	scr, err := Decode(dump, 80, 25)
	if err != nil {
		t.Fatal(err)
	}

	if got := scr.Line(0)[:12]; got != "Hello World!" {
		t.Errorf("expected row 0 to start with %q; got %q", "Hello World!", got)
	}

	if got := scr.At(1, 0); got.Ch != 'o' || got.Attr != uint8(console.FatalAttr) {
		t.Errorf("expected cell (1, 0) to be {'o', 0x04}; got %+v", got)
	}

	if got := scr.At(24, 79); got.Ch != ' ' || got.Attr != uint8(console.DefaultAttr) {
		t.Errorf("expected last cell to be blank; got %+v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	specs := []struct {
		data       []byte
		cols, rows int
	}{
		{make([]byte, 3999), 80, 25},
		{nil, 80, 25},
		{make([]byte, 4000), 0, 25},
		{make([]byte, 4000), 80, -1},
	}

	for specIndex, spec := range specs {
		if _, err := Decode(spec.data, spec.cols, spec.rows); err == nil {
			t.Errorf("[spec %d] expected an error", specIndex)
		}
	}
}

func TestGlyph(t *testing.T) {
	specs := []struct {
		in  byte
		exp rune
	}{
		{'A', 'A'},
		{' ', ' '},
		{0x00, ' '},
		{0x01, '☺'},
		{0x7f, '⌂'},
		{0xb0, '░'},
		{0xdb, '█'},
		{console.Placeholder, '■'},
	}

	for specIndex, spec := range specs {
		if got := glyph(spec.in); got != spec.exp {
			t.Errorf("[spec %d] expected glyph(0x%x) to be %q; got %q", specIndex, spec.in, spec.exp, got)
		}
	}
}

func TestColors(t *testing.T) {
	fg, bg := colors(uint8(console.MakeAttr(console.Red, console.Blue)))
	if exp := (color.RGBA{0xaa, 0x00, 0x00, 0xff}); fg != exp {
		t.Errorf("expected fg to be %v; got %v", exp, fg)
	}
	if exp := (color.RGBA{0x00, 0x00, 0xaa, 0xff}); bg != exp {
		t.Errorf("expected bg to be %v; got %v", exp, bg)
	}
}

func TestDrawScreen(t *testing.T) {
	dump := consoleDump(t, func(cons *console.VgaText) {
		cons.PutString("ok", console.MakeAttr(console.Yellow, console.Blue))
		cons.PutByte(0x01, console.DefaultAttr)
	})
	scr, err := Decode(dump, 80, 25)
	if err != nil {
		t.Fatal(err)
	}

	s := tcell.NewSimulationScreen("UTF-8")
	if err = s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(80, 25)

	drawScreen(s, scr)

	mainc, _, style, _ := s.GetContent(1, 0)
	if mainc != 'k' {
		t.Errorf("expected 'k' at (0, 1); got %q", mainc)
	}
	fg, bg, _ := style.Decompose()
	if exp := tcell.NewRGBColor(0xff, 0xff, 0x55); fg != exp {
		t.Errorf("expected fg %v; got %v", exp, fg)
	}
	if exp := tcell.NewRGBColor(0x00, 0x00, 0xaa); bg != exp {
		t.Errorf("expected bg %v; got %v", exp, bg)
	}

	// the console stores unsupported bytes as the placeholder glyph
	if mainc, _, _, _ = s.GetContent(2, 0); mainc != '■' {
		t.Errorf("expected '■' at (0, 2); got %q", mainc)
	}
}

func TestIsQuit(t *testing.T) {
	specs := []struct {
		ev  tcell.Event
		exp bool
	}{
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{tcell.NewEventResize(80, 25), false},
	}

	for specIndex, spec := range specs {
		if got := isQuit(spec.ev); got != spec.exp {
			t.Errorf("[spec %d] expected isQuit to return %t; got %t", specIndex, spec.exp, got)
		}
	}
}

func TestRasterize(t *testing.T) {
	dump := consoleDump(t, func(cons *console.VgaText) {
		cons.PutByte(' ', console.MakeAttr(console.White, console.Blue))
	})
	scr, err := Decode(dump, 80, 25)
	if err != nil {
		t.Fatal(err)
	}

	img := rasterize(scr, 2)
	if b := img.Bounds(); b.Dx() != 80*cellWidth*2 || b.Dy() != 25*cellHeight*2 {
		t.Fatalf("unexpected image size %v", b)
	}

	specs := []struct {
		x, y int
		exp  color.RGBA
	}{
		// blank cell with a blue background
		{4, 4, color.RGBA{0x00, 0x00, 0xaa, 0xff}},
		// default cell
		{100, 100, color.RGBA{0x00, 0x00, 0x00, 0xff}},
	}

	for specIndex, spec := range specs {
		r, g, b, a := img.At(spec.x, spec.y).RGBA()
		got := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
		if got != spec.exp {
			t.Errorf("[spec %d] expected pixel (%d, %d) to be %v; got %v", specIndex, spec.x, spec.y, spec.exp, got)
		}
	}
}

func TestLoadDump(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "screen.bin")
	dump := consoleDump(t, func(cons *console.VgaText) {
		cons.PutString("dump", console.DefaultAttr)
	})
	if err := os.WriteFile(path, dump, 0644); err != nil {
		t.Fatal(err)
	}

	data, release, err := loadDump(path)
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	if len(data) != len(dump) || data[0] != 'd' || data[6] != 'p' {
		t.Fatalf("loaded dump does not match the written one")
	}

	empty := filepath.Join(dir, "empty.bin")
	if err = os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err = loadDump(empty); err == nil {
		t.Error("expected an error when loading an empty dump")
	}

	if _, _, err = loadDump(filepath.Join(dir, "missing.bin")); err == nil {
		t.Error("expected an error when loading a missing dump")
	}
}

func TestCellStyle(t *testing.T) {
	specs := []struct {
		attr   console.Attr
		fg, bg tcell.Color
	}{
		{console.DefaultAttr, tcell.NewRGBColor(0xaa, 0xaa, 0xaa), tcell.NewRGBColor(0x00, 0x00, 0x00)},
		{console.FatalAttr, tcell.NewRGBColor(0xaa, 0x00, 0x00), tcell.NewRGBColor(0x00, 0x00, 0x00)},
		{console.MakeAttr(console.LightCyan, console.Brown), tcell.NewRGBColor(0x55, 0xff, 0xff), tcell.NewRGBColor(0xaa, 0x55, 0x00)},
	}

	for specIndex, spec := range specs {
		fg, bg, _ := cellStyle(uint8(spec.attr)).Decompose()
		if fg != spec.fg || bg != spec.bg {
			t.Errorf("[spec %d] expected colors (%v, %v); got (%v, %v)", specIndex, spec.fg, spec.bg, fg, bg)
		}
	}
}

func TestPumpEvents(t *testing.T) {
	poll := func() tcell.Event {
		return tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	}

	// Nobody reads from events so the pump blocks on its first send.
	events := make(chan tcell.Event)
	done := make(chan struct{})
	returned := make(chan struct{})
	go func() {
		pumpEvents(poll, events, done)
		close(returned)
	}()

	close(done)
	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatal("expected pumpEvents to return once done is closed")
	}

	// A nil event ends the pump.
	pumpEvents(func() tcell.Event { return nil }, events, make(chan struct{}))
}

func TestExit(t *testing.T) {
	origStderr, origExit := stderr, osExitFn
	defer func() {
		stderr, osExitFn = origStderr, origExit
	}()

	var (
		buf  bytes.Buffer
		code int
	)
	stderr = &buf
	osExitFn = func(c int) { code = c }

	exit(errors.New("dump too short"))
	if exp := "[vgaview] error: dump too short\n"; buf.String() != exp {
		t.Errorf("expected error output %q; got %q", exp, buf.String())
	}
	if code != 1 {
		t.Errorf("expected exit code 1; got %d", code)
	}

	buf.Reset()
	code = -1
	exit(nil)
	if buf.Len() != 0 || code != 0 {
		t.Errorf("expected a silent exit with code 0; got %q and code %d", buf.String(), code)
	}
}

func TestReloadScreen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screen.bin")

	first := consoleDump(t, func(cons *console.VgaText) {
		cons.PutString("first", console.DefaultAttr)
	})
	if err := os.WriteFile(path, first, 0644); err != nil {
		t.Fatal(err)
	}

	data, err := readDump(path)
	if err != nil {
		t.Fatal(err)
	}

	// Rewriting the file must not affect a copy that was already read.
	second := consoleDump(t, func(cons *console.VgaText) {
		cons.PutString("second", console.DefaultAttr)
	})
	if err = os.WriteFile(path, second, 0644); err != nil {
		t.Fatal(err)
	}
	if data[0] != 'f' {
		t.Fatalf("expected the copy to keep the original contents; got %q", data[0])
	}

	scr, err := reloadScreen(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := scr.Line(0)[:6]; got != "second" {
		t.Fatalf("expected reloaded row 0 to start with %q; got %q", "second", got)
	}

	// A truncated dump is reported instead of being decoded.
	if err = os.WriteFile(path, second[:100], 0644); err != nil {
		t.Fatal(err)
	}
	if _, err = reloadScreen(path); err == nil {
		t.Error("expected an error when reloading a truncated dump")
	}

	if err = os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err = readDump(path); err == nil {
		t.Error("expected an error when reading an empty dump")
	}
}
