// Command vgaview displays a raw dump of the VGA text buffer.
//
// A dump can be taken from a kernel running under QEMU with the monitor
// command
//
//	pmemsave 0xb8000 4000 screen.bin
//
// By default the screen is shown in the terminal until Esc or q is pressed.
// With -png the screen is rendered into an image instead.
package main

import (
	"bootcore/device/video/console"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
)

var (
	pngFile = flag.String("png", "", "render the dump into this PNG file and exit")
	watch   = flag.Bool("watch", false, "redraw whenever the dump file changes")
	cols    = flag.Int("cols", int(console.DefaultColumns), "number of text columns")
	rows    = flag.Int("rows", int(console.DefaultRows), "number of text rows")
	scale   = flag.Int("scale", 1, "PNG magnification factor")
)

var (
	// The following are mocked by tests.
	stderr   io.Writer = os.Stderr
	osExitFn           = os.Exit
)

func exit(err error) {
	if err != nil {
		fmt.Fprintf(stderr, "[vgaview] error: %s\n", err.Error())
		osExitFn(1)
		return
	}
	osExitFn(0)
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: vgaview [flags] DUMP_FILE\n")
	flag.PrintDefaults()
}

// readScreen loads and decodes the dump at path.
func readScreen(path string) (*Screen, error) {
	data, release, err := loadDump(path)
	if err != nil {
		return nil, err
	}
	defer release()

	return Decode(data, *cols, *rows)
}

// reloadScreen decodes a private copy of the dump at path. It is used by
// -watch where the file may be rewritten while it is being read.
func reloadScreen(path string) (*Screen, error) {
	data, err := readDump(path)
	if err != nil {
		return nil, err
	}

	return Decode(data, *cols, *rows)
}

func main() {
	log.SetPrefix("[vgaview] ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	scr, err := readScreen(path)
	if err != nil {
		exit(err)
	}

	if *pngFile != "" {
		exit(savePNG(scr, *pngFile, *scale))
	}

	exit(view(path, scr))
}

// view shows scr in the terminal until the user quits.
func view(path string, scr *Screen) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err = s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	done := make(chan struct{})
	defer close(done)

	var changed <-chan struct{}
	if *watch {
		if changed, err = watchDump(path, done); err != nil {
			return err
		}
	}

	events := make(chan tcell.Event, 16)
	// PollEvent returns nil once the screen is finalized.
	go pumpEvents(s.PollEvent, events, done)

	drawScreen(s, scr)
	for {
		select {
		case ev := <-events:
			if isQuit(ev) {
				return nil
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				s.Sync()
				drawScreen(s, scr)
			}
		case <-changed:
			next, err := reloadScreen(path)
			if err != nil {
				log.Printf("reload: %v", err)
				continue
			}
			scr = next
			drawScreen(s, scr)
		}
	}
}
