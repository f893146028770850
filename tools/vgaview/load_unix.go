//go:build unix

package main

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// loadDump maps the dump file read-only. The returned release func must be
// called once the data is no longer needed. The mapping is shared, so the
// file must not be truncated while it is in use; see readDump for reloads.
func loadDump(path string) (data []byte, release func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	if fi.Size() == 0 {
		return nil, nil, errors.New("empty dump file " + path)
	}

	data, err = unix.Mmap(int(f.Fd()), 0, int(fi.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}

	return data, func() error { return unix.Munmap(data) }, nil
}
