package main

import (
	"errors"
	"os"
)

// readDump returns a private copy of the dump file. It is used when reloading
// a dump that an emulator may truncate and rewrite at any time; a shared
// mapping of such a file faults once the pages behind it disappear.
func readDump(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty dump file " + path)
	}
	return data, nil
}
