// Package output writes generated files.
//
// Disk replaces files atomically (temp file + rename), so a reader never sees
// a half-written interface or manifest. Printer is the dry-run sink.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"

	"github.com/teranos/witgen/errors"
)

// File system permissions for generated output
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Sink receives generated files
type Sink interface {
	MkdirAll(dir string) error
	WriteFile(path string, data []byte) error
}

// Disk writes files in place with atomic replacement
type Disk struct{}

// MkdirAll creates dir and its parents
func (Disk) MkdirAll(dir string) error {
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return errors.WrapWrite(err, dir)
	}
	return nil
}

// WriteFile atomically replaces path with data
func (Disk) WriteFile(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, FilePermissions); err != nil {
		return errors.WrapWrite(err, path)
	}
	return nil
}

// Printer writes every file to Out under a header line instead of to disk
type Printer struct {
	Out io.Writer
}

// MkdirAll does nothing: dry runs leave the file system untouched
func (Printer) MkdirAll(string) error { return nil }

// WriteFile prints the file
func (p Printer) WriteFile(path string, data []byte) error {
	_, err := fmt.Fprintf(p.Out, "==> %s <==\n%s\n", path, data)
	if err != nil {
		return errors.WrapWrite(err, path)
	}
	return nil
}
