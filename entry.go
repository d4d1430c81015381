package recrate

import (
	"archive/tar"
	"io/fs"
	"time"
)

// Entry is one member of a crate archive.
//
// Entries are read once from the input stream, optionally replaced with new
// content under the same metadata, and written once to the output stream.
// Input order is preserved on output.
type Entry struct {
	// Path is the slash-separated archive path, including the package
	// root directory.
	Path string

	// Body holds the entry content. Nil for non-regular entries such as
	// directories.
	Body []byte

	header tar.Header
}

// Mode returns the entry's permission bits.
func (e *Entry) Mode() fs.FileMode {
	return fs.FileMode(e.header.Mode).Perm()
}

// ModTime returns the entry's modification time.
func (e *Entry) ModTime() time.Time {
	return e.header.ModTime
}

// isFile reports whether the entry is a regular file.
func (e *Entry) isFile() bool {
	return e.header.Typeflag == tar.TypeReg
}
