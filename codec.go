package recrate

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// readEntries decodes a gzip-compressed tar stream into its ordered entry
// sequence. Entry bodies are fully buffered; crate archives are small by
// construction.
func readEntries(r io.Reader) ([]Entry, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %v", ErrArchive, err)
	}
	defer zr.Close()

	tr := tar.NewReader(zr)
	var entries []Entry
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: tar: %v", ErrArchive, err)
		}

		e := Entry{Path: hdr.Name, header: *hdr}
		if hdr.Typeflag == tar.TypeReg {
			e.Body, err = io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("%w: read %s: %v", ErrArchive, hdr.Name, err)
			}
		}
		entries = append(entries, e)
	}
}

// writeEntries encodes entries as a gzip-compressed tar stream, preserving
// each entry's metadata and the input order.
func writeEntries(w io.Writer, entries []Entry) error {
	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("create gzip writer: %w", err)
	}
	tw := tar.NewWriter(zw)

	for i := range entries {
		e := &entries[i]
		hdr := e.header
		hdr.Name = e.Path
		if e.isFile() {
			hdr.Size = int64(len(e.Body))
		}
		if err := tw.WriteHeader(&hdr); err != nil {
			return fmt.Errorf("write header %s: %w", e.Path, err)
		}
		if e.isFile() {
			if _, err := tw.Write(e.Body); err != nil {
				return fmt.Errorf("write %s: %w", e.Path, err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar writer: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close gzip writer: %w", err)
	}
	return nil
}
