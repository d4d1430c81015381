package recrate

import "errors"

// Sentinel errors for rename operations.
var (
	// ErrInvalidName is returned when a crate name fails validation or the
	// old and new names are equal.
	ErrInvalidName = errors.New("recrate: invalid crate name")

	// ErrManifest is returned when the manifest lacks a usable package name
	// field, declares a workspace, or names a different crate.
	ErrManifest = errors.New("recrate: manifest")

	// ErrArchive is returned when the archive stream is malformed: entries
	// outside a single package root, a missing manifest, or codec failures.
	ErrArchive = errors.New("recrate: malformed archive")

	// ErrChecksumMismatch is returned when the prior integrity record
	// disagrees with the recomputed hash of a file whose bytes were not
	// rewritten, evidence of a corrupt input archive.
	ErrChecksumMismatch = errors.New("recrate: checksum mismatch")
)
