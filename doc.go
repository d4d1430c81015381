// Package recrate repackages .crate archives under a different crate name.
//
// A crate archive is a gzip-compressed tarball holding a manifest, the
// primary source tree under src/, and auxiliary source files (tests,
// examples, binaries). Renaming replaces the manifest's name field,
// rewrites references to the old name in auxiliary source files, renames
// the package root directory, and regenerates the integrity record so the
// result is a fully consistent archive.
//
// # Quick Start
//
// Rename a crate file on disk:
//
//	out, err := recrate.Rename("baz/foo-0.1.0.crate", "bar")
//	if err != nil {
//	    return err
//	}
//	// out == "baz/bar-0.1.0.crate"
//
// Or transform between streams:
//
//	err := recrate.Transform(in, out, "foo", "bar")
//
// # Rewriting source files
//
// Files under src/ refer to the enclosing crate as crate:: and pass through
// untouched. Files outside src/ name the crate explicitly and are rewritten
// by the [rewrite] subpackage, which replaces only identifiers that
// syntactically denote the crate. Occurrences inside string literals and
// comments are deliberately left alone.
//
// Renaming is all-or-nothing: any scan, manifest, or archive error aborts
// the transform before output is written.
package recrate
