package recrate

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cratekit/recrate/rewrite"
)

// transformConfig holds Transform settings.
type transformConfig struct {
	workers int
	logger  *slog.Logger
}

// TransformOption configures a Transform call.
type TransformOption func(*transformConfig)

// TransformWithWorkers sets the number of goroutines used to rewrite source
// entries. Entry transforms are pure and path-addressed, so fanning out is
// safe; output order always follows input order. The default is serial.
func TransformWithWorkers(n int) TransformOption {
	return func(cfg *transformConfig) {
		cfg.workers = n
	}
}

// TransformWithLogger sets a logger for per-entry routing decisions,
// emitted at debug level.
func TransformWithLogger(logger *slog.Logger) TransformOption {
	return func(cfg *transformConfig) {
		cfg.logger = logger
	}
}

// Transform reads a crate archive from in and writes it to out with the
// crate renamed from oldName to newName.
//
// The manifest name field is replaced, references to the crate in source
// files outside src/ are rewritten, the package root directory is renamed
// when it echoes the old name, and the integrity record (when present) is
// regenerated over the final bytes. All other entries pass through
// byte-identical.
//
// The transform is all-or-nothing: nothing is written to out until every
// entry has been processed successfully.
func Transform(in io.Reader, out io.Writer, oldName, newName string, opts ...TransformOption) error {
	cfg := transformConfig{workers: 1, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := ValidateCrateName(oldName); err != nil {
		return err
	}
	if err := ValidateCrateName(newName); err != nil {
		return err
	}
	if oldName == newName {
		return fmt.Errorf("%w: old and new name are both %q", ErrInvalidName, oldName)
	}

	entries, err := readEntries(in)
	if err != nil {
		return err
	}

	root, err := packageRoot(entries)
	if err != nil {
		return err
	}
	newRoot := root
	if name, version, ok := splitCrateStem(root); ok && name == oldName {
		newRoot = newName + "-" + version
	}

	oldIdent, newIdent := identName(oldName), identName(newName)

	var (
		prior       *checksumRecord
		checksumIdx = -1
		manifestIdx = -1
		sourceIdx   []int
		changed     = make([]bool, len(entries))
	)
	for i := range entries {
		e := &entries[i]
		if !e.isFile() {
			continue
		}
		switch sub := subPath(e.Path, root); {
		case sub == manifestName:
			if manifestIdx >= 0 {
				return fmt.Errorf("%w: multiple %s entries", ErrArchive, manifestName)
			}
			manifestIdx = i
		case sub == checksumName:
			checksumIdx = i
			if prior, err = parseChecksumRecord(e.Body); err != nil {
				return err
			}
		case strings.HasPrefix(sub, "src/"):
			// The primary tree refers to the crate as crate:: and
			// needs no rewriting.
			cfg.logger.Debug("pass through", "path", sub, "reason", "primary source tree")
		case strings.HasSuffix(sub, ".rs"):
			sourceIdx = append(sourceIdx, i)
		default:
			cfg.logger.Debug("pass through", "path", sub)
		}
	}
	if manifestIdx < 0 {
		return fmt.Errorf("%w: no %s entry", ErrManifest, manifestName)
	}

	edited, err := editManifestName(entries[manifestIdx].Body, oldName, newName)
	if err != nil {
		return err
	}
	entries[manifestIdx].Body = edited
	changed[manifestIdx] = true
	cfg.logger.Debug("edited manifest", "old", oldName, "new", newName)

	rewriteEntry := func(i int) error {
		e := &entries[i]
		text, err := rewrite.Rewrite(string(e.Body), oldIdent, newIdent)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Path, err)
		}
		if text != string(e.Body) {
			e.Body = []byte(text)
			changed[i] = true
		}
		cfg.logger.Debug("rewrote source", "path", e.Path, "changed", changed[i])
		return nil
	}
	if cfg.workers > 1 {
		var g errgroup.Group
		g.SetLimit(cfg.workers)
		for _, i := range sourceIdx {
			g.Go(func() error { return rewriteEntry(i) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, i := range sourceIdx {
			if err := rewriteEntry(i); err != nil {
				return err
			}
		}
	}

	for i := range entries {
		entries[i].Path = newRoot + strings.TrimPrefix(entries[i].Path, root)
	}

	if checksumIdx >= 0 {
		var files []checksumInput
		for i := range entries {
			e := &entries[i]
			if i == checksumIdx || !e.isFile() {
				continue
			}
			files = append(files, checksumInput{
				path:    subPath(e.Path, newRoot),
				body:    e.Body,
				changed: changed[i],
			})
		}
		rec, err := rebuildChecksumRecord(prior, files)
		if err != nil {
			return err
		}
		entries[checksumIdx].Body = rec
	}

	return writeEntries(out, entries)
}

// packageRoot returns the single top-level directory enclosing every entry.
func packageRoot(entries []Entry) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: empty archive", ErrArchive)
	}
	root := ""
	for i := range entries {
		p := entries[i].Path
		seg, _, found := strings.Cut(p, "/")
		if !found && entries[i].isFile() {
			return "", fmt.Errorf("%w: entry %q not under a package root", ErrArchive, p)
		}
		switch {
		case root == "":
			root = seg
		case seg != root:
			return "", fmt.Errorf("%w: entries under both %q and %q", ErrArchive, root, seg)
		}
	}
	return root, nil
}

// subPath strips the package root from an entry path.
func subPath(path, root string) string {
	return strings.TrimPrefix(strings.TrimPrefix(path, root), "/")
}
