package recrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// renameConfig holds Rename settings.
type renameConfig struct {
	oldName   string
	output    string
	transform []TransformOption
}

// RenameOption configures a Rename call.
type RenameOption func(*renameConfig)

// RenameWithOldName supplies the current crate name instead of inferring it
// from the filename. It is still verified against both the filename and the
// manifest, so repackaging the wrong crate fails early.
func RenameWithOldName(name string) RenameOption {
	return func(cfg *renameConfig) {
		cfg.oldName = name
	}
}

// RenameWithOutput writes the renamed archive to path instead of deriving a
// sibling path from the input filename.
func RenameWithOutput(path string) RenameOption {
	return func(cfg *renameConfig) {
		cfg.output = path
	}
}

// RenameWithTransformOptions forwards options to the underlying Transform.
func RenameWithTransformOptions(opts ...TransformOption) RenameOption {
	return func(cfg *renameConfig) {
		cfg.transform = append(cfg.transform, opts...)
	}
}

// Rename repackages the crate archive at cratePath under newName and
// returns the path of the renamed archive.
//
// The old crate name is inferred from the name-version filename unless
// RenameWithOldName is given. By default the output lands next to the
// input: renaming foo to bar turns baz/foo-0.1.0.crate into
// baz/bar-0.1.0.crate. On failure no output file is left behind.
func Rename(cratePath, newName string, opts ...RenameOption) (string, error) {
	cfg := renameConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	base := filepath.Base(cratePath)
	inferred, _, ok := splitCrateStem(base)
	if cfg.oldName != "" && (!ok || inferred != cfg.oldName) {
		return "", fmt.Errorf("%w: file %q does not match old name %q", ErrInvalidName, base, cfg.oldName)
	}
	oldName := cfg.oldName
	if oldName == "" {
		if !ok {
			return "", fmt.Errorf("%w: cannot infer crate name from %q", ErrInvalidName, base)
		}
		oldName = inferred
	}

	outPath := cfg.output
	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(cratePath), strings.Replace(base, oldName, newName, 1))
	}

	in, err := os.Open(cratePath)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	if err := Transform(in, out, oldName, newName, cfg.transform...); err != nil {
		out.Close()
		os.Remove(outPath)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return "", err
	}
	return outPath, nil
}
