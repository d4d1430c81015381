package recrate

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// manifestName is the crate manifest filename at the package root.
const manifestName = "Cargo.toml"

type manifestPackage struct {
	Name string `toml:"name"`
}

type manifestDoc struct {
	Package   *manifestPackage `toml:"package"`
	Workspace map[string]any   `toml:"workspace"`
}

// editManifestName returns the manifest with the [package] name field value
// replaced by newName. Every other byte, including comments, whitespace,
// and field order, is preserved verbatim: the edit is a single line-level
// substitution, validated first by a real TOML parse.
//
// Only the name declaration is authoritative. Other fields that happen to
// contain the old name (versions, dependency names) are never touched.
func editManifestName(data []byte, old, newName string) ([]byte, error) {
	var doc manifestDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrManifest, err)
	}
	if doc.Workspace != nil {
		return nil, fmt.Errorf("%w: crate is a workspace, not a package", ErrManifest)
	}
	if doc.Package == nil {
		return nil, fmt.Errorf("%w: no [package] section", ErrManifest)
	}
	if doc.Package.Name == "" {
		return nil, fmt.Errorf("%w: missing name field", ErrManifest)
	}
	if doc.Package.Name != old {
		return nil, fmt.Errorf("%w: package name %q does not match %q", ErrManifest, doc.Package.Name, old)
	}

	lines := splitLines(string(data))
	table := ""
	nameLine := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			table = trimmed
			continue
		}
		if table != "[package]" || !isNameKey(trimmed) {
			continue
		}
		if nameLine >= 0 {
			return nil, fmt.Errorf("%w: duplicate name field", ErrManifest)
		}
		nameLine = i
	}
	if nameLine < 0 {
		return nil, fmt.Errorf("%w: name field not in [package] section", ErrManifest)
	}

	edited, err := replaceNameValue(lines[nameLine], old, newName)
	if err != nil {
		return nil, err
	}
	lines[nameLine] = edited
	return []byte(strings.Join(lines, "")), nil
}

// splitLines splits s after each newline, keeping the terminators so the
// join round-trips byte for byte.
func splitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

// isNameKey reports whether a trimmed manifest line declares the name key.
func isNameKey(trimmed string) bool {
	rest, ok := strings.CutPrefix(trimmed, "name")
	if !ok {
		return false
	}
	rest = strings.TrimLeft(rest, " \t")
	return strings.HasPrefix(rest, "=")
}

// replaceNameValue swaps the quoted value on a name declaration line,
// leaving indentation, spacing, and any trailing comment intact.
func replaceNameValue(line, old, newName string) (string, error) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return "", fmt.Errorf("%w: malformed name field", ErrManifest)
	}
	rest := line[eq+1:]
	open := strings.IndexAny(rest, `"'`)
	if open < 0 {
		return "", fmt.Errorf("%w: name field is not a string", ErrManifest)
	}
	quote := rest[open]
	closing := strings.IndexByte(rest[open+1:], quote)
	if closing < 0 {
		return "", fmt.Errorf("%w: unterminated name field value", ErrManifest)
	}
	value := rest[open+1 : open+1+closing]
	if value != old {
		return "", fmt.Errorf("%w: name field value %q does not match %q", ErrManifest, value, old)
	}
	return line[:eq+1+open+1] + newName + rest[open+1+closing:], nil
}
