package recrate

import (
	"fmt"
	"strings"
)

// ValidateCrateName checks that name is a syntactically legal crate name:
// ASCII letters, digits, hyphens, and underscores, not starting with a
// digit, non-empty.
func ValidateCrateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if name[0] >= '0' && name[0] <= '9' {
		return fmt.Errorf("%w: %q starts with a digit", ErrInvalidName, name)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, c)
		}
	}
	return nil
}

// identName converts a crate name to the identifier form used in source
// paths: hyphens become underscores.
func identName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// splitCrateStem splits a name-version stem such as "foo-0.1.0" into its
// crate name and version. The split point is found by locating the first
// dot (which cannot appear in a crate name) and walking back to the
// preceding hyphen; the run between them must be a numeric version major.
// This rejects prefix confusions like reading "netscape-0.1.0" as crate
// "net".
func splitCrateStem(stem string) (name, version string, ok bool) {
	dot := strings.IndexByte(stem, '.')
	if dot < 0 {
		return "", "", false
	}
	dash := strings.LastIndexByte(stem[:dot], '-')
	if dash < 0 {
		return "", "", false
	}
	name = stem[:dash]
	major := stem[dash+1 : dot]
	if name == "" || major == "" {
		return "", "", false
	}
	for i := 0; i < len(major); i++ {
		if major[i] < '0' || major[i] > '9' {
			return "", "", false
		}
	}
	return name, stem[dash+1:], true
}
