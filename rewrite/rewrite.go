// Package rewrite renames references to a crate in Rust source text.
//
// The package splits the work into two layers: a lexical scanner that tags
// spans of the input as identifiers, string literals, comments, or other
// text, and a rewriter that replaces identifier spans which syntactically
// denote the crate. Keeping the layers separate makes the qualification
// rule testable on its own, without a full parser.
//
// A reference qualifies when the identifier matches the old name as a whole
// token and either precedes a :: path separator without itself being
// path-qualified, names the crate in an extern crate declaration, or is the
// sole segment of a use declaration. Occurrences inside string literals and
// comments are never touched; this is an accepted limitation, not a bug.
package rewrite

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIdentifier is returned when a name passed to Rewrite is not a legal
// Rust identifier.
var ErrIdentifier = errors.New("rewrite: not a valid identifier")

// Identifier reports whether name is a legal ASCII Rust identifier.
func Identifier(name string) bool {
	if name == "" || isDigit(name[0]) {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 0x80 || !isIdentPart(c) {
			return false
		}
	}
	return true
}

// Rewrite returns src with qualifying references to the identifier old
// replaced by new. The input is not modified, and output already using the
// new name passes through unchanged, so the operation is idempotent.
//
// Both names must be legal identifiers. Scanning failures surface as a
// *ScanError.
func Rewrite(src, old, new string) (string, error) {
	if !Identifier(old) {
		return "", fmt.Errorf("%w: %q", ErrIdentifier, old)
	}
	if !Identifier(new) {
		return "", fmt.Errorf("%w: %q", ErrIdentifier, new)
	}

	spans, err := Scan(src)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(src))
	for i, sp := range spans {
		if sp.Kind == KindIdent && sp.Text(src) == old && qualifies(src, spans, i) {
			b.WriteString(new)
			continue
		}
		b.WriteString(sp.Text(src))
	}
	return b.String(), nil
}

// qualifies applies the syntactic position rule to the identifier span at
// index i.
func qualifies(src string, spans []Span, i int) bool {
	// extern crate old ...
	if p1, ok := prevSignificant(src, spans, i); ok && spans[p1].Kind == KindIdent && spans[p1].Text(src) == "crate" {
		if p2, ok := prevSignificant(src, spans, p1); ok && spans[p2].Kind == KindIdent && spans[p2].Text(src) == "extern" {
			return true
		}
	}

	// old:: path segment, unless the identifier is itself path-qualified
	// (foo::old:: names a member of foo, not the crate).
	if n, ok := nextSignificant(src, spans, i); ok && strings.HasPrefix(src[spans[n].Start:], "::") {
		if p, ok := prevSignificant(src, spans, i); ok && strings.HasSuffix(src[:spans[p].End], "::") {
			return false
		}
		return true
	}

	// use old; and use old as alias;
	if p, ok := prevSignificant(src, spans, i); ok && spans[p].Kind == KindIdent && spans[p].Text(src) == "use" {
		if n, ok := nextSignificant(src, spans, i); ok {
			switch spans[n].Text(src) {
			case ";", "as":
				return true
			}
		}
	}

	return false
}

// prevSignificant returns the index of the nearest earlier span that is
// neither whitespace nor a comment.
func prevSignificant(src string, spans []Span, i int) (int, bool) {
	for j := i - 1; j >= 0; j-- {
		if significant(src, spans[j]) {
			return j, true
		}
	}
	return 0, false
}

// nextSignificant returns the index of the nearest later span that is
// neither whitespace nor a comment.
func nextSignificant(src string, spans []Span, i int) (int, bool) {
	for j := i + 1; j < len(spans); j++ {
		if significant(src, spans[j]) {
			return j, true
		}
	}
	return 0, false
}

func significant(src string, sp Span) bool {
	if sp.Kind == KindComment {
		return false
	}
	if sp.Kind != KindOther {
		return true
	}
	return strings.TrimSpace(sp.Text(src)) != ""
}
