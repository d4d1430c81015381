package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rewriteOK(t *testing.T, src string) string {
	t.Helper()
	out, err := Rewrite(src, "foo", "bar")
	require.NoError(t, err)
	return out
}

func TestRewritePathReference(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "use bar::Thing;", rewriteOK(t, "use foo::Thing;"))
	assert.Equal(t, "let x = bar::new();", rewriteOK(t, "let x = foo::new();"))
	assert.Equal(t, "bar::run()", rewriteOK(t, "foo::run()"))
}

func TestRewriteExternCrate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "extern crate bar;", rewriteOK(t, "extern crate foo;"))
	assert.Equal(t, "extern crate bar as f;", rewriteOK(t, "extern crate foo as f;"))
}

func TestRewriteUseDeclaration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "use bar;", rewriteOK(t, "use foo;"))
	assert.Equal(t, "use bar as f;", rewriteOK(t, "use foo as f;"))
	assert.Equal(t, "pub use bar;", rewriteOK(t, "pub use foo;"))
}

func TestRewriteNoPartialMatch(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"use foo_extended::Thing;",
		"use my_foo::Thing;",
		"foo2::run()",
	} {
		assert.Equal(t, src, rewriteOK(t, src), "input %q", src)
	}
}

func TestRewriteLeavesQualifiedSegments(t *testing.T) {
	t.Parallel()

	// foo here names a member of another path, not the crate.
	assert.Equal(t, "use other::foo::Thing;", rewriteOK(t, "use other::foo::Thing;"))
	assert.Equal(t, "crate::foo::run()", rewriteOK(t, "crate::foo::run()"))
}

func TestRewriteStringAndCommentImmunity(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		`let s = "foo::Thing is great";`,
		"// mentions foo:: in passing\nlet x = 1;",
		"/* use foo; */ let x = 1;",
		`let r = r#"foo::Thing"#;`,
	} {
		assert.Equal(t, src, rewriteOK(t, src), "input %q", src)
	}
}

func TestRewriteLeavesLocalBindings(t *testing.T) {
	t.Parallel()

	// A bare identifier outside a qualifying position is left alone.
	src := "let foo = 1; call(foo); s.foo = 2;"
	assert.Equal(t, src, rewriteOK(t, src))
}

func TestRewriteMixedLine(t *testing.T) {
	t.Parallel()

	src := `use foo::Thing; extern crate foo as f; let s = "foo is great";`
	want := `use bar::Thing; extern crate bar as f; let s = "foo is great";`
	assert.Equal(t, want, rewriteOK(t, src))
}

func TestRewriteIdempotent(t *testing.T) {
	t.Parallel()

	src := `use foo::Thing;
extern crate foo;
// foo:: stays in comments
let s = "foo";
let foo = 3;
`
	once := rewriteOK(t, src)
	twice := rewriteOK(t, once)
	assert.Equal(t, once, twice)
}

func TestRewriteWhitespaceBeforeSeparator(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bar ::run()", rewriteOK(t, "foo ::run()"))
}

func TestRewriteRejectsBadNames(t *testing.T) {
	t.Parallel()

	_, err := Rewrite("x", "not-an-ident", "bar")
	assert.ErrorIs(t, err, ErrIdentifier)

	_, err = Rewrite("x", "foo", "1bad")
	assert.ErrorIs(t, err, ErrIdentifier)
}

func TestRewritePropagatesScanError(t *testing.T) {
	t.Parallel()

	_, err := Rewrite(`use foo::Thing; "unterminated`, "foo", "bar")
	var scanErr *ScanError
	assert.ErrorAs(t, err, &scanErr)
}

func TestIdentifier(t *testing.T) {
	t.Parallel()

	assert.True(t, Identifier("foo"))
	assert.True(t, Identifier("foo_bar2"))
	assert.True(t, Identifier("_private"))
	assert.False(t, Identifier(""))
	assert.False(t, Identifier("2fast"))
	assert.False(t, Identifier("has-dash"))
	assert.False(t, Identifier("café"))
}
