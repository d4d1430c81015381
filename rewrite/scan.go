package rewrite

import (
	"fmt"
	"iter"
)

// Kind classifies a span of source text.
type Kind uint8

// Span kinds, in rough order of how often they occur in real source.
const (
	// KindOther covers punctuation, whitespace, and numeric literals.
	KindOther Kind = iota

	// KindIdent is a maximal run of identifier characters.
	KindIdent

	// KindString is a string, raw string, byte string, or char literal,
	// including its delimiters.
	KindString

	// KindComment is a line or block comment, including its delimiters.
	KindComment
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindIdent:
		return "ident"
	case KindString:
		return "string"
	case KindComment:
		return "comment"
	default:
		return "other"
	}
}

// Span is a contiguous classified slice of source text.
//
// The spans produced for a given input are non-overlapping and cover the
// input exactly, in source order.
type Span struct {
	Start int
	End   int
	Kind  Kind
}

// Text returns the slice of src the span covers.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

// ScanError reports source text that ends inside an unterminated construct.
type ScanError struct {
	// Offset is the byte offset where the construct opened.
	Offset int

	// Construct names what was left unterminated.
	Construct string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("unterminated %s at offset %d", e.Construct, e.Offset)
}

// Spans returns a lazy iterator over the spans of src.
//
// The sequence is restartable: ranging over it again re-scans from the
// start. If scanning stalls on an unterminated construct, the final pair
// carries a *ScanError and iteration stops; spans already yielded remain
// valid but do not cover all of src.
func Spans(src string) iter.Seq2[Span, error] {
	return func(yield func(Span, error) bool) {
		s := scanner{src: src}
		for {
			sp, ok, err := s.next()
			if err != nil {
				yield(Span{}, err)
				return
			}
			if !ok {
				return
			}
			if !yield(sp, nil) {
				return
			}
		}
	}
}

// Scan tokenizes src into spans covering the entire input.
func Scan(src string) ([]Span, error) {
	spans := make([]Span, 0, len(src)/8+1)
	for sp, err := range Spans(src) {
		if err != nil {
			return nil, err
		}
		spans = append(spans, sp)
	}
	return spans, nil
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) next() (Span, bool, error) {
	if s.pos >= len(s.src) {
		return Span{}, false, nil
	}
	start := s.pos
	c := s.src[s.pos]

	switch {
	case isSpace(c):
		for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
			s.pos++
		}
		return Span{start, s.pos, KindOther}, true, nil

	case c == '/':
		if sp, ok, err := s.comment(); ok || err != nil {
			return sp, ok, err
		}
		s.pos++
		return Span{start, s.pos, KindOther}, true, nil

	case c == '"':
		end, err := s.cooked(start)
		if err != nil {
			return Span{}, false, err
		}
		s.pos = end
		return Span{start, end, KindString}, true, nil

	case c == '\'':
		if sp, ok, err := s.charLiteral(); ok || err != nil {
			return sp, ok, err
		}
		s.pos++
		return Span{start, s.pos, KindOther}, true, nil

	case c == 'r' || c == 'b':
		if sp, ok, err := s.rawOrByte(); ok || err != nil {
			return sp, ok, err
		}
		return s.ident(), true, nil

	case isIdentStart(c):
		return s.ident(), true, nil

	case isDigit(c):
		// Numeric literals soak up the whole identifier-shaped run so a
		// name like 0old never surfaces as an identifier.
		for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
			s.pos++
		}
		return Span{start, s.pos, KindOther}, true, nil

	default:
		s.pos++
		return Span{start, s.pos, KindOther}, true, nil
	}
}

// comment lexes // and /* */ comments. Reports ok=false when the slash at
// the current position does not open a comment.
func (s *scanner) comment() (Span, bool, error) {
	start := s.pos
	if s.pos+1 >= len(s.src) {
		return Span{}, false, nil
	}
	switch s.src[s.pos+1] {
	case '/':
		s.pos += 2
		for s.pos < len(s.src) && s.src[s.pos] != '\n' {
			s.pos++
		}
		return Span{start, s.pos, KindComment}, true, nil
	case '*':
		s.pos += 2
		depth := 1
		for s.pos < len(s.src) {
			if s.pos+1 < len(s.src) {
				switch {
				case s.src[s.pos] == '/' && s.src[s.pos+1] == '*':
					depth++
					s.pos += 2
					continue
				case s.src[s.pos] == '*' && s.src[s.pos+1] == '/':
					depth--
					s.pos += 2
					if depth == 0 {
						return Span{start, s.pos, KindComment}, true, nil
					}
					continue
				}
			}
			s.pos++
		}
		return Span{}, false, &ScanError{Offset: start, Construct: "block comment"}
	}
	return Span{}, false, nil
}

// cooked scans a double-quoted literal starting at open, honoring
// backslash escapes. Returns the offset just past the closing quote.
func (s *scanner) cooked(open int) (int, error) {
	i := open + 1
	for i < len(s.src) {
		switch s.src[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1, nil
		default:
			i++
		}
	}
	return 0, &ScanError{Offset: open, Construct: "string literal"}
}

// charLiteral distinguishes 'x' and '\n' char literals from lifetimes.
// A lone quote (lifetime or label) is not consumed here; ok=false lets the
// caller emit it as punctuation.
func (s *scanner) charLiteral() (Span, bool, error) {
	start := s.pos
	if s.pos+1 >= len(s.src) {
		return Span{}, false, nil
	}
	switch {
	case s.src[s.pos+1] == '\\':
		i := s.pos + 2
		if i < len(s.src) {
			i++ // the escaped character, which may be a quote or backslash
		}
		for i < len(s.src) {
			switch s.src[i] {
			case '\\':
				i += 2
			case '\'':
				s.pos = i + 1
				return Span{start, s.pos, KindString}, true, nil
			default:
				i++
			}
		}
		return Span{}, false, &ScanError{Offset: start, Construct: "char literal"}
	case s.pos+2 < len(s.src) && s.src[s.pos+2] == '\'' && s.src[s.pos+1] != '\'':
		s.pos += 3
		return Span{start, s.pos, KindString}, true, nil
	}
	return Span{}, false, nil
}

// rawOrByte lexes r"...", r#"..."#, b"...", and br#"..."# literals.
// Reports ok=false when the r/b at the current position begins a plain
// identifier instead.
func (s *scanner) rawOrByte() (Span, bool, error) {
	start := s.pos
	i := s.pos
	if s.src[i] == 'b' {
		i++
	}
	raw := i < len(s.src) && s.src[i] == 'r'
	if raw {
		i++
	}
	hashes := 0
	if raw {
		for i < len(s.src) && s.src[i] == '#' {
			i++
			hashes++
		}
	}
	if i >= len(s.src) || s.src[i] != '"' {
		return Span{}, false, nil
	}
	if !raw {
		// b"..." cooked byte string.
		end, err := s.cooked(i)
		if err != nil {
			return Span{}, false, err
		}
		s.pos = end
		return Span{start, end, KindString}, true, nil
	}
	// Raw string: runs to a quote followed by the same number of hashes.
	// Backslashes are literal.
	i++
	for i < len(s.src) {
		if s.src[i] == '"' && countHashes(s.src, i+1) >= hashes {
			s.pos = i + 1 + hashes
			return Span{start, s.pos, KindString}, true, nil
		}
		i++
	}
	return Span{}, false, &ScanError{Offset: start, Construct: "raw string literal"}
}

func countHashes(src string, i int) int {
	n := 0
	for i+n < len(src) && src[i+n] == '#' {
		n++
	}
	return n
}

func (s *scanner) ident() Span {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	return Span{start, s.pos, KindIdent}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	// Bytes above 0x7f are treated as identifier-constituent so that a
	// non-ASCII suffix never splits off a false whole-token match.
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
