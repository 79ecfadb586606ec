package abc

import "github.com/golang/glog"

// IsSeparator indicates c separates tokens: bar lines, repeat colons
// and whitespace.
func IsSeparator(c byte) bool {
	switch c {
	case '|', ':', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// SkipSeparators returns the first offset at or after at which is not a
// separator, or len(s).
func SkipSeparators(s string, at int) int {
	for at < len(s) && IsSeparator(s[at]) {
		at++
	}
	return at
}

// Tokenize scans one token starting at offset at. On success it returns
// the token and the offset right after it. On failure ok is false and next
// is the offset to resume from, which is always greater than at unless at
// is already at the end of s.
func Tokenize(s string, at int) (tok Token, next int, ok bool) {
	next = at + 1
	if next > len(s) {
		next = len(s)
	}
	i := at
	if i >= len(s) {
		return
	}

	switch s[i] {
	case '^':
		tok.Accidental, i = Sharp, i+1
	case '_':
		tok.Accidental, i = Flat, i+1
	case '=':
		tok.Accidental, i = Natural, i+1
	}
	if i >= len(s) {
		return
	}

	switch c := s[i]; {
	case c == byte(Rest):
		tok = Token{Letter: Rest}
		i++
		tok.Length, i = scanDuration(s, i)
		return tok, i, true
	case c >= 'A' && c <= 'G':
		tok.Letter, tok.Octave = Letter(c), ReferenceOctave
	case c >= 'a' && c <= 'g':
		tok.Letter, tok.Octave = Letter(c-'a'+'A'), ReferenceOctave+1
	default:
		return
	}
	i++

	if tok.Accidental == NoAccidental && i < len(s) {
		switch s[i] {
		case '#':
			tok.Accidental, i = Sharp, i+1
		case 'b':
			tok.Accidental, i = Flat, i+1
		}
	}

	for ; i < len(s) && s[i] == '\''; i++ {
		tok.Octave++
	}
	for ; i < len(s) && s[i] == ','; i++ {
		tok.Octave--
	}

	tok.Length, i = scanDuration(s, i)
	return tok, i, true
}

// scanDuration reads an optional duration suffix: a digit, /digit or /.
// "/0" reads as a bare "/".
func scanDuration(s string, i int) (Duration, int) {
	if i >= len(s) {
		return Whole, i
	}
	if c := s[i]; isDigit(c) {
		return Duration{Num: int(c - '0'), Den: 1}, i + 1
	}
	if s[i] != '/' {
		return Whole, i
	}
	i++
	if i < len(s) && isDigit(s[i]) {
		d := int(s[i] - '0')
		i++
		if d > 0 {
			return Duration{Num: 1, Den: d}, i
		}
	}
	return Duration{Num: 1, Den: 2}, i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Scanner iterates over the tokens of a notation string, skipping
// separators and characters which don't start a valid token.
type Scanner struct {
	src string
	pos int
	tok Token
}

// NewScanner creates a Scanner over src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Scan advances to the next token. It returns false once the input is
// exhausted.
func (s *Scanner) Scan() bool {
	for {
		s.pos = SkipSeparators(s.src, s.pos)
		if s.pos >= len(s.src) {
			return false
		}
		tok, next, ok := Tokenize(s.src, s.pos)
		if !ok {
			glog.V(3).Infof("skip %q at %d", s.src[s.pos], s.pos)
			s.pos = next
			continue
		}
		s.pos, s.tok = next, tok
		return true
	}
}

// Token returns the token found by the last successful Scan.
func (s *Scanner) Token() Token {
	return s.tok
}

// Pos returns the offset right after the current token.
func (s *Scanner) Pos() int {
	return s.pos
}

// Tokens scans all tokens in src.
func Tokens(src string) []Token {
	var toks []Token
	for sc := NewScanner(src); sc.Scan(); {
		toks = append(toks, sc.Token())
	}
	return toks
}
