package lexer

import (
	"strings"

	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/token"
)

// Lexer scans Graphoid source into a Token stream one rune at a time,
// tracking line/column the way the front end's position type expects.
type Lexer struct {
	file   string
	src    []rune
	pos    int
	line   int
	col    int
	prev   token.Kind // last emitted significant Kind, for regex-vs-divide disambiguation
	havePrev bool
}

// New returns a Lexer positioned at the start of src. file is recorded
// on every Position for error messages; it may be empty.
func New(file, src string) *Lexer {
	return &Lexer{file: file, src: []rune(src), line: 1, col: 1}
}

// Tokenize scans the entire source and returns its Token stream
// terminated by a single EOF token, or the first *errorx.Error
// encountered (kind errorx.Syntax).
func Tokenize(file, src string) ([]token.Token, error) {
	l := New(file, src)
	var out []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out, nil
		}
	}
}

func (l *Lexer) currentPos() token.Position { return token.Position{File: l.file, Line: l.line, Column: l.col} }

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

// Next scans and returns the next token, skipping spaces/tabs/comments
// but not newlines (spec §4.1: "newlines preserved as Newline tokens").
func (l *Lexer) Next() (token.Token, error) {
	for {
		l.skipSpacesAndComments()
		if l.atEnd() {
			return l.emit(token.EOF, ""), nil
		}
		start := l.currentPos()
		r := l.peek()

		if r == '\n' {
			l.advance()
			return l.emitAt(token.Newline, "\n", start), nil
		}
		if isDigit(r) || (r == '.' && isDigit(l.peekAt(1))) {
			return l.scanNumber(start)
		}
		if isIdentStart(r) {
			return l.scanIdent(start)
		}
		if r == '"' || r == '\'' {
			return l.scanString(start, r)
		}
		if r == ':' && isIdentStart(l.peekAt(1)) {
			return l.scanSymbol(start)
		}
		if r == '/' && l.regexAllowedHere() && l.looksLikeRegexStart() {
			return l.scanRegex(start)
		}
		return l.scanOperator(start)
	}
}

func (l *Lexer) skipSpacesAndComments() {
	for !l.atEnd() {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r':
			l.advance()
		case r == '/' && l.peekAt(1) == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case r == '/' && l.peekAt(1) == '*':
			l.advance()
			l.advance()
			for {
				if l.atEnd() {
					return
				}
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) emit(k token.Kind, lexeme string) token.Token {
	return l.emitAt(k, lexeme, l.currentPos())
}

func (l *Lexer) emitAt(k token.Kind, lexeme string, pos token.Position) token.Token {
	l.prev, l.havePrev = k, true
	return token.Token{Kind: k, Lexeme: lexeme, Position: pos}
}

func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isIdentStart(r rune) bool { return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isIdentCont(r rune) bool  { return isIdentStart(r) || isDigit(r) }

func (l *Lexer) scanNumber(start token.Position) (token.Token, error) {
	var b strings.Builder
	isFloat := false
	if l.peek() == '0' && (l.peekAt(1) == 'b' || l.peekAt(1) == 'B') {
		b.WriteRune(l.advance())
		b.WriteRune(l.advance())
		for !l.atEnd() && (l.peek() == '0' || l.peek() == '1') {
			b.WriteRune(l.advance())
		}
		return l.emitAt(token.Int, b.String(), start), nil
	}
	for !l.atEnd() && isDigit(l.peek()) {
		b.WriteRune(l.advance())
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		b.WriteRune(l.advance())
		for !l.atEnd() && isDigit(l.peek()) {
			b.WriteRune(l.advance())
		}
	}
	if isFloat {
		return l.emitAt(token.Float, b.String(), start), nil
	}
	return l.emitAt(token.Int, b.String(), start), nil
}

func (l *Lexer) scanIdent(start token.Position) (token.Token, error) {
	var b strings.Builder
	for !l.atEnd() && isIdentCont(l.peek()) {
		b.WriteRune(l.advance())
	}
	name := b.String()
	return l.emitAt(token.Lookup(name), name, start), nil
}

func (l *Lexer) scanSymbol(start token.Position) (token.Token, error) {
	l.advance() // ':'
	var b strings.Builder
	for !l.atEnd() && isIdentCont(l.peek()) {
		b.WriteRune(l.advance())
	}
	return l.emitAt(token.SymbolLit, b.String(), start), nil
}

var escapes = map[rune]rune{'n': '\n', 't': '\t', 'r': '\r', '\\': '\\', '\'': '\'', '"': '"'}

func (l *Lexer) scanString(start token.Position, quote rune) (token.Token, error) {
	l.advance()
	var b strings.Builder
	for {
		if l.atEnd() {
			return token.Token{}, errorx.New(errorx.Syntax, "unterminated string literal").WithPosition(start)
		}
		r := l.peek()
		if r == quote {
			l.advance()
			break
		}
		if r == '\n' {
			return token.Token{}, errorx.New(errorx.Syntax, "unterminated string literal").WithPosition(start)
		}
		if r == '\\' {
			l.advance()
			if l.atEnd() {
				return token.Token{}, errorx.New(errorx.Syntax, "unterminated string literal").WithPosition(start)
			}
			esc := l.advance()
			mapped, ok := escapes[esc]
			if !ok {
				return token.Token{}, errorx.Newf(errorx.Syntax, "unknown escape sequence \\%c", esc).WithPosition(l.currentPos())
			}
			b.WriteRune(mapped)
			continue
		}
		b.WriteRune(l.advance())
	}
	return l.emitAt(token.Str, b.String(), start), nil
}

// regexAllowedHere reports whether, given the previously emitted
// significant token, a `/` at the current position can begin a regex
// literal rather than the division operator — a regex may start at the
// beginning of an expression (no previous token, or previous token
// cannot end one).
func (l *Lexer) regexAllowedHere() bool {
	if !l.havePrev {
		return true
	}
	switch l.prev {
	case token.Ident, token.Int, token.Float, token.Str, token.RParen, token.RBracket,
		token.RBrace, token.KwTrue, token.KwFalse, token.KwNone:
		return false
	default:
		return true
	}
}

// looksLikeRegexStart is a bounded lookahead confirming an unescaped
// closing `/` exists before end-of-line, to avoid misreading a bare
// division as the start of an unterminated regex scan.
func (l *Lexer) looksLikeRegexStart() bool {
	for i := 1; ; i++ {
		r := l.peekAt(i)
		if r == 0 || r == '\n' {
			return false
		}
		if r == '\\' {
			i++
			continue
		}
		if r == '/' {
			return true
		}
	}
}

func (l *Lexer) scanRegex(start token.Position) (token.Token, error) {
	l.advance() // opening '/'
	var pattern strings.Builder
	for {
		if l.atEnd() || l.peek() == '\n' {
			return token.Token{}, errorx.New(errorx.Syntax, "unterminated regex literal").WithPosition(start)
		}
		r := l.peek()
		if r == '/' {
			l.advance()
			break
		}
		if r == '\\' {
			pattern.WriteRune(l.advance())
			if l.atEnd() {
				return token.Token{}, errorx.New(errorx.Syntax, "unterminated regex literal").WithPosition(start)
			}
			pattern.WriteRune(l.advance())
			continue
		}
		pattern.WriteRune(l.advance())
	}
	var flags strings.Builder
	for !l.atEnd() && isIdentCont(l.peek()) {
		flags.WriteRune(l.advance())
	}
	lexeme := "/" + pattern.String() + "/" + flags.String()
	return l.emitAt(token.Regex, lexeme, start), nil
}

// twoCharOps maps a two-rune lookahead to its Kind, checked before the
// single-char fallback.
type opEntry struct {
	text string
	kind token.Kind
}

var twoCharOps = []opEntry{
	{"**", token.StarStar},
	{"//", token.SlashSlash},
	{"<<", token.LShift},
	{">>", token.RShift},
	{".+", token.DotPlus},
	{".-", token.DotMinus},
	{".*", token.DotStar},
	{".%", token.DotPercent},
	{".^", token.DotCaret},
	{"==", token.Eq},
	{"!=", token.Neq},
	{"<=", token.Le},
	{">=", token.Ge},
	{"=~", token.RegexEq},
	{"!~", token.RegexNeq},
	{"=>", token.Arrow},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"++", token.PlusPlus},
}

func (l *Lexer) scanOperator(start token.Position) (token.Token, error) {
	// Three-char element-wise operators (./ .// .== .!= .< .> .<= .>= are
	// handled specially since `.` also begins member access / numbers).
	if l.peek() == '.' {
		switch {
		case l.peekAt(1) == '/' && l.peekAt(2) == '/':
			l.advance()
			l.advance()
			l.advance()
			return l.emitAt(token.DotSlashSlash, ".//", start), nil
		case l.peekAt(1) == '=' && l.peekAt(2) == '=':
			l.advance()
			l.advance()
			l.advance()
			return l.emitAt(token.DotEq, ".==", start), nil
		case l.peekAt(1) == '!' && l.peekAt(2) == '=':
			l.advance()
			l.advance()
			l.advance()
			return l.emitAt(token.DotNeq, ".!=", start), nil
		case l.peekAt(1) == '<' && l.peekAt(2) == '=':
			l.advance()
			l.advance()
			l.advance()
			return l.emitAt(token.DotLe, ".<=", start), nil
		case l.peekAt(1) == '>' && l.peekAt(2) == '=':
			l.advance()
			l.advance()
			l.advance()
			return l.emitAt(token.DotGe, ".>=", start), nil
		case l.peekAt(1) == '/':
			l.advance()
			l.advance()
			return l.emitAt(token.DotSlash, "./", start), nil
		case l.peekAt(1) == '<':
			l.advance()
			l.advance()
			return l.emitAt(token.DotLt, ".<", start), nil
		case l.peekAt(1) == '>':
			l.advance()
			l.advance()
			return l.emitAt(token.DotGt, ".>", start), nil
		}
	}
	for _, e := range twoCharOps {
		if l.matches(e.text) {
			l.advanceN(len(e.text))
			return l.emitAt(e.kind, e.text, start), nil
		}
	}
	r := l.advance()
	switch r {
	case '+':
		return l.emitAt(token.Plus, "+", start), nil
	case '-':
		return l.emitAt(token.Minus, "-", start), nil
	case '*':
		return l.emitAt(token.Star, "*", start), nil
	case '/':
		return l.emitAt(token.Slash, "/", start), nil
	case '%':
		return l.emitAt(token.Percent, "%", start), nil
	case '^':
		return l.emitAt(token.Caret, "^", start), nil
	case '&':
		return l.emitAt(token.Amp, "&", start), nil
	case '|':
		return l.emitAt(token.Pipe, "|", start), nil
	case '~':
		return l.emitAt(token.Tilde, "~", start), nil
	case '<':
		return l.emitAt(token.Lt, "<", start), nil
	case '>':
		return l.emitAt(token.Gt, ">", start), nil
	case '=':
		return l.emitAt(token.Assign, "=", start), nil
	case '!':
		return l.emitAt(token.Bang, "!", start), nil
	case '(':
		return l.emitAt(token.LParen, "(", start), nil
	case ')':
		return l.emitAt(token.RParen, ")", start), nil
	case '[':
		return l.emitAt(token.LBracket, "[", start), nil
	case ']':
		return l.emitAt(token.RBracket, "]", start), nil
	case '{':
		return l.emitAt(token.LBrace, "{", start), nil
	case '}':
		return l.emitAt(token.RBrace, "}", start), nil
	case ',':
		return l.emitAt(token.Comma, ",", start), nil
	case '.':
		return l.emitAt(token.Dot, ".", start), nil
	case ':':
		return l.emitAt(token.Colon, ":", start), nil
	case ';':
		return l.emitAt(token.Semicolon, ";", start), nil
	case '?':
		return l.emitAt(token.Question, "?", start), nil
	default:
		return token.Token{}, errorx.Newf(errorx.Syntax, "unexpected character %q", r).WithPosition(start)
	}
}

func (l *Lexer) matches(s string) bool {
	for i, r := range []rune(s) {
		if l.peekAt(i) != r {
			return false
		}
	}
	return true
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}
