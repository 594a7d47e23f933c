// Package token defines the lexical token kinds produced by the lexer
// and consumed by the parser, plus the shared source-position type used
// throughout the front end (spec §4.1).
package token

import "fmt"

// Position is a 1-based source location. The zero value means unknown.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	file := p.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Column)
}

// Kind enumerates token categories (spec §4.1).
type Kind int

const (
	EOF Kind = iota
	Newline
	Illegal

	Ident
	Int
	Float
	Str
	SymbolLit
	Regex

	// Keywords
	KwFn
	KwReturn
	KwIf
	KwElse
	KwWhile
	KwFor
	KwIn
	KwBreak
	KwContinue
	KwTry
	KwCatch
	KwFinally
	KwRaise
	KwImport
	KwLoad
	KwModule
	KwPriv
	KwConfigure
	KwPrecision
	KwGraph
	KwTree
	KwDag
	KwBinaryTree
	KwBst
	KwMatch
	KwTrue
	KwFalse
	KwNone
	KwAnd
	KwOr
	KwNot
	KwUnless

	// Operators
	Plus
	Minus
	Star
	Slash
	SlashSlash
	Percent
	Caret
	StarStar
	Amp
	Pipe
	Tilde
	Bang // "!" unary logical not, distinct from KwNot's word spelling
	LShift
	RShift

	DotPlus
	DotMinus
	DotStar
	DotSlash
	DotSlashSlash
	DotPercent
	DotCaret
	DotEq
	DotNeq
	DotLt
	DotGt
	DotLe
	DotGe

	Eq
	Neq
	Lt
	Le
	Gt
	Ge
	RegexEq
	RegexNeq

	Arrow // =>
	AndAnd
	OrOr

	Assign
	PlusPlus // ++ concat

	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Dot
	Colon
	Semicolon
	Question
)

// keywords maps reserved identifiers (including legacy aliases) to their
// Kind.
var keywords = map[string]Kind{
	"fn":          KwFn,
	"func":        KwFn, // legacy alias
	"return":      KwReturn,
	"if":          KwIf,
	"else":        KwElse,
	"while":       KwWhile,
	"for":         KwFor,
	"in":          KwIn,
	"break":       KwBreak,
	"continue":    KwContinue,
	"try":         KwTry,
	"catch":       KwCatch,
	"finally":     KwFinally,
	"raise":       KwRaise,
	"import":      KwImport,
	"load":        KwLoad,
	"module":      KwModule,
	"priv":        KwPriv,
	"configure":   KwConfigure,
	"precision":   KwPrecision,
	"graph":       KwGraph,
	"tree":        KwTree,
	"dag":         KwDag,
	"binary_tree": KwBinaryTree,
	"bst":         KwBst,
	"match":       KwMatch,
	"true":        KwTrue,
	"false":       KwFalse,
	"none":        KwNone,
	"and":         KwAnd,
	"or":          KwOr,
	"not":         KwNot,
	"unless":      KwUnless,
}

// Lookup returns the keyword Kind for ident, or Ident if it is not a
// reserved word.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}

// Token is one lexical unit: its Kind, original source Lexeme, and
// Position.
type Token struct {
	Kind     Kind
	Lexeme   string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%v(%q)@%s", t.Kind, t.Lexeme, t.Position)
}
