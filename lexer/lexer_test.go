package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphoid-lang/graphoid/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeBasics(t *testing.T) {
	toks, err := Tokenize("", `fn add(a, b) { return a + b }`)
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.KwFn, token.Ident, token.LParen, token.Ident, token.Comma, token.Ident, token.RParen,
		token.LBrace, token.KwReturn, token.Ident, token.Plus, token.Ident, token.RBrace, token.EOF,
	}, kinds(toks))
}

func TestTokenizeNumbersAndSymbol(t *testing.T) {
	toks, err := Tokenize("", `42 3.14 .5 :clean`)
	require.NoError(t, err)
	require.Equal(t, token.Int, toks[0].Kind)
	require.Equal(t, token.Float, toks[1].Kind)
	require.Equal(t, token.Float, toks[2].Kind)
	require.Equal(t, ".5", toks[2].Lexeme)
	require.Equal(t, token.SymbolLit, toks[3].Kind)
	require.Equal(t, "clean", toks[3].Lexeme)
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, err := Tokenize("", `"a\nb" 'c\'d'`)
	require.NoError(t, err)
	require.Equal(t, "a\nb", toks[0].Lexeme)
	require.Equal(t, "c'd", toks[1].Lexeme)
}

func TestTokenizeUnterminatedStringIsSyntaxError(t *testing.T) {
	_, err := Tokenize("", `"unterminated`)
	require.Error(t, err)
}

func TestTokenizeElementWiseOperators(t *testing.T) {
	toks, err := Tokenize("", `a .+ b .== c`)
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.Ident, token.DotPlus, token.Ident, token.DotEq, token.Ident, token.EOF}, kinds(toks))
}

func TestTokenizeRegexVsDivision(t *testing.T) {
	toks, err := Tokenize("", "x =~ /ab\\/c/i\ny / 2")
	require.NoError(t, err)
	require.Equal(t, token.Regex, toks[2].Kind)
	require.Equal(t, `/ab\/c/i`, toks[2].Lexeme)

	var sawSlash bool
	for _, tk := range toks {
		if tk.Kind == token.Slash {
			sawSlash = true
		}
	}
	require.True(t, sawSlash)
}

func TestTokenizeNewlinesPreserved(t *testing.T) {
	toks, err := Tokenize("", "a = 1\nb = 2")
	require.NoError(t, err)
	require.Equal(t, token.Newline, toks[3].Kind)
}

func TestTokenizeComments(t *testing.T) {
	toks, err := Tokenize("", "a // trailing\n/* block */ b")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.Ident, token.Newline, token.Ident, token.EOF}, kinds(toks))
}

func TestTokenizeRulesetKeywords(t *testing.T) {
	toks, err := Tokenize("", "binary_tree bst tree dag")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.KwBinaryTree, token.KwBst, token.KwTree, token.KwDag, token.EOF}, kinds(toks))
}
