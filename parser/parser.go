package parser

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/errorx"
	"github.com/graphoid-lang/graphoid/lexer"
	"github.com/graphoid-lang/graphoid/token"
)

// Parser walks a flat token.Token slice, building an ast.Program. It
// does not recover from errors (spec §4.2: "the parser does not
// recover — it surfaces the first error").
type Parser struct {
	toks []token.Token
	pos  int
}

// New returns a Parser over an already-scanned token stream.
func New(toks []token.Token) *Parser { return &Parser{toks: toks} }

// Parse lexes src and parses it into a Program in one step.
func Parse(file, src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(file, src)
	if err != nil {
		return nil, err
	}
	return New(toks).ParseProgram()
}

func (p *Parser) cur() token.Token { return p.toks[p.pos] }

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.cur().Kind == k }

// peek returns the token `offset` positions ahead of the current one,
// or the trailing EOF token if that would run past the end of the
// stream — malformed/truncated input must never cause an out-of-bounds
// index here.
func (p *Parser) peek(offset int) token.Token {
	i := p.pos + offset
	if i < 0 || i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

// expect consumes the current token if it matches k, else raises a
// :parse error at its position.
func (p *Parser) expect(k token.Kind, what string) (token.Token, error) {
	if !p.check(k) {
		return token.Token{}, p.errf("expected %s, got %q", what, p.cur().Lexeme)
	}
	return p.advance(), nil
}

func (p *Parser) errf(format string, args ...interface{}) error {
	return errorx.Newf(errorx.Parse, format, args...).WithPosition(p.cur().Position)
}

// skipTerminators consumes any run of Newline/Semicolon tokens,
// treating them interchangeably as statement separators.
func (p *Parser) skipTerminators() {
	for p.at(token.Newline) || p.at(token.Semicolon) {
		p.advance()
	}
}

// ParseProgram parses the entire token stream into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	p.skipTerminators()
	for !p.at(token.EOF) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		p.skipTerminators()
	}
	return prog, nil
}

// parseBlock parses `{ stmt* }`.
func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	open, err := p.expect(token.LBrace, "'{'")
	if err != nil {
		return nil, err
	}
	block := &ast.BlockStmt{Base: ast.Base{Position: open.Position}}
	p.skipTerminators()
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			return nil, p.errf("unterminated block, expected '}'")
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
		p.skipTerminators()
	}
	p.advance() // '}'
	return block, nil
}
