package parser

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/token"
)

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur().Kind {
	case token.KwImport:
		return p.parseImport()
	case token.KwLoad:
		return p.parseLoad()
	case token.KwModule:
		return p.parseModuleDecl()
	case token.KwPriv:
		return p.parsePrivDecl()
	case token.KwFn:
		return p.parseFunctionDecl(false)
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		pos := p.advance().Position
		return &ast.BreakStmt{Base: ast.Base{Position: pos}}, nil
	case token.KwContinue:
		pos := p.advance().Position
		return &ast.ContinueStmt{Base: ast.Base{Position: pos}}, nil
	case token.KwRaise:
		return p.parseRaise()
	case token.KwTry:
		return p.parseTry()
	case token.KwConfigure:
		return p.parseConfigure()
	case token.KwPrecision:
		return p.parsePrecision()
	case token.Ident:
		if decl, ok, err := p.tryParseTypedVarDecl(false); ok || err != nil {
			return decl, err
		}
		return p.parseExprOrAssignment()
	default:
		return p.parseExprOrAssignment()
	}
}

func (p *Parser) parsePrivDecl() (ast.Stmt, error) {
	p.advance() // 'priv'
	if p.at(token.KwFn) {
		return p.parseFunctionDecl(true)
	}
	if decl, ok, err := p.tryParseTypedVarDecl(true); ok || err != nil {
		return decl, err
	}
	stmt, err := p.parseExprOrAssignment()
	if err != nil {
		return nil, err
	}
	if a, ok := stmt.(*ast.Assignment); ok {
		if id, ok := a.Target.(*ast.Identifier); ok {
			return &ast.VarDecl{Base: ast.Base{Position: a.Position}, Priv: true, Name: id.Name, Value: a.Value}, nil
		}
	}
	return nil, p.errf("'priv' must prefix a function or variable declaration")
}

// tryParseTypedVarDecl attempts `(list|map)<type> name = expr`. It
// returns ok=false (no error, no statement) if the current position
// does not begin that form, letting the caller fall back to ordinary
// assignment/expression parsing.
func (p *Parser) tryParseTypedVarDecl(priv bool) (ast.Stmt, bool, error) {
	if !p.at(token.Ident) {
		return nil, false, nil
	}
	switch p.cur().Lexeme {
	case "list", "map", "hash": // "hash" is the legacy alias for "map"
	default:
		return nil, false, nil
	}
	if p.peek(1).Kind != token.Lt {
		return nil, false, nil
	}
	start := p.cur()
	typeName := p.advance().Lexeme
	if typeName == "hash" {
		typeName = "map"
	}
	p.advance() // '<'
	paramTok, err := p.expect(token.Ident, "type parameter")
	if err != nil {
		return nil, true, err
	}
	if p.at(token.Comma) {
		return nil, true, p.errf("multi-parameter generics are not supported: only a single type parameter is allowed after %q", typeName)
	}
	if _, err := p.expect(token.Gt, "'>'"); err != nil {
		return nil, true, err
	}
	nameTok, err := p.expect(token.Ident, "variable name")
	if err != nil {
		return nil, true, err
	}
	if _, err := p.expect(token.Assign, "'='"); err != nil {
		return nil, true, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, true, err
	}
	return &ast.VarDecl{
		Base: ast.Base{Position: start.Position}, Priv: priv,
		TypeName: typeName, TypeParam: paramTok.Lexeme, Name: nameTok.Lexeme, Value: val,
	}, true, nil
}

// parseExprOrAssignment parses an expression, then if it is followed
// by '=' and is a valid assignment target (Identifier or IndexExpr),
// turns it into an Assignment.
func (p *Parser) parseExprOrAssignment() (ast.Stmt, error) {
	start := p.cur().Position
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.at(token.Assign) {
		return &ast.ExprStmt{Base: ast.Base{Position: start}, Expr: expr}, nil
	}
	switch expr.(type) {
	case *ast.Identifier, *ast.IndexExpr:
	default:
		return nil, p.errf("invalid assignment target")
	}
	p.advance() // '='
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Base: ast.Base{Position: start}, Target: expr, Value: val}, nil
}

func (p *Parser) parseImport() (ast.Stmt, error) {
	start := p.advance().Position // 'import'
	pathTok, err := p.expect(token.Str, "module path string")
	if err != nil {
		return nil, err
	}
	return &ast.ImportStmt{Base: ast.Base{Position: start}, Path: pathTok.Lexeme, Alias: lastSegment(pathTok.Lexeme)}, nil
}

func lastSegment(path string) string {
	last := path
	cur := ""
	for _, r := range path {
		if r == '/' || r == '.' {
			if cur != "" {
				last = cur
			}
			cur = ""
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		last = cur
	}
	return last
}

func (p *Parser) parseLoad() (ast.Stmt, error) {
	start := p.advance().Position
	pathTok, err := p.expect(token.Str, "module path string")
	if err != nil {
		return nil, err
	}
	return &ast.LoadStmt{Base: ast.Base{Position: start}, Path: pathTok.Lexeme}, nil
}

func (p *Parser) parseModuleDecl() (ast.Stmt, error) {
	start := p.advance().Position
	nameTok, err := p.expect(token.Ident, "module name")
	if err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ModuleDecl{Base: ast.Base{Position: start}, Name: nameTok.Lexeme, Body: block.Statements}, nil
}

func (p *Parser) parseFunctionDecl(priv bool) (ast.Stmt, error) {
	start := p.advance().Position // 'fn'
	nameTok, err := p.expect(token.Ident, "function name")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Base: ast.Base{Position: start}, Priv: priv, Name: nameTok.Lexeme, Params: params, Body: body}, nil
}

// parseParams parses `(p1, p2=default, ...rest)`, enforcing that at
// most one variadic parameter appears and that it is last.
func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(token.LParen, "'('"); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.at(token.RParen) {
		if len(params) > 0 {
			if _, err := p.expect(token.Comma, "','"); err != nil {
				return nil, err
			}
		}
		variadic := false
		if p.checkVariadicDots() {
			p.advance()
			p.advance()
			p.advance()
			variadic = true
		}
		nameTok, err := p.expect(token.Ident, "parameter name")
		if err != nil {
			return nil, err
		}
		var def ast.Expr
		if p.at(token.Assign) {
			if variadic {
				return nil, p.errf("variadic parameter %q cannot have a default", nameTok.Lexeme)
			}
			p.advance()
			def, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		if variadic && p.peekHasMoreParams() {
			return nil, p.errf("variadic parameter %q must be last", nameTok.Lexeme)
		}
		params = append(params, ast.Param{Name: nameTok.Lexeme, Default: def, Variadic: variadic})
	}
	if _, err := p.expect(token.RParen, "')'"); err != nil {
		return nil, err
	}
	return params, nil
}

// checkVariadicDots reports whether the next three tokens spell `...`
// (three Dot tokens), the variadic marker.
func (p *Parser) checkVariadicDots() bool {
	return p.cur().Kind == token.Dot && p.peek(1).Kind == token.Dot && p.peek(2).Kind == token.Dot
}

func (p *Parser) peekHasMoreParams() bool {
	return p.at(token.Comma)
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	start := p.advance().Position
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Base: ast.Base{Position: start}, Cond: cond, Then: then}
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseIf
		} else {
			elseBlock, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBlock
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	start := p.advance().Position
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Base: ast.Base{Position: start}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	start := p.advance().Position
	varTok, err := p.expect(token.Ident, "loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwIn, "'in'"); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Base: ast.Base{Position: start}, Var: varTok.Lexeme, Iterable: iter, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	start := p.advance().Position
	if p.at(token.Newline) || p.at(token.Semicolon) || p.at(token.RBrace) || p.at(token.EOF) {
		return &ast.ReturnStmt{Base: ast.Base{Position: start}}, nil
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Base: ast.Base{Position: start}, Value: val}, nil
}

func (p *Parser) parseRaise() (ast.Stmt, error) {
	start := p.advance().Position
	if p.at(token.SymbolLit) {
		kind := p.advance().Lexeme
		if _, err := p.expect(token.LParen, "'('"); err != nil {
			return nil, err
		}
		msg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "')'"); err != nil {
			return nil, err
		}
		return &ast.RaiseStmt{Base: ast.Base{Position: start}, Kind: kind, Message: msg}, nil
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.RaiseStmt{Base: ast.Base{Position: start}, Value: val}, nil
}

// isContextualAs reports whether the current token is the identifier
// "as", used only inside `catch Kind as e` and never reserved
// elsewhere.
func (p *Parser) isContextualAs() bool {
	return p.at(token.Ident) && p.cur().Lexeme == "as"
}

func (p *Parser) parseTry() (ast.Stmt, error) {
	start := p.advance().Position
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.TryStmt{Base: ast.Base{Position: start}, Body: body}
	for p.at(token.KwCatch) {
		p.advance()
		clause := ast.CatchClause{}
		if !p.at(token.LBrace) && !p.isContextualAs() {
			typeExpr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			clause.Type = typeExpr
		}
		if p.isContextualAs() {
			p.advance()
			bindTok, err := p.expect(token.Ident, "catch binding name")
			if err != nil {
				return nil, err
			}
			clause.Bind = bindTok.Lexeme
		}
		clauseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		clause.Body = clauseBody
		stmt.Catches = append(stmt.Catches, clause)
	}
	if p.at(token.KwFinally) {
		p.advance()
		finallyBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Finally = finallyBlock
	}
	return stmt, nil
}

func (p *Parser) parseConfigure() (ast.Stmt, error) {
	start := p.advance().Position
	if _, err := p.expect(token.LBrace, "'{'"); err != nil {
		return nil, err
	}
	entries, err := p.parseMapEntries(token.RBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBrace, "'}'"); err != nil {
		return nil, err
	}
	stmt := &ast.ConfigureStmt{Base: ast.Base{Position: start}, Settings: entries}
	if p.at(token.LBrace) {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Body = body
	}
	return stmt, nil
}

func (p *Parser) parsePrecision() (ast.Stmt, error) {
	start := p.advance().Position
	places, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.PrecisionStmt{Base: ast.Base{Position: start}, Places: places, Body: body}, nil
}
