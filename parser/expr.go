package parser

import (
	"github.com/graphoid-lang/graphoid/ast"
	"github.com/graphoid-lang/graphoid/token"
)

// parseExpr is the entry point for the full 12-level precedence table,
// lowest (inline conditional/lambda) first.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseConditionalOrLambda()
}

func (p *Parser) parseConditionalOrLambda() (ast.Expr, error) {
	if lambda, ok, err := p.tryParseLambda(); ok || err != nil {
		return lambda, err
	}
	if p.at(token.KwIf) {
		return p.parseInlineIf()
	}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(token.KwIf):
			start := p.advance().Position
			cond, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			expr = &ast.CondExpr{Base: ast.Base{Position: start}, Cond: cond, Then: expr, Else: &ast.NoneLit{Base: ast.Base{Position: start}}}
		case p.at(token.KwUnless):
			start := p.advance().Position
			cond, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			negated := &ast.UnaryExpr{Base: ast.Base{Position: start}, Op: token.KwNot, Operand: cond}
			expr = &ast.CondExpr{Base: ast.Base{Position: start}, Cond: negated, Then: expr, Else: &ast.NoneLit{Base: ast.Base{Position: start}}}
		default:
			return expr, nil
		}
	}
}

// parseInlineIf parses `if cond then a else b` as an expression. The
// contextual word "then" is not a reserved keyword; it only has meaning
// immediately following an inline-if condition.
func (p *Parser) parseInlineIf() (ast.Expr, error) {
	start := p.advance().Position // 'if'
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.isContextualWord("then") {
		return nil, p.errf("expected 'then' in inline conditional")
	}
	p.advance()
	thenExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwElse, "'else'"); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.CondExpr{Base: ast.Base{Position: start}, Cond: cond, Then: thenExpr, Else: elseExpr}, nil
}

func (p *Parser) isContextualWord(word string) bool {
	return p.at(token.Ident) && p.cur().Lexeme == word
}

// tryParseLambda detects and parses `name => expr` or `(p1, p2) => expr`
// without permanently consuming tokens when the shape doesn't match.
func (p *Parser) tryParseLambda() (ast.Expr, bool, error) {
	save := p.pos
	switch {
	case p.at(token.Ident) && p.peek(1).Kind == token.Arrow:
		start := p.cur().Position
		nameTok := p.advance()
		p.advance() // '=>'
		body, err := p.parseLambdaBody()
		if err != nil {
			return nil, true, err
		}
		return &ast.FunctionLit{Base: ast.Base{Position: start}, Params: []ast.Param{{Name: nameTok.Lexeme}}, Body: body}, true, nil
	case p.at(token.LParen):
		if end, ok := p.matchParenList(p.pos); ok && p.peek(end-p.pos+1).Kind == token.Arrow {
			start := p.cur().Position
			params, err := p.parseParams()
			if err != nil {
				p.pos = save
				return nil, false, nil
			}
			if !p.at(token.Arrow) {
				p.pos = save
				return nil, false, nil
			}
			p.advance() // '=>'
			body, err := p.parseLambdaBody()
			if err != nil {
				return nil, true, err
			}
			return &ast.FunctionLit{Base: ast.Base{Position: start}, Params: params, Body: body}, true, nil
		}
	}
	return nil, false, nil
}

// parseLambdaBody parses the expression (or, for the reserved-but-
// unimplemented block form, raises a clear parse error) after `=>`.
func (p *Parser) parseLambdaBody() (ast.Node, error) {
	if p.at(token.LBrace) {
		return nil, p.errf("block-body lambdas are reserved but not implemented")
	}
	return p.parseExpr()
}

// matchParenList scans forward from a '(' token at idx to find its
// matching ')' index, returning ok=false if unbalanced before EOF.
func (p *Parser) matchParenList(idx int) (int, bool) {
	depth := 0
	for i := idx; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return i, true
			}
		case token.EOF:
			return 0, false
		}
	}
	return 0, false
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(token.KwOr) || p.at(token.OrOr) {
		op := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Base: ast.Base{Position: op.Position}, Op: token.KwOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.at(token.KwAnd) || p.at(token.AndAnd) {
		op := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Base: ast.Base{Position: op.Position}, Op: token.KwAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseRelational, token.Eq, token.Neq, token.RegexEq, token.RegexNeq)
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseAdditive, token.Lt, token.Le, token.Gt, token.Ge,
		token.DotLt, token.DotGt, token.DotLe, token.DotGe, token.DotEq, token.DotNeq)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, token.Plus, token.Minus, token.PlusPlus, token.DotPlus, token.DotMinus)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parsePower, token.Star, token.Slash, token.SlashSlash, token.Percent,
		token.DotStar, token.DotSlash, token.DotSlashSlash, token.DotPercent)
}

// parsePower is right-associative: a ^ b ^ c == a ^ (b ^ c).
func (p *Parser) parsePower() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.at(token.Caret) || p.at(token.StarStar) || p.at(token.DotCaret) {
		op := p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Base: ast.Base{Position: op.Position}, Op: op.Kind, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.cur().Kind {
	case token.Minus, token.Bang, token.KwNot, token.Tilde:
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Base: ast.Base{Position: op.Position}, Op: op.Kind, Operand: operand}, nil
	default:
		return p.parseBitwise()
	}
}

func (p *Parser) parseBitwise() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parsePostfix, token.Amp, token.Pipe, token.LShift, token.RShift)
}

// parseBinaryLevel is a generic left-associative binary-operator level:
// it parses `next`, then repeatedly consumes any token in ops and
// another `next`.
func (p *Parser) parseBinaryLevel(next func() (ast.Expr, error), ops ...token.Kind) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, op := range ops {
			if p.at(op) {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		opTok := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: ast.Base{Position: opTok.Position}, Op: opTok.Kind, Left: left, Right: right}
	}
}

// parsePostfix handles call / index / slice / method / dot chains
// applied to a primary expression.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case token.LParen:
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Base: ast.Base{Position: expr.Pos()}, Callee: expr, Args: args}
		case token.LBracket:
			expr, err = p.parseIndexOrSlice(expr)
			if err != nil {
				return nil, err
			}
		case token.Dot:
			dotPos := p.advance().Position
			name, err := p.parseMemberName()
			if err != nil {
				return nil, err
			}
			if p.at(token.LParen) {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				expr = &ast.MethodCallExpr{Base: ast.Base{Position: dotPos}, Receiver: expr, Method: name, Args: args}
			} else {
				expr = &ast.DotExpr{Base: ast.Base{Position: dotPos}, Target: expr, Member: name}
			}
		default:
			return expr, nil
		}
	}
}

// parseMemberName accepts an ordinary identifier or the reserved word
// "match" as a `.member`/`.method(...)` name — `match` is a keyword
// only so the lexer can recognize it, but graph.match(...) is the sole
// place it appears, always after a dot.
func (p *Parser) parseMemberName() (string, error) {
	if p.at(token.KwMatch) {
		return p.advance().Lexeme, nil
	}
	tok, err := p.expect(token.Ident, "member name")
	if err != nil {
		return "", err
	}
	return tok.Lexeme, nil
}

func (p *Parser) parseIndexOrSlice(target ast.Expr) (ast.Expr, error) {
	open := p.advance() // '['
	var low ast.Expr
	var err error
	if !p.at(token.Colon) {
		low, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if p.at(token.Colon) {
		p.advance()
		var high ast.Expr
		if !p.at(token.RBracket) {
			high, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.RBracket, "']'"); err != nil {
			return nil, err
		}
		return &ast.SliceExpr{Base: ast.Base{Position: open.Position}, Target: target, Low: low, High: high}, nil
	}
	if _, err := p.expect(token.RBracket, "']'"); err != nil {
		return nil, err
	}
	return &ast.IndexExpr{Base: ast.Base{Position: open.Position}, Target: target, Index: low}, nil
}

// parseArgs parses `(arg, arg, name: arg, ...)`, enforcing that
// positional arguments precede named ones and that no name repeats.
func (p *Parser) parseArgs() ([]ast.Arg, error) {
	if _, err := p.expect(token.LParen, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Arg
	seenNamed := false
	seenNames := map[string]bool{}
	for !p.at(token.RParen) {
		if len(args) > 0 {
			if _, err := p.expect(token.Comma, "','"); err != nil {
				return nil, err
			}
		}
		name := ""
		if p.at(token.Ident) && p.peek(1).Kind == token.Colon {
			name = p.advance().Lexeme
			p.advance() // ':'
			if seenNames[name] {
				return nil, p.errf("duplicate named argument %q", name)
			}
			seenNames[name] = true
			seenNamed = true
		} else if seenNamed {
			return nil, p.errf("positional argument cannot follow a named argument")
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, ast.Arg{Name: name, Value: val})
	}
	if _, err := p.expect(token.RParen, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.Int, token.Float:
		p.advance()
		return &ast.NumberLit{Base: ast.Base{Position: tok.Position}, Value: parseNumberLexeme(tok.Lexeme)}, nil
	case token.Str:
		p.advance()
		return &ast.StringLit{Base: ast.Base{Position: tok.Position}, Value: tok.Lexeme}, nil
	case token.SymbolLit:
		p.advance()
		return &ast.SymbolLit{Base: ast.Base{Position: tok.Position}, Name: tok.Lexeme}, nil
	case token.Regex:
		p.advance()
		pattern, flags := splitRegexLexeme(tok.Lexeme)
		return &ast.RegexLit{Base: ast.Base{Position: tok.Position}, Pattern: pattern, Flags: flags}, nil
	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.BoolLit{Base: ast.Base{Position: tok.Position}, Value: tok.Kind == token.KwTrue}, nil
	case token.KwNone:
		p.advance()
		return &ast.NoneLit{Base: ast.Base{Position: tok.Position}}, nil
	case token.LParen:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case token.LBracket:
		return p.parseListLit()
	case token.LBrace:
		return p.parseMapLit()
	case token.KwGraph:
		return p.parseGraphLit()
	case token.KwTree:
		return p.parseRulesetLit(token.KwTree, "tree")
	case token.KwDag:
		return p.parseRulesetLit(token.KwDag, "dag")
	case token.KwBinaryTree:
		return p.parseRulesetLit(token.KwBinaryTree, "binary_tree")
	case token.KwBst:
		return p.parseRulesetLit(token.KwBst, "bst")
	case token.Ident:
		switch tok.Lexeme {
		case "node":
			if p.peek(1).Kind == token.LParen {
				return p.parsePatternNode()
			}
		case "edge":
			if p.peek(1).Kind == token.LParen {
				return p.parsePatternEdge()
			}
		case "path":
			if p.peek(1).Kind == token.LParen {
				return p.parsePatternPath()
			}
		}
		p.advance()
		return &ast.Identifier{Base: ast.Base{Position: tok.Position}, Name: tok.Lexeme}, nil
	default:
		return nil, p.errf("unexpected token %q", tok.Lexeme)
	}
}

func (p *Parser) parseListLit() (ast.Expr, error) {
	open := p.advance() // '['
	lit := &ast.ListLit{Base: ast.Base{Position: open.Position}}
	p.skipTerminators()
	for !p.at(token.RBracket) {
		if len(lit.Elements) > 0 {
			if _, err := p.expect(token.Comma, "','"); err != nil {
				return nil, err
			}
			p.skipTerminators()
		}
		el, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		lit.Elements = append(lit.Elements, el)
		p.skipTerminators()
	}
	if _, err := p.expect(token.RBracket, "']'"); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseMapLit() (ast.Expr, error) {
	open := p.advance() // '{'
	entries, err := p.parseMapEntries(token.RBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.MapLit{Base: ast.Base{Position: open.Position}, Entries: entries}, nil
}

// parseMapEntries parses a comma-separated `key: value` list up to (but
// not consuming) the closing token. Shared by map literals, graph
// literal settings, and `configure { ... }` settings blocks.
func (p *Parser) parseMapEntries(closing token.Kind) ([]ast.MapEntry, error) {
	var entries []ast.MapEntry
	p.skipTerminators()
	for !p.at(closing) {
		if len(entries) > 0 {
			if _, err := p.expect(token.Comma, "','"); err != nil {
				return nil, err
			}
			p.skipTerminators()
		}
		key, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, "':'"); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.MapEntry{Key: key, Value: val})
		p.skipTerminators()
	}
	return entries, nil
}

func (p *Parser) parseGraphLit() (ast.Expr, error) {
	start := p.advance().Position // 'graph'
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
	return &ast.GraphLit{Base: ast.Base{Position: start}, Settings: entries}, nil
}

// parseRulesetLit desugars `tree{...}`/`dag{...}`/`binary_tree{...}`/
// `bst{...}` into `graph{...}.with_ruleset(:name)`.
func (p *Parser) parseRulesetLit(kw token.Kind, rulesetName string) (ast.Expr, error) {
	start := p.advance().Position // the ruleset keyword
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
	graphLit := &ast.GraphLit{Base: ast.Base{Position: start}, Settings: entries}
	ruleset := &ast.SymbolLit{Base: ast.Base{Position: start}, Name: rulesetName}
	return &ast.MethodCallExpr{
		Base: ast.Base{Position: start}, Receiver: graphLit, Method: "with_ruleset",
		Args: []ast.Arg{{Value: ruleset}},
	}, nil
}

func (p *Parser) parsePatternNode() (ast.Expr, error) {
	start := p.advance().Position // 'node'
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	node := &ast.PatternNode{Base: ast.Base{Position: start}}
	for _, a := range args {
		switch {
		case a.Name == "":
			str, ok := a.Value.(*ast.StringLit)
			if !ok {
				return nil, p.errf("node() positional argument must be a binding name string")
			}
			node.Var = str.Value
		case a.Name == "type":
			node.Type = a.Value
		default:
			return nil, p.errf("unknown node() argument %q", a.Name)
		}
	}
	return node, nil
}

func (p *Parser) parsePatternEdge() (ast.Expr, error) {
	start := p.advance().Position // 'edge'
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	edge := &ast.PatternEdge{Base: ast.Base{Position: start}}
	for _, a := range args {
		switch a.Name {
		case "type":
			edge.Type = a.Value
		case "direction":
			dir, err := p.symbolArgName(a.Value)
			if err != nil {
				return nil, err
			}
			edge.Direction = dir
		default:
			return nil, p.errf("unknown edge() argument %q", a.Name)
		}
	}
	return edge, nil
}

func (p *Parser) parsePatternPath() (ast.Expr, error) {
	start := p.advance().Position // 'path'
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	path := &ast.PatternPath{Base: ast.Base{Position: start}}
	for _, a := range args {
		switch a.Name {
		case "type":
			path.Type = a.Value
		case "min":
			path.Min = a.Value
		case "max":
			path.Max = a.Value
		case "direction":
			dir, err := p.symbolArgName(a.Value)
			if err != nil {
				return nil, err
			}
			path.Direction = dir
		default:
			return nil, p.errf("unknown path() argument %q", a.Name)
		}
	}
	return path, nil
}

func (p *Parser) symbolArgName(e ast.Expr) (string, error) {
	sym, ok := e.(*ast.SymbolLit)
	if !ok {
		return "", p.errf("expected a :symbol argument")
	}
	return sym.Name, nil
}
