// Package ast defines Graphoid's syntax tree: tagged-union expression and
// statement nodes, each carrying its source position (spec §4.2).
package ast

import "github.com/graphoid-lang/graphoid/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Base embeds a Position and gives every node a Pos() method for free.
// It is exported so constructors outside this package can populate it by
// field name, e.g. ast.Identifier{Base: ast.Base{Position: pos}, ...}.
type Base struct {
	Position token.Position
}

func (b Base) Pos() token.Position { return b.Position }

// Program is the root of a parsed module.
type Program struct {
	Statements []Stmt
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{}
	}
	return p.Statements[0].Pos()
}

// Param is one formal parameter in a function declaration or lambda.
type Param struct {
	Name     string
	Default  Expr // nil if required and non-variadic
	Variadic bool
}

// Arg is one call argument: positional (Name=="") or named.
type Arg struct {
	Name  string
	Value Expr
}

// MapEntry is one key/value pair in a map literal or a settings block
// (`configure { key: value, ... }`).
type MapEntry struct {
	Key   Expr
	Value Expr
}
