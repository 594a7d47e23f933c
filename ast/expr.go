package ast

import "github.com/graphoid-lang/graphoid/token"

func (*Identifier) exprNode()    {}
func (*NumberLit) exprNode()     {}
func (*StringLit) exprNode()     {}
func (*SymbolLit) exprNode()     {}
func (*BoolLit) exprNode()       {}
func (*NoneLit) exprNode()       {}
func (*RegexLit) exprNode()      {}
func (*ListLit) exprNode()       {}
func (*MapLit) exprNode()        {}
func (*GraphLit) exprNode()      {}
func (*FunctionLit) exprNode()   {}
func (*BinaryExpr) exprNode()    {}
func (*UnaryExpr) exprNode()     {}
func (*LogicalExpr) exprNode()   {}
func (*IndexExpr) exprNode()     {}
func (*SliceExpr) exprNode()     {}
func (*CallExpr) exprNode()      {}
func (*MethodCallExpr) exprNode() {}
func (*DotExpr) exprNode()       {}
func (*CondExpr) exprNode()      {}
func (*PatternNode) exprNode()   {}
func (*PatternEdge) exprNode()   {}
func (*PatternPath) exprNode()   {}

// Identifier references a bound name.
type Identifier struct {
	Base
	Name string
}

// NumberLit is a numeric literal (integer or float lexeme, both evaluate
// to value.Number).
type NumberLit struct {
	Base
	Value float64
}

// StringLit is a string literal with escapes already resolved by the
// lexer.
type StringLit struct {
	Base
	Value string
}

// SymbolLit is a `:name` literal.
type SymbolLit struct {
	Base
	Name string
}

// BoolLit is `true`/`false`.
type BoolLit struct {
	Base
	Value bool
}

// NoneLit is the `none` literal.
type NoneLit struct{ Base }

// RegexLit is a `/pattern/flags` literal.
type RegexLit struct {
	Base
	Pattern string
	Flags   string
}

// ListLit is a `[ ... ]` literal.
type ListLit struct {
	Base
	Elements []Expr
}

// MapLit is a `{ k: v, ... }` literal.
type MapLit struct {
	Base
	Entries []MapEntry
}

// GraphLit is a `graph { ... }` literal. Settings holds recognized
// key/value pairs such as `type: :directed`. tree/dag/binary_tree/bst are
// desugared by the parser into a GraphLit wrapped in MethodCallExprs
// calling with_ruleset.
type GraphLit struct {
	Base
	Settings []MapEntry
}

// FunctionLit is a function value: a named declaration's body, or an
// anonymous lambda.
type FunctionLit struct {
	Base
	Name   string // empty for lambdas
	Params []Param
	Body   Node // *BlockStmt for `fn`/`{}` bodies, an Expr for `x => expr`
}

// BinaryExpr covers arithmetic, comparison, element-wise, bitwise, regex
// comparison, and string concatenation operators.
type BinaryExpr struct {
	Base
	Op          token.Kind
	Left, Right Expr
}

// UnaryExpr covers `-`, `!`/`not`, `~`.
type UnaryExpr struct {
	Base
	Op      token.Kind
	Operand Expr
}

// LogicalExpr covers short-circuiting `and`/`or` (and their `&&`/`||`
// spellings).
type LogicalExpr struct {
	Base
	Op          token.Kind
	Left, Right Expr
}

// IndexExpr is `target[index]`.
type IndexExpr struct {
	Base
	Target Expr
	Index  Expr
}

// SliceExpr is `target[low:high]`; Low/High may be nil (open bound).
type SliceExpr struct {
	Base
	Target   Expr
	Low, High Expr
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Base
	Callee Expr
	Args   []Arg
}

// MethodCallExpr is `receiver.method(args...)`.
type MethodCallExpr struct {
	Base
	Receiver Expr
	Method   string
	Args     []Arg
}

// DotExpr is plain member access `target.member` (namespace access; not a
// call).
type DotExpr struct {
	Base
	Target Expr
	Member string
}

// CondExpr is `if cond then a else b`, and the desugared form of suffix
// `expr if cond` / `expr unless cond` (Else defaults to NoneLit).
type CondExpr struct {
	Base
	Cond, Then, Else Expr
}

// PatternNode is a `node(var?, type: T?)` pattern constructor.
type PatternNode struct {
	Base
	Var  string
	Type Expr // nil if unconstrained
}

// PatternEdge is an `edge(type: E?, direction: D?)` pattern constructor.
type PatternEdge struct {
	Base
	Type      Expr
	Direction string // "outgoing" | "incoming" | "both"; "" = default outgoing
}

// PatternPath is a `path(type: E?, min:, max:, direction:)` pattern
// constructor standing for a variable-length sub-path.
type PatternPath struct {
	Base
	Type      Expr
	Min, Max  Expr
	Direction string
}
