package ast

import "github.com/BLamy/does-it-throw/internal/token"

// Identifier is a bound or free name reference.
type Identifier struct {
	Tok   token.Token
	Span  Span
	Name  string
}

func (i *Identifier) GetSpan() Span         { return i.Span }
func (i *Identifier) GetToken() token.Token { return i.Tok }
func (i *Identifier) expressionNode()       {}

// ThisExpression is the `this` keyword.
type ThisExpression struct {
	Tok  token.Token
	Span Span
}

func (t *ThisExpression) GetSpan() Span         { return t.Span }
func (t *ThisExpression) GetToken() token.Token { return t.Tok }
func (t *ThisExpression) expressionNode()       {}

// StringLiteral is a single- or double-quoted string literal.
type StringLiteral struct {
	Tok   token.Token
	Span  Span
	Value string
}

func (s *StringLiteral) GetSpan() Span         { return s.Span }
func (s *StringLiteral) GetToken() token.Token { return s.Tok }
func (s *StringLiteral) expressionNode()       {}

// NumericLiteral is a numeric literal.
type NumericLiteral struct {
	Tok   token.Token
	Span  Span
	Value string
}

func (n *NumericLiteral) GetSpan() Span         { return n.Span }
func (n *NumericLiteral) GetToken() token.Token { return n.Tok }
func (n *NumericLiteral) expressionNode()       {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Tok   token.Token
	Span  Span
	Value bool
}

func (b *BooleanLiteral) GetSpan() Span         { return b.Span }
func (b *BooleanLiteral) GetToken() token.Token { return b.Tok }
func (b *BooleanLiteral) expressionNode()       {}

// NullLiteral is `null`.
type NullLiteral struct {
	Tok  token.Token
	Span Span
}

func (n *NullLiteral) GetSpan() Span         { return n.Span }
func (n *NullLiteral) GetToken() token.Token { return n.Tok }
func (n *NullLiteral) expressionNode()       {}

// UndefinedLiteral is the `undefined` identifier used as a literal.
type UndefinedLiteral struct {
	Tok  token.Token
	Span Span
}

func (u *UndefinedLiteral) GetSpan() Span         { return u.Span }
func (u *UndefinedLiteral) GetToken() token.Token { return u.Tok }
func (u *UndefinedLiteral) expressionNode()       {}

// TemplateLiteral is a backtick string, captured opaquely (lexer.go).
type TemplateLiteral struct {
	Tok  token.Token
	Span Span
	Raw  string
}

func (t *TemplateLiteral) GetSpan() Span         { return t.Span }
func (t *TemplateLiteral) GetToken() token.Token { return t.Tok }
func (t *TemplateLiteral) expressionNode()       {}

// FunctionExpression is `function [name](params) { body }` used in
// expression position (including as a class method's Value).
type FunctionExpression struct {
	Tok    token.Token
	Span   Span
	Name   *Identifier // nil for anonymous function expressions
	Params []Expression
	Body   *BlockStatement
	Async  bool
}

func (f *FunctionExpression) GetSpan() Span         { return f.Span }
func (f *FunctionExpression) GetToken() token.Token { return f.Tok }
func (f *FunctionExpression) expressionNode()       {}

// ArrowFunctionExpression is `(params) => body` or `(params) => { body }`.
// When Body is not a *BlockStatement, it is a concise (expression) body
// — the analyzer treats it as an implicit `return <expr>`.
type ArrowFunctionExpression struct {
	Tok    token.Token
	Span   Span
	Params []Expression
	Body   Node // *BlockStatement or an Expression
	Async  bool
}

func (a *ArrowFunctionExpression) GetSpan() Span         { return a.Span }
func (a *ArrowFunctionExpression) GetToken() token.Token { return a.Tok }
func (a *ArrowFunctionExpression) expressionNode()       {}

// ObjectExpression is `{ prop, prop2: value, method() {} }`.
type ObjectExpression struct {
	Tok        token.Token
	Span       Span
	Properties []*Property
}

func (o *ObjectExpression) GetSpan() Span         { return o.Span }
func (o *ObjectExpression) GetToken() token.Token { return o.Tok }
func (o *ObjectExpression) expressionNode()       {}

// PropertyKind distinguishes plain data properties from accessor/method shorthand.
type PropertyKind int

const (
	PropertyKindInit PropertyKind = iota
	PropertyKindMethod
	PropertyKindGet
	PropertyKindSet
)

// Property is one `key: value`, `method() {}`, `get x() {}`, or
// shorthand `{ key }` entry of an ObjectExpression.
type Property struct {
	Tok       token.Token
	Span      Span
	Key       Expression
	Value     Expression
	Kind      PropertyKind
	Computed  bool
	Shorthand bool
}

func (p *Property) GetSpan() Span         { return p.Span }
func (p *Property) GetToken() token.Token { return p.Tok }

// ArrayExpression is `[elem, elem2, ...]`.
type ArrayExpression struct {
	Tok      token.Token
	Span     Span
	Elements []Expression
}

func (a *ArrayExpression) GetSpan() Span         { return a.Span }
func (a *ArrayExpression) GetToken() token.Token { return a.Tok }
func (a *ArrayExpression) expressionNode()       {}

// CallExpression is `callee(args...)` (spec.md §3 CallSite source).
type CallExpression struct {
	Tok       token.Token
	Span      Span
	Callee    Expression
	Arguments []Expression
	Optional  bool // `callee?.(args)`
}

func (c *CallExpression) GetSpan() Span         { return c.Span }
func (c *CallExpression) GetToken() token.Token { return c.Tok }
func (c *CallExpression) expressionNode()       {}

// NewExpression is `new Callee(args...)`.
type NewExpression struct {
	Tok       token.Token
	Span      Span
	Callee    Expression
	Arguments []Expression
}

func (n *NewExpression) GetSpan() Span         { return n.Span }
func (n *NewExpression) GetToken() token.Token { return n.Tok }
func (n *NewExpression) expressionNode()       {}

// MemberExpression is `object.property` or `object[property]`.
type MemberExpression struct {
	Tok      token.Token
	Span     Span
	Object   Expression
	Property Expression // *Identifier when !Computed
	Computed bool
	Optional bool // `object?.property`
}

func (m *MemberExpression) GetSpan() Span         { return m.Span }
func (m *MemberExpression) GetToken() token.Token { return m.Tok }
func (m *MemberExpression) expressionNode()       {}

// BinaryExpression covers arithmetic/comparison/`instanceof` operators.
// `instanceof` is load-bearing for the catch-exhaustiveness decision
// (spec.md §4.3): Operator == "instanceof" && Right resolves to an
// Identifier names the guarded kind.
type BinaryExpression struct {
	Tok      token.Token
	Span     Span
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryExpression) GetSpan() Span         { return b.Span }
func (b *BinaryExpression) GetToken() token.Token { return b.Tok }
func (b *BinaryExpression) expressionNode()       {}

// LogicalExpression covers `&&`, `||`, `??`.
type LogicalExpression struct {
	Tok      token.Token
	Span     Span
	Operator string
	Left     Expression
	Right    Expression
}

func (l *LogicalExpression) GetSpan() Span         { return l.Span }
func (l *LogicalExpression) GetToken() token.Token { return l.Tok }
func (l *LogicalExpression) expressionNode()       {}

// UnaryExpression covers `!x`, `typeof x`, `void x`, `-x`, `delete x`.
type UnaryExpression struct {
	Tok      token.Token
	Span     Span
	Operator string
	Argument Expression
}

func (u *UnaryExpression) GetSpan() Span         { return u.Span }
func (u *UnaryExpression) GetToken() token.Token { return u.Tok }
func (u *UnaryExpression) expressionNode()       {}

// AssignmentExpression is `target op= value`.
type AssignmentExpression struct {
	Tok      token.Token
	Span     Span
	Operator string
	Left     Expression
	Right    Expression
}

func (a *AssignmentExpression) GetSpan() Span         { return a.Span }
func (a *AssignmentExpression) GetToken() token.Token { return a.Tok }
func (a *AssignmentExpression) expressionNode()       {}

// ConditionalExpression is `test ? consequent : alternate`.
type ConditionalExpression struct {
	Tok        token.Token
	Span       Span
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (c *ConditionalExpression) GetSpan() Span         { return c.Span }
func (c *ConditionalExpression) GetToken() token.Token { return c.Tok }
func (c *ConditionalExpression) expressionNode()       {}

// SpreadElement is `...argument` inside call arguments or array/object literals.
type SpreadElement struct {
	Tok      token.Token
	Span     Span
	Argument Expression
}

func (s *SpreadElement) GetSpan() Span         { return s.Span }
func (s *SpreadElement) GetToken() token.Token { return s.Tok }
func (s *SpreadElement) expressionNode()       {}

// SequenceExpression is a comma expression `(a, b, c)`.
type SequenceExpression struct {
	Tok         token.Token
	Span        Span
	Expressions []Expression
}

func (s *SequenceExpression) GetSpan() Span         { return s.Span }
func (s *SequenceExpression) GetToken() token.Token { return s.Tok }
func (s *SequenceExpression) expressionNode()       {}
