package ast

import "github.com/BLamy/does-it-throw/internal/token"

// Program is the root node of one parsed source unit.
type Program struct {
	Tok  token.Token
	Span Span
	Body []Statement
}

func (p *Program) GetSpan() Span        { return p.Span }
func (p *Program) GetToken() token.Token { return p.Tok }

// BlockStatement is a `{ ... }` statement list.
type BlockStatement struct {
	Tok  token.Token
	Span Span
	Body []Statement
}

func (b *BlockStatement) GetSpan() Span         { return b.Span }
func (b *BlockStatement) GetToken() token.Token { return b.Tok }
func (b *BlockStatement) statementNode()        {}

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Tok        token.Token
	Span       Span
	Expression Expression
}

func (e *ExpressionStatement) GetSpan() Span         { return e.Span }
func (e *ExpressionStatement) GetToken() token.Token { return e.Tok }
func (e *ExpressionStatement) statementNode()        {}

// ReturnStatement is `return [argument];`.
type ReturnStatement struct {
	Tok      token.Token
	Span     Span
	Argument Expression // nil for a bare `return;`
}

func (r *ReturnStatement) GetSpan() Span         { return r.Span }
func (r *ReturnStatement) GetToken() token.Token { return r.Tok }
func (r *ReturnStatement) statementNode()        {}

// ThrowStatement is `throw argument;` — a RaiseSite candidate (spec.md §4.2).
type ThrowStatement struct {
	Tok      token.Token
	Span     Span
	Argument Expression
}

func (t *ThrowStatement) GetSpan() Span         { return t.Span }
func (t *ThrowStatement) GetToken() token.Token { return t.Tok }
func (t *ThrowStatement) statementNode()        {}

// IfStatement is `if (test) consequent [else alternate]`.
type IfStatement struct {
	Tok         token.Token
	Span        Span
	Test        Expression
	Consequent  Statement
	Alternate   Statement // nil if no else branch
}

func (i *IfStatement) GetSpan() Span         { return i.Span }
func (i *IfStatement) GetToken() token.Token { return i.Tok }
func (i *IfStatement) statementNode()        {}

// TryStatement is `try { } catch (e) { } finally { }` (spec.md §3 TryFrame source).
type TryStatement struct {
	Tok       token.Token
	Span      Span
	Block     *BlockStatement
	Handler   *CatchClause // nil if no catch
	Finalizer *BlockStatement // nil if no finally; never treated as a throw source (Non-goals)
}

func (t *TryStatement) GetSpan() Span         { return t.Span }
func (t *TryStatement) GetToken() token.Token { return t.Tok }
func (t *TryStatement) statementNode()        {}

// CatchClause is the `catch (param) { body }` handler of a TryStatement.
type CatchClause struct {
	Tok   token.Token
	Span  Span
	Param *Identifier // nil for a parameter-less `catch { }`
	Body  *BlockStatement
}

func (c *CatchClause) GetSpan() Span         { return c.Span }
func (c *CatchClause) GetToken() token.Token { return c.Tok }

// VariableDeclarator binds a single name to an optional initializer.
type VariableDeclarator struct {
	Tok  token.Token
	Span Span
	ID   Expression // *Identifier for simple bindings; other Expression for destructuring patterns
	Init Expression // nil if uninitialized
}

func (d *VariableDeclarator) GetSpan() Span         { return d.Span }
func (d *VariableDeclarator) GetToken() token.Token { return d.Tok }

// VariableDeclaration is `const|let|var decl[, decl...];`.
type VariableDeclaration struct {
	Tok          token.Token
	Span         Span
	Kind         string // "const", "let", or "var"
	Declarations []*VariableDeclarator
}

func (v *VariableDeclaration) GetSpan() Span         { return v.Span }
func (v *VariableDeclaration) GetToken() token.Token { return v.Tok }
func (v *VariableDeclaration) statementNode()        {}

// FunctionDeclaration is `function name(params) { body }`.
type FunctionDeclaration struct {
	Tok    token.Token
	Span   Span
	Name   *Identifier // nil for an (illegal at statement level, but tolerated) anonymous function
	Params []Expression
	Body   *BlockStatement
	Async  bool
}

func (f *FunctionDeclaration) GetSpan() Span         { return f.Span }
func (f *FunctionDeclaration) GetToken() token.Token { return f.Tok }
func (f *FunctionDeclaration) statementNode()        {}

// ImportDeclaration is `import ... from "specifier";`. Per spec.md §6,
// only the relative-path specifier is surfaced (no resolution).
type ImportDeclaration struct {
	Tok        token.Token
	Span       Span
	Specifiers []ImportSpecifier
	Source     string // the raw string literal value, e.g. "./util"
}

func (i *ImportDeclaration) GetSpan() Span         { return i.Span }
func (i *ImportDeclaration) GetToken() token.Token { return i.Tok }
func (i *ImportDeclaration) statementNode()        {}

// ImportSpecifier is one imported binding, e.g. `{ foo as bar }` or a
// default/namespace import.
type ImportSpecifier struct {
	Imported string // name in the source module ("default" for a default import)
	Local    string // local binding name
}

// ClassDeclaration is `class Name [extends Super] { body }`.
type ClassDeclaration struct {
	Tok        token.Token
	Span       Span
	Name       *Identifier // nil for an anonymous class expression
	SuperClass Expression  // nil if no `extends`
	Body       []Node      // *MethodDefinition or *PropertyDefinition
}

func (c *ClassDeclaration) GetSpan() Span         { return c.Span }
func (c *ClassDeclaration) GetToken() token.Token { return c.Tok }
func (c *ClassDeclaration) statementNode()        {}
func (c *ClassDeclaration) expressionNode()       {} // a class may also appear in expression position

// MethodKind distinguishes how a class member was declared.
type MethodKind int

const (
	MethodKindMethod MethodKind = iota
	MethodKindConstructor
	MethodKindGet
	MethodKindSet
)

// MethodDefinition is one `[static] [get|set] name(...) { ... }` class member.
type MethodDefinition struct {
	Tok      token.Token
	Span     Span
	Key      Expression // usually *Identifier
	Computed bool
	Static   bool
	Kind     MethodKind
	Value    *FunctionExpression
}

func (m *MethodDefinition) GetSpan() Span         { return m.Span }
func (m *MethodDefinition) GetToken() token.Token { return m.Tok }

// PropertyDefinition is a class field, `[static] name [= value];`. Only
// relevant to this analyzer when Value is itself a function/arrow
// expression, in which case it is an object-literal-style Callable
// with kind object-literal-method (spec.md §4.1 treats class-field
// arrow functions the same way it treats object-literal properties).
type PropertyDefinition struct {
	Tok      token.Token
	Span     Span
	Key      Expression
	Computed bool
	Static   bool
	Value    Expression // nil if uninitialized
}

func (p *PropertyDefinition) GetSpan() Span         { return p.Span }
func (p *PropertyDefinition) GetToken() token.Token { return p.Tok }
