// Package parser implements a pragmatic recursive-descent (Pratt)
// parser for a subset of ECMAScript, grounded on funvibe/funxy's own
// parser package: a Parser struct carrying cur/peek tokens plus
// prefix/infix parse-function tables (internal/parser/expressions_core.go),
// split across files by concern the way the teacher splits its own
// parser (statements.go, expressions_*.go, statements_functions.go).
//
// Per SPEC_FULL.md §1, this parser exists only so the module is
// runnable end to end; every analysis pass in internal/analyzer
// consumes its output exclusively through ast.Node/ast.Visitor and
// token.Token spans — the same opaque interface spec.md §1 describes.
package parser

import (
	"fmt"

	"github.com/BLamy/does-it-throw/internal/ast"
	"github.com/BLamy/does-it-throw/internal/diagnostics"
	"github.com/BLamy/does-it-throw/internal/token"
)

const maxRecursionDepth = 200

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(left ast.Expression) ast.Expression
)

// Parser consumes a flat token slice (from lexer.Lexer.All) and
// produces an *ast.Program.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	errors []*diagnostics.ParseError
	depth  int

	exportedNames map[string]bool

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New builds a Parser over a complete token stream (including the
// trailing EOF token lexer.Lexer.All produces).
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.infixParseFns = make(map[token.Type]infixParseFn)
	p.registerExpressionFns()

	// Prime curToken/peekToken.
	p.pos = -1
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []*diagnostics.ParseError { return p.errors }

func (p *Parser) nextToken() {
	p.pos++
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

// tokenAt returns the token offset positions past curToken (0 is
// curToken itself), or EOF past the end (used for arrow/async lookahead).
func (p *Parser) tokenAt(offset int) token.Token {
	idx := p.pos - 1 + offset // curToken lives at p.pos-1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	p.errors = append(p.errors, &diagnostics.ParseError{
		Message: fmt.Sprintf("expected next token to be %s, got %s (%q) instead", t, p.peekToken.Type, p.peekToken.Lexeme),
		Line:    p.peekToken.Line,
		Column:  p.peekToken.Column,
	})
}

func (p *Parser) errorf(tok token.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, &diagnostics.ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	})
}

// skipStatement advances until a likely statement boundary, used to
// recover from a malformed statement without aborting the whole parse
// (spec.md §7 distinguishes "fatal" only for the top-level "parser
// cannot produce an AST at all" case; a single malformed statement inside
// an otherwise well-formed file degrades to a recorded parse error plus
// best-effort recovery, matching the teacher's own skipToStatementBoundary).
func (p *Parser) skipStatement() {
	for !p.curTokenIs(token.SEMI) && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

func (p *Parser) consumeSemiIfPresent() {
	if p.curTokenIs(token.SEMI) {
		p.nextToken()
	}
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	startTok := p.curToken
	prog := &ast.Program{Tok: startTok}
	for !p.curTokenIs(token.EOF) {
		before := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
		if p.pos == before {
			// Guard against an infinite loop on an unrecognized token.
			p.nextToken()
		}
	}
	end := 0
	if len(p.tokens) > 0 {
		end = p.tokens[len(p.tokens)-1].Offset
	}
	prog.Span = ast.Span{Start: startTok.Offset, End: end}
	return prog
}
