package parser

import (
	"github.com/BLamy/does-it-throw/internal/ast"
	"github.com/BLamy/does-it-throw/internal/token"
)

func (p *Parser) parseClassDeclaration() ast.Statement {
	tok := p.curToken
	cls := &ast.ClassDeclaration{Tok: tok}
	p.nextToken() // consume 'class'
	if p.curTokenIs(token.IDENT) {
		cls.Name = &ast.Identifier{Tok: p.curToken, Span: ast.Span{Start: p.curToken.Offset, End: p.curToken.EndOffset}, Name: p.curToken.Lexeme}
		p.nextToken()
	}
	if p.curTokenIs(token.EXTENDS) {
		p.nextToken()
		cls.SuperClass = p.parseExpression(CALLPREC)
	}
	if !p.curTokenIs(token.LBRACE) {
		p.errorf(p.curToken, "expected '{' to start class body")
		return cls
	}
	p.nextToken() // consume '{'
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMI) {
			p.nextToken()
			continue
		}
		member := p.parseClassMember()
		if member != nil {
			cls.Body = append(cls.Body, member)
		}
	}
	end := p.curToken.EndOffset
	if p.curTokenIs(token.RBRACE) {
		p.nextToken()
	}
	cls.Span = ast.Span{Start: tok.Offset, End: end}
	return cls
}

// parseClassMember parses one method, accessor, constructor, or field
// (spec.md §4.1: "class C { NAME() {...} }" / "get NAME()"/"set NAME()").
func (p *Parser) parseClassMember() ast.Node {
	tok := p.curToken
	static := false
	if p.curTokenIs(token.IDENT) && p.curToken.Lexeme == "static" && !p.nextIsMemberTerminator() {
		static = true
		p.nextToken()
	}
	async := false
	if p.curTokenIs(token.IDENT) && p.curToken.Lexeme == "async" && !p.nextIsMemberTerminator() {
		async = true
		p.nextToken()
	}
	kind := ast.MethodKindMethod
	if p.curTokenIs(token.IDENT) && p.curToken.Lexeme == "get" && p.peekIsPropertyKeyStart() {
		kind = ast.MethodKindGet
		p.nextToken()
	} else if p.curTokenIs(token.IDENT) && p.curToken.Lexeme == "set" && p.peekIsPropertyKeyStart() {
		kind = ast.MethodKindSet
		p.nextToken()
	}

	computed := false
	var key ast.Expression
	if p.curTokenIs(token.LBRACKET) {
		computed = true
		p.nextToken()
		key = p.parseExpression(LOWEST)
		if p.curTokenIs(token.RBRACKET) {
			p.nextToken()
		}
	} else {
		key = &ast.Identifier{Tok: p.curToken, Span: ast.Span{Start: p.curToken.Offset, End: p.curToken.EndOffset}, Name: p.curToken.Lexeme}
		p.nextToken()
	}

	if p.curTokenIs(token.LPAREN) {
		if id, ok := key.(*ast.Identifier); ok && id.Name == "constructor" {
			kind = ast.MethodKindConstructor
		}
		fnTok := tok
		value := &ast.FunctionExpression{Tok: fnTok, Async: async}
		value.Params = p.parseParamList()
		value.Body = p.parseBlockStatement()
		value.Span = ast.Span{Start: fnTok.Offset, End: value.Body.GetSpan().End}
		return &ast.MethodDefinition{
			Tok: tok, Span: ast.Span{Start: tok.Offset, End: value.Span.End},
			Key: key, Computed: computed, Static: static, Kind: kind, Value: value,
		}
	}

	// Class field: `key [= value];`
	field := &ast.PropertyDefinition{Tok: tok, Key: key, Computed: computed, Static: static}
	if p.curTokenIs(token.ASSIGN) {
		p.nextToken()
		field.Value = p.parseExpression(ASSIGNPREC)
	}
	end := tok.EndOffset
	if field.Value != nil {
		end = field.Value.GetSpan().End
	}
	field.Span = ast.Span{Start: tok.Offset, End: end}
	p.consumeSemiIfPresent()
	return field
}

// nextIsMemberTerminator reports whether the token after curToken
// starts a call/assignment, meaning curToken ("static"/"async"/"get"/
// "set") is itself the member name rather than a modifier keyword.
func (p *Parser) nextIsMemberTerminator() bool {
	switch p.peekToken.Type {
	case token.LPAREN, token.ASSIGN, token.SEMI, token.RBRACE:
		return true
	default:
		return false
	}
}

func (p *Parser) peekIsPropertyKeyStart() bool {
	switch p.peekToken.Type {
	case token.IDENT, token.LBRACKET, token.STRING:
		return true
	default:
		return false
	}
}
