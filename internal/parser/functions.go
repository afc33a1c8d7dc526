package parser

import (
	"github.com/BLamy/does-it-throw/internal/ast"
	"github.com/BLamy/does-it-throw/internal/token"
)

func (p *Parser) parseFunctionDeclaration(async bool) ast.Statement {
	tok := p.curToken
	fn := &ast.FunctionDeclaration{Tok: tok, Async: async}
	p.nextToken() // consume 'function'
	if p.curTokenIs(token.IDENT) {
		fn.Name = &ast.Identifier{Tok: p.curToken, Span: ast.Span{Start: p.curToken.Offset, End: p.curToken.EndOffset}, Name: p.curToken.Lexeme}
		p.nextToken()
	}
	fn.Params = p.parseParamList()
	fn.Body = p.parseBlockStatement()
	fn.Span = ast.Span{Start: tok.Offset, End: fn.Body.GetSpan().End}
	return fn
}

func (p *Parser) parseFunctionExpression(async bool) ast.Expression {
	tok := p.curToken
	fn := &ast.FunctionExpression{Tok: tok, Async: async}
	p.nextToken() // consume 'function'
	if p.curTokenIs(token.IDENT) {
		fn.Name = &ast.Identifier{Tok: p.curToken, Span: ast.Span{Start: p.curToken.Offset, End: p.curToken.EndOffset}, Name: p.curToken.Lexeme}
		p.nextToken()
	}
	fn.Params = p.parseParamList()
	fn.Body = p.parseBlockStatement()
	fn.Span = ast.Span{Start: tok.Offset, End: fn.Body.GetSpan().End}
	return fn
}

// parseParamList parses `(p1, p2 = default, ...rest)`, expecting
// curToken to be LPAREN on entry and leaving curToken one past RPAREN.
// Individual parameter targets are simplified to identifiers or
// skipped destructuring groups (see parseBindingTarget); default
// values and rest markers are consumed but not retained, since no
// analysis pass in this spec needs them.
func (p *Parser) parseParamList() []ast.Expression {
	var params []ast.Expression
	if !p.curTokenIs(token.LPAREN) {
		return params
	}
	p.nextToken() // consume '('
	for !p.curTokenIs(token.RPAREN) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.DOTDOTDOT) {
			p.nextToken()
		}
		target := p.parseBindingTarget()
		if target != nil {
			params = append(params, target)
		}
		if p.curTokenIs(token.ASSIGN) {
			p.nextToken()
			p.parseExpression(ASSIGNPREC)
		}
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if p.curTokenIs(token.RPAREN) {
		p.nextToken()
	}
	return params
}

// parseArrowBody parses either a `{ ... }` block body or a concise
// expression body (spec.md's ArrowFunctionExpression.Body union).
func (p *Parser) parseArrowBody() ast.Node {
	if p.curTokenIs(token.LBRACE) {
		return p.parseBlockStatement()
	}
	return p.parseExpression(ASSIGNPREC)
}
