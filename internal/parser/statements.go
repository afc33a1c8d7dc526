package parser

import (
	"github.com/BLamy/does-it-throw/internal/ast"
	"github.com/BLamy/does-it-throw/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curTokenIs(token.FUNCTION):
		return p.parseFunctionDeclaration(false)
	case p.curTokenIs(token.IDENT) && p.curToken.Lexeme == "async" && p.peekTokenIs(token.FUNCTION):
		p.nextToken()
		return p.parseFunctionDeclaration(true)
	case p.curTokenIs(token.CLASS):
		return p.parseClassDeclaration()
	case p.curTokenIs(token.CONST), p.curTokenIs(token.LET), p.curTokenIs(token.VAR):
		return p.parseVariableDeclaration()
	case p.curTokenIs(token.RETURN):
		return p.parseReturnStatement()
	case p.curTokenIs(token.IF):
		return p.parseIfStatement()
	case p.curTokenIs(token.TRY):
		return p.parseTryStatement()
	case p.curTokenIs(token.THROW):
		return p.parseThrowStatement()
	case p.curTokenIs(token.IMPORT):
		return p.parseImportDeclaration()
	case p.curTokenIs(token.EXPORT):
		return p.parseExportDeclaration()
	case p.curTokenIs(token.LBRACE):
		return p.parseBlockStatement()
	case p.curTokenIs(token.SEMI):
		p.nextToken()
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok := p.curToken
	start := tok.Offset
	block := &ast.BlockStatement{Tok: tok}
	if !p.curTokenIs(token.LBRACE) {
		p.errorf(p.curToken, "expected '{' to start block")
		return block
	}
	p.nextToken() // consume '{'
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		before := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			block.Body = append(block.Body, stmt)
		}
		if p.pos == before {
			p.nextToken()
		}
	}
	end := p.curToken.EndOffset
	if p.curTokenIs(token.RBRACE) {
		p.nextToken()
	}
	block.Span = ast.Span{Start: start, End: end}
	return block
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	stmt := &ast.ExpressionStatement{Tok: tok, Expression: expr}
	end := p.curToken.Offset
	if expr != nil {
		end = expr.GetSpan().End
	}
	stmt.Span = ast.Span{Start: tok.Offset, End: end}
	p.consumeSemiIfPresent()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken
	stmt := &ast.ReturnStatement{Tok: tok}
	p.nextToken() // consume 'return'
	if !p.curTokenIs(token.SEMI) && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt.Argument = p.parseExpression(LOWEST)
	}
	end := tok.EndOffset
	if stmt.Argument != nil {
		end = stmt.Argument.GetSpan().End
	}
	stmt.Span = ast.Span{Start: tok.Offset, End: end}
	p.consumeSemiIfPresent()
	return stmt
}

func (p *Parser) parseThrowStatement() ast.Statement {
	tok := p.curToken
	stmt := &ast.ThrowStatement{Tok: tok}
	p.nextToken() // consume 'throw'
	stmt.Argument = p.parseExpression(LOWEST)
	end := tok.EndOffset
	if stmt.Argument != nil {
		end = stmt.Argument.GetSpan().End
	}
	stmt.Span = ast.Span{Start: tok.Offset, End: end}
	p.consumeSemiIfPresent()
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.curToken
	stmt := &ast.IfStatement{Tok: tok}
	if !p.expectPeek(token.LPAREN) {
		p.skipStatement()
		return stmt
	}
	p.nextToken() // consume '('
	stmt.Test = p.parseExpression(LOWEST)
	if !p.curTokenIs(token.RPAREN) {
		p.errorf(p.curToken, "expected ')' after if condition, got %s (%q)", p.curToken.Type, p.curToken.Lexeme)
		p.skipStatement()
		return stmt
	}
	p.nextToken() // consume ')'
	stmt.Consequent = p.parseStatement()
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		stmt.Alternate = p.parseStatement()
	}
	end := tok.EndOffset
	if stmt.Alternate != nil {
		end = stmt.Alternate.GetSpan().End
	} else if stmt.Consequent != nil {
		end = stmt.Consequent.GetSpan().End
	}
	stmt.Span = ast.Span{Start: tok.Offset, End: end}
	return stmt
}

// parseTryStatement implements spec.md §4.3's TryFrame source: a
// required block, an optional single catch clause, and an optional
// finally block that is parsed (for source fidelity) but never
// inspected for throws (Non-goals: "does not model `finally`").
func (p *Parser) parseTryStatement() ast.Statement {
	tok := p.curToken
	stmt := &ast.TryStatement{Tok: tok}
	if !p.expectPeek(token.LBRACE) {
		p.skipStatement()
		return stmt
	}
	stmt.Block = p.parseBlockStatement()

	if p.curTokenIs(token.CATCH) {
		catchTok := p.curToken
		clause := &ast.CatchClause{Tok: catchTok}
		p.nextToken() // consume 'catch'
		if p.curTokenIs(token.LPAREN) {
			p.nextToken() // consume '('
			if p.curTokenIs(token.IDENT) {
				clause.Param = &ast.Identifier{Tok: p.curToken, Span: ast.Span{Start: p.curToken.Offset, End: p.curToken.EndOffset}, Name: p.curToken.Lexeme}
				p.nextToken()
			}
			if p.curTokenIs(token.RPAREN) {
				p.nextToken() // consume ')'
			}
		}
		clause.Body = p.parseBlockStatement()
		clause.Span = ast.Span{Start: catchTok.Offset, End: clause.Body.GetSpan().End}
		stmt.Handler = clause
	}

	if p.curTokenIs(token.FINALLY) {
		p.nextToken() // consume 'finally'
		stmt.Finalizer = p.parseBlockStatement()
	}

	end := stmt.Block.GetSpan().End
	if stmt.Finalizer != nil {
		end = stmt.Finalizer.GetSpan().End
	} else if stmt.Handler != nil {
		end = stmt.Handler.Body.GetSpan().End
	}
	stmt.Span = ast.Span{Start: tok.Offset, End: end}
	return stmt
}

func (p *Parser) parseVariableDeclaration() ast.Statement {
	tok := p.curToken
	decl := &ast.VariableDeclaration{Tok: tok, Kind: tok.Lexeme}
	p.nextToken() // consume const/let/var
	for {
		d := p.parseVariableDeclarator()
		if d != nil {
			decl.Declarations = append(decl.Declarations, d)
		}
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	end := tok.EndOffset
	if n := len(decl.Declarations); n > 0 {
		end = decl.Declarations[n-1].GetSpan().End
	}
	decl.Span = ast.Span{Start: tok.Offset, End: end}
	p.consumeSemiIfPresent()
	return decl
}

func (p *Parser) parseVariableDeclarator() *ast.VariableDeclarator {
	tok := p.curToken
	d := &ast.VariableDeclarator{Tok: tok}
	d.ID = p.parseBindingTarget()
	if p.curTokenIs(token.ASSIGN) {
		p.nextToken() // consume '='
		d.Init = p.parseExpression(ASSIGNPREC)
	}
	end := tok.EndOffset
	if d.Init != nil {
		end = d.Init.GetSpan().End
	} else if d.ID != nil {
		end = d.ID.GetSpan().End
	}
	d.Span = ast.Span{Start: tok.Offset, End: end}
	return d
}

// parseBindingTarget parses a simple identifier binding, or — for
// destructuring patterns this pragmatic subset does not model in
// detail — skips a balanced {...}/[...] group and yields a synthetic
// identifier so the enumerator falls back to its "<anonymous@…>" rule
// (spec.md §4.1: "destructuring or computed targets produce <anonymous@…>").
func (p *Parser) parseBindingTarget() ast.Expression {
	tok := p.curToken
	if p.curTokenIs(token.IDENT) {
		id := &ast.Identifier{Tok: tok, Span: ast.Span{Start: tok.Offset, End: tok.EndOffset}, Name: tok.Lexeme}
		p.nextToken()
		return id
	}
	if p.curTokenIs(token.LBRACE) || p.curTokenIs(token.LBRACKET) {
		p.skipBalanced()
		return nil
	}
	p.nextToken()
	return nil
}

func (p *Parser) skipBalanced() {
	open := p.curToken.Type
	close_ := token.RBRACE
	if open == token.LBRACKET {
		close_ = token.RBRACKET
	}
	depth := 0
	for {
		if p.curTokenIs(open) {
			depth++
		} else if p.curTokenIs(close_) {
			depth--
			if depth == 0 {
				p.nextToken()
				return
			}
		} else if p.curTokenIs(token.EOF) {
			return
		}
		p.nextToken()
	}
}

// parseImportDeclaration handles the import forms spec.md §6 needs:
// default, named, namespace, and bare imports, recording only the
// relative-path Source specifier (no resolution — spec.md §6).
func (p *Parser) parseImportDeclaration() ast.Statement {
	tok := p.curToken
	decl := &ast.ImportDeclaration{Tok: tok}
	p.nextToken() // consume 'import'

	if p.curTokenIs(token.STRING) {
		decl.Source = p.curToken.Lexeme
		end := p.curToken.EndOffset
		p.nextToken()
		decl.Span = ast.Span{Start: tok.Offset, End: end}
		p.consumeSemiIfPresent()
		return decl
	}

	for !p.curTokenIs(token.FROM) && !p.curTokenIs(token.SEMI) && !p.curTokenIs(token.EOF) {
		switch {
		case p.curTokenIs(token.IDENT):
			local := p.curToken.Lexeme
			imported := "default"
			p.nextToken()
			decl.Specifiers = append(decl.Specifiers, ast.ImportSpecifier{Imported: imported, Local: local})
		case p.curTokenIs(token.STAR):
			p.nextToken()
			local := ""
			if p.curTokenIs(token.AS) {
				p.nextToken()
				if p.curTokenIs(token.IDENT) {
					local = p.curToken.Lexeme
					p.nextToken()
				}
			}
			decl.Specifiers = append(decl.Specifiers, ast.ImportSpecifier{Imported: "*", Local: local})
		case p.curTokenIs(token.LBRACE):
			p.nextToken()
			for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
				if p.curTokenIs(token.IDENT) {
					imported := p.curToken.Lexeme
					local := imported
					p.nextToken()
					if p.curTokenIs(token.AS) {
						p.nextToken()
						if p.curTokenIs(token.IDENT) {
							local = p.curToken.Lexeme
							p.nextToken()
						}
					}
					decl.Specifiers = append(decl.Specifiers, ast.ImportSpecifier{Imported: imported, Local: local})
				}
				if p.curTokenIs(token.COMMA) {
					p.nextToken()
				}
			}
			if p.curTokenIs(token.RBRACE) {
				p.nextToken()
			}
		case p.curTokenIs(token.COMMA):
			p.nextToken()
		default:
			p.nextToken()
		}
	}

	if p.curTokenIs(token.FROM) {
		p.nextToken()
		if p.curTokenIs(token.STRING) {
			decl.Source = p.curToken.Lexeme
			p.nextToken()
		}
	}
	end := p.curToken.Offset
	decl.Span = ast.Span{Start: tok.Offset, End: end}
	p.consumeSemiIfPresent()
	return decl
}

// parseExportDeclaration treats `export` as transparent to the grammar
// but records which top-level names it exposes, feeding the Cross-File
// Bridge's "exported Callable" rule (spec.md §4.6).
func (p *Parser) parseExportDeclaration() ast.Statement {
	p.nextToken() // consume 'export'
	isDefault := false
	if p.curTokenIs(token.DEFAULT) {
		isDefault = true
		p.nextToken()
	}

	if p.curTokenIs(token.LBRACE) {
		p.nextToken()
		for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
			if p.curTokenIs(token.IDENT) {
				name := p.curToken.Lexeme
				p.nextToken()
				if p.curTokenIs(token.AS) {
					p.nextToken()
					if p.curTokenIs(token.IDENT) {
						p.nextToken()
					}
				}
				p.markExported(name)
			}
			if p.curTokenIs(token.COMMA) {
				p.nextToken()
			}
		}
		if p.curTokenIs(token.RBRACE) {
			p.nextToken()
		}
		if p.curTokenIs(token.FROM) {
			p.nextToken()
			if p.curTokenIs(token.STRING) {
				p.nextToken()
			}
		}
		p.consumeSemiIfPresent()
		return nil
	}

	stmt := p.parseStatement()
	switch s := stmt.(type) {
	case *ast.FunctionDeclaration:
		if s.Name != nil {
			p.markExported(s.Name.Name)
		} else if isDefault {
			p.markExported("default")
		}
	case *ast.ClassDeclaration:
		if s.Name != nil {
			p.markExported(s.Name.Name)
		} else if isDefault {
			p.markExported("default")
		}
	case *ast.VariableDeclaration:
		for _, d := range s.Declarations {
			if id, ok := d.ID.(*ast.Identifier); ok {
				p.markExported(id.Name)
			}
		}
	default:
		if isDefault {
			p.markExported("default")
		}
	}
	return stmt
}

func (p *Parser) markExported(name string) {
	if p.exportedNames == nil {
		p.exportedNames = make(map[string]bool)
	}
	p.exportedNames[name] = true
}

// ExportedNames returns every top-level name observed behind an
// `export` keyword during parsing.
func (p *Parser) ExportedNames() map[string]bool { return p.exportedNames }
