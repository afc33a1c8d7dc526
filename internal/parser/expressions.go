package parser

import (
	"github.com/BLamy/does-it-throw/internal/ast"
	"github.com/BLamy/does-it-throw/internal/token"
)

// Precedence levels, low to high — the same precedence-climbing shape
// funvibe/funxy's own expressions_core.go uses (a LOWEST..CALL int
// ladder driving a Pratt loop), sized for this subset's operator set.
const (
	LOWEST = iota
	SEQUENCEPREC
	ASSIGNPREC
	TERNARYPREC
	NULLISHPREC
	LOGICALORPREC
	LOGICALANDPREC
	EQUALITYPREC
	RELATIONALPREC
	ADDITIVEPREC
	MULTIPLICATIVEPREC
	UNARYPREC
	CALLPREC
	MEMBERPREC
)

var precedences = map[token.Type]int{
	token.COMMA:            SEQUENCEPREC,
	token.ASSIGN:           ASSIGNPREC,
	token.QUESTION:         TERNARYPREC,
	token.QUESTIONQUESTION: NULLISHPREC,
	token.PIPEPIPE:         LOGICALORPREC,
	token.AMPAMP:           LOGICALANDPREC,
	token.EQ:               EQUALITYPREC,
	token.NEQ:              EQUALITYPREC,
	token.SEQ:               EQUALITYPREC,
	token.SNEQ:              EQUALITYPREC,
	token.LT:                RELATIONALPREC,
	token.GT:                RELATIONALPREC,
	token.LTE:               RELATIONALPREC,
	token.GTE:               RELATIONALPREC,
	token.INSTANCEOF:        RELATIONALPREC,
	token.IN:                RELATIONALPREC,
	token.PLUS:              ADDITIVEPREC,
	token.MINUS:             ADDITIVEPREC,
	token.STAR:              MULTIPLICATIVEPREC,
	token.SLASH:             MULTIPLICATIVEPREC,
	token.PERCENT:           MULTIPLICATIVEPREC,
	token.LPAREN:            CALLPREC,
	token.DOT:               MEMBERPREC,
	token.OPTIONAL_CHAIN:    MEMBERPREC,
	token.LBRACKET:          MEMBERPREC,
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) registerExpressionFns() {
	p.prefixParseFns[token.IDENT] = p.parseIdentifierOrArrow
	p.prefixParseFns[token.THIS] = p.parseThisExpression
	p.prefixParseFns[token.NUMBER] = p.parseNumericLiteral
	p.prefixParseFns[token.STRING] = p.parseStringLiteral
	p.prefixParseFns[token.TEMPLATE] = p.parseTemplateLiteral
	p.prefixParseFns[token.TRUE] = p.parseBooleanLiteral
	p.prefixParseFns[token.FALSE] = p.parseBooleanLiteral
	p.prefixParseFns[token.NULL] = p.parseNullLiteral
	p.prefixParseFns[token.UNDEFINED] = p.parseUndefinedLiteral
	p.prefixParseFns[token.LPAREN] = p.parseParenOrArrow
	p.prefixParseFns[token.FUNCTION] = func() ast.Expression { return p.parseFunctionExpression(false) }
	p.prefixParseFns[token.CLASS] = p.parseClassExpression
	p.prefixParseFns[token.NEW] = p.parseNewExpression
	p.prefixParseFns[token.LBRACKET] = p.parseArrayExpression
	p.prefixParseFns[token.LBRACE] = p.parseObjectExpression
	p.prefixParseFns[token.BANG] = p.parseUnaryExpression
	p.prefixParseFns[token.MINUS] = p.parseUnaryExpression
	p.prefixParseFns[token.PLUS] = p.parseUnaryExpression
	p.prefixParseFns[token.TYPEOF] = p.parseUnaryExpression
	p.prefixParseFns[token.VOID] = p.parseUnaryExpression
	p.prefixParseFns[token.DELETE] = p.parseUnaryExpression

	p.infixParseFns[token.DOT] = p.parseMemberExpression
	p.infixParseFns[token.OPTIONAL_CHAIN] = p.parseOptionalMemberExpression
	p.infixParseFns[token.LBRACKET] = p.parseComputedMemberExpression
	p.infixParseFns[token.LPAREN] = p.parseCallExpression
	p.infixParseFns[token.ASSIGN] = p.parseAssignmentExpression
	p.infixParseFns[token.QUESTION] = p.parseConditionalExpression
	for _, t := range []token.Type{token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NEQ, token.SEQ, token.SNEQ, token.LT, token.GT, token.LTE, token.GTE,
		token.INSTANCEOF, token.IN} {
		p.infixParseFns[t] = p.parseBinaryExpression
	}
	for _, t := range []token.Type{token.AMPAMP, token.PIPEPIPE, token.QUESTIONQUESTION} {
		p.infixParseFns[t] = p.parseLogicalExpression
	}
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxRecursionDepth {
		p.errorf(p.curToken, "expression too deeply nested")
		p.skipStatement()
		return nil
	}

	if p.curTokenIs(token.IDENT) && p.curToken.Lexeme == "async" {
		if la, ok := p.tryParseAsyncArrow(); ok {
			return p.continueInfix(la, precedence)
		}
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken, "unexpected token %s (%q) in expression", p.curToken.Type, p.curToken.Lexeme)
		p.nextToken()
		return nil
	}
	left := prefix()
	return p.continueInfix(left, precedence)
}

func (p *Parser) continueInfix(left ast.Expression, precedence int) ast.Expression {
	for !p.curTokenIs(token.SEMI) {
		if prec, ok := precedences[p.curToken.Type]; !ok || precedence >= prec {
			return left
		}
		infix := p.infixParseFns[p.curToken.Type]
		if infix == nil {
			return left
		}
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parseIdentifierOrArrow() ast.Expression {
	tok := p.curToken
	id := &ast.Identifier{Tok: tok, Span: ast.Span{Start: tok.Offset, End: tok.EndOffset}, Name: tok.Lexeme}
	if p.peekTokenIs(token.ARROW) {
		p.nextToken() // move to '=>'
		p.nextToken() // consume '=>'
		arrow := &ast.ArrowFunctionExpression{Tok: tok, Params: []ast.Expression{id}}
		arrow.Body = p.parseArrowBody()
		arrow.Span = ast.Span{Start: tok.Offset, End: bodyEnd(arrow.Body, tok)}
		return arrow
	}
	p.nextToken()
	return id
}

func (p *Parser) tryParseAsyncArrow() (ast.Expression, bool) {
	tok := p.curToken
	// `async (` ... `) =>` or `async ident =>`
	if p.peekToken.Type == token.LPAREN {
		closeIdx, ok := p.matchingParenIndexFrom(p.pos) // peek token index
		if !ok || !p.tokenIsArrowAt(closeIdx+1) {
			return nil, false
		}
		p.nextToken() // consume 'async', cur == '('
		arrow := &ast.ArrowFunctionExpression{Tok: tok, Async: true}
		arrow.Params = p.parseParamList()
		if p.curTokenIs(token.ARROW) {
			p.nextToken()
		}
		arrow.Body = p.parseArrowBody()
		arrow.Span = ast.Span{Start: tok.Offset, End: bodyEnd(arrow.Body, tok)}
		return arrow, true
	}
	if p.peekToken.Type == token.IDENT {
		// async ident =>
		if p.tokenAtAbs(p.pos+1).Type == token.ARROW {
			p.nextToken() // consume 'async', cur == ident
			param := &ast.Identifier{Tok: p.curToken, Span: ast.Span{Start: p.curToken.Offset, End: p.curToken.EndOffset}, Name: p.curToken.Lexeme}
			p.nextToken() // consume ident
			p.nextToken() // consume '=>'
			arrow := &ast.ArrowFunctionExpression{Tok: tok, Async: true, Params: []ast.Expression{param}}
			arrow.Body = p.parseArrowBody()
			arrow.Span = ast.Span{Start: tok.Offset, End: bodyEnd(arrow.Body, tok)}
			return arrow, true
		}
	}
	if p.peekToken.Type == token.FUNCTION {
		p.nextToken() // consume 'async', cur == 'function'
		return p.parseFunctionExpression(true), true
	}
	return nil, false
}

func bodyEnd(body ast.Node, fallback token.Token) int {
	if body != nil {
		return body.GetSpan().End
	}
	return fallback.EndOffset
}

// matchingParenIndexFrom returns the absolute token index of the RPAREN
// matching the LPAREN at absolute index idx (p.tokens[idx] must be LPAREN).
func (p *Parser) matchingParenIndexFrom(idx int) (int, bool) {
	if idx >= len(p.tokens) || p.tokens[idx].Type != token.LPAREN {
		return 0, false
	}
	depth := 0
	for i := idx; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
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

func (p *Parser) tokenIsArrowAt(idx int) bool {
	return p.tokenAtAbs(idx).Type == token.ARROW
}

func (p *Parser) tokenAtAbs(idx int) token.Token {
	if idx < 0 || idx >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[idx]
}

// parseParenOrArrow disambiguates `(expr)` from `(params) => body` by
// scanning ahead to the matching ')' and checking for a following '=>'
// — the whole token slice is already materialized (lexer.Lexer.All),
// so this lookahead is plain index arithmetic, no lexer state to save.
func (p *Parser) parseParenOrArrow() ast.Expression {
	tok := p.curToken
	closeIdx, ok := p.matchingParenIndexFrom(p.pos - 1)
	if ok && p.tokenIsArrowAt(closeIdx+1) {
		arrow := &ast.ArrowFunctionExpression{Tok: tok}
		arrow.Params = p.parseParamList()
		if p.curTokenIs(token.ARROW) {
			p.nextToken()
		}
		arrow.Body = p.parseArrowBody()
		arrow.Span = ast.Span{Start: tok.Offset, End: bodyEnd(arrow.Body, tok)}
		return arrow
	}

	p.nextToken() // consume '('
	expr := p.parseExpression(LOWEST)
	if p.curTokenIs(token.RPAREN) {
		p.nextToken()
	}
	return expr
}

func (p *Parser) parseThisExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.ThisExpression{Tok: tok, Span: ast.Span{Start: tok.Offset, End: tok.EndOffset}}
}

func (p *Parser) parseNumericLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.NumericLiteral{Tok: tok, Span: ast.Span{Start: tok.Offset, End: tok.EndOffset}, Value: tok.Lexeme}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.StringLiteral{Tok: tok, Span: ast.Span{Start: tok.Offset, End: tok.EndOffset}, Value: tok.Lexeme}
}

func (p *Parser) parseTemplateLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.TemplateLiteral{Tok: tok, Span: ast.Span{Start: tok.Offset, End: tok.EndOffset}, Raw: tok.Lexeme}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.BooleanLiteral{Tok: tok, Span: ast.Span{Start: tok.Offset, End: tok.EndOffset}, Value: tok.Type == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.NullLiteral{Tok: tok, Span: ast.Span{Start: tok.Offset, End: tok.EndOffset}}
}

func (p *Parser) parseUndefinedLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.UndefinedLiteral{Tok: tok, Span: ast.Span{Start: tok.Offset, End: tok.EndOffset}}
}

func (p *Parser) parseClassExpression() ast.Expression {
	stmt := p.parseClassDeclaration()
	if cls, ok := stmt.(*ast.ClassDeclaration); ok {
		return cls
	}
	return nil
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.curToken
	p.nextToken() // consume 'new'
	callee := p.parseExpression(MEMBERPREC)
	n := &ast.NewExpression{Tok: tok, Callee: callee}
	if p.curTokenIs(token.LPAREN) {
		n.Arguments = p.parseArgumentList()
	}
	end := tok.EndOffset
	if callee != nil {
		end = callee.GetSpan().End
	}
	if len(n.Arguments) > 0 {
		end = n.Arguments[len(n.Arguments)-1].GetSpan().End
	}
	n.Span = ast.Span{Start: tok.Offset, End: end}
	return n
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.curToken
	op := tok.Lexeme
	p.nextToken()
	arg := p.parseExpression(UNARYPREC)
	end := tok.EndOffset
	if arg != nil {
		end = arg.GetSpan().End
	}
	return &ast.UnaryExpression{Tok: tok, Span: ast.Span{Start: tok.Offset, End: end}, Operator: op, Argument: arg}
}

func (p *Parser) parseArrayExpression() ast.Expression {
	tok := p.curToken
	arr := &ast.ArrayExpression{Tok: tok}
	p.nextToken() // consume '['
	for !p.curTokenIs(token.RBRACKET) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.DOTDOTDOT) {
			spreadTok := p.curToken
			p.nextToken()
			arg := p.parseExpression(ASSIGNPREC)
			arr.Elements = append(arr.Elements, &ast.SpreadElement{Tok: spreadTok, Argument: arg})
		} else {
			arr.Elements = append(arr.Elements, p.parseExpression(ASSIGNPREC))
		}
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	end := p.curToken.EndOffset
	if p.curTokenIs(token.RBRACKET) {
		p.nextToken()
	}
	arr.Span = ast.Span{Start: tok.Offset, End: end}
	return arr
}

// parseObjectExpression implements spec.md §4.1's object-literal
// Callable source: `{ method() {}, get x() {}, key: value }`.
func (p *Parser) parseObjectExpression() ast.Expression {
	tok := p.curToken
	obj := &ast.ObjectExpression{Tok: tok}
	p.nextToken() // consume '{'
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		prop := p.parseObjectProperty()
		if prop != nil {
			obj.Properties = append(obj.Properties, prop)
		}
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	end := p.curToken.EndOffset
	if p.curTokenIs(token.RBRACE) {
		p.nextToken()
	}
	obj.Span = ast.Span{Start: tok.Offset, End: end}
	return obj
}

func (p *Parser) parseObjectProperty() *ast.Property {
	tok := p.curToken
	async := false
	if p.curTokenIs(token.IDENT) && p.curToken.Lexeme == "async" && !p.nextPropTerminator() {
		async = true
		p.nextToken()
	}
	kind := ast.PropertyKindInit
	if p.curTokenIs(token.IDENT) && p.curToken.Lexeme == "get" && p.peekIsPropertyKeyStart() {
		kind = ast.PropertyKindGet
		p.nextToken()
	} else if p.curTokenIs(token.IDENT) && p.curToken.Lexeme == "set" && p.peekIsPropertyKeyStart() {
		kind = ast.PropertyKindSet
		p.nextToken()
	}

	if p.curTokenIs(token.DOTDOTDOT) {
		p.nextToken()
		arg := p.parseExpression(ASSIGNPREC)
		end := tok.EndOffset
		if arg != nil {
			end = arg.GetSpan().End
		}
		return &ast.Property{Tok: tok, Span: ast.Span{Start: tok.Offset, End: end}, Key: nil, Value: arg, Kind: kind}
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
	} else if p.curTokenIs(token.STRING) || p.curTokenIs(token.NUMBER) {
		key = &ast.Identifier{Tok: p.curToken, Span: ast.Span{Start: p.curToken.Offset, End: p.curToken.EndOffset}, Name: p.curToken.Lexeme}
		p.nextToken()
	} else {
		key = &ast.Identifier{Tok: p.curToken, Span: ast.Span{Start: p.curToken.Offset, End: p.curToken.EndOffset}, Name: p.curToken.Lexeme}
		p.nextToken()
	}

	if p.curTokenIs(token.LPAREN) {
		if kind == ast.PropertyKindInit {
			kind = ast.PropertyKindMethod
		}
		fnTok := tok
		fn := &ast.FunctionExpression{Tok: fnTok, Async: async}
		fn.Params = p.parseParamList()
		fn.Body = p.parseBlockStatement()
		fn.Span = ast.Span{Start: fnTok.Offset, End: fn.Body.GetSpan().End}
		return &ast.Property{Tok: tok, Span: ast.Span{Start: tok.Offset, End: fn.Span.End}, Key: key, Value: fn, Kind: kind, Computed: computed}
	}

	if p.curTokenIs(token.COLON) {
		p.nextToken()
		val := p.parseExpression(ASSIGNPREC)
		end := tok.EndOffset
		if val != nil {
			end = val.GetSpan().End
		}
		return &ast.Property{Tok: tok, Span: ast.Span{Start: tok.Offset, End: end}, Key: key, Value: val, Kind: ast.PropertyKindInit, Computed: computed}
	}

	// Shorthand `{ key }`.
	return &ast.Property{Tok: tok, Span: ast.Span{Start: tok.Offset, End: tok.EndOffset}, Key: key, Value: key, Kind: ast.PropertyKindInit, Shorthand: true}
}

func (p *Parser) nextPropTerminator() bool {
	switch p.peekToken.Type {
	case token.COLON, token.COMMA, token.RBRACE, token.LPAREN:
		return true
	default:
		return false
	}
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken() // consume '.'
	var prop ast.Expression
	if p.curTokenIs(token.IDENT) || isContextualKeyword(p.curToken) {
		prop = &ast.Identifier{Tok: p.curToken, Span: ast.Span{Start: p.curToken.Offset, End: p.curToken.EndOffset}, Name: p.curToken.Lexeme}
		p.nextToken()
	}
	end := tok.EndOffset
	if prop != nil {
		end = prop.GetSpan().End
	}
	return &ast.MemberExpression{Tok: tok, Span: ast.Span{Start: left.GetSpan().Start, End: end}, Object: left, Property: prop}
}

func (p *Parser) parseOptionalMemberExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken() // consume '?.'
	if p.curTokenIs(token.LPAREN) {
		call := &ast.CallExpression{Tok: tok, Callee: left, Optional: true}
		call.Arguments = p.parseArgumentList()
		end := tok.EndOffset
		if len(call.Arguments) > 0 {
			end = call.Arguments[len(call.Arguments)-1].GetSpan().End
		}
		call.Span = ast.Span{Start: left.GetSpan().Start, End: end}
		return call
	}
	var prop ast.Expression
	if p.curTokenIs(token.IDENT) || isContextualKeyword(p.curToken) {
		prop = &ast.Identifier{Tok: p.curToken, Span: ast.Span{Start: p.curToken.Offset, End: p.curToken.EndOffset}, Name: p.curToken.Lexeme}
		p.nextToken()
	}
	end := tok.EndOffset
	if prop != nil {
		end = prop.GetSpan().End
	}
	return &ast.MemberExpression{Tok: tok, Span: ast.Span{Start: left.GetSpan().Start, End: end}, Object: left, Property: prop, Optional: true}
}

func isContextualKeyword(tok token.Token) bool {
	switch tok.Lexeme {
	case "get", "set", "async", "static", "from", "as", "of", "default":
		return true
	default:
		return false
	}
}

func (p *Parser) parseComputedMemberExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken() // consume '['
	prop := p.parseExpression(LOWEST)
	end := tok.EndOffset
	if p.curTokenIs(token.RBRACKET) {
		end = p.curToken.EndOffset
		p.nextToken()
	}
	return &ast.MemberExpression{Tok: tok, Span: ast.Span{Start: left.GetSpan().Start, End: end}, Object: left, Property: prop, Computed: true}
}

func (p *Parser) parseArgumentList() []ast.Expression {
	var args []ast.Expression
	p.nextToken() // consume '('
	for !p.curTokenIs(token.RPAREN) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.DOTDOTDOT) {
			spreadTok := p.curToken
			p.nextToken()
			arg := p.parseExpression(ASSIGNPREC)
			args = append(args, &ast.SpreadElement{Tok: spreadTok, Argument: arg})
		} else {
			args = append(args, p.parseExpression(ASSIGNPREC))
		}
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if p.curTokenIs(token.RPAREN) {
		p.nextToken()
	}
	return args
}

func (p *Parser) parseCallExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	call := &ast.CallExpression{Tok: tok, Callee: left}
	call.Arguments = p.parseArgumentList()
	end := tok.EndOffset
	if len(call.Arguments) > 0 {
		end = call.Arguments[len(call.Arguments)-1].GetSpan().End
	}
	call.Span = ast.Span{Start: left.GetSpan().Start, End: end}
	return call
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	prec := precedences[tok.Type]
	p.nextToken()
	right := p.parseExpression(prec)
	end := tok.EndOffset
	if right != nil {
		end = right.GetSpan().End
	}
	return &ast.BinaryExpression{Tok: tok, Span: ast.Span{Start: left.GetSpan().Start, End: end}, Operator: tok.Lexeme, Left: left, Right: right}
}

func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	prec := precedences[tok.Type]
	p.nextToken()
	right := p.parseExpression(prec)
	end := tok.EndOffset
	if right != nil {
		end = right.GetSpan().End
	}
	return &ast.LogicalExpression{Tok: tok, Span: ast.Span{Start: left.GetSpan().Start, End: end}, Operator: tok.Lexeme, Left: left, Right: right}
}

func (p *Parser) parseAssignmentExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(ASSIGNPREC - 1)
	end := tok.EndOffset
	if right != nil {
		end = right.GetSpan().End
	}
	return &ast.AssignmentExpression{Tok: tok, Span: ast.Span{Start: left.GetSpan().Start, End: end}, Operator: "=", Left: left, Right: right}
}

func (p *Parser) parseConditionalExpression(test ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken() // consume '?'
	cons := p.parseExpression(ASSIGNPREC)
	if p.curTokenIs(token.COLON) {
		p.nextToken()
	}
	alt := p.parseExpression(ASSIGNPREC)
	end := tok.EndOffset
	if alt != nil {
		end = alt.GetSpan().End
	}
	return &ast.ConditionalExpression{Tok: tok, Span: ast.Span{Start: test.GetSpan().Start, End: end}, Test: test, Consequent: cons, Alternate: alt}
}
