package parser

// parsePrimaryExpr parses a primary term plus any trailing subscripts.
func (p *Parser) parsePrimaryExpr() Expr {
	expr := p.parsePrimaryTerm()
	if p.failed() {
		return nil
	}
	for p.check(TOKEN_LBRACKET) {
		p.nextToken()
		idx := p.parseExpression()
		if p.failed() {
			return nil
		}
		if !p.expect(TOKEN_RBRACKET) {
			return nil
		}
		expr = &IndexExpr{Expr: expr, Index: idx}
	}
	return expr
}

// parsePrimaryTerm parses literals, column references, function calls,
// CASE/CAST/EXISTS forms and parenthesized expressions or subqueries.
func (p *Parser) parsePrimaryTerm() Expr {
	switch p.token.Type {
	case TOKEN_NUMBER:
		lit := &Literal{Type: LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit
	case TOKEN_STRING:
		lit := &Literal{Type: LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit
	case TOKEN_TRUE, TOKEN_FALSE:
		lit := &Literal{Type: LiteralBool, Value: p.token.Literal}
		p.nextToken()
		return lit
	case TOKEN_NULL:
		p.nextToken()
		return &Literal{Type: LiteralNull, Value: "null"}
	case TOKEN_CASE:
		return p.parseCaseExpr()
	case TOKEN_CAST:
		return p.parseCastExpr()
	case TOKEN_EXISTS:
		return p.parseExistsExpr(false)
	case TOKEN_LPAREN:
		return p.parseParenOrSubquery()
	case TOKEN_IDENT:
		return p.parseIdentExpr()
	case TOKEN_IF, TOKEN_LEFT, TOKEN_RIGHT:
		// Hive function names that collide with keywords: if(), left(), right().
		if p.checkPeek(TOKEN_LPAREN) {
			return p.parseFuncCall(p.token.Literal)
		}
	}
	p.addError(ErrExpectedExpr, p.token.Type)
	return nil
}

// parseIdentExpr parses a function call or a dot-qualified column reference
// starting at the current identifier.
func (p *Parser) parseIdentExpr() Expr {
	if p.checkPeek(TOKEN_LPAREN) {
		return p.parseFuncCall(p.token.Literal)
	}
	ref := &ColumnRef{Parts: []string{p.token.Literal}}
	p.nextToken()
	for p.check(TOKEN_DOT) {
		p.nextToken()
		part, ok := p.expectIdent()
		if !ok {
			return nil
		}
		ref.Parts = append(ref.Parts, part)
	}
	return ref
}

// parseFuncCall parses name(args) with the current token on the name.
func (p *Parser) parseFuncCall(name string) Expr {
	p.nextToken() // name
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	call := &FuncCall{Name: name}
	if p.match(TOKEN_DISTINCT) {
		call.Distinct = true
	}
	switch {
	case p.check(TOKEN_STAR):
		call.Star = true
		p.nextToken()
	case !p.check(TOKEN_RPAREN):
		call.Args = p.parseExpressionList()
		if p.failed() {
			return nil
		}
	}
	if !p.expect(TOKEN_RPAREN) {
		return nil
	}
	if p.check(TOKEN_OVER) {
		p.nextToken()
		call.Window = p.parseWindowSpec()
		if p.failed() {
			return nil
		}
	}
	return call
}

// parseParenOrSubquery disambiguates "(" expr ")" from "(" query ")" by the
// token that follows the paren.
func (p *Parser) parseParenOrSubquery() Expr {
	p.nextToken() // (
	if startsSubquery(p.token.Type) {
		q := p.parseQuery()
		if p.failed() {
			return nil
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
		return &SubqueryExpr{Query: q}
	}
	expr := p.parseExpression()
	if p.failed() {
		return nil
	}
	if !p.expect(TOKEN_RPAREN) {
		return nil
	}
	return &ParenExpr{Expr: expr}
}
