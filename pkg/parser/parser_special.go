package parser

import "strings"

// parseCaseExpr parses both the simple (CASE operand WHEN ...) and searched
// (CASE WHEN cond ...) forms.
func (p *Parser) parseCaseExpr() Expr {
	p.nextToken() // CASE
	c := &CaseExpr{}
	if !p.check(TOKEN_WHEN) {
		c.Operand = p.parseExpression()
		if p.failed() {
			return nil
		}
	}
	for p.match(TOKEN_WHEN) {
		w := &WhenClause{}
		w.Cond = p.parseExpression()
		if p.failed() {
			return nil
		}
		if !p.expect(TOKEN_THEN) {
			return nil
		}
		w.Result = p.parseExpression()
		if p.failed() {
			return nil
		}
		c.Whens = append(c.Whens, w)
	}
	if len(c.Whens) == 0 {
		p.addError(ErrUnexpectedToken, p.token.Type, TOKEN_WHEN)
		return nil
	}
	if p.match(TOKEN_ELSE) {
		c.Else = p.parseExpression()
		if p.failed() {
			return nil
		}
	}
	if !p.expect(TOKEN_END) {
		return nil
	}
	return c
}

func (p *Parser) parseCastExpr() Expr {
	p.nextToken() // CAST
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	expr := p.parseExpression()
	if p.failed() {
		return nil
	}
	if !p.expect(TOKEN_AS) {
		return nil
	}
	typ, ok := p.parseTypeName()
	if !ok {
		return nil
	}
	if !p.expect(TOKEN_RPAREN) {
		return nil
	}
	return &CastExpr{Expr: expr, Type: typ}
}

// parseTypeName parses a Hive type, including parameterized forms like
// decimal(10,2) and nested complex types like map<string,array<int>>.
// The type is kept as its source text.
func (p *Parser) parseTypeName() (string, bool) {
	name, ok := p.expectIdent()
	if !ok {
		return "", false
	}
	var sb strings.Builder
	sb.WriteString(name)
	if p.check(TOKEN_LPAREN) {
		sb.WriteString("(")
		p.nextToken()
		for !p.check(TOKEN_RPAREN) {
			if p.check(TOKEN_EOF) {
				p.addError(ErrUnexpectedEOF, TOKEN_RPAREN)
				return "", false
			}
			sb.WriteString(p.token.Literal)
			p.nextToken()
		}
		sb.WriteString(")")
		p.nextToken()
	}
	if p.check(TOKEN_LT) {
		depth := 0
		for {
			if p.check(TOKEN_EOF) {
				p.addError(ErrUnexpectedEOF, TOKEN_GT)
				return "", false
			}
			switch p.token.Type {
			case TOKEN_LT:
				depth++
			case TOKEN_GT:
				depth--
			}
			sb.WriteString(p.token.Literal)
			p.nextToken()
			if depth == 0 {
				break
			}
		}
	}
	return sb.String(), true
}

func (p *Parser) parseExistsExpr(not bool) Expr {
	p.nextToken() // EXISTS
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	q := p.parseQuery()
	if p.failed() {
		return nil
	}
	if !p.expect(TOKEN_RPAREN) {
		return nil
	}
	return &ExistsExpr{Not: not, Query: q}
}
