package parser

// Operator precedence levels, lowest binds loosest.
const (
	precLowest = iota
	precOr
	precAnd
	precNot
	precComparison // =, !=, <, >, <=, >=, LIKE, RLIKE, IN, BETWEEN, IS
	precAdditive   // +, -, ||
	precMultiplicative
	precUnary
)

// infixPrecedence returns the binding power of t as an infix operator, or
// precLowest when t cannot continue an expression.
func infixPrecedence(t TokenType) int {
	switch t {
	case TOKEN_OR:
		return precOr
	case TOKEN_AND:
		return precAnd
	case TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE,
		TOKEN_LIKE, TOKEN_RLIKE, TOKEN_IN, TOKEN_BETWEEN, TOKEN_IS, TOKEN_NOT:
		return precComparison
	case TOKEN_PLUS, TOKEN_MINUS, TOKEN_DPIPE:
		return precAdditive
	case TOKEN_STAR, TOKEN_SLASH, TOKEN_PERCENT:
		return precMultiplicative
	default:
		return precLowest
	}
}

// parseExpression parses a full expression.
func (p *Parser) parseExpression() Expr {
	return p.parseBinaryExpr(precLowest)
}

// parseBinaryExpr implements precedence climbing: it keeps folding infix
// operators into the left operand while they bind tighter than minPrec.
func (p *Parser) parseBinaryExpr(minPrec int) Expr {
	left := p.parseUnaryExpr()
	if p.failed() {
		return nil
	}
	for {
		prec := infixPrecedence(p.token.Type)
		if prec <= minPrec {
			return left
		}
		left = p.parseInfixExpr(left, prec)
		if p.failed() {
			return nil
		}
	}
}

// parseInfixExpr parses the operator at the current token and its right
// operand. NOT, IS, IN, BETWEEN, LIKE and RLIKE produce dedicated nodes;
// everything else becomes a BinaryExpr.
func (p *Parser) parseInfixExpr(left Expr, prec int) Expr {
	switch p.token.Type {
	case TOKEN_NOT:
		p.nextToken()
		switch p.token.Type {
		case TOKEN_IN:
			return p.parseInExpr(left, true)
		case TOKEN_LIKE, TOKEN_RLIKE:
			return p.parseLikeExpr(left, true)
		case TOKEN_BETWEEN:
			return p.parseBetweenExpr(left, true)
		default:
			p.addError(ErrUnexpectedToken, p.token.Type, "IN, LIKE or BETWEEN")
			return nil
		}
	case TOKEN_IN:
		return p.parseInExpr(left, false)
	case TOKEN_LIKE, TOKEN_RLIKE:
		return p.parseLikeExpr(left, false)
	case TOKEN_BETWEEN:
		return p.parseBetweenExpr(left, false)
	case TOKEN_IS:
		return p.parseIsExpr(left)
	default:
		op := p.token.Type
		p.nextToken()
		right := p.parseBinaryExpr(prec)
		if p.failed() {
			return nil
		}
		return &BinaryExpr{Left: left, Op: op, Right: right}
	}
}

// parseInExpr parses the (value list) or (subquery) tail of an IN.
func (p *Parser) parseInExpr(left Expr, not bool) Expr {
	p.nextToken() // IN
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	in := &InExpr{Expr: left, Not: not}
	if startsSubquery(p.token.Type) {
		in.Query = p.parseQuery()
	} else {
		in.Values = p.parseExpressionList()
	}
	if p.failed() {
		return nil
	}
	if !p.expect(TOKEN_RPAREN) {
		return nil
	}
	return in
}

func (p *Parser) parseLikeExpr(left Expr, not bool) Expr {
	op, _ := p.matchAny(TOKEN_LIKE, TOKEN_RLIKE)
	pattern := p.parseBinaryExpr(precComparison)
	if p.failed() {
		return nil
	}
	return &LikeExpr{Expr: left, Not: not, Op: op, Pattern: pattern}
}

// parseBetweenExpr parses lower AND upper with the bounds bound tighter than
// AND, so the range's AND is not swallowed as a logical conjunction.
func (p *Parser) parseBetweenExpr(left Expr, not bool) Expr {
	p.nextToken() // BETWEEN
	lower := p.parseBinaryExpr(precComparison)
	if p.failed() {
		return nil
	}
	if !p.expect(TOKEN_AND) {
		return nil
	}
	upper := p.parseBinaryExpr(precComparison)
	if p.failed() {
		return nil
	}
	return &BetweenExpr{Expr: left, Not: not, Lower: lower, Upper: upper}
}

func (p *Parser) parseIsExpr(left Expr) Expr {
	p.nextToken() // IS
	not := p.match(TOKEN_NOT)
	if !p.expect(TOKEN_NULL) {
		return nil
	}
	return &IsNullExpr{Expr: left, Not: not}
}

// parseUnaryExpr parses prefix NOT, - and + before delegating to primaries.
func (p *Parser) parseUnaryExpr() Expr {
	switch p.token.Type {
	case TOKEN_NOT:
		// NOT EXISTS keeps its own node shape so subquery inspection sees
		// it the same way as EXISTS.
		if p.checkPeek(TOKEN_EXISTS) {
			p.nextToken()
			return p.parseExistsExpr(true)
		}
		p.nextToken()
		operand := p.parseBinaryExpr(precNot)
		if p.failed() {
			return nil
		}
		return &UnaryExpr{Op: TOKEN_NOT, Expr: operand}
	case TOKEN_MINUS, TOKEN_PLUS:
		op := p.token.Type
		p.nextToken()
		operand := p.parseBinaryExpr(precUnary)
		if p.failed() {
			return nil
		}
		return &UnaryExpr{Op: op, Expr: operand}
	default:
		return p.parsePrimaryExpr()
	}
}
