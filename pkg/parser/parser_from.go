package parser

// parseFromClause parses the primary relation followed by any mix of joins
// and LATERAL VIEW clauses, in source order.
func (p *Parser) parseFromClause() *FromClause {
	fc := &FromClause{}
	fc.Source = p.parseTableRef()
	if p.failed() {
		return nil
	}
	for {
		switch {
		case p.check(TOKEN_LATERAL):
			lv := p.parseLateralView()
			if p.failed() {
				return nil
			}
			fc.LateralViews = append(fc.LateralViews, lv)
		case p.check(TOKEN_COMMA):
			p.nextToken()
			right := p.parseTableRef()
			if p.failed() {
				return nil
			}
			fc.Joins = append(fc.Joins, &Join{Type: JoinComma, Right: right})
		case startsJoin(p.token.Type):
			join := p.parseJoin()
			if p.failed() {
				return nil
			}
			fc.Joins = append(fc.Joins, join)
		default:
			return fc
		}
	}
}

// parseTableRef parses either a derived table (parenthesized subquery) or a
// plain table name, each with an optional alias.
func (p *Parser) parseTableRef() TableRef {
	if p.check(TOKEN_LPAREN) {
		p.nextToken()
		q := p.parseQuery()
		if p.failed() {
			return nil
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
		d := &DerivedTable{Query: q}
		if p.match(TOKEN_AS) {
			alias, ok := p.expectIdent()
			if !ok {
				return nil
			}
			d.Alias = alias
		} else if p.check(TOKEN_IDENT) {
			d.Alias = p.token.Literal
			p.nextToken()
		}
		return d
	}
	return p.parseTableName()
}

// parseTableName parses a dot-qualified table name with an optional alias.
// Only a plain identifier counts as an implicit alias; any keyword ends the
// reference, which keeps clause boundaries unambiguous.
func (p *Parser) parseTableName() *TableName {
	name := p.parseTableNameBare()
	if p.failed() {
		return nil
	}
	if p.match(TOKEN_AS) {
		alias, ok := p.expectIdent()
		if !ok {
			return nil
		}
		name.Alias = alias
	} else if p.check(TOKEN_IDENT) {
		name.Alias = p.token.Literal
		p.nextToken()
	}
	return name
}

// parseTableNameBare parses a dot-qualified table name without alias
// handling, as used for insert targets and DDL names.
func (p *Parser) parseTableNameBare() *TableName {
	if !p.check(TOKEN_IDENT) {
		p.addError(ErrExpectedTableName, p.token.Type)
		return nil
	}
	name := &TableName{Parts: []string{p.token.Literal}}
	p.nextToken()
	for p.check(TOKEN_DOT) {
		p.nextToken()
		part, ok := p.expectIdent()
		if !ok {
			return nil
		}
		name.Parts = append(name.Parts, part)
	}
	return name
}

func (p *Parser) parseJoin() *Join {
	join := &Join{}
	switch p.token.Type {
	case TOKEN_JOIN:
		join.Type = JoinInner
	case TOKEN_INNER:
		join.Type = JoinInner
		p.nextToken()
	case TOKEN_LEFT:
		join.Type = JoinLeft
		p.nextToken()
		if p.match(TOKEN_SEMI) {
			join.Type = JoinLeftSemi
		} else {
			p.match(TOKEN_OUTER)
		}
	case TOKEN_RIGHT:
		join.Type = JoinRight
		p.nextToken()
		p.match(TOKEN_OUTER)
	case TOKEN_FULL:
		join.Type = JoinFull
		p.nextToken()
		p.match(TOKEN_OUTER)
	case TOKEN_CROSS:
		join.Type = JoinCross
		p.nextToken()
	}
	if !p.expect(TOKEN_JOIN) {
		return nil
	}
	join.Right = p.parseTableRef()
	if p.failed() {
		return nil
	}
	if p.match(TOKEN_ON) {
		join.Condition = p.parseExpression()
		if p.failed() {
			return nil
		}
	}
	return join
}

// parseLateralView parses LATERAL VIEW [OUTER] func(args) alias [AS col...].
func (p *Parser) parseLateralView() *LateralView {
	if !p.expect(TOKEN_LATERAL) {
		return nil
	}
	if !p.expect(TOKEN_VIEW) {
		return nil
	}
	lv := &LateralView{}
	if p.match(TOKEN_OUTER) {
		lv.Outer = true
	}
	name, ok := p.expectIdent()
	if !ok {
		return nil
	}
	call := &FuncCall{Name: name}
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	if !p.check(TOKEN_RPAREN) {
		call.Args = p.parseExpressionList()
		if p.failed() {
			return nil
		}
	}
	if !p.expect(TOKEN_RPAREN) {
		return nil
	}
	lv.Func = call
	alias, ok := p.expectIdent()
	if !ok {
		return nil
	}
	lv.TableAlias = alias
	if p.match(TOKEN_AS) {
		for {
			col, ok := p.expectIdent()
			if !ok {
				return nil
			}
			lv.ColumnAliases = append(lv.ColumnAliases, col)
			if !p.match(TOKEN_COMMA) {
				break
			}
		}
	}
	return lv
}
