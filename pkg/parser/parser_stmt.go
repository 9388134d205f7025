package parser

// Statement and query grammar:
//
//	statement   = query | insert | create
//	query       = [ with ] body { setop body } [ orderBy ] [ "LIMIT" expr ]
//	with        = "WITH" cte { "," cte }
//	cte         = ident "AS" "(" query ")"
//	body        = selectCore | "(" query ")" | insert | values
//	setop       = ( "UNION" | "INTERSECT" | "EXCEPT" ) [ "ALL" | "DISTINCT" ]
//	selectCore  = "SELECT" [ "DISTINCT" | "ALL" ] selectList [ from ]
//	              [ "WHERE" expr ] [ "GROUP" "BY" exprList ] [ "HAVING" expr ]
//	              [ "CLUSTER" "BY" exprList ] [ "DISTRIBUTE" "BY" exprList ]
//	              [ "SORT" "BY" orderList ]
//	insert      = "INSERT" ( "INTO" [ "TABLE" ] target | "OVERWRITE" "TABLE" target
//	              | "OVERWRITE" [ "LOCAL" ] "DIRECTORY" string ) query
//	values      = "VALUES" "(" exprList ")" { "," "(" exprList ")" }

// parseStatement dispatches on the leading token of a statement.
func (p *Parser) parseStatement() Statement {
	switch p.token.Type {
	case TOKEN_SELECT, TOKEN_WITH, TOKEN_LPAREN:
		return p.parseQuery()
	case TOKEN_INSERT:
		return p.parseInsert()
	case TOKEN_CREATE:
		return p.parseCreate()
	default:
		p.addError(ErrExpectedStatement, p.token.Type)
		return nil
	}
}

// parseQuery parses an optional WITH clause, a query body and the trailing
// ORDER BY / LIMIT that apply to the query as a whole.
func (p *Parser) parseQuery() *Query {
	q := &Query{}
	if p.check(TOKEN_WITH) {
		q.With = p.parseWithClause()
		if p.failed() {
			return nil
		}
	}
	q.Body = p.parseQueryBody()
	if p.failed() {
		return nil
	}
	if p.check(TOKEN_ORDER) {
		p.nextToken()
		if !p.expect(TOKEN_BY) {
			return nil
		}
		q.OrderBy = p.parseOrderByList()
		if p.failed() {
			return nil
		}
	}
	if p.match(TOKEN_LIMIT) {
		q.Limit = p.parseExpression()
		if p.failed() {
			return nil
		}
	}
	return q
}

func (p *Parser) parseWithClause() *WithClause {
	if !p.expect(TOKEN_WITH) {
		return nil
	}
	wc := &WithClause{}
	for {
		cte := p.parseCTE()
		if p.failed() {
			return nil
		}
		wc.CTEs = append(wc.CTEs, cte)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return wc
}

func (p *Parser) parseCTE() *CTE {
	name, ok := p.expectIdent()
	if !ok {
		return nil
	}
	if !p.expect(TOKEN_AS) {
		return nil
	}
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
	return &CTE{Name: name, Query: q}
}

// parseQueryBody parses a body term followed by any number of left-associative
// set operations.
func (p *Parser) parseQueryBody() QueryBody {
	body := p.parseBodyTerm()
	if p.failed() {
		return nil
	}
	for {
		var op SetOpType
		switch p.token.Type {
		case TOKEN_UNION:
			op = SetOpUnion
		case TOKEN_INTERSECT:
			op = SetOpIntersect
		case TOKEN_EXCEPT:
			op = SetOpExcept
		default:
			return body
		}
		p.nextToken()
		all := p.match(TOKEN_ALL)
		if !all {
			p.match(TOKEN_DISTINCT)
		}
		right := p.parseBodyTerm()
		if p.failed() {
			return nil
		}
		body = &SetOperation{Left: body, Op: op, All: all, Right: right}
	}
}

func (p *Parser) parseBodyTerm() QueryBody {
	switch p.token.Type {
	case TOKEN_SELECT:
		core := p.parseSelectCore()
		if p.failed() {
			return nil
		}
		return core
	case TOKEN_LPAREN:
		p.nextToken()
		q := p.parseQuery()
		if p.failed() {
			return nil
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
		return q
	case TOKEN_INSERT:
		// Write-as-query: WITH cte AS (...) INSERT OVERWRITE TABLE t SELECT ...
		stmt := p.parseInsert()
		if p.failed() {
			return nil
		}
		body, ok := stmt.(QueryBody)
		if !ok {
			p.addError(ErrExpectedStatement, p.token.Type)
			return nil
		}
		return body
	case TOKEN_VALUES:
		vc := p.parseValuesClause()
		if p.failed() {
			return nil
		}
		return vc
	default:
		p.addError(ErrUnexpectedToken, p.token.Type, TOKEN_SELECT)
		return nil
	}
}

func (p *Parser) parseSelectCore() *SelectCore {
	if !p.expect(TOKEN_SELECT) {
		return nil
	}
	core := &SelectCore{}
	if p.match(TOKEN_DISTINCT) {
		core.Distinct = true
	} else {
		p.match(TOKEN_ALL)
	}
	core.Columns = p.parseSelectList()
	if p.failed() {
		return nil
	}
	if p.match(TOKEN_FROM) {
		core.From = p.parseFromClause()
		if p.failed() {
			return nil
		}
	}
	if p.match(TOKEN_WHERE) {
		core.Where = p.parseExpression()
		if p.failed() {
			return nil
		}
	}
	if p.check(TOKEN_GROUP) {
		p.nextToken()
		if !p.expect(TOKEN_BY) {
			return nil
		}
		core.GroupBy = p.parseExpressionList()
		if p.failed() {
			return nil
		}
	}
	if p.match(TOKEN_HAVING) {
		core.Having = p.parseExpression()
		if p.failed() {
			return nil
		}
	}
	if p.check(TOKEN_CLUSTER) {
		p.nextToken()
		if !p.expect(TOKEN_BY) {
			return nil
		}
		core.ClusterBy = p.parseExpressionList()
		if p.failed() {
			return nil
		}
	}
	if p.check(TOKEN_DISTRIBUTE) {
		p.nextToken()
		if !p.expect(TOKEN_BY) {
			return nil
		}
		core.DistributeBy = p.parseExpressionList()
		if p.failed() {
			return nil
		}
	}
	if p.check(TOKEN_SORT) {
		p.nextToken()
		if !p.expect(TOKEN_BY) {
			return nil
		}
		core.SortBy = p.parseOrderByList()
		if p.failed() {
			return nil
		}
	}
	return core
}

func (p *Parser) parseSelectList() []SelectItem {
	var items []SelectItem
	for {
		item := p.parseSelectItem()
		if p.failed() {
			return nil
		}
		items = append(items, item)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return items
}

func (p *Parser) parseSelectItem() SelectItem {
	if p.check(TOKEN_STAR) {
		p.nextToken()
		return SelectItem{Star: true}
	}
	// t.* needs the third lookahead token to distinguish it from t.col.
	if p.check(TOKEN_IDENT) && p.checkPeek(TOKEN_DOT) && p.checkPeek2(TOKEN_STAR) {
		table := p.token.Literal
		p.nextToken()
		p.nextToken()
		p.nextToken()
		return SelectItem{TableStar: table}
	}
	item := SelectItem{Expr: p.parseExpression()}
	if p.failed() {
		return item
	}
	if p.match(TOKEN_AS) {
		alias, ok := p.expectIdent()
		if !ok {
			return item
		}
		item.Alias = alias
	} else if p.check(TOKEN_IDENT) {
		item.Alias = p.token.Literal
		p.nextToken()
	}
	return item
}

func (p *Parser) parseOrderByList() []OrderByItem {
	var items []OrderByItem
	for {
		item := p.parseOrderByItem()
		if p.failed() {
			return nil
		}
		items = append(items, item)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return items
}

func (p *Parser) parseOrderByItem() OrderByItem {
	item := OrderByItem{Expr: p.parseExpression()}
	if p.failed() {
		return item
	}
	if p.match(TOKEN_DESC) {
		item.Desc = true
	} else {
		p.match(TOKEN_ASC)
	}
	if p.match(TOKEN_NULLS) {
		switch {
		case p.match(TOKEN_FIRST):
			item.Nulls = "first"
		case p.match(TOKEN_LAST):
			item.Nulls = "last"
		default:
			p.addError(ErrUnexpectedToken, p.token.Type, "FIRST or LAST")
		}
	}
	return item
}

func (p *Parser) parseExpressionList() []Expr {
	var exprs []Expr
	for {
		expr := p.parseExpression()
		if p.failed() {
			return nil
		}
		exprs = append(exprs, expr)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return exprs
}

// parseInsert parses both table inserts and directory exports.
func (p *Parser) parseInsert() Statement {
	if !p.expect(TOKEN_INSERT) {
		return nil
	}
	switch {
	case p.match(TOKEN_OVERWRITE):
		if p.check(TOKEN_LOCAL) || p.check(TOKEN_DIRECTORY) {
			return p.parseDirectoryTail()
		}
		if !p.expect(TOKEN_TABLE) {
			return nil
		}
		return p.parseInsertTail(true)
	case p.match(TOKEN_INTO):
		p.match(TOKEN_TABLE)
		return p.parseInsertTail(false)
	default:
		p.addError(ErrUnexpectedToken, p.token.Type, "INTO or OVERWRITE")
		return nil
	}
}

func (p *Parser) parseInsertTail(overwrite bool) Statement {
	ins := &InsertStmt{Overwrite: overwrite}
	ins.Table = p.parseTableNameBare()
	if p.failed() {
		return nil
	}
	if p.match(TOKEN_PARTITION) {
		if !p.expect(TOKEN_LPAREN) {
			return nil
		}
		ins.Partition = p.parseExpressionList()
		if p.failed() {
			return nil
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
	}
	// A parenthesized identifier list is a column list; anything else after
	// "(" starts the source query.
	if p.check(TOKEN_LPAREN) && p.checkPeek(TOKEN_IDENT) &&
		(p.checkPeek2(TOKEN_COMMA) || p.checkPeek2(TOKEN_RPAREN)) {
		p.nextToken()
		for {
			col, ok := p.expectIdent()
			if !ok {
				return nil
			}
			ins.Columns = append(ins.Columns, col)
			if !p.match(TOKEN_COMMA) {
				break
			}
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
	}
	ins.Source = p.parseQuery()
	if p.failed() {
		return nil
	}
	return ins
}

func (p *Parser) parseDirectoryTail() Statement {
	d := &DirectoryStmt{}
	if p.match(TOKEN_LOCAL) {
		d.Local = true
	}
	if !p.expect(TOKEN_DIRECTORY) {
		return nil
	}
	path, ok := p.expectString()
	if !ok {
		return nil
	}
	d.Path = path
	if p.check(TOKEN_ROW) {
		if !p.skipRowFormat() {
			return nil
		}
	}
	if p.match(TOKEN_STORED) {
		if !p.expect(TOKEN_AS) {
			return nil
		}
		if _, ok := p.expectIdent(); !ok {
			return nil
		}
	}
	d.Source = p.parseQuery()
	if p.failed() {
		return nil
	}
	return d
}

func (p *Parser) parseValuesClause() *ValuesClause {
	if !p.expect(TOKEN_VALUES) {
		return nil
	}
	vc := &ValuesClause{}
	for {
		if !p.expect(TOKEN_LPAREN) {
			return nil
		}
		row := p.parseExpressionList()
		if p.failed() {
			return nil
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
		vc.Rows = append(vc.Rows, row)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return vc
}
