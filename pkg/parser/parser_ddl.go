package parser

// parseCreate dispatches CREATE statements. Only tables and views matter
// here; bucketing clauses never arrive because the lineage preprocessor
// strips them before parsing.
func (p *Parser) parseCreate() Statement {
	if !p.expect(TOKEN_CREATE) {
		return nil
	}
	switch {
	case p.check(TOKEN_VIEW):
		return p.parseCreateView()
	case p.check(TOKEN_EXTERNAL), p.check(TOKEN_TABLE):
		return p.parseCreateTable()
	default:
		p.addError(ErrUnexpectedToken, p.token.Type, "TABLE or VIEW")
		return nil
	}
}

func (p *Parser) parseCreateTable() Statement {
	stmt := &CreateTableStmt{}
	if p.match(TOKEN_EXTERNAL) {
		stmt.External = true
	}
	if !p.expect(TOKEN_TABLE) {
		return nil
	}
	if !p.parseIfNotExists(&stmt.IfNotExists) {
		return nil
	}
	stmt.Name = p.parseTableNameBare()
	if p.failed() {
		return nil
	}
	if p.check(TOKEN_LPAREN) {
		p.nextToken()
		stmt.Columns = p.parseColumnDefs()
		if p.failed() {
			return nil
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
	}
	if p.check(TOKEN_COMMENT) {
		p.nextToken()
		comment, ok := p.expectString()
		if !ok {
			return nil
		}
		stmt.Comment = comment
	}
	if p.check(TOKEN_PARTITIONED) {
		p.nextToken()
		if !p.expect(TOKEN_BY) {
			return nil
		}
		if !p.expect(TOKEN_LPAREN) {
			return nil
		}
		stmt.PartitionedBy = p.parseColumnDefs()
		if p.failed() {
			return nil
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
	}
	if p.check(TOKEN_ROW) {
		if !p.skipRowFormat() {
			return nil
		}
	}
	if p.check(TOKEN_STORED) {
		p.nextToken()
		if !p.expect(TOKEN_AS) {
			return nil
		}
		format, ok := p.expectIdent()
		if !ok {
			return nil
		}
		stmt.StoredAs = format
	}
	if p.check(TOKEN_LOCATION) {
		p.nextToken()
		loc, ok := p.expectString()
		if !ok {
			return nil
		}
		stmt.Location = loc
	}
	if p.check(TOKEN_TBLPROPERTIES) {
		p.nextToken()
		stmt.Properties = p.parseProperties()
		if p.failed() {
			return nil
		}
	}
	if p.match(TOKEN_AS) {
		stmt.Query = p.parseQuery()
		if p.failed() {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseCreateView() Statement {
	stmt := &CreateViewStmt{}
	if !p.expect(TOKEN_VIEW) {
		return nil
	}
	if !p.parseIfNotExists(&stmt.IfNotExists) {
		return nil
	}
	stmt.Name = p.parseTableNameBare()
	if p.failed() {
		return nil
	}
	// Optional column name list; the names carry no lineage information.
	if p.check(TOKEN_LPAREN) {
		p.nextToken()
		for {
			if _, ok := p.expectIdent(); !ok {
				return nil
			}
			if !p.match(TOKEN_COMMA) {
				break
			}
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
	}
	if !p.expect(TOKEN_AS) {
		return nil
	}
	stmt.Query = p.parseQuery()
	if p.failed() {
		return nil
	}
	return stmt
}

func (p *Parser) parseIfNotExists(out *bool) bool {
	if !p.check(TOKEN_IF) {
		return true
	}
	p.nextToken()
	if !p.expect(TOKEN_NOT) {
		return false
	}
	if !p.expect(TOKEN_EXISTS) {
		return false
	}
	*out = true
	return true
}

func (p *Parser) parseColumnDefs() []*ColumnDef {
	var cols []*ColumnDef
	for {
		name, ok := p.expectIdent()
		if !ok {
			return nil
		}
		typ, ok := p.parseTypeName()
		if !ok {
			return nil
		}
		col := &ColumnDef{Name: name, Type: typ}
		if p.check(TOKEN_COMMENT) {
			p.nextToken()
			comment, ok := p.expectString()
			if !ok {
				return nil
			}
			col.Comment = comment
		}
		cols = append(cols, col)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return cols
}

// parseProperties parses TBLPROPERTIES ('key'='value', ...).
func (p *Parser) parseProperties() map[string]string {
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	props := make(map[string]string)
	for {
		key, ok := p.expectString()
		if !ok {
			return nil
		}
		if !p.expect(TOKEN_EQ) {
			return nil
		}
		val, ok := p.expectString()
		if !ok {
			return nil
		}
		props[key] = val
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	if !p.expect(TOKEN_RPAREN) {
		return nil
	}
	return props
}

// skipRowFormat consumes a ROW FORMAT DELIMITED / SERDE clause without
// modeling it. The sub-clauses are free-form; scanning stops at the next
// storage keyword, tracking parens so SERDEPROPERTIES lists pass through.
func (p *Parser) skipRowFormat() bool {
	if !p.expect(TOKEN_ROW) {
		return false
	}
	if !p.expect(TOKEN_FORMAT) {
		return false
	}
	depth := 0
	for {
		if p.check(TOKEN_EOF) {
			return true
		}
		if depth == 0 && endsStorageClause(p.token.Type) {
			return true
		}
		switch p.token.Type {
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			depth--
		}
		p.nextToken()
	}
}

// expectString consumes and returns the current token's literal when it is a
// string, recording an error otherwise.
func (p *Parser) expectString() (string, bool) {
	if p.check(TOKEN_STRING) {
		lit := p.token.Literal
		p.nextToken()
		return lit, true
	}
	p.addError(ErrUnexpectedToken, p.token.Type, TOKEN_STRING)
	return "", false
}
