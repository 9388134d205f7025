package parser

// parseWindowSpec parses the parenthesized window after OVER.
func (p *Parser) parseWindowSpec() *WindowSpec {
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	w := &WindowSpec{}
	if p.check(TOKEN_PARTITION) {
		p.nextToken()
		if !p.expect(TOKEN_BY) {
			return nil
		}
		w.PartitionBy = p.parseExpressionList()
		if p.failed() {
			return nil
		}
	}
	if p.check(TOKEN_ORDER) {
		p.nextToken()
		if !p.expect(TOKEN_BY) {
			return nil
		}
		w.OrderBy = p.parseOrderByList()
		if p.failed() {
			return nil
		}
	}
	if p.check(TOKEN_ROWS) || p.check(TOKEN_RANGE) {
		w.Frame = p.parseFrameSpec()
		if p.failed() {
			return nil
		}
	}
	if !p.expect(TOKEN_RPAREN) {
		return nil
	}
	return w
}

func (p *Parser) parseFrameSpec() *FrameSpec {
	f := &FrameSpec{}
	if p.match(TOKEN_ROWS) {
		f.Type = FrameRows
	} else {
		if !p.expect(TOKEN_RANGE) {
			return nil
		}
		f.Type = FrameRange
	}
	if p.match(TOKEN_BETWEEN) {
		f.Start = p.parseFrameBound()
		if p.failed() {
			return nil
		}
		if !p.expect(TOKEN_AND) {
			return nil
		}
		f.End = p.parseFrameBound()
		if p.failed() {
			return nil
		}
		return f
	}
	f.Start = p.parseFrameBound()
	if p.failed() {
		return nil
	}
	return f
}

func (p *Parser) parseFrameBound() *FrameBound {
	switch {
	case p.match(TOKEN_UNBOUNDED):
		switch {
		case p.match(TOKEN_PRECEDING):
			return &FrameBound{Type: BoundUnboundedPreceding}
		case p.match(TOKEN_FOLLOWING):
			return &FrameBound{Type: BoundUnboundedFollowing}
		default:
			p.addError(ErrUnexpectedToken, p.token.Type, "PRECEDING or FOLLOWING")
			return nil
		}
	case p.match(TOKEN_CURRENT):
		if !p.expect(TOKEN_ROW) {
			return nil
		}
		return &FrameBound{Type: BoundCurrentRow}
	default:
		offset := p.parseExpression()
		if p.failed() {
			return nil
		}
		switch {
		case p.match(TOKEN_PRECEDING):
			return &FrameBound{Type: BoundPreceding, Offset: offset}
		case p.match(TOKEN_FOLLOWING):
			return &FrameBound{Type: BoundFollowing, Offset: offset}
		default:
			p.addError(ErrUnexpectedToken, p.token.Type, "PRECEDING or FOLLOWING")
			return nil
		}
	}
}
