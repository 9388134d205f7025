package parser

import "fmt"

// Parser parses Hive SQL using recursive descent with 3-token lookahead.
type Parser struct {
	lexer *Lexer

	token Token // current token
	peek  Token // next token
	peek2 Token // token after next

	errors []error
}

// NewParser creates a parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
	}
	// Load token, peek, and peek2.
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse tokenizes and parses sql, returning every statement found.
// The input may contain multiple semicolon-separated statements; a single
// logical statement can also decompose into more than one AST node.
func Parse(sql string) ([]Statement, error) {
	return NewParser(sql).ParseStatements()
}

// ParseStatements parses the input as a sequence of statements.
// It fails fast: the first syntax error aborts the whole parse.
func (p *Parser) ParseStatements() ([]Statement, error) {
	var stmts []Statement

	for p.match(TOKEN_SEMICOLON) {
	}
	for !p.check(TOKEN_EOF) {
		stmt := p.parseStatement()
		if len(p.errors) > 0 {
			return nil, p.errors[0]
		}
		stmts = append(stmts, stmt)

		if p.check(TOKEN_EOF) {
			break
		}
		if !p.expect(TOKEN_SEMICOLON) {
			return nil, p.errors[0]
		}
		for p.match(TOKEN_SEMICOLON) {
		}
	}

	return stmts, nil
}

// nextToken advances the token window.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token has the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the next token has the given type.
func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

// checkPeek2 returns true if the token after next has the given type.
func (p *Parser) checkPeek2(t TokenType) bool {
	return p.peek2.Type == t
}

// match consumes the current token if it has the given type.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// matchAny consumes the current token if it has any of the given types and
// returns its type; TOKEN_EOF is returned when nothing matched.
func (p *Parser) matchAny(types ...TokenType) (TokenType, bool) {
	for _, t := range types {
		if p.check(t) {
			p.nextToken()
			return t, true
		}
	}
	return TOKEN_EOF, false
}

// expect consumes the current token if it has the given type, and records
// an error otherwise.
func (p *Parser) expect(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(ErrUnexpectedToken, p.token.Type, t)
	return false
}

// expectIdent consumes and returns the current token's literal when it is an
// identifier, recording an error otherwise.
func (p *Parser) expectIdent() (string, bool) {
	if p.check(TOKEN_IDENT) {
		lit := p.token.Literal
		p.nextToken()
		return lit, true
	}
	p.addError(ErrUnexpectedToken, p.token.Type, TOKEN_IDENT)
	return "", false
}

// addError records a parse error at the current token position.
func (p *Parser) addError(format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// failed reports whether any error has been recorded yet. Parsing functions
// use it to bail out instead of cascading errors from a bad position.
func (p *Parser) failed() bool {
	return len(p.errors) > 0
}
