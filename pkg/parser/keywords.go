package parser

// Hive treats most of its vocabulary as non-reserved, so the lexer only
// promotes the words the grammar dispatches on. Everything else, including
// ROW FORMAT sub-clauses such as DELIMITED and SERDE, stays TOKEN_IDENT and
// is consumed positionally.

// startsJoin reports whether t begins a join clause inside a FROM list.
func startsJoin(t TokenType) bool {
	switch t {
	case TOKEN_JOIN, TOKEN_INNER, TOKEN_LEFT, TOKEN_RIGHT, TOKEN_FULL, TOKEN_CROSS:
		return true
	default:
		return false
	}
}

// endsStorageClause reports whether t terminates a free-form storage clause
// (ROW FORMAT ...) in a CREATE TABLE or directory export.
func endsStorageClause(t TokenType) bool {
	switch t {
	case TOKEN_STORED, TOKEN_LOCATION, TOKEN_TBLPROPERTIES, TOKEN_PARTITIONED,
		TOKEN_AS, TOKEN_SELECT, TOKEN_SEMICOLON, TOKEN_EOF:
		return true
	default:
		return false
	}
}

// startsSubquery reports whether t can begin a query, used to tell a
// parenthesized subquery apart from a parenthesized expression or list.
func startsSubquery(t TokenType) bool {
	return t == TOKEN_SELECT || t == TOKEN_WITH
}
