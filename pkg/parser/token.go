// Package parser implements a Hive-dialect SQL lexer and recursive-descent
// parser producing the statement AST consumed by pkg/lineage.
package parser

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

//nolint:revive // TOKEN_* names are intentionally ALL_CAPS for SQL token conventions
const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_IDENT  // identifier (plain or backtick-quoted)
	TOKEN_NUMBER // 123, 45.67, 1e10
	TOKEN_STRING // 'hello' or "hello"

	// Operators
	TOKEN_PLUS      // +
	TOKEN_MINUS     // -
	TOKEN_STAR      // *
	TOKEN_SLASH     // /
	TOKEN_PERCENT   // %
	TOKEN_DPIPE     // ||
	TOKEN_EQ        // = or ==
	TOKEN_NE        // != or <>
	TOKEN_LT        // <
	TOKEN_GT        // >
	TOKEN_LE        // <=
	TOKEN_GE        // >=
	TOKEN_DOT       // .
	TOKEN_COMMA     // ,
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_SEMICOLON // ;
	TOKEN_COLON     // : (struct type fields)

	// Keywords (alphabetical)
	TOKEN_ALL
	TOKEN_AND
	TOKEN_AS
	TOKEN_ASC
	TOKEN_BETWEEN
	TOKEN_BY
	TOKEN_CASE
	TOKEN_CAST
	TOKEN_CLUSTER
	TOKEN_COMMENT
	TOKEN_CREATE
	TOKEN_CROSS
	TOKEN_CURRENT
	TOKEN_DESC
	TOKEN_DIRECTORY
	TOKEN_DISTINCT
	TOKEN_DISTRIBUTE
	TOKEN_ELSE
	TOKEN_END
	TOKEN_EXCEPT
	TOKEN_EXISTS
	TOKEN_EXTERNAL
	TOKEN_FALSE
	TOKEN_FIRST
	TOKEN_FOLLOWING
	TOKEN_FORMAT
	TOKEN_FROM
	TOKEN_FULL
	TOKEN_GROUP
	TOKEN_HAVING
	TOKEN_IF
	TOKEN_IN
	TOKEN_INNER
	TOKEN_INSERT
	TOKEN_INTERSECT
	TOKEN_INTO
	TOKEN_IS
	TOKEN_JOIN
	TOKEN_LAST
	TOKEN_LATERAL
	TOKEN_LEFT
	TOKEN_LIKE
	TOKEN_LIMIT
	TOKEN_LOCAL
	TOKEN_LOCATION
	TOKEN_NOT
	TOKEN_NULL
	TOKEN_NULLS
	TOKEN_ON
	TOKEN_OR
	TOKEN_ORDER
	TOKEN_OUTER
	TOKEN_OVER
	TOKEN_OVERWRITE
	TOKEN_PARTITION
	TOKEN_PARTITIONED
	TOKEN_PRECEDING
	TOKEN_RANGE
	TOKEN_RIGHT
	TOKEN_RLIKE
	TOKEN_ROW
	TOKEN_ROWS
	TOKEN_SELECT
	TOKEN_SEMI
	TOKEN_SORT
	TOKEN_STORED
	TOKEN_TABLE
	TOKEN_TBLPROPERTIES
	TOKEN_THEN
	TOKEN_TRUE
	TOKEN_UNBOUNDED
	TOKEN_UNION
	TOKEN_VALUES
	TOKEN_VIEW
	TOKEN_WHEN
	TOKEN_WHERE
	TOKEN_WITH
)

// Position identifies a location in the input text.
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", int(t))
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	TOKEN_EOF:     "EOF",
	TOKEN_ILLEGAL: "ILLEGAL",

	TOKEN_IDENT:  "IDENT",
	TOKEN_NUMBER: "NUMBER",
	TOKEN_STRING: "STRING",

	TOKEN_PLUS:      "+",
	TOKEN_MINUS:     "-",
	TOKEN_STAR:      "*",
	TOKEN_SLASH:     "/",
	TOKEN_PERCENT:   "%",
	TOKEN_DPIPE:     "||",
	TOKEN_EQ:        "=",
	TOKEN_NE:        "!=",
	TOKEN_LT:        "<",
	TOKEN_GT:        ">",
	TOKEN_LE:        "<=",
	TOKEN_GE:        ">=",
	TOKEN_DOT:       ".",
	TOKEN_COMMA:     ",",
	TOKEN_LPAREN:    "(",
	TOKEN_RPAREN:    ")",
	TOKEN_LBRACKET:  "[",
	TOKEN_RBRACKET:  "]",
	TOKEN_SEMICOLON: ";",
	TOKEN_COLON:     ":",

	TOKEN_ALL:           "ALL",
	TOKEN_AND:           "AND",
	TOKEN_AS:            "AS",
	TOKEN_ASC:           "ASC",
	TOKEN_BETWEEN:       "BETWEEN",
	TOKEN_BY:            "BY",
	TOKEN_CASE:          "CASE",
	TOKEN_CAST:          "CAST",
	TOKEN_CLUSTER:       "CLUSTER",
	TOKEN_COMMENT:       "COMMENT",
	TOKEN_CREATE:        "CREATE",
	TOKEN_CROSS:         "CROSS",
	TOKEN_CURRENT:       "CURRENT",
	TOKEN_DESC:          "DESC",
	TOKEN_DIRECTORY:     "DIRECTORY",
	TOKEN_DISTINCT:      "DISTINCT",
	TOKEN_DISTRIBUTE:    "DISTRIBUTE",
	TOKEN_ELSE:          "ELSE",
	TOKEN_END:           "END",
	TOKEN_EXCEPT:        "EXCEPT",
	TOKEN_EXISTS:        "EXISTS",
	TOKEN_EXTERNAL:      "EXTERNAL",
	TOKEN_FALSE:         "FALSE",
	TOKEN_FIRST:         "FIRST",
	TOKEN_FOLLOWING:     "FOLLOWING",
	TOKEN_FORMAT:        "FORMAT",
	TOKEN_FROM:          "FROM",
	TOKEN_FULL:          "FULL",
	TOKEN_GROUP:         "GROUP",
	TOKEN_HAVING:        "HAVING",
	TOKEN_IF:            "IF",
	TOKEN_IN:            "IN",
	TOKEN_INNER:         "INNER",
	TOKEN_INSERT:        "INSERT",
	TOKEN_INTERSECT:     "INTERSECT",
	TOKEN_INTO:          "INTO",
	TOKEN_IS:            "IS",
	TOKEN_JOIN:          "JOIN",
	TOKEN_LAST:          "LAST",
	TOKEN_LATERAL:       "LATERAL",
	TOKEN_LEFT:          "LEFT",
	TOKEN_LIKE:          "LIKE",
	TOKEN_LIMIT:         "LIMIT",
	TOKEN_LOCAL:         "LOCAL",
	TOKEN_LOCATION:      "LOCATION",
	TOKEN_NOT:           "NOT",
	TOKEN_NULL:          "NULL",
	TOKEN_NULLS:         "NULLS",
	TOKEN_ON:            "ON",
	TOKEN_OR:            "OR",
	TOKEN_ORDER:         "ORDER",
	TOKEN_OUTER:         "OUTER",
	TOKEN_OVER:          "OVER",
	TOKEN_OVERWRITE:     "OVERWRITE",
	TOKEN_PARTITION:     "PARTITION",
	TOKEN_PARTITIONED:   "PARTITIONED",
	TOKEN_PRECEDING:     "PRECEDING",
	TOKEN_RANGE:         "RANGE",
	TOKEN_RIGHT:         "RIGHT",
	TOKEN_RLIKE:         "RLIKE",
	TOKEN_ROW:           "ROW",
	TOKEN_ROWS:          "ROWS",
	TOKEN_SELECT:        "SELECT",
	TOKEN_SEMI:          "SEMI",
	TOKEN_SORT:          "SORT",
	TOKEN_STORED:        "STORED",
	TOKEN_TABLE:         "TABLE",
	TOKEN_TBLPROPERTIES: "TBLPROPERTIES",
	TOKEN_THEN:          "THEN",
	TOKEN_TRUE:          "TRUE",
	TOKEN_UNBOUNDED:     "UNBOUNDED",
	TOKEN_UNION:         "UNION",
	TOKEN_VALUES:        "VALUES",
	TOKEN_VIEW:          "VIEW",
	TOKEN_WHEN:          "WHEN",
	TOKEN_WHERE:         "WHERE",
	TOKEN_WITH:          "WITH",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"all":           TOKEN_ALL,
	"and":           TOKEN_AND,
	"as":            TOKEN_AS,
	"asc":           TOKEN_ASC,
	"between":       TOKEN_BETWEEN,
	"by":            TOKEN_BY,
	"case":          TOKEN_CASE,
	"cast":          TOKEN_CAST,
	"cluster":       TOKEN_CLUSTER,
	"comment":       TOKEN_COMMENT,
	"create":        TOKEN_CREATE,
	"cross":         TOKEN_CROSS,
	"current":       TOKEN_CURRENT,
	"desc":          TOKEN_DESC,
	"directory":     TOKEN_DIRECTORY,
	"distinct":      TOKEN_DISTINCT,
	"distribute":    TOKEN_DISTRIBUTE,
	"else":          TOKEN_ELSE,
	"end":           TOKEN_END,
	"except":        TOKEN_EXCEPT,
	"exists":        TOKEN_EXISTS,
	"external":      TOKEN_EXTERNAL,
	"false":         TOKEN_FALSE,
	"first":         TOKEN_FIRST,
	"following":     TOKEN_FOLLOWING,
	"format":        TOKEN_FORMAT,
	"from":          TOKEN_FROM,
	"full":          TOKEN_FULL,
	"group":         TOKEN_GROUP,
	"having":        TOKEN_HAVING,
	"if":            TOKEN_IF,
	"in":            TOKEN_IN,
	"inner":         TOKEN_INNER,
	"insert":        TOKEN_INSERT,
	"intersect":     TOKEN_INTERSECT,
	"into":          TOKEN_INTO,
	"is":            TOKEN_IS,
	"join":          TOKEN_JOIN,
	"last":          TOKEN_LAST,
	"lateral":       TOKEN_LATERAL,
	"left":          TOKEN_LEFT,
	"like":          TOKEN_LIKE,
	"limit":         TOKEN_LIMIT,
	"local":         TOKEN_LOCAL,
	"location":      TOKEN_LOCATION,
	"not":           TOKEN_NOT,
	"null":          TOKEN_NULL,
	"nulls":         TOKEN_NULLS,
	"on":            TOKEN_ON,
	"or":            TOKEN_OR,
	"order":         TOKEN_ORDER,
	"outer":         TOKEN_OUTER,
	"over":          TOKEN_OVER,
	"overwrite":     TOKEN_OVERWRITE,
	"partition":     TOKEN_PARTITION,
	"partitioned":   TOKEN_PARTITIONED,
	"preceding":     TOKEN_PRECEDING,
	"range":         TOKEN_RANGE,
	"right":         TOKEN_RIGHT,
	"rlike":         TOKEN_RLIKE,
	"row":           TOKEN_ROW,
	"rows":          TOKEN_ROWS,
	"select":        TOKEN_SELECT,
	"semi":          TOKEN_SEMI,
	"sort":          TOKEN_SORT,
	"stored":        TOKEN_STORED,
	"table":         TOKEN_TABLE,
	"tblproperties": TOKEN_TBLPROPERTIES,
	"then":          TOKEN_THEN,
	"true":          TOKEN_TRUE,
	"unbounded":     TOKEN_UNBOUNDED,
	"union":         TOKEN_UNION,
	"values":        TOKEN_VALUES,
	"view":          TOKEN_VIEW,
	"when":          TOKEN_WHEN,
	"where":         TOKEN_WHERE,
	"with":          TOKEN_WITH,
}

// LookupIdent returns the token type for the given lowercase identifier.
// Keywords map to their keyword token type, everything else to TOKEN_IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= TOKEN_ALL && t <= TOKEN_WITH
}
