package parser

// Statement is the interface implemented by all statement nodes.
type Statement interface {
	stmtNode()
}

// QueryBody is the interface implemented by all query body shapes
// (plain select, nested query, set operation, write-as-query, values).
type QueryBody interface {
	bodyNode()
}

// TableRef is the interface implemented by all FROM-clause relations.
type TableRef interface {
	tableRefNode()
}

// Expr is the interface implemented by all expression nodes.
type Expr interface {
	exprNode()
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// Query represents a full query: optional WITH clause, a body, and
// query-level ORDER BY / LIMIT.
type Query struct {
	With    *WithClause
	Body    QueryBody
	OrderBy []OrderByItem
	Limit   Expr
}

func (*Query) stmtNode() {}
func (*Query) bodyNode() {}

// WithClause represents WITH cte [, cte...].
type WithClause struct {
	CTEs []*CTE
}

// CTE represents a single common table expression: name AS (query).
type CTE struct {
	Name  string
	Query *Query
}

// InsertStmt represents INSERT INTO [TABLE] t and INSERT OVERWRITE TABLE t,
// with an optional static partition spec and either a query or VALUES source.
// It also implements QueryBody: Hive accepts a WITH clause directly in front
// of an insert, which parses as a query whose body is the insert.
type InsertStmt struct {
	Overwrite bool
	Table     *TableName
	Partition []Expr
	Columns   []string
	Source    *Query
}

func (*InsertStmt) stmtNode() {}
func (*InsertStmt) bodyNode() {}

// DirectoryStmt represents INSERT OVERWRITE [LOCAL] DIRECTORY 'path' query.
// Like InsertStmt it can appear as a query body behind a WITH clause.
type DirectoryStmt struct {
	Local  bool
	Path   string
	Source *Query
}

func (*DirectoryStmt) stmtNode() {}
func (*DirectoryStmt) bodyNode() {}

// CreateTableStmt represents CREATE [EXTERNAL] TABLE with Hive table
// options. Bucketing clauses (CLUSTERED BY ... INTO n BUCKETS) never reach
// the parser: the lineage preprocessor strips them beforehand.
type CreateTableStmt struct {
	External      bool
	IfNotExists   bool
	Name          *TableName
	Columns       []*ColumnDef
	Comment       string
	PartitionedBy []*ColumnDef
	StoredAs      string
	Location      string
	Properties    map[string]string
	Query         *Query // CREATE TABLE ... AS SELECT
}

func (*CreateTableStmt) stmtNode() {}

// ColumnDef represents a column definition in CREATE TABLE.
type ColumnDef struct {
	Name    string
	Type    string
	Comment string
}

// CreateViewStmt represents CREATE VIEW name AS query.
type CreateViewStmt struct {
	IfNotExists bool
	Name        *TableName
	Query       *Query
}

func (*CreateViewStmt) stmtNode() {}

// ---------------------------------------------------------------------------
// Query bodies
// ---------------------------------------------------------------------------

// SetOpType represents a set operation type.
type SetOpType string

// Set operation types.
const (
	SetOpUnion     SetOpType = "UNION"
	SetOpIntersect SetOpType = "INTERSECT"
	SetOpExcept    SetOpType = "EXCEPT"
)

// SetOperation represents left op right, chained left-associatively.
type SetOperation struct {
	Left  QueryBody
	Op    SetOpType
	All   bool
	Right QueryBody
}

func (*SetOperation) bodyNode() {}

// SelectCore represents a single SELECT ... FROM ... statement core,
// including the Hive-specific DISTRIBUTE BY / SORT BY / CLUSTER BY clauses.
type SelectCore struct {
	Distinct     bool
	Columns      []SelectItem
	From         *FromClause
	Where        Expr
	GroupBy      []Expr
	Having       Expr
	ClusterBy    []Expr
	DistributeBy []Expr
	SortBy       []OrderByItem
}

func (*SelectCore) bodyNode() {}

// ValuesClause represents VALUES (row), (row), ...
type ValuesClause struct {
	Rows [][]Expr
}

func (*ValuesClause) bodyNode() {}

// SelectItem represents one item in a SELECT list.
type SelectItem struct {
	Star      bool   // SELECT *
	TableStar string // SELECT t.*
	Expr      Expr
	Alias     string
}

// OrderByItem represents one ORDER BY / SORT BY element.
type OrderByItem struct {
	Expr  Expr
	Desc  bool
	Nulls string // "", "first", or "last"
}

// ---------------------------------------------------------------------------
// FROM clause
// ---------------------------------------------------------------------------

// FromClause represents the FROM part of a select: a primary relation, its
// join list, and any trailing LATERAL VIEW clauses.
type FromClause struct {
	Source       TableRef
	Joins        []*Join
	LateralViews []*LateralView
}

// JoinType represents the type of a join.
type JoinType string

// Join types.
const (
	JoinInner    JoinType = "INNER"
	JoinLeft     JoinType = "LEFT"
	JoinRight    JoinType = "RIGHT"
	JoinFull     JoinType = "FULL"
	JoinCross    JoinType = "CROSS"
	JoinLeftSemi JoinType = "LEFT SEMI"
	JoinComma    JoinType = "," // implicit comma join
)

// Join represents a single JOIN clause.
type Join struct {
	Type      JoinType
	Right     TableRef
	Condition Expr // ON condition, nil for comma/cross joins
}

// LateralView represents LATERAL VIEW [OUTER] func(args) alias AS col [, col...].
// Lateral views expand columns of the driving relation and never contribute
// table names of their own.
type LateralView struct {
	Outer         bool
	Func          *FuncCall
	TableAlias    string
	ColumnAliases []string
}

// TableName is a (possibly dot-qualified) table reference. Parts preserves
// the raw identifier segments: the lineage resolver needs them individually
// for CTE matching and database qualification.
type TableName struct {
	Parts []string
	Alias string
}

func (*TableName) tableRefNode() {}

// DerivedTable is a parenthesized subquery in a FROM clause.
type DerivedTable struct {
	Query *Query
	Alias string
}

func (*DerivedTable) tableRefNode() {}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// ColumnRef is a (possibly dot-qualified) column reference.
type ColumnRef struct {
	Parts []string
}

func (*ColumnRef) exprNode() {}

// LiteralType is the kind of a literal.
type LiteralType int

// Literal types.
const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// Literal is a literal value.
type Literal struct {
	Type  LiteralType
	Value string
}

func (*Literal) exprNode() {}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	Left  Expr
	Op    TokenType
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr is a unary operation (NOT, -, +).
type UnaryExpr struct {
	Op   TokenType
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// FuncCall is a function call, optionally with a window specification.
type FuncCall struct {
	Name     string
	Distinct bool
	Star     bool // count(*)
	Args     []Expr
	Window   *WindowSpec
}

func (*FuncCall) exprNode() {}

// WindowSpec represents OVER (PARTITION BY ... ORDER BY ... frame).
type WindowSpec struct {
	PartitionBy []Expr
	OrderBy     []OrderByItem
	Frame       *FrameSpec
}

// FrameType is ROWS or RANGE.
type FrameType string

// Frame types.
const (
	FrameRows  FrameType = "ROWS"
	FrameRange FrameType = "RANGE"
)

// FrameSpec represents a window frame clause.
type FrameSpec struct {
	Type  FrameType
	Start *FrameBound
	End   *FrameBound // nil when the frame has a single bound
}

// FrameBoundType is the kind of a frame bound.
type FrameBoundType string

// Frame bound types.
const (
	BoundUnboundedPreceding FrameBoundType = "UNBOUNDED PRECEDING"
	BoundPreceding          FrameBoundType = "PRECEDING"
	BoundCurrentRow         FrameBoundType = "CURRENT ROW"
	BoundFollowing          FrameBoundType = "FOLLOWING"
	BoundUnboundedFollowing FrameBoundType = "UNBOUNDED FOLLOWING"
)

// FrameBound is a single frame bound.
type FrameBound struct {
	Type   FrameBoundType
	Offset Expr // for n PRECEDING / n FOLLOWING
}

// CaseExpr is CASE [operand] WHEN ... THEN ... [ELSE ...] END.
type CaseExpr struct {
	Operand Expr
	Whens   []*WhenClause
	Else    Expr
}

func (*CaseExpr) exprNode() {}

// WhenClause is one WHEN cond THEN result arm.
type WhenClause struct {
	Cond   Expr
	Result Expr
}

// CastExpr is CAST(expr AS type).
type CastExpr struct {
	Expr Expr
	Type string
}

func (*CastExpr) exprNode() {}

// InExpr is expr [NOT] IN (values...) or expr [NOT] IN (subquery).
// Exactly one of Values / Query is set.
type InExpr struct {
	Expr   Expr
	Not    bool
	Values []Expr
	Query  *Query
}

func (*InExpr) exprNode() {}

// BetweenExpr is expr [NOT] BETWEEN lower AND upper.
type BetweenExpr struct {
	Expr  Expr
	Not   bool
	Lower Expr
	Upper Expr
}

func (*BetweenExpr) exprNode() {}

// IsNullExpr is expr IS [NOT] NULL.
type IsNullExpr struct {
	Expr Expr
	Not  bool
}

func (*IsNullExpr) exprNode() {}

// LikeExpr is expr [NOT] LIKE/RLIKE pattern.
type LikeExpr struct {
	Expr    Expr
	Not     bool
	Op      TokenType // TOKEN_LIKE or TOKEN_RLIKE
	Pattern Expr
}

func (*LikeExpr) exprNode() {}

// IndexExpr is a subscript access: arr[0] or m['key'].
type IndexExpr struct {
	Expr  Expr
	Index Expr
}

func (*IndexExpr) exprNode() {}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Expr Expr
}

func (*ParenExpr) exprNode() {}

// SubqueryExpr is a scalar subquery in expression position.
type SubqueryExpr struct {
	Query *Query
}

func (*SubqueryExpr) exprNode() {}

// ExistsExpr is [NOT] EXISTS (subquery).
type ExistsExpr struct {
	Not   bool
	Query *Query
}

func (*ExistsExpr) exprNode() {}
