package parser_test

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/hivetrace/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseOne parses sql and requires exactly one statement.
func parseOne(t *testing.T, sql string) parser.Statement {
	t.Helper()
	stmts, err := parser.Parse(sql)
	require.NoError(t, err, "parse failed for %q", sql)
	require.Len(t, stmts, 1, "expected one statement for %q", sql)
	return stmts[0]
}

// queryOf parses sql and requires the single statement to be a query.
func queryOf(t *testing.T, sql string) *parser.Query {
	t.Helper()
	q, ok := parseOne(t, sql).(*parser.Query)
	require.True(t, ok, "expected *parser.Query for %q", sql)
	return q
}

// coreOf parses sql and requires a query whose body is a plain select.
func coreOf(t *testing.T, sql string) *parser.SelectCore {
	t.Helper()
	q := queryOf(t, sql)
	core, ok := q.Body.(*parser.SelectCore)
	require.True(t, ok, "expected *parser.SelectCore body, got %T", q.Body)
	return core
}

// ---------- Statement Tests ----------

func TestParse_SimpleSelect(t *testing.T) {
	core := coreOf(t, "select id, name from users")

	require.Len(t, core.Columns, 2)
	col, ok := core.Columns[0].Expr.(*parser.ColumnRef)
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, col.Parts)

	require.NotNil(t, core.From)
	tbl, ok := core.From.Source.(*parser.TableName)
	require.True(t, ok)
	assert.Equal(t, []string{"users"}, tbl.Parts)
}

func TestParse_SelectStar(t *testing.T) {
	core := coreOf(t, "select * from t1")
	require.Len(t, core.Columns, 1)
	assert.True(t, core.Columns[0].Star, "expected star item")
}

func TestParse_TableStar(t *testing.T) {
	core := coreOf(t, "select t.* from t1 t")
	require.Len(t, core.Columns, 1)
	assert.Equal(t, "t", core.Columns[0].TableStar)
}

func TestParse_ColumnAlias(t *testing.T) {
	core := coreOf(t, "select id as user_id, name username from users")
	require.Len(t, core.Columns, 2)
	assert.Equal(t, "user_id", core.Columns[0].Alias, "AS alias")
	assert.Equal(t, "username", core.Columns[1].Alias, "implicit alias")
}

func TestParse_QualifiedTableName(t *testing.T) {
	core := coreOf(t, "select * from db1.t1")
	tbl, ok := core.From.Source.(*parser.TableName)
	require.True(t, ok)
	assert.Equal(t, []string{"db1", "t1"}, tbl.Parts)
}

func TestParse_TableAlias(t *testing.T) {
	for _, sql := range []string{
		"select * from users as u",
		"select * from users u",
	} {
		core := coreOf(t, sql)
		tbl, ok := core.From.Source.(*parser.TableName)
		require.True(t, ok, "input %q", sql)
		assert.Equal(t, "u", tbl.Alias, "input %q", sql)
	}
}

func TestParse_MultipleStatements(t *testing.T) {
	stmts, err := parser.Parse("select * from a; select * from b")
	require.NoError(t, err)
	assert.Len(t, stmts, 2)
}

func TestParse_ExtraSemicolons(t *testing.T) {
	stmts, err := parser.Parse(";;select * from a;;;select * from b;;")
	require.NoError(t, err)
	assert.Len(t, stmts, 2, "empty statements are skipped")
}

func TestParse_MissingSemicolonBetween(t *testing.T) {
	_, err := parser.Parse("select * from a select * from b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected ;")
}

func TestParse_SelectDistinct(t *testing.T) {
	core := coreOf(t, "select distinct dept from emp")
	assert.True(t, core.Distinct)

	core = coreOf(t, "select all dept from emp")
	assert.False(t, core.Distinct, "ALL is the default")
}

func TestParse_WhereGroupByHaving(t *testing.T) {
	core := coreOf(t, "select dept, count(*) from emp where active = 1 group by dept having count(*) > 5")
	assert.NotNil(t, core.Where)
	assert.Len(t, core.GroupBy, 1)
	assert.NotNil(t, core.Having)
}

func TestParse_OrderByLimit(t *testing.T) {
	q := queryOf(t, "select * from t order by a desc, b nulls first limit 10")

	require.Len(t, q.OrderBy, 2)
	assert.True(t, q.OrderBy[0].Desc)
	assert.False(t, q.OrderBy[1].Desc)
	assert.Equal(t, "first", q.OrderBy[1].Nulls)

	require.NotNil(t, q.Limit)
	lit, ok := q.Limit.(*parser.Literal)
	require.True(t, ok)
	assert.Equal(t, "10", lit.Value)
}

func TestParse_ClusterBy(t *testing.T) {
	core := coreOf(t, "select * from t cluster by a, b")
	assert.Len(t, core.ClusterBy, 2)
}

func TestParse_DistributeBySortBy(t *testing.T) {
	core := coreOf(t, "select * from t distribute by a sort by b desc")
	assert.Len(t, core.DistributeBy, 1)
	require.Len(t, core.SortBy, 1)
	assert.True(t, core.SortBy[0].Desc)
}

// ---------- WITH Clause Tests ----------

func TestParse_WithCTE(t *testing.T) {
	q := queryOf(t, "with c as (select * from x) select * from c")

	require.NotNil(t, q.With)
	require.Len(t, q.With.CTEs, 1)
	assert.Equal(t, "c", q.With.CTEs[0].Name)
	require.NotNil(t, q.With.CTEs[0].Query)

	core, ok := q.Body.(*parser.SelectCore)
	require.True(t, ok)
	tbl, ok := core.From.Source.(*parser.TableName)
	require.True(t, ok)
	assert.Equal(t, []string{"c"}, tbl.Parts)
}

func TestParse_MultipleCTEs(t *testing.T) {
	q := queryOf(t, "with a as (select * from x), b as (select * from a) select * from b")
	require.NotNil(t, q.With)
	require.Len(t, q.With.CTEs, 2)
	assert.Equal(t, "a", q.With.CTEs[0].Name)
	assert.Equal(t, "b", q.With.CTEs[1].Name)
}

func TestParse_WithInsert(t *testing.T) {
	q := queryOf(t, "with temp as (select * from src) insert overwrite table dst select * from temp")

	require.NotNil(t, q.With)
	require.Len(t, q.With.CTEs, 1)

	ins, ok := q.Body.(*parser.InsertStmt)
	require.True(t, ok, "expected insert body, got %T", q.Body)
	assert.True(t, ins.Overwrite)
	assert.Equal(t, []string{"dst"}, ins.Table.Parts)
}

// ---------- Set Operation Tests ----------

func TestParse_UnionAll(t *testing.T) {
	q := queryOf(t, "select * from a union all select * from b")

	op, ok := q.Body.(*parser.SetOperation)
	require.True(t, ok)
	assert.Equal(t, parser.SetOpUnion, op.Op)
	assert.True(t, op.All)

	_, ok = op.Left.(*parser.SelectCore)
	assert.True(t, ok, "left operand should be a select core")
	_, ok = op.Right.(*parser.SelectCore)
	assert.True(t, ok, "right operand should be a select core")
}

func TestParse_UnionDistinct(t *testing.T) {
	q := queryOf(t, "select * from a union distinct select * from b")
	op, ok := q.Body.(*parser.SetOperation)
	require.True(t, ok)
	assert.False(t, op.All, "DISTINCT union is not ALL")
}

func TestParse_UnionChainLeftAssociative(t *testing.T) {
	q := queryOf(t, "select * from a union select * from b union all select * from c")

	outer, ok := q.Body.(*parser.SetOperation)
	require.True(t, ok)
	assert.True(t, outer.All, "outermost op is UNION ALL")

	inner, ok := outer.Left.(*parser.SetOperation)
	require.True(t, ok, "chains nest to the left")
	assert.Equal(t, parser.SetOpUnion, inner.Op)
	assert.False(t, inner.All)
}

func TestParse_IntersectExcept(t *testing.T) {
	q := queryOf(t, "select * from a intersect select * from b")
	op, ok := q.Body.(*parser.SetOperation)
	require.True(t, ok)
	assert.Equal(t, parser.SetOpIntersect, op.Op)

	q = queryOf(t, "select * from a except select * from b")
	op, ok = q.Body.(*parser.SetOperation)
	require.True(t, ok)
	assert.Equal(t, parser.SetOpExcept, op.Op)
}

func TestParse_ParenthesizedSetOperands(t *testing.T) {
	q := queryOf(t, "(select * from a) union (select * from b)")

	op, ok := q.Body.(*parser.SetOperation)
	require.True(t, ok)
	_, ok = op.Left.(*parser.Query)
	assert.True(t, ok, "parenthesized operand is a nested query")
	_, ok = op.Right.(*parser.Query)
	assert.True(t, ok, "parenthesized operand is a nested query")
}

// ---------- Insert Tests ----------

func TestParse_InsertInto(t *testing.T) {
	ins, ok := parseOne(t, "insert into t1 select * from t2").(*parser.InsertStmt)
	require.True(t, ok)
	assert.False(t, ins.Overwrite)
	assert.Equal(t, []string{"t1"}, ins.Table.Parts)
	assert.NotNil(t, ins.Source)
}

func TestParse_InsertIntoTable(t *testing.T) {
	ins, ok := parseOne(t, "insert into table t1 select * from t2").(*parser.InsertStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"t1"}, ins.Table.Parts)
}

func TestParse_InsertOverwrite(t *testing.T) {
	ins, ok := parseOne(t, "insert overwrite table db.t partition (dt = '2024-01-01') select * from s").(*parser.InsertStmt)
	require.True(t, ok)
	assert.True(t, ins.Overwrite)
	assert.Equal(t, []string{"db", "t"}, ins.Table.Parts)
	assert.Len(t, ins.Partition, 1)
}

func TestParse_InsertColumnList(t *testing.T) {
	ins, ok := parseOne(t, "insert into t1 (a, b) select a, b from t2").(*parser.InsertStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, ins.Columns)
}

func TestParse_InsertParenthesizedQuery(t *testing.T) {
	// A "(" followed by a keyword starts the source query, not a column list.
	ins, ok := parseOne(t, "insert into t1 (select * from t2)").(*parser.InsertStmt)
	require.True(t, ok)
	assert.Empty(t, ins.Columns)
	require.NotNil(t, ins.Source)
	_, ok = ins.Source.Body.(*parser.Query)
	assert.True(t, ok, "parenthesized source parses as a nested query")
}

func TestParse_InsertValues(t *testing.T) {
	ins, ok := parseOne(t, "insert into t1 values (1, 'a'), (2, 'b')").(*parser.InsertStmt)
	require.True(t, ok)
	require.NotNil(t, ins.Source)

	vc, ok := ins.Source.Body.(*parser.ValuesClause)
	require.True(t, ok)
	require.Len(t, vc.Rows, 2)
	assert.Len(t, vc.Rows[0], 2)
}

func TestParse_InsertOverwriteDirectory(t *testing.T) {
	d, ok := parseOne(t, "insert overwrite directory '/out' select * from t1").(*parser.DirectoryStmt)
	require.True(t, ok)
	assert.False(t, d.Local)
	assert.Equal(t, "/out", d.Path)
	assert.NotNil(t, d.Source)
}

func TestParse_InsertOverwriteLocalDirectory(t *testing.T) {
	sql := "insert overwrite local directory '/tmp/out' row format delimited fields terminated by ',' stored as textfile select * from t1"
	d, ok := parseOne(t, sql).(*parser.DirectoryStmt)
	require.True(t, ok)
	assert.True(t, d.Local)
	assert.Equal(t, "/tmp/out", d.Path)
	assert.NotNil(t, d.Source)
}

// ---------- Error Tests ----------

func TestParse_UnknownStatement(t *testing.T) {
	_, err := parser.Parse("drop table t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a statement")
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := parser.Parse("drop table t1")
	require.Error(t, err)

	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr), "errors should be *parser.ParseError")
	assert.Equal(t, 1, perr.Pos.Line)
	assert.Equal(t, 1, perr.Pos.Column)
	assert.Contains(t, err.Error(), "parse error at line 1, column 1")
}

func TestParse_FailFast(t *testing.T) {
	stmts, err := parser.Parse("select * from a; drop table t1; select * from b")
	require.Error(t, err)
	assert.Nil(t, stmts, "no partial results on error")
}

func TestParse_EmptyInput(t *testing.T) {
	stmts, err := parser.Parse("")
	require.NoError(t, err)
	assert.Empty(t, stmts)

	stmts, err = parser.Parse(";;;")
	require.NoError(t, err)
	assert.Empty(t, stmts)
}
